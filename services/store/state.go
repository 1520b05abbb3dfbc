package store

import "carelink/models"

// LandingFrame is where a fresh or logged-out state starts.
var LandingFrame = models.Frame{Route: models.RouteHome}

// State is the whole application state. It is treated as an immutable value:
// Reduce returns a new State and never writes through slices it was given.
type State struct {
	Route        models.Frame    `json:"route"`
	History      History         `json:"history"`
	HistoryLimit int             `json:"historyLimit"` // 0 means unbounded
	Session      *models.Session `json:"session"`
	Theme        models.Theme    `json:"theme"`

	Providers    []models.Provider    `json:"providers"`
	Participants []models.Participant `json:"participants"`
	Reviews      []models.Review      `json:"reviews"`
	Enquiries    []models.Enquiry     `json:"enquiries"`
	Bookings     []models.Booking     `json:"bookings"`

	Query              string           `json:"query"`
	Filters            models.FilterSet `json:"filters"`
	SelectedProviderID string           `json:"selectedProviderId,omitempty"`
	DashboardTab       string           `json:"dashboardTab,omitempty"`
}

// NewState returns an empty state on the landing frame.
func NewState(historyLimit int) State {
	return State{
		Route:        LandingFrame,
		HistoryLimit: historyLimit,
		Theme:        models.ThemeLight,
	}
}

// Provider looks up a provider by id.
func (s State) Provider(id string) (models.Provider, bool) {
	if i := s.providerIndex(id); i >= 0 {
		return s.Providers[i], true
	}
	return models.Provider{}, false
}

// Participant looks up a participant by id.
func (s State) Participant(id string) (models.Participant, bool) {
	if i := s.participantIndex(id); i >= 0 {
		return s.Participants[i], true
	}
	return models.Participant{}, false
}

// Review looks up a review by id.
func (s State) Review(id string) (models.Review, bool) {
	for _, r := range s.Reviews {
		if r.ID == id {
			return r, true
		}
	}
	return models.Review{}, false
}

// Enquiry looks up an enquiry by id.
func (s State) Enquiry(id string) (models.Enquiry, bool) {
	if i := s.enquiryIndex(id); i >= 0 {
		return s.Enquiries[i], true
	}
	return models.Enquiry{}, false
}

// Booking looks up a booking by id.
func (s State) Booking(id string) (models.Booking, bool) {
	if i := s.bookingIndex(id); i >= 0 {
		return s.Bookings[i], true
	}
	return models.Booking{}, false
}

// ReviewsFor returns the reviews written about a provider, oldest first.
func (s State) ReviewsFor(providerID string) []models.Review {
	var out []models.Review
	for _, r := range s.Reviews {
		if r.ProviderID == providerID {
			out = append(out, r)
		}
	}
	return out
}

// SessionParticipant returns the participant behind the session, if the
// session belongs to one that exists in the collection.
func (s State) SessionParticipant() (models.Participant, bool) {
	if s.Session == nil || s.Session.Role != models.RoleParticipant {
		return models.Participant{}, false
	}
	return s.Participant(s.Session.ID)
}

// SessionProvider returns the provider behind the session, if any.
func (s State) SessionProvider() (models.Provider, bool) {
	if s.Session == nil || s.Session.Role != models.RoleProvider {
		return models.Provider{}, false
	}
	return s.Provider(s.Session.ID)
}

func (s State) providerIndex(id string) int {
	for i := range s.Providers {
		if s.Providers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) participantIndex(id string) int {
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) reviewIndex(id string) int {
	for i := range s.Reviews {
		if s.Reviews[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) enquiryIndex(id string) int {
	for i := range s.Enquiries {
		if s.Enquiries[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) bookingIndex(id string) int {
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}
