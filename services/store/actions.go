package store

import (
	"time"

	"carelink/models"
)

// Action is a state transition request. The set of actions is closed: only
// types declared in this package implement it.
type Action interface {
	Type() string
	isAction()
}

// Navigate pushes the current frame onto the history and makes Frame current.
type Navigate struct {
	Frame models.Frame `json:"frame"`
}

// GoBack restores the most recently pushed frame.
type GoBack struct{}

// Login opens a session.
type Login struct {
	Session models.Session `json:"session"`
}

// Logout closes the session, returns to the landing frame and clears history.
type Logout struct{}

// Register adds a newly created participant or provider and opens its session.
type Register struct {
	Session     models.Session      `json:"session"`
	Participant *models.Participant `json:"participant,omitempty"`
	Provider    *models.Provider    `json:"provider,omitempty"`
}

// ToggleFavourite adds or removes a provider from the session participant's favourites.
type ToggleFavourite struct {
	ProviderID string `json:"providerId"`
}

// SendEnquiry opens a new thread seeded with Message.
type SendEnquiry struct {
	EnquiryID     string         `json:"enquiryId"`
	ParticipantID string         `json:"participantId"`
	ProviderID    string         `json:"providerId"`
	Subject       string         `json:"subject"`
	Message       models.Message `json:"message"`
}

// ReplyEnquiry appends a message to an active thread.
type ReplyEnquiry struct {
	EnquiryID string         `json:"enquiryId"`
	Message   models.Message `json:"message"`
}

// CloseEnquiry moves a thread to closed.
type CloseEnquiry struct {
	EnquiryID string `json:"enquiryId"`
}

// CreateBooking inserts a booking in the pending state.
type CreateBooking struct {
	Booking models.Booking `json:"booking"`
}

// UpdateBookingStatus sets a booking's status.
type UpdateBookingStatus struct {
	BookingID string               `json:"bookingId"`
	Status    models.BookingStatus `json:"status"`
}

// CancelBooking is UpdateBookingStatus with the cancelled status.
type CancelBooking struct {
	BookingID string `json:"bookingId"`
}

// SubmitReview appends a review without a response.
type SubmitReview struct {
	Review models.Review `json:"review"`
}

// RespondReview sets a review's response, replacing any previous one.
type RespondReview struct {
	ReviewID string    `json:"reviewId"`
	Text     string    `json:"text"`
	At       time.Time `json:"at"`
}

// UpdateProvider merges a partial update into a provider.
type UpdateProvider struct {
	ProviderID string               `json:"providerId"`
	Patch      models.ProviderPatch `json:"patch"`
}

// UpdateParticipant merges a partial update into a participant.
type UpdateParticipant struct {
	ParticipantID string                  `json:"participantId"`
	Patch         models.ParticipantPatch `json:"patch"`
}

// UpgradeTier overwrites a provider's tier.
type UpgradeTier struct {
	ProviderID string      `json:"providerId"`
	Tier       models.Tier `json:"tier"`
}

// IncrementViews adds one to a provider's monthly view counter.
type IncrementViews struct {
	ProviderID string `json:"providerId"`
}

// Hydrate replaces the collections that are non-nil in Collections.
type Hydrate struct {
	Collections models.Collections `json:"collections"`
}

// SetFilters stores the active search query and filters.
type SetFilters struct {
	Query   string           `json:"query"`
	Filters models.FilterSet `json:"filters"`
}

// SelectProvider records the provider currently on screen.
type SelectProvider struct {
	ProviderID string `json:"providerId"`
}

// SetDashboardTab records the active dashboard tab.
type SetDashboardTab struct {
	Tab string `json:"tab"`
}

// SetTheme records the UI theme preference.
type SetTheme struct {
	Theme models.Theme `json:"theme"`
}

func (Navigate) Type() string            { return "NAVIGATE" }
func (GoBack) Type() string              { return "GO_BACK" }
func (Login) Type() string               { return "LOGIN" }
func (Logout) Type() string              { return "LOGOUT" }
func (Register) Type() string            { return "REGISTER" }
func (ToggleFavourite) Type() string     { return "TOGGLE_FAVOURITE" }
func (SendEnquiry) Type() string         { return "SEND_ENQUIRY" }
func (ReplyEnquiry) Type() string        { return "REPLY_ENQUIRY" }
func (CloseEnquiry) Type() string        { return "CLOSE_ENQUIRY" }
func (CreateBooking) Type() string       { return "CREATE_BOOKING" }
func (UpdateBookingStatus) Type() string { return "UPDATE_BOOKING_STATUS" }
func (CancelBooking) Type() string       { return "CANCEL_BOOKING" }
func (SubmitReview) Type() string        { return "SUBMIT_REVIEW" }
func (RespondReview) Type() string       { return "RESPOND_REVIEW" }
func (UpdateProvider) Type() string      { return "UPDATE_PROVIDER" }
func (UpdateParticipant) Type() string   { return "UPDATE_PARTICIPANT" }
func (UpgradeTier) Type() string         { return "UPGRADE_TIER" }
func (IncrementViews) Type() string      { return "INCREMENT_VIEWS" }
func (Hydrate) Type() string             { return "HYDRATE" }
func (SetFilters) Type() string          { return "SET_FILTERS" }
func (SelectProvider) Type() string      { return "SELECT_PROVIDER" }
func (SetDashboardTab) Type() string     { return "SET_DASHBOARD_TAB" }
func (SetTheme) Type() string            { return "SET_THEME" }

func (Navigate) isAction()            {}
func (GoBack) isAction()              {}
func (Login) isAction()               {}
func (Logout) isAction()              {}
func (Register) isAction()            {}
func (ToggleFavourite) isAction()     {}
func (SendEnquiry) isAction()         {}
func (ReplyEnquiry) isAction()        {}
func (CloseEnquiry) isAction()        {}
func (CreateBooking) isAction()       {}
func (UpdateBookingStatus) isAction() {}
func (CancelBooking) isAction()       {}
func (SubmitReview) isAction()        {}
func (RespondReview) isAction()       {}
func (UpdateProvider) isAction()      {}
func (UpdateParticipant) isAction()   {}
func (UpgradeTier) isAction()         {}
func (IncrementViews) isAction()      {}
func (Hydrate) isAction()             {}
func (SetFilters) isAction()          {}
func (SelectProvider) isAction()      {}
func (SetDashboardTab) isAction()     {}
func (SetTheme) isAction()            {}
