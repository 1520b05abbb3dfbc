package store

import (
	"math"

	"carelink/models"
)

// Reduce computes the state that follows action. It is pure and total: it does
// no I/O, never panics on well-typed input, and returns state unchanged for
// actions that reference missing records or that the session may not perform.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case Navigate:
		return navigate(state, a)
	case GoBack:
		return goBack(state)
	case Login:
		return login(state, a)
	case Logout:
		return logout(state)
	case Register:
		return register(state, a)
	case ToggleFavourite:
		return toggleFavourite(state, a)
	case SendEnquiry:
		return sendEnquiry(state, a)
	case ReplyEnquiry:
		return replyEnquiry(state, a)
	case CloseEnquiry:
		return closeEnquiry(state, a)
	case CreateBooking:
		return createBooking(state, a)
	case UpdateBookingStatus:
		return updateBookingStatus(state, a)
	case CancelBooking:
		return updateBookingStatus(state, UpdateBookingStatus{BookingID: a.BookingID, Status: models.BookingCancelled})
	case SubmitReview:
		return submitReview(state, a)
	case RespondReview:
		return respondReview(state, a)
	case UpdateProvider:
		return updateProvider(state, a)
	case UpdateParticipant:
		return updateParticipant(state, a)
	case UpgradeTier:
		next, _ := mutateProvider(state, a.ProviderID, func(p *models.Provider) { p.Tier = a.Tier })
		return next
	case IncrementViews:
		next, _ := mutateProvider(state, a.ProviderID, func(p *models.Provider) { p.Stats.Views++ })
		return next
	case Hydrate:
		return hydrate(state, a)
	case SetFilters:
		next := state
		next.Query = a.Query
		next.Filters = a.Filters
		return next
	case SelectProvider:
		next := state
		next.SelectedProviderID = a.ProviderID
		return next
	case SetDashboardTab:
		next := state
		next.DashboardTab = a.Tab
		return next
	case SetTheme:
		next := state
		next.Theme = a.Theme
		return next
	default:
		return state
	}
}

func navigate(state State, a Navigate) State {
	next := state
	next.History = state.History.Push(state.Route, state.HistoryLimit)
	next.Route = a.Frame.Clone()
	return next
}

func goBack(state State) State {
	history, frame, ok := state.History.Pop()
	if !ok {
		return state
	}
	next := state
	next.History = history
	next.Route = frame
	return next
}

func login(state State, a Login) State {
	next := state
	session := a.Session.Clone()
	next.Session = &session
	return next
}

// logout also clears history so back-navigation cannot re-enter authenticated views.
func logout(state State) State {
	next := state
	next.Session = nil
	next.Route = LandingFrame.Clone()
	next.History = nil
	return next
}

func register(state State, a Register) State {
	next := state
	session := a.Session.Clone()
	if a.Participant != nil {
		p := a.Participant.Clone()
		if state.participantIndex(p.ID) < 0 {
			next.Participants = appendCopy(state.Participants, p)
		}
		if session.Role == models.RoleParticipant && session.Participant == nil {
			cached := p.Clone()
			session.Participant = &cached
		}
	}
	if a.Provider != nil {
		p := a.Provider.Clone()
		if state.providerIndex(p.ID) < 0 {
			next.Providers = appendCopy(state.Providers, p)
		}
		if session.Role == models.RoleProvider && session.Provider == nil {
			cached := p.Clone()
			session.Provider = &cached
		}
	}
	next.Session = &session
	return next
}

func toggleFavourite(state State, a ToggleFavourite) State {
	if state.Session == nil || state.Session.Role != models.RoleParticipant {
		return state
	}
	i := state.participantIndex(state.Session.ID)
	if i < 0 {
		return state
	}
	favourites := models.ToggleFavourite(state.Participants[i].Favourites, a.ProviderID)
	updated := state.Participants[i].Clone()
	updated.Favourites = favourites

	next := state
	next.Participants = replaceAt(state.Participants, i, updated)

	session := state.Session.Clone()
	if session.Participant == nil {
		cached := updated.Clone()
		session.Participant = &cached
	} else {
		session.Participant.Favourites = append(make([]string, 0, len(favourites)), favourites...)
	}
	next.Session = &session
	return next
}

func sendEnquiry(state State, a SendEnquiry) State {
	if state.enquiryIndex(a.EnquiryID) >= 0 {
		return state
	}
	enquiry := models.Enquiry{
		ID:            a.EnquiryID,
		ParticipantID: a.ParticipantID,
		ProviderID:    a.ProviderID,
		Subject:       a.Subject,
		Status:        models.EnquiryActive,
		Messages:      []models.Message{a.Message},
		CreatedAt:     a.Message.SentAt,
		UpdatedAt:     a.Message.SentAt,
	}
	next := state
	next.Enquiries = appendCopy(state.Enquiries, enquiry)
	if counted, ok := mutateProvider(next, a.ProviderID, func(p *models.Provider) { p.Stats.Enquiries++ }); ok {
		next = counted
	}
	return next
}

// replyEnquiry ignores replies to closed threads.
func replyEnquiry(state State, a ReplyEnquiry) State {
	i := state.enquiryIndex(a.EnquiryID)
	if i < 0 || state.Enquiries[i].Status == models.EnquiryClosed {
		return state
	}
	enquiry := state.Enquiries[i]
	msg := a.Message
	if last, ok := enquiry.LastMessage(); ok && msg.SentAt.Before(last.SentAt) {
		msg.SentAt = last.SentAt
	}
	enquiry.Messages = appendCopy(enquiry.Messages, msg)
	enquiry.UpdatedAt = msg.SentAt

	next := state
	next.Enquiries = replaceAt(state.Enquiries, i, enquiry)
	return next
}

func closeEnquiry(state State, a CloseEnquiry) State {
	i := state.enquiryIndex(a.EnquiryID)
	if i < 0 || state.Enquiries[i].Status == models.EnquiryClosed {
		return state
	}
	enquiry := state.Enquiries[i]
	enquiry.Status = models.EnquiryClosed

	next := state
	next.Enquiries = replaceAt(state.Enquiries, i, enquiry)
	return next
}

func createBooking(state State, a CreateBooking) State {
	if state.bookingIndex(a.Booking.ID) >= 0 {
		return state
	}
	booking := a.Booking
	booking.Status = models.BookingPending

	next := state
	next.Bookings = appendCopy(state.Bookings, booking)
	if counted, ok := mutateProvider(next, booking.ProviderID, func(p *models.Provider) { p.Stats.Bookings++ }); ok {
		next = counted
	}
	return next
}

// updateBookingStatus does not check transition validity; callers only move
// pending bookings to confirmed or cancelled.
func updateBookingStatus(state State, a UpdateBookingStatus) State {
	i := state.bookingIndex(a.BookingID)
	if i < 0 || state.Bookings[i].Status == a.Status {
		return state
	}
	booking := state.Bookings[i]
	booking.Status = a.Status

	next := state
	next.Bookings = replaceAt(state.Bookings, i, booking)
	return next
}

func submitReview(state State, a SubmitReview) State {
	if state.reviewIndex(a.Review.ID) >= 0 {
		return state
	}
	review := a.Review
	review.Response = nil

	next := state
	next.Reviews = appendCopy(state.Reviews, review)
	if rated, ok := mutateProvider(next, review.ProviderID, func(p *models.Provider) {
		total := p.Rating*float64(p.ReviewCount) + float64(review.Rating)
		p.ReviewCount++
		p.Rating = math.Round(total/float64(p.ReviewCount)*10) / 10
	}); ok {
		next = rated
	}
	return next
}

// respondReview overwrites any earlier response.
func respondReview(state State, a RespondReview) State {
	i := state.reviewIndex(a.ReviewID)
	if i < 0 {
		return state
	}
	review := state.Reviews[i]
	review.Response = &models.ReviewResponse{Text: a.Text, Date: a.At}

	next := state
	next.Reviews = replaceAt(state.Reviews, i, review)
	return next
}

func updateProvider(state State, a UpdateProvider) State {
	next, ok := mutateProvider(state, a.ProviderID, func(p *models.Provider) { *p = a.Patch.Apply(*p) })
	if !ok {
		return state
	}
	if shadows(next.Session, models.RoleProvider, a.ProviderID) {
		if a.Patch.Name != nil {
			next.Session.Name = *a.Patch.Name
		}
		if a.Patch.Email != nil {
			next.Session.Email = *a.Patch.Email
		}
	}
	return next
}

func updateParticipant(state State, a UpdateParticipant) State {
	next, ok := mutateParticipant(state, a.ParticipantID, func(p *models.Participant) { *p = a.Patch.Apply(*p) })
	if !ok {
		return state
	}
	if shadows(next.Session, models.RoleParticipant, a.ParticipantID) {
		if a.Patch.Name != nil {
			next.Session.Name = *a.Patch.Name
		}
		if a.Patch.Email != nil {
			next.Session.Email = *a.Patch.Email
		}
	}
	return next
}

func hydrate(state State, a Hydrate) State {
	c := a.Collections
	next := state
	if c.Providers != nil {
		next.Providers = make([]models.Provider, len(c.Providers))
		for i, p := range c.Providers {
			next.Providers[i] = p.Clone()
		}
	}
	if c.Participants != nil {
		next.Participants = make([]models.Participant, len(c.Participants))
		for i, p := range c.Participants {
			next.Participants[i] = p.Clone()
		}
	}
	if c.Reviews != nil {
		next.Reviews = append([]models.Review(nil), c.Reviews...)
	}
	if c.Enquiries != nil {
		next.Enquiries = append([]models.Enquiry(nil), c.Enquiries...)
	}
	if c.Bookings != nil {
		next.Bookings = append([]models.Booking(nil), c.Bookings...)
	}

	if state.Session != nil {
		session := state.Session.Clone()
		switch session.Role {
		case models.RoleProvider:
			if p, ok := next.Provider(session.ID); ok {
				cached := p.Clone()
				session.Provider = &cached
			}
		case models.RoleParticipant:
			if p, ok := next.Participant(session.ID); ok {
				cached := p.Clone()
				session.Participant = &cached
			}
		}
		next.Session = &session
	}
	return next
}

// mutateProvider applies fn to a copy of the provider with the given id and,
// when the session stands for that provider, to the session's cached copy too.
func mutateProvider(state State, id string, fn func(*models.Provider)) (State, bool) {
	i := state.providerIndex(id)
	if i < 0 {
		return state, false
	}
	updated := state.Providers[i].Clone()
	fn(&updated)

	next := state
	next.Providers = replaceAt(state.Providers, i, updated)
	if shadows(state.Session, models.RoleProvider, id) {
		session := state.Session.Clone()
		if session.Provider == nil {
			cached := updated.Clone()
			session.Provider = &cached
		} else {
			fn(session.Provider)
		}
		next.Session = &session
	}
	return next, true
}

// mutateParticipant is mutateProvider for participants.
func mutateParticipant(state State, id string, fn func(*models.Participant)) (State, bool) {
	i := state.participantIndex(id)
	if i < 0 {
		return state, false
	}
	updated := state.Participants[i].Clone()
	fn(&updated)

	next := state
	next.Participants = replaceAt(state.Participants, i, updated)
	if shadows(state.Session, models.RoleParticipant, id) {
		session := state.Session.Clone()
		if session.Participant == nil {
			cached := updated.Clone()
			session.Participant = &cached
		} else {
			fn(session.Participant)
		}
		next.Session = &session
	}
	return next, true
}

func shadows(session *models.Session, role models.Role, id string) bool {
	return session != nil && session.Role == role && session.ID == id
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func replaceAt[T any](items []T, i int, item T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i] = item
	return out
}
