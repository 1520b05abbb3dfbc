package directory

import (
	"context"

	"carelink/models"
	"carelink/services/store"
)

// SendEnquiry opens a thread from the session participant to a provider.
func (s *Service) SendEnquiry(ctx context.Context, in SendEnquiryInput) (models.Enquiry, error) {
	if err := s.check(in); err != nil {
		return models.Enquiry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	sess, err := s.requireRole(state, models.RoleParticipant)
	if err != nil {
		return models.Enquiry{}, err
	}
	if _, err := s.provider(state, in.ProviderID); err != nil {
		return models.Enquiry{}, err
	}

	at := s.now()
	action := store.SendEnquiry{
		EnquiryID:     s.newID(),
		ParticipantID: sess.ID,
		ProviderID:    in.ProviderID,
		Subject:       in.Subject,
		Message:       models.Message{ID: s.newID(), Sender: models.SenderParticipant, Text: in.Message, SentAt: at},
	}
	enquiry := models.Enquiry{
		ID:            action.EnquiryID,
		ParticipantID: action.ParticipantID,
		ProviderID:    action.ProviderID,
		Subject:       action.Subject,
		Status:        models.EnquiryActive,
		Messages:      []models.Message{action.Message},
		CreatedAt:     at,
		UpdatedAt:     at,
	}
	if _, err := s.commit(ctx, "create_enquiry",
		func(ctx context.Context) error { return s.remote.CreateEnquiry(ctx, enquiry) },
		action); err != nil {
		return models.Enquiry{}, err
	}
	return enquiry, nil
}

// ReplyEnquiry appends a message from whichever party the session is.
func (s *Service) ReplyEnquiry(ctx context.Context, enquiryID string, in ReplyInput) (models.Message, error) {
	if err := s.check(in); err != nil {
		return models.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	enquiry, sender, err := s.enquiryForParty(state, enquiryID)
	if err != nil {
		return models.Message{}, err
	}
	if enquiry.Status == models.EnquiryClosed {
		return models.Message{}, ErrEnquiryClosed
	}

	msg := models.Message{ID: s.newID(), Sender: sender, Text: in.Text, SentAt: s.now()}
	if last, ok := enquiry.LastMessage(); ok && msg.SentAt.Before(last.SentAt) {
		msg.SentAt = last.SentAt
	}
	if _, err := s.commit(ctx, "append_message",
		func(ctx context.Context) error { return s.remote.AppendMessage(ctx, enquiryID, msg) },
		store.ReplyEnquiry{EnquiryID: enquiryID, Message: msg}); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// CloseEnquiry closes a thread. Closing a closed thread succeeds without a write.
func (s *Service) CloseEnquiry(ctx context.Context, enquiryID string) (store.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	enquiry, _, err := s.enquiryForParty(state, enquiryID)
	if err != nil {
		return state, err
	}
	if enquiry.Status == models.EnquiryClosed {
		return state, nil
	}
	return s.commit(ctx, "close_enquiry",
		func(ctx context.Context) error { return s.remote.CloseEnquiry(ctx, enquiryID) },
		store.CloseEnquiry{EnquiryID: enquiryID})
}

// EnquiriesForSession lists the threads the session takes part in.
func (s *Service) EnquiriesForSession() ([]models.Enquiry, error) {
	state := s.store.State()
	sess, err := s.session(state)
	if err != nil {
		return nil, err
	}
	var out []models.Enquiry
	for _, e := range state.Enquiries {
		if sess.Role == models.RoleAdmin || e.ParticipantID == sess.ID || e.ProviderID == sess.ID {
			out = append(out, e)
		}
	}
	return out, nil
}

// enquiryForParty returns the enquiry and the sender role the session
// writes as, or an error if the session is not one of its two parties.
func (s *Service) enquiryForParty(state store.State, enquiryID string) (models.Enquiry, models.SenderRole, error) {
	sess, err := s.session(state)
	if err != nil {
		return models.Enquiry{}, "", err
	}
	enquiry, ok := state.Enquiry(enquiryID)
	if !ok {
		return enquiry, "", notFound("enquiry", enquiryID)
	}
	switch {
	case sess.Role == models.RoleParticipant && enquiry.ParticipantID == sess.ID:
		return enquiry, models.SenderParticipant, nil
	case sess.Role == models.RoleProvider && enquiry.ProviderID == sess.ID:
		return enquiry, models.SenderProvider, nil
	}
	return enquiry, "", ErrForbidden
}
