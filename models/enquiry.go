package models

import "time"

// EnquiryStatus is the lifecycle state of an enquiry thread.
type EnquiryStatus string

const (
	EnquiryActive EnquiryStatus = "active"
	EnquiryClosed EnquiryStatus = "closed"
)

// SenderRole identifies who wrote a message in a thread.
type SenderRole string

const (
	SenderParticipant SenderRole = "participant"
	SenderProvider    SenderRole = "provider"
)

// Message is a single entry in an enquiry thread.
type Message struct {
	ID     string     `json:"id"`
	Sender SenderRole `json:"sender"`
	Text   string     `json:"text"`
	SentAt time.Time  `json:"sentAt"`
}

// Enquiry is a message thread between a participant and a provider.
// Messages are append-only and ordered by SentAt.
type Enquiry struct {
	ID            string        `json:"id"`
	ParticipantID string        `json:"participantId"`
	ProviderID    string        `json:"providerId"`
	Subject       string        `json:"subject"`
	Status        EnquiryStatus `json:"status"`
	Messages      []Message     `json:"messages"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// LastMessage returns the most recent message, if any.
func (e Enquiry) LastMessage() (Message, bool) {
	if len(e.Messages) == 0 {
		return Message{}, false
	}
	return e.Messages[len(e.Messages)-1], true
}
