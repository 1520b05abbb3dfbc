package models

import "time"

// BookingStatus is the lifecycle state of a booking.
// pending moves to confirmed or cancelled; both are terminal.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus returns the status named by s and whether it is known.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking is a scheduled service between a participant and a provider.
type Booking struct {
	ID            string        `json:"id"`
	ParticipantID string        `json:"participantId"`
	ProviderID    string        `json:"providerId"`
	Service       string        `json:"service"`
	Date          string        `json:"date"`     // "YYYY-MM-DD"
	Time          string        `json:"time"`     // "HH:MM"
	Duration      int           `json:"duration"` // minutes
	Notes         string        `json:"notes,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}
