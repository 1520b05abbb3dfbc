package models

import "time"

// Review is a participant's rating of a provider.
type Review struct {
	ID              string          `json:"id"`
	ProviderID      string          `json:"providerId"`
	ParticipantID   string          `json:"participantId"`
	ParticipantName string          `json:"participantName"`
	Rating          int             `json:"rating"` // 1 - 5
	Text            string          `json:"text"`
	CreatedAt       time.Time       `json:"createdAt"`
	Response        *ReviewResponse `json:"response"`
}

// ReviewResponse is the provider's public reply to a review.
type ReviewResponse struct {
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}
