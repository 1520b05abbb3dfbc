package directory

import "carelink/models"

// SendEnquiryInput opens a thread with a provider.
type SendEnquiryInput struct {
	ProviderID string `json:"providerId" validate:"required"`
	Subject    string `json:"subject" validate:"required,max=120"`
	Message    string `json:"message" validate:"required,min=10,max=2000"`
}

// ReplyInput is a message appended to an existing thread.
type ReplyInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// BookingInput requests a session with a provider.
type BookingInput struct {
	ProviderID string `json:"providerId" validate:"required"`
	Service    string `json:"service" validate:"required,max=120"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
	Duration   int    `json:"duration" validate:"required,min=15,max=480"`
	Notes      string `json:"notes" validate:"max=1000"`
}

// ReviewInput rates a provider.
type ReviewInput struct {
	ProviderID string `json:"providerId" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Text       string `json:"text" validate:"required,min=10,max=2000"`
}

// RespondInput is a provider's public reply to a review.
type RespondInput struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// ParticipantRegistration creates a participant profile.
type ParticipantRegistration struct {
	Name       string          `json:"name" validate:"required,max=120"`
	Email      string          `json:"email" validate:"required,email"`
	Phone      string          `json:"phone" validate:"max=30"`
	Location   models.Location `json:"location"`
	NDISNumber string          `json:"ndisNumber" validate:"omitempty,numeric,len=9"`
	PlanType   string          `json:"planType" validate:"omitempty,oneof=self-managed plan-managed ndia-managed"`
	Goals      []string        `json:"goals"`
	Interests  []string        `json:"interests"`
}

// ProviderRegistration creates a provider listing on the free tier.
type ProviderRegistration struct {
	Name             string          `json:"name" validate:"required,max=120"`
	Email            string          `json:"email" validate:"required,email"`
	Phone            string          `json:"phone" validate:"max=30"`
	Website          string          `json:"website" validate:"omitempty,url"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"shortDescription" validate:"max=160"`
	Location         models.Location `json:"location"`
	Categories       []string        `json:"categories" validate:"required,min=1"`
	PlanTypes        []string        `json:"planTypes"`
	ServiceAreas     []string        `json:"serviceAreas"`
}

// filterBounds checks the numeric parts of a filter set.
type filterBounds struct {
	MinRating float64 `validate:"min=0,max=5"`
}
