package mongoRepo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"carelink/models"
)

// Wire documents mirror the backend's flattened snake_case collections.
// They never leave this package.

type providerDoc struct {
	ID                 string            `bson:"id"`
	BusinessName       string            `bson:"business_name"`
	Description        string            `bson:"description"`
	ShortDescription   string            `bson:"short_description"`
	Email              string            `bson:"email"`
	Phone              string            `bson:"phone"`
	Website            string            `bson:"website,omitempty"`
	Suburb             string            `bson:"suburb"`
	State              string            `bson:"state"`
	Postcode           string            `bson:"postcode"`
	Categories         []string          `bson:"categories"`
	SubscriptionTier   string            `bson:"subscription_tier"`
	IsVerified         bool              `bson:"is_verified"`
	Rating             float64           `bson:"rating"`
	ReviewCount        int               `bson:"review_count"`
	ResponseRate       int               `bson:"response_rate"`
	ResponseTime       string            `bson:"response_time"`
	WaitTime           string            `bson:"wait_time"`
	PlanTypes          []string          `bson:"plan_types"`
	Availability       map[string]string `bson:"availability,omitempty"`
	ServiceAreas       []string          `bson:"service_areas"`
	ViewsThisMonth     int               `bson:"views_this_month"`
	EnquiriesThisMonth int               `bson:"enquiries_this_month"`
	BookingsThisMonth  int               `bson:"bookings_this_month"`
	CreatedAt          time.Time         `bson:"created_at"`
}

func toProviderDoc(p models.Provider) providerDoc {
	return providerDoc{
		ID:                 p.ID,
		BusinessName:       p.Name,
		Description:        p.Description,
		ShortDescription:   p.ShortDescription,
		Email:              p.Email,
		Phone:              p.Phone,
		Website:            p.Website,
		Suburb:             p.Location.Suburb,
		State:              p.Location.State,
		Postcode:           p.Location.Postcode,
		Categories:         p.Categories,
		SubscriptionTier:   string(p.Tier),
		IsVerified:         p.Verified,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		ResponseRate:       p.ResponseRate,
		ResponseTime:       p.ResponseTime,
		WaitTime:           p.WaitTime,
		PlanTypes:          p.PlanTypes,
		Availability:       p.Availability,
		ServiceAreas:       p.ServiceAreas,
		ViewsThisMonth:     p.Stats.Views,
		EnquiriesThisMonth: p.Stats.Enquiries,
		BookingsThisMonth:  p.Stats.Bookings,
		CreatedAt:          p.CreatedAt,
	}
}

// fromProviderDoc maps an unknown tier to free.
func fromProviderDoc(d providerDoc) models.Provider {
	tier, _ := models.ParseTier(d.SubscriptionTier)
	return models.Provider{
		ID:               d.ID,
		Name:             d.BusinessName,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Email:            d.Email,
		Phone:            d.Phone,
		Website:          d.Website,
		Location:         models.Location{Suburb: d.Suburb, State: d.State, Postcode: d.Postcode},
		Categories:       d.Categories,
		Tier:             tier,
		Verified:         d.IsVerified,
		Rating:           d.Rating,
		ReviewCount:      d.ReviewCount,
		ResponseRate:     d.ResponseRate,
		ResponseTime:     d.ResponseTime,
		WaitTime:         d.WaitTime,
		PlanTypes:        d.PlanTypes,
		Availability:     d.Availability,
		ServiceAreas:     d.ServiceAreas,
		Stats: models.MonthlyStats{
			Views:     d.ViewsThisMonth,
			Enquiries: d.EnquiriesThisMonth,
			Bookings:  d.BookingsThisMonth,
		},
		CreatedAt: d.CreatedAt,
	}
}

// providerPatchSet builds the $set document for a partial update.
func providerPatchSet(patch models.ProviderPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["business_name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ShortDescription != nil {
		set["short_description"] = *patch.ShortDescription
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Website != nil {
		set["website"] = *patch.Website
	}
	if patch.Location != nil {
		set["suburb"] = patch.Location.Suburb
		set["state"] = patch.Location.State
		set["postcode"] = patch.Location.Postcode
	}
	if patch.Categories != nil {
		set["categories"] = *patch.Categories
	}
	if patch.ResponseTime != nil {
		set["response_time"] = *patch.ResponseTime
	}
	if patch.WaitTime != nil {
		set["wait_time"] = *patch.WaitTime
	}
	if patch.PlanTypes != nil {
		set["plan_types"] = *patch.PlanTypes
	}
	if patch.Availability != nil {
		set["availability"] = *patch.Availability
	}
	if patch.ServiceAreas != nil {
		set["service_areas"] = *patch.ServiceAreas
	}
	return set
}

type participantDoc struct {
	ID                   string    `bson:"id"`
	FullName             string    `bson:"full_name"`
	Email                string    `bson:"email"`
	Phone                string    `bson:"phone,omitempty"`
	Suburb               string    `bson:"suburb"`
	State                string    `bson:"state"`
	Postcode             string    `bson:"postcode"`
	NDISNumber           string    `bson:"ndis_number"`
	PlanType             string    `bson:"plan_type"`
	Goals                []string  `bson:"goals"`
	Interests            []string  `bson:"interests"`
	FavouriteProviderIDs []string  `bson:"favourite_provider_ids"`
	CreatedAt            time.Time `bson:"created_at"`
}

func toParticipantDoc(p models.Participant) participantDoc {
	return participantDoc{
		ID:                   p.ID,
		FullName:             p.Name,
		Email:                p.Email,
		Phone:                p.Phone,
		Suburb:               p.Location.Suburb,
		State:                p.Location.State,
		Postcode:             p.Location.Postcode,
		NDISNumber:           p.NDISNumber,
		PlanType:             p.PlanType,
		Goals:                p.Goals,
		Interests:            p.Interests,
		FavouriteProviderIDs: p.Favourites,
		CreatedAt:            p.CreatedAt,
	}
}

func fromParticipantDoc(d participantDoc) models.Participant {
	return models.Participant{
		ID:         d.ID,
		Name:       d.FullName,
		Email:      d.Email,
		Phone:      d.Phone,
		Location:   models.Location{Suburb: d.Suburb, State: d.State, Postcode: d.Postcode},
		NDISNumber: d.NDISNumber,
		PlanType:   d.PlanType,
		Goals:      d.Goals,
		Interests:  d.Interests,
		Favourites: d.FavouriteProviderIDs,
		CreatedAt:  d.CreatedAt,
	}
}

func participantPatchSet(patch models.ParticipantPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["full_name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Location != nil {
		set["suburb"] = patch.Location.Suburb
		set["state"] = patch.Location.State
		set["postcode"] = patch.Location.Postcode
	}
	if patch.NDISNumber != nil {
		set["ndis_number"] = *patch.NDISNumber
	}
	if patch.PlanType != nil {
		set["plan_type"] = *patch.PlanType
	}
	if patch.Goals != nil {
		set["goals"] = *patch.Goals
	}
	if patch.Interests != nil {
		set["interests"] = *patch.Interests
	}
	return set
}

type reviewDoc struct {
	ID              string     `bson:"id"`
	ProviderID      string     `bson:"provider_id"`
	ParticipantID   string     `bson:"participant_id"`
	ParticipantName string     `bson:"participant_name"`
	Rating          int        `bson:"rating"`
	ReviewText      string     `bson:"review_text"`
	CreatedAt       time.Time  `bson:"created_at"`
	ResponseText    *string    `bson:"response_text,omitempty"`
	ResponseDate    *time.Time `bson:"response_date,omitempty"`
}

func toReviewDoc(r models.Review) reviewDoc {
	d := reviewDoc{
		ID:              r.ID,
		ProviderID:      r.ProviderID,
		ParticipantID:   r.ParticipantID,
		ParticipantName: r.ParticipantName,
		Rating:          r.Rating,
		ReviewText:      r.Text,
		CreatedAt:       r.CreatedAt,
	}
	if r.Response != nil {
		text, date := r.Response.Text, r.Response.Date
		d.ResponseText = &text
		d.ResponseDate = &date
	}
	return d
}

func fromReviewDoc(d reviewDoc) models.Review {
	r := models.Review{
		ID:              d.ID,
		ProviderID:      d.ProviderID,
		ParticipantID:   d.ParticipantID,
		ParticipantName: d.ParticipantName,
		Rating:          d.Rating,
		Text:            d.ReviewText,
		CreatedAt:       d.CreatedAt,
	}
	if d.ResponseText != nil {
		r.Response = &models.ReviewResponse{Text: *d.ResponseText}
		if d.ResponseDate != nil {
			r.Response.Date = *d.ResponseDate
		}
	}
	return r
}

type messageDoc struct {
	ID         string    `bson:"id"`
	SenderRole string    `bson:"sender_role"`
	Body       string    `bson:"body"`
	SentAt     time.Time `bson:"sent_at"`
}

func toMessageDoc(m models.Message) messageDoc {
	return messageDoc{ID: m.ID, SenderRole: string(m.Sender), Body: m.Text, SentAt: m.SentAt}
}

func fromMessageDoc(d messageDoc) models.Message {
	return models.Message{ID: d.ID, Sender: models.SenderRole(d.SenderRole), Text: d.Body, SentAt: d.SentAt}
}

type enquiryDoc struct {
	ID            string       `bson:"id"`
	ParticipantID string       `bson:"participant_id"`
	ProviderID    string       `bson:"provider_id"`
	Subject       string       `bson:"subject"`
	Status        string       `bson:"status"`
	Messages      []messageDoc `bson:"messages"`
	CreatedAt     time.Time    `bson:"created_at"`
	UpdatedAt     time.Time    `bson:"updated_at"`
}

func toEnquiryDoc(e models.Enquiry) enquiryDoc {
	msgs := make([]messageDoc, len(e.Messages))
	for i, m := range e.Messages {
		msgs[i] = toMessageDoc(m)
	}
	return enquiryDoc{
		ID:            e.ID,
		ParticipantID: e.ParticipantID,
		ProviderID:    e.ProviderID,
		Subject:       e.Subject,
		Status:        string(e.Status),
		Messages:      msgs,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func fromEnquiryDoc(d enquiryDoc) models.Enquiry {
	msgs := make([]models.Message, len(d.Messages))
	for i, m := range d.Messages {
		msgs[i] = fromMessageDoc(m)
	}
	return models.Enquiry{
		ID:            d.ID,
		ParticipantID: d.ParticipantID,
		ProviderID:    d.ProviderID,
		Subject:       d.Subject,
		Status:        models.EnquiryStatus(d.Status),
		Messages:      msgs,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type bookingDoc struct {
	ID              string    `bson:"id"`
	ParticipantID   string    `bson:"participant_id"`
	ProviderID      string    `bson:"provider_id"`
	ServiceName     string    `bson:"service_name"`
	BookingDate     string    `bson:"booking_date"`
	BookingTime     string    `bson:"booking_time"`
	DurationMinutes int       `bson:"duration_minutes"`
	Notes           string    `bson:"notes,omitempty"`
	Status          string    `bson:"status"`
	CreatedAt       time.Time `bson:"created_at"`
}

func toBookingDoc(b models.Booking) bookingDoc {
	return bookingDoc{
		ID:              b.ID,
		ParticipantID:   b.ParticipantID,
		ProviderID:      b.ProviderID,
		ServiceName:     b.Service,
		BookingDate:     b.Date,
		BookingTime:     b.Time,
		DurationMinutes: b.Duration,
		Notes:           b.Notes,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
	}
}

// fromBookingDoc maps an unknown status to pending.
func fromBookingDoc(d bookingDoc) models.Booking {
	status, ok := models.ParseBookingStatus(d.Status)
	if !ok {
		status = models.BookingPending
	}
	return models.Booking{
		ID:            d.ID,
		ParticipantID: d.ParticipantID,
		ProviderID:    d.ProviderID,
		Service:       d.ServiceName,
		Date:          d.BookingDate,
		Time:          d.BookingTime,
		Duration:      d.DurationMinutes,
		Notes:         d.Notes,
		Status:        status,
		CreatedAt:     d.CreatedAt,
	}
}
