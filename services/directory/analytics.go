package directory

import (
	"fmt"

	"carelink/models"
)

// Analytics is the data behind a provider's analytics dashboard.
type Analytics struct {
	ProviderID         string                       `json:"providerId"`
	Tier               models.Tier                  `json:"tier"`
	Stats              models.MonthlyStats          `json:"stats"`
	Rating             float64                      `json:"rating"`
	ReviewCount        int                          `json:"reviewCount"`
	RatingDistribution [5]int                       `json:"ratingDistribution"` // index 0 is one star
	Responded          int                          `json:"responded"`
	EnquiriesByStatus  map[models.EnquiryStatus]int `json:"enquiriesByStatus"`
	BookingsByStatus   map[models.BookingStatus]int `json:"bookingsByStatus"`
	ConversionRate     float64                      `json:"conversionRate"` // enquiries per 100 views
}

// Analytics summarises a provider's activity for the provider itself or an admin.
func (s *Service) Analytics(providerID string) (Analytics, error) {
	state := s.store.State()
	sess, err := s.session(state)
	if err != nil {
		return Analytics{}, err
	}
	if sess.Role != models.RoleAdmin && !(sess.Role == models.RoleProvider && sess.ID == providerID) {
		return Analytics{}, ErrForbidden
	}
	p, err := s.provider(state, providerID)
	if err != nil {
		return Analytics{}, err
	}
	if sess.Role != models.RoleAdmin && !models.CanViewAnalytics(p) {
		return Analytics{}, fmt.Errorf("analytics: %w", ErrFeatureUnavailable)
	}

	a := Analytics{
		ProviderID:        p.ID,
		Tier:              p.Tier,
		Stats:             p.Stats,
		Rating:            p.Rating,
		ReviewCount:       p.ReviewCount,
		EnquiriesByStatus: map[models.EnquiryStatus]int{},
		BookingsByStatus:  map[models.BookingStatus]int{},
	}
	for _, r := range state.ReviewsFor(p.ID) {
		if r.Rating >= 1 && r.Rating <= 5 {
			a.RatingDistribution[r.Rating-1]++
		}
		if r.Response != nil {
			a.Responded++
		}
	}
	for _, e := range state.Enquiries {
		if e.ProviderID == p.ID {
			a.EnquiriesByStatus[e.Status]++
		}
	}
	for _, b := range state.Bookings {
		if b.ProviderID == p.ID {
			a.BookingsByStatus[b.Status]++
		}
	}
	if p.Stats.Views > 0 {
		a.ConversionRate = float64(p.Stats.Enquiries) / float64(p.Stats.Views) * 100
	}
	return a, nil
}
