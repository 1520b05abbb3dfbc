// Package seed holds the bundled dataset used when no remote backend is
// configured.
package seed

import (
	"time"

	"carelink/models"
)

// Account is a demo login bundled with the dataset.
type Account struct {
	Email     string
	Password  string
	Role      models.Role
	SubjectID string
	Name      string
}

var epoch = time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

func weekdays(hours string) map[string]string {
	return map[string]string{
		"Monday": hours, "Tuesday": hours, "Wednesday": hours, "Thursday": hours, "Friday": hours,
		"Saturday": "Closed", "Sunday": "Closed",
	}
}

// Collections returns a fresh copy of the bundled dataset.
func Collections() models.Collections {
	return models.Collections{
		Providers:    providers(),
		Participants: participants(),
		Reviews:      reviews(),
		Enquiries:    []models.Enquiry{},
		Bookings:     []models.Booking{},
	}
}

func providers() []models.Provider {
	return []models.Provider{
		{
			ID:               "prov-harbour-therapy",
			Name:             "Harbour Allied Health",
			Description:      "Physiotherapy and occupational therapy delivered in clinic or at home across the Northern Beaches.",
			ShortDescription: "Physio and OT, clinic or home visits",
			Email:            "hello@harbourallied.example",
			Phone:            "02 9970 1100",
			Website:          "https://harbourallied.example",
			Location:         models.Location{Suburb: "Manly", State: "NSW", Postcode: "2095"},
			Categories:       []string{"physiotherapy", "occupational-therapy"},
			Tier:             models.TierPremium,
			Verified:         true,
			Rating:           4.8,
			ReviewCount:      2,
			ResponseRate:     98,
			ResponseTime:     "Within 2 hours",
			WaitTime:         "Immediate",
			PlanTypes:        []string{models.PlanSelfManaged, models.PlanManaged, models.PlanNDIAManaged},
			Availability:     weekdays("8am - 6pm"),
			ServiceAreas:     []string{"Northern Beaches", "North Sydney"},
			Stats:            models.MonthlyStats{Views: 412, Enquiries: 18, Bookings: 9},
			CreatedAt:        epoch,
		},
		{
			ID:               "prov-brightpath",
			Name:             "BrightPath Support Services",
			Description:      "Support workers for daily living, community access and respite, matched to your interests.",
			ShortDescription: "Daily living and community access support",
			Email:            "team@brightpath.example",
			Phone:            "02 9635 2200",
			Location:         models.Location{Suburb: "Parramatta", State: "NSW", Postcode: "2150"},
			Categories:       []string{"support-work", "community-access", "respite"},
			Tier:             models.TierPro,
			Verified:         true,
			Rating:           4.6,
			ReviewCount:      1,
			ResponseRate:     92,
			ResponseTime:     "Within 24 hours",
			WaitTime:         "1 week",
			PlanTypes:        []string{models.PlanSelfManaged, models.PlanManaged},
			Availability:     weekdays("7am - 9pm"),
			ServiceAreas:     []string{"Western Sydney", "Blacktown", "Penrith"},
			Stats:            models.MonthlyStats{Views: 288, Enquiries: 11, Bookings: 5},
			CreatedAt:        epoch.AddDate(0, 0, 3),
		},
		{
			ID:               "prov-clearvoice",
			Name:             "ClearVoice Speech Pathology",
			Description:      "Paediatric and adult speech pathology, including AAC assessment and telehealth sessions.",
			ShortDescription: "Speech pathology and AAC",
			Email:            "admin@clearvoice.example",
			Phone:            "03 9419 3300",
			Location:         models.Location{Suburb: "Fitzroy", State: "VIC", Postcode: "3065"},
			Categories:       []string{"speech-pathology"},
			Tier:             models.TierFree,
			Verified:         true,
			Rating:           5.0,
			ReviewCount:      1,
			ResponseRate:     100,
			ResponseTime:     "Within 48 hours",
			WaitTime:         "3 weeks",
			PlanTypes:        []string{models.PlanSelfManaged, models.PlanManaged},
			Availability:     weekdays("9am - 5pm"),
			ServiceAreas:     []string{"Inner Melbourne", "Telehealth"},
			Stats:            models.MonthlyStats{Views: 97, Enquiries: 4, Bookings: 2},
			CreatedAt:        epoch.AddDate(0, 0, 10),
		},
		{
			ID:               "prov-steady-steps",
			Name:             "Steady Steps Behaviour Support",
			Description:      "Positive behaviour support practitioners developing plans with families and support teams.",
			ShortDescription: "Positive behaviour support plans",
			Email:            "contact@steadysteps.example",
			Phone:            "07 3846 4400",
			Location:         models.Location{Suburb: "South Brisbane", State: "QLD", Postcode: "4101"},
			Categories:       []string{"behaviour-support", "psychology"},
			Tier:             models.TierPro,
			Verified:         false,
			Rating:           4.2,
			ReviewCount:      1,
			ResponseRate:     85,
			ResponseTime:     "Within 24 hours",
			WaitTime:         "1 month",
			PlanTypes:        []string{models.PlanManaged, models.PlanNDIAManaged},
			Availability:     weekdays("9am - 5pm"),
			ServiceAreas:     []string{"Brisbane", "Logan"},
			Stats:            models.MonthlyStats{Views: 150, Enquiries: 6, Bookings: 1},
			CreatedAt:        epoch.AddDate(0, 1, 0),
		},
		{
			ID:               "prov-ledger-plan",
			Name:             "Ledger Plan Management",
			Description:      "Registered plan managers paying invoices within two business days with monthly budget statements.",
			ShortDescription: "Fast, transparent plan management",
			Email:            "support@ledgerplan.example",
			Phone:            "1300 555 010",
			Location:         models.Location{Suburb: "Adelaide", State: "SA", Postcode: "5000"},
			Categories:       []string{"plan-management", "support-coordination"},
			Tier:             models.TierFree,
			Verified:         true,
			Rating:           4.4,
			ReviewCount:      0,
			ResponseRate:     90,
			ResponseTime:     "Same day",
			WaitTime:         "Immediate",
			PlanTypes:        []string{models.PlanManaged},
			Availability:     weekdays("8:30am - 5pm"),
			ServiceAreas:     []string{"Australia-wide"},
			Stats:            models.MonthlyStats{Views: 64, Enquiries: 2},
			CreatedAt:        epoch.AddDate(0, 1, 5),
		},
		{
			ID:               "prov-roam-transport",
			Name:             "Roam Accessible Transport",
			Description:      "Wheelchair accessible vehicles for appointments, work and social outings.",
			ShortDescription: "Accessible transport",
			Email:            "bookings@roam.example",
			Phone:            "08 9228 6600",
			Location:         models.Location{Suburb: "Northbridge", State: "WA", Postcode: "6003"},
			Categories:       []string{"transport", "community-access"},
			Tier:             models.TierFree,
			Verified:         false,
			Rating:           3.9,
			ReviewCount:      0,
			ResponseRate:     70,
			ResponseTime:     "Within 3 days",
			WaitTime:         "Please call",
			PlanTypes:        []string{models.PlanSelfManaged},
			Availability:     map[string]string{"Monday": "6am - 10pm", "Saturday": "8am - 4pm", "Sunday": "Closed"},
			ServiceAreas:     []string{"Perth Metro"},
			CreatedAt:        epoch.AddDate(0, 2, 0),
		},
	}
}

func participants() []models.Participant {
	return []models.Participant{
		{
			ID:         "part-alex",
			Name:       "Alex Nguyen",
			Email:      "alex@example.com",
			Phone:      "0412 000 111",
			Location:   models.Location{Suburb: "Dee Why", State: "NSW", Postcode: "2099"},
			NDISNumber: "430000001",
			PlanType:   models.PlanManaged,
			Goals:      []string{"Improve mobility", "Join a community sports group"},
			Interests:  []string{"physiotherapy", "community-access"},
			Favourites: []string{"prov-harbour-therapy"},
			CreatedAt:  epoch.AddDate(0, 0, 14),
		},
		{
			ID:         "part-priya",
			Name:       "Priya Shah",
			Email:      "priya@example.com",
			Location:   models.Location{Suburb: "Fitzroy", State: "VIC", Postcode: "3065"},
			NDISNumber: "430000002",
			PlanType:   models.PlanSelfManaged,
			Goals:      []string{"Communicate with new AAC device"},
			Interests:  []string{"speech-pathology"},
			Favourites: []string{},
			CreatedAt:  epoch.AddDate(0, 0, 20),
		},
	}
}

func reviews() []models.Review {
	return []models.Review{
		{
			ID: "rev-1", ProviderID: "prov-harbour-therapy", ParticipantID: "part-alex", ParticipantName: "Alex N.",
			Rating: 5, Text: "Home visits made a huge difference to my rehab.", CreatedAt: epoch.AddDate(0, 1, 2),
			Response: &models.ReviewResponse{Text: "Thanks Alex, great to see your progress!", Date: epoch.AddDate(0, 1, 3)},
		},
		{
			ID: "rev-2", ProviderID: "prov-harbour-therapy", ParticipantID: "part-priya", ParticipantName: "Priya S.",
			Rating: 5, Text: "Friendly and punctual.", CreatedAt: epoch.AddDate(0, 1, 9),
		},
		{
			ID: "rev-3", ProviderID: "prov-brightpath", ParticipantID: "part-alex", ParticipantName: "Alex N.",
			Rating: 5, Text: "My support worker shares my love of footy.", CreatedAt: epoch.AddDate(0, 1, 12),
		},
		{
			ID: "rev-4", ProviderID: "prov-clearvoice", ParticipantID: "part-priya", ParticipantName: "Priya S.",
			Rating: 5, Text: "Set up my AAC device patiently.", CreatedAt: epoch.AddDate(0, 1, 15),
		},
		{
			ID: "rev-5", ProviderID: "prov-steady-steps", ParticipantID: "part-alex", ParticipantName: "Alex N.",
			Rating: 4, Text: "Useful plan, communication could be quicker.", CreatedAt: epoch.AddDate(0, 1, 20),
		},
	}
}

// Accounts returns the demo logins for the bundled dataset.
func Accounts() []Account {
	return []Account{
		{Email: "alex@example.com", Password: "participant123", Role: models.RoleParticipant, SubjectID: "part-alex", Name: "Alex Nguyen"},
		{Email: "priya@example.com", Password: "participant123", Role: models.RoleParticipant, SubjectID: "part-priya", Name: "Priya Shah"},
		{Email: "hello@harbourallied.example", Password: "provider123", Role: models.RoleProvider, SubjectID: "prov-harbour-therapy", Name: "Harbour Allied Health"},
		{Email: "team@brightpath.example", Password: "provider123", Role: models.RoleProvider, SubjectID: "prov-brightpath", Name: "BrightPath Support Services"},
		{Email: "admin@carelink.example", Password: "admin123", Role: models.RoleAdmin, SubjectID: "admin-1", Name: "Directory Admin"},
	}
}
