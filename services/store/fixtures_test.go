package store

import (
	"time"

	"carelink/models"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func fixtureState() State {
	st := NewState(0)
	st.Providers = []models.Provider{
		{
			ID:           "p1",
			Name:         "Sunrise Support",
			Email:        "hello@sunrise.example",
			Categories:   []string{"daily-living"},
			Tier:         models.TierFree,
			Rating:       4.0,
			ReviewCount:  2,
			ResponseRate: 90,
			WaitTime:     "2 weeks",
			PlanTypes:    []string{models.PlanSelfManaged},
		},
		{
			ID:           "p2",
			Name:         "Harbour Therapy",
			Email:        "team@harbour.example",
			Categories:   []string{"therapy"},
			Tier:         models.TierPremium,
			Rating:       4.8,
			ReviewCount:  10,
			ResponseRate: 98,
			WaitTime:     "Immediate",
		},
	}
	st.Participants = []models.Participant{
		{ID: "u1", Name: "Alex", Email: "alex@example.com", Favourites: []string{"p2"}},
		{ID: "u2", Name: "Sam", Email: "sam@example.com"},
	}
	return st
}

func participantSession(st State, id string) State {
	p, _ := st.Participant(id)
	cached := p.Clone()
	return Reduce(st, Login{Session: models.Session{
		ID: p.ID, Role: models.RoleParticipant, Name: p.Name, Email: p.Email, Participant: &cached,
	}})
}

func providerSession(st State, id string) State {
	p, _ := st.Provider(id)
	cached := p.Clone()
	return Reduce(st, Login{Session: models.Session{
		ID: p.ID, Role: models.RoleProvider, Name: p.Name, Email: p.Email, Provider: &cached,
	}})
}

func msg(id string, sender models.SenderRole, text string, at time.Time) models.Message {
	return models.Message{ID: id, Sender: sender, Text: text, SentAt: at}
}
