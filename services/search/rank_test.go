package search

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/models"
)

func ids(providers []models.Provider) []string {
	out := make([]string, len(providers))
	for i, p := range providers {
		out[i] = p.ID
	}
	return out
}

func TestRankTierDominatesRating(t *testing.T) {
	a := models.Provider{ID: "A", Tier: models.TierPremium, Rating: 4.8, ResponseRate: 98}
	b := models.Provider{ID: "B", Tier: models.TierFree, Rating: 5.0, ResponseRate: 100}

	assert.Equal(t, []string{"A", "B"}, ids(Rank([]models.Provider{a, b}, "", models.FilterSet{})))
	assert.Equal(t, []string{"A", "B"}, ids(Rank([]models.Provider{b, a}, "", models.FilterSet{})))
}

func TestRankImmediatePassesAnyCeiling(t *testing.T) {
	p := models.Provider{ID: "now", WaitTime: "Immediate"}
	slow := models.Provider{ID: "slow", WaitTime: "3 weeks"}

	got := Rank([]models.Provider{p, slow}, "", models.FilterSet{WaitTime: models.WaitOneWeek})
	assert.Equal(t, []string{"now"}, ids(got))

	got = Rank([]models.Provider{p, slow}, "", models.FilterSet{WaitTime: models.WaitImmediate})
	assert.Equal(t, []string{"now"}, ids(got))
}

func TestRankUnknownWaitBucketIsIgnored(t *testing.T) {
	slow := models.Provider{ID: "slow", WaitTime: "6 months"}
	got := Rank([]models.Provider{slow}, "", models.FilterSet{WaitTime: "whenever"})
	assert.Equal(t, []string{"slow"}, ids(got))
}

func TestRankTextMatch(t *testing.T) {
	providers := []models.Provider{
		{ID: "name", Name: "Bayside Physio"},
		{ID: "desc", Description: "We offer hydrotherapy"},
		{ID: "short", ShortDescription: "Mobile OT"},
		{ID: "suburb", Location: models.Location{Suburb: "Parramatta"}},
		{ID: "area", ServiceAreas: []string{"Inner West"}},
		{ID: "category", Categories: []string{"speech-pathology"}},
		{ID: "none", Name: "Unrelated"},
	}
	cases := map[string]string{
		"physio":        "name",
		"HYDRO":         "desc",
		"mobile ot":     "short",
		"parramatta":    "suburb",
		"inner":         "area",
		"speech path":   "category",
		"no such thing": "",
	}
	for query, want := range cases {
		got := ids(Rank(providers, query, models.FilterSet{}))
		if want == "" {
			assert.Empty(t, got, query)
			continue
		}
		assert.Equal(t, []string{want}, got, query)
	}
}

func TestRankQueryWhitespaceIsSignificant(t *testing.T) {
	providers := []models.Provider{
		{ID: "joined", Name: "Homecare Plus"},
		{ID: "spaced", Name: "Home Care Collective"},
	}
	assert.Equal(t, []string{"spaced"}, ids(Rank(providers, " care", models.FilterSet{})))
	assert.Equal(t, []string{"joined", "spaced"}, ids(Rank(providers, "care", models.FilterSet{})))
}

func TestRankLocation(t *testing.T) {
	providers := []models.Provider{
		{ID: "home", Location: models.Location{Suburb: "Newtown"}},
		{ID: "serves", Location: models.Location{Suburb: "Glebe"}, ServiceAreas: []string{"Newtown and surrounds"}},
		{ID: "elsewhere", Location: models.Location{Suburb: "Manly"}},
	}
	got := Rank(providers, "", models.FilterSet{Location: "newtown"})
	assert.ElementsMatch(t, []string{"home", "serves"}, ids(got))
}

func TestRankUnknownCategoryMatchesNothing(t *testing.T) {
	providers := []models.Provider{{ID: "p", Categories: []string{"physiotherapy"}}}
	assert.Empty(t, Rank(providers, "", models.FilterSet{Category: "astrology"}))
}

func TestRankDoesNotModifyInput(t *testing.T) {
	in := []models.Provider{
		{ID: "low", Tier: models.TierFree},
		{ID: "high", Tier: models.TierPremium},
	}
	_ = Rank(in, "", models.FilterSet{})
	assert.Equal(t, []string{"low", "high"}, ids(in))
}

func TestRankIsStable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var providers []models.Provider
	for i := 0; i < 12; i++ {
		providers = append(providers, models.Provider{
			ID:           fmt.Sprintf("tie-%d", i),
			Tier:         models.TierPro,
			Rating:       4.5,
			ResponseRate: 90,
		})
	}
	providers = append(providers,
		models.Provider{ID: "top", Tier: models.TierPremium, Rating: 5, ResponseRate: 100},
		models.Provider{ID: "bottom", Tier: models.TierFree, Rating: 1, ResponseRate: 10},
	)

	for round := 0; round < 20; round++ {
		shuffled := make([]models.Provider, len(providers))
		for i, j := range rng.Perm(len(providers)) {
			shuffled[i] = providers[j]
		}
		var inputTies []string
		for _, p := range shuffled {
			if strings.HasPrefix(p.ID, "tie-") {
				inputTies = append(inputTies, p.ID)
			}
		}

		got := ids(Rank(shuffled, "", models.FilterSet{}))
		require.Len(t, got, len(providers))
		assert.Equal(t, "top", got[0])
		assert.Equal(t, "bottom", got[len(got)-1])
		assert.Equal(t, inputTies, got[1:len(got)-1])
	}
}

var (
	suburbs    = []string{"Newtown", "Glebe", "Manly", "Penrith"}
	waitTimes  = []string{"Immediate", "1 week", "2 weeks", "3 weeks", "1 month", "2 months", "Call us", ""}
	waitBucket = []string{"", models.WaitImmediate, models.WaitOneWeek, models.WaitTwoWeeks, models.WaitOneMonth, "bogus"}
	plans      = []string{models.PlanSelfManaged, models.PlanManaged, models.PlanNDIAManaged}
	tiers      = []models.Tier{models.TierFree, models.TierPro, models.TierPremium}
	queries    = []string{"", "physio", "therapy", "newtown", "support", "zzz"}
)

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

func randomProvider(rng *rand.Rand, i int) models.Provider {
	p := models.Provider{
		ID:           fmt.Sprintf("p%d", i),
		Name:         pick(rng, []string{"Physio Plus", "Bright Support", "Care Co", "Therapy Hub"}),
		Location:     models.Location{Suburb: pick(rng, suburbs)},
		Categories:   []string{pick(rng, models.Categories).ID},
		Tier:         pick(rng, tiers),
		Verified:     rng.Intn(2) == 0,
		Rating:       float64(rng.Intn(51)) / 10,
		ResponseRate: rng.Intn(101),
		WaitTime:     pick(rng, waitTimes),
	}
	if rng.Intn(2) == 0 {
		p.ServiceAreas = []string{pick(rng, suburbs) + " region"}
	}
	for _, plan := range plans {
		if rng.Intn(2) == 0 {
			p.PlanTypes = append(p.PlanTypes, plan)
		}
	}
	return p
}

func randomFilters(rng *rand.Rand) models.FilterSet {
	var f models.FilterSet
	if rng.Intn(3) == 0 {
		f.Category = pick(rng, models.Categories).ID
	}
	if rng.Intn(3) == 0 {
		f.Location = pick(rng, suburbs)
	}
	f.WaitTime = pick(rng, waitBucket)
	if rng.Intn(3) == 0 {
		f.PlanType = pick(rng, plans)
	}
	if rng.Intn(3) == 0 {
		f.MinRating = float64(rng.Intn(6))
	}
	f.VerifiedOnly = rng.Intn(3) == 0
	return f
}

// predicates mirrors each filter stage independently of Rank.
func predicates(query string, f models.FilterSet) map[string]func(models.Provider) bool {
	return map[string]func(models.Provider) bool{
		"query": func(p models.Provider) bool {
			return query == "" || matchesQuery(p, strings.ToLower(query))
		},
		"category": func(p models.Provider) bool {
			return f.Category == "" || p.HasCategory(f.Category)
		},
		"location": func(p models.Provider) bool {
			return f.Location == "" || servesLocation(p, f.Location)
		},
		"wait": func(p models.Provider) bool {
			ceiling, ok := WaitCeiling(f.WaitTime)
			if !ok {
				return true
			}
			days, parsed := ParseWaitDays(p.WaitTime)
			return !parsed || days <= ceiling
		},
		"plan": func(p models.Provider) bool {
			return f.PlanType == "" || p.AcceptsPlan(f.PlanType)
		},
		"rating": func(p models.Provider) bool {
			return p.Rating >= f.MinRating
		},
		"verified": func(p models.Provider) bool {
			return !f.VerifiedOnly || p.Verified
		},
	}
}

func TestRankRandomFiltersAreConjunctive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 300; round++ {
		providers := make([]models.Provider, 25)
		for i := range providers {
			providers[i] = randomProvider(rng, i)
		}
		query := pick(rng, queries)
		filters := randomFilters(rng)
		checks := predicates(query, filters)

		got := Rank(providers, query, filters)

		returned := map[string]bool{}
		for _, p := range got {
			returned[p.ID] = true
			for name, check := range checks {
				assert.True(t, check(p), "round %d: %s failed %s filter (%+v)", round, p.ID, name, filters)
			}
		}
		for _, p := range providers {
			all := true
			for _, check := range checks {
				all = all && check(p)
			}
			assert.Equal(t, all, returned[p.ID], "round %d: %s", round, p.ID)
		}
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, Score(got[i-1]), Score(got[i]))
		}
	}
}
