package search

import (
	"sort"
	"strings"

	"carelink/models"
)

// Score weights.
const (
	RatingWeight       = 10.0
	ResponseRateWeight = 0.5
)

// Score is the ranking score of a provider. Higher ranks first.
func Score(p models.Provider) float64 {
	return p.Tier.RankingWeight() + p.Rating*RatingWeight + float64(p.ResponseRate)*ResponseRateWeight
}

// Rank filters providers by query and filters and orders the survivors by
// Score, descending. Providers with equal scores keep their input order.
// The input slice is not modified.
func Rank(providers []models.Provider, query string, filters models.FilterSet) []models.Provider {
	type scoredProvider struct {
		Provider models.Provider
		Score    float64
	}

	query = strings.ToLower(query)
	ceiling, waitFilter := WaitCeiling(filters.WaitTime)

	scored := make([]scoredProvider, 0, len(providers))
	for _, p := range providers {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if filters.Category != "" && !p.HasCategory(filters.Category) {
			continue
		}
		if filters.Location != "" && !servesLocation(p, filters.Location) {
			continue
		}
		if waitFilter && !withinWait(p.WaitTime, ceiling) {
			continue
		}
		if filters.PlanType != "" && !p.AcceptsPlan(filters.PlanType) {
			continue
		}
		if filters.MinRating > 0 && p.Rating < filters.MinRating {
			continue
		}
		if filters.VerifiedOnly && !p.Verified {
			continue
		}
		scored = append(scored, scoredProvider{Provider: p, Score: Score(p)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	ranked := make([]models.Provider, len(scored))
	for i, sp := range scored {
		ranked[i] = sp.Provider
	}
	return ranked
}

// matchesQuery expects query already lower-cased.
func matchesQuery(p models.Provider, query string) bool {
	fields := []string{p.Name, p.Description, p.ShortDescription, p.Location.Suburb}
	fields = append(fields, p.ServiceAreas...)
	for _, id := range p.Categories {
		if name, ok := models.CategoryName(id); ok {
			fields = append(fields, name)
		}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func servesLocation(p models.Provider, suburb string) bool {
	if strings.EqualFold(p.Location.Suburb, suburb) {
		return true
	}
	needle := strings.ToLower(suburb)
	for _, area := range p.ServiceAreas {
		if strings.Contains(strings.ToLower(area), needle) {
			return true
		}
	}
	return false
}
