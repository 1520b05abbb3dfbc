package models

// Tier is a provider's subscription level. Tiers are ordered free < pro < premium.
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// ParseTier returns the tier named by s and whether it is a known tier.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierFree, TierPro, TierPremium:
		return Tier(s), true
	}
	return TierFree, false
}

// Level orders tiers; unknown tiers rank as free.
func (t Tier) Level() int {
	switch t {
	case TierPremium:
		return 2
	case TierPro:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether t is the same as or above other.
func (t Tier) AtLeast(other Tier) bool {
	return t.Level() >= other.Level()
}

// RankingWeight is the search placement bonus paid for by the tier.
func (t Tier) RankingWeight() float64 {
	switch t {
	case TierPremium:
		return 100
	case TierPro:
		return 50
	default:
		return 0
	}
}

// Feature gates. These are derived from the tier on every read and never stored.

// CanViewAnalytics reports whether the provider may open the analytics dashboard.
func CanViewAnalytics(p Provider) bool {
	return p.Tier.AtLeast(TierPro)
}

// CanDirectBook reports whether participants may book the provider without an enquiry first.
func CanDirectBook(p Provider) bool {
	return p.Tier.AtLeast(TierPremium)
}

// CanRespondToReviews reports whether the provider may publish responses to reviews.
func CanRespondToReviews(p Provider) bool {
	return p.Tier.AtLeast(TierPro)
}

// DescriptionLimit is the maximum listing description length in characters.
func DescriptionLimit(p Provider) int {
	switch {
	case p.Tier.AtLeast(TierPremium):
		return 2000
	case p.Tier.AtLeast(TierPro):
		return 500
	default:
		return 150
	}
}
