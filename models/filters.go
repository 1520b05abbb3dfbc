package models

// Wait time buckets accepted by the search filter.
const (
	WaitImmediate = "immediate"
	WaitOneWeek   = "1-week"
	WaitTwoWeeks  = "2-weeks"
	WaitOneMonth  = "1-month"
)

// FilterSet is the structured part of a directory search.
// Zero values mean "no filter".
type FilterSet struct {
	Category     string  `json:"category,omitempty" form:"category"`
	Location     string  `json:"location,omitempty" form:"location"`
	WaitTime     string  `json:"waitTime,omitempty" form:"waitTime"`
	PlanType     string  `json:"planType,omitempty" form:"planType"`
	MinRating    float64 `json:"minRating,omitempty" form:"minRating"`
	VerifiedOnly bool    `json:"verifiedOnly,omitempty" form:"verified"`
}
