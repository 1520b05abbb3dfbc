package models

import "time"

// Plan payment types a provider may accept.
const (
	PlanSelfManaged = "self-managed"
	PlanManaged     = "plan-managed"
	PlanNDIAManaged = "ndia-managed"
)

// Location is where an entity is based.
type Location struct {
	Suburb   string `json:"suburb"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
}

// MonthlyStats are usage counters reset at the start of each month.
type MonthlyStats struct {
	Views     int `json:"views"`
	Enquiries int `json:"enquiries"`
	Bookings  int `json:"bookings"`
}

// Provider is a business listed in the directory.
type Provider struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"shortDescription"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Website          string            `json:"website,omitempty"`
	Location         Location          `json:"location"`
	Categories       []string          `json:"categories"`
	Tier             Tier              `json:"tier"`
	Verified         bool              `json:"verified"`
	Rating           float64           `json:"rating"`       // 0.0 - 5.0
	ReviewCount      int               `json:"reviewCount"`  // cached from reviews
	ResponseRate     int               `json:"responseRate"` // 0 - 100
	ResponseTime     string            `json:"responseTime"` // e.g. "Within 24 hours"
	WaitTime         string            `json:"waitTime"`     // e.g. "Immediate", "2 weeks"
	PlanTypes        []string          `json:"planTypes"`
	Availability     map[string]string `json:"availability"` // day -> hours or "Closed"
	ServiceAreas     []string          `json:"serviceAreas"`
	Stats            MonthlyStats      `json:"stats"`
	CreatedAt        time.Time         `json:"createdAt,omitzero"`
}

// Clone returns a copy that shares no slices or maps with p.
func (p Provider) Clone() Provider {
	out := p
	out.Categories = cloneStrings(p.Categories)
	out.PlanTypes = cloneStrings(p.PlanTypes)
	out.ServiceAreas = cloneStrings(p.ServiceAreas)
	if p.Availability != nil {
		out.Availability = make(map[string]string, len(p.Availability))
		for day, hours := range p.Availability {
			out.Availability[day] = hours
		}
	}
	return out
}

// HasCategory reports whether the provider carries the category tag.
func (p Provider) HasCategory(id string) bool {
	return containsString(p.Categories, id)
}

// AcceptsPlan reports whether the provider accepts the plan payment type.
func (p Provider) AcceptsPlan(planType string) bool {
	return containsString(p.PlanTypes, planType)
}

// ProviderPatch is a partial profile update. Nil fields are left untouched.
type ProviderPatch struct {
	Name             *string            `json:"name,omitempty"`
	Description      *string            `json:"description,omitempty"`
	ShortDescription *string            `json:"shortDescription,omitempty" validate:"omitempty,max=160"`
	Email            *string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string            `json:"phone,omitempty"`
	Website          *string            `json:"website,omitempty" validate:"omitempty,url"`
	Location         *Location          `json:"location,omitempty"`
	Categories       *[]string          `json:"categories,omitempty" validate:"omitempty,min=1"`
	ResponseTime     *string            `json:"responseTime,omitempty"`
	WaitTime         *string            `json:"waitTime,omitempty"`
	PlanTypes        *[]string          `json:"planTypes,omitempty"`
	Availability     *map[string]string `json:"availability,omitempty"`
	ServiceAreas     *[]string          `json:"serviceAreas,omitempty"`
}

// Apply merges the patch into p and returns the result. p is not modified.
func (patch ProviderPatch) Apply(p Provider) Provider {
	out := p.Clone()
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.ShortDescription != nil {
		out.ShortDescription = *patch.ShortDescription
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	if patch.Phone != nil {
		out.Phone = *patch.Phone
	}
	if patch.Website != nil {
		out.Website = *patch.Website
	}
	if patch.Location != nil {
		out.Location = *patch.Location
	}
	if patch.Categories != nil {
		out.Categories = cloneStrings(*patch.Categories)
	}
	if patch.ResponseTime != nil {
		out.ResponseTime = *patch.ResponseTime
	}
	if patch.WaitTime != nil {
		out.WaitTime = *patch.WaitTime
	}
	if patch.PlanTypes != nil {
		out.PlanTypes = cloneStrings(*patch.PlanTypes)
	}
	if patch.Availability != nil {
		out.Availability = make(map[string]string, len(*patch.Availability))
		for day, hours := range *patch.Availability {
			out.Availability[day] = hours
		}
	}
	if patch.ServiceAreas != nil {
		out.ServiceAreas = cloneStrings(*patch.ServiceAreas)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
