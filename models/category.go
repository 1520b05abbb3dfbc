package models

// Category is a service category tag with its display name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Categories is the static catalogue of service categories.
var Categories = []Category{
	{ID: "support-work", Name: "Support Work"},
	{ID: "occupational-therapy", Name: "Occupational Therapy"},
	{ID: "physiotherapy", Name: "Physiotherapy"},
	{ID: "speech-pathology", Name: "Speech Pathology"},
	{ID: "psychology", Name: "Psychology"},
	{ID: "behaviour-support", Name: "Positive Behaviour Support"},
	{ID: "plan-management", Name: "Plan Management"},
	{ID: "support-coordination", Name: "Support Coordination"},
	{ID: "accommodation", Name: "Supported Independent Living"},
	{ID: "community-access", Name: "Community Access"},
	{ID: "transport", Name: "Transport"},
	{ID: "respite", Name: "Respite Care"},
}

var categoryNames = func() map[string]string {
	m := make(map[string]string, len(Categories))
	for _, c := range Categories {
		m[c.ID] = c.Name
	}
	return m
}()

// CategoryName returns the display name for a category id.
func CategoryName(id string) (string, bool) {
	name, ok := categoryNames[id]
	return name, ok
}
