package models

import "time"

// Participant is a person looking for services.
type Participant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Location   Location  `json:"location"`
	NDISNumber string    `json:"ndisNumber"`
	PlanType   string    `json:"planType"`
	Goals      []string  `json:"goals"`
	Interests  []string  `json:"interests"`  // category ids
	Favourites []string  `json:"favourites"` // provider ids, no duplicates
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

// Clone returns a copy that shares no slices with p.
func (p Participant) Clone() Participant {
	out := p
	out.Goals = cloneStrings(p.Goals)
	out.Interests = cloneStrings(p.Interests)
	out.Favourites = cloneStrings(p.Favourites)
	return out
}

// IsFavourite reports whether providerID is in the favourites set.
func (p Participant) IsFavourite(providerID string) bool {
	return containsString(p.Favourites, providerID)
}

// ToggleFavourite returns the favourites set with providerID added when
// absent or removed when present.
func ToggleFavourite(favourites []string, providerID string) []string {
	out := make([]string, 0, len(favourites)+1)
	found := false
	for _, id := range favourites {
		if id == providerID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, providerID)
	}
	return out
}

// ParticipantPatch is a partial profile update. Nil fields are left untouched.
type ParticipantPatch struct {
	Name       *string   `json:"name,omitempty"`
	Email      *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string   `json:"phone,omitempty"`
	Location   *Location `json:"location,omitempty"`
	NDISNumber *string   `json:"ndisNumber,omitempty"`
	PlanType   *string   `json:"planType,omitempty" validate:"omitempty,oneof=self-managed plan-managed ndia-managed"`
	Goals      *[]string `json:"goals,omitempty"`
	Interests  *[]string `json:"interests,omitempty"`
}

// Apply merges the patch into p and returns the result. p is not modified.
func (patch ParticipantPatch) Apply(p Participant) Participant {
	out := p.Clone()
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	if patch.Phone != nil {
		out.Phone = *patch.Phone
	}
	if patch.Location != nil {
		out.Location = *patch.Location
	}
	if patch.NDISNumber != nil {
		out.NDISNumber = *patch.NDISNumber
	}
	if patch.PlanType != nil {
		out.PlanType = *patch.PlanType
	}
	if patch.Goals != nil {
		out.Goals = cloneStrings(*patch.Goals)
	}
	if patch.Interests != nil {
		out.Interests = cloneStrings(*patch.Interests)
	}
	return out
}
