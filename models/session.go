package models

// Role is the kind of identity behind a session.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleProvider    Role = "provider"
	RoleAdmin       Role = "admin"
)

// Session is the currently authenticated identity. It carries a cached copy
// of the profile it stands for, kept in step with the canonical collection.
type Session struct {
	ID          string       `json:"id"`
	Role        Role         `json:"role"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Participant *Participant `json:"participant,omitempty"`
	Provider    *Provider    `json:"provider,omitempty"`
}

// Clone returns a deep copy of s.
func (s Session) Clone() Session {
	out := s
	if s.Participant != nil {
		p := s.Participant.Clone()
		out.Participant = &p
	}
	if s.Provider != nil {
		p := s.Provider.Clone()
		out.Provider = &p
	}
	return out
}

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)
