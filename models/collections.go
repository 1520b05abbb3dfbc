package models

// Collections groups the domain collections loaded from a data source.
// A nil slice means the collection was not loaded.
type Collections struct {
	Providers    []Provider    `json:"providers,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
	Reviews      []Review      `json:"reviews,omitempty"`
	Enquiries    []Enquiry     `json:"enquiries,omitempty"`
	Bookings     []Booking     `json:"bookings,omitempty"`
}
