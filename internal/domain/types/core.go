package types

// ContactID is the stable identifier a contact keeps for its whole lifetime.
// Key bindings are looked up by it, so it never changes once assigned.
type ContactID string

// String returns the string form of the contact identifier.
func (id ContactID) String() string { return string(id) }
