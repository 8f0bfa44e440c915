package types

import "time"

// Contact is a known correspondent.
//
// PublicKey is the correspondent's base64url X25519 key as they shared it.
// ID and PublicKey are immutable once a private key has been bound to the
// contact.
type Contact struct {
	ID        ContactID `json:"id"`
	Name      string    `json:"name"`
	PublicKey string    `json:"publicKey"`
	CreatedAt time.Time `json:"createdAt"`
}
