package interfaces

import domaintypes "masahiro/internal/domain/types"

// KeyResolver exposes the committed per-contact key material.
type KeyResolver interface {
	PrivateKey(id domaintypes.ContactID) (domaintypes.X25519Private, error)
	PublicKey(id domaintypes.ContactID) (string, error)
}

// IdentityService owns the pending identity and the per-contact bindings.
type IdentityService interface {
	KeyResolver

	PendingPublicKey() (string, error)
	RotatePendingIdentity() error
	CommitPendingIdentity(id domaintypes.ContactID) error
	DeleteBinding(id domaintypes.ContactID)
	Subscribe() (<-chan struct{}, func())
}

// MessageService seals and opens messages for contacts.
type MessageService interface {
	ValidatePublicKey(publicKey string) bool
	Encrypt(plaintext string, to domaintypes.Contact, mode domaintypes.Mode) (string, error)
	Decrypt(encoded string, using domaintypes.Contact, expected domaintypes.Mode) (string, error)
	DecryptSearchingAll(
		encoded string,
		candidates []domaintypes.Contact,
		expected domaintypes.Mode,
	) (domaintypes.Contact, string, error)
}

// ContactService maintains the list of known contacts.
type ContactService interface {
	AddContact(name, publicKey string) (domaintypes.Contact, error)
	DeleteContacts(ids ...domaintypes.ContactID) error
	Contacts() []domaintypes.Contact
	Contact(id domaintypes.ContactID) (domaintypes.Contact, bool)
	ContactForPublicKey(publicKey string) (domaintypes.Contact, bool)
}
