package interfaces

import domaintypes "masahiro/internal/domain/types"

// SecureKeyStore is a durable, device-local byte store for key material.
//
// All accounts live in one logical service namespace fixed at construction.
// Read reports ok=false for an absent account; Delete of an absent account
// is not an error.
type SecureKeyStore interface {
	Read(account string) (data []byte, ok bool, err error)
	Write(account string, data []byte) error
	Delete(account string) error
}

// ContactStore persists the contact list as a whole.
type ContactStore interface {
	LoadContacts() ([]domaintypes.Contact, error)
	SaveContacts(contacts []domaintypes.Contact) error
}
