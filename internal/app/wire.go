package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"masahiro/internal/domain"
	contactsvc "masahiro/internal/services/contact"
	identitysvc "masahiro/internal/services/identity"
	messagesvc "masahiro/internal/services/message"
	"masahiro/internal/store"
)

// Wire bundles all stores and services for the CLI.
type Wire struct {
	Keys     domain.SecureKeyStore
	Identity domain.IdentityService
	Messages domain.MessageService
	Contacts domain.ContactService
	Log      zerolog.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, log zerolog.Logger) (*Wire, error) {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}

	// File-based stores
	keys := store.NewKeychainFileStore(cfg.Home, cfg.Service, cfg.Passphrase,
		store.WithScryptParams(cfg.Scrypt))
	contactStore := store.NewContactFileStore(cfg.Home)

	return newWire(keys, contactStore, log)
}

func newWire(keys domain.SecureKeyStore, contacts domain.ContactStore, log zerolog.Logger) (*Wire, error) {
	ids := identitysvc.New(keys, identitysvc.WithLogger(log))
	msgs := messagesvc.New(ids, messagesvc.WithLogger(log))
	cs, err := contactsvc.New(contacts, ids, msgs, contactsvc.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &Wire{
		Keys:     keys,
		Identity: ids,
		Messages: msgs,
		Contacts: cs,
		Log:      log,
	}, nil
}
