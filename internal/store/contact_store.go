package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"masahiro/internal/domain"
)

const contactsFilename = "contacts.json"

// ContactFileStore persists the contact list as JSON.
type ContactFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewContactFileStore returns a ContactFileStore rooted at dir.
func NewContactFileStore(dir string) *ContactFileStore {
	return &ContactFileStore{dir: dir}
}

// LoadContacts returns the stored contacts, or none if nothing was saved yet.
func (s *ContactFileStore) LoadContacts() ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var contacts []domain.Contact
	if _, err := readJSON(filepath.Join(s.dir, contactsFilename), &contacts); err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	return contacts, nil
}

// SaveContacts replaces the stored list.
func (s *ContactFileStore) SaveContacts(contacts []domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return writeJSON(filepath.Join(s.dir, contactsFilename), contacts)
}

// Compile-time assertion that ContactFileStore implements domain.ContactStore.
var _ domain.ContactStore = (*ContactFileStore)(nil)
