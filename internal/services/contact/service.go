package contact

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"masahiro/internal/domain"
)

var (
	// ErrEmptyName is returned when a contact name is blank after trimming.
	ErrEmptyName = errors.New("contact name is empty")
	// ErrDuplicateKey is returned when another contact already uses the key.
	ErrDuplicateKey = errors.New("a contact with this public key already exists")
)

// KeyValidator checks public key strings before they are stored.
type KeyValidator interface {
	ValidatePublicKey(publicKey string) bool
}

// Service is the contact registry. The list is loaded once and written
// through to the ContactStore on every change.
type Service struct {
	store     domain.ContactStore
	ids       domain.IdentityService
	validator KeyValidator
	log       zerolog.Logger
	now       func() time.Time

	mu       sync.RWMutex
	contacts []domain.Contact
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l.With().Str("component", "contact").Logger() }
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New loads the stored contacts and returns a registry over them.
func New(
	store domain.ContactStore,
	ids domain.IdentityService,
	validator KeyValidator,
	opts ...Option,
) (*Service, error) {
	s := &Service{
		store:     store,
		ids:       ids,
		validator: validator,
		log:       zerolog.Nop(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	contacts, err := store.LoadContacts()
	if err != nil {
		return nil, err
	}
	s.contacts = contacts
	return s, nil
}

// AddContact validates name and publicKey, binds the pending identity to a
// new contact id and persists the contact.
//
// If the contact cannot be saved the binding is deleted again.
func (s *Service) AddContact(name, publicKey string) (domain.Contact, error) {
	name = strings.TrimSpace(name)
	publicKey = strings.TrimSpace(publicKey)
	if name == "" {
		return domain.Contact{}, ErrEmptyName
	}
	if !s.validator.ValidatePublicKey(publicKey) {
		return domain.Contact{}, domain.ErrInvalidPublicKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByKeyLocked(publicKey) >= 0 {
		return domain.Contact{}, ErrDuplicateKey
	}

	c := domain.Contact{
		ID:        domain.ContactID(uuid.NewString()),
		Name:      name,
		PublicKey: publicKey,
		CreatedAt: s.now().UTC(),
	}
	if err := s.ids.CommitPendingIdentity(c.ID); err != nil {
		return domain.Contact{}, fmt.Errorf("bind identity: %w", err)
	}

	next := append(slices.Clone(s.contacts), c)
	if err := s.store.SaveContacts(next); err != nil {
		s.ids.DeleteBinding(c.ID)
		return domain.Contact{}, fmt.Errorf("save contacts: %w", err)
	}
	s.contacts = next

	s.log.Info().Str("contact", c.ID.String()).Msg("contact added")
	return c, nil
}

// DeleteContacts removes the given contacts and their bindings. Unknown ids
// are ignored.
func (s *Service) DeleteContacts(ids ...domain.ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[domain.ContactID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	next := slices.DeleteFunc(slices.Clone(s.contacts), func(c domain.Contact) bool {
		return drop[c.ID]
	})
	if len(next) == len(s.contacts) {
		return nil
	}
	if err := s.store.SaveContacts(next); err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}

	// Bindings go after the list is saved so a failed save never leaves a
	// contact without its key.
	for _, c := range s.contacts {
		if drop[c.ID] {
			s.ids.DeleteBinding(c.ID)
			s.log.Info().Str("contact", c.ID.String()).Msg("contact deleted")
		}
	}
	s.contacts = next
	return nil
}

// Contacts returns the contacts in insertion order.
func (s *Service) Contacts() []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.contacts)
}

// Contact looks a contact up by id.
func (s *Service) Contact(id domain.ContactID) (domain.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Contact{}, false
}

// ContactForPublicKey returns the contact whose stored key is publicKey.
func (s *Service) ContactForPublicKey(publicKey string) (domain.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexByKeyLocked(strings.TrimSpace(publicKey)); i >= 0 {
		return s.contacts[i], true
	}
	return domain.Contact{}, false
}

func (s *Service) indexByKeyLocked(publicKey string) int {
	return slices.IndexFunc(s.contacts, func(c domain.Contact) bool {
		return c.PublicKey == publicKey
	})
}

// Compile-time assertion that Service implements domain.ContactService.
var _ domain.ContactService = (*Service)(nil)
