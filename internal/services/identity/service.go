package identity

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"masahiro/internal/crypto"
	"masahiro/internal/domain"
)

const (
	// PendingAccount holds the identity not yet bound to any contact.
	PendingAccount = "identity.curve25519.pending"
	// ContactAccountPrefix namespaces the per-contact bindings.
	ContactAccountPrefix = "identity.curve25519.contact."
)

// Service manages the pending identity and the per-contact key bindings.
//
// Mutations of the pending slot (lazy creation, rotation, commit) are
// serialized by mu. Reads of committed bindings take no lock.
type Service struct {
	keys domain.SecureKeyStore
	log  zerolog.Logger

	mu sync.Mutex

	subMu sync.Mutex
	subs  map[int]chan struct{}
	next  int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l.With().Str("component", "identity").Logger() }
}

// New returns an identity service backed by keys and makes sure a pending
// identity exists. A store that cannot be reached yet is only logged; the
// slot is created again on the next PendingPublicKey.
func New(keys domain.SecureKeyStore, opts ...Option) *Service {
	s := &Service{
		keys: keys,
		log:  zerolog.Nop(),
		subs: map[int]chan struct{}{},
	}
	for _, o := range opts {
		o(s)
	}

	s.mu.Lock()
	priv, err := s.pendingPrivateKeyLocked()
	s.mu.Unlock()
	if err != nil {
		s.log.Warn().Err(err).Msg("pending identity unavailable")
	} else {
		crypto.WipePrivate(&priv)
	}
	return s
}

// ContactAccount returns the key store account for a contact binding.
func ContactAccount(id domain.ContactID) string { return ContactAccountPrefix + id.String() }

// PendingPublicKey returns the base64url public key of the pending identity,
// creating the identity first if none is stored.
func (s *Service) PendingPublicKey() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	priv, err := s.pendingPrivateKeyLocked()
	if err != nil {
		return "", err
	}
	defer crypto.WipePrivate(&priv)
	return encodePublic(priv)
}

// RotatePendingIdentity replaces the pending identity with a fresh key pair
// and notifies subscribers. Committed bindings are untouched.
func (s *Service) RotatePendingIdentity() error {
	s.mu.Lock()
	err := s.rotateLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// CommitPendingIdentity binds the current pending private key to id and then
// rotates the pending slot so the next contact receives a different key.
//
// It fails with ErrMissingPendingIdentity when the pending account has
// disappeared from the store since New, and with
// ErrContactAlreadyBound when id already owns a key.
func (s *Service) CommitPendingIdentity(id domain.ContactID) error {
	s.mu.Lock()
	err := s.commitLocked(id)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Service) commitLocked(id domain.ContactID) error {
	account := ContactAccount(id)

	if _, exists, err := s.keys.Read(account); err != nil {
		return storageErr("read binding", err)
	} else if exists {
		return fmt.Errorf("%w: %s", domain.ErrContactAlreadyBound, id)
	}

	pending, ok, err := s.keys.Read(PendingAccount)
	if err != nil {
		return storageErr("read pending identity", err)
	}
	if !ok {
		return domain.ErrMissingPendingIdentity
	}
	defer crypto.Wipe(pending)

	priv, err := crypto.PrivateFromBytes(pending)
	if err != nil {
		return storageErr("decode pending identity", err)
	}
	defer crypto.WipePrivate(&priv)

	if err := s.keys.Write(account, pending); err != nil {
		return storageErr("write binding", err)
	}

	// The same key must never serve two contacts: undo the binding when the
	// pending slot cannot be moved on.
	if err := s.rotateLocked(); err != nil {
		if derr := s.keys.Delete(account); derr != nil {
			s.log.Error().Err(derr).Str("contact", id.String()).Msg("rollback of binding failed")
		}
		return err
	}

	pub, _ := crypto.PublicKey(priv)
	s.log.Info().
		Str("contact", id.String()).
		Str("fingerprint", crypto.Fingerprint(pub[:])).
		Msg("pending identity committed")
	return nil
}

// PrivateKey returns the private key bound to id.
func (s *Service) PrivateKey(id domain.ContactID) (domain.X25519Private, error) {
	data, ok, err := s.keys.Read(ContactAccount(id))
	if err != nil {
		return domain.X25519Private{}, storageErr("read binding", err)
	}
	if !ok {
		return domain.X25519Private{}, fmt.Errorf("%w: %s", domain.ErrUnknownContact, id)
	}
	defer crypto.Wipe(data)

	priv, err := crypto.PrivateFromBytes(data)
	if err != nil {
		return domain.X25519Private{}, storageErr("decode binding", err)
	}
	return priv, nil
}

// PublicKey returns the base64url public key this device uses for id.
func (s *Service) PublicKey(id domain.ContactID) (string, error) {
	priv, err := s.PrivateKey(id)
	if err != nil {
		return "", err
	}
	defer crypto.WipePrivate(&priv)
	return encodePublic(priv)
}

// DeleteBinding removes the key bound to id. It is best effort: a missing
// binding is fine and store failures are only logged.
func (s *Service) DeleteBinding(id domain.ContactID) {
	if err := s.keys.Delete(ContactAccount(id)); err != nil {
		s.log.Warn().Err(err).Str("contact", id.String()).Msg("delete binding failed")
		return
	}
	s.log.Info().Str("contact", id.String()).Msg("binding deleted")
}

// Subscribe returns a channel that receives a value whenever the pending
// identity changes. Bursts coalesce into one notification. The returned
// function unsubscribes and closes the channel.
func (s *Service) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Service) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Service) pendingPrivateKeyLocked() (domain.X25519Private, error) {
	data, ok, err := s.keys.Read(PendingAccount)
	if err != nil {
		return domain.X25519Private{}, storageErr("read pending identity", err)
	}
	if ok {
		defer crypto.Wipe(data)
		priv, err := crypto.PrivateFromBytes(data)
		if err != nil {
			return domain.X25519Private{}, storageErr("decode pending identity", err)
		}
		return priv, nil
	}

	priv, err := s.writeFreshPendingLocked()
	if err != nil {
		return domain.X25519Private{}, err
	}
	s.log.Info().Msg("pending identity created")
	return priv, nil
}

func (s *Service) rotateLocked() error {
	priv, err := s.writeFreshPendingLocked()
	if err != nil {
		return err
	}
	pub, _ := crypto.PublicKey(priv)
	crypto.WipePrivate(&priv)
	s.log.Info().Str("fingerprint", crypto.Fingerprint(pub[:])).Msg("pending identity rotated")
	return nil
}

func (s *Service) writeFreshPendingLocked() (domain.X25519Private, error) {
	priv, _, err := crypto.GenerateX25519()
	if err != nil {
		return domain.X25519Private{}, fmt.Errorf("generate identity: %w", err)
	}
	if err := s.keys.Write(PendingAccount, priv[:]); err != nil {
		crypto.WipePrivate(&priv)
		return domain.X25519Private{}, storageErr("write pending identity", err)
	}
	return priv, nil
}

func encodePublic(priv domain.X25519Private) (string, error) {
	pub, err := crypto.PublicKey(priv)
	if err != nil {
		return "", fmt.Errorf("%w: derive public key: %v", domain.ErrStorageFailure, err)
	}
	return crypto.ToBase64URL(pub[:]), nil
}

func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrStorageFailure) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorageFailure, op, err)
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
