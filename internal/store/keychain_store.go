package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"masahiro/internal/domain"
)

// ErrLocked is returned when the keychain has no passphrase to unlock it.
var ErrLocked = errors.New("keychain is locked: passphrase required")

// keychainContents is the plaintext sealed inside the keychain file.
type keychainContents struct {
	Service  string            `json:"service"`
	Accounts map[string][]byte `json:"accounts"`
}

// KeychainFileStore keeps the accounts of one service namespace in a single
// passphrase-sealed file. Nothing is cached in memory between calls.
type KeychainFileStore struct {
	path       string
	service    string
	passphrase string
	params     ScryptParams
	mu         sync.Mutex
}

// KeychainOption configures a KeychainFileStore.
type KeychainOption func(*KeychainFileStore)

// WithScryptParams overrides the KDF cost used for new writes.
func WithScryptParams(p ScryptParams) KeychainOption {
	return func(s *KeychainFileStore) { s.params = p }
}

// NewKeychainFileStore returns a store for service rooted at dir.
func NewKeychainFileStore(dir, service, passphrase string, opts ...KeychainOption) *KeychainFileStore {
	s := &KeychainFileStore{
		path:       filepath.Join(dir, keychainFilename(service)),
		service:    service,
		passphrase: passphrase,
		params:     DefaultScryptParams(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the sealed file location.
func (s *KeychainFileStore) Path() string { return s.path }

// Read returns a copy of the bytes stored for account.
func (s *KeychainFileStore) Read(account string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.load()
	if err != nil {
		return nil, false, err
	}
	data, ok := contents.Accounts[account]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Write stores data for account, replacing any previous value.
func (s *KeychainFileStore) Write(account string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.load()
	if err != nil {
		return err
	}
	contents.Accounts[account] = append([]byte(nil), data...)
	return s.save(contents)
}

// Delete removes account; an absent account is not an error.
func (s *KeychainFileStore) Delete(account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := contents.Accounts[account]; !ok {
		return nil
	}
	delete(contents.Accounts, account)
	return s.save(contents)
}

func (s *KeychainFileStore) load() (keychainContents, error) {
	if s.passphrase == "" {
		return keychainContents{}, ErrLocked
	}
	contents := keychainContents{Service: s.service, Accounts: map[string][]byte{}}

	b, err := readFile(s.path)
	if err != nil {
		return keychainContents{}, fmt.Errorf("read keychain: %w", err)
	}
	if b == nil {
		return contents, nil
	}
	raw, err := open(s.passphrase, s.service, b)
	if err != nil {
		return keychainContents{}, err
	}
	if err := json.Unmarshal(raw, &contents); err != nil {
		return keychainContents{}, fmt.Errorf("parse keychain contents: %w", err)
	}
	if contents.Accounts == nil {
		contents.Accounts = map[string][]byte{}
	}
	return contents, nil
}

func (s *KeychainFileStore) save(contents keychainContents) error {
	raw, err := json.Marshal(contents)
	if err != nil {
		return err
	}
	blob, err := seal(s.passphrase, s.service, raw, s.params)
	if err != nil {
		return err
	}
	return writeFile(s.path, blob)
}

// keychainFilename maps a service name to a safe file name.
func keychainFilename(service string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, service)
	return "keychain." + clean + ".enc"
}

// Compile-time assertion that KeychainFileStore implements domain.SecureKeyStore.
var _ domain.SecureKeyStore = (*KeychainFileStore)(nil)
