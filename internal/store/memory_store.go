package store

import (
	"sync"

	"masahiro/internal/domain"
)

// MemoryKeyStore is a SecureKeyStore that never touches disk.
type MemoryKeyStore struct {
	mu       sync.RWMutex
	accounts map[string][]byte
}

// NewMemoryKeyStore returns an empty MemoryKeyStore.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{accounts: map[string][]byte{}}
}

// Read returns a copy of the bytes stored for account.
func (s *MemoryKeyStore) Read(account string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.accounts[account]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Write stores a copy of data for account.
func (s *MemoryKeyStore) Write(account string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account] = append([]byte(nil), data...)
	return nil
}

// Delete removes account.
func (s *MemoryKeyStore) Delete(account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, account)
	return nil
}

// Accounts lists the stored account names.
func (s *MemoryKeyStore) Accounts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.accounts))
	for a := range s.accounts {
		out = append(out, a)
	}
	return out
}

var _ domain.SecureKeyStore = (*MemoryKeyStore)(nil)
