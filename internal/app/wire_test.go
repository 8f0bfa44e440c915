package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masahiro/internal/crypto"
	"masahiro/internal/domain"
	"masahiro/internal/store"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig(t.TempDir())
	cfg.Passphrase = "correct horse"
	cfg.Scrypt = store.ScryptParams{N: 1 << 10, R: 8, P: 1}
	return cfg
}

func TestNewWire_EndToEnd(t *testing.T) {
	alice, err := NewWire(testConfig(t), zerolog.Nop())
	require.NoError(t, err)
	bob, err := NewWire(testConfig(t), zerolog.Nop())
	require.NoError(t, err)

	aliceKey, err := alice.Identity.PendingPublicKey()
	require.NoError(t, err)
	bobKey, err := bob.Identity.PendingPublicKey()
	require.NoError(t, err)

	bobOnAlice, err := alice.Contacts.AddContact("Bob", bobKey)
	require.NoError(t, err)
	aliceOnBob, err := bob.Contacts.AddContact("Alice", aliceKey)
	require.NoError(t, err)

	encoded, err := alice.Messages.Encrypt("see you at noon", bobOnAlice, domain.ModeClassic)
	require.NoError(t, err)

	from, text, err := bob.Messages.DecryptSearchingAll(encoded, bob.Contacts.Contacts(), domain.ModeClassic)
	require.NoError(t, err)
	assert.Equal(t, aliceOnBob.ID, from.ID)
	assert.Equal(t, "see you at noon", text)
}

func TestNewWire_ReopensState(t *testing.T) {
	cfg := testConfig(t)
	first, err := NewWire(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, pub, err := generatePeer()
	require.NoError(t, err)
	c, err := first.Contacts.AddContact("Peer", pub)
	require.NoError(t, err)
	bound, err := first.Identity.PublicKey(c.ID)
	require.NoError(t, err)

	second, err := NewWire(cfg, zerolog.Nop())
	require.NoError(t, err)
	got, ok := second.Contacts.Contact(c.ID)
	require.True(t, ok)
	assert.Equal(t, "Peer", got.Name)
	again, err := second.Identity.PublicKey(c.ID)
	require.NoError(t, err)
	assert.Equal(t, bound, again)
}

func TestNewWire_LockedWithoutPassphrase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Passphrase = ""
	w, err := NewWire(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = w.Identity.PendingPublicKey()
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.ErrorIs(t, err, store.ErrLocked)
}

func generatePeer() (domain.X25519Private, string, error) {
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return priv, "", err
	}
	return priv, crypto.ToBase64URL(pub[:]), nil
}
