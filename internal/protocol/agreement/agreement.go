package agreement

import (
	"fmt"

	"masahiro/internal/crypto"
	"masahiro/internal/domain"
)

// KeySize is the length of derived message keys.
const KeySize = 32

// Params are the HKDF constants for one mode.
type Params struct {
	Salt []byte
	Info []byte
}

var (
	classicParams = Params{
		Salt: []byte("Masahiro.salt.v1"),
		Info: []byte("Masahiro.info.v1"),
	}
	pqParams = Params{
		Salt: []byte("Masahiro.salt.pq.v1"),
		Info: []byte("Masahiro.info.pq.v1"),
	}
)

// ParamsFor returns the HKDF constants for mode.
func ParamsFor(mode domain.Mode) Params {
	if mode == domain.ModePQ {
		return pqParams
	}
	return classicParams
}

// MessageKey computes the shared secret between priv and peer and expands it
// into a message key for mode. The intermediate secret is wiped.
func MessageKey(priv domain.X25519Private, peer domain.X25519Public, mode domain.Mode) ([]byte, error) {
	shared, err := crypto.DH(priv, peer)
	if err != nil {
		return nil, fmt.Errorf("key agreement: %w", err)
	}
	defer crypto.Wipe(shared[:])

	p := ParamsFor(mode)
	return crypto.DeriveKey(shared[:], p.Salt, p.Info, KeySize)
}
