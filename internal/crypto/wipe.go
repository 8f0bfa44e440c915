package crypto

import (
	"masahiro/internal/domain"
	"masahiro/internal/util/memzero"
)

// Wipe zeroes the provided buffer. This is best-effort.
func Wipe(b []byte) { memzero.Zero(b) }

// WipePrivate zeroes a private key in place.
func WipePrivate(k *domain.X25519Private) { memzero.Key((*[32]byte)(k)) }
