package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/curve25519"

	"masahiro/internal/domain"
)

// KeySize is the length of X25519 private keys, public keys and shared secrets.
const KeySize = curve25519.PointSize

var errKeySize = errors.New("x25519 key must be 32 bytes")

// probeScalar is a fixed clamped scalar used to test points. Every clamped
// scalar is a multiple of the cofactor, so a low-order point always maps to
// the identity and curve25519.X25519 reports it.
var probeScalar = [KeySize]byte{0: 0x08, 31: 0x40}

// GenerateX25519 returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateX25519() (priv domain.X25519Private, pub domain.X25519Public, err error) {
	if _, err = rand.Read(priv[:]); err != nil {
		return
	}
	clamp(&priv)
	pub, err = PublicKey(priv)
	return
}

// PublicKey derives the public key for priv.
func PublicKey(priv domain.X25519Private) (pub domain.X25519Public, err error) {
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return pub, err
	}
	copy(pub[:], pb)
	return pub, nil
}

// DH computes X25519 Diffie–Hellman. It fails for low-order peer points.
func DH(priv domain.X25519Private, pub domain.X25519Public) (out [32]byte, err error) {
	secret, err := curve25519.X25519(priv.Slice(), pub.Slice())
	if err != nil {
		return out, err
	}
	copy(out[:], secret)
	Wipe(secret)
	return out, nil
}

// ValidPoint reports whether b is a usable X25519 public key: exactly 32
// bytes and not one of the low-order points (the all-zero key included).
func ValidPoint(b []byte) bool {
	if len(b) != KeySize {
		return false
	}
	out, err := curve25519.X25519(probeScalar[:], b)
	if err != nil {
		return false
	}
	Wipe(out)
	return true
}

// PrivateFromBytes converts stored key bytes to a private key.
func PrivateFromBytes(b []byte) (priv domain.X25519Private, err error) {
	if len(b) != KeySize {
		return priv, fmt.Errorf("%w: got %d", errKeySize, len(b))
	}
	copy(priv[:], b)
	return priv, nil
}

// PublicFromBytes converts raw bytes to a validated public key.
func PublicFromBytes(b []byte) (pub domain.X25519Public, err error) {
	if !ValidPoint(b) {
		return pub, domain.ErrInvalidPublicKey
	}
	copy(pub[:], b)
	return pub, nil
}

func clamp(k *domain.X25519Private) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
