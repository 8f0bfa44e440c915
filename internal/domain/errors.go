package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPublicKey is returned for a key string that is not base64url
	// of a 32-byte, non-degenerate X25519 point.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidSealedBox covers a malformed ciphertext and a failed
	// authentication alike. Callers cannot tell the two apart.
	ErrInvalidSealedBox = errors.New("invalid encrypted payload")

	// ErrModeMismatch is returned when the envelope mode differs from the
	// mode the caller asked to decrypt with.
	ErrModeMismatch = errors.New("message mode does not match requested mode")

	// ErrMissingPendingIdentity is returned by a commit when no pending
	// identity is stored.
	ErrMissingPendingIdentity = errors.New("no pending identity to commit")

	// ErrUnknownContact is returned when no key is bound to a contact.
	ErrUnknownContact = errors.New("no identity bound to contact")

	// ErrContactAlreadyBound is returned when committing to a contact that
	// already owns a key.
	ErrContactAlreadyBound = errors.New("contact already has a bound identity")

	// ErrStorageFailure wraps key store read/write failures and corrupted
	// key material.
	ErrStorageFailure = errors.New("key storage failure")

	// ErrCryptoFailure wraps key-agreement, derivation and sealing failures
	// during encryption.
	ErrCryptoFailure = errors.New("cryptographic operation failed")
)

// ErrCodec is the parent of every envelope decoding error.
var ErrCodec = errors.New("not a valid message")

var (
	ErrInvalidPrefix    = fmt.Errorf("%w: missing MH1 prefix", ErrCodec)
	ErrInvalidEncoding  = fmt.Errorf("%w: corrupted base64", ErrCodec)
	ErrInvalidStructure = fmt.Errorf("%w: corrupted structure", ErrCodec)
)
