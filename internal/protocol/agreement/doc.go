// Package agreement turns an X25519 key pair into the 256-bit message key.
//
// # Derivation
//
//	shared = X25519(ourPrivate, theirPublic)
//	key    = HKDF-SHA256(ikm=shared, salt, info, 32)
//
// The salt and info strings depend on the message mode. The pq mode only
// swaps these constants; it reserves a slot for a future hybrid derivation
// and provides no post-quantum protection today.
package agreement
