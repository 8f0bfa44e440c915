// Package store provides file-based persistence for masahiro's local state.
//
// It contains concrete implementations of the domain storage interfaces:
//   - KeychainFileStore: a SecureKeyStore sealing every account of one
//     service namespace into a passphrase-encrypted file (scrypt +
//     ChaCha20-Poly1305).
//   - MemoryKeyStore: a process-local SecureKeyStore for tests and
//     throwaway sessions.
//   - ContactFileStore: the contact list as JSON.
//
// All methods are concurrency-safe via internal locking, and files are
// replaced atomically through a temp file and rename. Stored files live
// under the configured home directory with 0600 permissions.
package store
