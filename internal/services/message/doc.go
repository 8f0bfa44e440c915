// Package message seals and opens text messages for contacts.
//
// Each message key comes from X25519 between the key this device bound to the
// contact and the contact's public key, expanded with HKDF-SHA256, and seals
// the text with AES-256-GCM. The result travels as an MH1 envelope string.
package message
