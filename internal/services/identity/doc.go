// Package identity manages the device's X25519 identities.
//
// The device always holds one pending identity: the key pair it hands to the
// next contact it adds. Adding a contact commits the pending private key to
// that contact and immediately rotates the pending slot, so every contact is
// served by its own key pair and no two contacts can correlate the device.
//
// Private keys live in a domain.SecureKeyStore under fixed account names;
// public keys are derived on demand and never stored.
package identity
