// Package envelope converts sealed messages to and from the shareable
// "MH1:" string form.
//
// # Format
//
//	"MH1:" + base64url-unpadded(JSON)
//
// where the JSON object carries
//
//	version            integer, 1 = classic, 2 = pq
//	senderPublicKey    base64url of the sender's 32-byte X25519 key
//	sealedBoxCombined  base64url of nonce‖ciphertext‖tag
//	isPQ               optional boolean; absent in legacy producers
//
// The string survives copy/paste and QR encoding. New envelope versions do
// not change the codec; only the prefix marks a format break.
package envelope
