package crypto

import (
	"encoding/base64"
	"strings"
)

var toStdAlphabet = strings.NewReplacer("-", "+", "_", "/")

// ToBase64URL encodes bytes to URL-safe base64 without padding.
func ToBase64URL(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// FromBase64URL decodes URL-safe base64 with or without padding. Missing
// padding is restored before decoding; '+' and '/' are accepted too.
func FromBase64URL(s string) ([]byte, error) {
	s = toStdAlphabet.Replace(s)
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}
	return base64.StdEncoding.DecodeString(s)
}
