package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"masahiro/internal/crypto"
	"masahiro/internal/domain"
)

// Prefix tags every encoded message with the protocol and its major version.
const Prefix = "MH1:"

// wire is the JSON shape. Pointer fields let Decode tell a missing field from
// a zero value.
type wire struct {
	Version         *int    `json:"version"`
	SenderPublicKey *string `json:"senderPublicKey"`
	SealedBox       *string `json:"sealedBoxCombined"`
	IsPQ            *bool   `json:"isPQ,omitempty"`
}

// Encode serializes env into a single transport-neutral string.
func Encode(env domain.Envelope) (string, error) {
	w := wire{
		Version:         &env.Version,
		SenderPublicKey: &env.SenderPublicKey,
		SealedBox:       &env.SealedPayload,
	}
	switch env.Flag {
	case domain.FlagClassic:
		f := false
		w.IsPQ = &f
	case domain.FlagPQ:
		t := true
		w.IsPQ = &t
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}
	return Prefix + crypto.ToBase64URL(raw), nil
}

// Decode parses a string produced by Encode. Surrounding whitespace from
// paste artifacts is ignored.
func Decode(s string) (domain.Envelope, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, Prefix) {
		return domain.Envelope{}, domain.ErrInvalidPrefix
	}
	raw, err := crypto.FromBase64URL(s[len(Prefix):])
	if err != nil {
		return domain.Envelope{}, domain.ErrInvalidEncoding
	}

	var w wire
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&w); err != nil {
		return domain.Envelope{}, domain.ErrInvalidStructure
	}
	if dec.More() {
		return domain.Envelope{}, domain.ErrInvalidStructure
	}
	if w.Version == nil || w.SenderPublicKey == nil || w.SealedBox == nil {
		return domain.Envelope{}, domain.ErrInvalidStructure
	}

	env := domain.Envelope{
		Version:         *w.Version,
		SenderPublicKey: *w.SenderPublicKey,
		SealedPayload:   *w.SealedBox,
		Flag:            domain.FlagAbsent,
	}
	if w.IsPQ != nil {
		env.Flag = domain.FlagClassic
		if *w.IsPQ {
			env.Flag = domain.FlagPQ
		}
	}
	return env, nil
}
