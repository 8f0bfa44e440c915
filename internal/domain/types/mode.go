package types

import (
	"fmt"
	"strings"
)

// Mode selects the key-derivation constants used for a message.
//
// ModePQ only swaps the HKDF salt and info strings. No key encapsulation is
// involved, so it offers exactly the same security as ModeClassic.
type Mode uint8

const (
	ModeClassic Mode = iota
	ModePQ
)

// Envelope versions written for each mode.
const (
	VersionClassic = 1
	VersionPQ      = 2
)

// String returns "classic" or "pq".
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModePQ:
		return "pq"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Version returns the envelope version a producer writes for m.
func (m Mode) Version() int {
	if m == ModePQ {
		return VersionPQ
	}
	return VersionClassic
}

// ParseMode parses the output of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "":
		return ModeClassic, nil
	case "pq":
		return ModePQ, nil
	default:
		return ModeClassic, fmt.Errorf("unknown mode %q", s)
	}
}

// ModeFlag is the optional isPQ flag as it appears on the wire. Legacy
// producers omit it, in which case the envelope version decides.
type ModeFlag uint8

const (
	FlagAbsent ModeFlag = iota
	FlagClassic
	FlagPQ
)

// FlagFor returns the explicit flag for m.
func FlagFor(m Mode) ModeFlag {
	if m == ModePQ {
		return FlagPQ
	}
	return FlagClassic
}
