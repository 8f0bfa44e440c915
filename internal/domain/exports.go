package domain

import (
	interfaces "masahiro/internal/domain/interfaces"
	types "masahiro/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ContactID     = types.ContactID
	Contact       = types.Contact
	Mode          = types.Mode
	ModeFlag      = types.ModeFlag
	Envelope      = types.Envelope
	X25519Public  = types.X25519Public
	X25519Private = types.X25519Private
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SecureKeyStore  = interfaces.SecureKeyStore
	ContactStore    = interfaces.ContactStore
	IdentityService = interfaces.IdentityService
	KeyResolver     = interfaces.KeyResolver
	MessageService  = interfaces.MessageService
	ContactService  = interfaces.ContactService
)

// Re-exported constants.
const (
	ModeClassic = types.ModeClassic
	ModePQ      = types.ModePQ

	FlagAbsent  = types.FlagAbsent
	FlagClassic = types.FlagClassic
	FlagPQ      = types.FlagPQ

	VersionClassic = types.VersionClassic
	VersionPQ      = types.VersionPQ
)

// ParseMode parses "classic" or "pq".
func ParseMode(s string) (Mode, error) { return types.ParseMode(s) }

// FlagFor returns the explicit wire flag for m.
func FlagFor(m Mode) ModeFlag { return types.FlagFor(m) }
