package types

// Envelope is the versioned wire value carrying one sealed message.
//
// SenderPublicKey is the base64url public key the sender uses for the
// recipient; SealedPayload is base64url(nonce‖ciphertext‖tag).
type Envelope struct {
	Version         int
	SenderPublicKey string
	SealedPayload   string
	Flag            ModeFlag
}

// Mode resolves the flag, falling back to the version when it is absent.
func (e Envelope) Mode() Mode {
	switch e.Flag {
	case FlagPQ:
		return ModePQ
	case FlagClassic:
		return ModeClassic
	}
	if e.Version >= VersionPQ {
		return ModePQ
	}
	return ModeClassic
}
