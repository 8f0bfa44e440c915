package message

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"masahiro/internal/crypto"
	"masahiro/internal/domain"
	"masahiro/internal/protocol/agreement"
	"masahiro/internal/protocol/envelope"
)

// GenericFailure is the only text shown to a user when a message cannot be
// sealed or opened.
const GenericFailure = "This message could not be processed. It may be corrupted, " +
	"tampered with, or meant for another contact."

// Service is the key-agreement and envelope engine.
//
// It holds no state of its own; every call resolves keys through the
// KeyResolver, so Encrypt and Decrypt may run concurrently.
type Service struct {
	keys   domain.KeyResolver
	cipher crypto.Cipher
	log    zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCipher replaces the AEAD used to seal and open payloads.
func WithCipher(c crypto.Cipher) Option {
	return func(s *Service) { s.cipher = c }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l.With().Str("component", "message").Logger() }
}

// New returns a Service resolving bound keys through keys.
func New(keys domain.KeyResolver, opts ...Option) *Service {
	s := &Service{
		keys:   keys,
		cipher: crypto.AESGCM{},
		log:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ValidatePublicKey reports whether publicKey is base64url of a usable
// 32-byte X25519 point. Surrounding whitespace is ignored.
func (s *Service) ValidatePublicKey(publicKey string) bool {
	_, err := parsePublicKey(publicKey)
	return err == nil
}

// Encrypt seals plaintext for to using the key bound to that contact.
func (s *Service) Encrypt(plaintext string, to domain.Contact, mode domain.Mode) (string, error) {
	peer, err := parsePublicKey(to.PublicKey)
	if err != nil {
		return "", err
	}

	priv, err := s.keys.PrivateKey(to.ID)
	if err != nil {
		return "", fmt.Errorf("%w: load key for %s: %w", domain.ErrCryptoFailure, to.ID, err)
	}
	defer crypto.WipePrivate(&priv)

	self, err := crypto.PublicKey(priv)
	if err != nil {
		return "", fmt.Errorf("%w: derive public key: %w", domain.ErrCryptoFailure, err)
	}

	key, err := agreement.MessageKey(priv, peer, mode)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrCryptoFailure, err)
	}
	defer crypto.Wipe(key)

	sealed, err := s.cipher.Seal(key, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("%w: seal: %w", domain.ErrCryptoFailure, err)
	}

	out, err := envelope.Encode(domain.Envelope{
		Version:         mode.Version(),
		SenderPublicKey: crypto.ToBase64URL(self[:]),
		SealedPayload:   crypto.ToBase64URL(sealed),
		Flag:            domain.FlagFor(mode),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrCryptoFailure, err)
	}
	s.log.Debug().Str("contact", to.ID.String()).Stringer("mode", mode).Msg("message sealed")
	return out, nil
}

// Decrypt opens encoded with the key bound to using.
//
// Codec errors are returned unchanged. A mode other than expected fails with
// ErrModeMismatch before any key is loaded. Malformed payloads and failed
// authentication both yield ErrInvalidSealedBox.
func (s *Service) Decrypt(encoded string, using domain.Contact, expected domain.Mode) (string, error) {
	env, err := envelope.Decode(encoded)
	if err != nil {
		return "", err
	}
	return s.open(env, using, expected)
}

// DecryptSearchingAll tries each candidate in order and returns the first
// one whose key opens the message.
func (s *Service) DecryptSearchingAll(
	encoded string,
	candidates []domain.Contact,
	expected domain.Mode,
) (domain.Contact, string, error) {
	env, err := envelope.Decode(encoded)
	if err != nil {
		return domain.Contact{}, "", domain.ErrInvalidSealedBox
	}
	for _, c := range candidates {
		plaintext, err := s.open(env, c, expected)
		if err == nil {
			return c, plaintext, nil
		}
		s.log.Debug().Err(err).Str("contact", c.ID.String()).Msg("trial decryption failed")
	}
	return domain.Contact{}, "", domain.ErrInvalidSealedBox
}

func (s *Service) open(env domain.Envelope, using domain.Contact, expected domain.Mode) (string, error) {
	actual := env.Mode()
	if actual != expected {
		return "", fmt.Errorf("%w: message is %s, requested %s", domain.ErrModeMismatch, actual, expected)
	}

	sender, err := parsePublicKey(env.SenderPublicKey)
	if err != nil {
		return "", domain.ErrInvalidSealedBox
	}
	sealed, err := crypto.FromBase64URL(env.SealedPayload)
	if err != nil || len(sealed) < crypto.AESNonceSize+crypto.AESTagSize {
		return "", domain.ErrInvalidSealedBox
	}

	priv, err := s.keys.PrivateKey(using.ID)
	if err != nil {
		return "", err
	}
	defer crypto.WipePrivate(&priv)

	key, err := agreement.MessageKey(priv, sender, actual)
	if err != nil {
		return "", domain.ErrInvalidSealedBox
	}
	defer crypto.Wipe(key)

	plaintext, err := s.cipher.Open(key, sealed)
	if err != nil {
		return "", domain.ErrInvalidSealedBox
	}
	defer crypto.Wipe(plaintext)
	return strings.ToValidUTF8(string(plaintext), "\uFFFD"), nil
}

// FailureMessage maps any encrypt or decrypt error to the text shown to a
// user. It never names the cause.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	return GenericFailure
}

// IsUserError reports whether err comes from input the user supplied rather
// than from local key storage.
func IsUserError(err error) bool {
	return errors.Is(err, domain.ErrCodec) ||
		errors.Is(err, domain.ErrInvalidSealedBox) ||
		errors.Is(err, domain.ErrInvalidPublicKey) ||
		errors.Is(err, domain.ErrModeMismatch)
}

func parsePublicKey(s string) (domain.X25519Public, error) {
	raw, err := crypto.FromBase64URL(strings.TrimSpace(s))
	if err != nil {
		return domain.X25519Public{}, domain.ErrInvalidPublicKey
	}
	return crypto.PublicFromBytes(raw)
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
