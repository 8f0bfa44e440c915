package crypto_test

import (
	"bytes"
	"errors"
	"testing"

	"masahiro/internal/crypto"
)

func TestAESGCM_SealOpen(t *testing.T) {
	key := bytes.Repeat([]byte{7}, crypto.AESKeySize)
	var c crypto.AESGCM

	for _, msg := range [][]byte{nil, []byte("hi"), bytes.Repeat([]byte("x"), 4096)} {
		combined, err := c.Seal(key, msg)
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}
		if want := crypto.AESNonceSize + len(msg) + crypto.AESTagSize; len(combined) != want {
			t.Fatalf("combined length = %d, want %d", len(combined), want)
		}
		got, err := c.Open(key, combined)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if !bytes.Equal(got, msg) {
			t.Fatalf("Open() = %q, want %q", got, msg)
		}
	}
}

func TestAESGCM_FreshNonces(t *testing.T) {
	key := bytes.Repeat([]byte{7}, crypto.AESKeySize)
	var c crypto.AESGCM
	a, err := c.Seal(key, []byte("same"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	b, err := c.Seal(key, []byte("same"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Equal(a[:crypto.AESNonceSize], b[:crypto.AESNonceSize]) {
		t.Fatal("nonce reused across seals")
	}
}

func TestAESGCM_OpenFailures(t *testing.T) {
	key := bytes.Repeat([]byte{7}, crypto.AESKeySize)
	var c crypto.AESGCM
	combined, err := c.Seal(key, []byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	tampered := append([]byte(nil), combined...)
	tampered[len(tampered)-1] ^= 0x01
	if _, err := c.Open(key, tampered); !errors.Is(err, crypto.ErrDecryptionFailed) {
		t.Fatalf("tampered: got %v, want ErrDecryptionFailed", err)
	}

	wrongKey := bytes.Repeat([]byte{8}, crypto.AESKeySize)
	if _, err := c.Open(wrongKey, combined); !errors.Is(err, crypto.ErrDecryptionFailed) {
		t.Fatalf("wrong key: got %v, want ErrDecryptionFailed", err)
	}

	if _, err := c.Open(key, combined[:crypto.AESNonceSize+crypto.AESTagSize-1]); !errors.Is(err, crypto.ErrCiphertextTooShort) {
		t.Fatalf("short: got %v, want ErrCiphertextTooShort", err)
	}

	if _, err := c.Seal(key[:16], []byte("x")); !errors.Is(err, crypto.ErrInvalidKeySize) {
		t.Fatalf("short key: got %v, want ErrInvalidKeySize", err)
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := bytes.Repeat([]byte{1}, 32)
	a, err := crypto.DeriveKey(secret, []byte("salt"), []byte("info"), 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	b, err := crypto.DeriveKey(secret, []byte("salt"), []byte("info"), 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if !bytes.Equal(a, b) || len(a) != 32 {
		t.Fatal("derivation not deterministic")
	}
	c, err := crypto.DeriveKey(secret, []byte("other"), []byte("info"), 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if bytes.Equal(a, c) {
		t.Fatal("salt did not change output")
	}
}
