package crypto_test

import (
	"bytes"
	"testing"

	"masahiro/internal/crypto"
	"masahiro/internal/domain"
)

func TestGenerateX25519_PublicMatchesPrivate(t *testing.T) {
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	derived, err := crypto.PublicKey(priv)
	if err != nil {
		t.Fatalf("PublicKey: %v", err)
	}
	if derived != pub {
		t.Fatal("derived public key differs from generated one")
	}
	if priv[0]&7 != 0 || priv[31]&0x80 != 0 || priv[31]&0x40 == 0 {
		t.Fatalf("private key not clamped: %x", priv)
	}
}

func TestDH_Symmetric(t *testing.T) {
	aPriv, aPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	bPriv, bPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	ab, err := crypto.DH(aPriv, bPub)
	if err != nil {
		t.Fatalf("DH(a, B): %v", err)
	}
	ba, err := crypto.DH(bPriv, aPub)
	if err != nil {
		t.Fatalf("DH(b, A): %v", err)
	}
	if !bytes.Equal(ab[:], ba[:]) {
		t.Fatal("shared secrets differ")
	}
}

func TestDH_LowOrderPointFails(t *testing.T) {
	priv, _, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	if _, err := crypto.DH(priv, domain.X25519Public{}); err == nil {
		t.Fatal("expected error for all-zero peer key")
	}
}

func TestValidPoint(t *testing.T) {
	_, pub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	one := make([]byte, 32)
	one[0] = 1 // u=1 has order 4

	tests := []struct {
		name string
		in   []byte
		want bool
	}{
		{"generated key", pub[:], true},
		{"31 bytes", pub[:31], false},
		{"33 bytes", append(pub[:], 0), false},
		{"empty", nil, false},
		{"all zero", make([]byte, 32), false},
		{"low order u=1", one, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := crypto.ValidPoint(tt.in); got != tt.want {
				t.Fatalf("ValidPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrivateFromBytes_WrongSize(t *testing.T) {
	if _, err := crypto.PrivateFromBytes(make([]byte, 31)); err == nil {
		t.Fatal("expected error for 31-byte key")
	}
	if _, err := crypto.PrivateFromBytes(make([]byte, 32)); err != nil {
		t.Fatalf("PrivateFromBytes: %v", err)
	}
}

func TestWipePrivate(t *testing.T) {
	priv, _, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	crypto.WipePrivate(&priv)
	if priv != (domain.X25519Private{}) {
		t.Fatalf("private key not wiped: %x", priv)
	}
}
