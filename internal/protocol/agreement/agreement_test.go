package agreement_test

import (
	"bytes"
	"testing"

	"masahiro/internal/crypto"
	"masahiro/internal/domain"
	"masahiro/internal/protocol/agreement"
)

func makeKeyPair(t *testing.T) (domain.X25519Private, domain.X25519Public) {
	t.Helper()
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	return priv, pub
}

func TestMessageKey_BothSidesAgree(t *testing.T) {
	aPriv, aPub := makeKeyPair(t)
	bPriv, bPub := makeKeyPair(t)

	for _, mode := range []domain.Mode{domain.ModeClassic, domain.ModePQ} {
		ka, err := agreement.MessageKey(aPriv, bPub, mode)
		if err != nil {
			t.Fatalf("MessageKey(a, B, %s): %v", mode, err)
		}
		kb, err := agreement.MessageKey(bPriv, aPub, mode)
		if err != nil {
			t.Fatalf("MessageKey(b, A, %s): %v", mode, err)
		}
		if !bytes.Equal(ka, kb) {
			t.Fatalf("%s keys differ", mode)
		}
		if len(ka) != agreement.KeySize {
			t.Fatalf("key length = %d, want %d", len(ka), agreement.KeySize)
		}
	}
}

func TestMessageKey_ModesAreSeparated(t *testing.T) {
	aPriv, _ := makeKeyPair(t)
	_, bPub := makeKeyPair(t)

	classic, err := agreement.MessageKey(aPriv, bPub, domain.ModeClassic)
	if err != nil {
		t.Fatalf("MessageKey classic: %v", err)
	}
	pq, err := agreement.MessageKey(aPriv, bPub, domain.ModePQ)
	if err != nil {
		t.Fatalf("MessageKey pq: %v", err)
	}
	if bytes.Equal(classic, pq) {
		t.Fatal("classic and pq derivations produced the same key")
	}
}

func TestMessageKey_MatchesManualHKDF(t *testing.T) {
	aPriv, _ := makeKeyPair(t)
	_, bPub := makeKeyPair(t)

	shared, err := crypto.DH(aPriv, bPub)
	if err != nil {
		t.Fatalf("DH: %v", err)
	}
	want, err := crypto.DeriveKey(shared[:], []byte("Masahiro.salt.v1"), []byte("Masahiro.info.v1"), 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	got, err := agreement.MessageKey(aPriv, bPub, domain.ModeClassic)
	if err != nil {
		t.Fatalf("MessageKey: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("classic derivation does not use the published constants")
	}
}

func TestMessageKey_RejectsLowOrderPeer(t *testing.T) {
	aPriv, _ := makeKeyPair(t)
	if _, err := agreement.MessageKey(aPriv, domain.X25519Public{}, domain.ModeClassic); err == nil {
		t.Fatal("expected error for all-zero peer key")
	}
}
