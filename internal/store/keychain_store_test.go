package store_test

import (
	"errors"
	"os"
	"testing"

	"masahiro/internal/domain"
	"masahiro/internal/store"
)

var fastScrypt = store.ScryptParams{N: 1 << 10, R: 8, P: 1}

func newKeychain(t *testing.T, dir, service, pass string) *store.KeychainFileStore {
	t.Helper()
	return store.NewKeychainFileStore(dir, service, pass, store.WithScryptParams(fastScrypt))
}

func TestKeychain_WriteReadDelete(t *testing.T) {
	home := t.TempDir()
	var ks domain.SecureKeyStore = newKeychain(t, home, "com.masahiro.test", "pass")

	if _, ok, err := ks.Read("a"); err != nil || ok {
		t.Fatalf("read before write: ok=%v err=%v", ok, err)
	}
	if err := ks.Write("a", []byte{1, 2, 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ks.Write("b", []byte{4}); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, ok, err := ks.Read("a")
	if err != nil || !ok {
		t.Fatalf("read: ok=%v err=%v", ok, err)
	}
	if string(got) != string([]byte{1, 2, 3}) {
		t.Fatalf("read = %v", got)
	}

	if err := ks.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := ks.Delete("a"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, ok, _ := ks.Read("a"); ok {
		t.Fatal("account still present after delete")
	}
	if _, ok, _ := ks.Read("b"); !ok {
		t.Fatal("unrelated account lost")
	}
}

func TestKeychain_PersistsAcrossInstances(t *testing.T) {
	home := t.TempDir()
	if err := newKeychain(t, home, "svc", "pass").Write("k", []byte("v")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok, err := newKeychain(t, home, "svc", "pass").Read("k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("reopen read: %q ok=%v err=%v", got, ok, err)
	}
}

func TestKeychain_FileIsPrivate(t *testing.T) {
	home := t.TempDir()
	ks := newKeychain(t, home, "svc", "pass")
	if err := ks.Write("k", []byte("v")); err != nil {
		t.Fatalf("write: %v", err)
	}
	info, err := os.Stat(ks.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestKeychain_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	if err := newKeychain(t, home, "svc", "correct").Write("k", []byte("v")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := newKeychain(t, home, "svc", "wrong").Read("k"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}

func TestKeychain_ServiceNamespacesAreSeparate(t *testing.T) {
	home := t.TempDir()
	if err := newKeychain(t, home, "one", "pass").Write("k", []byte("v")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := newKeychain(t, home, "two", "pass").Read("k"); err != nil || ok {
		t.Fatalf("other namespace saw account: ok=%v err=%v", ok, err)
	}
}

func TestKeychain_LockedWithoutPassphrase(t *testing.T) {
	ks := newKeychain(t, t.TempDir(), "svc", "")
	if _, _, err := ks.Read("k"); !errors.Is(err, store.ErrLocked) {
		t.Fatalf("read: expected ErrLocked, got %v", err)
	}
	if err := ks.Write("k", nil); !errors.Is(err, store.ErrLocked) {
		t.Fatalf("write: expected ErrLocked, got %v", err)
	}
}

func TestMemoryKeyStore_CopiesData(t *testing.T) {
	ks := store.NewMemoryKeyStore()
	data := []byte{1}
	if err := ks.Write("k", data); err != nil {
		t.Fatalf("write: %v", err)
	}
	data[0] = 9
	got, ok, _ := ks.Read("k")
	if !ok || got[0] != 1 {
		t.Fatalf("stored value aliased caller buffer: %v", got)
	}
	got[0] = 7
	again, _, _ := ks.Read("k")
	if again[0] != 1 {
		t.Fatal("read returned internal buffer")
	}
	if err := ks.Delete("missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if n := len(ks.Accounts()); n != 1 {
		t.Fatalf("accounts = %d, want 1", n)
	}
}
