package memzero

import "testing"

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zero(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
	Zero(nil)
}

func TestKey(t *testing.T) {
	var k [32]byte
	for i := range k {
		k[i] = 0xff
	}
	Key(&k)
	if k != [32]byte{} {
		t.Fatal("key not cleared")
	}
	Key(nil)
}
