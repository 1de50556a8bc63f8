package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestDeriveKeyMaterial_KnownVector(t *testing.T) {
	// sha256("KEY_TO_MAILBOX")
	const digest = "ae4bd0d82264b01cf68c028499b58e667b08a51d4d60b5b165951b8531336bf7"
	sum, _ := hex.DecodeString(digest)

	km := DeriveKeyMaterial("KEY_TO_MAILBOX", false)
	if !bytes.Equal(km.Key[:], sum[:16]) {
		t.Errorf("Key = %x, want %x", km.Key, sum[:16])
	}
	if !bytes.Equal(km.IV[:], sum[16:]) {
		t.Errorf("IV = %x, want %x", km.IV, sum[16:])
	}
}

func TestDeriveKeyMaterial_Swap(t *testing.T) {
	plain := DeriveKeyMaterial("KEY_TO_MAILBOX", false)
	swapped := DeriveKeyMaterial("KEY_TO_MAILBOX", true)

	if swapped.Key != plain.IV {
		t.Errorf("swapped Key = %x, want %x", swapped.Key, plain.IV)
	}
	if swapped.IV != plain.Key {
		t.Errorf("swapped IV = %x, want %x", swapped.IV, plain.Key)
	}
}

func TestDeriveKeyMaterial_Deterministic(t *testing.T) {
	for _, secret := range []string{"", "a", "KEY_TO_MAILBOX", "ключ"} {
		if DeriveKeyMaterial(secret, false) != DeriveKeyMaterial(secret, false) {
			t.Errorf("DeriveKeyMaterial(%q) is not deterministic", secret)
		}
	}
}

func TestDeriveKeyMaterial_DistinctSecrets(t *testing.T) {
	a := DeriveKeyMaterial("secret-a", false)
	b := DeriveKeyMaterial("secret-b", false)
	if a.Key == b.Key || a.IV == b.IV {
		t.Error("distinct secrets produced overlapping key material")
	}
}
