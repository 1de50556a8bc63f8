package crypto

import (
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	fp, err := Fingerprint("KEY_TO_MAILBOX", "MAILBOX_NAME", false)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if len(fp) != FingerprintSize*2 {
		t.Errorf("len(fingerprint) = %d, want %d", len(fp), FingerprintSize*2)
	}

	again, _ := Fingerprint("KEY_TO_MAILBOX", "MAILBOX_NAME", false)
	if fp != again {
		t.Errorf("fingerprint not deterministic: %s != %s", fp, again)
	}
}

func TestFingerprint_Separation(t *testing.T) {
	base, _ := Fingerprint("KEY_TO_MAILBOX", "MAILBOX_NAME", false)

	variants := map[string][3]any{
		"other secret": {"OTHER_KEY", "MAILBOX_NAME", false},
		"other name":   {"KEY_TO_MAILBOX", "OTHER_NAME", false},
		"swapped":      {"KEY_TO_MAILBOX", "MAILBOX_NAME", true},
	}

	for name, v := range variants {
		t.Run(name, func(t *testing.T) {
			fp, err := Fingerprint(v[0].(string), v[1].(string), v[2].(bool))
			if err != nil {
				t.Fatalf("Fingerprint() error = %v", err)
			}
			if fp == base {
				t.Errorf("fingerprint collided with base: %s", fp)
			}
		})
	}
}

func TestFingerprint_DoesNotLeakKey(t *testing.T) {
	km := DeriveKeyMaterial("KEY_TO_MAILBOX", false)
	fp, _ := Fingerprint("KEY_TO_MAILBOX", "", false)

	if strings.Contains(CodecHex.Encode(km.Key[:]), fp) || strings.Contains(CodecHex.Encode(km.IV[:]), fp) {
		t.Error("fingerprint is a substring of the derived key material")
	}
}
