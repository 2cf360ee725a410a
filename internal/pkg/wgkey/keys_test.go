package wgkey

import "testing"

func TestGenerateProducesValidKeypair(t *testing.T) {
	kp, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if kp.PrivateKey == "" || kp.PublicKey == "" {
		t.Fatal("Generate() returned empty key material")
	}

	derived, err := DerivePublicKey(kp.PrivateKey)
	if err != nil {
		t.Fatalf("DerivePublicKey() error = %v", err)
	}
	if derived != kp.PublicKey {
		t.Errorf("DerivePublicKey() = %q, want %q", derived, kp.PublicKey)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate("not-a-key"); err == nil {
		t.Fatal("Validate() accepted a malformed key")
	}
}

func TestGeneratePresharedKey(t *testing.T) {
	psk, err := GeneratePresharedKey()
	if err != nil {
		t.Fatalf("GeneratePresharedKey() error = %v", err)
	}
	if psk == "" {
		t.Fatal("GeneratePresharedKey() returned empty key")
	}
}
