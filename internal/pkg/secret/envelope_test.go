package secret

import "testing"

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := NewEnvelope("test-key", "test-salt")
	if err != nil {
		t.Fatalf("NewEnvelope() error = %v", err)
	}

	cases := []string{"", "hunter2", "a-much-longer-api-token-value-1234567890"}
	for _, plaintext := range cases {
		ciphertext, err := env.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) error = %v", plaintext, err)
		}
		if plaintext == "" && ciphertext != "" {
			t.Fatalf("Encrypt(\"\") = %q, want empty", ciphertext)
		}
		got, err := env.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		if got != plaintext {
			t.Errorf("round trip = %q, want %q", got, plaintext)
		}
	}
}

func TestEnvelopeWrongKeyFails(t *testing.T) {
	a, _ := NewEnvelope("key-a", "salt-a")
	b, _ := NewEnvelope("key-b", "salt-b")

	ciphertext, err := a.Encrypt("super-secret")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if _, err := b.Decrypt(ciphertext); err == nil {
		t.Fatal("Decrypt() with wrong key succeeded, want error")
	}
}

func TestNewEnvelopeRequiresKeyAndSalt(t *testing.T) {
	if _, err := NewEnvelope("", "salt"); err == nil {
		t.Fatal("NewEnvelope() with empty key succeeded, want error")
	}
	if _, err := NewEnvelope("key", ""); err == nil {
		t.Fatal("NewEnvelope() with empty salt succeeded, want error")
	}
}
