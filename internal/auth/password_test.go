package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordProducesDistinctSaltedHashes(t *testing.T) {
	h1, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatal("expected distinct hashes for the same password")
	}
	if !strings.HasPrefix(h1, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", h1)
	}
	if !VerifyPassword("correct horse battery staple", h1) {
		t.Fatal("first hash did not verify")
	}
	if !VerifyPassword("correct horse battery staple", h2) {
		t.Fatal("second hash did not verify")
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	h, err := HashPassword("right-password-1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if VerifyPassword("wrong-password-1", h) {
		t.Fatal("wrong password verified")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2id$",
		"$argon2id$v=19$m=65536,t=3,p=2$notbase64!$zzz",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
	}
	for _, stored := range cases {
		if VerifyPassword("anything", stored) {
			t.Fatalf("malformed hash %q verified", stored)
		}
	}
}

func TestVerifyPasswordAcceptsLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-pass-9"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if !VerifyPassword("legacy-pass-9", string(legacy)) {
		t.Fatal("legacy bcrypt hash did not verify")
	}
	if VerifyPassword("other-pass", string(legacy)) {
		t.Fatal("wrong password verified against bcrypt hash")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
