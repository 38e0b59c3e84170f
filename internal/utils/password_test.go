package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("hash equals plaintext")
	}
	if !VerifyPassword(hash, "correct horse battery") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(hash, "wrong password") {
		t.Fatalf("wrong password accepted")
	}
}

func TestPasswordHashClampsBadCost(t *testing.T) {
	// A misconfigured cost must not break registration.
	hash, err := HashPassword("some password", 99)
	if err != nil {
		t.Fatalf("HashPassword with out-of-range cost: %v", err)
	}
	if !VerifyPassword(hash, "some password") {
		t.Fatalf("hash from clamped cost does not verify")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Fatalf("malformed hash accepted")
	}
}
