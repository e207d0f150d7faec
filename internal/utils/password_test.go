package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordSaltsEachCall(t *testing.T) {
	const plain = "secret1"

	h1, err := HashPassword(plain, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword(plain, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ (random salt)")
	}
	if !VerifyPassword(h1, plain) {
		t.Error("first hash did not verify")
	}
	if !VerifyPassword(h2, plain) {
		t.Error("second hash did not verify")
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	h, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if VerifyPassword(h, "wrong") {
		t.Error("wrong password verified")
	}
	if VerifyPassword("not-a-hash", "secret1") {
		t.Error("garbage hash verified")
	}
}
