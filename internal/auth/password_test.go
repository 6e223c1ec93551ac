package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !VerifyPassword(hash, "s3cret-password") {
		t.Error("VerifyPassword() rejected the correct password")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Error("VerifyPassword() accepted a wrong password")
	}
	if VerifyPassword("not-a-bcrypt-hash", "s3cret-password") {
		t.Error("VerifyPassword() accepted a garbage hash")
	}
}

func TestHashPasswordUnique(t *testing.T) {
	h1, err := HashPassword("same-input")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("same-input")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}
