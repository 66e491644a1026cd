package helpers

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "123456" {
		t.Fatal("hash equals the plaintext")
	}

	if !VerifyPassword(hash, "123456") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "1234567") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword(hash, "") {
		t.Error("empty password accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salting is broken")
	}
}
