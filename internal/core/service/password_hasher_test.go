package service

import "testing"

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasher()

	h1, err := hasher.Hash("hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := hasher.Hash("hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same input are identical; salt missing")
	}
	if h1 == "hunter2" || h2 == "hunter2" {
		t.Fatalf("hash equals the plaintext")
	}
	if !hasher.Verify("hunter2", h1) || !hasher.Verify("hunter2", h2) {
		t.Fatalf("both hashes must verify against the original plaintext")
	}
}

func TestBcryptHasher_VerifyRejectsWrongPassword(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("correct")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hasher.Verify("wrong", hash) {
		t.Fatalf("wrong password verified")
	}
	if hasher.Verify("", hash) {
		t.Fatalf("empty password verified")
	}
	if hasher.Verify("correct", "not-a-hash") {
		t.Fatalf("garbage credential verified")
	}
}
