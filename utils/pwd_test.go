package utils

import "testing"

// TestHashPassword tests hash and verify round trip.
func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPwd("hunter2", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPwd("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}
