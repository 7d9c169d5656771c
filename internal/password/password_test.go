package password_test

import (
	"testing"

	"github.com/aibekov/task-tracker/internal/password"
)

func TestHashCompare_Roundtrip(t *testing.T) {
	h := password.NewBcryptHasher()

	hashed, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	if err := h.Compare(hashed, "correct horse battery staple"); err != nil {
		t.Errorf("compare with right password: %v", err)
	}
	if err := h.Compare(hashed, "wrong password"); err == nil {
		t.Error("compare with wrong password succeeded")
	}
}
