package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestGetOrCreate_Idempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := GetOrCreate(dir)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("token %q is not a UUID: %v", first, err)
	}

	second, err := GetOrCreate(dir)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if second != first {
		t.Errorf("second call returned %q, want %q", second, first)
	}
}

func TestGetOrCreate_NeverRewritesExistingToken(t *testing.T) {
	dir := t.TempDir()
	existing := "pre-existing-token"
	if err := os.WriteFile(filepath.Join(dir, tokenFile), []byte(existing+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	token, err := GetOrCreate(dir)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if token != existing {
		t.Errorf("token = %q, want existing %q preserved", token, existing)
	}
}

func TestGetOrCreate_StorageFailureFallsBackInMemory(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		mu.Lock()
		memToken = ""
		mu.Unlock()
	})

	first, err := GetOrCreate(blocked)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if first == "" {
		t.Fatal("expected in-memory token, got empty string")
	}

	second, err := GetOrCreate(blocked)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if second != first {
		t.Errorf("in-memory token not stable: %q then %q", first, second)
	}
}
