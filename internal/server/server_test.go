package server

import (
	"path/filepath"
	"testing"
)

func TestDataDir_EnvOverride(t *testing.T) {
	t.Setenv("LOOM_DATA_DIR", "/tmp/loom-test-data")

	if got := DataDir(); got != "/tmp/loom-test-data" {
		t.Errorf("DataDir() = %q, want %q", got, "/tmp/loom-test-data")
	}
}

func TestDataDir_Default(t *testing.T) {
	t.Setenv("LOOM_DATA_DIR", "")
	t.Setenv("HOME", "/home/example")

	want := filepath.Join("/home/example", ".loom")
	if got := DataDir(); got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}

func TestNew_WiresEverything(t *testing.T) {
	t.Setenv("LOOM_DATA_DIR", t.TempDir())
	t.Setenv("LOOM_INFER_MODEL", "")
	t.Setenv("LOOM_INFER_BASE_URL", "")
	t.Setenv("OPENAI_API_KEY", "")

	s, cleanup, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer cleanup()

	if s == nil {
		t.Fatal("New() returned nil server")
	}
}

func TestNew_CleanupIsIdempotent(t *testing.T) {
	t.Setenv("LOOM_DATA_DIR", t.TempDir())

	_, cleanup, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	cleanup()
	cleanup()
}
