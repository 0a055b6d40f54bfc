package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  file-secret\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := Load(Source{Name: "api token", File: path, Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "file-secret" {
		t.Fatalf("expected file value to win, got %q", got)
	}
}

func TestLoadFromValue(t *testing.T) {
	got, err := Load(Source{Name: "api token", Value: " inline \n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "inline" {
		t.Fatalf("expected trimmed inline value, got %q", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_AGENT_TEST_SECRET", " from-env ")

	got, err := Load(Source{Name: "api token", Env: "PORTFOLIO_AGENT_TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-env" {
		t.Fatalf("expected env value, got %q", got)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(Source{Name: "pushover token", Env: "PORTFOLIO_AGENT_TEST_MISSING"})
	if err == nil {
		t.Fatal("expected error for missing secret")
	}
	if !strings.Contains(err.Error(), "pushover token") {
		t.Fatalf("expected secret name in error, got: %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(Source{Name: "api token", File: path}); err == nil {
		t.Fatal("expected error for empty secret file")
	}
}
