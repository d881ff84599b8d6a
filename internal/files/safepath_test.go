package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeJoin(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain key", "wifi_enabled", false},
		{"dotted key", "theme.accent", false},
		{"empty", "", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"traversal", "../escape", true},
		{"nested traversal", "a/../../escape", true},
		{"separator", "sub/key", true},
		{"backslash", `sub\key`, true},
		{"absolute", "/etc/passwd", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SafeJoin(base, tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("SafeJoin(%q) = %q, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SafeJoin(%q) unexpected error: %v", tc.input, err)
			}
			if got != filepath.Join(base, tc.input) {
				t.Fatalf("SafeJoin(%q) = %q, want %q", tc.input, got, filepath.Join(base, tc.input))
			}
		})
	}
}

func TestSafePath_NoChange(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "default.json")
	got, changed, err := SafePath(path)
	if err != nil {
		t.Fatalf("SafePath failed: %v", err)
	}
	if changed {
		t.Fatalf("expected unchanged path")
	}
	if got != path {
		t.Fatalf("expected %q, got %q", path, got)
	}
}

func TestSafePath_WithCollision(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "default.json")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	got, changed, err := SafePath(path)
	if err != nil {
		t.Fatalf("SafePath failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected changed path")
	}
	if got == path {
		t.Fatalf("expected different path")
	}
	if got != filepath.Join(tmpDir, "default_1.json") {
		t.Fatalf("expected first numeric suffix, got %q", got)
	}
}
