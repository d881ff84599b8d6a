package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/duskydesk/duskycc/internal/config"
)

type errString string

func (e errString) Error() string { return string(e) }

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dusky_config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const sampleConfig = `
pages:
  - title: General
    id: general
    layout:
      - title: Appearance
        items:
          - type: toggle
            properties:
              title: Dark Mode
              key: dark_mode
          - type: slider
            properties:
              title: Brightness
              key: brightness
  - title: Network
    id: network
    layout:
      - title: Connectivity
        items:
          - type: navigation
            properties:
              title: Bluetooth
            layout:
              - title: Devices
                items:
                  - type: toggle
                    properties:
                      title: Bluetooth Enabled
                      description: Radio power
                      key: bluetooth_enabled
`

func TestCountRows(t *testing.T) {
	cfg, err := config.Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := countRows(cfg.Pages[0].Layout); got != 2 {
		t.Fatalf("countRows(general) = %d, want 2", got)
	}
	// The navigation row itself counts, plus its nested toggle.
	if got := countRows(cfg.Pages[1].Layout); got != 2 {
		t.Fatalf("countRows(network) = %d, want 2", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := executeCommand(t, "frobnicate")
	if err == nil {
		t.Fatalf("expected unknown command error")
	}
}
