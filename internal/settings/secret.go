package settings

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const keyringService = "dusky"

// Secret values (entry rows flagged secret: true) never touch the flat-file
// store; they live in the OS keyring under a fixed service name.

// SaveSecret stores value for key in the OS keyring.
func SaveSecret(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("secret key is empty")
	}
	if err := keyring.Set(keyringService, key, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("failed to store secret %q: %w", key, err)
	}
	return nil
}

// LoadSecret retrieves the secret for key. A missing entry returns ok=false
// rather than an error so callers can fall back to a default.
func LoadSecret(key string) (string, bool) {
	value, err := keyring.Get(keyringService, key)
	if err != nil || value == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// DeleteSecret removes the secret for key from the keyring.
func DeleteSecret(key string) error {
	if err := keyring.Delete(keyringService, key); err != nil {
		return fmt.Errorf("failed to delete secret %q: %w", key, err)
	}
	return nil
}

// HasSecret reports whether a non-empty secret exists for key.
func HasSecret(key string) bool {
	_, ok := LoadSecret(key)
	return ok
}

// PromptForSecret reads a secret from the terminal without echoing it.
func PromptForSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(raw)), nil
}
