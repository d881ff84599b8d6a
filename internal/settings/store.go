// Package settings persists scalar values as one flat text file per key.
// Key files have no extension and contain only the value as plain text
// (~/.config/dusky/settings/some_setting_key), so shell scripts and status
// bars can consume them with a bare cat. Type coercion on load is driven by
// which typed accessor the caller picks; there is no stored schema, and a
// caller reading a key with the wrong accessor silently gets that
// accessor's coercion.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/duskydesk/duskycc/internal/files"
	"github.com/duskydesk/duskycc/internal/logger"
)

const dirPerm = 0o755
const filePerm = 0o644

// Store reads and writes the flat-file settings directory. Writes are
// last-write-wins full overwrites through an atomic rename.
type Store struct {
	dir string
}

// DefaultDir resolves the settings directory: $DUSKY_SETTINGS_DIR if set,
// otherwise <user config dir>/dusky/settings.
func DefaultDir() string {
	if dir := os.Getenv("DUSKY_SETTINGS_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dusky", "settings")
}

// NewStore creates a Store rooted at dir. The directory is created on the
// first write, not here.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// Dir returns the directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) keyPath(key string) (string, error) {
	path, err := files.SafeJoin(s.dir, key)
	if err != nil {
		return "", fmt.Errorf("invalid settings key: %w", err)
	}
	return path, nil
}

func (s *Store) write(key, rendered string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := files.AtomicWrite(path, []byte(rendered), filePerm); err != nil {
		return fmt.Errorf("failed to save setting %q: %w", key, err)
	}
	logger.Debug("Saved setting", "key", key, "value", rendered)
	return nil
}

// read returns the trimmed file content and whether the key file exists.
func (s *Store) read(key string) (string, bool) {
	path, err := s.keyPath(key)
	if err != nil {
		logger.Warn("Rejected settings key", "key", key, "error", err)
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Could not read setting", "key", key, "error", err)
		}
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// SaveBool renders "true"/"false", or "1"/"0" when asInt is set, for
// consumers that expect numeric flags.
func (s *Store) SaveBool(key string, value bool, asInt bool) error {
	if asInt {
		rendered := "0"
		if value {
			rendered = "1"
		}
		return s.write(key, rendered)
	}
	return s.write(key, strconv.FormatBool(value))
}

func (s *Store) SaveInt(key string, value int) error {
	return s.write(key, strconv.Itoa(value))
}

func (s *Store) SaveFloat(key string, value float64) error {
	return s.write(key, strconv.FormatFloat(value, 'f', -1, 64))
}

func (s *Store) SaveString(key, value string) error {
	return s.write(key, value)
}

// LoadBool reads key as a boolean. Integer content maps non-zero to true;
// otherwise a case-insensitive "true" literal is accepted. The inversed
// flag logically negates the stored value, for keys whose on-disk sense is
// opposite to the UI sense. A missing key returns def unmodified.
func (s *Store) LoadBool(key string, def bool, inversed bool) bool {
	raw, ok := s.read(key)
	if !ok {
		return def
	}
	var value bool
	if n, err := strconv.Atoi(raw); err == nil {
		value = n != 0
	} else {
		value = strings.EqualFold(raw, "true")
	}
	return value != inversed
}

func (s *Store) LoadInt(key string, def int) int {
	raw, ok := s.read(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Setting is not an integer", "key", key, "value", raw)
		return def
	}
	return n
}

func (s *Store) LoadFloat(key string, def float64) float64 {
	raw, ok := s.read(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Warn("Setting is not a number", "key", key, "value", raw)
		return def
	}
	return f
}

func (s *Store) LoadString(key, def string) string {
	raw, ok := s.read(key)
	if !ok {
		return def
	}
	return raw
}

// Raw returns the untyped file content for key, for tooling that inspects
// the store without knowing value types.
func (s *Store) Raw(key string) (string, bool) {
	return s.read(key)
}

// Delete removes the key file. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}

// Keys lists every key file in the settings directory, sorted by ReadDir
// order (lexical).
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings directory: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}
