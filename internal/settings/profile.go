package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/duskydesk/duskycc/internal/files"
)

// Profile is a named snapshot of the flat-file settings directory, stored
// as a single JSON document so a machine's tuning can be exported, moved,
// and re-applied. Keyring-backed secrets are deliberately excluded.
type Profile struct {
	Name     string            `json:"name"`
	SavedAt  time.Time         `json:"saved_at"`
	Settings map[string]string `json:"settings"`
}

const profileExt = ".json"

// DefaultProfileDir resolves the profile directory next to the settings dir.
func DefaultProfileDir() string {
	if dir := os.Getenv("DUSKY_PROFILE_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dusky", "profiles")
}

func profilePath(dir, name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), profileExt)
	if name == "" {
		return "", fmt.Errorf("profile name is empty")
	}
	path, err := files.SafeJoin(dir, name+profileExt)
	if err != nil {
		return "", fmt.Errorf("invalid profile name: %w", err)
	}
	return path, nil
}

// Snapshot collects every current key/value pair from the store.
func (s *Store) Snapshot(name string) (*Profile, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}
	p := &Profile{
		Name:     name,
		SavedAt:  time.Now().UTC(),
		Settings: make(map[string]string, len(keys)),
	}
	for _, key := range keys {
		if raw, ok := s.Raw(key); ok {
			p.Settings[key] = raw
		}
	}
	return p, nil
}

// ExportProfile writes a snapshot of the store into dir under name.json,
// never clobbering an existing export (a numeric suffix is picked instead).
// The path actually written is returned.
func (s *Store) ExportProfile(dir, name string) (string, error) {
	p, err := s.Snapshot(name)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create profile directory: %w", err)
	}
	path, err := profilePath(dir, name)
	if err != nil {
		return "", err
	}
	path, _, err = files.SafePath(path)
	if err != nil {
		return "", err
	}
	if err := files.AtomicWrite(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write profile: %w", err)
	}
	return path, nil
}

// ImportProfile reads a profile document and writes every entry back
// through the store. Keys that fail validation abort the import before any
// write happens.
func (s *Store) ImportProfile(dir, name string) (*Profile, error) {
	path, err := profilePath(dir, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", name, err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}
	if p.Settings == nil {
		return nil, fmt.Errorf("profile %s has no settings map", name)
	}
	for key := range p.Settings {
		if _, err := s.keyPath(key); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
	}
	for key, value := range p.Settings {
		if err := s.SaveString(key, value); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// ListProfiles returns the profile names found in dir, sorted.
func ListProfiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), profileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), profileExt))
	}
	sort.Strings(names)
	return names, nil
}

// DeleteProfile removes the named profile from dir.
func DeleteProfile(dir, name string) error {
	path, err := profilePath(dir, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", name, err)
	}
	return nil
}
