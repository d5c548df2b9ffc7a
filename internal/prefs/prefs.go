// Package prefs persists the user's last TOC path and UI locale.
//
// The record is read once at startup and rewritten whenever a field changes.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/tocview/internal/logging"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when no preference has been saved.
const DefaultLocale = "en"

// Prefs is the persisted record.
type Prefs struct {
	TOCPath string `yaml:"toc_path"`
	Locale  string `yaml:"locale"`
}

// Store owns the preferences file.
type Store struct {
	path    string
	current Prefs
}

// DefaultPath returns <user config dir>/tocview/prefs.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "tocview", "prefs.yaml"), nil
}

// Open reads the preferences file. A missing file yields defaults.
func Open(path string) (*Store, error) {
	s := &Store{path: path, current: Prefs{Locale: DefaultLocale}}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences %s: %w", path, err)
	}

	var loaded Prefs
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	if loaded.Locale == "" {
		loaded.Locale = DefaultLocale
	}
	s.current = loaded
	return s, nil
}

// Path returns the backing file, or "" for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the current record.
func (s *Store) Get() Prefs {
	return s.current
}

// SetTOCPath records the last submitted TOC path.
func (s *Store) SetTOCPath(tocPath string) error {
	if s.current.TOCPath == tocPath {
		return nil
	}
	s.current.TOCPath = tocPath
	return s.save()
}

// SetLocale records the UI locale.
func (s *Store) SetLocale(locale string) error {
	if s.current.Locale == locale {
		return nil
	}
	s.current.Locale = locale
	return s.save()
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace preferences: %w", err)
	}

	logging.Named("prefs").Debug("preferences saved",
		zap.String("path", s.path),
		zap.String("locale", s.current.Locale))
	return nil
}
