// Package storage provides file system operations for .hp/ directories.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// hpDir is the name of the hp directory.
	hpDir = ".hp"
	// configFile is the name of the workspace config file within .hp/.
	configFile = "config.yaml"
	// prospectsFile holds the collection for the file backend.
	prospectsFile = "prospects.json"
	// databaseFile holds the collection for the sqlite backend.
	databaseFile = "prospects.db"
	// notificationsFile holds notification authorization and pending reminders.
	notificationsFile = "notifications.yaml"
)

// Backend names a persistence backend.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// ErrNotInitialized is returned by Open when there is no .hp/ directory.
var ErrNotInitialized = errors.New(".hp/ directory not found (run `hp init`)")

// WorkspaceConfig contains settings stored in .hp/config.yaml.
type WorkspaceConfig struct {
	Version int     `yaml:"version"`
	Backend Backend `yaml:"backend"`
}

// Storage provides access to a .hp/ directory.
type Storage struct {
	root string // path to directory containing .hp/
	cfg  WorkspaceConfig
}

// Open returns a Storage for the given directory.
func Open(dir string) (*Storage, error) {
	hpPath := filepath.Join(dir, hpDir)
	info, err := os.Stat(hpPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNotInitialized, dir)
		}
		return nil, fmt.Errorf("failed to access .hp/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".hp is not a directory")
	}

	s := &Storage{root: dir}
	data, err := os.ReadFile(filepath.Join(hpPath, configFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read .hp/%s: %w", configFile, err)
	}
	if err := yaml.Unmarshal(data, &s.cfg); err != nil {
		return nil, fmt.Errorf("failed to parse .hp/%s: %w", configFile, err)
	}
	if s.cfg.Backend == "" {
		s.cfg.Backend = BackendFile
	}
	return s, nil
}

// Init creates the .hp/ directory using the given backend.
// Returns error if .hp/ already exists.
func Init(dir string, backend Backend) (*Storage, error) {
	hpPath := filepath.Join(dir, hpDir)

	if _, err := os.Stat(hpPath); err == nil {
		return nil, fmt.Errorf(".hp/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .hp/: %w", err)
	}

	if backend == "" {
		backend = BackendFile
	}
	if backend != BackendFile && backend != BackendSQLite {
		return nil, fmt.Errorf("unknown backend %q (want file or sqlite)", backend)
	}

	if err := os.MkdirAll(hpPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .hp/: %w", err)
	}

	cfg := WorkspaceConfig{Version: 1, Backend: backend}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(hpPath, configFile), data, 0644); err != nil {
		os.RemoveAll(hpPath)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir, cfg: cfg}, nil
}

// Root returns the root directory containing .hp/.
func (s *Storage) Root() string {
	return s.root
}

// HpPath returns the path to the .hp/ directory.
func (s *Storage) HpPath() string {
	return filepath.Join(s.root, hpDir)
}

// Backend returns the configured persistence backend.
func (s *Storage) Backend() Backend {
	return s.cfg.Backend
}

// NotificationsPath returns the path of the notification center state file.
func (s *Storage) NotificationsPath() string {
	return filepath.Join(s.root, hpDir, notificationsFile)
}

// OpenAdapter returns the prospect adapter for the configured backend.
// The returned closer must be called when the adapter is no longer used.
func (s *Storage) OpenAdapter() (Adapter, io.Closer, error) {
	switch s.cfg.Backend {
	case BackendSQLite:
		a, err := OpenSQLite(filepath.Join(s.root, hpDir, databaseFile))
		if err != nil {
			return nil, nil, err
		}
		return a, a, nil
	case BackendFile:
		return NewFileAdapter(filepath.Join(s.root, hpDir, prospectsFile)), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q in .hp/%s", s.cfg.Backend, configFile)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
