package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/hbalint/jarvis/pkg/log"
)

// Store owns the config.yaml file. Loads are served from a cache that is
// invalidated when the file's modification time changes, so external
// edits take effect on the next turn without a restart. There are no
// package-level singletons; callers hold the Store.
type Store struct {
	path string

	mu       sync.Mutex
	cached   *Config
	modTime  time.Time
	reloadSF singleflight.Group
}

// NewStore creates a store for the config file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file location
func (s *Store) Path() string {
	return s.path
}

// Load returns the current configuration. A missing file is replaced
// with written defaults; a corrupt file falls back to defaults
// in-memory. Load never fails.
func (s *Store) Load() Config {
	info, err := os.Stat(s.path)
	if err != nil {
		s.mu.Lock()
		cached := s.cached
		s.mu.Unlock()
		if cached != nil {
			return *cached
		}
		if errors.Is(err, os.ErrNotExist) {
			return s.writeDefaults()
		}
		log.Warn("config stat failed: %v, using defaults", err)
		return Default()
	}

	s.mu.Lock()
	if s.cached != nil && s.modTime.Equal(info.ModTime()) {
		cfg := *s.cached
		s.mu.Unlock()
		return cfg
	}
	s.mu.Unlock()

	// Concurrent turns hitting a stale cache trigger a single read.
	v, _, _ := s.reloadSF.Do("reload", func() (any, error) {
		return s.reload(info.ModTime()), nil
	})
	return v.(Config)
}

// Save persists the configuration and refreshes the cache
func (s *Store) Save(cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("stat written config: %w", err)
	}

	s.mu.Lock()
	s.cached = &cfg
	s.modTime = info.ModTime()
	s.mu.Unlock()
	return nil
}

func (s *Store) reload(modTime time.Time) Config {
	data, err := os.ReadFile(s.path)
	if err != nil {
		log.Warn("config read failed: %v, using defaults", err)
		return Default()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Warn("config parse failed: %v, using defaults", err)
		return Default()
	}
	cfg.Normalize()

	s.mu.Lock()
	s.cached = &cfg
	s.modTime = modTime
	s.mu.Unlock()

	log.Info("config loaded: model=%s", cfg.Model)
	return cfg
}

func (s *Store) writeDefaults() Config {
	cfg := Default()
	if err := s.Save(cfg); err != nil {
		// Unwritable config directory: keep the defaults in memory for
		// the rest of the process.
		log.Warn("config write failed: %v, keeping defaults in memory", err)
		s.mu.Lock()
		s.cached = &cfg
		s.modTime = time.Time{}
		s.mu.Unlock()
		return cfg
	}
	log.Info("created default config at %s", s.path)
	return cfg
}
