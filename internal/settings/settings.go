package settings

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"hotelbooker/pkg/config"
	"hotelbooker/pkg/logger"
)

// Store is a tiny key=value settings file, loaded once and rewritten on every
// Set. It keeps operator-tunable knobs (currency, conversion rates) out of
// the environment so they survive restarts without redeploys.
type Store struct {
	path string
	log  *logger.Logger

	mu     sync.Mutex
	props  map[string]string
	loaded bool
}

func NewStore(cfg *config.Config) *Store {
	return &Store{path: cfg.SettingsFile(), log: cfg.Log}
}

func NewStoreAt(path string, log *logger.Logger) *Store {
	return &Store{path: path, log: log}
}

func (s *Store) Get(key, fallback string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	if v, ok := s.props[key]; ok {
		return v
	}
	return fallback
}

func (s *Store) GetFloat(key string, fallback float64) float64 {
	raw := s.Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return v
}

func (s *Store) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	s.props[key] = value
	return s.saveLocked()
}

func (s *Store) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.props = map[string]string{}

	f, err := os.Open(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("Failed to open settings file", "path", s.path, "error", err)
		}
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		s.props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		s.log.Error("Failed to read settings file", "path", s.path, "error", err)
	}
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", s.path, err)
	}

	keys := make([]string, 0, len(s.props))
	for k := range s.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("# HotelBooker Settings\n")
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(s.props[k])
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	return nil
}
