package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"hotelbooker/pkg/logger"
)

// Store is a line-oriented record collection backed by a single text file.
// It knows nothing about record shape; codecs own that. Every mutation is a
// full rewrite, serialized by a per-collection mutex so concurrent callers
// cannot interleave their read-modify-rewrite cycles.
type Store struct {
	path string
	seed []string
	log  *logger.Logger
	mu   sync.Mutex
}

func New(path string, seed []string, log *logger.Logger) *Store {
	return &Store{
		path: path,
		seed: seed,
		log:  log,
	}
}

func (s *Store) Path() string {
	return s.path
}

// LoadAll returns every raw line of the collection. A missing file is created
// with the seed payload first. Read failures degrade to an empty collection;
// callers must tolerate that as a valid (if degraded) outcome.
func (s *Store) LoadAll() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Append adds one record line to the end of the collection.
func (s *Store) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append to %s: %w", s.path, err)
	}
	return nil
}

// ReplaceAll rewrites the collection wholesale.
func (s *Store) ReplaceAll(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(lines)
}

// Update runs one read-modify-rewrite cycle under the collection lock.
// mutate receives the current lines and returns the full replacement set.
func (s *Store) Update(mutate func(lines []string) []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.loadLocked()
	return s.replaceLocked(mutate(lines))
}

func (s *Store) loadLocked() []string {
	if err := s.ensureLocked(); err != nil {
		s.log.Error("Failed to prepare collection file", "path", s.path, "error", err)
		return nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		s.log.Error("Failed to open collection file", "path", s.path, "error", err)
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		s.log.Error("Failed to read collection file", "path", s.path, "error", err)
		return nil
	}
	return lines
}

func (s *Store) replaceLocked(lines []string) error {
	if err := s.ensureLocked(); err != nil {
		return err
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	return nil
}

// ensureLocked creates the parent directory and, when the file does not exist
// yet, writes the seed payload.
func (s *Store) ensureLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", s.path, err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	var sb strings.Builder
	for _, line := range s.seed {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("seed %s: %w", s.path, err)
	}
	if len(s.seed) > 0 {
		s.log.Info("Collection file created with seed data", "path", s.path, "records", len(s.seed))
	}
	return nil
}

// IsRecord reports whether a raw line holds a record: blank lines and
// #-comments are not records.
func IsRecord(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}
