// Package session persists the single "logged in" flag of the dashboard.
//
// The flag has exactly two transitions: Login sets it, Logout clears it. There
// is no expiry and no credential check.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// FlagFile is the name of the flag file inside the data directory.
const FlagFile = "staffplan_auth"

// ErrUnauthenticated is returned by Require when nobody is logged in.
var ErrUnauthenticated = errors.New("not logged in: call login first")

// Store keeps the flag as a file holding "true".
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store whose flag lives in dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FlagFile)}
}

// Login sets the flag.
func (s *Store) Login() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte("true"), 0600); err != nil {
		return fmt.Errorf("failed to persist session flag: %w", err)
	}
	log.Info().Msg("Session logged in")
	return nil
}

// Logout clears the flag. Logging out twice is not an error.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session flag: %w", err)
	}
	log.Info().Msg("Session logged out")
	return nil
}

// IsAuthenticated reports whether the flag is present and true.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "true"
}

// Require returns ErrUnauthenticated unless the flag is set.
func (s *Store) Require() error {
	if !s.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}
