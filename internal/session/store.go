// Package session persists the authenticated admin's identity and token
// pair to a single local JSON document.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/yama-admin/video-console-go/internal/models"
)

// ErrNoSession indicates no valid session is present.
var ErrNoSession = errors.New("no active session")

// Store owns the persisted session. It is the only component allowed to
// read or write the session file; every in-memory change is mirrored to
// disk synchronously.
type Store struct {
	mu      sync.Mutex
	path    string
	current *models.UserDetails
	logger  *zap.Logger
}

// Open loads the session file at path. A stored value that fails the
// structural check (non-empty user id, access token and refresh token) is
// treated as absent and purged from disk.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var details models.UserDetails
	if err := json.Unmarshal(data, &details); err != nil {
		logger.Warn("stored session is not valid JSON, clearing it", zap.Error(err))
		s.purge()
		return s, nil
	}

	if !valid(details) {
		logger.Warn("stored session failed validation, clearing it")
		s.purge()
		return s, nil
	}

	s.current = &details
	return s, nil
}

func valid(d models.UserDetails) bool {
	return d.User.UserID != "" && d.AccessToken != "" && d.RefreshToken != ""
}

// Current returns the active session, or ErrNoSession.
func (s *Store) Current() (models.UserDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.UserDetails{}, ErrNoSession
	}
	return *s.current, nil
}

// Set replaces the session and mirrors it to disk.
func (s *Store) Set(details models.UserDetails) error {
	if !valid(details) {
		return fmt.Errorf("refusing to store incomplete session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	s.current = &details
	return nil
}

// Clear logs the user out: memory and disk are both wiped.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.purge()
	s.logger.Info("session cleared")
}

func (s *Store) purge() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove session file", zap.Error(err))
	}
}
