// Package authstore persists the client's authentication state: the opaque
// bearer token and the active school id.
package authstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// State is the durable authentication state.
type State struct {
	Token          string `json:"token"`
	ActiveSchoolID string `json:"active_school_id"`
}

// Snapshot is the state plus hydration status. Callers must not trust the
// auth fields until Loaded is true.
type Snapshot struct {
	Token          string
	ActiveSchoolID string
	Loaded         bool
}

// Store owns the auth state. It hydrates synchronously from disk on
// construction so dependent surfaces never guess at auth status.
type Store struct {
	path   string
	dataMu sync.RWMutex
	data   State
	loaded bool
}

// NewStore loads existing auth state from disk, or starts signed out.
func NewStore(dataDir string) (*Store, error) {
	s := &Store{
		path: filepath.Join(dataDir, "auth.json"),
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	s.loaded = true

	return s, nil
}

// Snapshot returns the current auth state.
func (s *Store) Snapshot() Snapshot {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return Snapshot{
		Token:          s.data.Token,
		ActiveSchoolID: s.data.ActiveSchoolID,
		Loaded:         s.loaded,
	}
}

// IsAuthenticated reports whether a token is present and hydration is done.
func (s *Store) IsAuthenticated() bool {
	snap := s.Snapshot()
	return snap.Loaded && snap.Token != ""
}

// Login persists the token. It does not navigate; the caller decides the
// next route based on whether a school id is already known.
func (s *Store) Login(token string) error {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	next := s.data
	next.Token = token
	if err := s.save(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// SetActiveSchool persists the tenant context.
func (s *Store) SetActiveSchool(id string) error {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	next := s.data
	next.ActiveSchoolID = id
	if err := s.save(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// Logout clears both the token and the active school id.
func (s *Store) Logout() error {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	if err := s.save(State{}); err != nil {
		return err
	}
	s.data = State{}
	return nil
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.data.Token
}

// ActiveSchoolID returns the current tenant id, or "" before onboarding.
func (s *Store) ActiveSchoolID() string {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.data.ActiveSchoolID
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// Treat corrupted state as signed out
		return nil
	}

	s.data = state
	return nil
}

func (s *Store) save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: write to temp file then rename
	tmp, err := os.CreateTemp(dir, "auth-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, s.path)
}
