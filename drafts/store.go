// Package drafts hands a first message from a referring surface to the chat
// controller before the conversation route exists. Each slot is consumed at
// most once.
package drafts

import (
	"errors"
	"os"
	"path/filepath"
)

// GenericKey is the slot checked for any draft conversation.
const GenericKey = "chat-new-initial"

// Key returns the per-conversation slot name.
func Key(chatID string) string {
	return "chat-" + chatID + "-initial"
}

// Store keeps pending initial messages as one file per slot.
type Store struct {
	dir string
}

func NewStore(dataDir string) (*Store, error) {
	dir := filepath.Join(dataDir, "handoff")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Put stashes text under the given slot, replacing any previous value.
func (s *Store) Put(key, text string) error {
	return os.WriteFile(filepath.Join(s.dir, key), []byte(text), 0644)
}

// Take returns the stashed text and removes the slot. ok is false when the
// slot is empty; taking twice never yields the message twice.
func (s *Store) Take(key string) (text string, ok bool, err error) {
	path := filepath.Join(s.dir, key)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", false, err
	}
	return string(data), true, nil
}
