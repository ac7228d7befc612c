// Package storage keeps the single piece of durable client-side state: the
// current user id, written once after login completion and read on every
// startup.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
)

type userState struct {
	UserID int64 `json:"userId"`
}

// UserStore persists the current user id as a small JSON file.
type UserStore struct {
	path string
}

// NewUserStore creates a store at the given file path.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// CurrentUser returns the stored user id. ErrNotFound when no login has been
// completed on this machine.
func (s *UserStore) CurrentUser() (int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, apperrors.NotFoundError("current user")
		}
		return 0, fmt.Errorf("read user state: %w", err)
	}

	var state userState
	if err := json.Unmarshal(data, &state); err != nil {
		return 0, fmt.Errorf("decode user state: %w", err)
	}
	return state.UserID, nil
}

// SetCurrentUser durably records the user id. The write is atomic via a
// temp-file rename so a crash never leaves a torn file.
func (s *UserStore) SetCurrentUser(userID int64) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.Marshal(userState{UserID: userID})
	if err != nil {
		return fmt.Errorf("encode user state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write user state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit user state: %w", err)
	}
	return nil
}

// Clear removes the stored user id (logout).
func (s *UserStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear user state: %w", err)
	}
	return nil
}
