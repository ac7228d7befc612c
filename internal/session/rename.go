package session

import (
	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
)

// Renaming reports whether the rename sub-state is active.
func (s *EditSession) Renaming() bool {
	return s.renaming
}

// RenameBegin snapshots the current name and enters the rename sub-state.
// Renaming a master profile is disabled; its name is fixed.
func (s *EditSession) RenameBegin() error {
	if s.state != StateReady {
		return apperrors.ErrNotReady
	}
	if s.draft.MasterProfile {
		return apperrors.InvalidInputError("name", "master profile cannot be renamed")
	}
	if s.renaming {
		return nil
	}
	s.pendingName = s.draft.Name
	s.renaming = true
	return nil
}

// RenameConfirm keeps whatever name the draft currently holds and exits the
// sub-state. A blank name fails field validation and blocks confirmation.
func (s *EditSession) RenameConfirm() error {
	if !s.renaming {
		return apperrors.InvalidInputError("name", "no rename in progress")
	}
	if err := s.draft.Validate(); err != nil {
		return apperrors.InvalidInputError("name", "a profile name is required")
	}
	s.pendingName = ""
	s.renaming = false
	return nil
}

// RenameCancel restores the snapshotted name and exits the sub-state.
func (s *EditSession) RenameCancel() error {
	if !s.renaming {
		return apperrors.InvalidInputError("name", "no rename in progress")
	}
	s.draft.Name = s.pendingName
	s.pendingName = ""
	s.renaming = false
	return nil
}
