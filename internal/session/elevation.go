package session

import (
	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
)

// masterProfileName is the fixed display name a profile takes while elevated.
const masterProfileName = "Master Profile"

// ElevateToMaster marks the draft as the master profile, preserving the
// current name in a session-local side channel so demotion can restore it
// exactly. Disabled on the master route: a profile already addressed as the
// canonical master cannot re-elevate itself.
func (s *EditSession) ElevateToMaster() error {
	if s.state != StateReady {
		return apperrors.ErrNotReady
	}
	if s.route.IsMaster() {
		return apperrors.InvalidInputError("masterProfile", "profile is already addressed as master")
	}
	if s.draft.MasterProfile {
		return apperrors.ErrConflict
	}

	s.preservedName = s.draft.Name
	s.draft.MasterProfile = true
	s.draft.Name = masterProfileName
	return nil
}

// Demote reverses an elevation, restoring the pre-elevation name. Only the
// draft half changes; elevation and demotion participate in ordinary dirty
// tracking like any other edit.
func (s *EditSession) Demote() error {
	if s.state != StateReady {
		return apperrors.ErrNotReady
	}
	if !s.draft.MasterProfile {
		return apperrors.ErrConflict
	}

	s.draft.MasterProfile = false
	s.draft.Name = s.preservedName
	s.preservedName = ""
	return nil
}

// ToggleMaster elevates or demotes depending on the draft's current flag,
// matching the single star-button affordance.
func (s *EditSession) ToggleMaster() error {
	if s.state != StateReady {
		return apperrors.ErrNotReady
	}
	if s.draft.MasterProfile {
		return s.Demote()
	}
	return s.ElevateToMaster()
}
