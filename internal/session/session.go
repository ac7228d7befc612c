// Package session holds the editing state machine for a single profile: a
// clean baseline confirmed against the server and a user-edited draft, with
// save/reset/rename/elevation operations over the pair.
package session

import (
	"context"
	"fmt"
	"reflect"

	"github.com/profilehub/profilehub-client/internal/models"
	"github.com/profilehub/profilehub-client/internal/reconcile"
	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
	"github.com/profilehub/profilehub-client/pkg/logger"
	"go.uber.org/zap"
)

// State is the lifecycle state of an edit session.
type State int

const (
	// StateLoading is the initial state while the profile is being fetched.
	StateLoading State = iota
	// StateReady means baseline and draft are populated and editable.
	StateReady
	// StateLoadFailed means the initial fetch failed; Load may be retried.
	StateLoadFailed
)

// ProfileService is the remote side the session drives. The production
// implementation is the cache-fronted store over the API client.
type ProfileService interface {
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	GetMasterProfile(ctx context.Context, userID int64) (*models.Profile, error)
	CreateProfile(ctx context.Context, userID int64, p *models.Profile) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id int64, p *models.Profile) (*models.Profile, error)
}

// CacheInvalidator is optionally implemented by a ProfileService that caches
// reads. Reset is defined as a full re-read, so the session drops cached
// entries before re-fetching.
type CacheInvalidator interface {
	InvalidateProfile(id int64)
	InvalidateMaster(userID int64)
}

// Notifier surfaces user-visible operation outcomes.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// EditSession manages one profile's baseline/draft pair.
type EditSession struct {
	svc         ProfileService
	notifier    Notifier
	route       Route
	currentUser models.User

	state    State
	baseline *models.Profile
	draft    *models.Profile

	// busy makes save and reset mutually exclusive. Advisory only: callers
	// must check Busy() before invoking, the flag is not a queue.
	busy bool

	renaming    bool
	pendingName string

	preservedName string
}

// New creates a session for the given route parameter. Call Load before
// anything else.
func New(svc ProfileService, notifier Notifier, route Route, currentUser models.User) *EditSession {
	return &EditSession{
		svc:         svc,
		notifier:    notifier,
		route:       route,
		currentUser: currentUser,
		state:       StateLoading,
	}
}

// State returns the session lifecycle state.
func (s *EditSession) State() State {
	return s.state
}

// Draft returns the live draft document. Mutate it only through Edit.
func (s *EditSession) Draft() *models.Profile {
	return s.draft
}

// Baseline returns the last document confirmed from or to the server.
func (s *EditSession) Baseline() *models.Profile {
	return s.baseline
}

// Dirty reports whether the draft differs structurally from the baseline.
func (s *EditSession) Dirty() bool {
	return !reflect.DeepEqual(s.baseline, s.draft)
}

// Busy reports whether a save or reset is in flight.
func (s *EditSession) Busy() bool {
	return s.busy
}

// Load populates baseline and draft. For a new profile the empty template is
// seeded locally and no fetch happens. A failed fetch leaves the session in
// StateLoadFailed; calling Load again retries.
func (s *EditSession) Load(ctx context.Context) error {
	if s.route.IsNew() {
		s.baseline = models.EmptyProfile()
		s.draft = s.baseline.Clone()
		s.state = StateReady
		return nil
	}

	doc, err := s.fetch(ctx)
	if err != nil {
		s.state = StateLoadFailed
		logger.LogError(err, "Failed to load profile", zap.String("route", s.route.String()))
		return fmt.Errorf("load profile: %w", err)
	}

	s.baseline = reconcile.FromServer(doc)
	s.draft = s.baseline.Clone()
	s.state = StateReady
	return nil
}

// Retry re-runs a failed load.
func (s *EditSession) Retry(ctx context.Context) error {
	if s.state != StateLoadFailed {
		return apperrors.ErrConflict
	}
	return s.Load(ctx)
}

// Edit applies a mutation to the draft only. The baseline is untouched, so
// dirtiness follows directly from the edit.
func (s *EditSession) Edit(mutate func(draft *models.Profile)) error {
	if s.state != StateReady {
		return apperrors.ErrNotReady
	}
	mutate(s.draft)
	return nil
}

// Save sends the sanitized draft to the server. Routing: a new profile, or a
// master-aliased profile that has never been persisted, is created; everything
// else is updated in place. On success both halves adopt the server's
// response; on failure the draft is preserved so no work is lost.
func (s *EditSession) Save(ctx context.Context) error {
	if s.state != StateReady {
		return apperrors.ErrNotReady
	}
	if s.busy {
		return apperrors.ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	wire := reconcile.ToWire(s.draft)

	var (
		saved *models.Profile
		err   error
	)
	rootID, persisted := s.draft.ID.Int64()
	if s.route.IsNew() || (s.route.IsMaster() && !persisted) {
		saved, err = s.svc.CreateProfile(ctx, s.currentUser.ID, wire)
	} else {
		saved, err = s.svc.UpdateProfile(ctx, rootID, wire)
	}
	if err != nil {
		logger.LogError(err, "Failed to save profile", zap.String("route", s.route.String()))
		s.notifier.Error("An error occurred while saving your profile.")
		return fmt.Errorf("save profile: %w", err)
	}

	name := s.draft.Name
	if name == "" {
		name = "Master Profile"
	}

	s.baseline = saved
	s.draft = saved.Clone()
	s.notifier.Success(fmt.Sprintf("Successfully saved %s.", name))
	return nil
}

// Reset discards the draft by re-reading from the server, not by rolling back
// to the baseline, so concurrent external changes are picked up too.
func (s *EditSession) Reset(ctx context.Context) error {
	if s.state != StateReady {
		return apperrors.ErrNotReady
	}
	if s.busy {
		return apperrors.ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	// A never-saved profile has no server copy to re-read; discard means
	// starting over from the empty template.
	if s.route.IsNew() {
		s.baseline = models.EmptyProfile()
		s.draft = s.baseline.Clone()
		return nil
	}

	if inv, ok := s.svc.(CacheInvalidator); ok {
		if id, persisted := s.draft.ID.Int64(); persisted {
			inv.InvalidateProfile(id)
		}
		if s.route.IsMaster() {
			inv.InvalidateMaster(s.currentUser.ID)
		}
	}

	doc, err := s.fetch(ctx)
	if err != nil {
		logger.LogError(err, "Failed to reset profile", zap.String("route", s.route.String()))
		return fmt.Errorf("reset profile: %w", err)
	}

	s.baseline = reconcile.FromServer(doc)
	s.draft = s.baseline.Clone()
	return nil
}

// IsCreator reports whether the current user owns the draft. Display gating
// only; the server is the enforcement point.
func (s *EditSession) IsCreator() bool {
	return s.draft != nil && s.draft.User != nil && s.draft.User.ID == s.currentUser.ID
}

func (s *EditSession) fetch(ctx context.Context) (*models.Profile, error) {
	if s.route.IsMaster() {
		return s.svc.GetMasterProfile(ctx, s.currentUser.ID)
	}
	id, _ := s.route.ProfileID()
	return s.svc.GetProfile(ctx, id)
}
