// Package search drives the paged, multi-predicate profile list: a draft
// filter form, the applied filter set last submitted to the server, and the
// page cursor over the remote collection.
package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/profilehub/profilehub-client/internal/models"
	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
	"github.com/profilehub/profilehub-client/pkg/logger"
	"github.com/profilehub/profilehub-client/pkg/metrics"
	"go.uber.org/zap"
)

// Service is the remote side the controller drives.
type Service interface {
	SearchProfiles(ctx context.Context, userID int64, filters models.FilterSet, page models.PageRequest) (*models.ProfilePage, error)
	DeleteProfile(ctx context.Context, id int64) error
	CloneMasterProfile(ctx context.Context, userID int64) (int64, error)
}

// Notifier surfaces user-visible operation outcomes.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Controller holds the filter and page state for one search session. Editing
// the draft filters never touches the table; only ApplyFilters promotes them.
type Controller struct {
	svc      Service
	notifier Notifier
	userID   int64

	mu             sync.Mutex
	draftFilters   models.FilterSet
	appliedFilters models.FilterSet
	pageNumber     int
	pageSize       int
	page           *models.ProfilePage

	// generation stamps each fetch so a stale response arriving after a newer
	// request is discarded instead of applied.
	generation uint64
}

// NewController creates a controller starting at page 1 with no filters.
func NewController(svc Service, notifier Notifier, userID int64, pageSize int) (*Controller, error) {
	if !models.ValidPageSize(pageSize) {
		return nil, apperrors.InvalidInputError("pageSize", fmt.Sprintf("%d is not an allowed page size", pageSize))
	}
	return &Controller{
		svc:            svc,
		notifier:       notifier,
		userID:         userID,
		draftFilters:   models.FilterSet{},
		appliedFilters: models.FilterSet{},
		pageNumber:     1,
		pageSize:       pageSize,
	}, nil
}

// Page returns the last fetched result page, or nil before the first fetch.
func (c *Controller) Page() *models.ProfilePage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// PageNumber returns the current 1-indexed page cursor.
func (c *Controller) PageNumber() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageNumber
}

// PageSize returns the current page size.
func (c *Controller) PageSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageSize
}

// DraftFilters returns a copy of the in-progress filter form.
func (c *Controller) DraftFilters() models.FilterSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftFilters.Clone()
}

// AppliedFilters returns a copy of the filter set last submitted.
func (c *Controller) AppliedFilters() models.FilterSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appliedFilters.Clone()
}

// SetDraftFilter edits the filter form. No fetch is triggered; the table only
// changes on ApplyFilters.
func (c *Controller) SetDraftFilter(key models.FilterKey, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" {
		delete(c.draftFilters, key)
		return
	}
	c.draftFilters[key] = value
}

// Refresh re-fetches the current page with the applied filters. Used for the
// initial load and after a delete.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

// ApplyFilters promotes the non-empty draft entries to the applied set, resets
// the cursor to page 1 and fetches.
func (c *Controller) ApplyFilters(ctx context.Context, draft models.FilterSet) error {
	c.mu.Lock()
	c.draftFilters = draft.Clone()
	c.appliedFilters = draft.Compact()
	c.pageNumber = 1
	c.mu.Unlock()
	return c.fetch(ctx)
}

// ResetFilters clears both filter sets, resets the cursor to page 1 and
// fetches unfiltered.
func (c *Controller) ResetFilters(ctx context.Context) error {
	c.mu.Lock()
	c.draftFilters = models.FilterSet{}
	c.appliedFilters = models.FilterSet{}
	c.pageNumber = 1
	c.mu.Unlock()
	return c.fetch(ctx)
}

// ClearFilter blanks one filter form entry. When the key is currently applied
// the filter set is immediately re-applied so the table and the filter chips
// stay consistent with the form; otherwise no fetch fires.
func (c *Controller) ClearFilter(ctx context.Context, key models.FilterKey) error {
	c.mu.Lock()
	delete(c.draftFilters, key)
	_, applied := c.appliedFilters[key]
	if !applied {
		c.mu.Unlock()
		return nil
	}
	draft := c.draftFilters.Clone()
	c.mu.Unlock()
	return c.ApplyFilters(ctx, draft)
}

// SetPageNumber moves the cursor and fetches with the applied filters.
func (c *Controller) SetPageNumber(ctx context.Context, n int) error {
	if n < 1 {
		return apperrors.InvalidInputError("pageNumber", "must be at least 1")
	}
	c.mu.Lock()
	c.pageNumber = n
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetPageSize changes the page size and resets the cursor to page 1: page
// contents are not stable across size changes.
func (c *Controller) SetPageSize(ctx context.Context, size int) error {
	if !models.ValidPageSize(size) {
		return apperrors.InvalidInputError("pageSize", fmt.Sprintf("%d is not an allowed page size", size))
	}
	c.mu.Lock()
	c.pageNumber = 1
	c.pageSize = size
	c.mu.Unlock()
	return c.fetch(ctx)
}

// DeleteProfile deletes a profile and, only on success, refreshes the current
// page. On failure the page state is untouched and the caller's confirmation
// dialog stays open.
func (c *Controller) DeleteProfile(ctx context.Context, id int64) error {
	if err := c.svc.DeleteProfile(ctx, id); err != nil {
		logger.LogError(err, "Failed to delete profile", zap.Int64("profile_id", id))
		c.notifier.Error("An error occurred while deleting the profile.")
		return fmt.Errorf("delete profile: %w", err)
	}
	c.notifier.Success("Profile successfully deleted.")
	return c.fetch(ctx)
}

// AddProfile clones the user's master profile into a new sub-profile and
// returns the new profile's id for navigation.
func (c *Controller) AddProfile(ctx context.Context) (int64, error) {
	id, err := c.svc.CloneMasterProfile(ctx, c.userID)
	if err != nil {
		logger.LogError(err, "Failed to clone master profile", zap.Int64("user_id", c.userID))
		return 0, fmt.Errorf("clone master profile: %w", err)
	}
	return id, nil
}

// fetch performs one stamped page fetch. The result replaces the displayed
// page wholesale unless a newer fetch was started meanwhile, in which case the
// response is dropped as stale. A fetch error fails open: the previous page
// keeps rendering.
func (c *Controller) fetch(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	filters := c.appliedFilters.Clone()
	page := models.PageRequest{PageNumber: c.pageNumber, PageSize: c.pageSize}
	c.mu.Unlock()

	result, err := c.svc.SearchProfiles(ctx, c.userID, filters, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		metrics.StaleSearchResponses.Inc()
		logger.Debug("Discarding stale search response",
			zap.Uint64("generation", gen),
			zap.Uint64("current", c.generation))
		return nil
	}
	if err != nil {
		logger.LogError(err, "Failed to fetch profile page",
			zap.Int("page_number", page.PageNumber),
			zap.Int("page_size", page.PageSize))
		return fmt.Errorf("fetch profile page: %w", err)
	}

	c.page = result
	return nil
}
