package cache

import (
	"context"

	"github.com/profilehub/profilehub-client/internal/models"
)

// Remote is the full profile service surface the store wraps.
type Remote interface {
	ProfileFetcher
	CreateProfile(ctx context.Context, userID int64, p *models.Profile) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id int64, p *models.Profile) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id int64) error
	SearchProfiles(ctx context.Context, userID int64, filters models.FilterSet, page models.PageRequest) (*models.ProfilePage, error)
	CloneMasterProfile(ctx context.Context, userID int64) (int64, error)
}

// Store fronts the remote service with the profile cache: reads go through the
// cache, writes go straight to the service and flush the cache so the next
// read sees the server's version.
type Store struct {
	remote Remote
	cache  *ProfileCache
}

// NewStore creates a cache-fronted store over the remote service.
func NewStore(remote Remote, ttlSeconds int, disabled bool) *Store {
	return &Store{
		remote: remote,
		cache:  NewProfileCache(remote, ttlSeconds, disabled),
	}
}

// GetProfile reads through the cache.
func (s *Store) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return s.cache.GetProfile(ctx, id)
}

// GetMasterProfile reads through the cache.
func (s *Store) GetMasterProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.cache.GetMasterProfile(ctx, userID)
}

// CreateProfile writes through and flushes the cache.
func (s *Store) CreateProfile(ctx context.Context, userID int64, p *models.Profile) (*models.Profile, error) {
	saved, err := s.remote.CreateProfile(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	s.cache.Flush()
	return saved, nil
}

// UpdateProfile writes through and flushes the cache. A flush rather than a
// point invalidation: the updated document may also be the cached master.
func (s *Store) UpdateProfile(ctx context.Context, id int64, p *models.Profile) (*models.Profile, error) {
	saved, err := s.remote.UpdateProfile(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.cache.Flush()
	return saved, nil
}

// DeleteProfile deletes remotely and flushes the cache.
func (s *Store) DeleteProfile(ctx context.Context, id int64) error {
	if err := s.remote.DeleteProfile(ctx, id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// SearchProfiles is a pass-through; paged results are never cached.
func (s *Store) SearchProfiles(ctx context.Context, userID int64, filters models.FilterSet, page models.PageRequest) (*models.ProfilePage, error) {
	return s.remote.SearchProfiles(ctx, userID, filters, page)
}

// CloneMasterProfile is a pass-through.
func (s *Store) CloneMasterProfile(ctx context.Context, userID int64) (int64, error) {
	return s.remote.CloneMasterProfile(ctx, userID)
}

// InvalidateProfile drops one cached profile so the next read is a full
// re-read.
func (s *Store) InvalidateProfile(id int64) {
	s.cache.Invalidate(id)
}

// InvalidateMaster drops the cached master entry for a user.
func (s *Store) InvalidateMaster(userID int64) {
	s.cache.InvalidateMaster(userID)
}
