package cache

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/profilehub/profilehub-client/internal/models"
	"github.com/profilehub/profilehub-client/pkg/logger"
	"github.com/profilehub/profilehub-client/pkg/metrics"
	"go.uber.org/zap"
)

const (
	profileKeyPrefix = "profile:id:"
	masterKeyPrefix  = "profile:master:"
	cacheName        = "profiles"
	cacheCheckPeriod = 60 * time.Second
)

// ProfileFetcher is the remote read side the cache fronts.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	GetMasterProfile(ctx context.Context, userID int64) (*models.Profile, error)
}

// ProfileCache is a read-through TTL cache over profile fetches. Entries are
// cloned on the way in and out so cached documents are never shared with
// editing sessions.
type ProfileCache struct {
	cache    *gocache.Cache
	fetcher  ProfileFetcher
	disabled bool
}

// NewProfileCache creates a profile cache with the given TTL. When disabled,
// every read goes straight to the fetcher.
func NewProfileCache(fetcher ProfileFetcher, ttlSeconds int, disabled bool) *ProfileCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &ProfileCache{
		cache:    gocache.New(ttl, cacheCheckPeriod),
		fetcher:  fetcher,
		disabled: disabled,
	}
}

// GetProfile returns the cached profile or fetches and caches it.
func (pc *ProfileCache) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	key := profileKeyPrefix + formatID(id)
	if p := pc.lookup(key); p != nil {
		return p, nil
	}

	profile, err := pc.fetcher.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	pc.store(key, profile)
	return profile, nil
}

// GetMasterProfile returns the cached master profile or fetches and caches it.
func (pc *ProfileCache) GetMasterProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	key := masterKeyPrefix + formatID(userID)
	if p := pc.lookup(key); p != nil {
		return p, nil
	}

	profile, err := pc.fetcher.GetMasterProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	pc.store(key, profile)
	return profile, nil
}

// Invalidate drops the cached entry for a profile id. Called after saves and
// deletes so the next read sees the server's version.
func (pc *ProfileCache) Invalidate(id int64) {
	pc.cache.Delete(profileKeyPrefix + formatID(id))
}

// InvalidateMaster drops the cached master entry for a user.
func (pc *ProfileCache) InvalidateMaster(userID int64) {
	pc.cache.Delete(masterKeyPrefix + formatID(userID))
}

// Flush empties the cache entirely.
func (pc *ProfileCache) Flush() {
	pc.cache.Flush()
	logger.Debug("Profile cache flushed")
}

func (pc *ProfileCache) lookup(key string) *models.Profile {
	if pc.disabled {
		return nil
	}
	if cached, found := pc.cache.Get(key); found {
		if p, ok := cached.(*models.Profile); ok {
			metrics.CacheHits.WithLabelValues(cacheName).Inc()
			return p.Clone()
		}
	}
	metrics.CacheMisses.WithLabelValues(cacheName).Inc()
	return nil
}

func (pc *ProfileCache) store(key string, p *models.Profile) {
	if pc.disabled {
		return
	}
	pc.cache.SetDefault(key, p.Clone())
	logger.Debug("Profile cached", zap.String("key", key))
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
