// Package api implements the JSON-over-HTTPS client for the profilehub
// profile service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/profilehub/profilehub-client/config"
	"github.com/profilehub/profilehub-client/internal/models"
	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
	"github.com/profilehub/profilehub-client/pkg/httpclient"
	"github.com/profilehub/profilehub-client/pkg/logger"
	"github.com/profilehub/profilehub-client/pkg/metrics"
	"github.com/profilehub/profilehub-client/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the profile service. All calls take a context; none retry
// automatically, failures are reported once to the caller.
type Client struct {
	http    httpclient.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a client from service configuration.
func NewClient(cfg config.ServiceConfig) *Client {
	return &Client{
		http:    httpclient.NewStandardClientWithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second),
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
	}
}

// NewClientWithHTTP creates a client over a caller-supplied HTTP client.
// Used by tests to substitute a mock transport.
func NewClientWithHTTP(baseURL string, hc httpclient.Client) *Client {
	return &Client{
		http:    hc,
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

// GetProfile fetches one profile by its persisted id.
func (c *Client) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	var profile models.Profile
	u := fmt.Sprintf("%s/profiles/%d", c.baseURL, id)
	if err := c.doJSON(ctx, "getProfile", http.MethodGet, u, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetMasterProfile fetches the user's master profile via its alias route.
func (c *Client) GetMasterProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	var profile models.Profile
	u := fmt.Sprintf("%s/users/%d/profiles/master", c.baseURL, userID)
	if err := c.doJSON(ctx, "getMasterProfile", http.MethodGet, u, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateProfile creates a new profile under the user and returns the persisted
// document.
func (c *Client) CreateProfile(ctx context.Context, userID int64, p *models.Profile) (*models.Profile, error) {
	var saved models.Profile
	u := fmt.Sprintf("%s/users/%d/profiles", c.baseURL, userID)
	if err := c.doJSON(ctx, "createProfile", http.MethodPost, u, p, &saved); err != nil {
		metrics.ProfileSaves.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ProfileSaves.WithLabelValues("success").Inc()
	return &saved, nil
}

// UpdateProfile replaces the profile with the given persisted id and returns
// the persisted document.
func (c *Client) UpdateProfile(ctx context.Context, id int64, p *models.Profile) (*models.Profile, error) {
	var saved models.Profile
	u := fmt.Sprintf("%s/profiles/%d", c.baseURL, id)
	if err := c.doJSON(ctx, "updateProfile", http.MethodPut, u, p, &saved); err != nil {
		metrics.ProfileSaves.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ProfileSaves.WithLabelValues("success").Inc()
	return &saved, nil
}

// DeleteProfile deletes a profile by its persisted id.
func (c *Client) DeleteProfile(ctx context.Context, id int64) error {
	u := fmt.Sprintf("%s/profiles/%d", c.baseURL, id)
	if err := c.doJSON(ctx, "deleteProfile", http.MethodDelete, u, nil, nil); err != nil {
		metrics.ProfileDeletes.WithLabelValues("error").Inc()
		return err
	}
	metrics.ProfileDeletes.WithLabelValues("success").Inc()
	return nil
}

// SearchProfiles fetches one page of the user's profiles matching the filter
// set. Page geometry in the response is server-computed.
func (c *Client) SearchProfiles(ctx context.Context, userID int64, filters models.FilterSet, page models.PageRequest) (*models.ProfilePage, error) {
	q := url.Values{}
	for k, v := range filters.Compact() {
		q.Set(string(k), v)
	}
	q.Set("pageNumber", fmt.Sprintf("%d", page.PageNumber))
	q.Set("pageSize", fmt.Sprintf("%d", page.PageSize))

	var result models.ProfilePage
	u := fmt.Sprintf("%s/users/%d/profiles/page?%s", c.baseURL, userID, q.Encode())
	if err := c.doJSON(ctx, "searchProfiles", http.MethodGet, u, nil, &result); err != nil {
		metrics.ProfileSearches.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ProfileSearches.WithLabelValues("success").Inc()
	return &result, nil
}

// CloneMasterProfile clones the user's master profile into a new sub-profile
// and returns the new profile's id.
func (c *Client) CloneMasterProfile(ctx context.Context, userID int64) (int64, error) {
	var newID int64
	u := fmt.Sprintf("%s/users/%d/profiles/master/clone", c.baseURL, userID)
	if err := c.doJSON(ctx, "cloneMasterProfile", http.MethodPost, u, nil, &newID); err != nil {
		return 0, err
	}
	return newID, nil
}

// GetUserInfo fetches the user document shown after login completion.
func (c *Client) GetUserInfo(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	u := fmt.Sprintf("%s/users/%d/info", c.baseURL, userID)
	if err := c.doJSON(ctx, "getUserInfo", http.MethodGet, u, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PDFURL builds the export link for a profile's PDF rendering. The link is
// opened directly, never fetched by this client.
func (c *Client) PDFURL(id int64, columns bool) string {
	u := fmt.Sprintf("%s/profiles/%d/pdf", c.baseURL, id)
	if columns {
		u += "?secondary=true"
	}
	return u
}

// doJSON performs one request/response cycle: rate limit, trace span, encode,
// send, map status, decode.
func (c *Client) doJSON(ctx context.Context, operation, method, rawURL string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limiter: %w", operation, err)
	}

	ctx, span := tracing.StartSpan(ctx, "profilehub."+operation)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", rawURL),
	)

	start := time.Now()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", operation, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		metrics.APIRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.APIRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(operation, "error", duration, zap.Error(err))
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close errors are not actionable

	status := "success"
	if resp.StatusCode >= 400 {
		status = "error"
	}
	metrics.APIRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.APIRequestTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall(operation, status, duration, zap.Int("status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", operation, apperrors.ErrNotFound)
	case resp.StatusCode >= 400:
		return apperrors.RemoteError(operation, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
