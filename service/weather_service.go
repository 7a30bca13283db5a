package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/kostiantyn-povnych/weather-service/cache"
	"github.com/kostiantyn-povnych/weather-service/errors"
	"github.com/kostiantyn-povnych/weather-service/events"
	"github.com/kostiantyn-povnych/weather-service/models"
	"github.com/kostiantyn-povnych/weather-service/providers"
	"github.com/kostiantyn-povnych/weather-service/ratelimit"
	"github.com/kostiantyn-povnych/weather-service/storage"
)

// eventRecordTimeout bounds the audit write after the request context is
// detached, so best-effort logging survives a transport cancel.
const eventRecordTimeout = 2 * time.Second

// WeatherService orchestrates a single weather lookup:
// rate check, cache lookup, resolve and fetch on miss, best-effort cache
// store and snapshot persist, then exactly one audit event.
// It holds no per-request state; backends are selected once at startup.
type WeatherService struct {
	geocoder providers.Geocoder
	provider providers.WeatherProvider
	cache    cache.Cache
	limiter  ratelimit.Limiter
	events   events.Store
	storage  storage.ObjectStore
	cacheTTL time.Duration
}

// Dependencies carries the backends the orchestrator sequences.
type Dependencies struct {
	Geocoder providers.Geocoder
	Provider providers.WeatherProvider
	Cache    cache.Cache
	Limiter  ratelimit.Limiter
	Events   events.Store
	Storage  storage.ObjectStore
	CacheTTL time.Duration
}

// NewWeatherService creates the request orchestrator.
func NewWeatherService(deps Dependencies) *WeatherService {
	return &WeatherService{
		geocoder: deps.Geocoder,
		provider: deps.Provider,
		cache:    deps.Cache,
		limiter:  deps.Limiter,
		events:   deps.Events,
		storage:  deps.Storage,
		cacheTTL: deps.CacheTTL,
	}
}

// GetWeather serves one lookup request. Error policy: resolver and fetcher
// failures surface to the caller; cache, data store, and event store
// failures degrade to best-effort; a limiter backend failure admits the
// request. Every path, success or failure, records exactly one event.
func (s *WeatherService) GetWeather(ctx context.Context, clientKey string, query models.LocationQuery) (*models.WeatherSnapshot, error) {
	query = query.Normalized()

	// Resolve/fetch failures are the only paths that fall through with the
	// default outcome; every other terminal path overwrites it.
	outcome := models.OutcomeUpstreamError
	objectURL := ""
	defer func() {
		s.recordEvent(ctx, clientKey, query, outcome, objectURL)
	}()

	if query.City == "" {
		outcome = models.OutcomeInvalidInput
		return nil, errors.NewValidationError("city cannot be empty")
	}

	allowed, err := s.limiter.Allow(ctx, clientKey)
	if err != nil {
		// Fail open: availability over strict quota enforcement.
		slog.Error("rate limiter backend error, admitting request", "error", err, "client_key", clientKey)
		allowed = true
	}
	if !allowed {
		outcome = models.OutcomeRateLimited
		return nil, errors.NewRateLimitedError("request quota exceeded")
	}

	cacheKey := query.CacheKey()
	if snapshot, found := s.cache.Get(ctx, cacheKey); found {
		slog.Debug("cache hit", "key", cacheKey)
		outcome = models.OutcomeCacheHit
		return snapshot, nil
	}
	slog.Debug("cache miss", "key", cacheKey)

	coords, err := s.resolveWithRetry(ctx, query)
	if err != nil {
		slog.Error("resolve location", "error", err, "city", query.City)
		return nil, err
	}

	snapshot, err := s.fetchWithRetry(ctx, *coords)
	if err != nil {
		slog.Error("fetch current weather", "error", err, "city", query.City)
		return nil, err
	}
	snapshot.Location = query

	s.cache.Set(ctx, cacheKey, snapshot, s.cacheTTL)
	objectURL = s.persistSnapshot(ctx, snapshot)

	outcome = models.OutcomeServed
	return snapshot, nil
}

func (s *WeatherService) resolveWithRetry(ctx context.Context, query models.LocationQuery) (*models.Coordinates, error) {
	var coords *models.Coordinates
	err := retryUpstream(ctx, func() error {
		var resolveErr error
		coords, resolveErr = s.geocoder.Resolve(ctx, query)
		return resolveErr
	})
	if err != nil {
		return nil, err
	}
	return coords, nil
}

func (s *WeatherService) fetchWithRetry(ctx context.Context, coords models.Coordinates) (*models.WeatherSnapshot, error) {
	var snapshot *models.WeatherSnapshot
	err := retryUpstream(ctx, func() error {
		var fetchErr error
		snapshot, fetchErr = s.provider.FetchCurrent(ctx, coords)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// retryUpstream runs fn with at most one retry. Only transport-level
// upstream failures are retried; the reads are idempotent, so a duplicate
// call is safe. Not-found, validation, and malformed-body errors are final.
func retryUpstream(ctx context.Context, fn func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1), ctx)
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.IsExternalAPIError(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

// persistSnapshot writes the snapshot JSON to the object store and returns
// its URL, or "" when persisting failed. Best-effort: failures are logged,
// never surfaced.
func (s *WeatherService) persistSnapshot(ctx context.Context, snapshot *models.WeatherSnapshot) string {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		slog.Error("marshal snapshot", "error", err)
		return ""
	}

	name := snapshotObjectName(snapshot.Location, snapshot.FetchedAt)
	url, err := s.storage.Put(ctx, name, data)
	if err != nil {
		slog.Error("persist snapshot", "error", err, "object", name)
		return ""
	}
	return url
}

func snapshotObjectName(query models.LocationQuery, fetchedAt time.Time) string {
	country := query.CountryCode
	if country == "" {
		country = "any"
	}
	return fmt.Sprintf("%s_%s_%s.json", query.City, country, fetchedAt.UTC().Format("20060102_150405"))
}

// recordEvent appends the audit record for this request. It runs on a
// detached context so a cancelled transport does not lose the trail, and it
// never fails the request.
func (s *WeatherService) recordEvent(ctx context.Context, clientKey string, query models.LocationQuery, outcome models.Outcome, objectURL string) {
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventRecordTimeout)
	defer cancel()

	event := &models.EventRecord{
		ID:        uuid.NewString(),
		ClientKey: clientKey,
		Location:  query,
		Outcome:   outcome,
		ObjectURL: objectURL,
		Timestamp: time.Now().UTC(),
	}

	if err := s.events.Record(recordCtx, event); err != nil {
		slog.Error("record event", "error", err, "outcome", outcome)
	}
}
