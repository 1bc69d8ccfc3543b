package photos

import (
	"context"
	"log/slog"
	"time"

	"github.com/VolleyLord/pexels/internal/datastore"
	"github.com/VolleyLord/pexels/internal/errors"
	"github.com/VolleyLord/pexels/internal/logging"
	"github.com/VolleyLord/pexels/internal/metrics"
)

const (
	// CacheLimit caps how many page-1 results are persisted per query, and
	// how many rows a cache fallback returns.
	CacheLimit = 30

	// DefaultValidity is the cache validity window. Rows older than this are
	// swept on page-1 loads and never served as fallback.
	DefaultValidity = 1 * time.Hour
)

// Loader serves pages of photos for the curated feed (empty query) or a
// search term, remote-first with cached fallback on transient network
// failure. Page-1 loads refresh the per-query cache, preserving bookmarks.
type Loader struct {
	source   Source
	store    datastore.Interface
	creds    CredentialProvider
	validity time.Duration
	clock    func() time.Time
	metrics  *metrics.PhotoMetrics
	log      *slog.Logger
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithValidity overrides the cache validity window.
func WithValidity(validity time.Duration) LoaderOption {
	return func(l *Loader) { l.validity = validity }
}

// WithClock overrides the time source, used by tests.
func WithClock(clock func() time.Time) LoaderOption {
	return func(l *Loader) { l.clock = clock }
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.PhotoMetrics) LoaderOption {
	return func(l *Loader) { l.metrics = m }
}

// WithLogger overrides the service logger.
func WithLogger(log *slog.Logger) LoaderOption {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a page loader over the given remote source, cache store
// and credential provider.
func NewLoader(source Source, store datastore.Interface, creds CredentialProvider, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:   source,
		store:    store,
		creds:    creds,
		validity: DefaultValidity,
		clock:    time.Now,
		log:      logging.ForService("photos.loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadPage loads one page of photos. An empty query selects the curated
// feed; anything else is a search, with the normalized query doubling as the
// cache partition key.
//
// Page-1 loads sweep expired cache rows before anything else, cache the
// first CacheLimit results on success (carrying bookmark flags forward), and
// fall back to valid cached rows when the remote call fails with a transient
// network error. Fallback pages never paginate further. Other failures, and
// failures on pages past the first, surface as errors.
func (l *Loader) LoadPage(ctx context.Context, query string, page, size int) (PageResult, error) {
	if page < 1 {
		return PageResult{}, errors.Newf("page number must be >= 1, got %d", page).
			Category(errors.CategoryValidation).
			Component("photos").
			Build()
	}
	if size < 1 {
		return PageResult{}, errors.Newf("page size must be > 0, got %d", size).
			Category(errors.CategoryValidation).
			Component("photos").
			Build()
	}

	query = NormalizeQuery(query)
	now := l.clock()

	// The sweep runs on every page-1 load, regardless of how the remote
	// attempt turns out.
	if page == 1 {
		if err := l.store.DeleteExpired(now, l.validity); err != nil {
			return PageResult{}, err
		}
	}

	apiKey := l.creds.APIKey()
	if apiKey == "" {
		return PageResult{}, errors.Newf("API key not found").
			Category(errors.CategoryConfiguration).
			Component("photos").
			Build()
	}

	result, err := l.fetchPage(ctx, apiKey, query, page, size)
	if err != nil {
		return l.recoverFromFetchError(query, page, now, err)
	}

	if page == 1 {
		if err := l.refreshCache(query, now, result.Photos); err != nil {
			return PageResult{}, err
		}
	}

	out := PageResult{Photos: result.Photos}
	if page > 1 {
		out.PrevKey = intPtr(page - 1)
	}
	if result.HasNext {
		out.NextKey = intPtr(page + 1)
	}
	return out, nil
}

func (l *Loader) fetchPage(ctx context.Context, apiKey, query string, page, size int) (FetchResult, error) {
	operation := "search"
	if query == "" {
		operation = "curated"
	}

	start := l.clock()
	var result FetchResult
	var err error
	if query == "" {
		result, err = l.source.Curated(ctx, apiKey, page, size)
	} else {
		result, err = l.source.Search(ctx, apiKey, query, page, size)
	}
	l.metrics.ObserveFetch(operation, time.Since(start).Seconds())

	if err != nil {
		l.log.Debug("remote page fetch failed",
			"query", query,
			"page", page,
			"error", err)
	}
	return result, err
}

// recoverFromFetchError decides between cached fallback and error
// propagation. Only page-1 loads that failed on a transient network error
// are eligible for fallback, and only when valid cached rows exist.
func (l *Loader) recoverFromFetchError(query string, page int, now time.Time, fetchErr error) (PageResult, error) {
	var enhanced *errors.EnhancedError
	if errors.As(fetchErr, &enhanced) {
		l.metrics.ObserveError(string(enhanced.Category))
	} else {
		l.metrics.ObserveError(string(errors.CategoryGeneric))
	}

	if page != 1 || !errors.IsNetwork(fetchErr) {
		return PageResult{}, fetchErr
	}

	if err := l.store.DeleteExpired(now, l.validity); err != nil {
		return PageResult{}, err
	}

	cached, err := l.store.GetValidPhotosByQuery(query, now, l.validity, CacheLimit)
	if err != nil {
		return PageResult{}, err
	}
	if len(cached) == 0 {
		return PageResult{}, fetchErr
	}

	l.metrics.ObserveFallback()
	l.log.Info("serving page from cache after network failure",
		"query", query,
		"photos", len(cached))

	// Cached results never paginate further.
	return PageResult{Photos: EntitiesToPhotos(cached)}, nil
}

// refreshCache replaces the cached rows for a query with the first
// CacheLimit freshly fetched photos. The bookmarked-id set is snapshotted
// before the delete so that flags survive the rewrite, wherever the photo
// was cached before.
func (l *Loader) refreshCache(query string, now time.Time, fresh []Photo) error {
	bookmarkedIDs, err := l.store.GetBookmarkedIDs()
	if err != nil {
		return err
	}
	bookmarked := make(map[int]bool, len(bookmarkedIDs))
	for _, id := range bookmarkedIDs {
		bookmarked[id] = true
	}

	if err := l.store.DeleteByQuery(query); err != nil {
		return err
	}

	toCache := fresh
	if len(toCache) > CacheLimit {
		toCache = toCache[:CacheLimit]
	}
	entities := make([]datastore.CachedPhoto, 0, len(toCache))
	for _, photo := range toCache {
		entities = append(entities, PhotoToEntity(photo, query, now, bookmarked[photo.ID]))
	}

	if err := l.store.InsertPhotos(entities); err != nil {
		return err
	}
	l.metrics.ObserveCacheWrite()
	return nil
}
