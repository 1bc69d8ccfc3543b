package photos

import (
	"context"
	"log/slog"
	"time"

	"github.com/VolleyLord/pexels/internal/datastore"
	"github.com/VolleyLord/pexels/internal/errors"
	"github.com/VolleyLord/pexels/internal/logging"
)

// Details resolves single photos by id, either strictly from the cache (the
// bookmarks view) or remote-first with cache fallback (the browse view).
type Details struct {
	source Source
	store  datastore.Interface
	creds  CredentialProvider
	clock  func() time.Time
	log    *slog.Logger
}

// NewDetails creates a photo detail resolver.
func NewDetails(source Source, store datastore.Interface, creds CredentialProvider) *Details {
	return &Details{
		source: source,
		store:  store,
		creds:  creds,
		clock:  time.Now,
		log:    logging.ForService("photos.details"),
	}
}

// SetClock overrides the time source, used by tests.
func (d *Details) SetClock(clock func() time.Time) {
	d.clock = clock
}

// Get resolves a photo by id.
//
// With fromBookmarks set the lookup is cache-only and a missing row is a
// not-found error. Otherwise the remote source is tried first; a successful
// fetch is merged into the cache preserving the row's previous partition,
// cache timestamp and bookmark flag, so a detail fetch never reclassifies a
// photo. Without a credential, or when the remote call fails with a
// transient network error, an existing cached row is returned instead with
// its bookmark state re-synced from the cache. All other failures propagate.
func (d *Details) Get(ctx context.Context, photoID int, fromBookmarks bool) (Photo, error) {
	if fromBookmarks {
		entity, err := d.store.GetPhoto(photoID)
		if err != nil {
			return Photo{}, err
		}
		if entity == nil {
			return Photo{}, errors.Newf("photo %d not found in bookmarks", photoID).
				Category(errors.CategoryNotFound).
				Component("photos").
				Build()
		}
		return EntityToPhoto(entity), nil
	}

	cached, err := d.store.GetPhoto(photoID)
	if err != nil {
		return Photo{}, err
	}

	apiKey := d.creds.APIKey()
	if apiKey == "" {
		if cached == nil {
			return Photo{}, errors.Newf("API key not found and no cached data available").
				Category(errors.CategoryConfiguration).
				Component("photos").
				Build()
		}
		return EntityToPhoto(cached), nil
	}

	fresh, err := d.source.PhotoByID(ctx, apiKey, photoID)
	if err != nil {
		if cached != nil && errors.IsNetwork(err) {
			d.log.Debug("returning cached photo after network failure",
				"photo_id", photoID)
			return EntityToPhoto(cached), nil
		}
		return Photo{}, err
	}

	// Preserve the prior cache classification and bookmark state; only the
	// photo data itself is refreshed.
	previousQueryType := ""
	previousCachedAt := d.clock()
	previousBookmark := false
	if cached != nil {
		previousQueryType = cached.QueryType
		previousCachedAt = time.UnixMilli(cached.CachedAt)
		previousBookmark = cached.IsBookmarked
	}

	entity := PhotoToEntity(fresh, previousQueryType, previousCachedAt, previousBookmark)
	if err := d.store.InsertPhotos([]datastore.CachedPhoto{entity}); err != nil {
		return Photo{}, err
	}

	return fresh.WithLiked(previousBookmark), nil
}

// DetailState is one emission of a detail load: a loading marker followed by
// exactly one terminal success or error.
type DetailState struct {
	Loading bool
	Photo   *Photo
	Err     error
}

// Stream runs Get and emits its progress as a short ordered sequence of
// states on the returned channel: Loading first, then one terminal state.
// The channel is closed after the terminal state.
func (d *Details) Stream(ctx context.Context, photoID int, fromBookmarks bool) <-chan DetailState {
	states := make(chan DetailState, 2)
	go func() {
		defer close(states)
		states <- DetailState{Loading: true}

		photo, err := d.Get(ctx, photoID, fromBookmarks)
		if err != nil {
			states <- DetailState{Err: err}
			return
		}
		states <- DetailState{Photo: &photo}
	}()
	return states
}
