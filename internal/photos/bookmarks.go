package photos

import (
	"context"
	"log/slog"
	"time"

	"github.com/VolleyLord/pexels/internal/datastore"
	"github.com/VolleyLord/pexels/internal/logging"
)

// Bookmarks manages the bookmark flag on cached photos. Bookmarking a photo
// that is not yet cached fetches it from the remote source on demand, so the
// photo is available offline afterwards.
type Bookmarks struct {
	source Source
	store  datastore.Interface
	creds  CredentialProvider
	clock  func() time.Time
	log    *slog.Logger
}

// NewBookmarks creates a bookmark manager.
func NewBookmarks(source Source, store datastore.Interface, creds CredentialProvider) *Bookmarks {
	return &Bookmarks{
		source: source,
		store:  store,
		creds:  creds,
		clock:  time.Now,
		log:    logging.ForService("photos.bookmarks"),
	}
}

// SetClock overrides the time source, used by tests.
func (b *Bookmarks) SetClock(clock func() time.Time) {
	b.clock = clock
}

// Toggle sets the bookmark flag for a photo.
//
// For a photo already in the cache only the flag is updated; its cache
// partition and timestamp stay as they are. Bookmarking an uncached photo
// fetches it remotely and inserts it as a bookmarked row under the curated
// partition; the remote fetch is best-effort and its failure is swallowed.
// Unbookmarking an uncached photo is a no-op. Store errors are returned.
func (b *Bookmarks) Toggle(ctx context.Context, photoID int, bookmarked bool) error {
	existing, err := b.store.GetPhoto(photoID)
	if err != nil {
		return err
	}

	if existing != nil {
		return b.store.SetBookmarked(photoID, bookmarked)
	}

	if !bookmarked {
		return nil
	}

	apiKey := b.creds.APIKey()
	if apiKey == "" {
		b.log.Debug("cannot bookmark uncached photo without API key", "photo_id", photoID)
		return nil
	}

	photo, err := b.source.PhotoByID(ctx, apiKey, photoID)
	if err != nil {
		// Best-effort: no row is created and the failure is not surfaced.
		b.log.Debug("remote fetch for bookmark failed",
			"photo_id", photoID,
			"error", err)
		return nil
	}

	entity := PhotoToEntity(photo, "", b.clock(), true)
	return b.store.InsertPhotos([]datastore.CachedPhoto{entity})
}

// List returns one page of bookmarked photos from the cache, newest id
// first. A further page is assumed to exist whenever the returned page is
// full; at the true end of data this costs one extra empty fetch, which is
// acceptable for a frequently re-queried local listing.
func (b *Bookmarks) List(ctx context.Context, page, size int) (PageResult, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * size

	entities, err := b.store.GetBookmarkedPage(size, offset)
	if err != nil {
		return PageResult{}, err
	}

	result := PageResult{Photos: EntitiesToPhotos(entities)}
	if page > 1 {
		result.PrevKey = intPtr(page - 1)
	}
	if len(entities) == size {
		result.NextKey = intPtr(page + 1)
	}
	return result, nil
}

// Count returns the number of bookmarked photos.
func (b *Bookmarks) Count(ctx context.Context) (int64, error) {
	return b.store.CountBookmarked()
}
