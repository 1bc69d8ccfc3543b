package datastore

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createStore creates a datastore backed by a temporary SQLite database.
func createStore(t *testing.T) Interface {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "photos.db"), false)
	require.NoError(t, store.Open(), "Failed to open test database")
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func makePhoto(id int, queryType string, cachedAt time.Time, bookmarked bool) CachedPhoto {
	return CachedPhoto{
		ID:           id,
		Width:        1920,
		Height:       1080,
		URL:          fmt.Sprintf("https://www.pexels.com/photo/%d/", id),
		Photographer: "Test Photographer",
		AvgColor:     "#AABBCC",
		ThumbnailURL: fmt.Sprintf("https://images.pexels.com/photos/%d/medium.jpg", id),
		QueryType:    queryType,
		CachedAt:     cachedAt.UnixMilli(),
		IsBookmarked: bookmarked,
	}
}

func TestInsertPhotosUpsert(t *testing.T) {
	store := createStore(t)
	now := time.Now()

	photo := makePhoto(1, "nature", now, false)
	require.NoError(t, store.InsertPhotos([]CachedPhoto{photo}))

	// Re-insert the same id under a different query with updated fields.
	photo.QueryType = "animals"
	photo.Photographer = "Someone Else"
	require.NoError(t, store.InsertPhotos([]CachedPhoto{photo}))

	count, err := store.CountPhotos()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "Upsert should not create a second row")

	got, err := store.GetPhoto(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "animals", got.QueryType)
	assert.Equal(t, "Someone Else", got.Photographer)
}

func TestInsertPhotosEmptyBatch(t *testing.T) {
	store := createStore(t)
	assert.NoError(t, store.InsertPhotos(nil))
}

func TestGetPhotoMissingReturnsNil(t *testing.T) {
	store := createStore(t)

	got, err := store.GetPhoto(12345)
	require.NoError(t, err)
	assert.Nil(t, got, "Missing photo should yield nil, not an error")
}

func TestGetValidPhotosByQuery(t *testing.T) {
	store := createStore(t)
	now := time.Now()
	validity := time.Hour

	rows := []CachedPhoto{
		makePhoto(1, "nature", now, false),
		makePhoto(2, "nature", now.Add(-2*time.Hour), false), // expired
		makePhoto(3, "nature", now, false),
		makePhoto(4, "animals", now, false), // other partition
	}
	require.NoError(t, store.InsertPhotos(rows))

	got, err := store.GetValidPhotosByQuery("nature", now, validity, 30)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest id first, expired and foreign rows excluded.
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 1, got[1].ID)
}

func TestGetValidPhotosByQueryBoundary(t *testing.T) {
	store := createStore(t)
	now := time.Now()
	validity := time.Hour

	// A row exactly at the validity boundary is already expired.
	boundary := makePhoto(1, "", now.Add(-validity), false)
	fresh := makePhoto(2, "", now.Add(-validity).Add(time.Millisecond), false)
	require.NoError(t, store.InsertPhotos([]CachedPhoto{boundary, fresh}))

	got, err := store.GetValidPhotosByQuery("", now, validity, 30)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}

func TestGetValidPhotosByQueryLimit(t *testing.T) {
	store := createStore(t)
	now := time.Now()

	rows := make([]CachedPhoto, 0, 40)
	for i := 1; i <= 40; i++ {
		rows = append(rows, makePhoto(i, "", now, false))
	}
	require.NoError(t, store.InsertPhotos(rows))

	got, err := store.GetValidPhotosByQuery("", now, time.Hour, 30)
	require.NoError(t, err)
	assert.Len(t, got, 30)
	assert.Equal(t, 40, got[0].ID, "Should start from the newest id")
}

func TestDeleteByQueryScoped(t *testing.T) {
	store := createStore(t)
	now := time.Now()

	rows := []CachedPhoto{
		makePhoto(1, "nature", now, true),
		makePhoto(2, "nature", now, false),
		makePhoto(3, "animals", now, true),
	}
	require.NoError(t, store.InsertPhotos(rows))
	require.NoError(t, store.DeleteByQuery("nature"))

	// Deletion is scoped by query, bookmark state notwithstanding.
	gone, err := store.GetPhoto(1)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := store.GetPhoto(3)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.IsBookmarked)
}

func TestDeleteExpired(t *testing.T) {
	store := createStore(t)
	now := time.Now()
	validity := time.Hour

	rows := []CachedPhoto{
		makePhoto(1, "", now.Add(-2*time.Hour), false),
		makePhoto(2, "", now.Add(-2*time.Hour), true), // expiry ignores bookmarks
		makePhoto(3, "", now, false),
	}
	require.NoError(t, store.InsertPhotos(rows))
	require.NoError(t, store.DeleteExpired(now, validity))

	count, err := store.CountPhotos()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	kept, err := store.GetPhoto(3)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestDeleteAll(t *testing.T) {
	store := createStore(t)
	now := time.Now()

	require.NoError(t, store.InsertPhotos([]CachedPhoto{
		makePhoto(1, "", now, true),
		makePhoto(2, "nature", now, false),
	}))
	require.NoError(t, store.DeleteAll())

	count, err := store.CountPhotos()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSetBookmarkedUpdatesOnlyFlag(t *testing.T) {
	store := createStore(t)
	now := time.Now()

	original := makePhoto(1, "nature", now, false)
	require.NoError(t, store.InsertPhotos([]CachedPhoto{original}))
	require.NoError(t, store.SetBookmarked(1, true))

	got, err := store.GetPhoto(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsBookmarked)
	assert.Equal(t, "nature", got.QueryType, "Bookmark update must not touch the partition")
	assert.Equal(t, original.CachedAt, got.CachedAt, "Bookmark update must not touch the cache stamp")
}

func TestSetBookmarkedMissingRowIsNoop(t *testing.T) {
	store := createStore(t)
	assert.NoError(t, store.SetBookmarked(999, true))
}

func TestIsBookmarked(t *testing.T) {
	store := createStore(t)
	now := time.Now()

	require.NoError(t, store.InsertPhotos([]CachedPhoto{
		makePhoto(1, "", now, true),
		makePhoto(2, "", now, false),
	}))

	flag, err := store.IsBookmarked(1)
	require.NoError(t, err)
	require.NotNil(t, flag)
	assert.True(t, *flag)

	flag, err = store.IsBookmarked(2)
	require.NoError(t, err)
	require.NotNil(t, flag)
	assert.False(t, *flag)

	flag, err = store.IsBookmarked(3)
	require.NoError(t, err)
	assert.Nil(t, flag, "Uncached photo should yield nil, not false")
}

func TestGetBookmarkedIDs(t *testing.T) {
	store := createStore(t)
	now := time.Now()

	require.NoError(t, store.InsertPhotos([]CachedPhoto{
		makePhoto(1, "", now, true),
		makePhoto(2, "nature", now.Add(-5*time.Hour), true), // staleness is irrelevant
		makePhoto(3, "", now, false),
	}))

	ids, err := store.GetBookmarkedIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2}, ids)
}

func TestGetBookmarkedPage(t *testing.T) {
	store := createStore(t)
	now := time.Now()

	rows := make([]CachedPhoto, 0, 5)
	for i := 1; i <= 5; i++ {
		rows = append(rows, makePhoto(i, "", now, true))
	}
	rows = append(rows, makePhoto(6, "", now, false))
	require.NoError(t, store.InsertPhotos(rows))

	first, err := store.GetBookmarkedPage(2, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 5, first[0].ID)
	assert.Equal(t, 4, first[1].ID)

	second, err := store.GetBookmarkedPage(2, 2)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, 3, second[0].ID)

	last, err := store.GetBookmarkedPage(2, 4)
	require.NoError(t, err)
	assert.Len(t, last, 1)

	count, err := store.CountBookmarked()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
