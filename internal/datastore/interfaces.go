// interfaces.go defines the interface for the local photo cache operations.
package datastore

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/VolleyLord/pexels/internal/errors"
)

// Interface abstracts the underlying database implementation and defines the
// operations the photo services need from the cache.
type Interface interface {
	Open() error
	Close() error

	// Cache writes
	InsertPhotos(photos []CachedPhoto) error
	DeleteByQuery(queryType string) error
	DeleteExpired(now time.Time, validity time.Duration) error
	DeleteAll() error

	// Cache reads
	GetPhoto(id int) (*CachedPhoto, error)
	GetValidPhotosByQuery(queryType string, now time.Time, validity time.Duration, limit int) ([]CachedPhoto, error)
	CountPhotos() (int64, error)

	// Bookmarks
	SetBookmarked(id int, bookmarked bool) error
	IsBookmarked(id int) (*bool, error)
	GetBookmarkedIDs() ([]int, error)
	GetBookmarkedPage(limit, offset int) ([]CachedPhoto, error)
	CountBookmarked() (int64, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB
}

// New creates a datastore for the given SQLite database path.
func New(path string, debug bool) Interface {
	return &SQLiteStore{Path: path, Debug: debug}
}

// InsertPhotos stores the given rows with insert-or-replace semantics: an
// existing row with the same id is overwritten entirely, including its
// bookmark flag. Callers are responsible for carrying bookmark state forward.
func (ds *DataStore) InsertPhotos(photos []CachedPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	err := ds.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&photos).Error
	if err != nil {
		return errors.Newf("inserting %d cached photos: %w", len(photos), err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return nil
}

// GetPhoto retrieves a cached photo by id, or nil when no row exists.
func (ds *DataStore) GetPhoto(id int) (*CachedPhoto, error) {
	var photo CachedPhoto
	err := ds.DB.First(&photo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Newf("getting cached photo %d: %w", id, err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return &photo, nil
}

// GetValidPhotosByQuery returns up to limit unexpired rows for the given
// query, newest id first. Rows at or past the validity window are excluded.
func (ds *DataStore) GetValidPhotosByQuery(queryType string, now time.Time, validity time.Duration, limit int) ([]CachedPhoto, error) {
	var photos []CachedPhoto
	threshold := now.UnixMilli() - validity.Milliseconds()
	err := ds.DB.
		Where("query_type = ? AND cached_at > ?", queryType, threshold).
		Order("id DESC").
		Limit(limit).
		Find(&photos).Error
	if err != nil {
		return nil, errors.Newf("reading cached photos for query %q: %w", queryType, err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return photos, nil
}

// DeleteByQuery clears all cached rows produced by the given query. Rows
// cached under other queries are untouched regardless of bookmark state.
func (ds *DataStore) DeleteByQuery(queryType string) error {
	if err := ds.DB.Where("query_type = ?", queryType).Delete(&CachedPhoto{}).Error; err != nil {
		return errors.Newf("clearing cache for query %q: %w", queryType, err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return nil
}

// DeleteExpired removes rows whose cache stamp is at or past the validity
// window.
func (ds *DataStore) DeleteExpired(now time.Time, validity time.Duration) error {
	threshold := now.UnixMilli() - validity.Milliseconds()
	if err := ds.DB.Where("cached_at <= ?", threshold).Delete(&CachedPhoto{}).Error; err != nil {
		return errors.Newf("clearing expired cache rows: %w", err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return nil
}

// DeleteAll removes every cached row, bookmarked or not.
func (ds *DataStore) DeleteAll() error {
	if err := ds.DB.Where("1 = 1").Delete(&CachedPhoto{}).Error; err != nil {
		return errors.Newf("clearing photo cache: %w", err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return nil
}

// CountPhotos returns the total number of cached rows.
func (ds *DataStore) CountPhotos() (int64, error) {
	var count int64
	if err := ds.DB.Model(&CachedPhoto{}).Count(&count).Error; err != nil {
		return 0, errors.Newf("counting cached photos: %w", err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return count, nil
}

// SetBookmarked updates only the bookmark flag of an existing row; QueryType
// and CachedAt are untouched. Updating a missing row is a no-op.
func (ds *DataStore) SetBookmarked(id int, bookmarked bool) error {
	err := ds.DB.Model(&CachedPhoto{}).
		Where("id = ?", id).
		Update("is_bookmarked", bookmarked).Error
	if err != nil {
		return errors.Newf("updating bookmark flag for photo %d: %w", id, err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return nil
}

// IsBookmarked returns the bookmark flag for a photo, or nil when the photo
// is not cached at all.
func (ds *DataStore) IsBookmarked(id int) (*bool, error) {
	var row struct {
		IsBookmarked bool
	}
	err := ds.DB.Model(&CachedPhoto{}).
		Select("is_bookmarked").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Newf("reading bookmark flag for photo %d: %w", id, err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return &row.IsBookmarked, nil
}

// GetBookmarkedIDs returns the ids of all bookmarked photos, regardless of
// query or freshness.
func (ds *DataStore) GetBookmarkedIDs() ([]int, error) {
	var ids []int
	err := ds.DB.Model(&CachedPhoto{}).
		Where("is_bookmarked = ?", true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, errors.Newf("reading bookmarked ids: %w", err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return ids, nil
}

// GetBookmarkedPage returns one page of bookmarked photos, newest id first.
func (ds *DataStore) GetBookmarkedPage(limit, offset int) ([]CachedPhoto, error) {
	var photos []CachedPhoto
	err := ds.DB.
		Where("is_bookmarked = ?", true).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&photos).Error
	if err != nil {
		return nil, errors.Newf("reading bookmarked photos page: %w", err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return photos, nil
}

// CountBookmarked returns the number of bookmarked photos.
func (ds *DataStore) CountBookmarked() (int64, error) {
	var count int64
	err := ds.DB.Model(&CachedPhoto{}).
		Where("is_bookmarked = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, errors.Newf("counting bookmarked photos: %w", err).
			Category(errors.CategoryDatabase).
			Component("datastore").
			Build()
	}
	return count, nil
}
