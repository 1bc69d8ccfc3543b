// model.go defines the persistence model for the local photo cache.
package datastore

// CachedPhoto represents one cached photo row. The photo id is the global
// primary key: a photo has at most one cached row at a time, whichever query
// produced it last. The bookmark flag has an independent lifecycle from
// QueryType/CachedAt; query-scoped cache clears must never remove bookmarked
// rows under other queries, and re-caching must not regress the flag.
type CachedPhoto struct {
	ID              int `gorm:"primaryKey"`
	Width           int
	Height          int
	URL             string // photo page on pexels.com
	Photographer    string
	PhotographerURL string
	PhotographerID  int64
	AvgColor        string // raw hex string as delivered by the API

	// Image URL variants at different resolutions, any may be empty
	ThumbnailURL     string
	TinyThumbnailURL string
	LargeURL         string
	OriginalURL      string
	Large2xURL       string

	Alt string

	QueryType    string `gorm:"index:idx_cached_photos_query"`     // "" for the curated feed, otherwise the search term
	CachedAt     int64  `gorm:"index:idx_cached_photos_cached_at"` // epoch millis of last cache write
	IsBookmarked bool   `gorm:"index:idx_cached_photos_bookmarked"`
}

// TableName keeps the table name stable regardless of struct renames.
func (CachedPhoto) TableName() string {
	return "cached_photos"
}
