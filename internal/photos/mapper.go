package photos

import (
	"time"

	"github.com/VolleyLord/pexels/internal/datastore"
)

// EntityToPhoto maps a cached row to the domain model. The stored bookmark
// flag becomes the photo's liked state.
func EntityToPhoto(entity *datastore.CachedPhoto) Photo {
	liked := entity.IsBookmarked
	return Photo{
		ID:               entity.ID,
		Width:            entity.Width,
		Height:           entity.Height,
		URL:              entity.URL,
		Photographer:     entity.Photographer,
		PhotographerURL:  entity.PhotographerURL,
		PhotographerID:   entity.PhotographerID,
		AvgColor:         ParseAvgColor(entity.AvgColor),
		ThumbnailURL:     entity.ThumbnailURL,
		TinyThumbnailURL: entity.TinyThumbnailURL,
		LargeURL:         entity.LargeURL,
		OriginalURL:      entity.OriginalURL,
		Large2xURL:       entity.Large2xURL,
		Alt:              entity.Alt,
		Liked:            &liked,
	}
}

// EntitiesToPhotos maps a slice of cached rows.
func EntitiesToPhotos(entities []datastore.CachedPhoto) []Photo {
	photos := make([]Photo, 0, len(entities))
	for i := range entities {
		photos = append(photos, EntityToPhoto(&entities[i]))
	}
	return photos
}

// PhotoToEntity maps a domain photo to a cached row stamped with the given
// query partition and cache time. The bookmark flag is supplied explicitly
// because it outlives the photo data it is attached to.
func PhotoToEntity(photo Photo, queryType string, cachedAt time.Time, isBookmarked bool) datastore.CachedPhoto {
	return datastore.CachedPhoto{
		ID:               photo.ID,
		Width:            photo.Width,
		Height:           photo.Height,
		URL:              photo.URL,
		Photographer:     photo.Photographer,
		PhotographerURL:  photo.PhotographerURL,
		PhotographerID:   photo.PhotographerID,
		AvgColor:         FormatAvgColor(photo.AvgColor),
		ThumbnailURL:     photo.ThumbnailURL,
		TinyThumbnailURL: photo.TinyThumbnailURL,
		LargeURL:         photo.LargeURL,
		OriginalURL:      photo.OriginalURL,
		Large2xURL:       photo.Large2xURL,
		Alt:              photo.Alt,
		QueryType:        queryType,
		CachedAt:         cachedAt.UnixMilli(),
		IsBookmarked:     isBookmarked,
	}
}
