// Package photos implements the photo browsing core: the cache-aside page
// loader, the bookmark manager and the photo detail resolver, all working
// against a remote photo source and the local cache store.
package photos

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultAvgColor is used when a photo carries no parsable average color.
var DefaultAvgColor = color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF} // light gray

// Photo is the immutable domain representation of a single photo.
// Transformations produce new values; a Photo is never mutated in place.
type Photo struct {
	ID              int
	Width           int
	Height          int
	URL             string // photo page on pexels.com
	Photographer    string
	PhotographerURL string
	PhotographerID  int64
	AvgColor        color.RGBA

	// Image URL variants, any may be empty
	ThumbnailURL     string
	TinyThumbnailURL string
	LargeURL         string
	OriginalURL      string
	Large2xURL       string

	Alt string

	// Liked is the bookmark flag; nil when the state is unknown, which is
	// the case for photos that came straight from the remote API.
	Liked *bool
}

// WithLiked returns a copy of the photo with the bookmark flag set.
func (p Photo) WithLiked(liked bool) Photo {
	p.Liked = &liked
	return p
}

// IsLiked resolves the tri-state bookmark flag, treating unknown as false.
func (p Photo) IsLiked() bool {
	return p.Liked != nil && *p.Liked
}

// ListImageURL returns the image URL for list views: the thumbnail, falling
// back to the tiny thumbnail.
func (p Photo) ListImageURL() string {
	if p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}
	return p.TinyThumbnailURL
}

// DetailImageURL returns the image URL for the full-screen view, preferring
// the high-resolution variants over the thumbnails.
func (p Photo) DetailImageURL() string {
	for _, url := range []string{p.Large2xURL, p.LargeURL, p.OriginalURL, p.ThumbnailURL, p.TinyThumbnailURL} {
		if url != "" {
			return url
		}
	}
	return ""
}

// DownloadImageURL returns the URL used when saving the photo to disk: the
// large variant, falling back to the thumbnail.
func (p Photo) DownloadImageURL() string {
	if p.LargeURL != "" {
		return p.LargeURL
	}
	return p.ThumbnailURL
}

// ParseAvgColor parses a "#RRGGBB" or "#AARRGGBB" hex string. Absent or
// malformed values yield DefaultAvgColor rather than an error; a photo with a
// broken color is still a usable photo.
func ParseAvgColor(hex string) color.RGBA {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(s) {
	case 6, 8:
	default:
		return DefaultAvgColor
	}
	value, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return DefaultAvgColor
	}
	c := color.RGBA{A: 0xFF}
	if len(s) == 8 {
		c.A = uint8(value >> 24)
	}
	c.R = uint8(value >> 16)
	c.G = uint8(value >> 8)
	c.B = uint8(value)
	return c
}

// FormatAvgColor renders a color back to the "#RRGGBB" form stored in the
// cache and delivered by the API. The alpha channel is omitted when opaque.
func FormatAvgColor(c color.RGBA) string {
	if c.A != 0xFF {
		return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// PageResult is one loaded page of photos together with its pagination keys.
// A nil key means no page exists in that direction.
type PageResult struct {
	Photos  []Photo
	PrevKey *int
	NextKey *int
}

// HasPrevious reports whether an earlier page exists.
func (p PageResult) HasPrevious() bool {
	return p.PrevKey != nil
}

// HasNext reports whether a further page exists.
func (p PageResult) HasNext() bool {
	return p.NextKey != nil
}

// RefreshKey computes the page to restart from after invalidation, given the
// keys of the page closest to the anchor position: the page after the
// previous key, else the page before the next key, else nil meaning start
// from page 1.
func RefreshKey(prevKey, nextKey *int) *int {
	if prevKey != nil {
		k := *prevKey + 1
		return &k
	}
	if nextKey != nil {
		k := *nextKey - 1
		return &k
	}
	return nil
}

// NormalizeQuery canonicalizes a search query for both the remote API call
// and the cache partition key. The empty result selects the curated feed.
// Lowercasing here keeps hand-typed searches and collection-derived searches
// in the same cache partition.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func intPtr(v int) *int {
	return &v
}
