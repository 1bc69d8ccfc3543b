package pexels

import "time"

// Config holds the Pexels API client configuration.
type Config struct {
	APIKeyHeader   string        // header carrying the credential, default "Authorization"
	BaseURL        string        // API base URL
	Timeout        time.Duration // per-request timeout
	CollectionsTTL time.Duration // how long the featured-collections response is memoized
}

// DefaultConfig returns the production API endpoints and timeouts.
func DefaultConfig() Config {
	return Config{
		APIKeyHeader:   "Authorization",
		BaseURL:        "https://api.pexels.com/v1",
		Timeout:        30 * time.Second,
		CollectionsTTL: 1 * time.Hour,
	}
}

// photoSrcDTO is the set of named image URL variants of one photo.
type photoSrcDTO struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// photoDTO is one photo record as delivered by the API.
type photoDTO struct {
	ID              int          `json:"id"`
	Width           int          `json:"width"`
	Height          int          `json:"height"`
	URL             string       `json:"url"`
	Photographer    string       `json:"photographer"`
	PhotographerURL string       `json:"photographer_url"`
	PhotographerID  int64        `json:"photographer_id"`
	AvgColor        string       `json:"avg_color"`
	Src             *photoSrcDTO `json:"src"`
	Liked           *bool        `json:"liked"`
	Alt             string       `json:"alt"`
}

// photosResponseDTO is a paged photo listing: curated feed or search results.
type photosResponseDTO struct {
	Photos       []photoDTO `json:"photos"`
	Page         int        `json:"page"`
	PerPage      int        `json:"per_page"`
	TotalResults int        `json:"total_results"`
	NextPage     string     `json:"next_page"` // URL of the next page, empty on the last page
	PrevPage     string     `json:"prev_page"`
}

// collectionDTO is one featured collection record.
type collectionDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MediaCount  int    `json:"media_count"`
	PhotosCount int    `json:"photos_count"`
}

// collectionsResponseDTO is a paged featured-collections listing.
type collectionsResponseDTO struct {
	Collections  []collectionDTO `json:"collections"`
	Page         int             `json:"page"`
	PerPage      int             `json:"per_page"`
	TotalResults int             `json:"total_results"`
	NextPage     string          `json:"next_page"`
}

// FeaturedCollection is a featured collection as exposed by the client.
type FeaturedCollection struct {
	ID    string
	Title string
}

// apiError is the error body the API returns on failures.
type apiError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
	Code   string `json:"code"`
}
