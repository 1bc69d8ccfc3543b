// Package pexels implements the remote photo source over the Pexels v1 HTTP
// API: curated feed pages, search pages, single-photo lookups and featured
// collections.
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/VolleyLord/pexels/internal/errors"
	"github.com/VolleyLord/pexels/internal/httpclient"
	"github.com/VolleyLord/pexels/internal/logging"
	"github.com/VolleyLord/pexels/internal/photos"
)

const collectionsCacheKey = "collections:featured"

// Client calls the Pexels API. It implements photos.Source. The API key is
// passed per call rather than held by the client, matching the source
// contract where the credential provider decides whether remote access is
// allowed at all.
type Client struct {
	config Config
	http   *httpclient.Client
	cache  *gocache.Cache // memoizes the featured-collections response
	log    *slog.Logger
}

// NewClient creates a Pexels API client. Zero-valued config fields fall back
// to defaults.
func NewClient(config Config, hc *httpclient.Client) *Client {
	defaults := DefaultConfig()
	if config.APIKeyHeader == "" {
		config.APIKeyHeader = defaults.APIKeyHeader
	}
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.CollectionsTTL == 0 {
		config.CollectionsTTL = defaults.CollectionsTTL
	}
	if hc == nil {
		hc = httpclient.New(&httpclient.Config{DefaultTimeout: config.Timeout})
	}

	return &Client{
		config: config,
		http:   hc,
		cache:  gocache.New(config.CollectionsTTL, config.CollectionsTTL*2),
		log:    logging.ForService("pexels"),
	}
}

// Close releases the underlying HTTP connection pool.
func (c *Client) Close() {
	c.http.Close()
}

// Curated fetches one page of the curated feed.
func (c *Client) Curated(ctx context.Context, apiKey string, page, perPage int) (photos.FetchResult, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var response photosResponseDTO
	if err := c.doRequest(ctx, apiKey, "/curated?"+query.Encode(), &response); err != nil {
		return photos.FetchResult{}, err
	}
	return mapResponse(&response), nil
}

// Search fetches one page of search results.
func (c *Client) Search(ctx context.Context, apiKey, searchQuery string, page, perPage int) (photos.FetchResult, error) {
	query := url.Values{}
	query.Set("query", searchQuery)
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var response photosResponseDTO
	if err := c.doRequest(ctx, apiKey, "/search?"+query.Encode(), &response); err != nil {
		return photos.FetchResult{}, err
	}
	return mapResponse(&response), nil
}

// PhotoByID fetches a single photo.
func (c *Client) PhotoByID(ctx context.Context, apiKey string, id int) (photos.Photo, error) {
	var dto photoDTO
	if err := c.doRequest(ctx, apiKey, fmt.Sprintf("/photos/%d", id), &dto); err != nil {
		return photos.Photo{}, err
	}
	return mapPhoto(&dto), nil
}

// FeaturedCollections fetches the featured collections, memoized for the
// configured TTL since the listing changes rarely.
func (c *Client) FeaturedCollections(ctx context.Context, apiKey string, perPage int) ([]FeaturedCollection, error) {
	if cached, found := c.cache.Get(collectionsCacheKey); found {
		if collections, ok := cached.([]FeaturedCollection); ok {
			c.log.Debug("featured collections cache hit", "count", len(collections))
			return collections, nil
		}
	}

	query := url.Values{}
	query.Set("page", "1")
	query.Set("per_page", strconv.Itoa(perPage))

	var response collectionsResponseDTO
	if err := c.doRequest(ctx, apiKey, "/collections/featured?"+query.Encode(), &response); err != nil {
		return nil, err
	}

	collections := make([]FeaturedCollection, 0, len(response.Collections))
	for i := range response.Collections {
		collections = append(collections, FeaturedCollection{
			ID:    response.Collections[i].ID,
			Title: response.Collections[i].Title,
		})
	}

	c.cache.Set(collectionsCacheKey, collections, gocache.DefaultExpiration)
	return collections, nil
}

// doRequest performs a GET against the API and decodes the JSON response
// into result. Failures are returned as enhanced errors whose category
// encodes fallback eligibility: transport failures and 5xx responses are
// network errors, auth failures are configuration errors, 404 is not-found
// and everything else is a plain remote error.
func (c *Client) doRequest(ctx context.Context, apiKey, path string, result any) error {
	requestURL := c.config.BaseURL + path

	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return errors.Newf("failed to create HTTP request: %w", err).
			Category(errors.CategoryRemote).
			Context("url", requestURL).
			Component("pexels").
			Build()
	}
	req.Header.Set(c.config.APIKeyHeader, apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(reqCtx, req)
	if err != nil {
		c.log.Debug("API request failed", "url", requestURL, "error", err)
		return errors.Newf("HTTP request failed: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", requestURL).
			Component("pexels").
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Newf("failed to read response body: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", requestURL).
			Context("status_code", resp.StatusCode).
			Component("pexels").
			Build()
	}

	if resp.StatusCode >= 400 {
		category := errors.CategoryForStatus(resp.StatusCode)

		var remoteErr apiError
		message := ""
		if json.Unmarshal(bodyBytes, &remoteErr) == nil {
			if remoteErr.Error != "" {
				message = remoteErr.Error
			} else if remoteErr.Code != "" {
				message = remoteErr.Code
			}
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}

		c.log.Debug("API error response",
			"url", requestURL,
			"status_code", resp.StatusCode,
			"message", message)

		return errors.Newf("pexels API error (status %d): %s", resp.StatusCode, message).
			Category(category).
			Context("url", requestURL).
			Context("status_code", resp.StatusCode).
			Component("pexels").
			Build()
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return errors.Newf("failed to parse response: %w", err).
				Category(errors.CategoryRemote).
				Context("url", requestURL).
				Context("response_size", len(bodyBytes)).
				Component("pexels").
				Build()
		}
	}

	c.log.Debug("API request successful",
		"url", requestURL,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_size", len(bodyBytes))
	return nil
}

func mapResponse(dto *photosResponseDTO) photos.FetchResult {
	result := photos.FetchResult{
		Photos:       make([]photos.Photo, 0, len(dto.Photos)),
		Page:         dto.Page,
		PerPage:      dto.PerPage,
		TotalResults: dto.TotalResults,
		HasNext:      dto.NextPage != "",
	}
	for i := range dto.Photos {
		result.Photos = append(result.Photos, mapPhoto(&dto.Photos[i]))
	}
	return result
}

func mapPhoto(dto *photoDTO) photos.Photo {
	photo := photos.Photo{
		ID:              dto.ID,
		Width:           dto.Width,
		Height:          dto.Height,
		URL:             dto.URL,
		Photographer:    dto.Photographer,
		PhotographerURL: dto.PhotographerURL,
		PhotographerID:  dto.PhotographerID,
		AvgColor:        photos.ParseAvgColor(dto.AvgColor),
		Alt:             dto.Alt,
		Liked:           dto.Liked,
	}
	if dto.Src != nil {
		photo.ThumbnailURL = dto.Src.Medium
		photo.TinyThumbnailURL = dto.Src.Tiny
		photo.LargeURL = dto.Src.Large
		photo.OriginalURL = dto.Src.Original
		photo.Large2xURL = dto.Src.Large2x
	}
	return photo
}
