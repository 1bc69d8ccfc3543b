package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VolleyLord/pexels/internal/app"
	"github.com/VolleyLord/pexels/internal/conf"
)

// newUpstream serves a minimal Pexels API double.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/curated", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"photos": [
				{"id": 1000, "width": 4000, "height": 3000, "photographer": "Jane Doe",
				 "avg_color": "#1A2B3C",
				 "src": {"medium": "https://images.pexels.com/photos/1000/medium.jpg"}}
			],
			"page": 1, "per_page": 30,
			"next_page": "https://api.pexels.com/v1/curated/?page=2"
		}`)
	})
	mux.HandleFunc("/photos/1000", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 1000, "photographer": "Jane Doe", "avg_color": "#1A2B3C",
			"src": {"large": "https://images.pexels.com/photos/1000/large.jpg"}}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "Not Found"}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	upstream := newUpstream(t)

	settings := conf.DefaultSettings()
	settings.Pexels.APIKey = apiKey
	settings.Pexels.BaseURL = upstream.URL
	settings.Pexels.Timeout = 5 * time.Second
	settings.Cache.Path = filepath.Join(t.TempDir(), "photos.db")

	application, err := app.New(settings)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = application.Close()
	})

	return NewServer(application, nil)
}

func doRequest(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestCuratedEndpoint(t *testing.T) {
	server := newTestServer(t, "test-key")

	rec := doRequest(server, http.MethodGet, "/api/v1/photos/curated")
	require.Equal(t, http.StatusOK, rec.Code)

	var page pageJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Photos, 1)
	assert.Equal(t, 1000, page.Photos[0].ID)
	assert.Equal(t, "#1A2B3C", page.Photos[0].AvgColor)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 2, *page.NextPage)
	assert.Nil(t, page.PrevPage)
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	server := newTestServer(t, "test-key")

	rec := doRequest(server, http.MethodGet, "/api/v1/photos/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCuratedWithoutAPIKey(t *testing.T) {
	server := newTestServer(t, "")

	rec := doRequest(server, http.MethodGet, "/api/v1/photos/curated")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "API key not found", body["error"])
}

func TestPhotoEndpoint(t *testing.T) {
	server := newTestServer(t, "test-key")

	rec := doRequest(server, http.MethodGet, "/api/v1/photos/1000")
	require.Equal(t, http.StatusOK, rec.Code)

	var photo photoJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &photo))
	assert.Equal(t, 1000, photo.ID)
	assert.Equal(t, "Jane Doe", photo.Photographer)

	rec = doRequest(server, http.MethodGet, "/api/v1/photos/not-a-number")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarkFlow(t *testing.T) {
	server := newTestServer(t, "test-key")

	// Bookmarking an uncached photo triggers the on-demand fetch.
	rec := doRequest(server, http.MethodPost, "/api/v1/bookmarks/1000")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(server, http.MethodGet, "/api/v1/bookmarks")
	require.Equal(t, http.StatusOK, rec.Code)

	var page pageJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Photos, 1)
	assert.Equal(t, 1000, page.Photos[0].ID)
	require.NotNil(t, page.Photos[0].Liked)
	assert.True(t, *page.Photos[0].Liked)

	rec = doRequest(server, http.MethodDelete, "/api/v1/bookmarks/1000")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(server, http.MethodGet, "/api/v1/bookmarks")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Photos)
}

func TestBookmarkedDetailEndpoint(t *testing.T) {
	server := newTestServer(t, "test-key")

	rec := doRequest(server, http.MethodGet, "/api/v1/photos/1000?from_bookmarks=true")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Photo not found", body["error"])
}

func TestCollectionsEndpointFallsBackToDefaults(t *testing.T) {
	// The upstream double serves no collections route, so the static set
	// is returned.
	server := newTestServer(t, "test-key")

	rec := doRequest(server, http.MethodGet, "/api/v1/collections")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload)
	assert.Equal(t, "Nature", payload[0].Name)
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, "test-key")

	// Generate some traffic first so counters exist.
	doRequest(server, http.MethodGet, "/api/v1/photos/curated")

	rec := doRequest(server, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pexels_remote_fetches_total")
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, "test-key")

	rec := doRequest(server, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
