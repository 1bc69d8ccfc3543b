package collections

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VolleyLord/pexels/internal/httpclient"
	"github.com/VolleyLord/pexels/internal/pexels"
)

const testBaseURL = "https://api.pexels.com/v1"

type staticCreds string

func (c staticCreds) APIKey() string { return string(c) }

func newTestService(t *testing.T, creds staticCreds) *Service {
	t.Helper()
	hc := httpclient.New(nil)
	httpmock.ActivateNonDefault(hc.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	client := pexels.NewClient(pexels.Config{BaseURL: testBaseURL}, hc)
	return NewService(client, creds)
}

func TestFeaturedFromRemote(t *testing.T) {
	service := newTestService(t, "test-key")

	httpmock.RegisterResponder("GET", testBaseURL+"/collections/featured",
		httpmock.NewStringResponder(200, `{
			"collections": [
				{"id": "abc", "title": "Ocean"},
				{"id": "def", "title": "Forest"}
			]
		}`))

	got := service.Featured(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "Ocean", got[0].Name)
	assert.Equal(t, "abc", got[0].ID)
	assert.False(t, got[0].IsSelected)
}

func TestFeaturedWithoutAPIKeyUsesDefaults(t *testing.T) {
	service := newTestService(t, "")

	got := service.Featured(context.Background())
	require.Len(t, got, len(DefaultTitles))
	assert.Equal(t, "Nature", got[0].Name)
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestFeaturedRemoteFailureUsesDefaults(t *testing.T) {
	service := newTestService(t, "test-key")

	httpmock.RegisterResponder("GET", testBaseURL+"/collections/featured",
		httpmock.NewStringResponder(500, `{"error": "down"}`))

	got := service.Featured(context.Background())
	assert.Len(t, got, len(DefaultTitles))
}

func TestSelectTogglesExactlyOne(t *testing.T) {
	chips := []Collection{{Name: "Nature"}, {Name: "Animals"}, {Name: "Travel"}}

	selected := Select(chips, "animals")
	assert.False(t, selected[0].IsSelected)
	assert.True(t, selected[1].IsSelected, "Selection matches case-insensitively")
	assert.False(t, selected[2].IsSelected)
	assert.False(t, chips[1].IsSelected, "The input slice stays untouched")

	// Selecting the selected chip again clears the selection.
	cleared := Select(selected, "Animals")
	assert.Nil(t, Selected(cleared))

	// Selecting a different chip moves the selection.
	moved := Select(selected, "Travel")
	require.NotNil(t, Selected(moved))
	assert.Equal(t, "Travel", Selected(moved).Name)
	assert.False(t, moved[1].IsSelected)
}

func TestQueryFor(t *testing.T) {
	chips := []Collection{{Name: "Nature"}, {Name: "Big Cats"}}

	assert.Equal(t, "", QueryFor(chips), "No selection means the curated feed")

	selected := Select(chips, "Big Cats")
	assert.Equal(t, "big cats", QueryFor(selected), "The query is normalized")
}
