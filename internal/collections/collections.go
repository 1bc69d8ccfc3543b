// Package collections provides the featured collection chips shown above the
// curated feed. Each collection title doubles as a search query when
// selected.
package collections

import (
	"context"
	"log/slog"
	"strings"

	"github.com/VolleyLord/pexels/internal/logging"
	"github.com/VolleyLord/pexels/internal/pexels"
	"github.com/VolleyLord/pexels/internal/photos"
)

// DefaultPerPage is how many featured collections are requested.
const DefaultPerPage = 15

// DefaultTitles are shown when the remote listing cannot be fetched, so the
// feed header never renders empty.
var DefaultTitles = []string{
	"Nature", "Animals", "Travel", "Architecture", "Food",
	"Technology", "People", "Business", "Fashion", "Sport",
}

// Collection is one selectable collection chip.
type Collection struct {
	ID         string
	Name       string
	IsSelected bool
}

// Service resolves the featured collections, falling back to a static
// default set when the remote API cannot serve them.
type Service struct {
	client *pexels.Client
	creds  photos.CredentialProvider
	log    *slog.Logger
}

// NewService creates a collections service.
func NewService(client *pexels.Client, creds photos.CredentialProvider) *Service {
	return &Service{
		client: client,
		creds:  creds,
		log:    logging.ForService("collections"),
	}
}

// Featured returns the featured collections. Remote failures and a missing
// API key degrade to the default set rather than surfacing an error, since
// the chips are decorative.
func (s *Service) Featured(ctx context.Context) []Collection {
	apiKey := s.creds.APIKey()
	if apiKey == "" {
		s.log.Debug("no API key, using default collections")
		return defaults()
	}

	featured, err := s.client.FeaturedCollections(ctx, apiKey, DefaultPerPage)
	if err != nil || len(featured) == 0 {
		if err != nil {
			s.log.Debug("featured collections fetch failed, using defaults", "error", err)
		}
		return defaults()
	}

	collections := make([]Collection, 0, len(featured))
	for _, f := range featured {
		collections = append(collections, Collection{ID: f.ID, Name: f.Title})
	}
	return collections
}

// Select returns a copy of the collection list with exactly the named
// collection selected. Selecting the already-selected collection clears the
// selection, so tapping a chip twice toggles it off.
func Select(collections []Collection, name string) []Collection {
	result := make([]Collection, len(collections))
	for i, c := range collections {
		c.IsSelected = !c.IsSelected && strings.EqualFold(c.Name, name)
		result[i] = c
	}
	return result
}

// Selected returns the currently selected collection, or nil.
func Selected(collections []Collection) *Collection {
	for i := range collections {
		if collections[i].IsSelected {
			return &collections[i]
		}
	}
	return nil
}

// QueryFor returns the search query a selection maps to: the selected
// collection's name, or the empty string for the curated feed.
func QueryFor(collections []Collection) string {
	if selected := Selected(collections); selected != nil {
		return photos.NormalizeQuery(selected.Name)
	}
	return ""
}

func defaults() []Collection {
	collections := make([]Collection, 0, len(DefaultTitles))
	for _, title := range DefaultTitles {
		collections = append(collections, Collection{Name: title})
	}
	return collections
}
