// Package app assembles the application from its parts: configuration, the
// cache store, the Pexels API client and the photo services built on top of
// them.
package app

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/VolleyLord/pexels/internal/collections"
	"github.com/VolleyLord/pexels/internal/conf"
	"github.com/VolleyLord/pexels/internal/datastore"
	"github.com/VolleyLord/pexels/internal/downloader"
	"github.com/VolleyLord/pexels/internal/errors"
	"github.com/VolleyLord/pexels/internal/httpclient"
	"github.com/VolleyLord/pexels/internal/logging"
	"github.com/VolleyLord/pexels/internal/metrics"
	"github.com/VolleyLord/pexels/internal/pexels"
	"github.com/VolleyLord/pexels/internal/photos"
)

// App holds the wired application services. Everything shares one cache
// store and one HTTP connection pool.
type App struct {
	Settings *conf.Settings
	Store    datastore.Interface
	Client   *pexels.Client

	Loader      *photos.Loader
	Bookmarks   *photos.Bookmarks
	Details     *photos.Details
	Collections *collections.Service
	Downloader  *downloader.Downloader

	Metrics  *metrics.PhotoMetrics
	Registry *prometheus.Registry

	log *slog.Logger
}

// New wires the application from settings and opens the cache store.
func New(settings *conf.Settings) (*App, error) {
	logging.Init(settings.Debug)
	log := logging.ForService("app")

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	store := datastore.New(settings.Cache.Path, settings.Debug)
	if err := store.Open(); err != nil {
		return nil, errors.Newf("failed to open cache store: %w", err).
			Category(errors.CategoryDatabase).
			Context("path", settings.Cache.Path).
			Component("app").
			Build()
	}

	registry := prometheus.NewRegistry()
	photoMetrics, err := metrics.NewPhotoMetrics(registry)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	hc := httpclient.New(&httpclient.Config{DefaultTimeout: settings.Pexels.Timeout})

	clientConfig := pexels.DefaultConfig()
	clientConfig.BaseURL = settings.Pexels.BaseURL
	clientConfig.Timeout = settings.Pexels.Timeout
	client := pexels.NewClient(clientConfig, hc)

	loader := photos.NewLoader(client, store, settings,
		photos.WithValidity(settings.Cache.Validity),
		photos.WithMetrics(photoMetrics))

	app := &App{
		Settings:    settings,
		Store:       store,
		Client:      client,
		Loader:      loader,
		Bookmarks:   photos.NewBookmarks(client, store, settings),
		Details:     photos.NewDetails(client, store, settings),
		Collections: collections.NewService(client, settings),
		Downloader:  downloader.New(hc, settings.Download.Path),
		Metrics:     photoMetrics,
		Registry:    registry,
		log:         log,
	}

	log.Debug("application wired",
		"cache_path", settings.Cache.Path,
		"base_url", settings.Pexels.BaseURL,
		"has_api_key", settings.APIKey() != "")
	return app, nil
}

// Close releases the cache store and the HTTP connection pool.
func (a *App) Close() error {
	a.Client.Close()
	if err := a.Store.Close(); err != nil {
		return errors.Newf("failed to close cache store: %w", err).
			Category(errors.CategoryDatabase).
			Component("app").
			Build()
	}
	return nil
}

// PageSize returns the configured listing page size.
func (a *App) PageSize() int {
	if a.Settings.Cache.PageSize > 0 {
		return a.Settings.Cache.PageSize
	}
	return conf.DefaultPageSize
}
