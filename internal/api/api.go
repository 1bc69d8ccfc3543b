// Package api exposes the photo services over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VolleyLord/pexels/internal/app"
	"github.com/VolleyLord/pexels/internal/errors"
	"github.com/VolleyLord/pexels/internal/logging"
	"github.com/VolleyLord/pexels/internal/photos"
)

// Server is the HTTP API server.
type Server struct {
	app       *app.App
	echo      *echo.Echo
	log       *slog.Logger
	accessLog *slog.Logger
}

// NewServer creates the API server and registers all routes. A nil accessLog
// sends request logs to the service logger.
func NewServer(application *app.App, accessLog *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{
		app:       application,
		echo:      e,
		log:       logging.ForService("api"),
		accessLog: accessLog,
	}
	if s.accessLog == nil {
		s.accessLog = s.log
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.accessLog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds())
			return nil
		},
	}))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.echo.Group("/api/v1")

	v1.GET("/photos/curated", s.handleCurated)
	v1.GET("/photos/search", s.handleSearch)
	v1.GET("/photos/:id", s.handlePhoto)
	v1.POST("/photos/:id/download", s.handleDownload)

	v1.GET("/bookmarks", s.handleBookmarks)
	v1.POST("/bookmarks/:id", s.handleBookmarkAdd)
	v1.DELETE("/bookmarks/:id", s.handleBookmarkRemove)

	v1.GET("/collections", s.handleCollections)

	s.echo.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(s.app.Registry, promhttp.HandlerOpts{})))
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.app.Settings.Server.Host, s.app.Settings.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("API server starting", "address", address)
		errCh <- s.echo.Start(address)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

// photoJSON is the wire shape of one photo.
type photoJSON struct {
	ID              int    `json:"id"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	URL             string `json:"url"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url,omitempty"`
	AvgColor        string `json:"avg_color"`
	ImageURL        string `json:"image_url"`
	DetailImageURL  string `json:"detail_image_url"`
	Alt             string `json:"alt,omitempty"`
	Liked           *bool  `json:"liked,omitempty"`
}

// pageJSON is the wire shape of one photo page.
type pageJSON struct {
	Photos   []photoJSON `json:"photos"`
	PrevPage *int        `json:"prev_page,omitempty"`
	NextPage *int        `json:"next_page,omitempty"`
}

func toPhotoJSON(p photos.Photo) photoJSON {
	return photoJSON{
		ID:              p.ID,
		Width:           p.Width,
		Height:          p.Height,
		URL:             p.URL,
		Photographer:    p.Photographer,
		PhotographerURL: p.PhotographerURL,
		AvgColor:        photos.FormatAvgColor(p.AvgColor),
		ImageURL:        p.ListImageURL(),
		DetailImageURL:  p.DetailImageURL(),
		Alt:             p.Alt,
		Liked:           p.Liked,
	}
}

func toPageJSON(result photos.PageResult) pageJSON {
	page := pageJSON{
		Photos:   make([]photoJSON, 0, len(result.Photos)),
		PrevPage: result.PrevKey,
		NextPage: result.NextKey,
	}
	for _, p := range result.Photos {
		page.Photos = append(page.Photos, toPhotoJSON(p))
	}
	return page
}

func (s *Server) handleCurated(c echo.Context) error {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "per_page", s.app.PageSize())

	result, err := s.app.Loader.LoadPage(c.Request().Context(), "", page, size)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toPageJSON(result))
}

func (s *Server) handleSearch(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return c.JSON(http.StatusBadRequest, errorJSON("query parameter is required"))
	}
	page := queryInt(c, "page", 1)
	size := queryInt(c, "per_page", s.app.PageSize())

	result, err := s.app.Loader.LoadPage(c.Request().Context(), query, page, size)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toPageJSON(result))
}

func (s *Server) handlePhoto(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid photo id"))
	}
	fromBookmarks, _ := strconv.ParseBool(c.QueryParam("from_bookmarks"))

	photo, err := s.app.Details.Get(c.Request().Context(), id, fromBookmarks)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toPhotoJSON(photo))
}

func (s *Server) handleDownload(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid photo id"))
	}

	photo, err := s.app.Details.Get(c.Request().Context(), id, false)
	if err != nil {
		return s.errorResponse(c, err)
	}

	path, err := s.app.Downloader.Download(c.Request().Context(), photo)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"path": path})
}

func (s *Server) handleBookmarks(c echo.Context) error {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "per_page", s.app.PageSize())

	result, err := s.app.Bookmarks.List(c.Request().Context(), page, size)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toPageJSON(result))
}

func (s *Server) handleBookmarkAdd(c echo.Context) error {
	return s.toggleBookmark(c, true)
}

func (s *Server) handleBookmarkRemove(c echo.Context) error {
	return s.toggleBookmark(c, false)
}

func (s *Server) toggleBookmark(c echo.Context, bookmarked bool) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid photo id"))
	}

	if err := s.app.Bookmarks.Toggle(c.Request().Context(), id, bookmarked); err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "bookmarked": bookmarked})
}

func (s *Server) handleCollections(c echo.Context) error {
	collections := s.app.Collections.Featured(c.Request().Context())

	type collectionJSON struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name"`
	}
	payload := make([]collectionJSON, 0, len(collections))
	for _, col := range collections {
		payload = append(payload, collectionJSON{ID: col.ID, Name: col.Name})
	}
	return c.JSON(http.StatusOK, payload)
}

// errorResponse maps an error's category to an HTTP status and returns the
// user-facing message for it.
func (s *Server) errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.IsCategory(err, errors.CategoryValidation):
		status = http.StatusBadRequest
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsMissingCredential(err):
		status = http.StatusUnauthorized
	case errors.IsNetwork(err):
		status = http.StatusBadGateway
	}

	s.log.Debug("request failed",
		"path", c.Path(),
		"status", status,
		"error", err)
	return c.JSON(status, errorJSON(errors.UserMessage(err)))
}

func errorJSON(message string) map[string]string {
	return map[string]string{"error": message}
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func pathID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}
