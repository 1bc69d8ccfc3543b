// Package downloader saves photos to the local filesystem.
package downloader

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/VolleyLord/pexels/internal/errors"
	"github.com/VolleyLord/pexels/internal/httpclient"
	"github.com/VolleyLord/pexels/internal/logging"
	"github.com/VolleyLord/pexels/internal/photos"
)

// Downloader writes photo image files into a target directory.
type Downloader struct {
	http *httpclient.Client
	dir  string
	log  *slog.Logger
}

// New creates a downloader writing into dir.
func New(hc *httpclient.Client, dir string) *Downloader {
	return &Downloader{
		http: hc,
		dir:  dir,
		log:  logging.ForService("downloader"),
	}
}

// Download fetches the photo's download variant and writes it to
// pexels_<id>.jpg in the target directory, returning the written path.
func (d *Downloader) Download(ctx context.Context, photo photos.Photo) (string, error) {
	imageURL := photo.DownloadImageURL()
	if imageURL == "" {
		return "", errors.Newf("photo %d has no downloadable image URL", photo.ID).
			Category(errors.CategoryValidation).
			Component("downloader").
			Build()
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", errors.Newf("failed to create download directory: %w", err).
			Category(errors.CategoryImageDownload).
			Context("directory", d.dir).
			Component("downloader").
			Build()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, http.NoBody)
	if err != nil {
		return "", errors.Newf("failed to create download request: %w", err).
			Category(errors.CategoryImageDownload).
			Context("url", imageURL).
			Component("downloader").
			Build()
	}

	resp, err := d.http.Do(ctx, req)
	if err != nil {
		return "", errors.Newf("image download failed: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", imageURL).
			Component("downloader").
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("image download failed with status %d", resp.StatusCode).
			Category(errors.CategoryForStatus(resp.StatusCode)).
			Context("url", imageURL).
			Component("downloader").
			Build()
	}

	path := filepath.Join(d.dir, fmt.Sprintf("pexels_%d.jpg", photo.ID))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Newf("failed to create image file: %w", err).
			Category(errors.CategoryImageDownload).
			Context("path", path).
			Component("downloader").
			Build()
	}

	written, err := file.ReadFrom(resp.Body)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path) // don't leave a truncated file behind
		return "", errors.Newf("failed to write image file: %w", err).
			Category(errors.CategoryImageDownload).
			Context("path", path).
			Component("downloader").
			Build()
	}

	d.log.Info("photo downloaded", "photo_id", photo.ID, "path", path, "bytes", written)
	return path, nil
}
