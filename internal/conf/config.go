// Package conf defines the application settings and functions to load and
// save them. Settings are read from a YAML config file via viper, with
// environment variable overrides under the PEXELS_ prefix.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// PexelsSettings contains settings for the remote Pexels API.
type PexelsSettings struct {
	APIKey  string        // API key, blank disables remote access
	BaseURL string        // API base URL, overridable for testing
	Timeout time.Duration // per-request timeout
}

// CacheSettings contains settings for the local photo cache.
type CacheSettings struct {
	Path     string        // path to the SQLite database file
	Validity time.Duration // how long cached rows stay valid
	PageSize int           // default page size for listings
}

// DownloadSettings contains settings for saving photo files.
type DownloadSettings struct {
	Path string // directory photo files are saved to
}

// ServerSettings contains settings for the HTTP API server.
type ServerSettings struct {
	Host string
	Port int
}

// Settings is the root configuration object.
type Settings struct {
	Debug bool // true to enable debug logging

	Pexels   PexelsSettings
	Cache    CacheSettings
	Download DownloadSettings
	Server   ServerSettings
}

// Default cache and API parameters. The validity window matches the cache
// expiry sweep used by the page loader.
const (
	DefaultBaseURL       = "https://api.pexels.com/v1"
	DefaultTimeout       = 30 * time.Second
	DefaultCacheValidity = 1 * time.Hour
	DefaultPageSize      = 30
)

// DefaultSettings returns settings populated with defaults. The API key is
// intentionally left blank; remote access stays disabled until the user
// provides one.
func DefaultSettings() *Settings {
	return &Settings{
		Pexels: PexelsSettings{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Cache: CacheSettings{
			Path:     filepath.Join(defaultDataDir(), "photos.db"),
			Validity: DefaultCacheValidity,
			PageSize: DefaultPageSize,
		},
		Download: DownloadSettings{
			Path: defaultDownloadDir(),
		},
		Server: ServerSettings{
			Host: "localhost",
			Port: 8090,
		},
	}
}

// Load reads settings from the config file and environment. A missing config
// file is not an error; defaults apply and a default file is written so the
// user has something to edit.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range configPaths() {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("pexels")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	settings := DefaultSettings()
	setDefaults(v, settings)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := writeDefaultConfig(settings); err != nil {
			// A read-only config dir is not fatal, continue with defaults
			fmt.Fprintf(os.Stderr, "warning: could not write default config: %v\n", err)
		}
	}

	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks settings for values the rest of the application cannot
// work with.
func (s *Settings) Validate() error {
	if s.Cache.Path == "" {
		return fmt.Errorf("cache.path must not be empty")
	}
	if s.Cache.Validity <= 0 {
		return fmt.Errorf("cache.validity must be positive, got %v", s.Cache.Validity)
	}
	if s.Cache.PageSize <= 0 {
		return fmt.Errorf("cache.pagesize must be positive, got %d", s.Cache.PageSize)
	}
	if s.Pexels.BaseURL == "" {
		return fmt.Errorf("pexels.baseurl must not be empty")
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", s.Server.Port)
	}
	return nil
}

// APIKey returns the configured Pexels API key, with surrounding whitespace
// stripped. A blank result means remote calls must not be attempted.
func (s *Settings) APIKey() string {
	return strings.TrimSpace(s.Pexels.APIKey)
}

// Save writes the settings to the given path as YAML.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("debug", s.Debug)
	v.SetDefault("pexels.apikey", s.Pexels.APIKey)
	v.SetDefault("pexels.baseurl", s.Pexels.BaseURL)
	v.SetDefault("pexels.timeout", s.Pexels.Timeout)
	v.SetDefault("cache.path", s.Cache.Path)
	v.SetDefault("cache.validity", s.Cache.Validity)
	v.SetDefault("cache.pagesize", s.Cache.PageSize)
	v.SetDefault("download.path", s.Download.Path)
	v.SetDefault("server.host", s.Server.Host)
	v.SetDefault("server.port", s.Server.Port)
}

// configPaths returns the directories searched for config.yaml, most specific
// first.
func configPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "pexels"))
	}
	return paths
}

func writeDefaultConfig(s *Settings) error {
	dir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	return s.Save(filepath.Join(dir, "pexels", "config.yaml"))
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pexels")
	}
	return "."
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}
