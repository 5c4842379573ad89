package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. ESTUDOS_API_URL.
const EnvPrefix = "ESTUDOS"

// APIPath is appended to the service root to form the gateway base URL.
const APIPath = "/api/v1"

// Config keys, shared with the cobra flag bindings.
const (
	KeyAPIURL         = "api_url"
	KeyRequestTimeout = "request_timeout"
	KeyUploadTimeout  = "upload_timeout"
	KeyDB             = "db"
	KeyDebug          = "debug"
	KeyLogFile        = "log_file"
	KeyOffline        = "offline"
)

// Config holds all client configuration.
type Config struct {
	// APIURL is the backend service root, without the /api/v1 suffix.
	APIURL string

	// RequestTimeout bounds every gateway call except uploads.
	RequestTimeout time.Duration

	// UploadTimeout bounds material uploads, which include backend
	// processing time.
	UploadTimeout time.Duration

	// DBPath is the SQLite file for durable client state. Empty means
	// the default XDG location.
	DBPath string

	Debug   bool
	LogFile string

	// Offline swaps the HTTP gateway for canned responses.
	Offline bool
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		APIURL:         "http://localhost:8000",
		RequestTimeout: 30 * time.Second,
		UploadTimeout:  5 * time.Minute,
		LogFile:        "estudos-debug.log",
	}
}

// NewViper returns a viper instance preloaded with defaults and bound to
// ESTUDOS_* environment variables. A .env file in the working directory,
// when present, is loaded into the environment first.
func NewViper() *viper.Viper {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: load .env: %v\n", err)
	}

	def := Default()
	v := viper.New()
	v.SetDefault(KeyAPIURL, def.APIURL)
	v.SetDefault(KeyRequestTimeout, def.RequestTimeout)
	v.SetDefault(KeyUploadTimeout, def.UploadTimeout)
	v.SetDefault(KeyDB, def.DBPath)
	v.SetDefault(KeyDebug, def.Debug)
	v.SetDefault(KeyLogFile, def.LogFile)
	v.SetDefault(KeyOffline, def.Offline)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads a Config out of v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		APIURL:         strings.TrimRight(v.GetString(KeyAPIURL), "/"),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
		UploadTimeout:  v.GetDuration(KeyUploadTimeout),
		DBPath:         v.GetString(KeyDB),
		Debug:          v.GetBool(KeyDebug),
		LogFile:        v.GetString(KeyLogFile),
		Offline:        v.GetBool(KeyOffline),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the API URL and timeouts.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid %s_API_URL %q: %w", EnvPrefix, c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s_API_URL %q: scheme must be http or https", EnvPrefix, c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s_API_URL %q: missing host", EnvPrefix, c.APIURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.UploadTimeout <= 0 {
		return fmt.Errorf("upload timeout must be positive, got %s", c.UploadTimeout)
	}
	return nil
}

// BaseURL returns the gateway base URL.
func (c Config) BaseURL() string {
	return strings.TrimRight(c.APIURL, "/") + APIPath
}
