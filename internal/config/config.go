package config

import (
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"

	"github.com/nao1215/countryflags/internal/pipeline"
)

// Default configuration values.
const (
	// AppName names the XDG directories.
	AppName = "countryflags"

	// DefaultAPIURL is the data service the UI talks to when nothing else
	// is configured.
	DefaultAPIURL = "http://localhost:8081"

	// DefaultListenAddress is where `countryflags serve` listens.
	DefaultListenAddress = ":3000"

	// DefaultLocale is the UI language.
	DefaultLocale = "en"

	// DefaultRenderWait bounds how long the server waits for a page to
	// settle before answering with the loading placeholder.
	DefaultRenderWait = 5 * time.Second

	// DefaultConcurrency bounds parallel fetches of `countryflags show`.
	DefaultConcurrency = pipeline.DefaultConcurrency

	// DefaultHistoryLimit is how many navigations `countryflags history`
	// prints.
	DefaultHistoryLimit = 20

	// LogFormatText and LogFormatJSON are the accepted log formats.
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the resolved configuration. It is built once at startup and not
// modified afterwards.
type Config struct {
	// APIURL is the base URL of the data service, without /api/countries.
	APIURL string

	// ProxyURL routes data service requests through an http(s) or socks5
	// proxy. Empty means the environment proxy settings.
	ProxyURL string

	// UserAgent overrides the User-Agent of data service requests.
	UserAgent string

	// ListenAddress is the UI server address.
	ListenAddress string

	// Locale is the BCP 47 tag of the UI language.
	Locale string

	// RenderWait bounds how long a page request waits for data.
	RenderWait time.Duration

	// Concurrency bounds parallel fetches in the CLI.
	Concurrency int

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is "text" or "json".
	LogFormat string

	// ConfigFilePath is an explicit configuration file. Empty means search.
	ConfigFilePath string

	// History enables the navigation history store.
	History bool

	// DBDir holds the history database. Defaults to the XDG data directory.
	DBDir string

	// JSONOutput and MarkdownOutput select the CLI output format.
	JSONOutput     bool
	MarkdownOutput bool
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		APIURL:        DefaultAPIURL,
		ListenAddress: DefaultListenAddress,
		Locale:        DefaultLocale,
		RenderWait:    DefaultRenderWait,
		Concurrency:   DefaultConcurrency,
		LogFormat:     LogFormatText,
		DBDir:         XDGDataDir(),
	}
}

// XDGDataDir returns the data directory, e.g. ~/.local/share/countryflags.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the config directory, e.g. ~/.config/countryflags.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate returns the first problem found, wrapping one of the package's
// sentinel errors.
func (c *Config) Validate() error {
	if err := validateAPIURL(c.APIURL); err != nil {
		return err
	}
	if c.ProxyURL != "" {
		if err := validateProxyURL(c.ProxyURL); err != nil {
			return err
		}
	}
	if _, _, err := net.SplitHostPort(c.ListenAddress); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidListenAddress, c.ListenAddress)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, c.Locale)
	}
	if c.RenderWait <= 0 {
		return ErrInvalidRenderWait
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingReportFormats
	}
	return nil
}

func validateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidAPIURL, raw)
	}
	return nil
}

func validateProxyURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ErrInvalidProxyURL
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
		return nil
	default:
		return ErrInvalidProxyURL
	}
}
