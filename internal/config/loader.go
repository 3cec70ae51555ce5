package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is the configuration file name searched in the
	// working and home directories.
	DefaultConfigFile = ".countryflags"

	// xdgConfigFile is the file name inside the XDG config directory.
	xdgConfigFile = "config.yaml"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL  = "COUNTRYFLAGS_API_URL"
	EnvListen  = "COUNTRYFLAGS_LISTEN"
	EnvLocale  = "COUNTRYFLAGS_LOCALE"
	EnvProxy   = "COUNTRYFLAGS_PROXY"
	EnvHistory = "COUNTRYFLAGS_HISTORY"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file. Every field is optional; unset
// fields keep the value from the defaults.
type File struct {
	APIURL      string        `yaml:"api_url,omitempty"`
	Proxy       string        `yaml:"proxy,omitempty"`
	UserAgent   string        `yaml:"user_agent,omitempty"`
	Listen      string        `yaml:"listen,omitempty"`
	Locale      string        `yaml:"locale,omitempty"`
	RenderWait  time.Duration `yaml:"render_wait,omitempty"`
	Concurrency int           `yaml:"concurrency,omitempty"`
	LogFormat   string        `yaml:"log_format,omitempty"`
	History     *bool         `yaml:"history,omitempty"`
	DBDir       string        `yaml:"db_dir,omitempty"`
}

// LoadConfigFile reads the YAML file at path. A missing file yields
// ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// FindConfigFile returns the configuration file to load, or "" if none
// exists. An explicit configPath is used as is. Otherwise the search order
// is ./.countryflags, $XDG_CONFIG_HOME/countryflags/config.yaml and
// ~/.countryflags.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ApplyFile overlays the values set in f.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	setString(&c.APIURL, f.APIURL)
	setString(&c.ProxyURL, f.Proxy)
	setString(&c.UserAgent, f.UserAgent)
	setString(&c.ListenAddress, f.Listen)
	setString(&c.Locale, f.Locale)
	setString(&c.LogFormat, f.LogFormat)
	setString(&c.DBDir, f.DBDir)
	if f.RenderWait != 0 {
		c.RenderWait = f.RenderWait
	}
	if f.Concurrency != 0 {
		c.Concurrency = f.Concurrency
	}
	if f.History != nil {
		c.History = *f.History
	}
}

// ApplyEnv overlays COUNTRYFLAGS_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok {
		setString(&c.APIURL, v)
	}
	if v, ok := lookup(EnvListen); ok {
		setString(&c.ListenAddress, v)
	}
	if v, ok := lookup(EnvLocale); ok {
		setString(&c.Locale, v)
	}
	if v, ok := lookup(EnvProxy); ok {
		setString(&c.ProxyURL, v)
	}
	if v, ok := lookup(EnvHistory); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvHistory, err)
		}
		c.History = b
	}
	return nil
}

// Load builds a Config from defaults, the configuration file and the
// environment. An explicit configPath that does not exist is an error; a
// missing file found by search is not.
func Load(configPath string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := NewConfig()
	cfg.ConfigFilePath = configPath

	path := FindConfigFile(configPath)
	if path == "" && configPath != "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}
	if path != "" {
		f, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg.ApplyFile(f)
		cfg.ConfigFilePath = path
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
