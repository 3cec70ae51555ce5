package config

import "errors"

// Validation errors returned by Config.Validate. Callers match them with
// errors.Is.
var (
	// ErrInvalidAPIURL is returned when the data service URL is not an
	// absolute http or https URL.
	ErrInvalidAPIURL = errors.New("invalid api url: must be an absolute http or https URL")

	// ErrInvalidProxyURL is returned when the proxy URL cannot be parsed or
	// uses a scheme other than http, https, socks5 or socks5h.
	ErrInvalidProxyURL = errors.New("invalid proxy url: scheme must be http, https, socks5 or socks5h")

	// ErrInvalidListenAddress is returned when the listen address is not
	// in host:port form.
	ErrInvalidListenAddress = errors.New("invalid listen address: must be host:port")

	// ErrInvalidLocale is returned when the locale is not a BCP 47 tag.
	ErrInvalidLocale = errors.New("invalid locale: must be a BCP 47 language tag")

	// ErrInvalidRenderWait is returned when the render wait is not positive.
	ErrInvalidRenderWait = errors.New("invalid render wait: must be positive")

	// ErrInvalidConcurrency is returned when the fetch concurrency is not
	// positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidLogFormat is returned for a log format other than text or json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are given.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
