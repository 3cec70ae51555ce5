package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

// ErrUnsupportedProxy is returned by NewTransport for proxy schemes other
// than http, https, socks5 and socks5h.
var ErrUnsupportedProxy = errors.New("unsupported proxy scheme")

// NewTransport returns an HTTP transport for the country service.
//
// With an empty proxyURL the transport behaves like http.DefaultTransport,
// honouring the standard proxy environment variables. A socks5:// or
// socks5h:// URL routes every connection through that SOCKS5 proxy; an
// http:// or https:// URL uses it as a forward proxy.
func NewTransport(proxyURL string) (*http.Transport, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, errors.New("default transport is not an *http.Transport")
	}
	t := base.Clone()

	if proxyURL == "" {
		return t, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		t.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		cd, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("SOCKS5 dialer for %s does not support contexts", u.Host)
		}
		t.Proxy = nil
		t.DialContext = cd.DialContext
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProxy, u.Scheme)
	}

	return t, nil
}
