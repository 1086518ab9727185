// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// NewTransport returns a transport derived from http.DefaultTransport
// that connects through proxyURL. Supported schemes are http, https,
// socks5 and socks5h; credentials may be given as user:password in the
// URL. An empty proxyURL keeps the environment proxy settings
// (HTTPS_PROXY, NO_PROXY and friends).
func NewTransport(proxyURL string) (*http.Transport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL == "" {
		return transport, nil
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("netutil: parsing proxy URL: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("netutil: proxy URL %q has no host", proxyURL)
	}

	switch parsed.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(parsed)
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(parsed, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("netutil: creating SOCKS5 dialer: %w", err)
		}
		contextDialer, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("netutil: SOCKS5 dialer for %s does not support contexts", parsed.Host)
		}
		transport.Proxy = nil
		transport.DialContext = contextDialer.DialContext
	default:
		return nil, fmt.Errorf("netutil: unsupported proxy scheme %q (want http, https, socks5)", parsed.Scheme)
	}
	return transport, nil
}

// NewHTTPClient returns an HTTP client using NewTransport(proxyURL). A
// zero timeout means no client-side timeout; long polling callers
// should leave room for the server-side wait.
func NewHTTPClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	transport, err := NewTransport(proxyURL)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: transport, Timeout: timeout}, nil
}
