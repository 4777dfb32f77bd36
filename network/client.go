// Package network builds the HTTP clients used to fetch listing pages.
package network

import (
	"net/http"
	"time"
)

// NewClient returns a client bounded by timeout. Redirects are followed with the
// net/http defaults. With fingerprint set, HTTPS requests present a Chrome TLS
// ClientHello instead of Go's own.
func NewClient(timeout time.Duration, fingerprint bool) *http.Client {
	var transport http.RoundTripper = newTransport()
	if fingerprint {
		transport = NewFingerprintTransport()
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}
