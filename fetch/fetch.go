// Package fetch performs single page requests for the pagination driver.
package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pagelinks/pagelinks/constant"
	"github.com/pagelinks/pagelinks/log"
	"github.com/pagelinks/pagelinks/network"
	"github.com/pagelinks/pagelinks/util"
	"golang.org/x/net/html/charset"
)

// Fetcher returns the decoded HTML of one page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options configures an HTTP fetcher.
type Options struct {
	Timeout     time.Duration
	Fingerprint bool
	// Client overrides the client built from Timeout and Fingerprint.
	Client *http.Client
}

// HTTP is the network-backed Fetcher.
type HTTP struct {
	client *http.Client
}

// New builds an HTTP fetcher. A zero Timeout means constant.DefaultTimeout.
func New(options Options) *HTTP {
	client := options.Client
	if client == nil {
		timeout := options.Timeout
		if timeout <= 0 {
			timeout = constant.DefaultTimeout
		}
		client = network.NewClient(timeout, options.Fingerprint)
	}
	return &HTTP{client: client}
}

// Fetch issues one GET for url with the fixed browser User-Agent.
// Non-2xx responses fail with *HTTPStatusError, everything else with *TransportError.
func (h *HTTP) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	// Read the whole body first: charset sniffing swallows a short read.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}

	body, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}

	log.Debugf("fetched %s (%d bytes)", url, len(raw))
	return string(data), nil
}
