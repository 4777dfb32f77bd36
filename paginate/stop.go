package paginate

import (
	"context"
	"errors"

	"github.com/pagelinks/pagelinks/extract"
	"github.com/pagelinks/pagelinks/fetch"
)

// StopReason tells why the driver stopped walking pages for a seed.
type StopReason int

const (
	// StopMaxPages means every page up to MaxPages was fetched.
	StopMaxPages StopReason = iota
	// StopEmpty means a page produced no links; it is taken as the end of pagination.
	StopEmpty
	// StopStatus means a page answered with a non-2xx status.
	StopStatus
	// StopTransport means a page could not be fetched or parsed.
	StopTransport
	// StopParse means the filter pattern is malformed; the page counts as having no matches.
	StopParse
	// StopSinglePage means the mode only reads the first page.
	StopSinglePage
	// StopCanceled means the context ended the run.
	StopCanceled
)

var stopNames = []string{
	StopMaxPages:   "max-pages",
	StopEmpty:      "empty-page",
	StopStatus:     "http-status",
	StopTransport:  "transport",
	StopParse:      "bad-pattern",
	StopSinglePage: "single-page",
	StopCanceled:   "canceled",
}

func (s StopReason) String() string {
	if s >= 0 && int(s) < len(stopNames) {
		return stopNames[s]
	}
	return "unknown"
}

func (s StopReason) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// classify maps a page error to the reason it ended the loop. Only the run's
// own context counts as cancellation; a client timeout is a transport failure.
func classify(ctx context.Context, err error) StopReason {
	var (
		statusErr *fetch.HTTPStatusError
		parseErr  *extract.ParseError
	)
	switch {
	case ctx.Err() != nil:
		return StopCanceled
	case errors.As(err, &statusErr):
		return StopStatus
	case errors.As(err, &parseErr):
		return StopParse
	default:
		return StopTransport
	}
}
