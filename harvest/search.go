package harvest

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/pagelinks/pagelinks/extract"
	"github.com/pagelinks/pagelinks/log"
	"github.com/pagelinks/pagelinks/util"
	"github.com/samber/lo"
)

// SearchURL returns seed with the site search parameter "s" set to query.
// Existing query parameters are kept.
func SearchURL(seed, query string) (string, error) {
	u, err := url.Parse(seed)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", seed)
	}

	values := u.Query()
	values.Set("s", query)
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// Search fetches the search results page of seed for query and extracts its
// links without paginating. A failed fetch yields a single error row.
func (h *Harvester) Search(ctx context.Context, seed, query string, opts Options) (*Report, error) {
	if !opts.Mode.Valid() {
		return nil, fmt.Errorf("invalid mode %s", opts.Mode)
	}
	if lo.Contains([]extract.Mode{extract.PlayerMedia, extract.EpisodePrefixLinks}, opts.Mode) {
		return nil, fmt.Errorf("mode %s cannot be used with search", opts.Mode)
	}

	searchURL, err := SearchURL(seed, query)
	if err != nil {
		return nil, fmt.Errorf("invalid seed url: %w", err)
	}

	runID := uuid.NewString()
	logger := log.WithRun(runID).WithField("seed", seed)
	logger.Infof("searching %q at %s", query, searchURL)

	report := &Report{RunID: runID, Mode: opts.Mode}

	html, err := h.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		logger.Errorf("search failed: %v", err)
		report.Rows = []Row{{Seed: searchURL, Err: err}}
		report.Outcomes = []Outcome{{Seed: searchURL, Err: err}}
		return report, nil
	}

	domain, slug, _ := extract.SplitSeed(searchURL)
	links, err := extract.Extract(opts.Mode, html, extract.Context{
		PageURL:   searchURL,
		Domain:    domain,
		Slug:      slug,
		Filter:    opts.Filter,
		Threshold: opts.Threshold,
		MaxEdits:  opts.MaxEdits,
	})

	outcome := Outcome{Seed: searchURL, Pages: 1, Err: err}
	if err != nil {
		var parseErr *extract.ParseError
		if !errors.As(err, &parseErr) {
			report.Rows = []Row{{Seed: searchURL, Err: err}}
		}
		logger.Warnf("search results dropped: %v", err)
		report.Outcomes = []Outcome{outcome}
		return report, nil
	}

	sorted := links.Sorted()
	outcome.Links = len(sorted)
	report.Outcomes = []Outcome{outcome}
	report.Rows = lo.Map(sorted, func(link string, _ int) Row {
		return Row{Seed: searchURL, Link: link}
	})

	logger.Infof("search found %s", util.Quantify(len(sorted), "link", "links"))
	return report, nil
}
