// Package paginate walks the synthetic "/page/{n}/" listing scheme of a seed URL,
// extracting links from each page until a stop rule fires.
package paginate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pagelinks/pagelinks/extract"
	"github.com/pagelinks/pagelinks/fetch"
	"github.com/pagelinks/pagelinks/log"
)

// Options selects the page budget and extraction strategy for one seed.
type Options struct {
	MaxPages int
	Mode     extract.Mode
	Filter   string
	// Threshold and MaxEdits tune the fuzzy and regex modes.
	Threshold int
	MaxEdits  int
}

// Validate reports options the driver cannot run with.
func (o Options) Validate() error {
	if o.MaxPages < 1 {
		return fmt.Errorf("max pages must be at least 1, got %d", o.MaxPages)
	}
	if !o.Mode.Valid() {
		return fmt.Errorf("invalid mode %s", o.Mode)
	}
	return nil
}

// PageEvent describes one page visit.
type PageEvent struct {
	Seed  string
	Index int
	URL   string
	Found int
	Err   error
}

// Observer receives a PageEvent after every page, in fetch order.
type Observer func(PageEvent)

// Result is the outcome of walking one seed.
type Result struct {
	Seed string
	// Links is sorted ascending.
	Links []string
	// Pages counts the pages fetched successfully.
	Pages int
	Stop  StopReason
	// Err is the page error that ended the loop, if any.
	Err error
}

// Driver runs the fetch and extract loop. It holds no per-run state and may
// serve several seeds concurrently when its Fetcher allows it.
type Driver struct {
	fetcher fetch.Fetcher
	observe Observer
}

// New returns a Driver fetching pages with fetcher.
func New(fetcher fetch.Fetcher) *Driver {
	return &Driver{fetcher: fetcher}
}

// WithObserver returns a copy of d that reports every page to observe.
func (d *Driver) WithObserver(observe Observer) *Driver {
	return &Driver{fetcher: d.fetcher, observe: observe}
}

// PageURL returns the address of page n of seed. Page 1 is the seed itself.
// The generic family appends "/page/{n}/" to the seed without trailing
// slashes; the slug-relative family appends it to domain + slug.
func PageURL(seed string, n int, slugRelative bool, domain, slug string) string {
	if n <= 1 {
		return seed
	}
	if slugRelative {
		return fmt.Sprintf("%s%s/page/%d/", domain, slug, n)
	}
	return fmt.Sprintf("%s/page/%d/", strings.TrimRight(seed, "/"), n)
}

// Run walks the pages of seed in increasing order, never past opts.MaxPages.
//
// A failure to fetch page 1 is returned as the error: the seed has nothing to
// offer. Later failures end the loop and are reported in Result.Err together
// with the links gathered so far. An empty page ends the loop as well, even
// though later pages could in principle hold links.
func (d *Driver) Run(ctx context.Context, seed string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	domain, slug, err := extract.SplitSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed url: %w", err)
	}

	maxPages := opts.MaxPages
	if !opts.Mode.Paginates() {
		maxPages = 1
	}

	var (
		links  = extract.NewLinkSet()
		result = &Result{Seed: seed, Stop: StopMaxPages}
	)

	for n := 1; n <= maxPages; n++ {
		if err := ctx.Err(); err != nil {
			if n == 1 {
				return nil, err
			}
			result.Stop, result.Err = StopCanceled, err
			break
		}

		pageURL := PageURL(seed, n, opts.Mode.SlugRelative(), domain, slug)

		html, err := d.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			d.emit(PageEvent{Seed: seed, Index: n, URL: pageURL, Err: err})
			if n == 1 {
				return nil, err
			}
			result.Stop, result.Err = classify(ctx, err), err
			log.Warnf("%s: stopped at page %d: %v", seed, n, err)
			break
		}
		result.Pages++

		found, err := extract.Extract(opts.Mode, html, extract.Context{
			PageURL:   pageURL,
			Domain:    domain,
			Slug:      slug,
			Filter:    opts.Filter,
			Threshold: opts.Threshold,
			MaxEdits:  opts.MaxEdits,
		})
		if err != nil {
			d.emit(PageEvent{Seed: seed, Index: n, URL: pageURL, Err: err})
			result.Stop, result.Err = classify(ctx, err), err
			var parseErr *extract.ParseError
			if errors.As(err, &parseErr) {
				log.Warnf("%s: page %d treated as empty: %v", seed, n, err)
			} else {
				log.Errorf("%s: extraction failed on page %d: %v", seed, n, err)
			}
			break
		}

		d.emit(PageEvent{Seed: seed, Index: n, URL: pageURL, Found: found.Len()})

		if found.Len() == 0 {
			result.Stop = StopEmpty
			break
		}

		links.Merge(found)

		if !opts.Mode.Paginates() {
			result.Stop = StopSinglePage
			break
		}
	}

	result.Links = links.Sorted()
	log.Debugf("%s: %d links from %d pages (%s)", seed, len(result.Links), result.Pages, result.Stop)
	return result, nil
}

func (d *Driver) emit(e PageEvent) {
	if d.observe != nil {
		d.observe(e)
	}
}
