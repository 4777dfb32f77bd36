// Package harvest runs the pagination driver over a list of seeds and
// flattens the outcome into (seed, link, error) rows.
package harvest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pagelinks/pagelinks/constant"
	"github.com/pagelinks/pagelinks/extract"
	"github.com/pagelinks/pagelinks/fetch"
	"github.com/pagelinks/pagelinks/log"
	"github.com/pagelinks/pagelinks/paginate"
	"github.com/pagelinks/pagelinks/util"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Row is one line of output. Exactly one of Link and Err is set.
type Row struct {
	Seed string
	Link string
	Err  error
}

// Options configures a harvest run.
type Options struct {
	paginate.Options
	// Workers is the number of seeds walked at once. Values below 2 run sequentially.
	Workers int
}

// Outcome summarizes what happened to one seed.
type Outcome struct {
	Seed  string
	Links int
	Pages int
	Stop  paginate.StopReason
	Err   error
}

// Report is the result of a harvest run.
type Report struct {
	RunID    string
	Mode     extract.Mode
	Rows     []Row
	Outcomes []Outcome
}

// Failed counts the seeds that produced an error row.
func (r *Report) Failed() int {
	return lo.CountBy(r.Rows, func(row Row) bool { return row.Err != nil })
}

// Harvester drives many seeds through one fetcher.
type Harvester struct {
	fetcher fetch.Fetcher
	driver  *paginate.Driver
}

// New returns a Harvester using fetcher for every page.
func New(fetcher fetch.Fetcher) *Harvester {
	return &Harvester{fetcher: fetcher, driver: paginate.New(fetcher)}
}

// WithObserver reports every page visit of every seed to observe.
// With more than one worker the observer is called concurrently.
func (h *Harvester) WithObserver(observe paginate.Observer) *Harvester {
	return &Harvester{fetcher: h.fetcher, driver: h.driver.WithObserver(observe)}
}

// Run fetches with a default HTTP fetcher and returns the rows only.
func Run(ctx context.Context, seeds []string, opts Options) ([]Row, error) {
	report, err := New(fetch.New(fetch.Options{Timeout: constant.DefaultTimeout})).Run(ctx, seeds, opts)
	if err != nil {
		return nil, err
	}
	return report.Rows, nil
}

// Seeds trims every seed and drops blank ones.
func Seeds(lines []string) []string {
	return lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
}

// Run walks every seed and returns rows in seed order. Links of one seed
// follow the driver's order. A seed that fails outright yields a single error
// row and never affects the other seeds. The error return is reserved for
// invalid options.
func (h *Harvester) Run(ctx context.Context, seeds []string, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	seeds = Seeds(seeds)

	var (
		runID    = uuid.NewString()
		logger   = log.WithRun(runID)
		outcomes = make([]Outcome, len(seeds))
		rows     = make([][]Row, len(seeds))
		workers  = max(1, min(opts.Workers, len(seeds)))
	)

	logger.Infof("harvesting %s in %s mode with %d workers", util.Quantify(len(seeds), "seed", "seeds"), opts.Mode, workers)

	var (
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, workers)
	)

	for i, seed := range seeds {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int, seed string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			outcomes[i], rows[i] = h.harvestSeed(ctx, logger, seed, opts.Options)
		}(i, seed)
	}

	wg.Wait()

	report := &Report{
		RunID:    runID,
		Mode:     opts.Mode,
		Rows:     lo.Flatten(rows),
		Outcomes: outcomes,
	}

	logger.Infof("harvest finished: %s, %d failed seeds", util.Quantify(len(report.Rows), "row", "rows"), report.Failed())
	return report, nil
}

func (h *Harvester) harvestSeed(ctx context.Context, logger *logrus.Entry, seed string, opts paginate.Options) (outcome Outcome, rows []Row) {
	outcome.Seed = seed

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic while harvesting %s: %v", seed, r)
			logger.Error(err)
			outcome = Outcome{Seed: seed, Err: err}
			rows = []Row{{Seed: seed, Err: err}}
		}
	}()

	result, err := h.driver.Run(ctx, seed, opts)
	if err != nil {
		logger.WithField("seed", seed).Errorf("seed failed: %v", err)
		outcome.Err = err
		return outcome, []Row{{Seed: seed, Err: err}}
	}

	outcome.Links = len(result.Links)
	outcome.Pages = result.Pages
	outcome.Stop = result.Stop
	outcome.Err = result.Err

	logger.WithField("seed", seed).Infof("%s from %s, stop: %s",
		util.Quantify(len(result.Links), "link", "links"),
		util.Quantify(result.Pages, "page", "pages"),
		result.Stop,
	)

	rows = lo.Map(result.Links, func(link string, _ int) Row {
		return Row{Seed: seed, Link: link}
	})
	return outcome, rows
}
