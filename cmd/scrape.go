package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/pagelinks/pagelinks/config"
	"github.com/pagelinks/pagelinks/export"
	"github.com/pagelinks/pagelinks/extract"
	"github.com/pagelinks/pagelinks/fetch"
	"github.com/pagelinks/pagelinks/harvest"
	"github.com/pagelinks/pagelinks/icon"
	"github.com/pagelinks/pagelinks/key"
	"github.com/pagelinks/pagelinks/log"
	"github.com/pagelinks/pagelinks/paginate"
	"github.com/pagelinks/pagelinks/query"
	"github.com/pagelinks/pagelinks/style"
	"github.com/pagelinks/pagelinks/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type scrapeSettings struct {
	seeds   []string
	mode    extract.Mode
	filter  string
	pages   int
	workers int
	search  string
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	f := scrapeCmd.Flags()

	f.IntP("pages", "p", 0, "Pages to walk per URL")
	lo.Must0(viper.BindPFlag(key.PagesDefault, f.Lookup("pages")))

	f.StringP("mode", "m", "", "Extraction mode: all, episode, episode-prefix, fuzzy, regex, media")
	lo.Must0(viper.BindPFlag(key.ScrapeMode, f.Lookup("mode")))
	lo.Must0(scrapeCmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return extract.Modes(), cobra.ShellCompDirectiveNoFileComp
	}))

	f.StringP("filter", "f", "", "Filter terms (fuzzy) or pattern (regex)")

	f.Int("threshold", 0, "Fuzzy score from 0 to 100 a link must reach")
	lo.Must0(viper.BindPFlag(key.FilterFuzzyThreshold, f.Lookup("threshold")))

	f.Int("max-edits", 0, "Typos tolerated by the regex mode")
	lo.Must0(viper.BindPFlag(key.FilterMaxEdits, f.Lookup("max-edits")))

	f.IntP("workers", "w", 0, "URLs scraped at the same time")
	lo.Must0(viper.BindPFlag(key.ScrapeWorkers, f.Lookup("workers")))

	f.IntP("timeout", "t", 0, "Timeout of a single request, in seconds")
	lo.Must0(viper.BindPFlag(key.NetworkTimeout, f.Lookup("timeout")))

	f.Bool("fingerprint", false, "Use a Chrome TLS fingerprint")
	lo.Must0(viper.BindPFlag(key.NetworkFingerprint, f.Lookup("fingerprint")))

	f.StringP("file", "F", "", "Read URLs from a file, one per line")

	f.StringP("search", "s", "", "Query the site search of each URL instead of paginating")
	lo.Must0(scrapeCmd.RegisterFlagCompletionFunc("search", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))

	f.StringP("output", "o", "", "Write rows to a file instead of the terminal")
	f.String("format", "", "Output file format: csv or json")
	lo.Must0(viper.BindPFlag(key.ScrapeFormat, f.Lookup("format")))
	lo.Must0(scrapeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(export.Formats, func(f export.Format, _ int) string { return string(f) }), cobra.ShellCompDirectiveNoFileComp
	}))
	f.Bool("save", false, "Write rows to the exports directory")
	f.Bool("open", false, "Open the written file with the default application")

	f.BoolP("interactive", "i", false, "Ask for URLs and options")
	f.BoolP("quiet", "q", false, "Hide progress")

	scrapeCmd.MarkFlagsMutuallyExclusive("output", "save")
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [url...]",
	Short: "Collect links from listing pages and their /page/N/ successors",
	Long: `Collect links from listing pages.

Every URL is fetched, then URL/page/2/, URL/page/3/ and so on until a page has
no matching links, a page fails, or the page limit is reached.

Modes:
  all             every link on the page
  episode         links containing "-episod-" followed by a number
  episode-prefix  links starting with the URL path followed by "-"
  fuzzy           links similar to one of the --filter terms
  regex           links matching --filter, allowing a few typos
  media           iframe and video sources on the first page only

URLs are read from the arguments, from --file, or from stdin.`,
	Example: `  pagelinks scrape https://example.com/anime/list/ --pages 5
  pagelinks scrape -m fuzzy -f "megacloud|streamtape" -F seeds.txt -o links.csv
  pagelinks scrape https://example.com/ --search "Honey Minta Maaf"`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		settings, err := loadSettings(cmd, args)
		handleErr(err)

		quiet := lo.Must(cmd.Flags().GetBool("quiet"))

		h := harvest.New(fetch.New(fetch.Options{
			Timeout:     config.Timeout(),
			Fingerprint: viper.GetBool(key.NetworkFingerprint),
		}))
		done := func() {}
		if !quiet && util.IsTerminal(os.Stderr) {
			var observe paginate.Observer
			observe, done = progress()
			h = h.WithObserver(observe)
		}

		var report *harvest.Report
		if settings.search != "" {
			report, err = searchAll(ctx, h, settings)
		} else {
			report, err = h.Run(ctx, settings.seeds, harvestOptions(settings))
		}
		done()
		handleErr(err)

		handleErr(writeReport(cmd, report, settings))

		if !quiet {
			summarize(report)
		}
	},
}

func loadSettings(cmd *cobra.Command, args []string) (*scrapeSettings, error) {
	mode, err := extract.ParseMode(viper.GetString(key.ScrapeMode))
	if err != nil {
		return nil, err
	}

	seeds, err := collectSeeds(args, lo.Must(cmd.Flags().GetString("file")), os.Stdin)
	if err != nil {
		return nil, err
	}

	s := &scrapeSettings{
		seeds:   seeds,
		mode:    mode,
		filter:  lo.Must(cmd.Flags().GetString("filter")),
		pages:   viper.GetInt(key.PagesDefault),
		workers: viper.GetInt(key.ScrapeWorkers),
		search:  lo.Must(cmd.Flags().GetString("search")),
	}

	interactive := lo.Must(cmd.Flags().GetBool("interactive"))
	if interactive || (len(s.seeds) == 0 && util.IsTerminal(os.Stdin)) {
		if err := askSettings(s); err != nil {
			return nil, err
		}
	}

	if len(s.seeds) == 0 {
		return nil, errors.New("no URLs given")
	}

	if s.pages < 1 {
		return nil, fmt.Errorf("pages must be at least 1, got %d", s.pages)
	}

	if ceiling := viper.GetInt(key.PagesCeiling); ceiling > 0 && s.pages > ceiling {
		log.Warnf("pages clamped from %d to %d", s.pages, ceiling)
		s.pages = ceiling
	}

	return s, nil
}

func harvestOptions(s *scrapeSettings) harvest.Options {
	return harvest.Options{
		Options: paginate.Options{
			MaxPages:  s.pages,
			Mode:      s.mode,
			Filter:    s.filter,
			Threshold: viper.GetInt(key.FilterFuzzyThreshold),
			MaxEdits:  maxEdits(viper.GetInt(key.FilterMaxEdits)),
		},
		Workers: s.workers,
	}
}

// maxEdits keeps an explicit zero from the config or flag meaning "exact".
func maxEdits(n int) int {
	if n == 0 {
		return extract.ExactMatch
	}
	return n
}

func searchAll(ctx context.Context, h *harvest.Harvester, s *scrapeSettings) (*harvest.Report, error) {
	if err := query.Remember(s.search); err != nil {
		log.Warn(err)
	}

	merged := &harvest.Report{Mode: s.mode}
	for _, seed := range s.seeds {
		report, err := h.Search(ctx, seed, s.search, harvestOptions(s))
		if err != nil {
			return nil, err
		}
		if merged.RunID == "" {
			merged.RunID = report.RunID
		}
		merged.Rows = append(merged.Rows, report.Rows...)
		merged.Outcomes = append(merged.Outcomes, report.Outcomes...)
	}
	return merged, nil
}

// progress shows the page being walked on a single stderr line.
// done clears the line.
func progress() (observe paginate.Observer, done func()) {
	var (
		mu    sync.Mutex
		erase = func() {}
	)

	done = func() {
		mu.Lock()
		defer mu.Unlock()
		erase()
		erase = func() {}
	}

	observe = func(e paginate.PageEvent) {
		mu.Lock()
		defer mu.Unlock()

		erase()
		status := util.Quantify(e.Found, "link", "links")
		if e.Err != nil {
			status = "failed"
		}
		erase = util.PrintErasable(fmt.Sprintf(
			"%s %s %s %s",
			icon.Get(icon.Progress),
			style.Faint(fmt.Sprintf("page %d", e.Index)),
			e.URL,
			style.Faint(status),
		))
	}

	return observe, done
}

func summarize(report *harvest.Report) {
	var (
		links  = len(report.Rows) - report.Failed()
		failed = report.Failed()
		seeds  = len(report.Outcomes)
	)

	mark := icon.Get(icon.Success)
	if failed > 0 {
		mark = icon.Get(icon.Warn)
	}

	_, _ = fmt.Fprintf(os.Stderr, "%s %s from %s",
		mark,
		util.Quantify(links, "link", "links"),
		util.Quantify(seeds, "URL", "URLs"),
	)
	if failed > 0 {
		_, _ = fmt.Fprintf(os.Stderr, ", %d failed", failed)
	}
	_, _ = fmt.Fprintln(os.Stderr)
}

func init() {
	scrapeCmd.AddCommand(scrapeSchemaCmd)
}

var scrapeSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of json exports",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(os.Stdout).Encode(export.Schema()))
	},
}
