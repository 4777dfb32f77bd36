// Package extract turns the HTML of one listing page into a set of absolute
// links. Each Mode has its own pure extractor; Extract dispatches between them.
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelinks/pagelinks/approx"
	"github.com/pagelinks/pagelinks/constant"
)

// Context carries everything an extractor may need besides the HTML.
type Context struct {
	// PageURL is the address the HTML was fetched from; relative hrefs resolve against it.
	PageURL string
	// Domain and Slug come from the seed URL (see SplitSeed).
	Domain string
	Slug   string
	// Filter is the raw user filter: keywords for FuzzyFiltered, a pattern for RegexApprox.
	Filter string
	// Threshold is the minimum fuzzy score. Zero means constant.DefaultFuzzyThreshold.
	Threshold int
	// MaxEdits is the regex edit budget. Zero means constant.DefaultMaxEdits,
	// ExactMatch disables approximate matching.
	MaxEdits int
}

type page struct {
	doc  *goquery.Document
	base *url.URL
	raw  string
}

type extractor func(p *page, c Context) (LinkSet, error)

var extractors = map[Mode]extractor{
	AllLinks:           allLinks,
	EpisodeLinks:       episodeLinks,
	EpisodePrefixLinks: episodePrefixLinks,
	FuzzyFiltered:      fuzzyLinks,
	RegexApprox:        regexLinks,
	PlayerMedia:        mediaLinks,
}

// Extract runs the extractor selected by mode over html.
func Extract(mode Mode, html string, c Context) (LinkSet, error) {
	fn, ok := extractors[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %s", mode)
	}

	base, err := url.Parse(c.PageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	return fn(&page{doc: doc, base: base, raw: html}, c)
}

// SplitSeed derives the domain (scheme://host) and slug (path without the
// trailing slash) of a seed URL.
func SplitSeed(seed string) (domain, slug string, err error) {
	u, err := url.Parse(seed)
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("%q is not an absolute URL", seed)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("%q: unsupported scheme %q", seed, u.Scheme)
	}
	return u.Scheme + "://" + u.Host, strings.TrimRight(u.Path, "/"), nil
}

// resolve makes href absolute against base. Only http(s) results are kept and
// fragments are dropped so in-page anchors collapse onto their page.
func resolve(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	abs := base.ResolveReference(ref)
	switch strings.ToLower(abs.Scheme) {
	case "http", "https":
	default:
		return "", false
	}

	abs.Fragment = ""
	abs.RawFragment = ""
	return abs.String(), true
}

// anchors resolves every a[href] for which keep returns true on the raw href.
func (p *page) anchors(keep func(href string) bool) LinkSet {
	links := NewLinkSet()
	p.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if keep != nil && !keep(href) {
			return
		}
		if abs, ok := resolve(p.base, href); ok {
			links.Add(abs)
		}
	})
	return links
}

func allLinks(p *page, _ Context) (LinkSet, error) {
	return p.anchors(nil), nil
}

var episodePattern = regexp.MustCompile(`[^\d]+-episod-\d+`)

func episodeLinks(p *page, _ Context) (LinkSet, error) {
	return p.anchors(episodePattern.MatchString), nil
}

func episodePrefixLinks(p *page, c Context) (LinkSet, error) {
	domain, slug := c.Domain, c.Slug
	if domain == "" {
		var err error
		if domain, slug, err = SplitSeed(c.PageURL); err != nil {
			return nil, err
		}
	}

	prefix := domain + slug + "-"
	links := NewLinkSet()
	for l := range p.anchors(nil) {
		if strings.HasPrefix(l, prefix) {
			links.Add(l)
		}
	}
	return links, nil
}

func fuzzyLinks(p *page, c Context) (LinkSet, error) {
	terms := SplitTerms(c.Filter)
	if len(terms) == 0 {
		return p.anchors(nil), nil
	}

	threshold := c.Threshold
	if threshold <= 0 {
		threshold = constant.DefaultFuzzyThreshold
	}

	return p.anchors(func(href string) bool {
		href = strings.ToLower(href)
		for _, term := range terms {
			if PartialRatio(href, term) >= threshold {
				return true
			}
		}
		return false
	}), nil
}

// ExactMatch is the MaxEdits value for a regex mode that tolerates no edits.
const ExactMatch = -1

// EditBudget maps a MaxEdits setting to the number of edits the regex mode allows.
func EditBudget(maxEdits int) int {
	switch {
	case maxEdits == 0:
		return constant.DefaultMaxEdits
	case maxEdits < 0:
		return 0
	default:
		return maxEdits
	}
}

func regexLinks(p *page, c Context) (LinkSet, error) {
	re, err := approx.Compile(c.Filter, EditBudget(c.MaxEdits), true)
	if err != nil {
		return nil, &ParseError{Pattern: c.Filter, Err: err}
	}
	return p.anchors(re.MatchString), nil
}

var (
	m3u8Pattern = regexp.MustCompile(`https?://[^\s"'<>\\]+?\.m3u8(?:\?[^\s"'<>\\]*)?`)
	mp4Pattern  = regexp.MustCompile(`https?://[^\s"'<>\\]+?\.mp4(?:\?[^\s"'<>\\]*)?`)
)

func mediaLinks(p *page, _ Context) (LinkSet, error) {
	links := NewLinkSet()

	p.doc.Find("iframe[src], video[src], video source[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if abs, ok := resolve(p.base, src); ok {
			links.Add(abs)
		}
	})

	// Inline players often embed JSON with escaped slashes.
	text := strings.ReplaceAll(p.raw, `\/`, `/`)
	for _, pattern := range []*regexp.Regexp{m3u8Pattern, mp4Pattern} {
		for _, match := range pattern.FindAllString(text, -1) {
			if abs, ok := resolve(p.base, match); ok {
				links.Add(abs)
			}
		}
	}

	return links, nil
}
