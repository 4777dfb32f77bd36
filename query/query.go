// Package query keeps the history of site search queries and suggests
// previous ones for completion.
package query

import (
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/pagelinks/pagelinks/filesystem"
	"github.com/pagelinks/pagelinks/key"
	"github.com/pagelinks/pagelinks/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Query    string    `json:"query"`
	Uses     int       `json:"uses"`
	LastUsed time.Time `json:"last_used"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// memoized suggestions, dropped whenever the history changes
var suggestions = make(map[string][]string)

func load() map[string]*record {
	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return make(map[string]*record)
	}
	return cached
}

// Remember stores q in the history, or bumps its use count if it is already there.
func Remember(q string) error {
	q = normalize(q)
	if q == "" {
		return nil
	}

	history := load()
	if r, ok := history[q]; ok {
		r.Uses++
		r.LastUsed = time.Now()
	} else {
		history[q] = &record{Query: q, Uses: 1, LastUsed: time.Now()}
	}

	suggestions = make(map[string][]string)
	return cacher.Set(history)
}

// Forget removes q from the history.
func Forget(q string) error {
	history := load()
	delete(history, normalize(q))
	suggestions = make(map[string][]string)
	return cacher.Set(history)
}

// Suggest returns the best previous query for the partial input q.
func Suggest(q string) mo.Option[string] {
	return mo.TupleToOption(lo.First(SuggestMany(q)))
}

// SuggestMany returns previous queries fuzzily matching q, most used first.
// Ties go to the most recent query.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = normalize(q)
	if prev, ok := suggestions[q]; ok {
		return prev
	}

	matches := lo.Filter(lo.Values(load()), func(r *record, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})

	slices.SortFunc(matches, func(a, b *record) int {
		if a.Uses != b.Uses {
			return b.Uses - a.Uses
		}
		return b.LastUsed.Compare(a.LastUsed)
	})

	result := lo.Map(matches, func(r *record, _ int) string {
		return r.Query
	})
	suggestions[q] = result
	return result
}

func normalize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
