package extract

import (
	"math"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// PartialRatio scores (0-100) how well the shorter of a and b fits inside the
// longer one. Every window of the longer string with the shorter one's length
// is scored as 100 * (1 - distance / length), and the best window wins.
func PartialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	needle := string(short)
	if strings.Contains(string(long), needle) {
		return 100
	}

	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		d := levenshtein.Distance(needle, string(long[i:i+len(short)]))
		score := int(math.Round(100 * (1 - float64(d)/float64(len(short)))))
		best = lo.Max([]int{best, score})
	}

	return lo.Clamp(best, 0, 100)
}

// SplitTerms splits a filter string on "|" and "," into lowercase keywords.
func SplitTerms(filter string) []string {
	parts := strings.FieldsFunc(filter, func(r rune) bool {
		return r == '|' || r == ','
	})

	terms := lo.FilterMap(parts, func(p string, _ int) (string, bool) {
		p = strings.ToLower(strings.TrimSpace(p))
		return p, p != ""
	})
	return lo.Uniq(terms)
}
