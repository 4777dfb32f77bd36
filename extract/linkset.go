package extract

import (
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// LinkSet is a set of absolute URLs.
type LinkSet map[string]struct{}

// NewLinkSet returns a set holding links.
func NewLinkSet(links ...string) LinkSet {
	s := make(LinkSet, len(links))
	for _, l := range links {
		s.Add(l)
	}
	return s
}

func (s LinkSet) Add(link string) {
	s[link] = struct{}{}
}

func (s LinkSet) Has(link string) bool {
	_, ok := s[link]
	return ok
}

func (s LinkSet) Len() int {
	return len(s)
}

// Merge adds every link of other and returns how many were new.
func (s LinkSet) Merge(other LinkSet) int {
	added := 0
	for l := range other {
		if !s.Has(l) {
			s.Add(l)
			added++
		}
	}
	return added
}

// Sorted returns the links in ascending lexicographic order.
func (s LinkSet) Sorted() []string {
	links := lo.Keys(s)
	slices.Sort(links)
	return links
}
