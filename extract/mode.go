package extract

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Mode selects the link extraction strategy.
type Mode int

const (
	// AllLinks keeps every anchor.
	AllLinks Mode = iota
	// EpisodeLinks keeps anchors whose href matches "-episod-<digits>".
	EpisodeLinks
	// EpisodePrefixLinks keeps anchors resolving under the seed slug followed by "-".
	EpisodePrefixLinks
	// FuzzyFiltered keeps anchors whose href partially matches a filter term.
	FuzzyFiltered
	// RegexApprox keeps anchors whose href approximately matches a regular expression.
	RegexApprox
	// PlayerMedia collects iframe, video sources and inline .m3u8/.mp4 URLs.
	PlayerMedia
)

var modeNames = []string{
	AllLinks:           "all",
	EpisodeLinks:       "episode",
	EpisodePrefixLinks: "episode-prefix",
	FuzzyFiltered:      "fuzzy",
	RegexApprox:        "regex",
	PlayerMedia:        "media",
}

// Modes lists the names accepted by ParseMode.
func Modes() []string {
	return append([]string(nil), modeNames...)
}

// ParseMode maps a mode name to its Mode.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := lo.IndexOf(modeNames, name); i >= 0 {
		return Mode(i), nil
	}
	return 0, fmt.Errorf("unknown mode %q, expected one of %s", name, strings.Join(modeNames, ", "))
}

func (m Mode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(modeNames)
}

// Paginates reports whether the driver walks past the first page for m.
func (m Mode) Paginates() bool {
	return m != PlayerMedia
}

// SlugRelative reports whether pages are addressed as domain + slug + "/page/{n}/".
func (m Mode) SlugRelative() bool {
	return m == EpisodePrefixLinks
}

// TakesFilter reports whether m reads the user filter string.
func (m Mode) TakesFilter() bool {
	return m == FuzzyFiltered || m == RegexApprox
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
