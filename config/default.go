package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"github.com/pagelinks/pagelinks/color"
	"github.com/pagelinks/pagelinks/constant"
	"github.com/pagelinks/pagelinks/key"
	"github.com/pagelinks/pagelinks/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a setting with its default value and help text.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for "config info".
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable overriding the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

type fieldJSON struct {
	Key         string `json:"key"`
	Value       any    `json:"value"`
	Default     any    `json:"default"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Env         string `json:"env"`
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldJSON{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        reflect.TypeOf(f.Value).String(),
		Env:         f.Env(),
	})
}

// Default maps every key to its field.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PagesDefault, constant.DefaultMaxPages, "Pages to walk per seed URL when --pages is not given")
	register(key.PagesCeiling, constant.DefaultPagesCeiling, "Upper bound for pages per seed URL.\nLarger requests are clamped to this value")
	register(key.NetworkTimeout, int(constant.DefaultTimeout.Seconds()), "Timeout of a single page request, in seconds")
	register(key.NetworkFingerprint, false, "Send requests with a Chrome TLS fingerprint.\nHelps with CDNs that reject Go's default handshake")
	register(key.ScrapeMode, "all", "Default extraction mode.\nAvailable options are: all, episode, episode-prefix, fuzzy, regex, media")
	register(key.ScrapeWorkers, 1, "Seed URLs scraped concurrently. 1 keeps the run fully sequential")
	register(key.ScrapeFormat, "csv", "Export format used with --output.\nAvailable options are: csv, json")
	register(key.FilterFuzzyThreshold, constant.DefaultFuzzyThreshold, "Minimum partial-ratio score (0-100) for the fuzzy mode to keep a link")
	register(key.FilterMaxEdits, constant.DefaultMaxEdits, "Edits (substitution, insertion, deletion) tolerated by the regex mode")
	register(key.SearchShowQuerySuggestions, true, "Suggest previous search queries in shell completion")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Check for a newer release when printing help")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    viper.Get,
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl":       highlight,
}).Parse(`{{ purple .Key }} {{ faint (typename .Value) }}
{{ faint .Description }}
  {{ blue "value" }}    {{ hl (value .Key) }}
  {{ blue "default" }}  {{ hl .Value }}
  {{ blue "env" }}      {{ cyan .Env }}`))

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)("true")
		}
		return style.Fg(color.Red)("false")
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	default:
		return fmt.Sprint(value)
	}
}
