// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 16

// Pagination - these keys bound how far the driver walks the synthetic page scheme.
const (
	PagesDefault = "pages.default"
	PagesCeiling = "pages.ceiling"
)

// Network - these keys configure the page fetcher transport.
const (
	NetworkTimeout     = "network.timeout"
	NetworkFingerprint = "network.fingerprint"
)

// Scrape defaults - these keys pick the extraction strategy and output shape when flags are omitted.
const (
	ScrapeMode    = "scrape.mode"
	ScrapeWorkers = "scrape.workers"
	ScrapeFormat  = "scrape.format"
)

// Filters - these keys tune the fuzzy and approximate-regex strategies.
const (
	FilterFuzzyThreshold = "filter.fuzzy_threshold"
	FilterMaxEdits       = "filter.max_edits"
)

// Search Interaction - these keys define the behaviour of search mode history.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
