package constant

import "time"

// Scraping defaults shared by the core and the configuration registry.
const (
	DefaultMaxPages       = 100
	DefaultPagesCeiling   = 100
	DefaultTimeout        = 10 * time.Second
	DefaultFuzzyThreshold = 80
	DefaultMaxEdits       = 1
)
