package export

import (
	"fmt"
	"strings"
)

// Format is the encoding of an export file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatJSON}

// ParseFormat accepts a format name in any case.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q, expected csv or json", name)
	}
}

// Extension returns the file extension, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}
