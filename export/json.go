package export

import (
	"encoding/json"
	"time"

	"github.com/pagelinks/pagelinks/harvest"
	"github.com/samber/lo"
)

// Record is one exported row.
type Record struct {
	SourceURL     string `json:"source_url" jsonschema:"description=Seed URL the link was extracted from."`
	ExtractedLink string `json:"extracted_link,omitempty" jsonschema:"description=Absolute URL of the extracted link. Empty for error rows."`
	Error         string `json:"error,omitempty" jsonschema:"description=Reason the seed produced no links. Empty for link rows."`
}

// Output is the document written by the json format.
type Output struct {
	RunID       string    `json:"run_id" jsonschema:"description=Identifier of the harvest run, also found in the logs."`
	Mode        string    `json:"mode" jsonschema:"enum=all,enum=episode,enum=episode-prefix,enum=fuzzy,enum=regex,enum=media"`
	Query       string    `json:"query,omitempty" jsonschema:"description=Search query when the run was a site search."`
	GeneratedAt time.Time `json:"generated_at"`
	Rows        []Record  `json:"rows"`
}

// Records converts harvest rows to export records.
func Records(rows []harvest.Row) []Record {
	return lo.Map(rows, func(row harvest.Row, _ int) Record {
		record := Record{SourceURL: row.Seed, ExtractedLink: row.Link}
		if row.Err != nil {
			record.Error = row.Err.Error()
		}
		return record
	})
}

func asJSON(report *harvest.Report, query string, now time.Time) ([]byte, error) {
	return json.MarshalIndent(&Output{
		RunID:       report.RunID,
		Mode:        report.Mode.String(),
		Query:       query,
		GeneratedAt: now.UTC(),
		Rows:        Records(report.Rows),
	}, "", "  ")
}
