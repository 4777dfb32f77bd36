// Package export writes harvest rows as CSV or JSON.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/pagelinks/pagelinks/constant"
	"github.com/pagelinks/pagelinks/filesystem"
	"github.com/pagelinks/pagelinks/harvest"
	"github.com/pagelinks/pagelinks/log"
	"github.com/pagelinks/pagelinks/util"
	"github.com/pagelinks/pagelinks/where"
)

// Header is the first line of every CSV export.
var Header = []string{"SourceURL", "ExtractedLink", "Error"}

// Options tells Write how to encode a report.
type Options struct {
	Format Format
	// Query is recorded in JSON exports of site searches.
	Query string
}

// Write encodes report to out.
func Write(out io.Writer, report *harvest.Report, options Options) error {
	switch options.Format {
	case FormatCSV:
		return writeCSV(out, report.Rows)
	case FormatJSON:
		data, err := asJSON(report, options.Query, time.Now())
		if err != nil {
			return err
		}
		_, err = out.Write(append(data, '\n'))
		return err
	default:
		return fmt.Errorf("unknown format %q", options.Format)
	}
}

func writeCSV(out io.Writer, rows []harvest.Row) error {
	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return err
	}

	for _, record := range Records(rows) {
		if err := w.Write([]string{record.SourceURL, record.ExtractedLink, record.Error}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ToFile writes report to path, creating parent directories as needed.
func ToFile(path string, report *harvest.Report, options Options) error {
	file, err := filesystem.CreateAll(path)
	if err != nil {
		return err
	}
	defer util.Ignore(file.Close)

	if err := Write(file, report, options); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.Infof("exported %s to %s", util.Quantify(len(report.Rows), "row", "rows"), path)
	return nil
}

// DefaultPath names an export file in the exports directory after the run.
func DefaultPath(report *harvest.Report, format Format) string {
	name := fmt.Sprintf("%s-%s-%s%s", constant.App, report.Mode, report.RunID, format.Extension())
	return filepath.Join(where.Exports(), util.SanitizeFilename(name))
}

// Schema describes the json format.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return "export." + t.Name()
	}
	return reflector.Reflect(&Output{})
}
