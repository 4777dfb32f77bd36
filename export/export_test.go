package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pagelinks/pagelinks/extract"
	"github.com/pagelinks/pagelinks/filesystem"
	"github.com/pagelinks/pagelinks/harvest"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleReport() *harvest.Report {
	return &harvest.Report{
		RunID: "2f1c0d5e-run",
		Mode:  extract.FuzzyFiltered,
		Rows: []harvest.Row{
			{Seed: "https://a.test/", Link: "https://a.test/one"},
			{Seed: "https://a.test/", Link: `https://a.test/q?x=1,2&t="y"`},
			{Seed: "https://b.test/", Err: errors.New("GET https://b.test/: 404 Not Found")},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	Convey("Given a report with an error row", t, func() {
		var buf bytes.Buffer
		So(Write(&buf, sampleReport(), Options{Format: FormatCSV}), ShouldBeNil)
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

		Convey("The header comes first", func() {
			So(lines[0], ShouldEqual, "SourceURL,ExtractedLink,Error")
		})

		Convey("Each row has three columns and commas or quotes are escaped", func() {
			So(lines, ShouldHaveLength, 4)
			So(lines[1], ShouldEqual, "https://a.test/,https://a.test/one,")
			So(lines[2], ShouldEqual, `https://a.test/,"https://a.test/q?x=1,2&t=""y""",`)
			So(lines[3], ShouldEqual, "https://b.test/,,GET https://b.test/: 404 Not Found")
		})
	})
}

func TestWriteJSON(t *testing.T) {
	Convey("Given a report", t, func() {
		var buf bytes.Buffer
		So(Write(&buf, sampleReport(), Options{Format: FormatJSON, Query: "one"}), ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)

		Convey("Run metadata is kept", func() {
			So(output.RunID, ShouldEqual, "2f1c0d5e-run")
			So(output.Mode, ShouldEqual, "fuzzy")
			So(output.Query, ShouldEqual, "one")
			So(output.GeneratedAt.IsZero(), ShouldBeFalse)
		})

		Convey("Rows keep their order and errors", func() {
			So(output.Rows, ShouldHaveLength, 3)
			So(output.Rows[0], ShouldResemble, Record{SourceURL: "https://a.test/", ExtractedLink: "https://a.test/one"})
			So(output.Rows[2].ExtractedLink, ShouldBeEmpty)
			So(output.Rows[2].Error, ShouldContainSubstring, "404")
		})
	})
}

func TestToFile(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		path := filepath.Join("out", "nested", "links.csv")

		Convey("Missing directories are created", func() {
			So(ToFile(path, sampleReport(), Options{Format: FormatCSV}), ShouldBeNil)
			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldStartWith, "SourceURL,ExtractedLink,Error\n")
		})

		Convey("Default paths are named after the run", func() {
			p := DefaultPath(sampleReport(), FormatJSON)
			So(filepath.Base(p), ShouldEqual, "pagelinks-fuzzy-2f1c0d5e-run.json")
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Formats parse case-insensitively", t, func() {
		f, err := ParseFormat(" JSON ")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, FormatJSON)
		So(f.Extension(), ShouldEqual, ".json")

		_, err = ParseFormat("xml")
		So(err, ShouldNotBeNil)
	})
}

func TestSchema(t *testing.T) {
	Convey("The schema describes the json document", t, func() {
		data, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "run_id")
		So(string(data), ShouldContainSubstring, "extracted_link")
	})
}
