package cmd

import (
	"fmt"
	"os"

	"github.com/pagelinks/pagelinks/color"
	"github.com/pagelinks/pagelinks/export"
	"github.com/pagelinks/pagelinks/harvest"
	"github.com/pagelinks/pagelinks/icon"
	"github.com/pagelinks/pagelinks/key"
	"github.com/pagelinks/pagelinks/open"
	"github.com/pagelinks/pagelinks/style"
	"github.com/pagelinks/pagelinks/table"
	"github.com/pagelinks/pagelinks/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// writeReport sends rows to a file, to stdout as CSV when piped, or to a table.
func writeReport(cmd *cobra.Command, report *harvest.Report, s *scrapeSettings) error {
	format, err := export.ParseFormat(viper.GetString(key.ScrapeFormat))
	if err != nil {
		return err
	}
	options := export.Options{Format: format, Query: s.search}

	path := lo.Must(cmd.Flags().GetString("output"))
	if lo.Must(cmd.Flags().GetBool("save")) {
		path = export.DefaultPath(report, format)
	}

	if path == "" {
		if !util.IsTerminal(os.Stdout) {
			return export.Write(os.Stdout, report, options)
		}
		printTable(report)
		return nil
	}

	if err := export.ToFile(path, report, options); err != nil {
		return err
	}
	fmt.Printf("%s wrote %s to %s\n", icon.Get(icon.Success), util.Quantify(len(report.Rows), "row", "rows"), path)

	if lo.Must(cmd.Flags().GetBool("open")) {
		return open.Start(path)
	}
	return nil
}

func printTable(report *harvest.Report) {
	if len(report.Rows) == 0 {
		fmt.Println(style.Faint("no links found"))
		return
	}

	t := table.New("Source", "Link", "Error")
	t.Highlight = func(row []string, cell string) string {
		if row[2] != "" {
			return style.Fg(color.Red)(cell)
		}
		return cell
	}

	for _, record := range export.Records(report.Rows) {
		t.Append(record.SourceURL, record.ExtractedLink, record.Error)
	}

	width, _, err := util.TerminalSize()
	if err != nil {
		width = 0
	}
	fmt.Println(t.Render(width))
}
