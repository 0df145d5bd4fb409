package cmd

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/report"
)

var (
	exportFormat string
	exportOut    string
	exportDate   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a week of shifts and its compliance summary",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md, pdf")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().StringVar(&exportDate, "week", "", "Day inside the week to export (default today)")
}

// weekExport is the JSON export document.
type weekExport struct {
	Entries []model.ShiftEntry     `json:"entries"`
	Summary compliance.WeekSummary `json:"summary"`
}

func runExport(cmd *cobra.Command, args []string) error {
	day, err := parseDay(exportDate)
	if err != nil {
		return err
	}
	write, err := exporter(exportFormat)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	entries, w, err := e.week(day)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return ioError(err)
		}
		defer f.Close()
		out = f
	} else if exportFormat == "pdf" {
		return fmt.Errorf("--out is required for pdf export")
	}

	if err := write(out, e.engine.Annotate(entries), w); err != nil {
		return ioError(err)
	}
	if exportOut != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", exportOut)
	}
	return nil
}

type exportFunc func(io.Writer, []model.ShiftEntry, compliance.WeekSummary) error

func exporter(format string) (exportFunc, error) {
	switch format {
	case "csv":
		return func(w io.Writer, entries []model.ShiftEntry, _ compliance.WeekSummary) error {
			return report.EntriesCSV(w, entries)
		}, nil
	case "json":
		return func(w io.Writer, entries []model.ShiftEntry, s compliance.WeekSummary) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(weekExport{Entries: entries, Summary: s})
		}, nil
	case "md":
		return func(w io.Writer, entries []model.ShiftEntry, s compliance.WeekSummary) error {
			if err := report.WeekMarkdown(w, s); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n## Saisies\n\n"); err != nil {
				return err
			}
			return report.EntriesMarkdown(w, entries)
		}, nil
	case "pdf":
		return func(w io.Writer, _ []model.ShiftEntry, s compliance.WeekSummary) error {
			return report.WeekPDF(w, s)
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want csv, json, md or pdf)", format)
}
