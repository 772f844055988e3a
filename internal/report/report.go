// Package report writes analysis results to files and the console.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/microdata-labs/hbstat/internal/state"
	"github.com/microdata-labs/hbstat/internal/stats"
)

// Column headers of the category-share output file.
const (
	headerCategory = "Category"
	headerShare    = "Share (%)"
)

// WriteSharesCSV persists the category shares as a two-column CSV file,
// creating the parent directory if absent.
func WriteSharesCSV(path string, shares []stats.CategoryShare) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{headerCategory, headerShare}); err != nil {
		return err
	}
	for _, s := range shares {
		if err := w.Write([]string{s.Category, formatShare(s.Share)}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// SharesTable renders the category shares as a console table.
func SharesTable(w io.Writer, shares []stats.CategoryShare) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{headerCategory, headerShare})
	for _, s := range shares {
		t.AppendRow(table.Row{s.Category, formatShare(s.Share)})
	}
	t.Render()
}

// RunsTable renders recorded runs as a console table, newest first.
func RunsTable(w io.Writer, runs []state.Run) {
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, "(no recorded runs)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Started", "Status", "Households", "Expenses", "Gini", "Bottom 50%"})
	for _, r := range runs {
		gini, bottom := "", ""
		if r.Status == state.RunStatusSuccess {
			gini = strconv.FormatFloat(r.Gini, 'f', 4, 64)
			bottom = formatShare(r.Bottom50)
		}
		t.AppendRow(table.Row{
			shortID(r.ID),
			r.StartedAt.Format("2006-01-02 15:04:05"),
			string(r.Status),
			r.Households,
			r.Expenses,
			gini,
			bottom,
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d runs)\n", len(runs))
}

func formatShare(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
