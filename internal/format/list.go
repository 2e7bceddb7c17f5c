// Package format renders session summaries for the list and info commands.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SessionSummary describes one discovered session log for display.
type SessionSummary struct {
	ID          string    `json:"session_id"`
	Path        string    `json:"path"`
	ModifiedAt  time.Time `json:"modified_at"`
	RecordCount int       `json:"record_count"`
	TurnCount   int       `json:"turn_count"`
	Summary     string    `json:"summary"`
}

// WriteSummaries writes session summaries to w in the requested format.
func WriteSummaries(w io.Writer, items []SessionSummary, includeHeader bool, format string, maxWidth int) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeSummariesTable(w, items, includeHeader, maxWidth)
	case "plain":
		return writeSummariesPlain(w, items, includeHeader)
	case "json":
		return writeSummariesJSON(w, items)
	case "jsonl":
		return writeSummariesJSONL(w, items)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeSummariesPlain(w io.Writer, items []SessionSummary, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "modified\tsession_id\trecords\tturns\tsummary"); err != nil {
			return err
		}
	}

	for _, item := range items {
		line := fmt.Sprintf(
			"%s\t%s\t%d\t%d\t%s",
			item.ModifiedAt.Format(time.RFC3339),
			item.ID,
			item.RecordCount,
			item.TurnCount,
			escapeNewlines(item.Summary),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeSummariesJSON(w io.Writer, items []SessionSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func writeSummariesJSONL(w io.Writer, items []SessionSummary) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

func writeSummariesTable(w io.Writer, items []SessionSummary, includeHeader bool, maxWidth int) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = true
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 80},
	})
	if maxWidth > 0 {
		tw.SetAllowedRowLength(maxWidth)
	}

	if includeHeader {
		tw.AppendHeader(table.Row{"Modified", "Session ID", "Records", "Turns", "Summary"})
	}

	for _, item := range items {
		tw.AppendRow(table.Row{
			item.ModifiedAt.Format(time.RFC3339),
			item.ID,
			item.RecordCount,
			item.TurnCount,
			escapeNewlines(item.Summary),
		})
	}

	if len(items) == 0 {
		tw.AppendRow(table.Row{"-", "(no sessions)", 0, 0, "-"})
	}

	_ = tw.Render()
	return nil
}

func escapeNewlines(text string) string {
	return strings.ReplaceAll(text, "\n", "\\n")
}
