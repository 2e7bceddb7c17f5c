package main

import (
	"os"
	"strings"

	"sftgen/internal/format"
	"sftgen/internal/model"
	"sftgen/internal/parser"
	"sftgen/internal/segment"
	"sftgen/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newListCmd() *cobra.Command {
	var (
		sessionsDir  string
		recent       int
		formatFlag   string
		noHeader     bool
		summaryWidth int
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List session logs found in the sessions directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionsDir == "" {
				sessionsDir = defaultSessionsDir()
			}

			result, err := store.ListSessions(store.ListOptions{
				Root:   sessionsDir,
				Recent: recent,
			})
			if err != nil {
				return err
			}

			warn := newWarnFunc(cmd.ErrOrStderr(), quiet)
			for _, w := range result.Warnings {
				warn(w)
			}

			summaries := make([]format.SessionSummary, 0, len(result.Sessions))
			for _, sess := range result.Sessions {
				summary := summarizeSession(sess, summaryWidth, warn)
				summaries = append(summaries, summary)
			}

			width := 0
			if out, ok := cmd.OutOrStdout().(*os.File); ok {
				if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
					width = w
				}
			}

			return format.WriteSummaries(cmd.OutOrStdout(), summaries, !noHeader, strings.ToLower(formatFlag), width)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&sessionsDir, "sessions-dir", "", "directory containing session JSONL files")
	flags.IntVar(&recent, "recent", 0, "show only the N most recently modified sessions (0 means all)")
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, json, or jsonl")
	flags.BoolVar(&noHeader, "no-header", false, "omit header row for plain output")
	flags.IntVar(&summaryWidth, "summary-width", 80, "maximum characters included in the summary column")
	flags.BoolVar(&quiet, "quiet", false, "suppress non-fatal warnings")

	return cmd
}

func summarizeSession(sess store.Session, summaryWidth int, warn func(error)) format.SessionSummary {
	summary := format.SessionSummary{
		ID:         sess.ID,
		Path:       sess.Path,
		ModifiedAt: sess.ModTime,
	}

	parsed, err := parser.ParseFile(sess.Path)
	if err != nil {
		warn(err)
		return summary
	}
	for _, w := range parsed.Warnings {
		warn(w)
	}

	summary.RecordCount = len(parsed.Records)
	summary.TurnCount = len(segment.Split(parsed.Records))
	summary.Summary = clipText(firstUserMessage(parsed.Records), summaryWidth)
	return summary
}

func firstUserMessage(records []model.Record) string {
	for _, rec := range records {
		if rec.Kind == model.KindUserMessage && rec.User.Content != "" {
			return collapseWhitespace(rec.User.Content)
		}
	}
	return ""
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(text)), " ")
}

func clipText(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
