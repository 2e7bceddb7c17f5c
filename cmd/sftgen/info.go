package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"sftgen/internal/model"
	"sftgen/internal/parser"
	"sftgen/internal/segment"
	"sftgen/internal/store"

	"github.com/spf13/cobra"
)

type infoPayload struct {
	SessionID     string `json:"session_id"`
	Path          string `json:"path"`
	ModifiedAt    string `json:"modified_at"`
	RecordCount   int    `json:"record_count"`
	UserMessages  int    `json:"user_messages"`
	AiResponses   int    `json:"ai_responses"`
	ToolCalls     int    `json:"tool_calls"`
	TurnCount     int    `json:"turn_count"`
	WarningCount  int    `json:"warning_count"`
	FirstUserText string `json:"first_user_text"`
}

func newInfoCmd() *cobra.Command {
	var (
		sessionsDir string
		formatFlag  string
	)

	cmd := &cobra.Command{
		Use:   "info <session-id>",
		Short: "Show record and turn statistics for one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionsDir == "" {
				sessionsDir = defaultSessionsDir()
			}

			result, err := store.ListSessions(store.ListOptions{
				Root:    sessionsDir,
				Session: args[0],
			})
			if errors.Is(err, store.ErrSessionNotFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "session %q not found under %s\n", args[0], sessionsDir)
				return nil
			}
			if err != nil {
				return err
			}
			sess := result.Sessions[0]

			parsed, err := parser.ParseFile(sess.Path)
			if err != nil {
				return err
			}

			payload := infoPayload{
				SessionID:     sess.ID,
				Path:          sess.Path,
				ModifiedAt:    sess.ModTime.Format(time.RFC3339),
				RecordCount:   len(parsed.Records),
				TurnCount:     len(segment.Split(parsed.Records)),
				WarningCount:  len(parsed.Warnings),
				FirstUserText: collapseWhitespace(firstUserMessage(parsed.Records)),
			}
			for _, rec := range parsed.Records {
				switch rec.Kind {
				case model.KindUserMessage:
					payload.UserMessages++
				case model.KindAiResponse:
					payload.AiResponses++
				case model.KindToolCall:
					payload.ToolCalls++
				}
			}

			switch strings.ToLower(formatFlag) {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			case "", "text":
				renderInfoText(cmd.OutOrStdout(), payload)
				return nil
			default:
				return fmt.Errorf("unsupported format: %s", formatFlag)
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&sessionsDir, "sessions-dir", "", "directory containing session JSONL files")
	flags.StringVar(&formatFlag, "format", "text", "output format: text or json")

	return cmd
}

func renderInfoText(out io.Writer, payload infoPayload) {
	const labelWidth = 14
	writeKV(out, labelWidth, "Session ID", payload.SessionID)
	writeKV(out, labelWidth, "Path", payload.Path)
	writeKV(out, labelWidth, "Modified At", payload.ModifiedAt)
	writeKV(out, labelWidth, "Records", fmt.Sprintf("%d", payload.RecordCount))
	writeKV(out, labelWidth, "User Messages", fmt.Sprintf("%d", payload.UserMessages))
	writeKV(out, labelWidth, "AI Responses", fmt.Sprintf("%d", payload.AiResponses))
	writeKV(out, labelWidth, "Tool Calls", fmt.Sprintf("%d", payload.ToolCalls))
	writeKV(out, labelWidth, "Turns", fmt.Sprintf("%d", payload.TurnCount))
	writeKV(out, labelWidth, "Warnings", fmt.Sprintf("%d", payload.WarningCount))
	writeKV(out, labelWidth, "First Message", payload.FirstUserText)
}

func writeKV(out io.Writer, width int, label string, value string) {
	fmt.Fprintf(out, "%-*s: %s\n", width, label, value)
}
