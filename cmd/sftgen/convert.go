package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sftgen/internal/config"
	"sftgen/internal/dataset"
	"sftgen/internal/parser"
	"sftgen/internal/schema"
	"sftgen/internal/segment"
	"sftgen/internal/store"

	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		schemaFlag  string
		sessionsDir string
		outDir      string
		sessionID   string
		recent      int
		configPath  string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert session logs into a fine-tuning dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(resolveConfigPath(configPath))
			if err != nil {
				return err
			}
			if schemaFlag == "" {
				schemaFlag = cfg.Schema
			}
			if schemaFlag == "" {
				schemaFlag = string(schema.VariantGemini)
			}
			if sessionsDir == "" {
				sessionsDir = cfg.SessionsDir
			}
			if sessionsDir == "" {
				sessionsDir = defaultSessionsDir()
			}
			if outDir == "" {
				outDir = cfg.OutDir
			}
			if outDir == "" {
				outDir = "."
			}

			variant, err := schema.ParseVariant(schemaFlag)
			if err != nil {
				return err
			}

			result, err := store.ListSessions(store.ListOptions{
				Root:    sessionsDir,
				Session: sessionID,
				Recent:  recent,
			})
			if errors.Is(err, store.ErrSessionNotFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "session %q not found under %s\n", sessionID, sessionsDir)
				return nil
			}
			if err != nil {
				return err
			}

			warn := newWarnFunc(cmd.ErrOrStderr(), quiet)
			for _, w := range result.Warnings {
				warn(w)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			total := 0
			for _, sess := range result.Sessions {
				count, err := convertSession(sess, variant, outDir, warn)
				if err != nil {
					return err
				}
				total += count
			}

			fmt.Fprintf(cmd.OutOrStdout(), "accepted %d examples from %d sessions\n", total, len(result.Sessions))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&schemaFlag, "schema", "", "target schema: gemini or openai (default gemini)")
	flags.StringVar(&sessionsDir, "sessions-dir", "", "directory containing session JSONL files")
	flags.StringVar(&outDir, "out-dir", "", "directory for generated dataset files (default current directory)")
	flags.StringVar(&sessionID, "session", "", "convert only the session with this id")
	flags.IntVar(&recent, "recent", 0, "convert only the N most recently modified sessions (0 means all)")
	flags.StringVar(&configPath, "config", "", "path to config file (default ~/.sftgen.yaml)")
	flags.BoolVar(&quiet, "quiet", false, "suppress non-fatal warnings")

	return cmd
}

// convertSession runs the pipeline for one session file and returns the
// number of accepted examples. Conversion within a session is strictly
// sequential: turn boundaries and tool-call identifiers depend on record
// order.
func convertSession(sess store.Session, variant schema.Variant, outDir string, warn func(error)) (int, error) {
	parsed, err := parser.ParseFile(sess.Path)
	if err != nil {
		return 0, err
	}
	for _, w := range parsed.Warnings {
		warn(fmt.Errorf("%s: %w", sess.ID, w))
	}

	convert := schema.For(variant)

	var examples []any
	for _, turn := range segment.Split(parsed.Records) {
		if example, ok := convert(turn); ok {
			examples = append(examples, example)
		}
	}
	if len(examples) == 0 {
		return 0, nil
	}

	path := filepath.Join(outDir, dataset.FileName(variant, sess.ID))
	if err := dataset.Write(path, examples); err != nil {
		return 0, err
	}
	return len(examples), nil
}

func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return config.DefaultPath()
}
