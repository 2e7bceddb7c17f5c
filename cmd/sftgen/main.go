package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sftgen",
	Short: "Convert agent conversation logs into fine-tuning datasets",
}

func init() {
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInfoCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sftgen: %v\n", err)
		os.Exit(1)
	}
}

func defaultSessionsDir() string {
	if dir := os.Getenv("SFTGEN_SESSIONS_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".agent", "sessions")
}

// newWarnFunc returns the non-fatal warning channel: one line per warning
// on stderr, yellow when stderr is a terminal, silenced by --quiet or the
// SFTGEN_QUIET environment variable.
func newWarnFunc(errs io.Writer, quiet bool) func(error) {
	if quiet || os.Getenv("SFTGEN_QUIET") != "" {
		return func(error) {}
	}
	colored := shouldUseColorAuto(errs)
	return func(err error) {
		if colored {
			fmt.Fprintf(errs, "%swarning:%s %v\n", ansiWarning, ansiReset, err)
			return
		}
		fmt.Fprintf(errs, "warning: %v\n", err)
	}
}

const (
	ansiReset   = "\x1b[0m"
	ansiWarning = "\x1b[33m"
)

func shouldUseColorAuto(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
