package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sftgen/internal/schema"
	"sftgen/internal/store"
)

func fixtureSessionsDir() string {
	return filepath.Join("..", "..", "testdata", "sessions")
}

func fixtureSession(id string) store.Session {
	return store.Session{
		ID:   id,
		Path: filepath.Join(fixtureSessionsDir(), id+".jsonl"),
	}
}

func collectWarnings(warnings *[]error) func(error) {
	return func(err error) { *warnings = append(*warnings, err) }
}

func TestConvertSession_OpenAI(t *testing.T) {
	outDir := t.TempDir()
	var warnings []error

	count, err := convertSession(fixtureSession("alpha"), schema.VariantOpenAI, outDir, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("convertSession returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 examples, got %d", count)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "openai_alpha.jsonl"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(lines))
	}

	want := `{"messages":[{"role":"user","content":"do X"},` +
		`{"role":"assistant","content":null,"tool_calls":[{"id":"call_0","type":"function","function":{"name":"run","arguments":"{\"a\":1}"}}]},` +
		`{"role":"tool","content":"ok","tool_call_id":"call_0","name":"run"},` +
		`{"role":"assistant","content":"done"}]}`
	if lines[0] != want {
		t.Fatalf("unexpected first example:\n got: %s\nwant: %s", lines[0], want)
	}

	want = `{"messages":[{"role":"user","content":"thanks"},{"role":"assistant","content":"any time"}]}`
	if lines[1] != want {
		t.Fatalf("unexpected second example:\n got: %s\nwant: %s", lines[1], want)
	}
}

func TestConvertSession_Gemini(t *testing.T) {
	outDir := t.TempDir()
	var warnings []error

	count, err := convertSession(fixtureSession("alpha"), schema.VariantGemini, outDir, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("convertSession returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 examples, got %d", count)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "gemini_alpha.jsonl"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	want := `{"messages":[{"role":"user","parts":[{"text":"do X"}]},` +
		`{"role":"model","parts":[{"tool_code":{"name":"run","args":{"a":1}}}]},` +
		`{"role":"tool","parts":[{"tool_result":{"name":"run","response":"ok"}}]},` +
		`{"role":"model","parts":[{"text":"done"}]}]}`
	if lines[0] != want {
		t.Fatalf("unexpected first example:\n got: %s\nwant: %s", lines[0], want)
	}
}

func TestConvertSession_MalformedLineWarnsAndContinues(t *testing.T) {
	outDir := t.TempDir()
	var warnings []error

	count, err := convertSession(fixtureSession("beta"), schema.VariantOpenAI, outDir, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("convertSession returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 example, got %d", count)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0].Error(), "beta: line 2") {
		t.Fatalf("warning should name session and line: %v", warnings[0])
	}
}

func TestConvertCmd_EndToEnd(t *testing.T) {
	outDir := t.TempDir()

	cmd := newConvertCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{
		"--schema", "openai",
		"--sessions-dir", fixtureSessionsDir(),
		"--out-dir", outDir,
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert command returned error: %v", err)
	}

	if got := out.String(); !strings.Contains(got, "accepted 3 examples from 2 sessions") {
		t.Fatalf("unexpected summary output: %s", got)
	}
	if !strings.Contains(errOut.String(), "warning:") {
		t.Fatalf("expected malformed-line warning on stderr: %s", errOut.String())
	}

	if _, err := os.Stat(filepath.Join(outDir, "openai_alpha.jsonl")); err != nil {
		t.Fatalf("alpha dataset missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "openai_beta.jsonl")); err != nil {
		t.Fatalf("beta dataset missing: %v", err)
	}
}

func TestConvertCmd_SessionNotFoundIsNotAnError(t *testing.T) {
	cmd := newConvertCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{
		"--schema", "gemini",
		"--sessions-dir", fixtureSessionsDir(),
		"--out-dir", t.TempDir(),
		"--session", "nope",
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("missing session must not be a command error: %v", err)
	}
	if !strings.Contains(errOut.String(), `session "nope" not found`) {
		t.Fatalf("missing session should be reported: %s", errOut.String())
	}
}

func TestConvertCmd_RejectsUnknownSchema(t *testing.T) {
	cmd := newConvertCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--schema", "anthropic",
		"--sessions-dir", fixtureSessionsDir(),
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
	})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unsupported schema")
	}
}

func TestCollapseWhitespace(t *testing.T) {
	text := "  line one\n\nline\t two  "
	if got := collapseWhitespace(text); got != "line one line two" {
		t.Fatalf("collapseWhitespace failed: %q", got)
	}
}

func TestClipText(t *testing.T) {
	if got := clipText("abcdef", 3); got != "ab…" {
		t.Fatalf("clipText unexpected result: %q", got)
	}
	if got := clipText("short", 10); got != "short" {
		t.Fatalf("clipText should not alter short text: %q", got)
	}
	if got := clipText("anything", 0); got != "anything" {
		t.Fatalf("zero width means no clipping: %q", got)
	}
}

func TestNewWarnFunc_Quiet(t *testing.T) {
	var buf bytes.Buffer
	warn := newWarnFunc(&buf, true)
	warn(os.ErrInvalid)
	if buf.Len() != 0 {
		t.Fatalf("quiet mode must suppress warnings: %s", buf.String())
	}

	warn = newWarnFunc(&buf, false)
	warn(os.ErrInvalid)
	if !strings.Contains(buf.String(), "warning:") {
		t.Fatalf("expected warning line: %s", buf.String())
	}
}
