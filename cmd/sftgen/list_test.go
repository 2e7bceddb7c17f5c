package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestListCmd_Plain(t *testing.T) {
	cmd := newListCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{
		"--sessions-dir", fixtureSessionsDir(),
		"--format", "plain",
		"--quiet",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list command returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 sessions, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "alpha\t6\t2\tdo X") {
		t.Fatalf("unexpected alpha row: %s", lines[1])
	}
	if !strings.Contains(lines[2], "beta\t2\t1\thi") {
		t.Fatalf("unexpected beta row: %s", lines[2])
	}
}

func TestInfoCmd_JSON(t *testing.T) {
	cmd := newInfoCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{
		"alpha",
		"--sessions-dir", fixtureSessionsDir(),
		"--format", "json",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("info command returned error: %v", err)
	}

	var payload infoPayload
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("info output is not valid json: %v\n%s", err, out.String())
	}
	if payload.SessionID != "alpha" {
		t.Fatalf("unexpected session id: %s", payload.SessionID)
	}
	if payload.RecordCount != 6 || payload.TurnCount != 2 {
		t.Fatalf("unexpected counts: %+v", payload)
	}
	if payload.UserMessages != 2 || payload.AiResponses != 3 || payload.ToolCalls != 1 {
		t.Fatalf("unexpected per-kind counts: %+v", payload)
	}
	if payload.FirstUserText != "do X" {
		t.Fatalf("unexpected first user text: %q", payload.FirstUserText)
	}
}

func TestInfoCmd_SessionNotFound(t *testing.T) {
	cmd := newInfoCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"nope", "--sessions-dir", fixtureSessionsDir()})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("missing session must not be a command error: %v", err)
	}
	if !strings.Contains(errOut.String(), `session "nope" not found`) {
		t.Fatalf("missing session should be reported: %s", errOut.String())
	}
}
