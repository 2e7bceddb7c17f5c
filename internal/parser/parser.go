// Package parser decodes agent conversation JSONL into typed log records.
package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sftgen/internal/model"
)

// Result holds the decoded records of one session in input order, along
// with a non-fatal warning per line that failed structural decoding.
type Result struct {
	Records  []model.Record
	Warnings []error
}

// ParseFile decodes the session log at path. A malformed line never aborts
// the rest of the file; only I/O failures are returned as errors.
func ParseFile(path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open session file: %w", err)
	}
	defer file.Close()

	res, err := Parse(file)
	if err != nil {
		return res, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}

// Parse decodes one JSONL record per line from r. Empty lines are skipped
// silently; lines that fail to decode are skipped with a warning.
func Parse(r io.Reader) (Result, error) {
	var res Result

	scanner := newScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		res.Records = append(res.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan records: %w", err)
	}

	return res, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// Allow large payloads such as pasted file contents or tool output.
	const maxCapacity = 8 * 1024 * 1024
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxCapacity)
	return scanner
}

type rawToolCall struct {
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

type rawRecord struct {
	Timestamp  string          `json:"timestamp"`
	SessionID  string          `json:"session_id"`
	Type       string          `json:"type"`
	Mode       string          `json:"mode"`
	Content    string          `json:"content"`
	ToolCalls  []rawToolCall   `json:"tool_calls"`
	ToolName   string          `json:"tool_name"`
	Parameters json.RawMessage `json:"parameters"`
	Result     json.RawMessage `json:"result"`
}

func parseRecord(raw []byte) (model.Record, error) {
	var rec rawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}

	out := model.Record{
		Timestamp: rec.Timestamp,
		SessionID: rec.SessionID,
		Mode:      rec.Mode,
		Kind:      model.RecordKind(rec.Type),
	}

	switch out.Kind {
	case model.KindUserMessage:
		out.User = &model.UserMessage{Content: rec.Content}
	case model.KindAiResponse:
		ai := &model.AiResponse{Content: rec.Content}
		for _, call := range rec.ToolCalls {
			ai.ToolCalls = append(ai.ToolCalls, model.ToolCallSpec{
				Name:  call.Name,
				Input: call.Input,
			})
		}
		out.AI = ai
	case model.KindToolCall:
		out.Tool = &model.ToolCall{
			ToolName:   rec.ToolName,
			Parameters: rec.Parameters,
			Result:     rec.Result,
		}
	default:
		return model.Record{}, fmt.Errorf("unknown record type %q", rec.Type)
	}

	return out, nil
}
