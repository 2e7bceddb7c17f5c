// Package model defines the typed log records and turns shared by the
// conversion pipeline.
package model

import "encoding/json"

// RecordKind discriminates the variants of a log record. It mirrors the
// "type" field of the JSONL input.
type RecordKind string

const (
	KindUserMessage RecordKind = "user_message"
	KindAiResponse  RecordKind = "ai_response"
	KindToolCall    RecordKind = "tool_call"
)

// ToolCallSpec is a single tool invocation requested within an AI response.
type ToolCallSpec struct {
	Name  string
	Input json.RawMessage
}

// UserMessage carries the text of a human turn opener.
type UserMessage struct {
	Content string
}

// AiResponse carries model narration and/or requested tool invocations.
type AiResponse struct {
	Content   string
	ToolCalls []ToolCallSpec
}

// ToolCall carries the execution record of a single tool invocation.
type ToolCall struct {
	ToolName   string
	Parameters json.RawMessage
	Result     json.RawMessage
}

// Record is one decoded line of an agent conversation log. Kind selects
// which variant is populated; the other variants stay nil. Timestamp and
// Mode are informational only and never drive conversion decisions.
type Record struct {
	Timestamp string
	SessionID string
	Mode      string
	Kind      RecordKind

	User *UserMessage
	AI   *AiResponse
	Tool *ToolCall
}

// Turn is a maximal run of session records beginning with a user message
// and extending up to (excluding) the next user message. Records[0] is
// always a user message record.
type Turn struct {
	Records []Record
}
