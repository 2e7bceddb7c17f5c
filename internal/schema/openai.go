package schema

import (
	"fmt"

	"sftgen/internal/model"
)

// OpenAI example wire shape.
type OpenAIExample struct {
	Messages []OpenAIMessage `json:"messages"`
}

// OpenAIMessage is one chat message. Content is null (not omitted) on
// assistant messages that carry tool calls.
type OpenAIMessage struct {
	Role       string           `json:"role"`
	Content    *string          `json:"content"`
	ToolCalls  []OpenAIToolCall `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
	Name       string           `json:"name,omitempty"`
}

// OpenAIToolCall is a function-call descriptor issued by the assistant.
type OpenAIToolCall struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Function OpenAIFunction `json:"function"`
}

// OpenAIFunction names the called function with its stringified arguments.
type OpenAIFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

const (
	openaiRoleUser      = "user"
	openaiRoleAssistant = "assistant"
	openaiRoleTool      = "tool"
)

// ConvertOpenAI maps one turn onto an OpenAI-style chat example.
//
// Tool calls are threaded through explicit identifiers: each call mints
// call_<n> from a per-turn counter and enqueues it; each tool result
// consumes the oldest pending identifier. A result with no pending call is
// dropped on its own without failing the turn. Messages stay in strict
// chronological order. The turn is dropped when the opening user message
// has no content or when no assistant message was produced.
func ConvertOpenAI(turn model.Turn) (*OpenAIExample, bool) {
	if len(turn.Records) == 0 || turn.Records[0].User == nil {
		return nil, false
	}
	userText := turn.Records[0].User.Content
	if userText == "" {
		return nil, false
	}

	messages := []OpenAIMessage{{Role: openaiRoleUser, Content: &userText}}

	var pending []string // FIFO of identifiers awaiting a tool result
	nextID := 0
	assistants := 0

	for _, rec := range turn.Records[1:] {
		switch rec.Kind {
		case model.KindAiResponse:
			ai := rec.AI
			if len(ai.ToolCalls) > 0 {
				calls := make([]OpenAIToolCall, 0, len(ai.ToolCalls))
				for _, call := range ai.ToolCalls {
					id := fmt.Sprintf("call_%d", nextID)
					nextID++
					pending = append(pending, id)
					calls = append(calls, OpenAIToolCall{
						ID:   id,
						Type: "function",
						Function: OpenAIFunction{
							Name:      call.Name,
							Arguments: argsText(call.Input),
						},
					})
				}
				messages = append(messages, OpenAIMessage{
					Role:      openaiRoleAssistant,
					ToolCalls: calls,
				})
				assistants++
			} else if ai.Content != "" {
				content := ai.Content
				messages = append(messages, OpenAIMessage{
					Role:    openaiRoleAssistant,
					Content: &content,
				})
				assistants++
			}
		case model.KindToolCall:
			tool := rec.Tool
			if tool.ToolName == "" {
				continue
			}
			if len(pending) == 0 {
				// No identifier to attach the result to.
				continue
			}
			id := pending[0]
			pending = pending[1:]
			result := resultText(tool.Result)
			messages = append(messages, OpenAIMessage{
				Role:       openaiRoleTool,
				Content:    &result,
				ToolCallID: id,
				Name:       tool.ToolName,
			})
		}
	}

	if assistants == 0 {
		return nil, false
	}

	return &OpenAIExample{Messages: messages}, true
}
