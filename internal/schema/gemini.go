package schema

import (
	"encoding/json"

	"sftgen/internal/model"
)

// Gemini example wire shape.
type GeminiExample struct {
	Messages []GeminiMessage `json:"messages"`
}

// GeminiMessage is a role-tagged sequence of parts.
type GeminiMessage struct {
	Role  string       `json:"role"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart is exactly one of text, tool_code, or tool_result.
type GeminiPart struct {
	Text       *string           `json:"text,omitempty"`
	ToolCode   *GeminiToolCode   `json:"tool_code,omitempty"`
	ToolResult *GeminiToolResult `json:"tool_result,omitempty"`
}

// GeminiToolCode describes a tool invocation requested by the model.
type GeminiToolCode struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// GeminiToolResult carries the outcome of a tool invocation.
type GeminiToolResult struct {
	Name     string `json:"name"`
	Response string `json:"response"`
}

const (
	geminiRoleUser  = "user"
	geminiRoleModel = "model"
	geminiRoleTool  = "tool"
)

// ConvertGemini maps one turn onto a Gemini-style multi-part example.
//
// Source records interleave tool calls and results in time, but the target
// schema requires every tool call to precede its result before any further
// narration, so the model messages are regrouped: user message first, then
// every model message carrying a tool invocation, then every tool result,
// then every pure-text model message, preserving relative order inside each
// group. The turn is dropped unless it produced at least one model message.
func ConvertGemini(turn model.Turn) (*GeminiExample, bool) {
	if len(turn.Records) == 0 || turn.Records[0].User == nil {
		return nil, false
	}

	userMsg := GeminiMessage{
		Role:  geminiRoleUser,
		Parts: []GeminiPart{geminiTextPart(turn.Records[0].User.Content)},
	}

	var callMsgs, resultMsgs, textMsgs []GeminiMessage
	for _, rec := range turn.Records[1:] {
		switch rec.Kind {
		case model.KindAiResponse:
			ai := rec.AI
			var parts []GeminiPart
			if ai.Content != "" {
				parts = append(parts, geminiTextPart(ai.Content))
			}
			for _, call := range ai.ToolCalls {
				parts = append(parts, GeminiPart{
					ToolCode: &GeminiToolCode{Name: call.Name, Args: call.Input},
				})
			}
			if len(parts) == 0 {
				continue
			}
			msg := GeminiMessage{Role: geminiRoleModel, Parts: parts}
			if len(ai.ToolCalls) > 0 {
				callMsgs = append(callMsgs, msg)
			} else {
				textMsgs = append(textMsgs, msg)
			}
		case model.KindToolCall:
			tool := rec.Tool
			resultMsgs = append(resultMsgs, GeminiMessage{
				Role: geminiRoleTool,
				Parts: []GeminiPart{{
					ToolResult: &GeminiToolResult{
						Name:     tool.ToolName,
						Response: resultText(tool.Result),
					},
				}},
			})
		}
	}

	if len(callMsgs) == 0 && len(textMsgs) == 0 {
		return nil, false
	}

	messages := make([]GeminiMessage, 0, 1+len(callMsgs)+len(resultMsgs)+len(textMsgs))
	messages = append(messages, userMsg)
	messages = append(messages, callMsgs...)
	messages = append(messages, resultMsgs...)
	messages = append(messages, textMsgs...)

	return &GeminiExample{Messages: messages}, true
}

func geminiTextPart(text string) GeminiPart {
	return GeminiPart{Text: &text}
}
