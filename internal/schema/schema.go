// Package schema converts turns into provider-specific training examples.
//
// The two targets encode tool-call correlation differently: Gemini by
// positional adjacency within the example, OpenAI by explicit identifier
// threading. Each converter reproduces its target's rules exactly because
// downstream trainers validate them.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"sftgen/internal/model"
)

// Variant selects the target dataset schema.
type Variant string

const (
	VariantGemini Variant = "gemini"
	VariantOpenAI Variant = "openai"
)

// ParseVariant validates a schema name supplied on the command line.
func ParseVariant(name string) (Variant, error) {
	switch Variant(name) {
	case VariantGemini:
		return VariantGemini, nil
	case VariantOpenAI:
		return VariantOpenAI, nil
	default:
		return "", fmt.Errorf("unsupported schema %q (expected gemini or openai)", name)
	}
}

// ConvertFunc maps one turn onto at most one training example.
type ConvertFunc func(model.Turn) (any, bool)

// For returns the converter for a schema variant.
func For(variant Variant) ConvertFunc {
	switch variant {
	case VariantOpenAI:
		return func(turn model.Turn) (any, bool) {
			ex, ok := ConvertOpenAI(turn)
			return ex, ok
		}
	default:
		return func(turn model.Turn) (any, bool) {
			ex, ok := ConvertGemini(turn)
			return ex, ok
		}
	}
}

// resultText renders a tool result as plain text: JSON strings pass
// through, any other value is compacted to its JSON representation.
func resultText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// argsText renders tool-call input as a compact JSON string.
func argsText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
