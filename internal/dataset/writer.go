// Package dataset writes accepted examples as line-delimited JSON files.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"sftgen/internal/schema"
)

// FileName returns the output file name for a schema variant and session.
func FileName(variant schema.Variant, sessionID string) string {
	return fmt.Sprintf("%s_%s.jsonl", variant, sessionID)
}

// Write encodes examples one JSON object per line into path, replacing any
// previous file. A session with zero accepted examples produces no file.
func Write(path string, examples []any) error {
	if len(examples) == 0 {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}

	enc := json.NewEncoder(file)
	for _, example := range examples {
		if err := enc.Encode(example); err != nil {
			file.Close()
			return fmt.Errorf("encode example: %w", err)
		}
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close dataset file: %w", err)
	}
	return nil
}
