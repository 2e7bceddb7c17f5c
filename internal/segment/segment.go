// Package segment groups session records into user-initiated turns.
package segment

import "sftgen/internal/model"

// Split partitions records into turns. A turn starts at a user message and
// extends up to (excluding) the next user message. Records before the first
// user message are dropped; a trailing in-progress turn is finalized at the
// end of the sequence. Boundaries are independent of the target schema.
func Split(records []model.Record) []model.Turn {
	var turns []model.Turn
	var current []model.Record

	for _, rec := range records {
		if rec.Kind == model.KindUserMessage {
			if current != nil {
				turns = append(turns, model.Turn{Records: current})
			}
			current = []model.Record{rec}
			continue
		}
		if current == nil {
			// Still seeking the first user message.
			continue
		}
		current = append(current, rec)
	}

	if current != nil {
		turns = append(turns, model.Turn{Records: current})
	}

	return turns
}
