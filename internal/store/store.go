// Package store enumerates session log files under an input directory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrSessionNotFound is returned when a requested session id matches no
// file under the input directory.
var ErrSessionNotFound = errors.New("session not found")

// Session identifies one JSONL session log on disk. The file basename
// without extension is the session id.
type Session struct {
	ID      string
	Path    string
	ModTime time.Time
}

// ListOptions controls how sessions are enumerated.
type ListOptions struct {
	Root    string
	Session string // keep only the session with this exact id
	Recent  int    // keep only the N most recently modified sessions
}

// ListResult contains discovered sessions and non-fatal warnings.
type ListResult struct {
	Sessions []Session
	Warnings []error
}

// ListSessions enumerates *.jsonl files under opts.Root. Sessions are
// returned in id order so repeated runs process files deterministically;
// the Recent filter selects by modification time before that sort.
func ListSessions(opts ListOptions) (ListResult, error) {
	if opts.Root == "" {
		return ListResult{}, errors.New("sessions directory is required")
	}

	var result ListResult

	err := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("walk %s: %w", path, walkErr))
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("stat %s: %w", path, err))
			return nil
		}

		result.Sessions = append(result.Sessions, Session{
			ID:      strings.TrimSuffix(d.Name(), ".jsonl"),
			Path:    path,
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("scan sessions directory: %w", err)
	}

	if opts.Session != "" {
		var matched []Session
		for _, sess := range result.Sessions {
			if sess.ID == opts.Session {
				matched = append(matched, sess)
			}
		}
		if len(matched) == 0 {
			return result, fmt.Errorf("%w: %s", ErrSessionNotFound, opts.Session)
		}
		result.Sessions = matched
	}

	if opts.Recent > 0 && len(result.Sessions) > opts.Recent {
		sort.Slice(result.Sessions, func(i, j int) bool {
			return result.Sessions[i].ModTime.After(result.Sessions[j].ModTime)
		})
		result.Sessions = result.Sessions[:opts.Recent]
	}

	sort.Slice(result.Sessions, func(i, j int) bool {
		return result.Sessions[i].ID < result.Sessions[j].ID
	})

	return result, nil
}
