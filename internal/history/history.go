// Package history records the lines entered in calculator sessions and what
// each one printed.
package history

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Entry is one evaluated line of a session.
type Entry struct {
	// Session identifies the session the line was entered in.
	Session string `json:"session"`
	// Seq is the position of the line in its session, starting at 1.
	Seq int64 `json:"seq"`
	// Input is the line as evaluated, in NFC.
	Input string `json:"input"`
	// Result is the text printed for the line, without its label.
	Result string `json:"result"`
	// Failed is true if the line produced an error.
	Failed bool `json:"failed,omitempty"`
}

// Store is a history of entries.
type Store interface {
	// Append adds an entry. Appending a second entry with the same session
	// and sequence number is an error.
	Append(ctx context.Context, e Entry) error
	// List returns the entries for a session in sequence order. An empty
	// session lists all entries, ordered by session and then by sequence.
	List(ctx context.Context, session string) ([]Entry, error)
	// Close releases the store's resources.
	Close() error
}

// ErrDuplicate is returned when an entry's session and sequence number are
// already recorded.
var ErrDuplicate = errors.New("duplicate history entry")

// NewSession returns a new session ID. IDs are UUIDv7, so they sort in the
// order sessions were created.
func NewSession() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Normalize returns s in Unicode normalization form C, so that visually
// identical input is recorded and evaluated identically.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
