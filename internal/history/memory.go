package history

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// Memory is a Store held in memory. The zero value is ready to use.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

var _ Store = (*Memory)(nil)

// Append adds an entry.
func (m *Memory) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.entries {
		if x.Session == e.Session && x.Seq == e.Seq {
			return fmt.Errorf("session %s seq %d: %w", e.Session, e.Seq, ErrDuplicate)
		}
	}
	m.entries = append(m.entries, e)
	return nil
}

// List returns the entries for a session, or all entries if session is empty.
func (m *Memory) List(ctx context.Context, session string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r := []Entry{}
	for _, e := range m.entries {
		if session == "" || e.Session == session {
			r = append(r, e)
		}
	}
	slices.SortStableFunc(r, func(a, b Entry) int {
		if c := cmp.Compare(a.Session, b.Session); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	return r, nil
}

// Close does nothing.
func (m *Memory) Close() error {
	return nil
}
