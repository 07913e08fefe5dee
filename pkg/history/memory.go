package history

import (
	"context"
	"sort"
	"sync"
)

// Memory keeps the history in process
type Memory struct {
	mu      sync.RWMutex
	rounds  map[string][]*Entry
	seenIDs map[int64]bool
}

// NewMemory returns an empty store
func NewMemory() *Memory {
	return &Memory{
		rounds:  make(map[string][]*Entry),
		seenIDs: make(map[int64]bool),
	}
}

// Record stores a copy of the entry
func (m *Memory) Record(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seenIDs[e.ID] {
		return ErrDuplicateRound
	}

	cp := *e
	m.seenIDs[e.ID] = true
	m.rounds[e.PlayerID] = append(m.rounds[e.PlayerID], &cp)

	return nil
}

// List returns the player's rounds ordered by ID descending
func (m *Memory) List(_ context.Context, playerID string, start int64, rows int) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := append([]*Entry{}, m.rounds[playerID]...)
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID > all[j].ID
	})

	if start >= int64(len(all)) {
		return []*Entry{}, nil
	}

	all = all[start:]
	if rows < len(all) {
		all = all[:rows]
	}

	entries := make([]*Entry, len(all))
	for i, e := range all {
		cp := *e
		entries[i] = &cp
	}

	return entries, nil
}
