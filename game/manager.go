package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Manager is a concurrent registry of in-progress games, keyed by a
// generated UUID. It exists so a server process can hold many independent
// games behind one mutex-guarded map, the way an outer collaborator would
// in front of the chess core.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*entry
}

type entry struct {
	game      *Game
	createdAt time.Time
	updatedAt time.Time
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{games: make(map[string]*entry)}
}

// Create starts a new game from the standard initial position and returns
// its id.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	now := time.Now()
	m.games[id] = &entry{game: New(), createdAt: now, updatedAt: now}
	return id
}

// CreateFromFEN starts a new game from an arbitrary FEN string.
func (m *Manager) CreateFromFEN(fen string) (string, error) {
	g, err := NewFromFEN(fen)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	now := time.Now()
	m.games[id] = &entry{game: g, createdAt: now, updatedAt: now}
	return id, nil
}

// Get returns the game registered under id.
func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("game: no game with id %q", id)
	}
	return e.game, nil
}

// Touch records that id was interacted with, for LRU-style eviction
// policies an operator might layer on top.
func (m *Manager) Touch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return fmt.Errorf("game: no game with id %q", id)
	}
	e.updatedAt = time.Now()
	return nil
}

// Remove deletes a game from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}

// IDs returns every registered game id, sorted for stable output.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Prune removes every game whose last touch is older than maxAge, returning
// how many were removed.
func (m *Manager) Prune(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, e := range m.games {
		if e.updatedAt.Before(cutoff) {
			delete(m.games, id)
			removed++
		}
	}
	return removed
}
