package game_test

import (
	"sync"
	"testing"

	"chesscore/game"
)

func TestManager_CreateGetRemove(t *testing.T) {
	m := game.NewManager()
	id := m.Create()

	g, err := m.Get(id)
	if err != nil {
		t.Fatalf("Get(%s): %v", id, err)
	}
	if len(g.LegalMoves()) != 20 {
		t.Fatalf("expected a freshly created game to start at the initial position")
	}

	m.Remove(id)
	if _, err := m.Get(id); err == nil {
		t.Fatalf("expected Get to fail after Remove")
	}
}

func TestManager_CreateFromFENRejectsInvalid(t *testing.T) {
	m := game.NewManager()
	if _, err := m.CreateFromFEN("not a fen"); err == nil {
		t.Fatalf("expected CreateFromFEN to reject a malformed FEN")
	}
}

func TestManager_IDsSortedAndUnique(t *testing.T) {
	m := game.NewManager()
	ids := map[string]bool{}
	for i := 0; i < 5; i++ {
		id := m.Create()
		if ids[id] {
			t.Fatalf("Create returned a duplicate id %s", id)
		}
		ids[id] = true
	}
	listed := m.IDs()
	if len(listed) != 5 {
		t.Fatalf("expected 5 registered games, got %d", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i-1] > listed[i] {
			t.Fatalf("expected IDs() to be sorted: %v", listed)
		}
	}
}

func TestManager_ConcurrentCreateAndGet(t *testing.T) {
	m := game.NewManager()
	var wg sync.WaitGroup
	ids := make([]string, 32)
	for i := range ids {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = m.Create()
		}()
	}
	wg.Wait()

	for _, id := range ids {
		if id == "" {
			t.Fatalf("expected every concurrent Create to produce an id")
		}
		if _, err := m.Get(id); err != nil {
			t.Errorf("Get(%s): %v", id, err)
		}
	}
}
