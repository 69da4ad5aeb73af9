package pacman

import (
	"testing"
	"time"

	"github.com/vovakirdan/mazechase/internal/config"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// pocketGhosts seals ghosts in a corridor on row, away from the player.
func pocketGhosts(row int) []GhostSpawn {
	return []GhostSpawn{
		{Name: "blinky", Kind: KindChaser, Spawn: Spawn{Col: 1, Row: row, Dir: DirRight}},
		{Name: "pinky", Kind: KindAmbusher, Spawn: Spawn{Col: 2, Row: row, Dir: DirRight}},
		{Name: "inky", Kind: KindErratic, Spawn: Spawn{Col: 3, Row: row, Dir: DirLeft}},
		{Name: "clyde", Kind: KindHybrid, Spawn: Spawn{Col: 4, Row: row, Dir: DirLeft}},
	}
}

// corridorLayout is a single open corridor on row 1 with a sealed ghost
// pocket on row 3. The pocket holds the only dot, so the game cannot be
// won by accident. The blinky ghost is moved into the corridor at col.
func corridorLayout(ghostCol int) Layout {
	ghosts := pocketGhosts(3)
	ghosts[0].Spawn = Spawn{Col: ghostCol, Row: 1, Dir: DirLeft}
	return Layout{
		Name: "corridor",
		Rows: []string{
			"#########",
			"#       #",
			"#########",
			"#.   ####",
			"#########",
		},
		Player: Spawn{Col: 2, Row: 1, Dir: DirRight},
		Ghosts: ghosts,
	}
}

func newTestSession(t *testing.T, l Layout, mutate ...func(*config.PacmanConfig)) (*Session, *ManualClock) {
	t.Helper()
	cfg := config.DefaultPacmanConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	clock := NewManualClock(epoch)
	s, err := NewSession(cfg, WithClock(clock), WithSeed(1), WithLayout(l))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.Start()
	return s, clock
}

// tickUntil ticks until an event of kind appears, failing after limit ticks.
func tickUntil(t *testing.T, s *Session, kind EventKind, limit int) []Event {
	t.Helper()
	for range limit {
		s.Tick(DirNone)
		events := s.DrainEvents()
		if hasEvent(events, kind) {
			return events
		}
	}
	t.Fatalf("no %s event within %d ticks", kind, limit)
	return nil
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
