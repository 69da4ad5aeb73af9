package pacman

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/mazechase/internal/config"
)

// pocketLayout is the corridor with every ghost sealed in the pocket.
func pocketLayout(corridor string) Layout {
	return Layout{
		Name: "pocket",
		Rows: []string{
			"#########",
			corridor,
			"#########",
			"#.   ####",
			"#########",
		},
		Player: Spawn{Col: 2, Row: 1, Dir: DirRight},
		Ghosts: pocketGhosts(3),
	}
}

func singleDotLayout() Layout {
	l := pocketLayout("# .     #")
	l.Rows[3] = "#    ####"
	return l
}

func withLives(n int) func(*config.PacmanConfig) {
	return func(c *config.PacmanConfig) { c.Gameplay.Lives = n }
}

func TestNewSessionStartsInMenu(t *testing.T) {
	s, err := NewSession(config.DefaultPacmanConfig(), WithSeed(1))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if s.Phase() != PhaseMenu {
		t.Errorf("initial phase = %v, expected menu", s.Phase())
	}
	snap := s.Snapshot()
	if snap.Rows != 31 || snap.Cols != 28 || len(snap.Ghosts) != GhostCount {
		t.Errorf("menu snapshot should show the classic board, got %dx%d with %d ghosts", snap.Cols, snap.Rows, len(snap.Ghosts))
	}

	// Ticking in the menu does nothing
	s.Tick(DirUp)
	if s.Snapshot().Tick != 0 {
		t.Error("Tick() should be a no-op outside Playing")
	}
}

func TestNewSessionErrors(t *testing.T) {
	cfg := config.DefaultPacmanConfig()
	cfg.Gameplay.Lives = 0
	if _, err := NewSession(cfg); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected config error, got %v", err)
	}

	bad := pocketLayout("#       #")
	bad.Rows[1] = "#  #"
	if _, err := NewSession(config.DefaultPacmanConfig(), WithLayout(bad)); err == nil {
		t.Error("expected ragged layout to be rejected")
	}
}

func TestVictoryScenario(t *testing.T) {
	s, _ := newTestSession(t, singleDotLayout())

	s.Tick(DirNone)

	if s.Phase() != PhaseVictory {
		t.Fatalf("phase = %v, expected victory after eating the only dot", s.Phase())
	}
	if s.Score() != 10 {
		t.Errorf("score = %d, expected 10", s.Score())
	}
	events := s.DrainEvents()
	for _, kind := range []EventKind{EventDotEaten, EventChomp, EventVictory} {
		if !hasEvent(events, kind) {
			t.Errorf("expected %s event, got %+v", kind, events)
		}
	}
}

func TestCaptureScenarioGameOver(t *testing.T) {
	s, _ := newTestSession(t, corridorLayout(2), withLives(1))

	s.Tick(DirNone)

	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected gameover in the same tick", s.Phase())
	}
	if s.Lives() != 0 {
		t.Errorf("lives = %d, expected 0", s.Lives())
	}
	events := s.DrainEvents()
	if !hasEvent(events, EventPlayerCaught) || !hasEvent(events, EventGameOver) {
		t.Errorf("expected player_caught and game_over events, got %+v", events)
	}
	if s.sched.pending() != 0 {
		t.Errorf("game over should cancel every timer, %d pending", s.sched.pending())
	}
}

func TestCapturePauseAndRespawn(t *testing.T) {
	s, clock := newTestSession(t, corridorLayout(4))

	tickUntil(t, s, EventPlayerCaught, 20)
	if s.Lives() != 2 {
		t.Fatalf("lives = %d, expected 2", s.Lives())
	}
	frozen := s.Snapshot()
	if !frozen.Respawning {
		t.Fatal("snapshot should report the respawn pause")
	}

	// The ghost still overlaps the player, but the pause prevents more captures
	for range 30 {
		s.Tick(DirLeft)
	}
	paused := s.Snapshot()
	if s.Lives() != 2 {
		t.Errorf("lives = %d during the pause, expected 2", s.Lives())
	}
	if paused.Player.Pos != frozen.Player.Pos || paused.Ghosts[0].Pos != frozen.Ghosts[0].Pos {
		t.Error("entities should stay frozen until the reset fires")
	}

	clock.Advance(1500 * time.Millisecond)
	s.Tick(DirNone)

	events := s.DrainEvents()
	if !hasEvent(events, EventRespawned) {
		t.Fatalf("expected respawned event, got %+v", events)
	}
	snap := s.Snapshot()
	if snap.Respawning {
		t.Error("respawn pause should be over")
	}
	if snap.Player.Pos.X != 2.125 || snap.Player.Pos.Y != 1 || snap.Player.Dir != DirRight {
		t.Errorf("player should restart from spawn, got %+v", snap.Player)
	}
	if snap.Ghosts[0].Pos.X != 4-0.09375 || snap.Ghosts[0].Mode() != ModeNormal {
		t.Errorf("ghost should restart from home in normal mode, got %+v", snap.Ghosts[0])
	}
	if s.Lives() != 2 {
		t.Errorf("lives = %d after respawn, expected 2", s.Lives())
	}
}

func TestRespawnSkippedOutsidePlaying(t *testing.T) {
	s, clock := newTestSession(t, corridorLayout(4))
	tickUntil(t, s, EventPlayerCaught, 20)

	// Tearing down mid-delay drops the pending reset
	s.ReturnToMenu()
	if s.sched.pending() != 0 {
		t.Errorf("ReturnToMenu() left %d timers pending", s.sched.pending())
	}
	s.Start()
	clock.Advance(2 * time.Second)
	s.Tick(DirNone)
	if hasEvent(s.DrainEvents(), EventRespawned) {
		t.Error("stale respawn fired into a fresh session")
	}

	// The fire-time guard ignores a reset once the game is over
	s.phase = PhaseGameOver
	s.player.Pos.X = 6
	s.respawn(clock.Now())
	if s.player.Pos.X != 6 {
		t.Error("respawn should not touch a finished session")
	}
}

func TestEatenGhostScenario(t *testing.T) {
	s, clock := newTestSession(t, corridorLayout(4))
	s.activatePowerMode(clock.Now())
	s.DrainEvents()

	for range 20 {
		before := s.Score()
		s.Tick(DirNone)
		if !hasEvent(s.DrainEvents(), EventGhostEaten) {
			continue
		}
		g := s.ghosts[0]
		if !g.Returning || g.Frightened {
			t.Errorf("eaten ghost should be returning and not frightened, got %+v", g)
		}
		if got := s.Score() - before; got != 200 {
			t.Errorf("score increased by %d, expected 200", got)
		}
		if s.Lives() != 3 {
			t.Errorf("eating a ghost should not cost a life, lives = %d", s.Lives())
		}
		return
	}
	t.Fatal("frightened ghost was never eaten")
}

func TestHomecomingDuringPowerMode(t *testing.T) {
	tests := []struct {
		name  string
		power bool
		want  GhostMode
	}{
		{"power active", true, ModeFrightened},
		{"power off", false, ModeNormal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, clock := newTestSession(t, corridorLayout(4))
			if tc.power {
				s.activatePowerMode(clock.Now())
			}
			g := &s.ghosts[0]
			g.captured()
			g.Pos.X, g.Dir = 5, DirLeft

			s.moveGhosts()

			if got := s.ghosts[0].Mode(); got != tc.want {
				t.Errorf("ghost mode after arriving home = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestPowerModeLifecycle(t *testing.T) {
	s, clock := newTestSession(t, pocketLayout("#       #"))
	s.activatePowerMode(clock.Now())

	snap := s.Snapshot()
	if !snap.Player.Powered || snap.PowerRemainingMs != 8000 {
		t.Fatalf("power mode should start at 8000ms, got %+v", snap)
	}
	for _, g := range snap.Ghosts {
		if !g.Frightened {
			t.Errorf("%s should be frightened", g.Name)
		}
	}

	clock.Advance(300 * time.Millisecond)
	s.Tick(DirNone)
	if got := s.Snapshot().PowerRemainingMs; got != 7700 {
		t.Errorf("remaining = %dms after 300ms, expected 7700", got)
	}

	clock.Advance(6000 * time.Millisecond)
	s.Tick(DirNone)
	if !s.Snapshot().PowerWarning {
		t.Error("power warning should be on with 1700ms left")
	}

	clock.Advance(1700 * time.Millisecond)
	s.Tick(DirNone)
	snap = s.Snapshot()
	if snap.PowerRemainingMs != 0 || snap.Player.Powered || snap.PowerWarning {
		t.Errorf("power mode should be over, got remaining=%d powered=%v", snap.PowerRemainingMs, snap.Player.Powered)
	}
	for _, g := range snap.Ghosts {
		if g.Frightened {
			t.Errorf("%s should no longer be frightened", g.Name)
		}
	}
	if !hasEvent(s.DrainEvents(), EventPowerEnded) {
		t.Error("expected power_ended event")
	}
}

func TestPowerReactivationRestartsCountdown(t *testing.T) {
	s, clock := newTestSession(t, pocketLayout("#       #"))
	s.activatePowerMode(clock.Now())

	clock.Advance(5 * time.Second)
	s.Tick(DirNone)
	s.activatePowerMode(clock.Now())

	clock.Advance(7900 * time.Millisecond)
	s.Tick(DirNone)
	if got := s.Snapshot().PowerRemainingMs; got != 100 {
		t.Fatalf("remaining = %dms, expected the second activation to leave 100ms", got)
	}

	clock.Advance(100 * time.Millisecond)
	s.Tick(DirNone)
	events := s.DrainEvents()
	if countEvents(events, EventPowerEnded) != 1 {
		t.Errorf("expected exactly one power_ended event, got %+v", events)
	}
}

func TestPelletActivatesPowerMode(t *testing.T) {
	l := pocketLayout("# o     #")
	s, _ := newTestSession(t, l)

	s.Tick(DirNone)

	if s.Score() != 50 {
		t.Errorf("score = %d, expected 50 for a pellet", s.Score())
	}
	events := s.DrainEvents()
	if !hasEvent(events, EventPelletEaten) || !hasEvent(events, EventPowerStarted) {
		t.Errorf("expected pellet_eaten and power_started, got %+v", events)
	}
	if hasEvent(events, EventChomp) {
		t.Error("pellets should not raise the dot chomp cue")
	}
	if !s.Snapshot().Player.Powered {
		t.Error("player should be powered")
	}
}

func TestChompCueRateLimited(t *testing.T) {
	l := pocketLayout("#  ...  #")
	l.Rows[3] = "#    ####"
	s, clock := newTestSession(t, l)

	var events []Event
	for range 16 {
		s.Tick(DirNone)
		events = append(events, s.DrainEvents()...)
	}
	if countEvents(events, EventDotEaten) != 2 || countEvents(events, EventChomp) != 1 {
		t.Fatalf("two dots inside 100ms should chomp once, got %+v", events)
	}

	clock.Advance(100 * time.Millisecond)
	for range 8 {
		s.Tick(DirNone)
		events = append(events, s.DrainEvents()...)
	}
	if countEvents(events, EventDotEaten) != 3 || countEvents(events, EventChomp) != 2 {
		t.Errorf("the third dot after 100ms should chomp again, got %+v", events)
	}
	if s.Phase() != PhaseVictory {
		t.Errorf("phase = %v, expected victory after the last dot", s.Phase())
	}
}

func TestTogglePauseFreezesTimers(t *testing.T) {
	s, clock := newTestSession(t, pocketLayout("#       #"))
	s.activatePowerMode(clock.Now())
	before := s.Snapshot()

	if !s.TogglePause() {
		t.Fatal("TogglePause() should report paused")
	}
	clock.Advance(10 * time.Second)
	for range 5 {
		s.Tick(DirNone)
	}
	snap := s.Snapshot()
	if snap.Tick != before.Tick || snap.Player.Pos != before.Player.Pos {
		t.Error("paused session should not advance")
	}
	if snap.PowerRemainingMs != 8000 || !snap.Paused {
		t.Errorf("power countdown should freeze while paused, remaining %d", snap.PowerRemainingMs)
	}

	if s.TogglePause() {
		t.Fatal("second TogglePause() should resume")
	}
	clock.Advance(100 * time.Millisecond)
	s.Tick(DirNone)
	if got := s.Snapshot().PowerRemainingMs; got != 7900 {
		t.Errorf("remaining = %dms after resuming for 100ms, expected 7900", got)
	}
}

func TestMouthToggles(t *testing.T) {
	s, clock := newTestSession(t, pocketLayout("#       #"))
	if !s.Snapshot().Player.MouthOpen {
		t.Fatal("mouth should start open")
	}

	clock.Advance(200 * time.Millisecond)
	s.Tick(DirNone)
	if s.Snapshot().Player.MouthOpen {
		t.Error("mouth should close after 200ms")
	}

	clock.Advance(200 * time.Millisecond)
	s.Tick(DirNone)
	if !s.Snapshot().Player.MouthOpen {
		t.Error("mouth should open again after 400ms")
	}
}

func TestNextLevel(t *testing.T) {
	s, _ := newTestSession(t, singleDotLayout())
	if s.NextLevel() {
		t.Fatal("NextLevel() should be refused while playing")
	}
	base := s.ghostSpeed

	s.Tick(DirNone)
	if !s.NextLevel() {
		t.Fatal("NextLevel() should continue after victory")
	}

	if s.Phase() != PhasePlaying || s.Level() != 2 {
		t.Errorf("expected playing level 2, got %v level %d", s.Phase(), s.Level())
	}
	if s.Score() != 10 || s.Lives() != 3 {
		t.Errorf("score and lives should carry over, got score=%d lives=%d", s.Score(), s.Lives())
	}
	if s.Snapshot().DotsLeft != 1 {
		t.Error("collectibles should be rebuilt for the new level")
	}
	if s.ghostSpeed <= base {
		t.Errorf("ghost speed should increase, %v -> %v", base, s.ghostSpeed)
	}
}

func TestStartResetsProgress(t *testing.T) {
	s, _ := newTestSession(t, corridorLayout(2), withLives(1))
	s.Tick(DirNone)
	if s.Phase() != PhaseGameOver {
		t.Fatalf("precondition: expected game over, got %v", s.Phase())
	}

	s.Start()
	if s.Phase() != PhasePlaying || s.Lives() != 1 || s.Score() != 0 || s.Level() != 1 {
		t.Errorf("Start() should reset the session, got phase=%v lives=%d score=%d", s.Phase(), s.Lives(), s.Score())
	}
}

func TestSetDirectionIgnoresInvalid(t *testing.T) {
	s, _ := newTestSession(t, pocketLayout("#       #"))
	s.SetDirection(Direction(42))
	s.SetDirection(DirNone)
	if p := s.Snapshot().Player; p.Dir != DirRight || p.Queued != DirNone {
		t.Errorf("invalid directions should be ignored, got %+v", p)
	}

	s.SetDirection(DirLeft)
	if p := s.Snapshot().Player; p.Dir != DirLeft {
		t.Errorf("open direction should turn immediately, got %v", p.Dir)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s, _ := newTestSession(t, pocketLayout("# ...   #"))
	snap := s.Snapshot()
	snap.Dots[0].Visible = false
	snap.Ghosts[0].Frightened = true
	snap.Cells[0] = "changed"

	again := s.Snapshot()
	if !again.Dots[0].Visible || again.Ghosts[0].Frightened || again.Cells[0] == "changed" {
		t.Error("mutating a snapshot should not affect the session")
	}
}

// TestInvariantsOverRandomRun plays the classic maze with random intents
// and checks the session invariants after every tick.
func TestInvariantsOverRandomRun(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		s, clock := newTestSession(t, ClassicLayout())
		s.rng.Seed(seed)
		intents := rand.New(rand.NewSource(seed))

		prev := s.Snapshot()
		eaten := map[[2]int]bool{}
		for i := range 4000 {
			if i == 300 || i == 2000 {
				s.activatePowerMode(clock.Now())
			}
			clock.Advance(16 * time.Millisecond)
			intent := DirNone
			if i%12 == 0 {
				intent = directionOrder[intents.Intn(len(directionOrder))]
			}
			s.Tick(intent)
			snap := s.Snapshot()

			if snap.Score < prev.Score {
				t.Fatalf("seed %d tick %d: score decreased %d -> %d", seed, i, prev.Score, snap.Score)
			}
			if snap.Lives < 0 || snap.Lives > 3 {
				t.Fatalf("seed %d tick %d: lives out of range: %d", seed, i, snap.Lives)
			}
			for _, c := range append(snap.Dots, snap.Pellets...) {
				key := [2]int{c.Col, c.Row}
				if c.Visible && eaten[key] {
					t.Fatalf("seed %d tick %d: collectible at %v reappeared", seed, i, key)
				}
				if !c.Visible {
					eaten[key] = true
				}
			}
			for _, g := range snap.Ghosts {
				if g.Frightened && g.Returning {
					t.Fatalf("seed %d tick %d: %s frightened and returning", seed, i, g.Name)
				}
				if g.Returning {
					continue
				}
				if snap.PowerRemainingMs > 0 && !g.Frightened {
					t.Fatalf("seed %d tick %d: %s not frightened during power mode", seed, i, g.Name)
				}
				if snap.PowerRemainingMs == 0 && g.Frightened {
					t.Fatalf("seed %d tick %d: %s frightened after power mode", seed, i, g.Name)
				}
			}

			prev = snap
			if snap.Phase != PhasePlaying {
				break
			}
		}
	}
}

func TestDeterminismBySeed(t *testing.T) {
	run := func() (Snapshot, []Event) {
		clock := NewManualClock(epoch)
		s, err := NewSession(config.DefaultPacmanConfig(), WithClock(clock), WithSeed(12345))
		if err != nil {
			t.Fatal(err)
		}
		s.Start()
		var events []Event
		for i := range 1500 {
			clock.Advance(16 * time.Millisecond)
			intent := DirNone
			switch i {
			case 30:
				intent = DirUp
			case 200:
				intent = DirRight
			case 500:
				intent = DirDown
			}
			s.Tick(intent)
			events = append(events, s.DrainEvents()...)
		}
		return s.Snapshot(), events
	}

	snap1, ev1 := run()
	snap2, ev2 := run()
	if !reflect.DeepEqual(snap1, snap2) {
		t.Error("same seed and inputs should produce identical snapshots")
	}
	if !reflect.DeepEqual(ev1, ev2) {
		t.Error("same seed and inputs should produce identical events")
	}
}
