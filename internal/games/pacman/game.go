package pacman

import (
	"time"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
)

// GameID is the leaderboard identifier of the maze game.
const GameID = "pacman"

// Game adapts a Session to core.Game so the terminal and SSH hosts can
// drive it with semantic actions.
type Game struct {
	session *Session
}

var _ core.Game = (*Game)(nil)

// New creates a game in its menu screen.
func New(cfg config.PacmanConfig, opts ...Option) (*Game, error) {
	s, err := NewSession(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Game{session: s}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Maze Chase" }

// Session exposes the underlying engine.
func (g *Game) Session() *Session { return g.session }

// Reset returns to the menu with a fresh seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.session.Reset(seed)
}

// Step maps the frame's actions onto session operations and advances
// one tick while playing.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session
	switch s.Phase() {
	case PhaseMenu:
		if in.Has(core.ActionConfirm) {
			s.Start()
		}
	case PhasePlaying:
		switch {
		case in.Has(core.ActionBack):
			s.ReturnToMenu()
		case in.Has(core.ActionPause):
			s.TogglePause()
		case in.Has(core.ActionRestart) && s.Paused():
			s.Start()
		}
		s.Tick(intentOf(in))
	case PhaseGameOver:
		switch {
		case in.Has(core.ActionRestart), in.Has(core.ActionConfirm):
			s.Start()
		case in.Has(core.ActionBack):
			s.ReturnToMenu()
		}
	case PhaseVictory:
		switch {
		case in.Has(core.ActionNext), in.Has(core.ActionConfirm):
			s.NextLevel()
		case in.Has(core.ActionRestart):
			s.Start()
		case in.Has(core.ActionBack):
			s.ReturnToMenu()
		}
	}

	var cues []string
	for _, e := range s.DrainEvents() {
		cues = append(cues, string(e.Kind))
	}
	return core.StepResult{State: g.State(), Cues: cues}
}

// intentOf picks the directional intent of a frame. Several directions
// in one frame resolve in up, down, left, right order.
func intentOf(in core.InputFrame) Direction {
	switch {
	case in.Has(core.ActionUp):
		return DirUp
	case in.Has(core.ActionDown):
		return DirDown
	case in.Has(core.ActionLeft):
		return DirLeft
	case in.Has(core.ActionRight):
		return DirRight
	default:
		return DirNone
	}
}

// State returns the host-facing summary.
func (g *Game) State() core.GameState {
	s := g.session
	phase := s.Phase()
	return core.GameState{
		Score:    s.Score(),
		Lives:    s.Lives(),
		Level:    s.Level(),
		InMenu:   phase == PhaseMenu,
		GameOver: phase == PhaseGameOver || phase == PhaseVictory,
		Won:      phase == PhaseVictory,
		Paused:   s.Paused(),
	}
}

// Render draws the current snapshot.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.session.Snapshot())
}
