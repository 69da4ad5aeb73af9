package pacman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/mazechase/internal/core"
)

// GhostCount is the number of ghosts in every session.
const GhostCount = 4

// GhostKind is the fixed behavioural identity of a ghost.
type GhostKind int

const (
	KindChaser   GhostKind = iota // type A: heads straight for the player
	KindAmbusher                  // type B: aims ahead of the player
	KindErratic                   // type C: always wanders
	KindHybrid                    // type D: wanders when far, chases when close
)

func (k GhostKind) String() string {
	switch k {
	case KindChaser:
		return "chaser"
	case KindAmbusher:
		return "ambusher"
	case KindErratic:
		return "erratic"
	case KindHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// MarshalText encodes k by name.
func (k GhostKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *GhostKind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "chaser":
		*k = KindChaser
	case "ambusher":
		*k = KindAmbusher
	case "erratic":
		*k = KindErratic
	case "hybrid":
		*k = KindHybrid
	default:
		return fmt.Errorf("pacman: unknown ghost kind %q", b)
	}
	return nil
}

// GhostMode is the per-ghost state machine position.
type GhostMode string

const (
	ModeNormal        GhostMode = "normal"
	ModeFrightened    GhostMode = "frightened"
	ModeReturningHome GhostMode = "returning_home"
)

// Ghost is one adversary. Kind and Home never change.
type Ghost struct {
	Name       string    `json:"name" yaml:"name"`
	Kind       GhostKind `json:"kind" yaml:"kind"`
	Pos        core.Vec  `json:"pos" yaml:"pos"`
	Dir        Direction `json:"dir" yaml:"dir"`
	Frightened bool      `json:"frightened" yaml:"frightened"`
	Returning  bool      `json:"returning" yaml:"returning"`
	Home       Spawn     `json:"home" yaml:"home"`
}

func newGhost(s GhostSpawn) Ghost {
	return Ghost{
		Name: s.Name,
		Kind: s.Kind,
		Pos:  core.Vec{X: float64(s.Col), Y: float64(s.Row)},
		Dir:  s.Dir,
		Home: s.Spawn,
	}
}

// Mode derives the state machine position from the two flags.
func (g Ghost) Mode() GhostMode {
	switch {
	case g.Returning:
		return ModeReturningHome
	case g.Frightened:
		return ModeFrightened
	default:
		return ModeNormal
	}
}

// sendHome resets a ghost to its spawn in Normal mode.
func (g *Ghost) sendHome() {
	g.Pos = core.Vec{X: float64(g.Home.Col), Y: float64(g.Home.Row)}
	g.Dir = g.Home.Dir
	g.Frightened = false
	g.Returning = false
}

// captured moves a frightened ghost into ReturningHome.
func (g *Ghost) captured() {
	g.Frightened = false
	g.Returning = true
}

// atHome reports whether the floored position is the home cell.
func (g Ghost) atHome() bool {
	col, row := g.Pos.Cell()
	return col == g.Home.Col && row == g.Home.Row
}

// speed returns the per-tick displacement for the ghost's current mode.
func (g Ghost) speed(base float64, mv movementScale) float64 {
	switch g.Mode() {
	case ModeReturningHome:
		return base * mv.returning
	case ModeFrightened:
		return base * mv.frightened
	default:
		return base
	}
}

// movementScale holds the mode speed multipliers.
type movementScale struct {
	frightened float64
	returning  float64
}
