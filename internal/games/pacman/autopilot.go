package pacman

import (
	"math"
	"math/rand"
)

// Autopilot steers the player for headless runs. At each cell centre it
// keeps going through corridors and picks a random exit at intersections,
// reversing only in dead ends.
type Autopilot struct {
	rng *rand.Rand
}

// NewAutopilot creates an autopilot with its own random source.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: rand.New(rand.NewSource(seed))}
}

// Intent returns the direction to feed into the next Tick, or DirNone to
// let the player carry on.
func (a *Autopilot) Intent(s *Session) Direction {
	p := s.player
	if s.phase != PhasePlaying || p.Pos.X != math.Floor(p.Pos.X) || p.Pos.Y != math.Floor(p.Pos.Y) {
		return DirNone
	}

	col, row := p.Pos.Cell()
	var exits []Direction
	for _, d := range directionOrder {
		if d != p.Dir.Opposite() && s.maze.Neighbor(col, row, d) {
			exits = append(exits, d)
		}
	}

	switch {
	case len(exits) == 0:
		return p.Dir.Opposite()
	case len(exits) == 1 && exits[0] == p.Dir:
		return DirNone
	default:
		return exits[a.rng.Intn(len(exits))]
	}
}
