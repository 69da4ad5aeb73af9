// Package pacman implements the maze-chase simulation engine: the maze
// model, grid movement with tunnel wraparound and a one-slot turn buffer,
// four ghost pursuit policies, collision and scoring, the power-mode
// countdown and the session lifecycle. Rendering into a core.Screen and
// the core.Game adapter used by the hosts live here as well.
package pacman

import (
	"fmt"
	"strings"
)

// Direction is one of the four grid directions, or DirNone.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// directionOrder is the enumeration order used for ghost tie-breaks.
var directionOrder = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Valid reports whether d is one of the four movement directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// Delta returns the unit column and row offsets of d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reversal of d. DirNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection converts a name such as "up" into a Direction.
// Unknown names return DirNone and false.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "none", "":
		return DirNone, true
	default:
		return DirNone, false
	}
}

// MarshalText encodes d by name for JSON and YAML snapshots.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return fmt.Errorf("pacman: unknown direction %q", b)
	}
	*d = v
	return nil
}
