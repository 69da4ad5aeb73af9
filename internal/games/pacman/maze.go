package pacman

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mazechase/internal/core"
)

// CellKind is the walkability of a maze cell.
type CellKind uint8

const (
	CellOpen CellKind = iota
	CellWall
)

func (k CellKind) String() string {
	if k == CellWall {
		return "wall"
	}
	return "open"
}

// Collectible is a dot or power pellet at an integer cell.
type Collectible struct {
	Col     int  `json:"col" yaml:"col"`
	Row     int  `json:"row" yaml:"row"`
	Visible bool `json:"visible" yaml:"visible"`
}

// Maze is the immutable wall topology of a session.
// Food lives in separate Collectible slices, so every cell is either
// Open or Wall here.
type Maze struct {
	rows  int
	cols  int
	cells []CellKind
}

// ParseMaze builds a Maze from layout rows, extracting every dot and
// pellet marker into a visible Collectible and leaving an Open cell behind.
func ParseMaze(rows []string) (*Maze, []Collectible, []Collectible, error) {
	if len(rows) == 0 {
		return nil, nil, nil, errors.New("pacman: layout has no rows")
	}
	cols := len([]rune(rows[0]))
	if cols == 0 {
		return nil, nil, nil, errors.New("pacman: layout has no columns")
	}

	m := &Maze{rows: len(rows), cols: cols, cells: make([]CellKind, len(rows)*cols)}
	var dots, pellets []Collectible
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, nil, nil, fmt.Errorf("pacman: layout row %d has %d columns, expected %d", r, len(runes), cols)
		}
		for c, ch := range runes {
			switch ch {
			case SymbolWall:
				m.cells[r*cols+c] = CellWall
			case SymbolDot:
				dots = append(dots, Collectible{Col: c, Row: r, Visible: true})
			case SymbolPellet:
				pellets = append(pellets, Collectible{Col: c, Row: r, Visible: true})
			case SymbolEmpty:
			default:
				return nil, nil, nil, fmt.Errorf("pacman: layout row %d col %d: unknown symbol %q", r, c, ch)
			}
		}
	}
	return m, dots, pellets, nil
}

// Dims returns the row and column counts.
func (m *Maze) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// CellAt returns the kind of the cell at (row, col), wrapping both
// indices so tunnel corridors connect opposite edges.
func (m *Maze) CellAt(row, col int) CellKind {
	r := core.WrapInt(row, m.rows)
	c := core.WrapInt(col, m.cols)
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("pacman: cell (%d, %d) out of range after wrap", row, col))
	}
	return m.cells[r*m.cols+c]
}

// Open reports whether the cell at (col, row) is walkable.
func (m *Maze) Open(col, row int) bool {
	return m.CellAt(row, col) == CellOpen
}

// Neighbor reports whether the cell adjacent to (col, row) in dir is Open.
func (m *Maze) Neighbor(col, row int, dir Direction) bool {
	dx, dy := dir.Delta()
	return m.Open(col+dx, row+dy)
}

// Grid renders the wall topology as rows of '#' and ' '.
func (m *Maze) Grid() []string {
	out := make([]string, m.rows)
	line := make([]rune, m.cols)
	for r := range m.rows {
		for c := range m.cols {
			if m.cells[r*m.cols+c] == CellWall {
				line[c] = SymbolWall
			} else {
				line[c] = SymbolEmpty
			}
		}
		out[r] = string(line)
	}
	return out
}

// validate checks that a layout's spawns sit on open cells within bounds.
func (l Layout) validate(m *Maze) error {
	rows, cols := m.Dims()
	check := func(what string, s Spawn) error {
		if s.Col < 0 || s.Col >= cols || s.Row < 0 || s.Row >= rows {
			return fmt.Errorf("pacman: %s spawn (%d, %d) outside %dx%d maze", what, s.Col, s.Row, cols, rows)
		}
		if !m.Open(s.Col, s.Row) {
			return fmt.Errorf("pacman: %s spawn (%d, %d) is a wall", what, s.Col, s.Row)
		}
		return nil
	}

	errs := []error{check("player", l.Player)}
	if len(l.Ghosts) != GhostCount {
		errs = append(errs, fmt.Errorf("pacman: layout must place %d ghosts, got %d", GhostCount, len(l.Ghosts)))
	}
	for _, g := range l.Ghosts {
		errs = append(errs, check("ghost "+g.Name, g.Spawn))
		if _, ok := policies[g.Kind]; !ok {
			errs = append(errs, fmt.Errorf("pacman: ghost %s has unknown kind %d", g.Name, int(g.Kind)))
		}
	}
	return errors.Join(errs...)
}
