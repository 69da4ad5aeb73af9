package pacman

import "github.com/vovakirdan/mazechase/internal/core"

// TryMove advances pos by speed along dir, wrapping at the maze edges.
// Only the floored destination cell is tested, so corners can be clipped
// diagonally. It returns the original position and false when the
// destination is a wall or dir is not a movement direction.
func TryMove(m *Maze, pos core.Vec, dir Direction, speed float64) (core.Vec, bool) {
	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return pos, false
	}
	rows, cols := m.Dims()
	next := core.Vec{
		X: core.WrapFloat(pos.X+float64(dx)*speed, cols),
		Y: core.WrapFloat(pos.Y+float64(dy)*speed, rows),
	}
	col, row := next.Cell()
	if !m.Open(col, row) {
		return pos, false
	}
	return next, true
}

// canTurn reports whether the cell adjacent to pos in dir is Open.
func canTurn(m *Maze, pos core.Vec, dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	col, row := pos.Cell()
	return m.Neighbor(col, row, dir)
}

// Player is the user-controlled agent.
type Player struct {
	Pos       core.Vec  `json:"pos" yaml:"pos"`
	Dir       Direction `json:"dir" yaml:"dir"`
	Queued    Direction `json:"queued" yaml:"queued"` // DirNone when the buffer is empty
	Powered   bool      `json:"powered" yaml:"powered"`
	MouthOpen bool      `json:"mouth_open" yaml:"mouth_open"`
}

// newPlayer places a player at its spawn with an empty turn buffer.
func newPlayer(s Spawn) Player {
	return Player{
		Pos:       core.Vec{X: float64(s.Col), Y: float64(s.Row)},
		Dir:       s.Dir,
		MouthOpen: true,
	}
}

// steer applies a directional intent: turn now if the adjacent cell is
// Open, otherwise hold it in the one-slot buffer.
func (p *Player) steer(m *Maze, d Direction) {
	if !d.Valid() {
		return
	}
	if canTurn(m, p.Pos, d) {
		p.Dir = d
		p.Queued = DirNone
		return
	}
	p.Queued = d
}

// advance moves the player one tick. The buffered direction is tested
// first and replaces the current one when its adjacent cell is Open.
// It reports whether the position changed.
func (p *Player) advance(m *Maze, speed float64) bool {
	if p.Queued != DirNone && canTurn(m, p.Pos, p.Queued) {
		p.Dir = p.Queued
		p.Queued = DirNone
	}
	next, ok := TryMove(m, p.Pos, p.Dir, speed)
	if ok {
		p.Pos = next
	}
	return ok
}
