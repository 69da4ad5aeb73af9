package pacman

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/mazechase/internal/core"
)

// pursuit holds the inputs every policy reads.
type pursuit struct {
	player       Player
	ambushOffset int
	hybridRange  float64
}

// targetFunc picks a target cell for a ghost. ok=false means wander.
type targetFunc func(g Ghost, p pursuit) (target core.Vec, ok bool)

// policies maps each ghost kind to its target selection. All kinds share
// the same available-direction and minimize-distance machinery.
var policies = map[GhostKind]targetFunc{
	KindChaser:   chaseTarget,
	KindAmbusher: ambushTarget,
	KindErratic:  wanderTarget,
	KindHybrid:   hybridTarget,
}

func playerCell(p Player) core.Vec {
	col, row := p.Pos.Cell()
	return core.Vec{X: float64(col), Y: float64(row)}
}

func chaseTarget(_ Ghost, p pursuit) (core.Vec, bool) {
	return playerCell(p.player), true
}

// ambushTarget aims a fixed number of cells along the player's facing.
// The target may be inside a wall.
func ambushTarget(_ Ghost, p pursuit) (core.Vec, bool) {
	dx, dy := p.player.Dir.Delta()
	n := float64(p.ambushOffset)
	return playerCell(p.player).Add(float64(dx)*n, float64(dy)*n), true
}

func wanderTarget(Ghost, pursuit) (core.Vec, bool) {
	return core.Vec{}, false
}

func hybridTarget(g Ghost, p pursuit) (core.Vec, bool) {
	if g.Pos.Dist(p.player.Pos) > p.hybridRange {
		return core.Vec{}, false
	}
	return chaseTarget(g, p)
}

// availableDirections lists the directions whose adjacent cell is Open,
// excluding the reversal of the current direction unless nothing else
// is possible. The result follows directionOrder.
func availableDirections(m *Maze, g Ghost) []Direction {
	col, row := g.Pos.Cell()
	reverse := g.Dir.Opposite()

	dirs := make([]Direction, 0, len(directionOrder))
	for _, d := range directionOrder {
		if d != reverse && m.Neighbor(col, row, d) {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 && reverse != DirNone && m.Neighbor(col, row, reverse) {
		dirs = append(dirs, reverse)
	}
	return dirs
}

// closestDirection returns the available direction whose one-step
// position is nearest to target. Ties keep the earlier direction.
func closestDirection(g Ghost, dirs []Direction, target core.Vec) Direction {
	best := dirs[0]
	bestDist := math.Inf(1)
	for _, d := range dirs {
		dx, dy := d.Delta()
		dist := g.Pos.Add(float64(dx), float64(dy)).Dist(target)
		if dist < bestDist {
			bestDist = dist
			best = d
		}
	}
	return best
}

// decide selects a ghost's direction for this tick. A ghost with no
// available direction keeps its current one.
func decide(m *Maze, g Ghost, p pursuit, rng *rand.Rand) Direction {
	dirs := availableDirections(m, g)
	if len(dirs) == 0 {
		return g.Dir
	}

	var target core.Vec
	var chase bool
	switch g.Mode() {
	case ModeReturningHome:
		target, chase = core.Vec{X: float64(g.Home.Col), Y: float64(g.Home.Row)}, true
	case ModeFrightened:
		chase = false
	default:
		target, chase = policies[g.Kind](g, p)
	}

	if !chase {
		return dirs[rng.Intn(len(dirs))]
	}
	return closestDirection(g, dirs, target)
}
