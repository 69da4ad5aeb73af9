package pacman

import (
	"math"

	"github.com/vovakirdan/mazechase/internal/core"
)

// consumeAt hides the first visible collectible on (col, row).
func consumeAt(items []Collectible, col, row int) bool {
	for i := range items {
		if items[i].Visible && items[i].Col == col && items[i].Row == row {
			items[i].Visible = false
			return true
		}
	}
	return false
}

// allEaten reports whether no collectible in any group is visible.
func allEaten(groups ...[]Collectible) bool {
	for _, items := range groups {
		for _, it := range items {
			if it.Visible {
				return false
			}
		}
	}
	return true
}

// countVisible returns how many collectibles are still on the board.
func countVisible(items []Collectible) int {
	n := 0
	for _, it := range items {
		if it.Visible {
			n++
		}
	}
	return n
}

// overlaps reports whether both axis distances are below leeway.
func overlaps(a, b core.Vec, leeway float64) bool {
	return math.Abs(a.X-b.X) < leeway && math.Abs(a.Y-b.Y) < leeway
}
