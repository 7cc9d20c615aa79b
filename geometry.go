package slither

// Cell is a single discrete grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by a direction vector.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// InBounds reports whether c lies within [0,w) x [0,h).
func (c Cell) InBounds(w, h int) bool {
	return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
}

// Directions, in the clockwise order used by the bot policy's action space:
// 0=right, 1=down, 2=left, 3=up. Index arithmetic mod 4 turns right (+1) or
// left (-1) without needing a branch per direction.
var clockwise = [4]Cell{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

var (
	DirRight = clockwise[0]
	DirDown  = clockwise[1]
	DirLeft  = clockwise[2]
	DirUp    = clockwise[3]
)

func directionIndex(d Cell) int {
	for i, c := range clockwise {
		if c == d {
			return i
		}
	}
	return 0
}

// turnOffsets maps the policy's 3-way action space to clockwise-index deltas:
// 0=straight, 1=turn right (+1), 2=turn left (-1).
var turnOffsets = [3]int{0, 1, -1}

// turn rotates d by the clockwise action space: 0=straight, 1=turn right,
// 2=turn left.
func turn(d Cell, action int) Cell {
	offset := turnOffsets[action]
	idx := (directionIndex(d) + offset + len(clockwise)) % len(clockwise)
	return clockwise[idx]
}

// isReverse reports whether turning from `from` to `to` is a direct
// 180-degree reversal, which is never a legal input transition.
func isReverse(from, to Cell) bool {
	return from.X == -to.X && from.Y == -to.Y
}

// parseDirection maps a wire direction name to its unit vector. Unknown
// names report ok=false and are dropped by the caller.
func parseDirection(name string) (Cell, bool) {
	switch name {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return Cell{}, false
}
