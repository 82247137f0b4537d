package flow

// Position is a 2D canvas coordinate. There is no bounds checking:
// the canvas pans freely and negative coordinates are valid.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Offset returns the position shifted by dx, dy
func (p Position) Offset(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}
