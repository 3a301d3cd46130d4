package game

const (
	North Action = "North"
	South Action = "South"
	East  Action = "East"
	West  Action = "West"
	Stop  Action = "Stop"
)

// Directions lists the moving actions in the order legal actions are generated.
var Directions = []Action{North, South, East, West}

// Position is a cell on the grid, Y grows downwards.
type Position struct {
	X int
	Y int
}

func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// Vector returns the offset an action moves by.
func Vector(a Action) Position {
	switch a {
	case North:
		return Position{X: 0, Y: -1}
	case South:
		return Position{X: 0, Y: 1}
	case East:
		return Position{X: 1, Y: 0}
	case West:
		return Position{X: -1, Y: 0}
	default:
		return Position{}
	}
}

// ManhattanDistance is the grid distance between two positions.
func ManhattanDistance(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
