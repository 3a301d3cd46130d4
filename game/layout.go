package game

import (
	"embed"
	"fmt"
	"os"
	"path"
	"strings"
)

//go:embed layouts/*.lay
var layoutFiles embed.FS

// Layout is the static part of a grid game: its walls and the starting
// positions of agents and items. Layouts are shared by every state of a game
// and must not change once built.
type Layout struct {
	Width    int
	Height   int
	walls    [][]bool // Indexed by [y][x]
	Pacman   Position
	Ghosts   []Position
	Food     []Position
	Capsules []Position
}

// OpenLayout creates a wall-free layout with no agents or items placed.
func OpenLayout(width, height int) *Layout {
	walls := make([][]bool, height)
	for y := range walls {
		walls[y] = make([]bool, width)
	}
	return &Layout{
		Width:  width,
		Height: height,
		walls:  walls,
	}
}

// IsWall reports whether p is blocked. Cells outside the grid are walls.
func (l *Layout) IsWall(p Position) bool {
	if p.X < 0 || p.Y < 0 || p.X >= l.Width || p.Y >= l.Height {
		return true
	}
	return l.walls[p.Y][p.X]
}

// AddWall blocks a cell.
func (l *Layout) AddWall(p Position) {
	l.walls[p.Y][p.X] = true
}

// Open returns every non-wall cell in reading order.
func (l *Layout) Open() []Position {
	cells := []Position{}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if !l.walls[y][x] {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// ParseLayout reads a layout from its text form: '%' wall, '.' food,
// 'o' capsule, 'P' controlled agent, 'G' ghost and ' ' empty.
func ParseLayout(text string) (*Layout, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("cannot parse layout: empty layout")
	}

	width := len(lines[0])
	l := OpenLayout(width, len(lines))
	pacmen := 0
	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("cannot parse layout: row %d has width %d, expected %d", y, len(line), width)
		}
		for x, c := range line {
			p := Position{X: x, Y: y}
			switch c {
			case '%':
				l.AddWall(p)
			case '.':
				l.Food = append(l.Food, p)
			case 'o':
				l.Capsules = append(l.Capsules, p)
			case 'P':
				l.Pacman = p
				pacmen++
			case 'G':
				l.Ghosts = append(l.Ghosts, p)
			case ' ':
			default:
				return nil, fmt.Errorf("cannot parse layout: unknown cell %q at row %d column %d", c, y, x)
			}
		}
	}
	if pacmen != 1 {
		return nil, fmt.Errorf("cannot parse layout: expected exactly one controlled agent, found %d", pacmen)
	}
	return l, nil
}

// LoadLayout reads a layout file from disk.
func LoadLayout(filename string) (*Layout, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return ParseLayout(string(data))
}

// NamedLayout returns one of the layouts shipped with the module, e.g.
// "smallClassic".
func NamedLayout(name string) (*Layout, error) {
	data, err := layoutFiles.ReadFile(path.Join("layouts", name+".lay"))
	if err != nil {
		return nil, fmt.Errorf("unknown layout %q: %w", name, err)
	}
	return ParseLayout(string(data))
}
