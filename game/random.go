package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// RandomState places the controlled agent, ghosts and food on distinct
// random cells of an open width x height grid.
func RandomState(width, height, food, ghosts int, rules *Rules, rng *rand.Rand) (*GridState, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("cannot build a %dx%d grid", width, height)
	}
	if food < 0 || ghosts < 0 {
		return nil, fmt.Errorf("cannot place %d food and %d ghosts", food, ghosts)
	}

	layout := OpenLayout(width, height)
	cells := layout.Open()
	if needed := 1 + ghosts + food; needed > len(cells) {
		return nil, fmt.Errorf("cannot place %d agents and items on %d cells", needed, len(cells))
	}

	order := rng.Perm(len(cells))
	layout.Pacman = cells[order[0]]
	for _, i := range order[1 : 1+ghosts] {
		layout.Ghosts = append(layout.Ghosts, cells[i])
	}
	for _, i := range order[1+ghosts : 1+ghosts+food] {
		layout.Food = append(layout.Food, cells[i])
	}
	return NewGridState(layout, rules), nil
}
