// Package display draws grid states on a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"multiagent/game"

	"github.com/muesli/termenv"
)

var colors = map[rune]string{
	'%': "4",  // Blue walls
	'P': "11", // Yellow controlled agent
	'G': "9",  // Red ghosts
	'S': "14", // Cyan scared ghosts
	'o': "15",
	'.': "7",
}

// Render writes the state to w, colored according to the terminal profile
// of the output. Pass termenv.WithProfile to force a profile.
func Render(w io.Writer, state *game.GridState, options ...termenv.OutputOption) error {
	o := termenv.NewOutput(w, options...)
	layout := state.Layout()

	var b strings.Builder
	for y := 0; y < layout.Height; y++ {
		for x := 0; x < layout.Width; x++ {
			cell := state.Cell(game.Position{X: x, Y: y})
			style := o.String(string(cell))
			if color, ok := colors[cell]; ok {
				style = style.Foreground(o.Color(color))
			}
			if cell == 'P' {
				style = style.Bold()
			}
			b.WriteString(style.String())
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Score: %.0f\n", state.Score())

	_, err := io.WriteString(o, b.String())
	return err
}
