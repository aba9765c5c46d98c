package display

import (
	"strconv"

	"github.com/muesli/reflow/wordwrap"
	"github.com/pixil98/go-essentials/internal/game"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// FormatLocation renders a location as block coordinates and dimension,
// e.g. "100, 70, -21 in minecraft:overworld".
func FormatLocation(l game.Location) string {
	return block(l.X) + ", " + block(l.Y) + ", " + block(l.Z) + " in " + l.Dimension
}

func block(f float64) string {
	n := int64(f)
	if f < 0 && float64(n) != f {
		n--
	}
	return strconv.FormatInt(n, 10)
}
