package terminal

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

type palette struct {
	x, o, hint, win, banner string
}

var palettes = map[string]palette{
	"light": {x: "#2563eb", o: "#e11d48", hint: "#9ca3af", win: "#86efac", banner: "#1f2937"},
	"dark":  {x: "#60a5fa", o: "#fb7185", hint: "#4b5563", win: "#15803d", banner: "#f3f4f6"},
}

// Render - draws the banner and the 3x3 grid; empty cells show the number that activates them.
func Render(out *termenv.Output, snapshot usecase.Snapshot) string {
	colors, ok := palettes[snapshot.Theme]
	if !ok {
		colors = palettes["light"]
	}

	var sb strings.Builder

	sb.WriteString(out.String(snapshot.Message).Bold().Foreground(out.Color(colors.banner)).String())
	sb.WriteString("\n\n")

	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			index := row*3 + col
			cells = append(cells, renderCell(out, colors, snapshot, index))
		}

		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	sb.WriteString("\n" + help)

	return sb.String()
}

func renderCell(out *termenv.Output, colors palette, snapshot usecase.Snapshot, index int) string {
	value := snapshot.Board[index]

	var style termenv.Style
	switch value {
	case "X":
		style = out.String(value).Bold().Foreground(out.Color(colors.x))
	case "O":
		style = out.String(value).Bold().Foreground(out.Color(colors.o))
	default:
		style = out.String(strconv.Itoa(index + 1)).Faint().Foreground(out.Color(colors.hint))
	}

	if snapshot.IsWinningCell(index) {
		style = style.Background(out.Color(colors.win))
	}

	return style.String()
}
