package terminal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

type recorderStub struct{}

func (recorderStub) MoveApplied()        {}
func (recorderStub) MoveRejected()       {}
func (recorderStub) GameFinished(string) {}
func (recorderStub) ThemeToggled()       {}

func newConsole(t *testing.T, input string) (*Console, usecase.TableUseCase, *bytes.Buffer) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	themeService := service.NewThemeService(logger, repository.NewMemoryPreferenceRepository(), func() bool { return true })
	table := usecase.NewTable(logger, themeService, recorderStub{})
	table.Start(context.Background())

	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))

	return New(logger, table, strings.NewReader(input), out), table, &buf
}

func TestConsole_Run(t *testing.T) {
	t.Run("Plays a game to a win", func(t *testing.T) {
		// Given: input that completes the top row for X
		console, table, buf := newConsole(t, "1\n5\n2\n4\n3\nq\n")

		// When: the console runs
		require.NoError(t, console.Run(context.Background()))

		// Then: the table holds the win and the banner was printed
		snapshot := table.Snapshot()
		assert.Equal(t, "won", snapshot.Status)
		assert.Equal(t, []int{0, 1, 2}, snapshot.WinningLine)
		assert.Contains(t, buf.String(), "Player X wins!")
	})

	t.Run("Illegal input leaves the game alone", func(t *testing.T) {
		// Given: an occupied cell, an out of range number and garbage
		console, table, buf := newConsole(t, "1\n1\n0\n10\nhello\n")

		// When: the console runs to the end of input
		require.NoError(t, console.Run(context.Background()))

		// Then: only the first move counted and help was shown for garbage
		snapshot := table.Snapshot()
		assert.Equal(t, "X", snapshot.Board[0])
		assert.Equal(t, "O", snapshot.CurrentPlayer)
		assert.Contains(t, buf.String(), help)
	})

	t.Run("New game and theme toggle", func(t *testing.T) {
		// Given: a move, a reset and a theme toggle
		console, table, _ := newConsole(t, "5\nn\nt\n")

		// When: the console runs
		require.NoError(t, console.Run(context.Background()))

		// Then: the board is empty and the dark default flipped to light
		snapshot := table.Snapshot()
		assert.Empty(t, snapshot.Board[4])
		assert.Equal(t, "light", snapshot.Theme)
	})

	t.Run("Canceled context stops the loop", func(t *testing.T) {
		console, _, _ := newConsole(t, "")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.NoError(t, console.Run(ctx))
	})
}

func TestRender(t *testing.T) {
	// Given: a snapshot in progress
	snapshot := usecase.Snapshot{
		Board:         [9]string{"X", "", "", "", "O", "", "", "", ""},
		CurrentPlayer: "X",
		Status:        "in_progress",
		Theme:         "dark",
		Message:       "Player X's turn",
	}
	out := termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii))

	// When: it is rendered
	text := Render(out, snapshot)

	// Then: marks, hints and the banner are present
	assert.Contains(t, text, "Player X's turn")
	assert.Contains(t, text, "X")
	assert.Contains(t, text, "O")
	assert.Contains(t, text, "9")
	assert.Equal(t, 2, strings.Count(text, "---+---+---"))
}
