package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const help = "cells 1-9 | n: new game | t: toggle theme | q: quit"

type tableUseCase interface {
	Activate(ctx context.Context, cell int) usecase.Snapshot
	NewGame(ctx context.Context) usecase.Snapshot
	ToggleTheme(ctx context.Context, shown entity.Theme) (usecase.Snapshot, error)
	Snapshot() usecase.Snapshot
	Subscribe(observer usecase.Observer) (unsubscribe func())
}

// Console plays the table from a line-based terminal.
type Console struct {
	logger *slog.Logger
	table  tableUseCase

	in io.Reader

	outMu sync.Mutex
	out   *termenv.Output
}

func New(logger *slog.Logger, table tableUseCase, in io.Reader, out *termenv.Output) *Console {
	return &Console{
		logger: logger.With("component", "terminal"),
		table:  table,
		in:     in,
		out:    out,
	}
}

// Run - redraws the board after every change until "q", end of input or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	unsubscribe := that.table.Subscribe(that.draw)
	defer unsubscribe()

	that.draw(that.table.Snapshot())

	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		case line := <-lines:
			if quit := that.handle(ctx, strings.TrimSpace(line)); quit {
				return nil
			}
		}
	}
}

// handle - executes one input line; reports whether the user asked to quit.
func (that *Console) handle(ctx context.Context, line string) bool {
	switch strings.ToLower(line) {
	case "":
		return false
	case "q", "quit", "exit":
		return true
	case "n", "new":
		that.table.NewGame(ctx)
		return false
	case "t", "theme":
		if _, err := that.table.ToggleTheme(ctx, entity.ThemeUnset); err != nil {
			that.logger.Error("failed to toggle theme", "error", err)
			that.println(that.out.String("theme changed but could not be saved").Foreground(that.out.Color("1")).String())
		}
		return false
	}

	number, err := strconv.Atoi(line)
	if err != nil {
		that.println(help)
		return false
	}

	// illegal moves leave the table untouched and are not redrawn
	that.table.Activate(ctx, number-1)

	return false
}

func (that *Console) draw(snapshot usecase.Snapshot) {
	that.println(Render(that.out, snapshot))
}

func (that *Console) println(text string) {
	that.outMu.Lock()
	defer that.outMu.Unlock()

	if _, err := fmt.Fprintln(that.out, text); err != nil {
		that.logger.Debug("failed to write to terminal", "error", err)
	}
}
