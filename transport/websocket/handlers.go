package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// handleCellActivate - the resulting state reaches every client through broadcast;
// ignored moves produce no reply.
func (that *Server) handleCellActivate(ctx context.Context, _ *client, msg *Message) error {
	var payload CellPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Cell == nil {
		return fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell)
	}

	that.table.Activate(ctx, *payload.Cell)

	return nil
}

func (that *Server) handleGameReset(ctx context.Context, _ *client, _ *Message) error {
	that.table.NewGame(ctx)

	return nil
}

func (that *Server) handleThemeToggle(ctx context.Context, _ *client, msg *Message) error {
	var payload ThemePayload

	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	shown, _ := entity.ParseTheme(payload.Shown)

	if _, err := that.table.ToggleTheme(ctx, shown); err != nil {
		return fmt.Errorf("failed to toggle theme: %w", err)
	}

	return nil
}

func (that *Server) handleStateGet(_ context.Context, c *client, _ *Message) error {
	that.sendTo(c, actionState, that.table.Snapshot())

	return nil
}
