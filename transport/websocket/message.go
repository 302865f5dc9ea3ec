package websocket

import (
	"encoding/json"
	"fmt"
)

const (
	actionState        = "state"
	actionError        = "error"
	actionCellActivate = "cell:activate"
	actionGameReset    = "game:reset"
	actionThemeToggle  = "theme:toggle"
	actionStateGet     = "state:get"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CellPayload is the payload of "cell:activate".
type CellPayload struct {
	Cell *int `json:"cell"`
}

// ThemePayload is the optional payload of "theme:toggle".
type ThemePayload struct {
	Shown string `json:"shown,omitempty"`
}

type ErrorPayload struct {
	Action string `json:"action,omitempty"`
	Error  string `json:"error"`
}

func encodeMessage(action string, payload any) ([]byte, error) {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: rawPayload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}
