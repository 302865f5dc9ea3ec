package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 16
)

type tableUseCase interface {
	Activate(ctx context.Context, cell int) usecase.Snapshot
	NewGame(ctx context.Context) usecase.Snapshot
	ToggleTheme(ctx context.Context, shown entity.Theme) (usecase.Snapshot, error)
	Snapshot() usecase.Snapshot
	Subscribe(observer usecase.Observer) (unsubscribe func())
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Server pushes table snapshots to every connected page and forwards their actions.
type Server struct {
	logger *slog.Logger
	table  tableUseCase

	upgrader    websocket.Upgrader
	unsubscribe func()

	handlers map[string]func(ctx context.Context, c *client, message *Message) error

	clientsMutex sync.RWMutex
	clients      map[string]*client
	closed       bool
}

func New(logger *slog.Logger, table tableUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		table:  table,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]func(context.Context, *client, *Message) error),
		clients:  make(map[string]*client),
	}

	server.handlers[actionCellActivate] = server.handleCellActivate
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionThemeToggle] = server.handleThemeToggle
	server.handlers[actionStateGet] = server.handleStateGet

	server.unsubscribe = table.Subscribe(server.broadcast)

	return server
}

// Close - stops receiving table updates and disconnects every client; later upgrades are refused.
func (that *Server) Close() {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	if that.closed {
		return
	}
	that.closed = true

	that.unsubscribe()

	for id, c := range that.clients {
		close(c.send)
		delete(that.clients, id)
	}
}

// ServeHTTP - upgrades the connection and serves it until the peer goes away.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	if that.isClosed() {
		http.Error(writer, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	if !that.addClient(c) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		_ = conn.Close()
		return
	}

	log.Info("WebSocket connection established", "client", c.id, "clients", that.clientCount())

	go that.writePump(c)

	that.sendTo(c, actionState, that.table.Snapshot())
	that.readPump(req.Context(), c)
}

// readPump - processes messages from the client.
func (that *Server) readPump(ctx context.Context, c *client) {
	log := that.logger.With("method", "readPump", "client", c.id)

	defer func() {
		that.removeClient(c.id)
		_ = c.conn.Close()
		log.Info("WebSocket connection closed", "clients", that.clientCount())
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			that.sendTo(c, actionError, ErrorPayload{Error: "malformed message"})
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendTo(c, actionError, ErrorPayload{Action: message.Action, Error: apperror.ErrUnknownAction.Error()})
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			that.sendTo(c, actionError, ErrorPayload{Action: message.Action, Error: err.Error()})
		}
	}
}

// writePump - the only goroutine writing to the connection.
func (that *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				that.logger.Debug("failed to write message", "client", c.id, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// broadcast - table observer; slow clients are dropped instead of blocking the table.
func (that *Server) broadcast(snapshot usecase.Snapshot) {
	data, err := encodeMessage(actionState, snapshot)
	if err != nil {
		that.logger.Error("failed to encode snapshot", "error", err)
		return
	}

	var slow []string

	that.clientsMutex.RLock()
	for id, c := range that.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, id)
		}
	}
	that.clientsMutex.RUnlock()

	for _, id := range slow {
		that.logger.Warn("dropping slow client", "client", id)
		that.removeClient(id)
	}
}

func (that *Server) sendTo(c *client, action string, payload any) {
	data, err := encodeMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "action", action, "error", err)
		return
	}

	that.clientsMutex.RLock()
	defer that.clientsMutex.RUnlock()

	if _, ok := that.clients[c.id]; !ok {
		return
	}

	select {
	case c.send <- data:
	default:
		that.logger.Warn("send buffer full, message dropped", "client", c.id, "action", action)
	}
}

// addClient - registers c unless the server is already closed.
func (that *Server) addClient(c *client) bool {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	if that.closed {
		return false
	}

	that.clients[c.id] = c

	return true
}

func (that *Server) isClosed() bool {
	that.clientsMutex.RLock()
	defer that.clientsMutex.RUnlock()

	return that.closed
}

func (that *Server) removeClient(id string) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	if c, ok := that.clients[id]; ok {
		close(c.send)
		delete(that.clients, id)
	}
}

func (that *Server) clientCount() int {
	that.clientsMutex.RLock()
	defer that.clientsMutex.RUnlock()

	return len(that.clients)
}
