package rest

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

//go:embed templates/index.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type tableUseCase interface {
	Activate(ctx context.Context, cell int) usecase.Snapshot
	NewGame(ctx context.Context) usecase.Snapshot
	ToggleTheme(ctx context.Context, shown entity.Theme) (usecase.Snapshot, error)
	Snapshot() usecase.Snapshot
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger *slog.Logger
	table  tableUseCase
}

func NewHandlers(logger *slog.Logger, table tableUseCase) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		table:  table,
	}
}

// Index - renders the page with the current state so it is usable before the socket connects.
func (that *Handlers) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := pageTemplate.Execute(w, that.table.Snapshot()); err != nil {
		that.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *Handlers) State(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.table.Snapshot())
}

// Activate - forwards "cell activated"; illegal moves answer 200 with the unchanged state.
func (that *Handlers) Activate(w http.ResponseWriter, r *http.Request) {
	cell, err := parseCell(mux.Vars(r)["index"])
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	that.writeJSON(w, http.StatusOK, that.table.Activate(r.Context(), cell))
}

func (that *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.table.NewGame(r.Context()))
}

// ToggleTheme - ?shown= carries the theme the page displays while none was chosen yet.
func (that *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	shown, _ := entity.ParseTheme(r.URL.Query().Get("shown"))

	snapshot, err := that.table.ToggleTheme(r.Context(), shown)
	if errors.Is(err, apperror.ErrThemeNotSaved) {
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: apperror.ErrThemeNotSaved.Error()})
		return
	}
	if err != nil {
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to toggle theme"})
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func parseCell(raw string) (int, error) {
	cell, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, raw)
	}

	return cell, nil
}
