package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const outcomeDraw = "draw"

// Snapshot is a copy of everything a renderer needs to draw the page.
type Snapshot struct {
	Board         [entity.BoardSize]string `json:"board"`
	CurrentPlayer string                   `json:"current_player"`
	Status        string                   `json:"status"`
	Winner        string                   `json:"winner,omitempty"`
	WinningLine   []int                    `json:"winning_line"`
	Theme         string                   `json:"theme"` // "" while unset
	Message       string                   `json:"message"`
}

// IsWinningCell - reports whether index belongs to the winning line.
func (that Snapshot) IsWinningCell(index int) bool {
	for _, cell := range that.WinningLine {
		if cell == index {
			return true
		}
	}
	return false
}

// Observer is called with a fresh snapshot after every change of the table.
// Calls are serialized and never go back to an older state.
type Observer func(Snapshot)

// TableUseCase owns the single local game and the theme flag.
type TableUseCase interface {
	// Start loads the theme preference; call it once before serving.
	Start(ctx context.Context)

	Activate(ctx context.Context, cell int) Snapshot
	NewGame(ctx context.Context) Snapshot
	// ToggleTheme flips the theme. shown is what the caller currently displays and is
	// only consulted while the theme is still unset.
	ToggleTheme(ctx context.Context, shown entity.Theme) (Snapshot, error)
	Snapshot() Snapshot

	// Subscribe registers an observer. Observers must not change the table.
	Subscribe(observer Observer) (unsubscribe func())
}

type themeService interface {
	Load(ctx context.Context) entity.Theme
	Toggle(ctx context.Context, current entity.Theme) (entity.Theme, error)
}

type recorder interface {
	MoveApplied()
	MoveRejected()
	GameFinished(outcome string)
	ThemeToggled()
}

type table struct {
	logger *slog.Logger

	themeService themeService
	recorder     recorder

	mu      sync.Mutex
	state   entity.GameState
	theme   entity.Theme
	version uint64

	// themeMu serializes toggles so the store round trip runs without mu.
	themeMu sync.Mutex

	deliverMu sync.Mutex
	delivered uint64

	observersMu    sync.Mutex
	observers      map[int]Observer
	nextObserverID int
}

func NewTable(logger *slog.Logger, themeService themeService, recorder recorder) TableUseCase {
	return &table{
		logger:       logger.With("component", "table"),
		themeService: themeService,
		recorder:     recorder,
		state:        entity.NewGameState(),
		theme:        entity.ThemeLight,
		observers:    make(map[int]Observer),
	}
}

func (that *table) Start(ctx context.Context) {
	theme := that.themeService.Load(ctx)

	that.mu.Lock()
	that.theme = theme
	version, snapshot := that.commitLocked()
	that.mu.Unlock()

	that.logger.Info("table started", "theme", theme)

	that.notify(version, snapshot)
}

func (that *table) Activate(_ context.Context, cell int) Snapshot {
	log := that.logger.With("method", "Activate", "cell", cell)

	that.mu.Lock()
	applied := that.state.ApplyMove(cell)
	state := that.state
	if !applied {
		snapshot := that.snapshotLocked()
		that.mu.Unlock()

		log.Debug("move ignored", "status", state.Status)
		that.recorder.MoveRejected()

		return snapshot
	}
	version, snapshot := that.commitLocked()
	that.mu.Unlock()

	that.recorder.MoveApplied()

	switch state.Status {
	case entity.StatusWon:
		log.Info("game won", "winner", state.Winner, "line", state.WinningLine)
		that.recorder.GameFinished(string(state.Winner))
	case entity.StatusDraw:
		log.Info("game drawn")
		that.recorder.GameFinished(outcomeDraw)
	case entity.StatusInProgress:
		log.Debug("move applied", "next", state.CurrentPlayer)
	}

	that.notify(version, snapshot)

	return snapshot
}

func (that *table) NewGame(_ context.Context) Snapshot {
	that.mu.Lock()
	that.state.Reset()
	version, snapshot := that.commitLocked()
	that.mu.Unlock()

	that.logger.Info("new game")

	that.notify(version, snapshot)

	return snapshot
}

func (that *table) ToggleTheme(ctx context.Context, shown entity.Theme) (Snapshot, error) {
	that.themeMu.Lock()
	defer that.themeMu.Unlock()

	that.mu.Lock()
	current := that.theme
	that.mu.Unlock()

	if current == entity.ThemeUnset {
		current = shown
	}

	theme, err := that.themeService.Toggle(ctx, current)

	that.mu.Lock()
	that.theme = theme
	version, snapshot := that.commitLocked()
	that.mu.Unlock()

	that.recorder.ThemeToggled()
	that.notify(version, snapshot)

	if err != nil {
		that.logger.Error("theme toggled but not saved", "theme", theme, "error", err)
		return snapshot, fmt.Errorf("failed to toggle theme: %w", err)
	}

	that.logger.Info("theme toggled", "theme", theme)

	return snapshot, nil
}

func (that *table) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

func (that *table) Subscribe(observer Observer) func() {
	that.observersMu.Lock()
	defer that.observersMu.Unlock()

	id := that.nextObserverID
	that.nextObserverID++
	that.observers[id] = observer

	return func() {
		that.observersMu.Lock()
		defer that.observersMu.Unlock()

		delete(that.observers, id)
	}
}

// notify - runs observers outside of the state lock so they may read the table.
// A snapshot older than the last delivered one lost the race to a newer change and is dropped.
func (that *table) notify(version uint64, snapshot Snapshot) {
	that.deliverMu.Lock()
	defer that.deliverMu.Unlock()

	if version <= that.delivered {
		that.logger.Debug("stale snapshot dropped", "version", version, "delivered", that.delivered)
		return
	}
	that.delivered = version

	that.observersMu.Lock()
	observers := make([]Observer, 0, len(that.observers))
	for _, observer := range that.observers {
		observers = append(observers, observer)
	}
	that.observersMu.Unlock()

	for _, observer := range observers {
		observer(snapshot)
	}
}

// commitLocked - marks a change and returns its version with the resulting snapshot.
func (that *table) commitLocked() (uint64, Snapshot) {
	that.version++

	return that.version, that.snapshotLocked()
}

func (that *table) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		CurrentPlayer: string(that.state.CurrentPlayer),
		Status:        string(that.state.Status),
		Winner:        string(that.state.Winner),
		WinningLine:   append([]int{}, that.state.WinningLine...),
		Theme:         string(that.theme),
		Message:       bannerMessage(that.state),
	}

	for i, cell := range that.state.Board {
		snapshot.Board[i] = string(cell)
	}

	return snapshot
}

// bannerMessage - the turn/result line shown above the board.
func bannerMessage(state entity.GameState) string {
	switch state.Status {
	case entity.StatusWon:
		return fmt.Sprintf("Player %s wins!", state.Winner)
	case entity.StatusDraw:
		return "It's a draw!"
	default:
		return fmt.Sprintf("Player %s's turn", state.CurrentPlayer)
	}
}
