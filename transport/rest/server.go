package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - wires the page, the JSON API and the optional websocket and metrics handlers.
func NewRouter(logger *slog.Logger, table tableUseCase, ws, metrics http.Handler) *mux.Router {
	handlers := NewHandlers(logger, table)

	router := mux.NewRouter()
	router.HandleFunc("/", handlers.Index).Methods(http.MethodGet)
	router.HandleFunc("/ping", PingHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", handlers.State).Methods(http.MethodGet)
	api.HandleFunc("/cells/{index}", handlers.Activate).Methods(http.MethodPost)
	api.HandleFunc("/reset", handlers.Reset).Methods(http.MethodPost)
	api.HandleFunc("/theme", handlers.ToggleTheme).Methods(http.MethodPost)

	if ws != nil {
		router.Handle("/ws", ws)
	}

	if metrics != nil {
		router.Handle("/metrics", metrics).Methods(http.MethodGet)
	}

	return router
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	return nil
}
