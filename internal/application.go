package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
	"github.com/rocketscienceinc/tictactoe-web/transport/terminal"
	"github.com/rocketscienceinc/tictactoe-web/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - serves the page, the API and the websocket until SIGINT/SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := notifyContext(log)
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// the page resolves an unset theme with the browser's prefers-color-scheme
	prefersDark := service.OverrideDarkModeProbe(conf.Theme.PreferDark)

	table, closeStore, err := newTable(ctx, logger, conf, metrics.New(registry), prefersDark)
	if err != nil {
		return err
	}
	defer closeStore()

	table.Start(ctx)

	wsServer := websocket.New(logger, table)
	defer wsServer.Close()

	router := rest.NewRouter(logger, table, wsServer, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// RunConsole - plays the table in the terminal on in/out.
func RunConsole(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := notifyContext(log)
	defer cancel()

	prefersDark := service.SystemDarkModeProbe(conf.Theme.PreferDark)

	table, closeStore, err := newTable(ctx, logger, conf, metrics.New(prometheus.NewRegistry()), prefersDark)
	if err != nil {
		return err
	}
	defer closeStore()

	table.Start(ctx)

	console := terminal.New(logger, table, in, termenv.NewOutput(out))
	if err = console.Run(ctx); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}

	return nil
}

func notifyContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}

// newTable - builds the table on top of redis when enabled, otherwise on process memory.
func newTable(
	ctx context.Context,
	logger *slog.Logger,
	conf *config.Config,
	recorder *metrics.Metrics,
	prefersDark service.DarkModeProbe,
) (usecase.TableUseCase, func(), error) {
	log := logger.With("component", "app")

	preferenceRepo := repository.NewMemoryPreferenceRepository()
	closeStore := func() {}

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		preferenceRepo = repository.NewPreferenceRepository(redisStorage.Connection)
		closeStore = func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		log.Info("theme preference stored in redis", "addr", redisAddrString)
	}

	themeService := service.NewThemeService(logger, preferenceRepo, prefersDark)

	return usecase.NewTable(logger, themeService, recorder), closeStore, nil
}
