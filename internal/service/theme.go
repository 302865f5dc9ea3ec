package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// ThemeKey is the fixed key the theme flag is stored under.
const ThemeKey = "theme"

// DarkModeProbe reports the OS/terminal dark-mode preference. A nil probe means the
// preference belongs to the viewer (the browser) and Load returns entity.ThemeUnset.
type DarkModeProbe func() bool

type ThemeService interface {
	// Load reads the stored theme, falling back to the OS preference.
	Load(ctx context.Context) entity.Theme
	// Toggle flips current and stores the result.
	Toggle(ctx context.Context, current entity.Theme) (entity.Theme, error)
}

type preferenceRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type themeService struct {
	logger *slog.Logger

	preferenceRepo preferenceRepository
	prefersDark    DarkModeProbe
}

func NewThemeService(logger *slog.Logger, preferenceRepo preferenceRepository, prefersDark DarkModeProbe) ThemeService {
	return &themeService{
		logger:         logger,
		preferenceRepo: preferenceRepo,
		prefersDark:    prefersDark,
	}
}

func (that *themeService) Load(ctx context.Context) entity.Theme {
	log := that.logger.With("method", "Load")

	value, ok, err := that.preferenceRepo.Get(ctx, ThemeKey)
	if err != nil {
		log.Error("failed to read theme preference, using system preference", "error", err)
	}

	if theme, known := entity.ParseTheme(value); err == nil && ok && known {
		log.Debug("theme loaded from store", "theme", theme)
		return theme
	}

	if ok && err == nil {
		log.Warn("ignoring unknown stored theme", "value", value)
	}

	if that.prefersDark == nil {
		log.Debug("no stored theme, leaving it to the viewer")
		return entity.ThemeUnset
	}

	theme := entity.ThemeLight
	if that.prefersDark() {
		theme = entity.ThemeDark
	}

	log.Debug("theme taken from system preference", "theme", theme)

	return theme
}

func (that *themeService) Toggle(ctx context.Context, current entity.Theme) (entity.Theme, error) {
	theme := current.Toggle()

	if err := that.preferenceRepo.Set(ctx, ThemeKey, string(theme)); err != nil {
		return theme, fmt.Errorf("%w: %w", apperror.ErrThemeNotSaved, err)
	}

	return theme, nil
}
