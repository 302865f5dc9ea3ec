package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("broken store")

type brokenRepository struct{}

func (brokenRepository) Get(context.Context, string) (string, bool, error) {
	return "", false, errBroken
}

func (brokenRepository) Set(context.Context, string, string) error {
	return errBroken
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func prefers(dark bool) DarkModeProbe {
	return func() bool { return dark }
}

func TestThemeService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored theme wins over system preference", func(t *testing.T) {
		// Given: "light" is stored while the system prefers dark
		repo := repository.NewMemoryPreferenceRepository()
		require.NoError(t, repo.Set(ctx, ThemeKey, "light"))
		themeService := NewThemeService(newLogger(), repo, prefers(true))

		// When: the theme is loaded
		theme := themeService.Load(ctx)

		// Then: the stored theme is used
		assert.Equal(t, entity.ThemeLight, theme)
	})

	t.Run("System preference when nothing is stored", func(t *testing.T) {
		repo := repository.NewMemoryPreferenceRepository()

		assert.Equal(t, entity.ThemeDark, NewThemeService(newLogger(), repo, prefers(true)).Load(ctx))
		assert.Equal(t, entity.ThemeLight, NewThemeService(newLogger(), repo, prefers(false)).Load(ctx))
	})

	t.Run("Unknown stored value falls back to system preference", func(t *testing.T) {
		// Given: garbage stored under the theme key
		repo := repository.NewMemoryPreferenceRepository()
		require.NoError(t, repo.Set(ctx, ThemeKey, "purple"))

		// When: the theme is loaded
		theme := NewThemeService(newLogger(), repo, prefers(true)).Load(ctx)

		// Then: the system preference is used
		assert.Equal(t, entity.ThemeDark, theme)
	})

	t.Run("Without a system preference the theme stays unset", func(t *testing.T) {
		// Given: nothing stored and no system preference available
		repo := repository.NewMemoryPreferenceRepository()

		// When: the theme is loaded
		theme := NewThemeService(newLogger(), repo, nil).Load(ctx)

		// Then: the viewer decides
		assert.Equal(t, entity.ThemeUnset, theme)
	})

	t.Run("Without a system preference a stored theme still wins", func(t *testing.T) {
		repo := repository.NewMemoryPreferenceRepository()
		require.NoError(t, repo.Set(ctx, ThemeKey, "dark"))

		assert.Equal(t, entity.ThemeDark, NewThemeService(newLogger(), repo, nil).Load(ctx))
	})

	t.Run("Store error falls back to system preference", func(t *testing.T) {
		theme := NewThemeService(newLogger(), brokenRepository{}, prefers(false)).Load(ctx)

		assert.Equal(t, entity.ThemeLight, theme)
	})
}

func TestThemeService_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Toggle persists the new theme", func(t *testing.T) {
		// Given: a light theme
		repo := repository.NewMemoryPreferenceRepository()
		themeService := NewThemeService(newLogger(), repo, prefers(false))

		// When: the theme is toggled
		theme, err := themeService.Toggle(ctx, entity.ThemeLight)

		// Then: it is dark and stored as "dark"
		require.NoError(t, err)
		assert.Equal(t, entity.ThemeDark, theme)

		stored, ok, err := repo.Get(ctx, ThemeKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "dark", stored)

		// And: the next load reads it back
		assert.Equal(t, entity.ThemeDark, themeService.Load(ctx))
	})

	t.Run("Toggle reports a store error but still flips", func(t *testing.T) {
		themeService := NewThemeService(newLogger(), brokenRepository{}, prefers(false))

		theme, err := themeService.Toggle(ctx, entity.ThemeDark)

		require.ErrorIs(t, err, apperror.ErrThemeNotSaved)
		require.ErrorIs(t, err, errBroken)
		assert.Equal(t, entity.ThemeLight, theme)
	})
}

func TestOverrideDarkModeProbe(t *testing.T) {
	assert.True(t, OverrideDarkModeProbe("true")())
	assert.False(t, OverrideDarkModeProbe("0")())
	assert.Nil(t, OverrideDarkModeProbe(""))
	assert.Nil(t, OverrideDarkModeProbe("auto"))
}

func TestSystemDarkModeProbe(t *testing.T) {
	assert.True(t, SystemDarkModeProbe("true")())
	assert.False(t, SystemDarkModeProbe("false")())
	assert.NotNil(t, SystemDarkModeProbe(""))
}
