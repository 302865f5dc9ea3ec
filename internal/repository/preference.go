package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

const preferenceKeyPrefix = "pref:"

// PreferenceRepository is the key-value capability used for the persisted theme flag.
type PreferenceRepository interface {
	// Get returns the stored value; ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

type dbPreference struct {
	client *redis.Client
}

func NewPreferenceRepository(client *redis.Client) PreferenceRepository {
	return &dbPreference{
		client: client,
	}
}

func (that *dbPreference) Get(ctx context.Context, key string) (string, bool, error) {
	response, err := that.client.Get(ctx, preferenceKeyPrefix+key).Result()

	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to get preference %q: %w: %w", key, apperror.ErrStoreUnavailable, err)
	}

	return response, true, nil
}

func (that *dbPreference) Set(ctx context.Context, key, value string) error {
	if err := that.client.Set(ctx, preferenceKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set preference %q: %w: %w", key, apperror.ErrStoreUnavailable, err)
	}

	return nil
}

type memoryPreference struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryPreferenceRepository - keeps preferences for the lifetime of the process only.
func NewMemoryPreferenceRepository() PreferenceRepository {
	return &memoryPreference{
		values: make(map[string]string),
	}
}

func (that *memoryPreference) Get(_ context.Context, key string) (string, bool, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.values[key]
	return value, ok, nil
}

func (that *memoryPreference) Set(_ context.Context, key, value string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values[key] = value
	return nil
}
