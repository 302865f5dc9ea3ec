package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	// Given: metrics on a fresh registry
	reg := prometheus.NewRegistry()
	m := New(reg)

	// When: activity is recorded
	m.MoveApplied()
	m.MoveApplied()
	m.MoveRejected()
	m.GameFinished("X")
	m.GameFinished("draw")
	m.ThemeToggled()

	// Then: counters reflect it
	assert.InDelta(t, 2, testutil.ToFloat64(m.moves.WithLabelValues("applied")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.moves.WithLabelValues("rejected")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.gamesOver.WithLabelValues("X")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.gamesOver.WithLabelValues("draw")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.themeToggles), 0)

	count, err := testutil.GatherAndCount(reg, "tictactoe_moves_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
