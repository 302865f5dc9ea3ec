package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tictactoe"

const (
	moveApplied  = "applied"
	moveRejected = "rejected"
)

// Metrics counts game activity for the /metrics endpoint.
type Metrics struct {
	moves        *prometheus.CounterVec
	gamesOver    *prometheus.CounterVec
	themeToggles prometheus.Counter
}

// New - registers the game counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Cell activations by result (applied or rejected).",
		}, []string{"result"}),
		gamesOver: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Finished games by outcome (X, O or draw).",
		}, []string{"outcome"}),
		themeToggles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_toggles_total",
			Help:      "Theme toggles.",
		}),
	}
}

func (that *Metrics) MoveApplied() {
	that.moves.WithLabelValues(moveApplied).Inc()
}

func (that *Metrics) MoveRejected() {
	that.moves.WithLabelValues(moveRejected).Inc()
}

// GameFinished - outcome is the winning symbol or "draw".
func (that *Metrics) GameFinished(outcome string) {
	that.gamesOver.WithLabelValues(outcome).Inc()
}

func (that *Metrics) ThemeToggled() {
	that.themeToggles.Inc()
}
