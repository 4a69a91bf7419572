// Package metrics exposes game counters in the Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tictactoe"

const (
	ActorHuman = "human"
	ActorBot   = "bot"
)

type Metrics struct {
	registry *prometheus.Registry

	gamesStarted  *prometheus.CounterVec
	moves         *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
	botMoveTime   *prometheus.HistogramVec
}

// New registers the game metrics together with the Go runtime collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	that := &Metrics{
		registry: registry,
		gamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games created, by mode and difficulty.",
		}, []string{"mode", "difficulty"}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Moves applied, by actor.",
		}, []string{"actor"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Finished games, by outcome.",
		}, []string{"outcome"}),
		botMoveTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bot_move_seconds",
			Help:      "Time spent selecting a bot move, by strategy.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"strategy"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		that.gamesStarted,
		that.moves,
		that.gamesFinished,
		that.botMoveTime,
	)

	return that
}

func (that *Metrics) GameStarted(mode, difficulty string) {
	that.gamesStarted.WithLabelValues(mode, difficulty).Inc()
}

func (that *Metrics) MoveApplied(actor string) {
	that.moves.WithLabelValues(actor).Inc()
}

func (that *Metrics) GameFinished(outcome string) {
	that.gamesFinished.WithLabelValues(outcome).Inc()
}

func (that *Metrics) BotMoveSelected(strategy string, elapsed time.Duration) {
	that.botMoveTime.WithLabelValues(strategy).Observe(elapsed.Seconds())
}

// Handler serves the registry for scraping.
func (that *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{Registry: that.registry})
}

// Registry is exposed for tests.
func (that *Metrics) Registry() *prometheus.Registry {
	return that.registry
}
