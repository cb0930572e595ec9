package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	fitness     prometheus.Histogram
	steps       prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autopark_evaluations_total",
			Help: "Genome evaluations by outcome.",
		}, []string{"outcome"}),
		fitness: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "autopark_episode_fitness",
			Help:    "Fitness of evaluated episodes.",
			Buckets: []float64{-200, -100, 0, 100, 500, 1000, 2000, 5000, 10000},
		}),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "autopark_episode_steps",
			Help:    "Steps taken by evaluated episodes.",
			Buckets: prometheus.LinearBuckets(100, 100, 10),
		}),
	}
	m.registry.MustRegister(m.evaluations, m.fitness, m.steps)
	return m
}

func (m *metrics) observe(fitness float64, steps int, parked bool) {
	outcome := "timeout_or_collision"
	if parked {
		outcome = "parked"
	}
	m.evaluations.WithLabelValues(outcome).Inc()
	m.fitness.Observe(fitness)
	m.steps.Observe(float64(steps))
}

func (m *metrics) rejected() {
	m.evaluations.WithLabelValues("rejected").Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
