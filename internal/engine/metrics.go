package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	matchesSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cup_matches_simulated_total",
		Help: "Total number of matches simulated",
	})

	goalsScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cup_goals_scored_total",
		Help: "Total number of goals produced by the match simulator",
	})

	tieBreaksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cup_tie_breaks_total",
		Help: "Total number of level matches decided by a tie-break goal",
	})

	tournamentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cup_tournaments_completed_total",
		Help: "Total number of tournaments run to a champion",
	})

	persistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cup_persistence_failures_total",
		Help: "Results store writes that returned an error",
	}, []string{"op"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cup_stage_duration_seconds",
		Help:    "Time to simulate and persist one bracket stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
)
