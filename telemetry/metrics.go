// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package telemetry provides Prometheus metrics for the live poll service.
package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	PollsCreated    prometheus.Counter
	CodeCollisions  prometheus.Counter
	VotesSubmitted  prometheus.Counter
	VotesRejected   *prometheus.CounterVec
	FanoutCoalesced prometheus.Counter

	// Histograms (seconds)
	VoteTxnDuration prometheus.Observer

	// Gauges
	LiveSubscribers prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		PollsCreated = promauto.NewCounter(prometheus.CounterOpts{Name: "livepoll_polls_created_total", Help: "Number of polls created"})
		CodeCollisions = promauto.NewCounter(prometheus.CounterOpts{Name: "livepoll_code_collisions_total", Help: "Number of session code collisions retried during creation"})
		VotesSubmitted = promauto.NewCounter(prometheus.CounterOpts{Name: "livepoll_votes_submitted_total", Help: "Number of vote submissions committed"})
		VotesRejected = promauto.NewCounterVec(prometheus.CounterOpts{Name: "livepoll_votes_rejected_total", Help: "Number of vote submissions rejected, by reason"}, []string{"reason"})
		FanoutCoalesced = promauto.NewCounter(prometheus.CounterOpts{Name: "livepoll_fanout_coalesced_total", Help: "Number of snapshots dropped for slow subscribers in favor of a newer one"})
		VoteTxnDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "livepoll_vote_txn_duration_seconds", Help: "Vote transaction duration seconds", Buckets: prometheus.DefBuckets})
		LiveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{Name: "livepoll_live_subscribers", Help: "Current number of live snapshot subscribers"})
	})
}

// All increment helpers tolerate an uninitialized package so code under test
// doesn't need a registry.

func IncPollsCreated() {
	if PollsCreated != nil {
		PollsCreated.Inc()
	}
}

func IncCodeCollisions() {
	if CodeCollisions != nil {
		CodeCollisions.Inc()
	}
}

func IncVotesSubmitted() {
	if VotesSubmitted != nil {
		VotesSubmitted.Inc()
	}
}

func IncVotesRejected(reason string) {
	if VotesRejected != nil {
		VotesRejected.WithLabelValues(reason).Inc()
	}
}

func IncFanoutCoalesced() {
	if FanoutCoalesced != nil {
		FanoutCoalesced.Inc()
	}
}

func AddLiveSubscribers(delta int) {
	if LiveSubscribers != nil {
		LiveSubscribers.Add(float64(delta))
	}
}

// TimeVoteTxn measures the duration of fn and records it if metrics are up.
func TimeVoteTxn(fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if VoteTxnDuration != nil {
		VoteTxnDuration.Observe(d.Seconds())
	}
	return d
}
