// Package metrics exposes the robot's Prometheus counters and gauges, the
// way the teacher's cmd/server instruments request handling. The collectors
// are registered and exported on /metrics, but no code in this module
// increments or sets them, so they stay at zero.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Ticks counts every synthetic TimingPing a brain instance has consumed.
	Ticks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "robotbrain",
		Name:      "ticks_total",
		Help:      "Total timing ticks processed by a brain instance.",
	}, []string{"game_id", "seat"})

	// BuildsRefused counts cancel_build_request messages received per seat.
	BuildsRefused = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "robotbrain",
		Name:      "builds_refused_total",
		Help:      "Total build/placement requests the server refused.",
	}, []string{"game_id", "seat"})

	// TradesOffered counts peer-trade offers a brain has proposed.
	TradesOffered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "robotbrain",
		Name:      "trades_offered_total",
		Help:      "Total peer trade offers made by a brain instance.",
	}, []string{"game_id", "seat"})

	// TradesAccepted counts peer-trade offers accepted by a counterparty.
	TradesAccepted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "robotbrain",
		Name:      "trades_accepted_total",
		Help:      "Total peer trade offers accepted.",
	}, []string{"game_id", "seat"})

	// DeadlockExits counts brains that self-terminated via the deadlock
	// tick threshold rather than a clean game-over.
	DeadlockExits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "robotbrain",
		Name:      "deadlock_exits_total",
		Help:      "Total times a brain left a game after the deadlock tick threshold.",
	}, []string{"game_id", "seat"})

	// ActiveBrains reports how many brain goroutines are currently running.
	ActiveBrains = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "robotbrain",
		Name:      "active_brains",
		Help:      "Number of brain instances currently running.",
	})
)

func init() {
	prometheus.MustRegister(Ticks, BuildsRefused, TradesOffered, TradesAccepted, DeadlockExits, ActiveBrains)
}
