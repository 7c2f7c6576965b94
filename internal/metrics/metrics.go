// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

// Package metrics exports lobby observability gauges/counters over
// Prometheus' default registry. This is ambient instrumentation, not part
// of the core relay engine (§1 Non-goals are silent on metrics, but an
// ambient concern is carried regardless): nothing in package game imports
// this package, and nothing here can feed back into game state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aura-project/w3ghost/game"
)

var (
	// LobbyPlayers is the joined player count of the currently observed
	// game.
	LobbyPlayers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lobby_players",
		Help: "Number of joined players in the observed lobby.",
	})

	// LobbyState mirrors game.State (Waiting=0 .. Loaded=3).
	LobbyState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lobby_state",
		Help: "Lobby state machine position (0=Waiting, 1=CountDown, 2=Loading, 3=Loaded).",
	})

	// LobbySyncCounter is the number of INCOMING_ACTION batches relayed
	// so far this game.
	LobbySyncCounter = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lobby_sync_counter",
		Help: "Count of action batches relayed so far.",
	})

	// LobbyActionBatchBytes observes the wire size of each relayed action
	// batch (§4.5.2's ≤1452-byte sub-batch budget).
	LobbyActionBatchBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lobby_action_batch_bytes",
		Help:    "Size in bytes of each outbound action batch.",
		Buckets: prometheus.LinearBuckets(0, 200, 8),
	})

	// LobbyLaggingPlayers is the count of players currently in the lag
	// screen (§4.5.2).
	LobbyLaggingPlayers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lobby_lagging_players",
		Help: "Number of players the lag screen is currently waiting on.",
	})

	// LobbyMapBytesSentTotal accumulates every MAPPART byte sent across
	// every player and every game (§4.5.3).
	LobbyMapBytesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lobby_map_bytes_sent_total",
		Help: "Cumulative map bytes streamed to downloading players.",
	})
)

// Attach wires g's per-event observer hooks to the histogram/counter
// above. Call once, right after game.New.
func Attach(g *game.Game) {
	g.ActionBatchObserver = func(n int) { LobbyActionBatchBytes.Observe(float64(n)) }
	g.MapBytesObserver = func(n int) { LobbyMapBytesSentTotal.Add(float64(n)) }
}

// Poll samples g's gauges. Call once per orchestrator tick.
func Poll(g *game.Game) {
	LobbyPlayers.Set(float64(g.PlayerCount()))
	LobbyState.Set(float64(g.State))
	LobbySyncCounter.Set(float64(g.SyncCounter))

	var lagging int
	for _, p := range g.Players {
		if p.Lagging {
			lagging++
		}
	}
	LobbyLaggingPlayers.Set(float64(lagging))
}
