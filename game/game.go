// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"log"
	"math/rand"

	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/internal/config"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// State is the game's top-level lifecycle state (§4.5).
type State int

// States, in the order §4.5 describes their transitions.
const (
	Waiting State = iota
	CountDown
	Loading
	Loaded
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case CountDown:
		return "CountDown"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	default:
		return "Unknown"
	}
}

// PID reservations (§3 Lifecycle, glossary "PID").
const (
	pidNone        uint8 = 0
	pidMax         uint8 = 254
	pidReservedEnd uint8 = 255
)

// Broadcaster is the narrow outbound surface Game needs from the UDP LAN
// advertiser (§4.5.4); implemented by network/lan.Advertiser.
type Broadcaster interface {
	Broadcast(pkt w3gs.Packet) error
}

// Game owns the slot vector, the player set, the action queue, and every
// timer described in §4.6. One Game models one lobby/in-progress match;
// the host orchestrator may run the lobby plus any in-progress games
// (§1 Non-goals, DESIGN.md Open Question (a)).
type Game struct {
	Clock  clock.Clock
	LogOut *log.Logger
	LogErr *log.Logger

	Config      config.Config
	Map         *Map
	Broadcaster Broadcaster

	// CloseListener is invoked once, at the Loading transition, so the
	// host orchestrator can stop accepting new TCP connections for this
	// game (§4.5 Loading, I4). Optional; nil is a no-op.
	CloseListener func()

	GameName        string // ≤31 bytes
	VirtualHostName string // ≤15 bytes
	RandomSeed      uint32
	HostCounter     uint32
	EntryKey        uint32

	LatencyMs   uint32 // default 100
	SyncLimit   uint32 // default 50
	SyncCounter uint32

	Slots      []w3gs.Slot
	Players    []*Player
	Potentials []*Potential

	ActionQueue []w3gs.PlayerAction

	VirtualHostPID uint8 // 255 = absent

	State            State
	CountdownCounter uint8
	SlotInfoDirty    bool

	Lagging             bool
	Desynced            bool
	StartedLaggingTicks int64
	LastLagScreenTicks  int64

	lastActionSentMs int64
	lastLateByMs     int64

	// Exiting is set by the host orchestrator's signal handler (§4.7
	// Shutdown, §9 design note); the next Update drains and reports done.
	Exiting bool

	// ActionBatchObserver and MapBytesObserver are optional hooks an
	// observability layer can set to sample relay/download traffic at
	// its exact emission point (internal/metrics); nil is a no-op, and
	// neither hook can influence game state, keeping the core oblivious
	// to whether anything is observing it.
	ActionBatchObserver func(bytes int)
	MapBytesObserver    func(bytes int)

	// pendingChecksums collects this keepalive round's checksum from
	// each player so onPlayerKeepAlive can detect a desync once every
	// joined player has reported (§12 supplemented feature, S3).
	pendingChecksums map[uint8]uint32

	timers timerSet
}

// timerSet holds the (last_ticks, interval_ms) pairs of §4.6's timer wheel.
// Expressed per-timer rather than as a generic wheel, matching the small
// fixed set §4.6 enumerates.
type timerSet struct {
	pingLanAd     timer
	mapDownload   timer
	slotInfoSync  timer
	countdown     timer
	lagScreenRst  timer
	actionSend    timer
}

type timer struct {
	lastMs   int64
	interval int64
}

// due reports whether the timer has elapsed at now, advancing lastMs by
// interval (not to now) to prevent slew, per §4.6.
func (t *timer) due(now int64) bool {
	if now-t.lastMs < t.interval {
		return false
	}
	t.lastMs += t.interval
	return true
}

// New constructs a Game in the Waiting state, seeded from m's slot
// template, using the given clock, loggers, config, and broadcaster. hostCounter
// and entryKey are caller-assigned (the host orchestrator allocates these
// across its games).
func New(m *Map, cfg config.Config, c clock.Clock, logOut, logErr *log.Logger, bc Broadcaster, hostCounter, entryKey uint32) *Game {
	var now = c.NowMs()
	var g = &Game{
		Clock:           c,
		LogOut:          logOut,
		LogErr:          logErr,
		Config:          cfg,
		Map:             m,
		Broadcaster:     bc,
		GameName:        cfg.BotDefaultGameName,
		VirtualHostName: cfg.BotVirtualHostName,
		RandomSeed:      rand.Uint32(),
		HostCounter:     hostCounter,
		EntryKey:        entryKey,
		LatencyMs:       cfg.BotLatencyMs,
		SyncLimit:       50,
		Slots:           m.NewSlots(),
		VirtualHostPID:  pidReservedEnd,
		State:           Waiting,
		timers: timerSet{
			pingLanAd:    timer{lastMs: now, interval: 5000},
			mapDownload:  timer{lastMs: now, interval: 100},
			slotInfoSync: timer{lastMs: now, interval: 1000},
			countdown:    timer{lastMs: now, interval: 500},
			lagScreenRst: timer{lastMs: now, interval: 60000},
			actionSend:   timer{lastMs: now, interval: int64(cfg.BotLatencyMs)},
		},
	}
	g.maybeSpawnVirtualHost()
	return g
}

// PlayerCount returns the number of joined (non-virtual-host) players.
func (g *Game) PlayerCount() int {
	return len(g.Players)
}

// Update advances every due timer and returns true once the Game should be
// destroyed by its owner: when Exiting is set, or when the player set is
// empty after reaching Loading or Loaded (§3 Lifecycle). Listener errors
// are handled by the host orchestrator, not here.
func (g *Game) Update() bool {
	if g.Exiting {
		return true
	}

	var now = g.Clock.NowMs()

	g.readPotentials(now)
	g.readPlayers(now)
	g.pumpPotentials()
	g.pumpPlayers()

	switch g.State {
	case Waiting:
		g.runDownloadPacer(now)
		g.runLanAdvertisement(now)
		g.runSlotInfoSync(now)
		g.checkPingKicks()
	case CountDown:
		g.runDownloadPacer(now)
		g.runLanAdvertisement(now)
		g.runCountdown(now)
	case Loading:
		g.checkAllLoaded()
	case Loaded:
		g.runLagScreen(now)
		g.runActionRelay(now)
		g.runLanAdvertisement(now)
	}

	if (g.State == Loading || g.State == Loaded) && len(g.Players) == 0 {
		return true
	}
	return false
}

// pumpPotentials drains delete_me potentials (§3 Lifecycle).
func (g *Game) pumpPotentials() {
	var kept = g.Potentials[:0]
	for _, p := range g.Potentials {
		if !p.DeleteMe {
			kept = append(kept, p)
		}
	}
	g.Potentials = kept
}

// pumpPlayers drains delete_me players, reopening their slot if the game
// has not yet reached Loading/Loaded (§7 Fatal-to-peer). The removal hooks
// run after the player set is updated, so they see the remaining players.
func (g *Game) pumpPlayers() {
	var kept = g.Players[:0]
	var removed []*Player
	for _, p := range g.Players {
		if p.DeleteMe {
			removed = append(removed, p)
			continue
		}
		kept = append(kept, p)
	}
	g.Players = kept
	for _, p := range removed {
		g.onPlayerRemoved(p)
	}
}

func (g *Game) onPlayerRemoved(p *Player) {
	if g.State == Waiting || g.State == CountDown {
		if sid, ok := g.GetSIDFromPID(p.PID); ok {
			g.OpenSlot(sid)
		}
	}
	g.broadcastExcept(&w3gs.PlayerLeaveOthers{PlayerID: p.PID, Reason: w3gs.LeaveReason(p.LeftCode)}, nil)
	g.maybeSpawnVirtualHost()

	if g.State == CountDown {
		g.abortCountdown()
	}
}

// broadcastExcept sends pkt to every joined player except `except`
// (nil means "everyone").
func (g *Game) broadcastExcept(pkt w3gs.Packet, except *Player) {
	for _, p := range g.Players {
		if p == except {
			continue
		}
		p.Send(pkt)
	}
}

// broadcast sends pkt to every joined player.
func (g *Game) broadcast(pkt w3gs.Packet) {
	g.broadcastExcept(pkt, nil)
}
