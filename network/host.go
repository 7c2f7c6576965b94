// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package network

import (
	"log"
	"math/rand"
	"net"
	"time"

	"github.com/aura-project/w3ghost/game"
	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/internal/config"
	"github.com/aura-project/w3ghost/internal/metrics"
	"github.com/aura-project/w3ghost/internal/observer"
	"github.com/aura-project/w3ghost/network/lan"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// tickInterval bounds how long one loop iteration sleeps when it has
// nothing else to wait on, standing in for §4.7's "readiness wait with
// timeout = min(50 ms, earliest pending timed action)": Go doesn't expose
// a portable multi-socket select(), so every due check (timers, new
// connections, per-peer reads) is instead polled once per tick.
const tickInterval = 50 * time.Millisecond

// idleSleep is how long the loop waits when it has accepted no
// connections and is driving zero games, per §4.7 "sleep 200 ms to avoid
// busy-looping".
const idleSleep = 200 * time.Millisecond

// NewGameFunc builds a fresh lobby Game once the orchestrator needs one:
// at startup, and again once the previous lobby has reached Loading and
// moved to the in-progress set (so a host that supports rehosting always
// has a joinable lobby). Returns nil to mean "no more lobbies should be
// created".
type NewGameFunc func(hostCounter, entryKey uint32) *game.Game

// Orchestrator multiplexes one TCP listener and any number of in-flight
// Games in a single goroutine (§4.7, §5: "no locks, one mutator"). It
// never touches a Game's internals directly; all it does is hand accepted
// connections to the active lobby's Potentials and call Update.
type Orchestrator struct {
	Config config.Config
	LogOut *log.Logger
	LogErr *log.Logger
	Clock  clock.Clock

	// Observer, if set, receives a Snapshot of every running game once
	// per tick (internal/observer); nil disables the dashboard stream
	// entirely.
	Observer *observer.Hub

	listener *net.TCPListener
	adv      *lan.Advertiser

	newGame     NewGameFunc
	nextCounter uint32
	lobby       *game.Game
	inProgress  []*game.Game
	exiting     bool
}

// NewOrchestrator constructs an Orchestrator bound to cfg.BotHostPort.
func NewOrchestrator(cfg config.Config, c clock.Clock, logOut, logErr *log.Logger, newGame NewGameFunc) (*Orchestrator, error) {
	var addr = &net.TCPAddr{Port: int(cfg.BotHostPort)}
	var l, err = net.ListenTCP("tcp4", addr)
	if err != nil {
		return nil, err
	}

	adv, err := lan.NewAdvertiser()
	if err != nil {
		l.Close()
		return nil, err
	}

	return &Orchestrator{
		Config:      cfg,
		LogOut:      logOut,
		LogErr:      logErr,
		Clock:       c,
		listener:    l,
		adv:         adv,
		newGame:     newGame,
		nextCounter: 1,
	}, nil
}

// Stop sets the exiting flag; the running loop drains every Game on its
// next iteration and Run returns (§4.7 Shutdown).
func (o *Orchestrator) Stop() {
	o.exiting = true
}

// Addr returns the TCP address the orchestrator accepts game connections
// on, useful when NewOrchestrator was given port 0.
func (o *Orchestrator) Addr() *net.TCPAddr {
	return o.listener.Addr().(*net.TCPAddr)
}

// Run drives the accept/update loop until Stop is called and every Game
// has drained, or the listener fails fatally.
func (o *Orchestrator) Run() error {
	defer o.listener.Close()
	defer o.adv.Close()

	for {
		if o.exiting {
			for _, g := range o.allGames() {
				g.Exiting = true
			}
		} else if o.lobby == nil && o.newGame != nil {
			o.lobby = o.spawnLobby()
			if o.lobby == nil {
				o.newGame = nil
			}
		}

		if err := o.acceptPending(); err != nil {
			return err
		}

		var anyAlive = o.updateGames()
		if o.exiting && !anyAlive {
			return nil
		}

		if len(o.allGames()) == 0 && !o.exiting {
			time.Sleep(idleSleep)
			continue
		}
		time.Sleep(tickInterval)
	}
}

func (o *Orchestrator) spawnLobby() *game.Game {
	var hostCounter = o.nextCounter
	o.nextCounter++
	var entryKey = rand.Uint32()

	var g = o.newGame(hostCounter, entryKey)
	if g == nil {
		return nil
	}
	g.Broadcaster = o.adv
	g.CloseListener = func() {
		o.onLobbyClosed(g)
	}
	metrics.Attach(g)
	return g
}

// onLobbyClosed fires once, at the Loading transition (§4.5 Loading, I4):
// the lobby stops accepting joins, moves to the in-progress set, and a
// fresh lobby becomes eligible on the next Run iteration.
func (o *Orchestrator) onLobbyClosed(g *game.Game) {
	if o.lobby == g {
		o.inProgress = append(o.inProgress, g)
		o.lobby = nil
	}
}

func (o *Orchestrator) allGames() []*game.Game {
	if o.lobby == nil {
		return o.inProgress
	}
	return append([]*game.Game{o.lobby}, o.inProgress...)
}

// acceptPending drains every TCP connection already waiting without
// blocking the loop, handing each to the active lobby (or rejecting it if
// there is none to join). Any listener error other than the poll timeout
// is returned, ending Run.
func (o *Orchestrator) acceptPending() error {
	for {
		if err := o.listener.SetDeadline(time.Now()); err != nil {
			o.LogErr.Printf("listener deadline: %v", err)
			return err
		}
		var tcp, err = o.listener.AcceptTCP()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return nil
			}
			o.LogErr.Printf("accept: %v", err)
			return err
		}
		tcp.SetNoDelay(true)

		var enc = w3gs.Encoding{GameVersion: o.Config.LanWar3Version}
		var conn = NewW3GSConn(tcp, enc)

		if o.lobby == nil {
			conn.Close()
			continue
		}
		o.lobby.Potentials = append(o.lobby.Potentials, game.NewPotential(conn))
	}
}

// updateGames calls Update on every game, pruning the ones that report
// done, and reports whether any game is still alive afterward.
func (o *Orchestrator) updateGames() bool {
	if o.lobby != nil {
		if o.lobby.Update() {
			o.lobby = nil
		} else {
			metrics.Poll(o.lobby)
			o.report(o.lobby)
		}
	}

	var kept = o.inProgress[:0]
	for _, g := range o.inProgress {
		if !g.Update() {
			metrics.Poll(g)
			o.report(g)
			kept = append(kept, g)
		}
	}
	o.inProgress = kept

	return o.lobby != nil || len(o.inProgress) > 0
}

func (o *Orchestrator) report(g *game.Game) {
	if o.Observer != nil {
		o.Observer.Broadcast(observer.BuildSnapshot(g))
	}
}
