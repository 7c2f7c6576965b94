// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package network

import (
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/aura-project/w3ghost/game"
	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/internal/config"
)

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newOrchestratorForTest(t *testing.T, newGame NewGameFunc) *Orchestrator {
	t.Helper()
	var cfg = config.Default()
	cfg.BotHostPort = 0

	var o, err = NewOrchestrator(cfg, clock.NewVirtual(0), discardLogger(), discardLogger(), newGame)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	return o
}

func TestOrchestratorRunStopsCleanlyWithNoLobby(t *testing.T) {
	var o = newOrchestratorForTest(t, func(uint32, uint32) *game.Game { return nil })

	var done = make(chan error, 1)
	go func() { done <- o.Run() }()

	time.Sleep(20 * time.Millisecond)
	o.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestOrchestratorRejectsConnectionsWithoutALobby(t *testing.T) {
	var o = newOrchestratorForTest(t, func(uint32, uint32) *game.Game { return nil })

	var done = make(chan error, 1)
	go func() { done <- o.Run() }()
	defer func() {
		o.Stop()
		<-done
	}()

	var conn, err = net.DialTimeout("tcp4", o.Addr().String(), time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var buf [8]byte
	if _, err := conn.Read(buf[:]); err != io.EOF {
		t.Fatalf("expected the orchestrator to close the connection (EOF), got %v", err)
	}
}

func TestOrchestratorSpawnsLobbyAndAttachesBroadcaster(t *testing.T) {
	var cfg = config.Default()
	var called int
	var newGame = func(hostCounter, entryKey uint32) *game.Game {
		called++
		var m = game.NewMapFromConfig(cfg)
		return game.New(m, cfg, clock.NewVirtual(0), discardLogger(), discardLogger(), nil, hostCounter, entryKey)
	}

	var o = newOrchestratorForTest(t, newGame)
	defer o.listener.Close()
	defer o.adv.Close()

	o.spawnLobbyForTest()

	if called != 1 {
		t.Fatalf("newGame called %d times, want 1", called)
	}
	if o.lobby == nil {
		t.Fatal("expected a lobby to be spawned")
	}
	if o.lobby.Broadcaster == nil {
		t.Fatal("expected the lobby's Broadcaster to be wired to the LAN advertiser")
	}
	if o.lobby.CloseListener == nil {
		t.Fatal("expected the lobby's CloseListener to be wired")
	}

	o.Stop()
}

// spawnLobbyForTest exposes the package-private spawnLobby path without
// running the full accept/update loop.
func (o *Orchestrator) spawnLobbyForTest() {
	o.lobby = o.spawnLobby()
}
