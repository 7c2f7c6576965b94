// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"testing"
	"time"

	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

func TestTryStartCountdownRefusesUntilReady(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var p, _ = joinPlayer(g, "Solo")
	if p == nil {
		t.Fatalf("join should succeed")
	}

	if g.tryStartCountdown(false) {
		t.Fatalf("should refuse: player has not finished downloading or pinging")
	}

	var sid, _ = g.GetSIDFromPID(p.PID)
	g.Slots[sid].DownloadPct = 100
	p.pingCount = 3

	if !g.tryStartCountdown(false) {
		t.Fatalf("should start once ready")
	}
	if g.State != CountDown {
		t.Fatalf("expected CountDown, got %v", g.State)
	}
}

func TestTryStartCountdownForceBypassesReadiness(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	if p, _ := joinPlayer(g, "Solo"); p == nil {
		t.Fatalf("join should succeed")
	}
	if !g.tryStartCountdown(true) {
		t.Fatalf("force should bypass readiness")
	}
}

func TestRunCountdownReachesLoadingAfterFiveTicks(t *testing.T) {
	var v = clock.NewVirtual(0)
	var g = newTestGame(meleeMap(), v)
	joinPlayer(g, "Solo")
	g.tryStartCountdown(true)

	for i := 0; i < countdownTicks; i++ {
		v.Advance(500 * time.Millisecond)
		g.runCountdown(v.NowMs())
		if g.State == Loading {
			t.Fatalf("reached Loading early at tick %d", i)
		}
	}
	v.Advance(500 * time.Millisecond)
	g.runCountdown(v.NowMs())

	if g.State != Loading {
		t.Fatalf("expected Loading after %d ticks, got %v", countdownTicks+1, g.State)
	}
}

func TestRunCountdownBroadcastsFiveDownToOne(t *testing.T) {
	var v = clock.NewVirtual(0)
	var g = newTestGame(meleeMap(), v)
	var _, c = joinPlayer(g, "Solo")
	g.tryStartCountdown(true)

	var seen []string
	for i := 0; i < countdownTicks; i++ {
		v.Advance(500 * time.Millisecond)
		g.runCountdown(v.NowMs())
	}

	for _, pkt := range c.sent {
		if chat, ok := pkt.(*w3gs.ChatFromHost); ok {
			seen = append(seen, chat.Content)
		}
	}

	var want = []string{"5. . .", "4. . .", "3. . .", "2. . .", "1. . ."}
	if len(seen) != len(want) {
		t.Fatalf("got %v chat messages, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("message %d = %q, want %q (full: %v)", i, seen[i], want[i], seen)
		}
	}
}

func TestAbortCountdownOnPlayerLeave(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var a, _ = joinPlayer(g, "A")
	joinPlayer(g, "B")
	g.tryStartCountdown(true)

	a.DeleteMe = true
	g.pumpPlayers()

	if g.State != Waiting {
		t.Fatalf("countdown should abort back to Waiting, got %v", g.State)
	}
	if g.CountdownCounter != 0 {
		t.Fatalf("counter should reset on abort")
	}
}

func TestEnterLoadingRemovesVirtualHostAndClosesListener(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	joinPlayer(g, "Solo")

	var closed bool
	g.CloseListener = func() { closed = true }

	g.enterLoading()

	if !closed {
		t.Fatalf("CloseListener should be invoked entering Loading")
	}
	if g.VirtualHostPID != pidReservedEnd {
		t.Fatalf("virtual host should be removed entering Loading")
	}
	if g.State != Loading {
		t.Fatalf("expected Loading, got %v", g.State)
	}
}

func TestCheckAllLoadedReleasesMapData(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var p, _ = joinPlayer(g, "Solo")
	g.enterLoading()

	g.checkAllLoaded()
	if g.State != Loading {
		t.Fatalf("should stay Loading until every player finishes")
	}

	p.FinishedLoading = true
	g.checkAllLoaded()

	if g.State != Loaded {
		t.Fatalf("expected Loaded, got %v", g.State)
	}
	if g.Map.Data != nil {
		t.Fatalf("map data should be released once Loaded")
	}
}

func TestReadyToStartIgnoresComputerSlots(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	g.ComputerSlot(5, 1)
	if !g.readyToStart() {
		t.Fatalf("a lone computer slot should not block readiness")
	}
}
