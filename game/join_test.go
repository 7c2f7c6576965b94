// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"net"
	"testing"

	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

func TestPromoteAcceptsValidJoin(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(1000))

	var p, c = joinPlayer(g, "Player1")
	if p == nil {
		t.Fatalf("expected player to join")
	}
	if len(g.Players) != 1 {
		t.Fatalf("expected 1 joined player, got %d", len(g.Players))
	}

	var sawSlotInfoJoin bool
	for _, pkt := range c.sent {
		if _, ok := pkt.(*w3gs.SlotInfoJoin); ok {
			sawSlotInfoJoin = true
		}
	}
	if !sawSlotInfoJoin {
		t.Fatalf("joining player should receive SLOTINFOJOIN")
	}
}

func TestPromoteRejectsBadEntryKey(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var c = newFakeConn()
	var enc = w3gs.Encoding{GameVersion: g.Config.LanWar3Version}
	c.queueReqJoin(&enc, &w3gs.ReqJoin{
		HostCounter: g.HostCounter,
		EntryKey:    g.EntryKey + 1,
		PlayerName:  "Intruder",
		InternalIP:  net.IPv4(10, 0, 0, 3),
	})

	var p = NewPotential(c)
	g.Potentials = append(g.Potentials, p)
	g.readPotentials(g.Clock.NowMs())

	if len(g.Players) != 0 {
		t.Fatalf("bad entry key must not join")
	}
	if len(c.sent) != 1 {
		t.Fatalf("expected a single REJECTJOIN, got %d packets", len(c.sent))
	}
	var rej, ok = c.sent[0].(*w3gs.RejectJoin)
	if !ok || rej.Reason != w3gs.RejectJoinInvalid {
		t.Fatalf("expected RejectJoinInvalid, got %+v", c.sent[0])
	}
}

func TestPromoteRejectsWhenFull(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	for i := range g.Slots {
		g.Slots[i].Status = w3gs.SlotOccupied
	}

	var c = newFakeConn()
	var enc = w3gs.Encoding{GameVersion: g.Config.LanWar3Version}
	c.queueReqJoin(&enc, &w3gs.ReqJoin{
		HostCounter: g.HostCounter,
		EntryKey:    g.EntryKey,
		PlayerName:  "Latecomer",
		InternalIP:  net.IPv4(10, 0, 0, 4),
	})
	var p = NewPotential(c)
	g.Potentials = append(g.Potentials, p)
	g.readPotentials(g.Clock.NowMs())

	var rej, ok = c.sent[0].(*w3gs.RejectJoin)
	if !ok || rej.Reason != w3gs.RejectJoinFull {
		t.Fatalf("expected RejectJoinFull, got %+v", c.sent[0])
	}
}

func TestPromoteRejectsDuplicateName(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	if p, _ := joinPlayer(g, "Dupe"); p == nil {
		t.Fatalf("first join should succeed")
	}

	var second, _ = joinPlayer(g, "Dupe")
	if second != nil {
		t.Fatalf("duplicate name must not join")
	}
	if len(g.Players) != 1 {
		t.Fatalf("expected exactly 1 joined player, got %d", len(g.Players))
	}
}

func TestOnPlayerJoinedAutoStartOnFull(t *testing.T) {
	var m = meleeMap()
	var g = newTestGame(m, clock.NewVirtual(0))
	g.Config.BotAutoStart = 2 // OnFull

	// readyToStart also gates on download completion and ping samples
	// (§4.5 CountDown entry condition); satisfy both as each player joins
	// so only the "every slot full" condition is under test here.
	var markReady = func() {
		for i := range g.Slots {
			if g.Slots[i].Status == w3gs.SlotOccupied {
				g.Slots[i].DownloadPct = 100
			}
		}
		for _, pl := range g.Players {
			pl.pingCount = 3
		}
	}

	for i := 0; i < 11; i++ {
		if p, _ := joinPlayer(g, playerName(i)); p == nil {
			t.Fatalf("join %d should succeed", i)
		}
		markReady()
	}
	if g.State != Waiting {
		t.Fatalf("should still be waiting with an open slot, got %v", g.State)
	}

	if p, _ := joinPlayer(g, playerName(11)); p == nil {
		t.Fatalf("final join should succeed")
	}
	markReady()
	if !g.tryStartCountdown(false) {
		t.Fatalf("expected countdown to be startable once full and ready")
	}
}

func playerName(i int) string {
	return string(rune('A'+i)) + "Player"
}
