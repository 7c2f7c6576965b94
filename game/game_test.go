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

func TestUpdateReturnsFalseWhileWaiting(t *testing.T) {
	var v = clock.NewVirtual(0)
	var g = newTestGame(meleeMap(), v)
	if g.Update() {
		t.Fatalf("a fresh Waiting lobby should not report done")
	}
}

func TestUpdateReportsDoneOncePlayersDrainAfterLoaded(t *testing.T) {
	var v = clock.NewVirtual(0)
	var g = newTestGame(meleeMap(), v)
	var p, _ = joinPlayer(g, "Solo")
	g.enterLoading()
	p.FinishedLoading = true
	g.checkAllLoaded()

	if g.Update() {
		t.Fatalf("should not report done while a player remains")
	}

	p.DeleteMe = true
	if !g.Update() {
		t.Fatalf("expected done once the last player drains from Loaded")
	}
}

func TestUpdateReportsDoneWhenExiting(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	g.Exiting = true
	if !g.Update() {
		t.Fatalf("Exiting should make Update report done immediately")
	}
}

func TestOnPlayerRemovedReopensSlotWhileWaiting(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var p, _ = joinPlayer(g, "Solo")
	var sid, _ = g.GetSIDFromPID(p.PID)

	p.DeleteMe = true
	g.pumpPlayers()

	if g.Slots[sid].Status != w3gs.SlotOpen {
		t.Fatalf("slot should reopen once its player leaves in Waiting, got %+v", g.Slots[sid])
	}
	if g.PlayerCount() != 0 {
		t.Fatalf("expected 0 joined players after removal")
	}
}

func TestOnPlayerRemovedKeepsSlotClosedAfterLoading(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var p, _ = joinPlayer(g, "Solo")
	joinPlayer(g, "Other")
	var sid, _ = g.GetSIDFromPID(p.PID)
	g.enterLoading()

	p.DeleteMe = true
	g.pumpPlayers()

	if g.Slots[sid].Status == w3gs.SlotOpen {
		t.Fatalf("a slot must not reopen once the game has left the lobby, got %+v", g.Slots[sid])
	}
}

func TestReadPlayersTimesOutIdleConnection(t *testing.T) {
	var v = clock.NewVirtual(0)
	var g = newTestGame(meleeMap(), v)
	var p, _ = joinPlayer(g, "Solo")

	v.Advance(31 * time.Second)
	g.readPlayers(v.NowMs())

	if !p.DeleteMe {
		t.Fatalf("expected the idle connection to time out after 30s")
	}
}
