// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"testing"

	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

func TestSwapSlotsMeleeSwapsEverything(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	g.Slots[0] = w3gs.Slot{Status: w3gs.SlotOccupied, PlayerID: 1, Team: 0, Color: 0}
	g.Slots[1] = w3gs.Slot{Status: w3gs.SlotOpen, Team: 1, Color: 1}

	g.SwapSlots(0, 1)

	if g.Slots[1].PlayerID != 1 || g.Slots[1].Team != 0 {
		t.Fatalf("melee swap should move team with player: %+v", g.Slots[1])
	}
	if g.Slots[0].Status != w3gs.SlotOpen {
		t.Fatalf("vacated slot should be open: %+v", g.Slots[0])
	}
}

func TestSwapSlotsCustomForcesKeepsTeamWithPosition(t *testing.T) {
	var g = newTestGame(customForcesMap(), clock.NewVirtual(0))
	g.Slots[0] = w3gs.Slot{Status: w3gs.SlotOccupied, PlayerID: 1, Team: 0, Color: 0}
	g.Slots[1] = w3gs.Slot{Status: w3gs.SlotOpen, Team: 1, Color: 1}

	g.SwapSlots(0, 1)

	if g.Slots[1].PlayerID != 1 || g.Slots[1].Team != 1 {
		t.Fatalf("custom forces swap must keep team bound to position: %+v", g.Slots[1])
	}
	if g.Slots[0].Team != 0 {
		t.Fatalf("vacated position's team should not move: %+v", g.Slots[0])
	}
}

func TestSwapSlotsFixedPlayerSettingsOnlyMovesOccupant(t *testing.T) {
	var m = meleeMap()
	m.Options = w3gs.FlagFixedPlayerSettings
	var g = newTestGame(m, clock.NewVirtual(0))
	g.Slots[0] = w3gs.Slot{Status: w3gs.SlotOccupied, PlayerID: 1, Team: 0, Color: 0, Race: w3gs.RaceHuman}
	g.Slots[1] = w3gs.Slot{Status: w3gs.SlotOpen, Team: 1, Color: 1, Race: w3gs.RaceOrc}

	g.SwapSlots(0, 1)

	if g.Slots[1].PlayerID != 1 || g.Slots[1].Team != 1 || g.Slots[1].Race != w3gs.RaceOrc {
		t.Fatalf("fixed player settings must keep slot 1's own team/colour/race: %+v", g.Slots[1])
	}
	if g.Slots[0].Status != w3gs.SlotOpen || g.Slots[0].Team != 0 {
		t.Fatalf("vacated slot should stay open with its own team: %+v", g.Slots[0])
	}
}

func TestOpenCloseSlotPreserveTeamAndColour(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	g.Slots[0] = w3gs.Slot{Status: w3gs.SlotOccupied, PlayerID: 1, Team: 3, Color: 5}

	g.CloseSlot(0)
	if g.Slots[0].Status != w3gs.SlotClosed || g.Slots[0].Team != 3 || g.Slots[0].Color != 5 {
		t.Fatalf("CloseSlot must preserve team/colour: %+v", g.Slots[0])
	}

	g.OpenSlot(0)
	if g.Slots[0].Status != w3gs.SlotOpen || g.Slots[0].PlayerID != pidNone {
		t.Fatalf("OpenSlot must clear occupant: %+v", g.Slots[0])
	}
}

func TestColourSlotSwapsWithUnoccupiedHolder(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	g.Slots[0] = w3gs.Slot{Status: w3gs.SlotOccupied, PlayerID: 1, Color: 0}
	g.Slots[1] = w3gs.Slot{Status: w3gs.SlotOpen, Color: 3}

	g.ColourSlot(0, 3)

	if g.Slots[0].Color != 3 {
		t.Fatalf("requested slot should hold the new colour: %+v", g.Slots[0])
	}
	if g.Slots[1].Color != 0 {
		t.Fatalf("displaced colour should land on the slot that gave it up: %+v", g.Slots[1])
	}
}

func TestColourSlotRefusesOccupiedHolder(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	g.Slots[0] = w3gs.Slot{Status: w3gs.SlotOccupied, PlayerID: 1, Color: 0}
	g.Slots[1] = w3gs.Slot{Status: w3gs.SlotOccupied, PlayerID: 2, Color: 3}

	g.ColourSlot(0, 3)

	if g.Slots[0].Color != 0 || g.Slots[1].Color != 3 {
		t.Fatalf("colour held by an occupied slot must not move: %+v %+v", g.Slots[0], g.Slots[1])
	}
}

func TestGetNewPIDExcludesVirtualHost(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	// New() already spawned a virtual host at pid 254 (§4.5.5: the virtual
	// host claims pids from the top of the pool down, so real joins start
	// at pid 1 unobstructed).
	if g.VirtualHostPID != 254 {
		t.Fatalf("expected virtual host at pid 254, got %d", g.VirtualHostPID)
	}
	if got := g.GetNewPID(); got != 1 {
		t.Fatalf("GetNewPID should start real joins at pid 1, got %d", got)
	}
}

func TestGetNewVirtualHostPIDSkipsOccupiedSlots(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	g.VirtualHostPID = pidReservedEnd
	g.Slots[0] = w3gs.Slot{Status: w3gs.SlotOccupied, PlayerID: 254}

	if got := g.GetNewVirtualHostPID(); got != 253 {
		t.Fatalf("GetNewVirtualHostPID should skip pid 254, got %d", got)
	}
}

func TestComputerSlotReassignsObserverColour(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	g.Slots[0] = w3gs.Slot{Status: w3gs.SlotOpen, Color: observerColour}

	g.ComputerSlot(0, 1)

	if !g.Slots[0].Computer || g.Slots[0].Status != w3gs.SlotOccupied {
		t.Fatalf("expected an occupied computer slot: %+v", g.Slots[0])
	}
	if g.Slots[0].Color == observerColour {
		t.Fatalf("computer slot should not keep the observer colour: %+v", g.Slots[0])
	}
}
