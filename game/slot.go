// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"math/rand"

	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// observerTeam/observerColour are the fixed team/colour an observer slot
// carries (§3 Slot invariant).
const (
	observerTeam   uint8 = 12
	observerColour uint8 = 12
)

// GetEmptySlot returns the index of the first Open slot, or -1 if none.
func (g *Game) GetEmptySlot() int {
	for i := range g.Slots {
		if g.Slots[i].Status == w3gs.SlotOpen {
			return i
		}
	}
	return -1
}

// GetEmptySlotForTeam finds an Open slot on the requested team, starting at
// the player's current slot index and wrapping around (§4.3). team=12
// restricts the search to observer slots (B3).
func (g *Game) GetEmptySlotForTeam(team uint8, pid uint8) int {
	var start = 0
	if sid, ok := g.GetSIDFromPID(pid); ok {
		start = sid
	}

	var n = len(g.Slots)
	for i := 0; i < n; i++ {
		var sid = (start + i) % n
		if g.Slots[sid].Status == w3gs.SlotOpen && g.Slots[sid].Team == team {
			return sid
		}
	}
	return -1
}

// GetSIDFromPID returns the slot index occupied by pid.
func (g *Game) GetSIDFromPID(pid uint8) (int, bool) {
	for i := range g.Slots {
		if g.Slots[i].Status == w3gs.SlotOccupied && g.Slots[i].PlayerID == pid {
			return i, true
		}
	}
	return 0, false
}

// GetPlayerFromSID returns the Player occupying slot sid, if joined (the
// virtual host and computer slots have no backing Player).
func (g *Game) GetPlayerFromSID(sid int) *Player {
	if sid < 0 || sid >= len(g.Slots) {
		return nil
	}
	var pid = g.Slots[sid].PlayerID
	for _, p := range g.Players {
		if p.PID == pid {
			return p
		}
	}
	return nil
}

// SwapSlots exchanges the contents of slots a and b, honoring the map's
// CustomForces/FixedPlayerSettings policy (§4.3).
func (g *Game) SwapSlots(a, b int) {
	if a == b || a < 0 || b < 0 || a >= len(g.Slots) || b >= len(g.Slots) {
		return
	}

	var sa, sb = g.Slots[a], g.Slots[b]

	if g.Map.HasFixedPlayerSettings() {
		// Team, colour, race, and handicap stay put; only the occupant
		// (identity) moves.
		g.Slots[a].PlayerID, g.Slots[b].PlayerID = sb.PlayerID, sa.PlayerID
		g.Slots[a].DownloadPct, g.Slots[b].DownloadPct = sb.DownloadPct, sa.DownloadPct
		g.Slots[a].Status, g.Slots[b].Status = sb.Status, sa.Status
		g.Slots[a].Computer, g.Slots[b].Computer = sb.Computer, sa.Computer
		g.Slots[a].ComputerSkill, g.Slots[b].ComputerSkill = sb.ComputerSkill, sa.ComputerSkill
	} else if g.Map.HasCustomForces() {
		// Team does not move with the player; everything else does.
		g.Slots[a], g.Slots[b] = sb, sa
		g.Slots[a].Team, g.Slots[b].Team = sa.Team, sb.Team
	} else {
		g.Slots[a], g.Slots[b] = sb, sa
	}

	g.SlotInfoDirty = true
}

// OpenSlot marks slot sid Open and clears its occupant.
func (g *Game) OpenSlot(sid int) {
	if sid < 0 || sid >= len(g.Slots) {
		return
	}
	g.Slots[sid] = w3gs.Slot{Status: w3gs.SlotOpen, Team: g.Slots[sid].Team, Color: g.Slots[sid].Color}
	g.SlotInfoDirty = true
}

// CloseSlot marks slot sid Closed and clears its occupant.
func (g *Game) CloseSlot(sid int) {
	if sid < 0 || sid >= len(g.Slots) {
		return
	}
	g.Slots[sid] = w3gs.Slot{Status: w3gs.SlotClosed, Team: g.Slots[sid].Team, Color: g.Slots[sid].Color}
	g.SlotInfoDirty = true
}

// ComputerSlot occupies slot sid with a computer of the given skill.
func (g *Game) ComputerSlot(sid int, skill uint8) {
	if sid < 0 || sid >= len(g.Slots) {
		return
	}
	g.Slots[sid].Status = w3gs.SlotOccupied
	g.Slots[sid].Computer = true
	g.Slots[sid].ComputerSkill = skill
	g.Slots[sid].PlayerID = pidNone
	if g.Slots[sid].Color == observerColour {
		g.Slots[sid].Color = g.GetNewColour()
	}
	g.SlotInfoDirty = true
}

// ColourSlot assigns colour to slot sid, swapping with whichever slot
// currently holds it if that slot is unoccupied; refuses silently if the
// colour is held by an occupied slot (§4.3).
func (g *Game) ColourSlot(sid int, colour uint8) {
	if sid < 0 || sid >= len(g.Slots) {
		return
	}
	for i := range g.Slots {
		if g.Slots[i].Color != colour {
			continue
		}
		if g.Slots[i].Status == w3gs.SlotOccupied {
			return
		}
		g.Slots[i].Color, g.Slots[sid].Color = g.Slots[sid].Color, colour
		g.SlotInfoDirty = true
		return
	}
	g.Slots[sid].Color = colour
	g.SlotInfoDirty = true
}

// OpenAllSlots opens every Closed slot.
func (g *Game) OpenAllSlots() {
	for i := range g.Slots {
		if g.Slots[i].Status == w3gs.SlotClosed {
			g.Slots[i].Status = w3gs.SlotOpen
		}
	}
	g.SlotInfoDirty = true
}

// CloseAllSlots closes every Open slot.
func (g *Game) CloseAllSlots() {
	for i := range g.Slots {
		if g.Slots[i].Status == w3gs.SlotOpen {
			g.Slots[i].Status = w3gs.SlotClosed
		}
	}
	g.SlotInfoDirty = true
}

// ShuffleSlots randomly permutes occupied, non-computer, non-observer
// slots. Under CustomForces, player identities are permuted across
// positions but each position's team/colour/race is preserved (§4.3).
func (g *Game) ShuffleSlots() {
	var idx []int
	for i := range g.Slots {
		var s = &g.Slots[i]
		if s.Status == w3gs.SlotOccupied && !s.Computer && s.Team != observerTeam {
			idx = append(idx, i)
		}
	}
	if len(idx) < 2 {
		return
	}

	if g.Map.HasCustomForces() {
		var ids = make([]uint8, len(idx))
		for i, sid := range idx {
			ids[i] = g.Slots[sid].PlayerID
		}
		rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		for i, sid := range idx {
			g.Slots[sid].PlayerID = ids[i]
		}
	} else {
		var saved = make([]w3gs.Slot, len(idx))
		for i, sid := range idx {
			saved[i] = g.Slots[sid]
		}
		rand.Shuffle(len(saved), func(i, j int) { saved[i], saved[j] = saved[j], saved[i] })
		for i, sid := range idx {
			g.Slots[sid] = saved[i]
		}
	}
	g.SlotInfoDirty = true
}

// GetNewPID returns the smallest unused pid in [1,254]. 0 and 255 are
// reserved. The virtual host does not occupy a Slots row, so its pid is
// excluded explicitly; otherwise a real join could collide with it.
func (g *Game) GetNewPID() uint8 {
	var used = make(map[uint8]bool, len(g.Slots)+1)
	for i := range g.Slots {
		if g.Slots[i].Status == w3gs.SlotOccupied {
			used[g.Slots[i].PlayerID] = true
		}
	}
	if g.VirtualHostPID != pidReservedEnd {
		used[g.VirtualHostPID] = true
	}
	for pid := uint8(1); pid < pidReservedEnd; pid++ {
		if !used[pid] {
			return pid
		}
	}
	return pidReservedEnd
}

// GetNewVirtualHostPID returns the largest unused pid in [1,254] (§4.5.5:
// the virtual host occupies "a pid, 254 downwards from the free pool").
// Real joins always pull from GetNewPID's bottom of the range, so the two
// allocators only collide once every other pid is in use.
func (g *Game) GetNewVirtualHostPID() uint8 {
	var used = make(map[uint8]bool, len(g.Slots))
	for i := range g.Slots {
		if g.Slots[i].Status == w3gs.SlotOccupied {
			used[g.Slots[i].PlayerID] = true
		}
	}
	for pid := pidReservedEnd - 1; pid >= 1; pid-- {
		if !used[pid] {
			return pid
		}
	}
	return pidReservedEnd
}

// GetNewColour returns the smallest colour in [0,11] not held by any slot,
// or 12 if saturated.
func (g *Game) GetNewColour() uint8 {
	var used [12]bool
	for i := range g.Slots {
		if g.Slots[i].Color < 12 {
			used[g.Slots[i].Color] = true
		}
	}
	for c := uint8(0); c < 12; c++ {
		if !used[c] {
			return c
		}
	}
	return 12
}
