// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import "github.com/aura-project/w3ghost/protocol/w3gs"

func (g *Game) onPlayerLeft(p *Player) {
	g.LogOut.Printf("player %q (pid %d) left, code=%d", p.Name, p.PID, p.LeftCode)
}

func (g *Game) onPlayerLoaded(p *Player) {
	g.LogOut.Printf("player %q (pid %d) finished loading", p.Name, p.PID)
}

func (g *Game) onPlayerDropRequest(p *Player) {
	g.LogOut.Printf("player %q (pid %d) requested a drop vote", p.Name, p.PID)
}

// onPlayerKeepAlive detects a desync once every joined player has
// contributed a checksum for the current round (§12 supplemented feature,
// scenario S3).
func (g *Game) onPlayerKeepAlive(p *Player, checksum uint32) {
	if g.pendingChecksums == nil {
		g.pendingChecksums = make(map[uint8]uint32, len(g.Players))
	}
	g.pendingChecksums[p.PID] = checksum

	if len(g.Players) == 0 || len(g.pendingChecksums) < len(g.Players) {
		return
	}

	var ref uint32
	var first = true
	var mismatch bool
	for _, v := range g.pendingChecksums {
		if first {
			ref = v
			first = false
			continue
		}
		if v != ref {
			mismatch = true
		}
	}
	if mismatch {
		g.Desynced = true
		g.broadcast(&w3gs.ChatFromHost{
			FromPID: g.hostPID(),
			Flag:    w3gs.MsgChat,
			Content: w3gs.DesyncWarning,
		})
	}
	g.pendingChecksums = make(map[uint8]uint32, len(g.Players))
}

// onPlayerChat dispatches CHAT_TO_HOST by its variant body (§4.4.2,
// §12 admin commands).
func (g *Game) onPlayerChat(p *Player, m *w3gs.ChatToHost) {
	switch m.Type {
	case w3gs.MsgChat:
		if g.tryDispatchCommand(p, m.Content) {
			return
		}
		g.broadcast(&w3gs.ChatFromHost{
			RecipientIDs: m.RecipientIDs,
			FromPID:      p.PID,
			Flag:         w3gs.MsgChat,
			Content:      m.Content,
		})

	case w3gs.MsgTeamChange:
		g.applyTeamChange(p, m.NewValue)

	case w3gs.MsgColorChange:
		if sid, ok := g.GetSIDFromPID(p.PID); ok {
			g.ColourSlot(sid, m.NewValue)
		}

	case w3gs.MsgRaceChange:
		if sid, ok := g.GetSIDFromPID(p.PID); ok && w3gs.RacePref(m.NewValue)&w3gs.RaceSelectable == 0 {
			g.Slots[sid].Race = w3gs.RacePref(m.NewValue)
			g.SlotInfoDirty = true
		}

	case w3gs.MsgHandicapChange:
		if sid, ok := g.GetSIDFromPID(p.PID); ok && w3gs.ValidHandicap(m.NewValue) {
			g.Slots[sid].Handicap = m.NewValue
			g.SlotInfoDirty = true
		}
	}
}

func (g *Game) applyTeamChange(p *Player, team uint8) {
	if team > 12 {
		return
	}
	var sid, ok = g.GetSIDFromPID(p.PID)
	if !ok {
		return
	}
	if g.Map.HasFixedPlayerSettings() {
		return
	}
	var target = g.GetEmptySlotForTeam(team, p.PID)
	if target < 0 {
		return
	}
	g.SwapSlots(sid, target)
}
