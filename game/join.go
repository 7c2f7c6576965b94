// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"github.com/aura-project/w3ghost/internal/config"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// joinCounterConst is the constant PLAYERINFO.JoinCounter value (§6 table:
// "u32 join_counter=2").
const joinCounterConst = 2

// promote validates a Potential's completed JoinRequest and either turns it
// into a joined Player or rejects it (§4.4.1, §7 Soft-kick).
func (g *Game) promote(p *Potential) {
	var req = p.IncomingJoin

	if g.State != Waiting {
		p.Conn.Send(&w3gs.RejectJoin{Reason: w3gs.RejectJoinStarted})
		p.DeleteMe = true
		return
	}
	if req.EntryKey != g.EntryKey {
		p.Conn.Send(&w3gs.RejectJoin{Reason: w3gs.RejectJoinInvalid})
		p.DeleteMe = true
		return
	}
	if !g.validatePlayerName(req.Name) {
		p.Conn.Send(&w3gs.RejectJoin{Reason: w3gs.RejectJoinInvalid})
		p.DeleteMe = true
		return
	}

	var sid = g.GetEmptySlot()
	if sid < 0 {
		p.Conn.Send(&w3gs.RejectJoin{Reason: w3gs.RejectJoinFull})
		p.DeleteMe = true
		return
	}

	var now = g.Clock.NowMs()
	var pid = g.GetNewPID()
	if g.Slots[sid].Color >= 12 {
		g.Slots[sid].Color = g.GetNewColour()
	}
	g.Slots[sid].PlayerID = pid
	g.Slots[sid].Status = w3gs.SlotOccupied
	g.Slots[sid].DownloadPct = 0

	var newPlayer = NewPlayer(p.Conn, pid, req.Name, req.InternalIP, p.Conn.RemoteIP(), now)
	// Any bytes the potential already buffered past the REQJOIN belong to
	// the new Player (§4.4.1: "remaining bytes are inherited").
	newPlayer.inbound = p.Inbound

	g.onPlayerJoined(newPlayer)
}

func (g *Game) onPlayerJoined(p *Player) {
	p.Send(&w3gs.SlotInfoJoin{
		SlotInfo:     g.slotInfoSnapshot(),
		PlayerID:     p.PID,
		ExternalIP:   p.ExternalIP,
		ExternalPort: g.Config.BotHostPort,
	})

	for _, other := range g.Players {
		p.Send(&w3gs.PlayerInfo{
			JoinCounter:  joinCounterConst,
			PlayerID:     other.PID,
			PlayerName:   other.Name,
			ExternalIP:   other.ExternalIP,
			ExternalPort: g.Config.BotHostPort,
			InternalIP:   other.InternalIP,
			InternalPort: g.Config.BotHostPort,
		})
	}

	g.Players = append(g.Players, p)

	g.broadcastExcept(&w3gs.PlayerInfo{
		JoinCounter:  joinCounterConst,
		PlayerID:     p.PID,
		PlayerName:   p.Name,
		ExternalIP:   p.ExternalIP,
		ExternalPort: g.Config.BotHostPort,
		InternalIP:   p.InternalIP,
		InternalPort: g.Config.BotHostPort,
	}, p)

	g.SlotInfoDirty = true
	g.maybeSpawnVirtualHost()

	if g.Config.BotAutoStart == config.AutoStartOnAnyJoin || (g.Config.BotAutoStart == config.AutoStartOnFull && g.allSlotsFull()) {
		g.tryStartCountdown(false)
	}
}

// slotInfoSnapshot builds the SlotInfo wire body from the current slot
// vector and map layout (§6 "Slotinfo serialization").
func (g *Game) slotInfoSnapshot() w3gs.SlotInfo {
	return w3gs.SlotInfo{
		Slots:       append([]w3gs.Slot(nil), g.Slots...),
		RandomSeed:  g.RandomSeed,
		Layout:      g.Map.LayoutStyle(),
		PlayerSlots: uint8(g.Map.NumPlayers),
	}
}

func (g *Game) allSlotsFull() bool {
	for i := range g.Slots {
		if g.Slots[i].Status == w3gs.SlotOpen {
			return false
		}
	}
	return true
}
