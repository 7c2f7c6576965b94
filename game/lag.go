// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import "github.com/aura-project/w3ghost/protocol/w3gs"

const lagScreenResetMs = 60000

// runLagScreen drives §4.5.2: per-player lag detection, the START_LAG /
// STOP_LAG transitions, the 60s keep-alive reissue, vote-drop, and
// auto-drop.
func (g *Game) runLagScreen(now int64) {
	g.updatePerPlayerLag(now)

	var anyLagging = false
	for _, p := range g.Players {
		if p.Lagging {
			anyLagging = true
			break
		}
	}

	if anyLagging && !g.Lagging {
		g.Lagging = true
		g.StartedLaggingTicks = now
		g.LastLagScreenTicks = now
		for _, p := range g.Players {
			p.DropVote = false
		}
		g.broadcast(g.buildStartLag(now))
	} else if !anyLagging && g.Lagging {
		g.Lagging = false
	}

	if !g.Lagging {
		return
	}

	if now-g.LastLagScreenTicks >= lagScreenResetMs {
		g.reissueLagScreen(now)
	}

	g.checkDropVotes()
	g.checkAutoDrop(now)
}

func (g *Game) updatePerPlayerLag(now int64) {
	for _, p := range g.Players {
		var delta = int64(g.SyncCounter) - int64(p.SyncCounter)
		switch {
		case !p.Lagging && delta > int64(g.SyncLimit):
			p.Lagging = true
			p.StartedLaggingTicks = now
		case p.Lagging && delta < int64(g.SyncLimit)/2:
			p.Lagging = false
			g.broadcast(&w3gs.StopLag{PlayerID: p.PID, Ticks: uint32(now - p.StartedLaggingTicks)})
		}
	}
}

func (g *Game) buildStartLag(now int64) *w3gs.StartLag {
	var sl w3gs.StartLag
	for _, p := range g.Players {
		if p.Lagging {
			sl.Players = append(sl.Players, w3gs.LagPlayer{PlayerID: p.PID, Ticks: uint32(now - p.StartedLaggingTicks)})
		}
	}
	return &sl
}

// reissueLagScreen is the only way to keep client connections alive across
// a long stall: STOP_LAG for every laggy player, an empty zero-latency
// INCOMING_ACTION, then a fresh START_LAG (§4.5.2).
func (g *Game) reissueLagScreen(now int64) {
	for _, p := range g.Players {
		if p.Lagging {
			g.broadcast(&w3gs.StopLag{PlayerID: p.PID, Ticks: uint32(now - p.StartedLaggingTicks)})
		}
	}
	g.broadcast(&w3gs.IncomingAction{SendInterval: 0})
	g.broadcast(g.buildStartLag(now))
	g.LastLagScreenTicks = now
}

func (g *Game) checkDropVotes() {
	if len(g.Players) == 0 {
		return
	}
	var votes int
	for _, p := range g.Players {
		if p.DropVote {
			votes++
		}
	}
	if votes*2 > len(g.Players) {
		g.kickLaggingPlayers()
	}
}

func (g *Game) checkAutoDrop(now int64) {
	if now-g.StartedLaggingTicks >= lagScreenResetMs {
		g.kickLaggingPlayers()
	}
}

func (g *Game) kickLaggingPlayers() {
	for _, p := range g.Players {
		if p.Lagging {
			p.LeftCode = uint32(w3gs.LeaveDisconnect)
			p.DeleteMe = true
		}
	}
}
