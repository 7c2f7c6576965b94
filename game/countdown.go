// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"strconv"

	"github.com/aura-project/w3ghost/protocol/w3gs"
)

const countdownTicks = 5

// readyToStart reports whether every occupied player slot is at 100%
// download and has been pinged at least 3 times (§4.5 CountDown entry
// condition).
func (g *Game) readyToStart() bool {
	for _, s := range g.Slots {
		if s.Status != w3gs.SlotOccupied || s.Computer {
			continue
		}
		if s.DownloadPct != 100 {
			return false
		}
	}
	for _, p := range g.Players {
		if p.pingCount < 3 {
			return false
		}
	}
	return true
}

// tryStartCountdown attempts the Waiting→CountDown transition, honoring
// the entry condition unless force is set.
func (g *Game) tryStartCountdown(force bool) bool {
	if g.State != Waiting {
		return false
	}
	if !force && !g.readyToStart() {
		return false
	}
	g.State = CountDown
	g.CountdownCounter = countdownTicks
	g.timers.countdown.lastMs = g.Clock.NowMs()
	return true
}

// runCountdown ticks the 5-tick, 500ms-per-tick countdown (§4.5 CountDown,
// S1: "emitting '5. . .'→'1. . .'"), broadcasting the tick count as a chat
// message before each decrement.
func (g *Game) runCountdown(now int64) {
	if !g.timers.countdown.due(now) {
		return
	}
	if g.CountdownCounter == 0 {
		g.enterLoading()
		return
	}
	g.broadcast(&w3gs.ChatFromHost{
		FromPID: g.hostPID(),
		Flag:    w3gs.MsgChat,
		Content: strconv.Itoa(int(g.CountdownCounter)) + ". . .",
	})
	g.CountdownCounter--
}

// abortCountdown reverts CountDown to Waiting on any player leave
// (§4.5 CountDown, S6).
func (g *Game) abortCountdown() {
	g.broadcast(&w3gs.ChatFromHost{
		FromPID: g.hostPID(),
		Flag:    w3gs.MsgChat,
		Content: "Countdown aborted!",
	})
	g.State = Waiting
	g.CountdownCounter = 0
	g.maybeSpawnVirtualHost()
}

// hostPID returns a pid suitable as the "from" field of host-originated
// chat messages: the virtual host's if present, else the pid of the
// earliest-joined remaining player.
func (g *Game) hostPID() uint8 {
	if g.VirtualHostPID != pidReservedEnd {
		return g.VirtualHostPID
	}
	if len(g.Players) > 0 {
		return g.Players[0].PID
	}
	return pidNone
}
