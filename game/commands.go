// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"strconv"
	"strings"

	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// tryDispatchCommand parses a "!"-prefixed admin command out of a chat
// message (§12 supplemented feature: a thin dispatcher over the slot
// engine, adding no new invariant). Reports whether msg was a command.
func (g *Game) tryDispatchCommand(from *Player, msg string) bool {
	if !strings.HasPrefix(msg, "!") {
		return false
	}
	var fields = strings.Fields(strings.TrimPrefix(msg, "!"))
	if len(fields) == 0 {
		return true
	}

	switch strings.ToLower(fields[0]) {
	case "start":
		g.tryStartCountdown(true)

	case "swap":
		if len(fields) != 3 {
			return true
		}
		a, errA := strconv.Atoi(fields[1])
		b, errB := strconv.Atoi(fields[2])
		if errA == nil && errB == nil {
			g.SwapSlots(a-1, b-1)
		}

	case "close":
		if sid, ok := slotArg(fields); ok {
			g.CloseSlot(sid)
		}

	case "open":
		if sid, ok := slotArg(fields); ok {
			g.OpenSlot(sid)
		}

	case "kick":
		if len(fields) != 2 {
			return true
		}
		if pid, err := strconv.Atoi(fields[1]); err == nil {
			g.kickPID(uint8(pid))
		}
	}
	return true
}

func slotArg(fields []string) (int, bool) {
	if len(fields) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return n - 1, true
}

func (g *Game) kickPID(pid uint8) {
	for _, p := range g.Players {
		if p.PID == pid {
			p.LeftCode = uint32(w3gs.LeaveLobby)
			p.DeleteMe = true
			return
		}
	}
}
