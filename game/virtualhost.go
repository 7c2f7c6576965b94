// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"net"

	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// maybeSpawnVirtualHost enforces §4.5.5: present while Waiting/CountDown
// and player_count<12, absent otherwise (I5).
func (g *Game) maybeSpawnVirtualHost() {
	var wantHost = (g.State == Waiting || g.State == CountDown) && g.PlayerCount() < 12

	if wantHost && g.VirtualHostPID == pidReservedEnd {
		g.spawnVirtualHost()
	} else if !wantHost && g.VirtualHostPID != pidReservedEnd {
		g.removeVirtualHost()
	}
}

func (g *Game) spawnVirtualHost() {
	var pid = g.GetNewVirtualHostPID()
	g.VirtualHostPID = pid

	g.broadcast(&w3gs.PlayerInfo{
		JoinCounter:  joinCounterConst,
		PlayerID:     pid,
		PlayerName:   g.VirtualHostName,
		ExternalIP:   net.IPv4(0, 0, 0, 0),
		InternalIP:   net.IPv4(0, 0, 0, 0),
		ExternalPort: g.Config.BotHostPort,
		InternalPort: g.Config.BotHostPort,
	})
}

func (g *Game) removeVirtualHost() {
	if g.VirtualHostPID == pidReservedEnd {
		return
	}
	g.broadcast(&w3gs.PlayerLeaveOthers{PlayerID: g.VirtualHostPID, Reason: w3gs.LeaveLobby})
	g.VirtualHostPID = pidReservedEnd
}
