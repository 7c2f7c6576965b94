// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import "github.com/aura-project/w3ghost/protocol/w3gs"

// runLanAdvertisement drives §4.5.4: GAMEINFO every 5s while Waiting, and
// PING_FROM_HOST every 5s in any state.
func (g *Game) runLanAdvertisement(now int64) {
	if !g.timers.pingLanAd.due(now) {
		return
	}

	if g.State == Waiting && g.Broadcaster != nil {
		if err := g.Broadcaster.Broadcast(g.buildGameInfo()); err != nil {
			g.LogErr.Printf("lan broadcast: %v", err)
		}
	}

	g.broadcast(&w3gs.PingFromHost{Ticks: uint32(now)})
}

// buildGameInfo assembles the GAMEINFO packet's fixed-policy fields
// (§4.5.4: "Clan 007" decoy host name, zero uptime, fixed 12/12 slots).
func (g *Game) buildGameInfo() *w3gs.GameInfo {
	var gs = w3gs.GameSettings{
		GameSettingFlags: g.Map.Options,
		Speed:            g.Map.Speed,
		Visibility:       g.Map.Visibility,
		Observers:        g.Map.Observers,
		MapWidth:         g.Map.Width,
		MapHeight:        g.Map.Height,
		MapXoro:          g.Map.Xoro,
		MapPath:          g.Map.Path,
		HostName:         "Clan 007",
		MapSha1:          g.Map.Sha1,
	}

	return &w3gs.GameInfo{
		GameVersion:  g.Config.LanWar3Version,
		HostCounter:  g.HostCounter,
		EntryKey:     g.EntryKey,
		GameName:     g.GameName,
		GameSettings: gs,
		UpTimeSec:    0,
		SlotsTotal:   12,
		SlotsOpen:    12,
		HostPort:     g.Config.BotHostPort,
	}
}
