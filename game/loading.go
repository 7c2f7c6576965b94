// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import "github.com/aura-project/w3ghost/protocol/w3gs"

// enterLoading performs the Waiting/CountDown→Loading transition (§4.5):
// the listening socket is closed, potentials discarded, the virtual host
// removed, and COUNTDOWN_START/COUNTDOWN_END broadcast back to back.
func (g *Game) enterLoading() {
	if g.CloseListener != nil {
		g.CloseListener()
	}
	g.Potentials = nil
	g.removeVirtualHost()

	g.broadcast(&w3gs.CountDownStart{})
	g.broadcast(&w3gs.CountDownEnd{})

	g.State = Loading
}

// checkAllLoaded transitions Loading→Loaded once every joined player has
// finished loading, releasing the map's raw bytes (§5 resource policy).
func (g *Game) checkAllLoaded() {
	for _, p := range g.Players {
		if !p.FinishedLoading {
			return
		}
	}
	if len(g.Players) == 0 {
		return
	}
	g.Map.Data = nil
	g.State = Loaded
	g.timers.actionSend.lastMs = g.Clock.NowMs()
}
