// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"net"

	"golang.org/x/time/rate"

	"github.com/aura-project/w3ghost/protocol"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

const pingRingSize = 10
const playerTimeoutMs = 30000
const lagScreenGraceMs = 10000

// Player is a post-join TCP peer (§3 Peer/Player, §4.4.2).
type Player struct {
	Conn Conn

	PID        uint8
	Name       string
	InternalIP net.IP
	ExternalIP net.IP

	SyncCounter uint32
	LeftCode    uint32

	LastMapPartSent  uint32
	LastMapPartAcked uint32
	DownloadStarted  bool
	DownloadFinished bool

	FinishedLoading bool

	Lagging             bool
	StartedLaggingTicks int64
	DropVote            bool

	DeleteMe bool

	pingSamples [pingRingSize]uint32
	pingCount   int
	pingHead    int

	inbound    protocol.Buffer
	lastRecvMs int64

	// downloadLimiter bounds map-download pacing to 100 chunks/s with a
	// burst of 100. It is an additional cap on top of §4.5.3's "1442·100
	// bytes ahead of the last ack" window, which runDownloadPacer enforces
	// by comparing LastMapPartSent against LastMapPartAcked.
	downloadLimiter *rate.Limiter
}

// NewPlayer constructs a joined Player from a promoted Potential.
func NewPlayer(c Conn, pid uint8, name string, internalIP net.IP, externalIP net.IP, now int64) *Player {
	return &Player{
		Conn:            c,
		PID:             pid,
		Name:            name,
		InternalIP:      internalIP,
		ExternalIP:      externalIP,
		lastRecvMs:      now,
		downloadLimiter: rate.NewLimiter(rate.Limit(100), 100),
	}
}

// Send transmits pkt to the player, swallowing the error into a disconnect
// (§7: socket error → delete_me).
func (p *Player) Send(pkt w3gs.Packet) {
	if err := p.Conn.Send(pkt); err != nil {
		p.DeleteMe = true
	}
}

// recordPing samples an RTT. Samples ≤1 tick or taken mid-download are
// discarded (§4.4.2 PONG_TO_HOST).
func (p *Player) recordPing(rtt uint32) {
	if rtt <= 1 || (p.DownloadStarted && !p.DownloadFinished) {
		return
	}
	p.pingSamples[p.pingHead] = rtt
	p.pingHead = (p.pingHead + 1) % pingRingSize
	if p.pingCount < pingRingSize {
		p.pingCount++
	}
}

// averagePingMs returns the mean of the recorded ping samples, or 0 if none.
func (p *Player) averagePingMs() uint32 {
	if p.pingCount == 0 {
		return 0
	}
	var sum uint32
	for i := 0; i < p.pingCount; i++ {
		sum += p.pingSamples[i]
	}
	return sum / uint32(p.pingCount)
}

// checkPingKicks soft-kicks any player whose rolling average RTT exceeds
// Config.MaxPingMs once at least 3 samples are in (§7 "Soft-kick: excessive
// ping", §12 supplemented feature). Only enforced while still in the lobby.
func (g *Game) checkPingKicks() {
	if g.Config.MaxPingMs == 0 {
		return
	}
	for _, p := range g.Players {
		if p.DeleteMe || p.pingCount < 3 {
			continue
		}
		if p.averagePingMs() > g.Config.MaxPingMs {
			p.LeftCode = uint32(w3gs.LeaveLobby)
			p.DeleteMe = true
		}
	}
}

// readPlayers drains socket bytes for every player and dispatches complete
// packets per the §4.4.2 table, then checks the 30 s/10 s timeout.
func (g *Game) readPlayers(now int64) {
	var enc = w3gs.Encoding{GameVersion: g.Config.LanWar3Version}

	for _, p := range g.Players {
		if p.DeleteMe {
			continue
		}

		data, err := p.Conn.ReadAvailable()
		if err != nil {
			p.DeleteMe = true
			g.onPlayerDisconnected(p, w3gs.LeaveDisconnect)
			continue
		}
		if len(data) > 0 {
			p.inbound.WriteBlob(data)
			p.lastRecvMs = now
		}

		for p.inbound.Size() >= w3gs.HeaderSize {
			pkt, err := w3gs.DeserializePacket(&p.inbound, &enc, w3gs.DefaultFactory)
			if err == w3gs.ErrIncomplete {
				break
			}
			if err != nil {
				p.DeleteMe = true
				g.onPlayerDisconnected(p, w3gs.LeaveDisconnect)
				break
			}
			g.dispatchPlayerPacket(p, pkt, now)
		}

		if !p.DeleteMe && now-p.lastRecvMs >= playerTimeoutMs && now-g.LastLagScreenTicks >= lagScreenGraceMs {
			p.DeleteMe = true
			g.onPlayerDisconnected(p, w3gs.LeaveDisconnect)
		}
	}
}

func (g *Game) dispatchPlayerPacket(p *Player, pkt w3gs.Packet, now int64) {
	switch m := pkt.(type) {
	case *w3gs.LeaveGame:
		p.LeftCode = m.Reason
		p.DeleteMe = true
		g.onPlayerLeft(p)

	case *w3gs.GameLoadedSelf:
		if !p.FinishedLoading {
			p.FinishedLoading = true
			g.onPlayerLoaded(p)
		}

	case *w3gs.OutgoingAction:
		if p.PID != pidReservedEnd {
			g.ActionQueue = append(g.ActionQueue, w3gs.PlayerAction{PlayerID: p.PID, Data: m.Payload})
		}

	case *w3gs.OutgoingKeepAlive:
		p.SyncCounter++
		g.onPlayerKeepAlive(p, m.Checksum)

	case *w3gs.ChatToHost:
		g.onPlayerChat(p, m)

	case *w3gs.DropReq:
		if !p.DropVote {
			p.DropVote = true
			g.onPlayerDropRequest(p)
		}

	case *w3gs.MapSize:
		g.onPlayerMapSize(p, m)

	case *w3gs.PongToHost:
		g.recordPong(p, m.EchoedTicks, now)
	}
}

func (g *Game) onPlayerDisconnected(p *Player, reason w3gs.LeaveReason) {
	p.LeftCode = uint32(reason)
}

func (g *Game) recordPong(p *Player, echoedTicks uint32, now int64) {
	var rtt uint32
	if uint32(now) >= echoedTicks {
		rtt = uint32(now) - echoedTicks
	}
	p.recordPing(rtt)
}
