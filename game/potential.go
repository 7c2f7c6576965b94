// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"net"

	"github.com/aura-project/w3ghost/protocol"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// JoinRequest is the parsed body of a REQJOIN (§3 Peer/Potential).
type JoinRequest struct {
	HostCounter uint32
	EntryKey    uint32
	Name        string
	InternalIP  net.IP
	ListenPort  uint16
}

// Potential is a pre-join TCP peer (§4.4.1): the only packet it accepts is
// REQJOIN. It never owns its Game; events are dispatched by calling into
// the Game that holds it.
type Potential struct {
	Conn        Conn
	Inbound     protocol.Buffer
	IncomingJoin *JoinRequest
	DeleteMe    bool
}

// NewPotential wraps an accepted connection.
func NewPotential(c Conn) *Potential {
	return &Potential{Conn: c}
}

// readPotentials drains socket bytes for every potential and dispatches the
// first REQJOIN each one sends (§4.4.1).
func (g *Game) readPotentials(now int64) {
	for _, p := range g.Potentials {
		if p.DeleteMe {
			continue
		}
		p.pump(g, now)
	}

	// Promotions happen after the scan so a newly-created Player doesn't
	// get read twice in the same tick (it inherits the Potential's
	// leftover bytes, not a second read).
	var kept = g.Potentials[:0]
	for _, p := range g.Potentials {
		if p.IncomingJoin != nil {
			g.promote(p)
			continue
		}
		kept = append(kept, p)
	}
	g.Potentials = kept
}

func (p *Potential) pump(g *Game, now int64) {
	data, err := p.Conn.ReadAvailable()
	if err != nil {
		p.DeleteMe = true
		return
	}
	if len(data) > 0 {
		p.Inbound.WriteBlob(data)
	}

	if p.IncomingJoin != nil {
		return
	}

	var enc = w3gs.Encoding{GameVersion: g.Config.LanWar3Version}
	for p.Inbound.Size() >= w3gs.HeaderSize {
		pkt, err := w3gs.DeserializePacket(&p.Inbound, &enc, w3gs.DefaultFactory)
		if err == w3gs.ErrIncomplete {
			return
		}
		if err != nil {
			p.DeleteMe = true
			return
		}

		req, ok := pkt.(*w3gs.ReqJoin)
		if !ok {
			// Any other opcode before join is a protocol error (§4.4.1).
			p.DeleteMe = true
			return
		}

		p.IncomingJoin = &JoinRequest{
			HostCounter: req.HostCounter,
			EntryKey:    req.EntryKey,
			Name:        req.PlayerName,
			InternalIP:  req.InternalIP,
			ListenPort:  req.ListenPort,
		}
		// Parsing stops for this peer; remaining bytes (if any) are
		// inherited by the Player that replaces it.
		return
	}
}
