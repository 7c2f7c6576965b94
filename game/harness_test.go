// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"io"
	"log"
	"net"

	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/internal/config"
	"github.com/aura-project/w3ghost/protocol"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// fakeConn is an in-memory stand-in for network.Conn: Send records the
// packet, ReadAvailable drains a queue of pre-staged inbound byte chunks.
type fakeConn struct {
	sent     []w3gs.Packet
	toRead   [][]byte
	remoteIP net.IP
	closed   bool
	sendErr  error
}

func newFakeConn() *fakeConn {
	return &fakeConn{remoteIP: net.IPv4(10, 0, 0, 1)}
}

func (c *fakeConn) Send(pkt w3gs.Packet) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, pkt)
	return nil
}

func (c *fakeConn) ReadAvailable() ([]byte, error) {
	if len(c.toRead) == 0 {
		return nil, nil
	}
	var d = c.toRead[0]
	c.toRead = c.toRead[1:]
	return d, nil
}

func (c *fakeConn) RemoteIP() net.IP { return c.remoteIP }
func (c *fakeConn) Close() error     { c.closed = true; return nil }

// queueReqJoin stages a REQJOIN packet's wire bytes as the conn's next read.
func (c *fakeConn) queueReqJoin(enc *w3gs.Encoding, req *w3gs.ReqJoin) {
	var buf protocol.Buffer
	w3gs.Serialize(&buf, enc, req)
	c.toRead = append(c.toRead, append([]byte(nil), buf.Bytes...))
}

// fakeBroadcaster records every LAN packet broadcast (§4.5.4).
type fakeBroadcaster struct {
	sent []w3gs.Packet
}

func (b *fakeBroadcaster) Broadcast(pkt w3gs.Packet) error {
	b.sent = append(b.sent, pkt)
	return nil
}

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func meleeMap() *Map {
	return &Map{
		Path:       "Maps\\(12)EmeraldGardens.w3x",
		Size:       1 << 20,
		NumPlayers: 12,
		SlotTemplate: func() []w3gs.Slot {
			var s = make([]w3gs.Slot, 12)
			for i := range s {
				s[i] = w3gs.Slot{Status: w3gs.SlotOpen, Team: uint8(i), Color: uint8(i)}
			}
			return s
		}(),
		Data: make([]byte, 1<<20),
	}
}

func customForcesMap() *Map {
	var m = meleeMap()
	m.Options = w3gs.FlagCustomForces
	for i := range m.SlotTemplate {
		m.SlotTemplate[i].Team = uint8(i % 2)
	}
	return m
}

func newTestGame(m *Map, v *clock.Virtual) *Game {
	var cfg = config.Default()
	return New(m, cfg, v, discardLogger(), discardLogger(), nil, 1, 0xCAFE)
}

// joinPlayer drives a fakeConn's REQJOIN through the full promote() path and
// returns the resulting Player.
func joinPlayer(g *Game, name string) (*Player, *fakeConn) {
	var c = newFakeConn()
	var enc = w3gs.Encoding{GameVersion: g.Config.LanWar3Version}
	c.queueReqJoin(&enc, &w3gs.ReqJoin{
		HostCounter: g.HostCounter,
		EntryKey:    g.EntryKey,
		PlayerName:  name,
		InternalIP:  net.IPv4(10, 0, 0, 2),
	})

	var p = NewPotential(c)
	g.Potentials = append(g.Potentials, p)
	g.readPotentials(g.Clock.NowMs())

	for _, pl := range g.Players {
		if pl.Name == name {
			return pl, c
		}
	}
	return nil, c
}
