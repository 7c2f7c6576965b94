// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

// Package lan implements the UDP side of §4.5.4: broadcasting GAMEINFO,
// REFRESHGAME and DECREATEGAME datagrams to the local network so LAN
// clients can discover a lobby without a Battle.net realm.
package lan

import (
	"net"

	"github.com/aura-project/w3ghost/protocol"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

const writeBufferSize = 64 * 1024

// Port is the standard Warcraft III LAN discovery port.
const Port = 6112

// Advertiser is a thin UDP sender: it owns the broadcast socket and
// serializes whatever packet a Game hands it. Cadence (every 5 s while
// Waiting, per §4.5.4) is the Game's timer, not the Advertiser's — unlike
// a self-ticking broadcaster, a Game calls Broadcast once per tick it
// decides to advertise, so one Advertiser can be shared (or one built per
// game, each with its own socket) depending on the caller's topology.
type Advertiser struct {
	conn          *net.UDPConn
	broadcastAddr *net.UDPAddr
	enc           w3gs.Encoding
}

// NewAdvertiser opens the broadcast UDP socket, tuned per socket_*.go's
// platform-specific SO_BROADCAST/SO_REUSEADDR handling.
func NewAdvertiser() (*Advertiser, error) {
	var conn, err = net.ListenUDP("udp4", &net.UDPAddr{Port: 0})
	if err != nil {
		return nil, err
	}
	if err := tuneSocket(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Advertiser{
		conn:          conn,
		broadcastAddr: &net.UDPAddr{IP: net.IPv4bcast, Port: Port},
	}, nil
}

// Broadcast implements game.Broadcaster: it serializes pkt and writes it
// to the LAN broadcast address. Safe to call with any of GameInfo,
// CreateGame, RefreshGame or DecreateGame.
func (a *Advertiser) Broadcast(pkt w3gs.Packet) error {
	var buf protocol.Buffer
	if err := w3gs.Serialize(&buf, &a.enc, pkt); err != nil {
		return err
	}
	_, err := a.conn.WriteToUDP(buf.Bytes, a.broadcastAddr)
	return err
}

// Close releases the broadcast socket.
func (a *Advertiser) Close() error {
	return a.conn.Close()
}
