// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"net"

	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// Conn is the narrow socket surface a Potential/Player needs. network.Conn
// implements it; tests substitute a recording fake (§5 resource policy:
// "each TCP socket is scoped to exactly one peer value").
type Conn interface {
	Send(pkt w3gs.Packet) error
	// ReadAvailable returns any bytes newly arrived on the socket since
	// the last call, without blocking. An empty, nil-error result means
	// no data is currently available.
	ReadAvailable() ([]byte, error)
	RemoteIP() net.IP
	Close() error
}
