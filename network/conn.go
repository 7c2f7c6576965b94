// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package network

import (
	"errors"
	"net"
	"time"

	"github.com/aura-project/w3ghost/protocol"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// ErrConnClosed is returned by Conn's methods once Close has been called.
var ErrConnClosed = errors.New("network: connection closed")

// Conn wraps a TCP socket and frames the outbound W3GS packet stream on
// it. It implements game.Conn's narrow surface (Send/ReadAvailable/
// RemoteIP/Close) so the game package never touches the socket; framing
// of the *inbound* stream is owned by the caller (Potential/Player), per
// §4.4's "each peer decodes its own stream" (§5: single-threaded, no locks
// in the core).
type Conn struct {
	conn net.Conn
	enc  w3gs.Encoding

	closed bool
}

// NewW3GSConn wraps c, encoding outbound packets per enc.
func NewW3GSConn(c net.Conn, enc w3gs.Encoding) *Conn {
	return &Conn{conn: c, enc: enc}
}

// Send serializes pkt and writes it to the socket.
func (c *Conn) Send(pkt w3gs.Packet) error {
	var buf protocol.Buffer
	if err := w3gs.Serialize(&buf, &c.enc, pkt); err != nil {
		return err
	}
	_, err := c.conn.Write(buf.Bytes)
	return err
}

// ReadAvailable drains whatever bytes are currently waiting on the socket
// without blocking, per game.Conn's contract. It never decodes packets
// itself; the caller (Potential/Player) owns framing via its own inbound
// buffer, matching §4.4's "each peer decodes its own stream".
func (c *Conn) ReadAvailable() ([]byte, error) {
	if c.closed {
		return nil, ErrConnClosed
	}

	// A zero-duration deadline makes the next Read return immediately
	// with a timeout error if nothing is queued yet, turning a blocking
	// net.Conn into the non-blocking poll readPotentials/readPlayers need
	// once per tick.
	if err := c.conn.SetReadDeadline(time.Now()); err != nil {
		return nil, err
	}

	var out []byte
	var tmp [4096]byte
	for {
		n, err := c.conn.Read(tmp[:])
		if n > 0 {
			out = append(out, tmp[:n]...)
		}
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				break
			}
			return out, err
		}
		if n < len(tmp) {
			break
		}
	}

	c.conn.SetReadDeadline(time.Time{})
	return out, nil
}

// RemoteIP returns the peer's address, or nil if it cannot be determined.
func (c *Conn) RemoteIP() net.IP {
	var addr, ok = c.conn.RemoteAddr().(*net.TCPAddr)
	if !ok {
		return nil
	}
	return addr.IP
}

// Close shuts down the underlying socket. Safe to call more than once.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
