// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

//go:build !linux

package lan

import "net"

// tuneSocket is the stdlib-only fallback for platforms where
// golang.org/x/sys/unix's socket-option constants aren't the Linux set;
// net.ListenUDP's defaults are relied on for SO_BROADCAST/SO_REUSEADDR.
func tuneSocket(conn *net.UDPConn) error {
	return conn.SetWriteBuffer(writeBufferSize)
}
