// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

//go:build linux

package lan

import (
	"net"

	"golang.org/x/sys/unix"
)

// tuneSocket sets SO_BROADCAST and SO_REUSEADDR explicitly on Linux rather
// than relying on net.ListenUDP's defaults, and grows the write buffer so
// a burst of GAMEINFO/REFRESHGAME sends across many games doesn't block on
// the kernel socket buffer (§11 domain stack, grounded on the kradalby
// lan-broadcaster's SetWriteBuffer tuning).
func tuneSocket(conn *net.UDPConn) error {
	if err := conn.SetWriteBuffer(writeBufferSize); err != nil {
		return err
	}

	var raw, err = conn.SyscallConn()
	if err != nil {
		return err
	}

	var sockErr error
	if err := raw.Control(func(fd uintptr) {
		if e := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1); e != nil {
			sockErr = e
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	return sockErr
}
