// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

import (
	"net"

	"github.com/aura-project/w3ghost/protocol"
)

// sockAddrSize is the size of the embedded sockaddr_in structures PlayerInfo
// and SlotInfoJoin carry: 2-byte family, 2-byte big-endian port, 4-byte
// big-endian IPv4 address, 8 reserved zero bytes.
const sockAddrSize = 16

const afInet = 2

func writeSockAddr(buf *protocol.Buffer, port uint16, ip net.IP) {
	buf.WriteUInt16(afInet)
	buf.WritePortBE(port)
	buf.WriteIP4BE(ip)
	buf.WriteBlob(make([]byte, 8))
}

func readSockAddr(buf *protocol.Buffer) (uint16, net.IP) {
	buf.Skip(2) // family
	var port = buf.ReadPortBE()
	var ip = buf.ReadIP4BE()
	buf.Skip(8)
	return port, ip
}
