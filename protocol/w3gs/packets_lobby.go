// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

import (
	"net"

	"github.com/aura-project/w3ghost/protocol"
)

// ReqJoin [0x14] C→S — the only packet a Potential peer accepts (§4.4.1).
type ReqJoin struct {
	HostCounter uint32
	EntryKey    uint32
	ListenPort  uint16
	PeerKey     uint32
	PlayerName  string
	InternalPort uint16
	InternalIP   net.IP
}

// Opcode implements Packet.
func (p *ReqJoin) Opcode() Opcode { return OpReqJoin }

// SerializeContent implements Packet.
func (p *ReqJoin) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt32(p.HostCounter)
	buf.WriteUInt32(p.EntryKey)
	buf.WriteUInt8(0) // junk
	buf.WriteUInt16(p.ListenPort)
	buf.WriteUInt32(p.PeerKey)
	buf.WriteCString(p.PlayerName)
	buf.WriteBlob(make([]byte, 4)) // junk
	buf.WriteUInt16(p.InternalPort)
	buf.WriteIP4BE(p.InternalIP)
	return nil
}

// DeserializeContent implements Packet.
func (p *ReqJoin) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 17 {
		return protocol.ErrInvalidPacketSize
	}
	p.HostCounter = buf.ReadUInt32()
	p.EntryKey = buf.ReadUInt32()
	buf.Skip(1)
	p.ListenPort = buf.ReadUInt16()
	p.PeerKey = buf.ReadUInt32()

	var err error
	if p.PlayerName, err = buf.ReadCString(); err != nil {
		return err
	}

	if buf.Size() < 10 {
		return protocol.ErrInvalidPacketSize
	}
	buf.Skip(4)
	p.InternalPort = buf.ReadUInt16()
	p.InternalIP = buf.ReadIP4BE()
	return nil
}

// RejectJoin [0x04] S→C.
type RejectJoin struct {
	Reason RejectReason
}

// Opcode implements Packet.
func (p *RejectJoin) Opcode() Opcode { return OpRejectJoin }

// SerializeContent implements Packet.
func (p *RejectJoin) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt32(uint32(p.Reason))
	return nil
}

// DeserializeContent implements Packet.
func (p *RejectJoin) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 4 {
		return protocol.ErrInvalidPacketSize
	}
	p.Reason = RejectReason(buf.ReadUInt32())
	return nil
}

// SlotInfoJoin [0x05] S→C.
type SlotInfoJoin struct {
	SlotInfo
	PlayerID    uint8
	ExternalIP  net.IP
	ExternalPort uint16
}

// Opcode implements Packet.
func (p *SlotInfoJoin) Opcode() Opcode { return OpSlotInfoJoin }

// SerializeContent implements Packet.
func (p *SlotInfoJoin) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	p.SlotInfo.SerializeContent(buf)
	buf.WriteUInt8(p.PlayerID)
	writeSockAddr(buf, p.ExternalPort, p.ExternalIP)
	return nil
}

// DeserializeContent implements Packet.
func (p *SlotInfoJoin) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if err := p.SlotInfo.DeserializeContent(buf); err != nil {
		return err
	}
	if buf.Size() < 1+sockAddrSize {
		return protocol.ErrInvalidPacketSize
	}
	p.PlayerID = buf.ReadUInt8()
	p.ExternalPort, p.ExternalIP = readSockAddr(buf)
	return nil
}

// PlayerInfo [0x06] S→C.
type PlayerInfo struct {
	JoinCounter uint32
	PlayerID    uint8
	PlayerName  string
	ExternalPort uint16
	ExternalIP   net.IP
	InternalPort uint16
	InternalIP   net.IP
}

// Opcode implements Packet.
func (p *PlayerInfo) Opcode() Opcode { return OpPlayerInfo }

// SerializeContent implements Packet.
func (p *PlayerInfo) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt32(p.JoinCounter)
	buf.WriteUInt8(p.PlayerID)
	buf.WriteCString(p.PlayerName)
	buf.WriteBlob(make([]byte, 2)) // junk
	writeSockAddr(buf, p.ExternalPort, p.ExternalIP)
	writeSockAddr(buf, p.InternalPort, p.InternalIP)
	return nil
}

// DeserializeContent implements Packet.
func (p *PlayerInfo) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 5 {
		return protocol.ErrInvalidPacketSize
	}
	p.JoinCounter = buf.ReadUInt32()
	p.PlayerID = buf.ReadUInt8()

	var err error
	if p.PlayerName, err = buf.ReadCString(); err != nil {
		return err
	}
	if buf.Size() < 2+2*sockAddrSize {
		return protocol.ErrInvalidPacketSize
	}
	buf.Skip(2)
	p.ExternalPort, p.ExternalIP = readSockAddr(buf)
	p.InternalPort, p.InternalIP = readSockAddr(buf)
	return nil
}

// PlayerLeaveOthers [0x07] S→C — used both for PLAYERLEAVE_OTHERS broadcasts
// and the virtual host's removal (§4.5.5).
type PlayerLeaveOthers struct {
	PlayerID uint8
	Reason   LeaveReason
}

// Opcode implements Packet.
func (p *PlayerLeaveOthers) Opcode() Opcode { return OpPlayerLeaveOthers }

// SerializeContent implements Packet.
func (p *PlayerLeaveOthers) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt8(p.PlayerID)
	buf.WriteUInt32(uint32(p.Reason))
	return nil
}

// DeserializeContent implements Packet.
func (p *PlayerLeaveOthers) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 5 {
		return protocol.ErrInvalidPacketSize
	}
	p.PlayerID = buf.ReadUInt8()
	p.Reason = LeaveReason(buf.ReadUInt32())
	return nil
}

// SlotInfoPacket [0x08] S→C. Named to avoid colliding with the embeddable
// SlotInfo wire struct it wraps.
type SlotInfoPacket struct {
	SlotInfo
}

// Opcode implements Packet.
func (p *SlotInfoPacket) Opcode() Opcode { return OpSlotInfo }

// SerializeContent implements Packet.
func (p *SlotInfoPacket) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	p.SlotInfo.SerializeContent(buf)
	return nil
}

// DeserializeContent implements Packet.
func (p *SlotInfoPacket) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	return p.SlotInfo.DeserializeContent(buf)
}

// CountDownStart [0x09] S→C.
type CountDownStart struct{}

// Opcode implements Packet.
func (p *CountDownStart) Opcode() Opcode { return OpCountDownStart }

// SerializeContent implements Packet.
func (p *CountDownStart) SerializeContent(buf *protocol.Buffer, enc *Encoding) error { return nil }

// DeserializeContent implements Packet.
func (p *CountDownStart) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error { return nil }

// CountDownEnd [0x0A] S→C.
type CountDownEnd struct{}

// Opcode implements Packet.
func (p *CountDownEnd) Opcode() Opcode { return OpCountDownEnd }

// SerializeContent implements Packet.
func (p *CountDownEnd) SerializeContent(buf *protocol.Buffer, enc *Encoding) error { return nil }

// DeserializeContent implements Packet.
func (p *CountDownEnd) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error { return nil }

// LeaveGame [0x15] C→S.
type LeaveGame struct {
	Reason uint32
}

// Opcode implements Packet.
func (p *LeaveGame) Opcode() Opcode { return OpLeaveGame }

// SerializeContent implements Packet.
func (p *LeaveGame) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt32(p.Reason)
	return nil
}

// DeserializeContent implements Packet.
func (p *LeaveGame) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 4 {
		return protocol.ErrInvalidPacketSize
	}
	p.Reason = buf.ReadUInt32()
	return nil
}

// GameLoadedSelf [0x17] C→S.
type GameLoadedSelf struct{}

// Opcode implements Packet.
func (p *GameLoadedSelf) Opcode() Opcode { return OpGameLoadedSelf }

// SerializeContent implements Packet.
func (p *GameLoadedSelf) SerializeContent(buf *protocol.Buffer, enc *Encoding) error { return nil }

// DeserializeContent implements Packet.
func (p *GameLoadedSelf) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error { return nil }

// DropReq [0x21] C→S.
type DropReq struct{}

// Opcode implements Packet.
func (p *DropReq) Opcode() Opcode { return OpDropReq }

// SerializeContent implements Packet.
func (p *DropReq) SerializeContent(buf *protocol.Buffer, enc *Encoding) error { return nil }

// DeserializeContent implements Packet.
func (p *DropReq) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error { return nil }
