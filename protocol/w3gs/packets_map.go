// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

import "github.com/aura-project/w3ghost/protocol"

// MapSize [0x2F] C→S.
type MapSize struct {
	SizeFlag uint8
	MapSize  uint32
}

// Opcode implements Packet.
func (p *MapSize) Opcode() Opcode { return OpMapSize }

// SerializeContent implements Packet.
func (p *MapSize) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteBlob(make([]byte, 4)) // junk
	buf.WriteUInt8(p.SizeFlag)
	buf.WriteUInt32(p.MapSize)
	return nil
}

// DeserializeContent implements Packet.
func (p *MapSize) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 9 {
		return protocol.ErrInvalidPacketSize
	}
	buf.Skip(4)
	p.SizeFlag = buf.ReadUInt8()
	p.MapSize = buf.ReadUInt32()
	return nil
}

// MapPartSize is the maximum payload carried by a single MAPPART (§4.5.3).
const MapPartSize = 1442

// MapPart [0x30] S→C.
type MapPart struct {
	ToPID   uint8
	FromPID uint8
	Offset  uint32
	Data    []byte
}

// Opcode implements Packet.
func (p *MapPart) Opcode() Opcode { return OpMapPart }

// SerializeContent implements Packet.
func (p *MapPart) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt8(p.ToPID)
	buf.WriteUInt8(p.FromPID)
	buf.WriteUInt32(1)
	buf.WriteUInt32(p.Offset)
	buf.WriteUInt32(protocol.CRC32IEEE(p.Data))
	buf.WriteBlob(p.Data)
	return nil
}

// DeserializeContent implements Packet.
func (p *MapPart) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 14 {
		return protocol.ErrInvalidPacketSize
	}
	p.ToPID = buf.ReadUInt8()
	p.FromPID = buf.ReadUInt8()
	if buf.ReadUInt32() != 1 {
		return protocol.ErrUnexpectedConst
	}
	p.Offset = buf.ReadUInt32()
	buf.Skip(4) // crc, not verified on receive (the server only ever sends this packet)
	p.Data = append([]byte(nil), buf.ReadBlob(buf.Size())...)
	return nil
}

// PingFromHost [0x01] S→C. Not present in the published opcode table but
// referenced by §4.5.4; carried over from the original source's
// W3GS_PING_FROM_HOST.
type PingFromHost struct {
	Ticks uint32
}

// Opcode implements Packet.
func (p *PingFromHost) Opcode() Opcode { return OpPingFromHost }

// SerializeContent implements Packet.
func (p *PingFromHost) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt32(p.Ticks)
	return nil
}

// DeserializeContent implements Packet.
func (p *PingFromHost) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 4 {
		return protocol.ErrInvalidPacketSize
	}
	p.Ticks = buf.ReadUInt32()
	return nil
}

// PongToHost [0x31] C→S.
type PongToHost struct {
	EchoedTicks uint32
}

// Opcode implements Packet.
func (p *PongToHost) Opcode() Opcode { return OpPongToHost }

// SerializeContent implements Packet.
func (p *PongToHost) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt32(p.EchoedTicks)
	return nil
}

// DeserializeContent implements Packet.
func (p *PongToHost) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 4 {
		return protocol.ErrInvalidPacketSize
	}
	p.EchoedTicks = buf.ReadUInt32()
	return nil
}
