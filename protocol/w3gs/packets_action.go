// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

import "github.com/aura-project/w3ghost/protocol"

// PlayerAction is one player's opaque action payload within an action batch
// (§3 Action; the relay is content-oblivious — only len(Data) matters for
// batching per §4.5.1).
type PlayerAction struct {
	PlayerID uint8
	Data     []byte
}

// size returns the wire size of the action's (pid, len, data) encoding.
func (a *PlayerAction) size() int { return 1 + 2 + len(a.Data) }

func writeActions(buf *protocol.Buffer, actions []PlayerAction) {
	for i := range actions {
		buf.WriteUInt8(actions[i].PlayerID)
		buf.WriteUInt16(uint16(len(actions[i].Data)))
		buf.WriteBlob(actions[i].Data)
	}
}

func readActions(buf *protocol.Buffer) ([]PlayerAction, error) {
	var actions []PlayerAction
	for buf.Size() > 0 {
		if buf.Size() < 3 {
			return nil, protocol.ErrBadFormat
		}
		var a PlayerAction
		a.PlayerID = buf.ReadUInt8()
		var n = int(buf.ReadUInt16())
		if buf.Size() < n {
			return nil, protocol.ErrBadFormat
		}
		a.Data = append([]byte(nil), buf.ReadBlob(n)...)
		actions = append(actions, a)
	}
	return actions, nil
}

// OutgoingAction [0x18] C→S.
type OutgoingAction struct {
	CRC     uint32
	Payload []byte
}

// Opcode implements Packet.
func (p *OutgoingAction) Opcode() Opcode { return OpOutgoingAction }

// SerializeContent implements Packet.
func (p *OutgoingAction) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt32(p.CRC)
	buf.WriteBlob(p.Payload)
	return nil
}

// DeserializeContent implements Packet.
func (p *OutgoingAction) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 4 {
		return protocol.ErrInvalidPacketSize
	}
	p.CRC = buf.ReadUInt32()
	p.Payload = append([]byte(nil), buf.ReadBlob(buf.Size())...)
	return nil
}

// IncomingAction [0x0B] S→C — the final sub-batch of an action relay tick
// (§4.5.1); carries the latency field.
type IncomingAction struct {
	SendInterval uint16
	CRC          uint16
	Actions      []PlayerAction
}

// Opcode implements Packet.
func (p *IncomingAction) Opcode() Opcode { return OpIncomingAction }

// SerializeContent implements Packet.
func (p *IncomingAction) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt16(p.SendInterval)
	if len(p.Actions) > 0 {
		buf.WriteUInt16(p.CRC)
		writeActions(buf, p.Actions)
	}
	return nil
}

// DeserializeContent implements Packet.
func (p *IncomingAction) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 2 {
		return protocol.ErrInvalidPacketSize
	}
	p.SendInterval = buf.ReadUInt16()
	if buf.Size() == 0 {
		p.Actions = nil
		return nil
	}
	if buf.Size() < 2 {
		return protocol.ErrBadFormat
	}
	p.CRC = buf.ReadUInt16()
	var err error
	if p.Actions, err = readActions(buf); err != nil {
		return err
	}
	return nil
}

// IncomingAction2 [0x3D] S→C — a non-final sub-batch of an action relay
// tick; always carries a crc/subpacket (never empty, unlike IncomingAction).
type IncomingAction2 struct {
	CRC     uint16
	Actions []PlayerAction
}

// Opcode implements Packet.
func (p *IncomingAction2) Opcode() Opcode { return OpIncomingAction2 }

// SerializeContent implements Packet.
func (p *IncomingAction2) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt16(p.CRC)
	writeActions(buf, p.Actions)
	return nil
}

// DeserializeContent implements Packet.
func (p *IncomingAction2) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 2 {
		return protocol.ErrInvalidPacketSize
	}
	p.CRC = buf.ReadUInt16()
	var err error
	if p.Actions, err = readActions(buf); err != nil {
		return err
	}
	return nil
}

// OutgoingKeepAlive [0x1B] C→S.
type OutgoingKeepAlive struct {
	Checksum uint32
}

// Opcode implements Packet.
func (p *OutgoingKeepAlive) Opcode() Opcode { return OpOutgoingKeepAlive }

// SerializeContent implements Packet.
func (p *OutgoingKeepAlive) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt8(0) // junk
	buf.WriteUInt32(p.Checksum)
	return nil
}

// DeserializeContent implements Packet.
func (p *OutgoingKeepAlive) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 5 {
		return protocol.ErrInvalidPacketSize
	}
	buf.Skip(1)
	p.Checksum = buf.ReadUInt32()
	return nil
}

// LagPlayer is one entry of START_LAG's player list.
type LagPlayer struct {
	PlayerID uint8
	Ticks    uint32
}

// StartLag [0x10] S→C.
type StartLag struct {
	Players []LagPlayer
}

// Opcode implements Packet.
func (p *StartLag) Opcode() Opcode { return OpStartLag }

// SerializeContent implements Packet.
func (p *StartLag) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt8(uint8(len(p.Players)))
	for _, lp := range p.Players {
		buf.WriteUInt8(lp.PlayerID)
		buf.WriteUInt32(lp.Ticks)
	}
	return nil
}

// DeserializeContent implements Packet.
func (p *StartLag) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 1 {
		return protocol.ErrInvalidPacketSize
	}
	var n = int(buf.ReadUInt8())
	p.Players = p.Players[:0]
	for i := 0; i < n; i++ {
		if buf.Size() < 5 {
			return protocol.ErrInvalidPacketSize
		}
		p.Players = append(p.Players, LagPlayer{
			PlayerID: buf.ReadUInt8(),
			Ticks:    buf.ReadUInt32(),
		})
	}
	return nil
}

// StopLag [0x11] S→C.
type StopLag struct {
	PlayerID uint8
	Ticks    uint32
}

// Opcode implements Packet.
func (p *StopLag) Opcode() Opcode { return OpStopLag }

// SerializeContent implements Packet.
func (p *StopLag) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt8(p.PlayerID)
	buf.WriteUInt32(p.Ticks)
	return nil
}

// DeserializeContent implements Packet.
func (p *StopLag) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 5 {
		return protocol.ErrInvalidPacketSize
	}
	p.PlayerID = buf.ReadUInt8()
	p.Ticks = buf.ReadUInt32()
	return nil
}
