// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

import "github.com/aura-project/w3ghost/protocol"

// ChatToHost [0x1C] C→S. The body after (n, recipients, from, flag) varies
// by flag: a chat message carries a cstring, a team/colour/race/handicap
// change carries a single new-value byte.
type ChatToHost struct {
	RecipientIDs []uint8
	FromPID      uint8
	Type         MessageType
	Content      string // valid when Type == MsgChat
	NewValue     uint8  // valid for team/colour/race/handicap changes
}

// Opcode implements Packet.
func (p *ChatToHost) Opcode() Opcode { return OpChatToHost }

// SerializeContent implements Packet.
func (p *ChatToHost) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt8(uint8(len(p.RecipientIDs)))
	buf.WriteBlob(p.RecipientIDs)
	buf.WriteUInt8(p.FromPID)
	buf.WriteUInt8(uint8(p.Type))

	switch p.Type {
	case MsgChat:
		buf.WriteCString(p.Content)
	default:
		buf.WriteUInt8(p.NewValue)
	}
	return nil
}

// DeserializeContent implements Packet.
func (p *ChatToHost) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 1 {
		return protocol.ErrInvalidPacketSize
	}
	var n = int(buf.ReadUInt8())
	if buf.Size() < n+2 {
		return protocol.ErrInvalidPacketSize
	}
	p.RecipientIDs = append([]byte(nil), buf.ReadBlob(n)...)
	p.FromPID = buf.ReadUInt8()
	p.Type = MessageType(buf.ReadUInt8())

	switch p.Type {
	case MsgChat:
		var err error
		if p.Content, err = buf.ReadCString(); err != nil {
			return err
		}
	default:
		if buf.Size() < 1 {
			return protocol.ErrInvalidPacketSize
		}
		p.NewValue = buf.ReadUInt8()
	}
	return nil
}

// ChatFromHost [0x0F] S→C.
type ChatFromHost struct {
	RecipientIDs []uint8
	FromPID      uint8
	Flag         MessageType
	Scope        MessageScope
	Content      string
}

// Opcode implements Packet.
func (p *ChatFromHost) Opcode() Opcode { return OpChatFromHost }

// SerializeContent implements Packet.
func (p *ChatFromHost) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt8(uint8(len(p.RecipientIDs)))
	buf.WriteBlob(p.RecipientIDs)
	buf.WriteUInt8(p.FromPID)
	buf.WriteUInt8(uint8(p.Flag))
	buf.WriteUInt32(uint32(p.Scope))
	buf.WriteCString(p.Content)
	return nil
}

// DeserializeContent implements Packet.
func (p *ChatFromHost) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 1 {
		return protocol.ErrInvalidPacketSize
	}
	var n = int(buf.ReadUInt8())
	if buf.Size() < n+6 {
		return protocol.ErrInvalidPacketSize
	}
	p.RecipientIDs = append([]byte(nil), buf.ReadBlob(n)...)
	p.FromPID = buf.ReadUInt8()
	p.Flag = MessageType(buf.ReadUInt8())
	p.Scope = MessageScope(buf.ReadUInt32())

	var err error
	if p.Content, err = buf.ReadCString(); err != nil {
		return err
	}
	return nil
}

// DesyncWarning is the fixed text broadcast on desync detection (§12,
// supplemented feature; scenario S3).
const DesyncWarning = "Warning! Desync detected!"
