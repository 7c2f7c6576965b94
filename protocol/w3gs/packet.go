// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

import (
	"errors"

	"github.com/aura-project/w3ghost/protocol"
)

// Errors
var (
	ErrIncomplete        = errors.New("w3gs: Incomplete packet, waiting for more data")
	ErrInvalidSig        = errors.New("w3gs: Invalid packet signature")
	ErrInvalidPacketSize = errors.New("w3gs: Invalid packet size")
	ErrUnknownOpcode     = errors.New("w3gs: Unknown opcode")
)

// Packet is any W3GS wire message.
type Packet interface {
	Opcode() Opcode
	SerializeContent(buf *protocol.Buffer, enc *Encoding) error
	DeserializeContent(buf *protocol.Buffer, enc *Encoding) error
}

// Serialize writes pkt's full wire form (header included) to buf.
func Serialize(buf *protocol.Buffer, enc *Encoding, pkt Packet) error {
	buf.WriteUInt8(ProtocolSig)
	buf.WriteUInt8(uint8(pkt.Opcode()))
	var start = buf.Size()
	buf.WriteUInt16(0) // placeholder length

	if err := pkt.SerializeContent(buf, enc); err != nil {
		return err
	}

	buf.WriteUInt16At(start, uint16(buf.Size()-start+2))
	return nil
}

// Factory constructs an empty Packet value for a given opcode.
type Factory interface {
	New(op Opcode) Packet
}

// MapFactory maps an opcode to a constructor, implementing Factory.
type MapFactory map[Opcode]func() Packet

// New implements Factory.
func (f MapFactory) New(op Opcode) Packet {
	if ctor, ok := f[op]; ok {
		return ctor()
	}
	return nil
}

// DefaultFactory maps every opcode this package implements to its
// constructor.
var DefaultFactory = MapFactory{
	OpRejectJoin:        func() Packet { return &RejectJoin{} },
	OpSlotInfoJoin:      func() Packet { return &SlotInfoJoin{} },
	OpPlayerInfo:        func() Packet { return &PlayerInfo{} },
	OpPlayerLeaveOthers: func() Packet { return &PlayerLeaveOthers{} },
	OpSlotInfo:          func() Packet { return &SlotInfoPacket{} },
	OpCountDownStart:    func() Packet { return &CountDownStart{} },
	OpCountDownEnd:      func() Packet { return &CountDownEnd{} },
	OpIncomingAction:    func() Packet { return &IncomingAction{} },
	OpChatFromHost:      func() Packet { return &ChatFromHost{} },
	OpStartLag:          func() Packet { return &StartLag{} },
	OpStopLag:           func() Packet { return &StopLag{} },
	OpReqJoin:           func() Packet { return &ReqJoin{} },
	OpLeaveGame:         func() Packet { return &LeaveGame{} },
	OpGameLoadedSelf:    func() Packet { return &GameLoadedSelf{} },
	OpOutgoingAction:    func() Packet { return &OutgoingAction{} },
	OpOutgoingKeepAlive: func() Packet { return &OutgoingKeepAlive{} },
	OpChatToHost:        func() Packet { return &ChatToHost{} },
	OpDropReq:           func() Packet { return &DropReq{} },
	OpMapSize:           func() Packet { return &MapSize{} },
	OpMapPart:           func() Packet { return &MapPart{} },
	OpPongToHost:        func() Packet { return &PongToHost{} },
	OpIncomingAction2:   func() Packet { return &IncomingAction2{} },
	OpPingFromHost:      func() Packet { return &PingFromHost{} },
}

// LanFactory maps the UDP-only broadcast opcodes.
var LanFactory = MapFactory{
	OpCreateGame:   func() Packet { return &CreateGame{} },
	OpGameInfo:     func() Packet { return &GameInfo{} },
	OpRefreshGame:  func() Packet { return &RefreshGame{} },
	OpDecreateGame: func() Packet { return &DecreateGame{} },
}

// DeserializePacket validates and decodes a single packet from the front of
// buf, per §4.2's validation rules:
//
//	(a) buf.Size() >= 4
//	(b) buf[0] == ProtocolSig
//	(c) declared length <= buf.Size() (else ErrIncomplete: wait for more bytes)
//	(d) the opcode is recognized by factory (else ErrUnknownOpcode)
//
// On success, the packet's bytes (header included) are consumed from buf
// and the decoded Packet is returned.
func DeserializePacket(buf *protocol.Buffer, enc *Encoding, factory Factory) (Packet, error) {
	if buf.Size() < HeaderSize {
		return nil, ErrIncomplete
	}
	if buf.Bytes[0] != ProtocolSig {
		return nil, ErrInvalidSig
	}

	var op = Opcode(buf.Bytes[1])
	var length = int(buf.Bytes[2]) | int(buf.Bytes[3])<<8
	if length < HeaderSize {
		return nil, ErrInvalidPacketSize
	}
	if buf.Size() < length {
		return nil, ErrIncomplete
	}

	var pkt = factory.New(op)
	if pkt == nil {
		return nil, ErrUnknownOpcode
	}

	var body = protocol.Buffer{Bytes: buf.Bytes[HeaderSize:length]}
	if err := pkt.DeserializeContent(&body, enc); err != nil {
		return nil, err
	}

	buf.Skip(length)
	return pkt, nil
}
