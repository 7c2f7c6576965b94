// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

import "github.com/aura-project/w3ghost/protocol"

// GameVersionTag is the product DString every LAN broadcast carries on the
// wire; it reads "W3XP" when decoded (§ glossary; ROC/TFT family).
const GameVersionTag = protocol.DString("PX3W")

// realmLAN is the realm id encoded in the high 4 bits of the wire host
// counter for a LAN-only (non Battle.net) game (§4.5.4).
const realmLAN = 0

func packHostCounter(realm uint8, counter uint32) uint32 {
	return uint32(realm)<<28 | (counter & 0x0FFFFFFF)
}

func unpackHostCounter(wire uint32) (realm uint8, counter uint32) {
	return uint8(wire >> 28), wire & 0x0FFFFFFF
}

// GameInfo is the GAMEINFO UDP broadcast (§4.5.4): advertises a lobby in
// Waiting state to LAN clients every 5 seconds.
// SlotsTotal/SlotsOpen are policy fields, not derived automatically from a
// slot table: §4.5.4 has the host always advertise a fixed 12/12 regardless
// of the map's actual slot count, so the caller building this packet sets
// them to 12/12 directly.
type GameInfo struct {
	GameVersion  uint32
	HostCounter  uint32
	EntryKey     uint32
	GameName     string
	GameSettings GameSettings
	UpTimeSec    uint32
	SlotsTotal   uint32
	SlotsOpen    uint32
	HostPort     uint16
}

// Opcode implements Packet.
func (p *GameInfo) Opcode() Opcode { return OpGameInfo }

// SerializeContent implements Packet.
func (p *GameInfo) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteDString(GameVersionTag)
	buf.WriteUInt32(p.GameVersion)
	buf.WriteUInt32(packHostCounter(realmLAN, p.HostCounter))
	buf.WriteUInt32(p.EntryKey)
	buf.WriteCString(p.GameName)
	buf.WriteUInt8(0) // password placeholder, unused (LAN has no password)
	p.GameSettings.SerializeContent(buf, enc)
	buf.WriteUInt32(p.UpTimeSec)
	buf.WriteUInt32(p.SlotsTotal)
	buf.WriteUInt32(p.SlotsOpen)
	buf.WriteUInt16(p.HostPort)
	return nil
}

// DeserializeContent implements Packet.
func (p *GameInfo) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 21 {
		return protocol.ErrInvalidPacketSize
	}
	buf.Skip(4) // version DString
	p.GameVersion = buf.ReadUInt32()
	_, p.HostCounter = unpackHostCounter(buf.ReadUInt32())
	p.EntryKey = buf.ReadUInt32()

	var err error
	if p.GameName, err = buf.ReadCString(); err != nil {
		return err
	}
	if buf.Size() < 1 {
		return protocol.ErrInvalidPacketSize
	}
	buf.Skip(1)

	if err := p.GameSettings.DeserializeContent(buf, enc); err != nil {
		return err
	}

	if buf.Size() < 14 {
		return protocol.ErrInvalidPacketSize
	}
	p.UpTimeSec = buf.ReadUInt32()
	p.SlotsTotal = buf.ReadUInt32()
	p.SlotsOpen = buf.ReadUInt32()
	p.HostPort = buf.ReadUInt16()
	return nil
}

// CreateGame announces that a new lobby exists. The game loop does not send
// it; a lobby is advertised only by the periodic GameInfo.
type CreateGame struct {
	GameVersion uint32
	HostCounter uint32
}

// Opcode implements Packet.
func (p *CreateGame) Opcode() Opcode { return OpCreateGame }

// SerializeContent implements Packet.
func (p *CreateGame) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteDString(GameVersionTag)
	buf.WriteUInt32(p.GameVersion)
	buf.WriteUInt32(packHostCounter(realmLAN, p.HostCounter))
	return nil
}

// DeserializeContent implements Packet.
func (p *CreateGame) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 12 {
		return protocol.ErrInvalidPacketSize
	}
	buf.Skip(4)
	p.GameVersion = buf.ReadUInt32()
	_, p.HostCounter = unpackHostCounter(buf.ReadUInt32())
	return nil
}

// RefreshGame updates the slot counts a LAN client shows for a known game.
type RefreshGame struct {
	HostCounter    uint32
	SlotsUsed      uint32
	SlotsAvailable uint32
}

// Opcode implements Packet.
func (p *RefreshGame) Opcode() Opcode { return OpRefreshGame }

// SerializeContent implements Packet.
func (p *RefreshGame) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt32(packHostCounter(realmLAN, p.HostCounter))
	buf.WriteUInt32(p.SlotsUsed)
	buf.WriteUInt32(p.SlotsAvailable)
	return nil
}

// DeserializeContent implements Packet.
func (p *RefreshGame) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 12 {
		return protocol.ErrInvalidPacketSize
	}
	_, p.HostCounter = unpackHostCounter(buf.ReadUInt32())
	p.SlotsUsed = buf.ReadUInt32()
	p.SlotsAvailable = buf.ReadUInt32()
	return nil
}

// DecreateGame announces that a lobby is no longer available.
type DecreateGame struct {
	HostCounter uint32
}

// Opcode implements Packet.
func (p *DecreateGame) Opcode() Opcode { return OpDecreateGame }

// SerializeContent implements Packet.
func (p *DecreateGame) SerializeContent(buf *protocol.Buffer, enc *Encoding) error {
	buf.WriteUInt32(packHostCounter(realmLAN, p.HostCounter))
	return nil
}

// DeserializeContent implements Packet.
func (p *DecreateGame) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	if buf.Size() < 4 {
		return protocol.ErrInvalidPacketSize
	}
	_, p.HostCounter = unpackHostCounter(buf.ReadUInt32())
	return nil
}
