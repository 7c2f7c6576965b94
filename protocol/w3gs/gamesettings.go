// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

import "github.com/aura-project/w3ghost/protocol"

// GameSettings is the wire form of the map descriptor (§3), carried inside
// GAMEINFO/CREATEGAME (stat-string encoded) and, unescaped, inside MAPCHECK.
type GameSettings struct {
	GameSettingFlags GameFlags
	Speed            Speed
	Visibility       Visibility
	Observers        Observers
	MapWidth         uint16
	MapHeight        uint16
	MapXoro          uint32 // weak "xoro" CRC
	MapPath          string
	HostName         string
	MapSha1          [20]byte
}

// rawBytes packs the settings into their unescaped on-wire layout, mirroring
// the original "GameSettings" sub-blob the stat-string escape wraps.
func (gs *GameSettings) rawBytes() []byte {
	var buf = protocol.Buffer{Bytes: make([]byte, 0, 64)}

	var flags = uint32(gs.GameSettingFlags) | uint32(gs.Speed) | uint32(gs.Visibility)<<2 | uint32(gs.Observers)<<4
	buf.WriteUInt32(flags)
	buf.WriteBlob(make([]byte, 5)) // reserved
	buf.WriteUInt16(gs.MapWidth)
	buf.WriteUInt16(gs.MapHeight)
	buf.WriteUInt32(gs.MapXoro)
	buf.WriteCString(gs.MapPath)
	buf.WriteCString(gs.HostName)
	buf.WriteBlob(gs.MapSha1[:])

	return buf.Bytes
}

// SerializeContent stat-string-escapes the settings and writes them as a
// zero-terminated blob.
func (gs *GameSettings) SerializeContent(buf *protocol.Buffer, enc *Encoding) {
	buf.WriteBlob(protocol.EncodeStatString(gs.rawBytes()))
	buf.WriteUInt8(0)
}

// DeserializeContent reads a zero-terminated stat-string-escaped blob and
// unpacks it.
func (gs *GameSettings) DeserializeContent(buf *protocol.Buffer, enc *Encoding) error {
	var enclen = indexZero(buf.Bytes)
	if enclen < 0 {
		return protocol.ErrNoTerminator
	}

	var raw = protocol.DecodeStatString(buf.ReadBlob(enclen))
	buf.Skip(1) // terminator

	var rb = protocol.Buffer{Bytes: raw}
	if rb.Size() < 17 {
		return protocol.ErrInvalidPacketSize
	}

	var flags = rb.ReadUInt32()
	gs.GameSettingFlags = GameFlags(flags &^ (0x3 | 0x3<<2 | 0x3<<4))
	gs.Speed = Speed(flags & 0x3)
	gs.Visibility = Visibility((flags >> 2) & 0x3)
	gs.Observers = Observers((flags >> 4) & 0x3)

	rb.Skip(5)
	gs.MapWidth = rb.ReadUInt16()
	gs.MapHeight = rb.ReadUInt16()
	gs.MapXoro = rb.ReadUInt32()

	var err error
	if gs.MapPath, err = rb.ReadCString(); err != nil {
		return err
	}
	if gs.HostName, err = rb.ReadCString(); err != nil {
		return err
	}
	if rb.Size() >= 20 {
		copy(gs.MapSha1[:], rb.ReadBlob(20))
	}

	return nil
}

func indexZero(b []byte) int {
	for i, v := range b {
		if v == 0 {
			return i
		}
	}
	return -1
}
