// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

import "github.com/aura-project/w3ghost/protocol"

// Slot is the wire representation of a single map slot (§3 Slot; §6
// "Slotinfo serialization").
type Slot struct {
	PlayerID      uint8
	DownloadPct   uint8
	Status        SlotStatus
	Computer      bool
	Team          uint8
	Color         uint8
	Race          RacePref
	ComputerSkill uint8
	Handicap      uint8
}

// SerializeContent writes the 9-byte per-slot record.
func (s *Slot) SerializeContent(buf *protocol.Buffer) {
	buf.WriteUInt8(s.PlayerID)
	buf.WriteUInt8(s.DownloadPct)
	buf.WriteUInt8(uint8(s.Status))
	buf.WriteUInt8(boolToUint8(s.Computer))
	buf.WriteUInt8(s.Team)
	buf.WriteUInt8(s.Color)
	buf.WriteUInt8(uint8(s.Race))
	buf.WriteUInt8(s.ComputerSkill)
	buf.WriteUInt8(s.Handicap)
}

// DeserializeContent reads the 9-byte per-slot record.
func (s *Slot) DeserializeContent(buf *protocol.Buffer) error {
	if buf.Size() < 9 {
		return protocol.ErrInvalidPacketSize
	}
	s.PlayerID = buf.ReadUInt8()
	s.DownloadPct = buf.ReadUInt8()
	s.Status = SlotStatus(buf.ReadUInt8())
	s.Computer = buf.ReadUInt8() != 0
	s.Team = buf.ReadUInt8()
	s.Color = buf.ReadUInt8()
	s.Race = RacePref(buf.ReadUInt8())
	s.ComputerSkill = buf.ReadUInt8()
	s.Handicap = buf.ReadUInt8()
	return nil
}

func boolToUint8(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// SlotInfo is the shared body of the SLOTINFO and SLOTINFOJOIN packets
// (§6 "Slotinfo serialization"): a length-prefixed slot table plus the
// random seed and layout metadata.
type SlotInfo struct {
	Slots       []Slot
	RandomSeed  uint32
	Layout      SlotLayout
	PlayerSlots uint8
}

// SerializeContent writes the length-prefixed slotinfo body (without the
// packet header).
func (si *SlotInfo) SerializeContent(buf *protocol.Buffer) {
	// Placeholder for the 2-byte length-of-data-following field.
	buf.WriteUInt16(0)
	var start = buf.Size()

	buf.WriteUInt8(uint8(len(si.Slots)))
	for i := range si.Slots {
		si.Slots[i].SerializeContent(buf)
	}
	buf.WriteUInt32(si.RandomSeed)
	buf.WriteUInt8(uint8(si.Layout))
	buf.WriteUInt8(si.PlayerSlots)

	buf.WriteUInt16At(start-2, uint16(buf.Size()-start))
}

// DeserializeContent reads the length-prefixed slotinfo body.
func (si *SlotInfo) DeserializeContent(buf *protocol.Buffer) error {
	if buf.Size() < 4 {
		return protocol.ErrInvalidPacketSize
	}
	buf.Skip(2) // length-of-data-following, recomputed on serialize

	if buf.Size() < 1 {
		return protocol.ErrInvalidPacketSize
	}
	var n = int(buf.ReadUInt8())

	si.Slots = si.Slots[:0]
	for i := 0; i < n; i++ {
		var s Slot
		if err := s.DeserializeContent(buf); err != nil {
			return err
		}
		si.Slots = append(si.Slots, s)
	}

	if buf.Size() < 6 {
		return protocol.ErrInvalidPacketSize
	}
	si.RandomSeed = buf.ReadUInt32()
	si.Layout = SlotLayout(buf.ReadUInt8())
	si.PlayerSlots = buf.ReadUInt8()

	return nil
}
