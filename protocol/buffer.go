// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package protocol

import (
	"bytes"
	"net"
)

// Buffer wraps a []byte slice and adds helpers for little-endian binary
// (de)serialization. Reads consume from the front; writes append to the
// back. Generalizes pkg/util's PacketBuffer with length-prefix framing and
// in-place overwrite helpers the wire formats in this repo need.
type Buffer struct {
	Bytes []byte
}

// Size returns the number of unread/unwritten bytes remaining in the buffer.
func (b *Buffer) Size() int {
	return len(b.Bytes)
}

// Skip discards n bytes from the front of the buffer.
func (b *Buffer) Skip(n int) {
	b.Bytes = b.Bytes[n:]
}

// WriteBlob appends v verbatim.
func (b *Buffer) WriteBlob(v []byte) {
	b.Bytes = append(b.Bytes, v...)
}

// WriteUInt8 appends a uint8.
func (b *Buffer) WriteUInt8(v uint8) {
	b.Bytes = append(b.Bytes, v)
}

// WriteUInt16 appends a little-endian uint16.
func (b *Buffer) WriteUInt16(v uint16) {
	b.Bytes = append(b.Bytes, byte(v), byte(v>>8))
}

// WriteUInt32 appends a little-endian uint32.
func (b *Buffer) WriteUInt32(v uint32) {
	b.Bytes = append(b.Bytes, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// WriteBool32 appends a bool encoded as a 4-byte little-endian 0/1.
func (b *Buffer) WriteBool32(v bool) {
	if v {
		b.WriteUInt32(1)
	} else {
		b.WriteUInt32(0)
	}
}

// WritePortBE appends a port in network (big-endian) byte order, as used by
// the embedded sockaddr_in structures in SLOTINFOJOIN/PLAYERINFO.
func (b *Buffer) WritePortBE(v uint16) {
	b.Bytes = append(b.Bytes, byte(v>>8), byte(v))
}

// WriteIP4BE appends a v4 address in network byte order, zeroing out on a
// non-v4 address (mirrors the teacher's lenient WriteIP behavior).
func (b *Buffer) WriteIP4BE(v net.IP) error {
	if ip4 := v.To4(); ip4 != nil {
		b.WriteBlob(ip4)
		return nil
	}
	b.WriteUInt32(0)
	return ErrInvalidIP4
}

// WriteCString appends s followed by a single zero terminator byte.
func (b *Buffer) WriteCString(s string) {
	b.WriteBlob([]byte(s))
	b.WriteUInt8(0)
}

// WriteUInt8At overwrites the byte at offset p.
func (b *Buffer) WriteUInt8At(p int, v uint8) {
	b.Bytes[p] = v
}

// WriteUInt16At overwrites the little-endian uint16 at offset p.
func (b *Buffer) WriteUInt16At(p int, v uint16) {
	b.Bytes[p], b.Bytes[p+1] = byte(v), byte(v>>8)
}

// WriteUInt32At overwrites the little-endian uint32 at offset p.
func (b *Buffer) WriteUInt32At(p int, v uint32) {
	b.Bytes[p], b.Bytes[p+1], b.Bytes[p+2], b.Bytes[p+3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
}

// ReadBlob consumes and returns the next n bytes.
func (b *Buffer) ReadBlob(n int) []byte {
	if n <= 0 {
		return nil
	}
	var res = b.Bytes[:n]
	b.Bytes = b.Bytes[n:]
	return res
}

// ReadUInt8 consumes and returns a uint8.
func (b *Buffer) ReadUInt8() uint8 {
	var res = b.Bytes[0]
	b.Bytes = b.Bytes[1:]
	return res
}

// ReadUInt16 consumes and returns a little-endian uint16.
func (b *Buffer) ReadUInt16() uint16 {
	var res = uint16(b.Bytes[0]) | uint16(b.Bytes[1])<<8
	b.Bytes = b.Bytes[2:]
	return res
}

// ReadUInt32 consumes and returns a little-endian uint32.
func (b *Buffer) ReadUInt32() uint32 {
	var res = uint32(b.Bytes[0]) | uint32(b.Bytes[1])<<8 | uint32(b.Bytes[2])<<16 | uint32(b.Bytes[3])<<24
	b.Bytes = b.Bytes[4:]
	return res
}

// ReadBool32 consumes a 4-byte bool field.
func (b *Buffer) ReadBool32() bool {
	return b.ReadUInt32() != 0
}

// ReadPortBE consumes and returns a big-endian port.
func (b *Buffer) ReadPortBE() uint16 {
	var res = uint16(b.Bytes[0])<<8 | uint16(b.Bytes[1])
	b.Bytes = b.Bytes[2:]
	return res
}

// ReadIP4BE consumes and returns a v4 address in network byte order. A
// zero address decodes to nil, matching WriteIP4BE's encoding of errors.
func (b *Buffer) ReadIP4BE() net.IP {
	var res = net.IP(append([]byte(nil), b.ReadBlob(net.IPv4len)...))
	if res.Equal(net.IPv4zero) {
		return nil
	}
	return res
}

// ReadCString consumes a null-terminated string. ExtractCString's contract:
// if no terminator is found, the remainder of the buffer is consumed and
// ErrNoTerminator is returned.
func (b *Buffer) ReadCString() (string, error) {
	var pos = bytes.IndexByte(b.Bytes, 0)
	if pos == -1 {
		b.Bytes = b.Bytes[len(b.Bytes):]
		return "", ErrNoTerminator
	}
	var res = string(b.Bytes[:pos])
	b.Bytes = b.Bytes[pos+1:]
	return res, nil
}

// ExtractCString scans buf starting at start for the first zero byte and
// returns the range [start, zero). If no zero byte is found, it returns
// [start, len(buf)).
func ExtractCString(buf []byte, start int) []byte {
	var pos = bytes.IndexByte(buf[start:], 0)
	if pos == -1 {
		return buf[start:]
	}
	return buf[start : start+pos]
}

// AssignLength writes the little-endian packet length (len(packet),
// inclusive of the 4-byte header) into bytes 2:4 of packet. A no-op when
// bytes 2:4 already equal len(packet).
func AssignLength(packet []byte) {
	var n = uint16(len(packet))
	if uint16(packet[2])|uint16(packet[3])<<8 == n {
		return
	}
	packet[2] = byte(n)
	packet[3] = byte(n >> 8)
}

// DString is a 4-character descriptor code (platform/language tags such as
// "68xi" or "SUne") stored on the wire as 4 raw bytes in reverse order.
type DString string

// WriteDString appends a DString as 4 reverse-ordered bytes, padding with
// zero bytes if s is shorter than 4 characters.
func (b *Buffer) WriteDString(s DString) {
	var raw [4]byte
	copy(raw[:], s)
	b.WriteUInt8(raw[3])
	b.WriteUInt8(raw[2])
	b.WriteUInt8(raw[1])
	b.WriteUInt8(raw[0])
}

// ReadDString consumes 4 reverse-ordered bytes and returns them as a DString.
func (b *Buffer) ReadDString() DString {
	var raw = b.ReadBlob(4)
	return DString([]byte{raw[3], raw[2], raw[1], raw[0]})
}
