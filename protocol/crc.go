// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package protocol

import "hash/crc32"

// CRC32IEEE returns the standard IEEE-polynomial CRC32 of data.
func CRC32IEEE(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// CRC16 returns the low 16 bits of the IEEE CRC32 of data, as used by the
// action-batch "crc16" wire field. MAPPART carries the full CRC32IEEE.
func CRC16(data []byte) uint16 {
	return uint16(CRC32IEEE(data))
}
