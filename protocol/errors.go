// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

// Package protocol implements the low-level byte codec used by the W3GS
// packet family: little-endian integer
// (de)serialization, length-prefixed framing and the stat-string escape.
package protocol

import "errors"

// Errors
var (
	ErrBadFormat         = errors.New("protocol: Invalid format")
	ErrUnexpectedConst   = errors.New("protocol: Unexpected constant value")
	ErrInvalidPacketSize = errors.New("protocol: Invalid packet size")
	ErrNoTerminator      = errors.New("protocol: No null terminator found in buffer")
	ErrInvalidIP4        = errors.New("protocol: Invalid IP4 address")
)
