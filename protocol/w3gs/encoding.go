// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package w3gs

// Encoding carries the handful of wire-format quirks that vary by client
// version. GameVersion records the configured Warcraft III build; the
// packet codecs in this package do not read it, and the LAN broadcast
// packets that carry a version (GameInfo/CreateGame) take it from their
// own GameVersion field.
type Encoding struct {
	GameVersion uint32
}
