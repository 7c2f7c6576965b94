// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

// Package w3gs implements the W3GS packet family: the TCP lobby/game
// protocol spoken between a host and its clients, and the UDP LAN
// advertisement packets that share the same header and opcode space.
package w3gs

// ProtocolSig is the first byte of every W3GS packet.
const ProtocolSig = 0xF7

// HeaderSize is the size of the 4-byte W3GS header (sig, opcode, 2-byte length).
const HeaderSize = 4

// Opcode identifies a W3GS packet's payload shape.
type Opcode uint8

// Opcodes, per the packet table in §6 of the specification. PingFromHost is
// not listed in that table (the table omits it even though §4.5.4
// describes it); its value is carried over from the original C++ source's
// W3GS_PING_FROM_HOST constant.
const (
	OpPingFromHost      Opcode = 0x01
	OpRejectJoin        Opcode = 0x04
	OpSlotInfoJoin      Opcode = 0x05
	OpPlayerInfo        Opcode = 0x06
	OpPlayerLeaveOthers Opcode = 0x07
	OpSlotInfo          Opcode = 0x08
	OpCountDownStart    Opcode = 0x09
	OpCountDownEnd      Opcode = 0x0A
	OpIncomingAction    Opcode = 0x0B
	OpChatFromHost      Opcode = 0x0F
	OpStartLag          Opcode = 0x10
	OpStopLag           Opcode = 0x11
	OpReqJoin           Opcode = 0x14
	OpLeaveGame         Opcode = 0x15
	OpGameLoadedSelf    Opcode = 0x17
	OpOutgoingAction    Opcode = 0x18
	OpOutgoingKeepAlive Opcode = 0x1B
	OpChatToHost        Opcode = 0x1C
	OpDropReq           Opcode = 0x21
	OpMapSize           Opcode = 0x2F
	OpMapPart           Opcode = 0x30
	OpPongToHost        Opcode = 0x31
	OpIncomingAction2   Opcode = 0x3D

	// UDP-only broadcast family (§4.5.4); distinct opcode space from the
	// TCP opcodes above because they are only ever decoded from datagrams
	// received on the LAN broadcast socket.
	OpCreateGame   Opcode = 0x2F
	OpGameInfo     Opcode = 0x30
	OpRefreshGame  Opcode = 0x32
	OpDecreateGame Opcode = 0x33
)

// RejectReason is the REJECTJOIN reason code.
type RejectReason uint32

// Reject reasons.
const (
	RejectJoinInvalid       RejectReason = 0x07
	RejectJoinFull          RejectReason = 0x09
	RejectJoinStarted       RejectReason = 0x0A
	RejectJoinWrongPassword RejectReason = 0x0B
)

// LeaveReason is the reason carried by LEAVEGAME/PLAYERLEAVE_OTHERS.
type LeaveReason uint32

// Leave reasons.
const (
	LeaveDisconnect    LeaveReason = 0x01
	LeaveLost          LeaveReason = 0x07
	LeaveLostBuildings LeaveReason = 0x08
	LeaveWon           LeaveReason = 0x09
	LeaveDraw          LeaveReason = 0x0A
	LeaveObserver      LeaveReason = 0x0B
	LeaveLobby         LeaveReason = 0x0D
)

// SlotStatus is a slot's occupancy state.
type SlotStatus uint8

// Slot statuses.
const (
	SlotOpen     SlotStatus = 0
	SlotClosed   SlotStatus = 1
	SlotOccupied SlotStatus = 2
)

// RacePref are the player-race bit flags carried in a slot / PlayerInfo record.
type RacePref uint8

// Race preference flags.
const (
	RaceHuman      RacePref = 0x01
	RaceOrc        RacePref = 0x02
	RaceNightElf   RacePref = 0x04
	RaceUndead     RacePref = 0x08
	RaceRandom     RacePref = 0x20
	RaceSelectable RacePref = 0x40
)

// SlotLayout is the SLOTINFO "select mode" byte.
type SlotLayout uint8

// Slot layout styles (glossary: "layout style").
const (
	LayoutMelee                     SlotLayout = 0
	LayoutCustomForces              SlotLayout = 1
	LayoutCustomForcesFixedPlayers  SlotLayout = 3
)

// GameFlags are the GameSettings bitmask options (§3 map descriptor "options").
type GameFlags uint32

// Game option flags.
const (
	FlagMelee                GameFlags = 1 << 0
	FlagFixedPlayerSettings  GameFlags = 1 << 1
	FlagCustomForces         GameFlags = 1 << 2
)

// Speed is the GameSettings game-speed setting.
type Speed uint8

// Speeds.
const (
	SpeedSlow   Speed = 0
	SpeedNormal Speed = 1
	SpeedFast   Speed = 2
)

// Visibility is the GameSettings map-visibility setting.
type Visibility uint8

// Visibility settings.
const (
	VisibilityHideTerrain  Visibility = 0
	VisibilityExplored     Visibility = 1
	VisibilityAlwaysVisible Visibility = 2
	VisibilityDefault      Visibility = 3
)

// Observers is the GameSettings observer policy.
type Observers uint8

// Observer policies.
const (
	ObserversNone     Observers = 0
	ObserversOnDefeat Observers = 1
	ObserversAllowed  Observers = 2
	ObserversReferees Observers = 3
)

// MessageType is the CHAT_TO_HOST/CHAT_FROM_HOST flag byte.
type MessageType uint8

// Message types.
const (
	MsgChat        MessageType = 0x10
	MsgChatExtra   MessageType = 0x20
	MsgTeamChange  MessageType = 0x01
	MsgColorChange MessageType = 0x02
	MsgRaceChange  MessageType = 0x03
	MsgHandicapChange MessageType = 0x04
)

// MessageScope is the chat-extra scope dword.
type MessageScope uint32

// Message scopes.
const (
	ScopeAll       MessageScope = 0x00
	ScopeAllies    MessageScope = 0x01
	ScopeObservers MessageScope = 0x02
)

// Handicaps enumerates the only valid handicap percentages.
var Handicaps = [6]uint8{50, 60, 70, 80, 90, 100}

// ValidHandicap reports whether h is one of the enumerated valid handicaps.
func ValidHandicap(h uint8) bool {
	for _, v := range Handicaps {
		if v == h {
			return true
		}
	}
	return false
}
