// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

// Package game implements the lobby-and-relay engine: the slot model, the
// peer state machines, and the game state machine that drives a Warcraft
// III lobby from Waiting through Loaded.
package game

import (
	"github.com/aura-project/w3ghost/internal/config"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// Map is the immutable per-game map descriptor (§3). It is constructed
// once, referenced by the download pacer and the GAMEINFO broadcast, and
// never mutated for the life of the Game.
type Map struct {
	Path        string // backslash-separated, ≤53 chars
	Size        uint32
	Info        uint32 // real CRC
	Xoro        uint32 // weak "xoro" hash
	Sha1        [20]byte
	Width       uint16
	Height      uint16
	Options     w3gs.GameFlags
	NumPlayers  uint32 // [1,12]
	SlotTemplate []w3gs.Slot
	Speed       w3gs.Speed
	Visibility  w3gs.Visibility
	Observers   w3gs.Observers

	// Data holds the map's raw bytes for streaming to clients that lack
	// it. Held once per Game; released after the Loading transition
	// (§5 resource policy).
	Data []byte
}

// HasCustomForces reports whether a player's team moves with them when
// swapping slots (§4.3 SwapSlots).
func (m *Map) HasCustomForces() bool {
	return m.Options&w3gs.FlagCustomForces != 0
}

// HasFixedPlayerSettings reports whether team/colour/race/handicap stay put
// on a slot swap (§4.3 SwapSlots).
func (m *Map) HasFixedPlayerSettings() bool {
	return m.Options&w3gs.FlagFixedPlayerSettings != 0
}

// LayoutStyle derives the SLOTINFO layout byte from the map's options.
func (m *Map) LayoutStyle() w3gs.SlotLayout {
	switch {
	case m.HasCustomForces() && m.HasFixedPlayerSettings():
		return w3gs.LayoutCustomForcesFixedPlayers
	case m.HasCustomForces():
		return w3gs.LayoutCustomForces
	default:
		return w3gs.LayoutMelee
	}
}

// NewSlots returns a fresh copy of the map's slot template, ready to seed a
// new Game.
func (m *Map) NewSlots() []w3gs.Slot {
	var slots = make([]w3gs.Slot, len(m.SlotTemplate))
	copy(slots, m.SlotTemplate)
	return slots
}

// NewMapFromConfig builds a Map descriptor from the `map_*` keys of a
// loaded Config (§6 External Interfaces). MapSlots entries whose team,
// colour, race and handicap are all zero are skipped; NumPlayers is the
// count of the remaining entries, per §6's slot1..slot12 template.
func NewMapFromConfig(cfg config.Config) *Map {
	var m = &Map{
		Size:       cfg.MapSize,
		Info:       cfg.MapInfo,
		Xoro:       cfg.MapCRC,
		Sha1:       cfg.MapSha1,
		Width:      cfg.MapWidth,
		Height:     cfg.MapHeight,
		Options:    w3gs.GameFlags(cfg.MapOptions),
		Speed:      w3gs.SpeedNormal,
		Visibility: w3gs.VisibilityDefault,
		Observers:  w3gs.ObserversNone,
	}

	for _, s := range cfg.MapSlots {
		if s.Team == 0 && s.Colour == 0 && s.Race == 0 && s.Handicap == 0 {
			continue
		}
		m.SlotTemplate = append(m.SlotTemplate, w3gs.Slot{
			Status:        w3gs.SlotOpen,
			Team:          s.Team,
			Color:         s.Colour,
			Race:          w3gs.RacePref(s.Race),
			ComputerSkill: s.ComputerSkill,
			Handicap:      s.Handicap,
		})
	}
	m.NumPlayers = uint32(len(m.SlotTemplate))
	return m
}
