// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

// Package config holds the recognized configuration keys (§6) and their
// defaults. Reading the backing file/flags is an external collaborator
// (§1 Non-goals); this package only interprets an already-loaded
// map[string]string.
package config

import (
	"strconv"
	"strings"
)

// AutoStart is the bot_autostart policy.
type AutoStart int

// Auto-start policies.
const (
	AutoStartOff AutoStart = iota
	AutoStartOnAnyJoin
	AutoStartOnFull
)

// Config holds the recognized keys from §6 with their defaults. Unknown
// keys passed to Load are ignored.
type Config struct {
	BotHostPort         uint16
	BotVirtualHostName  string
	LanWar3Version      uint32
	BotLatencyMs        uint32
	BotAutoStart        AutoStart
	BotDefaultGameName  string
	MaxPingMs           uint32

	MapSize    uint32
	MapInfo    uint32
	MapCRC     uint32
	MapSha1    [20]byte
	MapOptions uint32
	MapWidth   uint16
	MapHeight  uint16

	// MapSlots holds up to 12 "team,colour,race,skill,handicap" slot
	// template entries from map_slot1..map_slot12.
	MapSlots [12]MapSlot
}

// MapSlot is one map_slotN entry: the fixed team/colour/race/handicap a
// melee or custom-forces map assigns to a slot position before any player
// occupies it.
type MapSlot struct {
	Team          uint8
	Colour        uint8
	Race          uint8
	ComputerSkill uint8
	Handicap      uint8
}

// Default returns the configuration with every documented default applied
// and no map template.
func Default() Config {
	return Config{
		BotHostPort:        6112,
		BotVirtualHostName: "|cFF4080C0Aura",
		LanWar3Version:     26,
		BotLatencyMs:       100,
		BotAutoStart:       AutoStartOff,
		BotDefaultGameName: "Warcraft III Game",
		MaxPingMs:          300,
	}
}

// Load applies recognized keys in m over the defaults. Unknown keys are
// silently ignored, per §6.
func Load(m map[string]string) Config {
	var c = Default()
	for k, v := range m {
		switch {
		case k == "bot_hostport":
			if n, err := strconv.ParseUint(v, 10, 16); err == nil {
				c.BotHostPort = uint16(n)
			}
		case k == "bot_virtualhostname":
			c.BotVirtualHostName = truncate(v, 15)
		case k == "lan_war3version":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				c.LanWar3Version = uint32(n)
			}
		case k == "bot_latency":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				c.BotLatencyMs = uint32(n)
			}
		case k == "bot_autostart":
			if n, err := strconv.ParseUint(v, 10, 8); err == nil && n <= 2 {
				c.BotAutoStart = AutoStart(n)
			}
		case k == "bot_defaultgamename":
			c.BotDefaultGameName = truncate(v, 31)
		case k == "map_size":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				c.MapSize = uint32(n)
			}
		case k == "map_info":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				c.MapInfo = uint32(n)
			}
		case k == "map_crc":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				c.MapCRC = uint32(n)
			}
		case k == "map_sha1":
			copy(c.MapSha1[:], v)
		case k == "map_options":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				c.MapOptions = uint32(n)
			}
		case k == "map_width":
			if n, err := strconv.ParseUint(v, 10, 16); err == nil {
				c.MapWidth = uint16(n)
			}
		case k == "map_height":
			if n, err := strconv.ParseUint(v, 10, 16); err == nil {
				c.MapHeight = uint16(n)
			}
		case strings.HasPrefix(k, "map_slot"):
			var idx, err = strconv.Atoi(strings.TrimPrefix(k, "map_slot"))
			if err != nil || idx < 1 || idx > 12 {
				continue
			}
			c.MapSlots[idx-1] = parseMapSlot(v)
		}
	}
	return c
}

func parseMapSlot(v string) MapSlot {
	var fields = strings.Split(v, ",")
	var get = func(i int) uint8 {
		if i >= len(fields) {
			return 0
		}
		n, _ := strconv.ParseUint(strings.TrimSpace(fields[i]), 10, 8)
		return uint8(n)
	}
	return MapSlot{
		Team:          get(0),
		Colour:        get(1),
		Race:          get(2),
		ComputerSkill: get(3),
		Handicap:      get(4),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
