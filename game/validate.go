// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import "strings"

// ValidateGameName reports whether a game name is acceptable: non-empty and
// at most 31 bytes (B2).
func ValidateGameName(name string) bool {
	return len(name) > 0 && len(name) <= 31
}

// validatePlayerName enforces §12's supplemented join validation: 1-15
// bytes, no space or pipe, and no collision with an existing player or the
// virtual host name (B2, §7 Soft-kick).
func (g *Game) validatePlayerName(name string) bool {
	if len(name) == 0 || len(name) > 15 {
		return false
	}
	if strings.ContainsAny(name, " |") {
		return false
	}
	if name == g.VirtualHostName {
		return false
	}
	for _, p := range g.Players {
		if p.Name == name {
			return false
		}
	}
	return true
}
