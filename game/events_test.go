// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"testing"

	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

func TestOnPlayerKeepAliveDetectsDesync(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var a, ca = joinPlayer(g, "A")
	var b, cb = joinPlayer(g, "B")

	g.onPlayerKeepAlive(a, 0xAAAA)
	if g.Desynced {
		t.Fatalf("should not decide until every player has reported this round")
	}
	g.onPlayerKeepAlive(b, 0xBBBB)

	if !g.Desynced {
		t.Fatalf("expected a desync once checksums disagree")
	}

	var sawWarning bool
	for _, pkt := range append(append([]w3gs.Packet{}, ca.sent...), cb.sent...) {
		if cf, ok := pkt.(*w3gs.ChatFromHost); ok && cf.Content == w3gs.DesyncWarning {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Fatalf("expected the desync warning to be broadcast")
	}
}

func TestOnPlayerKeepAliveAgreesNoDesync(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var a, _ = joinPlayer(g, "A")
	var b, _ = joinPlayer(g, "B")

	g.onPlayerKeepAlive(a, 0x1234)
	g.onPlayerKeepAlive(b, 0x1234)

	if g.Desynced {
		t.Fatalf("matching checksums must not flag a desync")
	}
}

func TestOnPlayerChatDispatchesStartCommand(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var p, _ = joinPlayer(g, "Admin")

	g.onPlayerChat(p, &w3gs.ChatToHost{Type: w3gs.MsgChat, Content: "!start"})

	if g.State != CountDown {
		t.Fatalf("expected !start to force the countdown, got %v", g.State)
	}
}

func TestOnPlayerChatPlainMessageBroadcasts(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var p, _ = joinPlayer(g, "A")
	var _, c2 = joinPlayer(g, "B")

	g.onPlayerChat(p, &w3gs.ChatToHost{Type: w3gs.MsgChat, Content: "gl hf"})

	var saw bool
	for _, pkt := range c2.sent {
		if cf, ok := pkt.(*w3gs.ChatFromHost); ok && cf.Content == "gl hf" {
			saw = true
		}
	}
	if !saw {
		t.Fatalf("expected a plain chat message to be relayed")
	}
}

func TestOnPlayerChatKickCommand(t *testing.T) {
	var g = newTestGame(meleeMap(), clock.NewVirtual(0))
	var admin, _ = joinPlayer(g, "Admin")
	var victim, _ = joinPlayer(g, "Victim")

	g.onPlayerChat(admin, &w3gs.ChatToHost{Type: w3gs.MsgChat, Content: "!kick " + string(rune('0'+int(victim.PID)))})

	if !victim.DeleteMe {
		t.Fatalf("expected !kick to mark the target for removal")
	}
}

func TestApplyTeamChangeRefusedUnderFixedPlayerSettings(t *testing.T) {
	var m = meleeMap()
	m.Options = w3gs.FlagFixedPlayerSettings
	var g = newTestGame(m, clock.NewVirtual(0))
	var p, _ = joinPlayer(g, "Solo")
	var sid, _ = g.GetSIDFromPID(p.PID)
	var originalTeam = g.Slots[sid].Team

	g.applyTeamChange(p, originalTeam+1)

	if g.Slots[sid].Team != originalTeam {
		t.Fatalf("fixed player settings maps must refuse team changes")
	}
}
