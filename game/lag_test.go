// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"testing"
	"time"

	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

func TestRunLagScreenDetectsAndClearsLag(t *testing.T) {
	var v = clock.NewVirtual(0)
	var g = newTestGame(meleeMap(), v)
	var p, c = joinPlayer(g, "Solo")
	g.State = Loaded
	g.SyncLimit = 50

	g.SyncCounter = 100
	p.SyncCounter = 0 // delta 100 > 50

	g.runLagScreen(v.NowMs())

	if !g.Lagging || !p.Lagging {
		t.Fatalf("expected lag to be detected")
	}

	var sawStartLag bool
	for _, pkt := range c.sent {
		if _, ok := pkt.(*w3gs.StartLag); ok {
			sawStartLag = true
		}
	}
	if !sawStartLag {
		t.Fatalf("expected STARTLAG broadcast")
	}

	p.SyncCounter = 90 // delta 10 < SyncLimit/2=25
	g.runLagScreen(v.NowMs())

	if p.Lagging {
		t.Fatalf("player should no longer be lagging")
	}
	if g.Lagging {
		t.Fatalf("game should no longer be lagging once nobody is")
	}
}

func TestRunLagScreenAutoDropsAfterSixtySeconds(t *testing.T) {
	var v = clock.NewVirtual(0)
	var g = newTestGame(meleeMap(), v)
	var p, _ = joinPlayer(g, "Solo")
	g.State = Loaded
	g.SyncLimit = 50

	g.SyncCounter = 100
	p.SyncCounter = 0

	g.runLagScreen(v.NowMs())
	if !p.Lagging {
		t.Fatalf("expected lag to start")
	}

	v.Advance(60 * time.Second)
	g.runLagScreen(v.NowMs())

	if !p.DeleteMe {
		t.Fatalf("expected auto-drop after 60s of continuous lag")
	}
}

func TestRunLagScreenDropVoteMajorityKicks(t *testing.T) {
	var v = clock.NewVirtual(0)
	var g = newTestGame(meleeMap(), v)
	var a, _ = joinPlayer(g, "A")
	var b, _ = joinPlayer(g, "B")
	g.State = Loaded
	g.SyncLimit = 50

	g.SyncCounter = 100
	a.SyncCounter = 0
	b.SyncCounter = 100

	g.runLagScreen(v.NowMs())
	if !a.Lagging {
		t.Fatalf("expected A to be lagging")
	}

	a.DropVote = true
	b.DropVote = true
	g.runLagScreen(v.NowMs())

	if !a.DeleteMe {
		t.Fatalf("expected drop-vote majority to kick the laggy player")
	}
}

func TestActionRelayFreezesWhileLagging(t *testing.T) {
	var v = clock.NewVirtual(0)
	var g = newTestGame(meleeMap(), v)
	g.State = Loaded
	g.Lagging = true
	var before = g.SyncCounter

	v.Advance(time.Second)
	g.runActionRelay(v.NowMs())

	if g.SyncCounter != before {
		t.Fatalf("sync counter must not advance while lagging (I7)")
	}
}
