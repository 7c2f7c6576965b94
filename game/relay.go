// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"github.com/aura-project/w3ghost/protocol"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// maxSubBatchBytes is the protocol limit (1460) minus the 8-byte envelope
// the action relay must leave headroom for (§4.5.1).
const maxSubBatchBytes = 1452

// runActionRelay drives §4.5.1: every LatencyMs, batch the queued actions
// into ≤1452-byte sub-batches and emit them, then clear the queue.
func (g *Game) runActionRelay(now int64) {
	if g.Lagging {
		// The action clock is frozen while lagging (I7); keep resetting
		// last_sent so the game does not race on recovery (§4.5.2).
		g.timers.actionSend.lastMs = now
		return
	}
	if !g.timers.actionSend.due(now) {
		return
	}
	g.emitActionBatch(now)
}

// emitActionBatch performs one relay tick's emission, honoring the timing
// discipline and sub-batch framing of §4.5.1.
func (g *Game) emitActionBatch(now int64) {
	var actual = now - g.lastActionSentMs
	var expected = int64(g.LatencyMs) - g.lastLateByMs
	var lateBy = actual - expected
	if lateBy < 0 {
		lateBy = 0
	}
	if lateBy > int64(g.LatencyMs) {
		g.LogErr.Printf("action relay overrun: %dms late", lateBy)
		lateBy = int64(g.LatencyMs)
	}
	g.lastLateByMs = lateBy
	g.lastActionSentMs = now

	var batches = batchActions(g.ActionQueue, maxSubBatchBytes)
	g.ActionQueue = g.ActionQueue[:0]

	if len(batches) == 0 {
		g.broadcast(&w3gs.IncomingAction{SendInterval: uint16(g.LatencyMs)})
	} else {
		for i, b := range batches {
			if g.ActionBatchObserver != nil {
				g.ActionBatchObserver(batchByteSize(b))
			}
			if i < len(batches)-1 {
				g.broadcast(&w3gs.IncomingAction2{CRC: crc16Actions(b), Actions: b})
			} else {
				g.broadcast(&w3gs.IncomingAction{
					SendInterval: uint16(g.LatencyMs),
					CRC:          crc16Actions(b),
					Actions:      b,
				})
			}
		}
	}

	g.SyncCounter++
}

// batchActions greedily packs actions into sub-batches no larger than
// maxBytes each, preserving relative order (§4.5.1, §5 ordering guarantee).
func batchActions(actions []w3gs.PlayerAction, maxBytes int) [][]w3gs.PlayerAction {
	var batches [][]w3gs.PlayerAction
	var cur []w3gs.PlayerAction
	var curSize int

	for _, a := range actions {
		var size = 1 + 2 + len(a.Data)
		if curSize+size > maxBytes && len(cur) > 0 {
			batches = append(batches, cur)
			cur = nil
			curSize = 0
		}
		cur = append(cur, a)
		curSize += size
	}
	if len(cur) > 0 {
		batches = append(batches, cur)
	}
	return batches
}

// batchByteSize is the wire size of a sub-batch's action payloads, used by
// ActionBatchObserver to sample relay traffic (§4.5.1).
func batchByteSize(actions []w3gs.PlayerAction) int {
	var n int
	for _, a := range actions {
		n += 1 + 2 + len(a.Data)
	}
	return n
}

func crc16Actions(actions []w3gs.PlayerAction) uint16 {
	var buf protocol.Buffer
	for _, a := range actions {
		buf.WriteUInt8(a.PlayerID)
		buf.WriteUInt16(uint16(len(a.Data)))
		buf.WriteBlob(a.Data)
	}
	return protocol.CRC16(buf.Bytes)
}
