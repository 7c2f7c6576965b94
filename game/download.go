// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package game

import (
	"time"

	"github.com/aura-project/w3ghost/protocol/w3gs"
)

// downloadWindowBytes is how far ahead of the last ack the pacer is
// willing to send, per §4.5.3 ("last_map_part_sent < last_map_part_acked
// + 1442·100").
const downloadWindowBytes = w3gs.MapPartSize * 100

// runDownloadPacer drives §4.5.3: every 100ms, push MAPPART chunks to each
// downloading player within the ack window, rate-limited per player.
func (g *Game) runDownloadPacer(now int64) {
	if !g.timers.mapDownload.due(now) {
		return
	}

	var wallNow = time.UnixMilli(now)
	var from = g.hostPID()

	for _, p := range g.Players {
		if !p.DownloadStarted || p.DownloadFinished {
			continue
		}

		for p.LastMapPartSent < p.LastMapPartAcked+downloadWindowBytes && p.LastMapPartSent < g.Map.Size {
			if !p.downloadLimiter.AllowN(wallNow, 1) {
				break
			}

			var chunkLen = uint32(w3gs.MapPartSize)
			if remaining := g.Map.Size - p.LastMapPartSent; remaining < chunkLen {
				chunkLen = remaining
			}

			p.Send(&w3gs.MapPart{
				ToPID:   p.PID,
				FromPID: from,
				Offset:  p.LastMapPartSent,
				Data:    g.Map.Data[p.LastMapPartSent : p.LastMapPartSent+chunkLen],
			})
			p.LastMapPartSent += chunkLen
			if g.MapBytesObserver != nil {
				g.MapBytesObserver(int(chunkLen))
			}
		}
	}
}

// onPlayerMapSize handles MAPSIZE (§4.4.2): the cumulative byte count the
// client reports becomes the new ack cursor; a report equal to map.size
// finishes the download.
func (g *Game) onPlayerMapSize(p *Player, m *w3gs.MapSize) {
	p.LastMapPartAcked = m.MapSize

	if m.MapSize >= g.Map.Size {
		p.DownloadFinished = true
		g.setDownloadPct(p, 100)
		return
	}

	if !p.DownloadStarted {
		p.DownloadStarted = true
		p.LastMapPartSent = m.MapSize
	}

	var pct uint8
	if g.Map.Size > 0 {
		pct = uint8(uint64(m.MapSize) * 100 / uint64(g.Map.Size))
	}
	g.setDownloadPct(p, pct)
}

func (g *Game) setDownloadPct(p *Player, pct uint8) {
	if sid, ok := g.GetSIDFromPID(p.PID); ok {
		g.Slots[sid].DownloadPct = pct
		g.SlotInfoDirty = true
	}
}

// runSlotInfoSync batches SLOTINFO broadcasts to once per second (§4.5.3:
// "download-percent changes can fire per-KB").
func (g *Game) runSlotInfoSync(now int64) {
	if !g.timers.slotInfoSync.due(now) {
		return
	}
	if !g.SlotInfoDirty {
		return
	}
	g.broadcast(&w3gs.SlotInfoPacket{SlotInfo: g.slotInfoSnapshot()})
	g.SlotInfoDirty = false
}
