// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

// Package observer is a strictly read-only live-state stream: it pushes a
// JSON snapshot of a Game's slot table and player list over WebSocket
// whenever the orchestrator asks it to. It never has an inbound command
// path into the game, so nothing here can affect any timing invariant of
// the core relay engine (§8).
package observer

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aura-project/w3ghost/game"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// PlayerSnapshot is one player's publicly observable state.
type PlayerSnapshot struct {
	PID     uint8  `json:"pid"`
	Name    string `json:"name"`
	Lagging bool   `json:"lagging"`
}

// SlotSnapshot is one slot's publicly observable state.
type SlotSnapshot struct {
	PlayerID    uint8  `json:"player_id"`
	Status      uint8  `json:"status"`
	Team        uint8  `json:"team"`
	Color       uint8  `json:"color"`
	DownloadPct uint8  `json:"download_pct"`
}

// Snapshot is the JSON shape pushed to every connected dashboard.
type Snapshot struct {
	GameName string           `json:"game_name"`
	State    string           `json:"state"`
	Players  []PlayerSnapshot `json:"players"`
	Slots    []SlotSnapshot   `json:"slots"`
}

// BuildSnapshot reads g's exported state into a Snapshot. g is never
// mutated.
func BuildSnapshot(g *game.Game) Snapshot {
	var snap = Snapshot{
		GameName: g.GameName,
		State:    g.State.String(),
	}
	for _, p := range g.Players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			PID:     p.PID,
			Name:    p.Name,
			Lagging: p.Lagging,
		})
	}
	for _, s := range g.Slots {
		snap.Slots = append(snap.Slots, SlotSnapshot{
			PlayerID:    s.PlayerID,
			Status:      uint8(s.Status),
			Team:        s.Team,
			Color:       s.Color,
			DownloadPct: s.DownloadPct,
		})
	}
	return snap
}

// Hub fans a Snapshot out to every currently connected WebSocket client.
// The zero value is not usable; construct with NewHub.
type Hub struct {
	upgrader websocket.Upgrader
	logErr   *log.Logger

	mut     sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	ws   *websocket.Conn
	send chan []byte
}

// NewHub constructs an empty Hub. logErr receives per-client transport
// errors; pass nil to discard them.
func NewHub(logErr *log.Logger) *Hub {
	if logErr == nil {
		logErr = log.New(io.Discard, "", 0)
	}
	return &Hub{
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
		logErr:   logErr,
		clients:  make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request to a WebSocket and registers the
// resulting client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var ws, err = h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	var c = &client{ws: ws, send: make(chan []byte, 4)}
	h.mut.Lock()
	h.clients[c] = struct{}{}
	h.mut.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

// readPump only exists to notice the client going away; this stream never
// accepts inbound commands (package doc).
func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	var ticker = time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.ws.Close()

	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mut.Lock()
	defer h.mut.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast pushes snap to every connected client, dropping it for any
// client whose outbound buffer is still full rather than blocking.
func (h *Hub) Broadcast(snap Snapshot) {
	var data, err = json.Marshal(snap)
	if err != nil {
		h.logErr.Printf("observer: marshal snapshot: %v", err)
		return
	}

	h.mut.Lock()
	defer h.mut.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}
