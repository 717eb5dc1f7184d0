// Package handlers exposes the game over HTTP and WebSocket.
package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/jason-s-yu/pangkah/service/internal/game"
	"github.com/sirupsen/logrus"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
	pingInterval = 15 * time.Second
)

// client is one WebSocket connection of a player. A player may hold several.
type client struct {
	id   uuid.UUID
	name string
	ws   *websocket.Conn
	send chan game.GameEvent

	mu    sync.Mutex
	rooms map[uuid.UUID]struct{} // Rooms joined over this connection.
}

func newClient(id uuid.UUID, name string, ws *websocket.Conn) *client {
	return &client{
		id:    id,
		name:  name,
		ws:    ws,
		send:  make(chan game.GameEvent, sendBuffer),
		rooms: make(map[uuid.UUID]struct{}),
	}
}

func (c *client) trackRoom(id uuid.UUID, joined bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if joined {
		c.rooms[id] = struct{}{}
	} else {
		delete(c.rooms, id)
	}
}

func (c *client) joinedRooms() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]uuid.UUID, 0, len(c.rooms))
	for id := range c.rooms {
		out = append(out, id)
	}
	return out
}

// writeLoop sends queued events and keeps the connection alive until ctx ends
// or a write fails.
func (c *client) writeLoop(ctx context.Context, log *logrus.Entry) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.send:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, c.ws, ev)
			cancel()
			if err != nil {
				log.WithError(err).Debug("write failed; dropping connection")
				_ = c.ws.Close(websocket.StatusInternalError, "write failed")
				return
			}
		case <-ping.C:
			pctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.ws.Ping(pctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// Hub routes game events to connected players. It implements game.EventSink.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*client]struct{}
	log     *logrus.Entry
}

// NewHub returns an empty Hub.
func NewHub(log *logrus.Entry) *Hub {
	return &Hub{clients: make(map[uuid.UUID]map[*client]struct{}), log: log}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.id]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.id] = set
	}
	set[c] = struct{}{}
}

// unregister removes c and reports whether the player has no other connection.
func (h *Hub) unregister(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.id]
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.id)
		return true
	}
	return false
}

// Online returns the number of connected players.
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Deliver queues ev for its recipients. A client whose buffer is full misses
// the event; it can recover with sync-state.
func (h *Hub) Deliver(ev game.GameEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if ev.Audience == game.AudienceLobby {
		for _, set := range h.clients {
			for c := range set {
				h.offer(c, ev)
			}
		}
		return
	}
	for _, id := range ev.To {
		for c := range h.clients[id] {
			h.offer(c, ev)
		}
	}
}

func (h *Hub) offer(c *client, ev game.GameEvent) {
	select {
	case c.send <- ev:
	default:
		h.log.WithFields(logrus.Fields{"player": c.id, "event": ev.Type}).Warn("send buffer full; event dropped")
	}
}
