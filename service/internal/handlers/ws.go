package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/jason-s-yu/pangkah/service/internal/auth"
	"github.com/jason-s-yu/pangkah/service/internal/game"
	"github.com/sirupsen/logrus"
)

// tokenFrom reads the bearer token from the Authorization header, or from
// the token query parameter that browsers must use for WebSockets.
func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// ServeWS upgrades an authenticated request and pumps client messages into
// the game manager until the socket closes.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	ident, err := s.issuer.Verify(tokenFrom(r))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.origins})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	defer ws.CloseNow()

	log := s.log.WithField("player", ident.ID)
	c := newClient(ident.ID, ident.Name, ws)
	s.hub.register(c)
	log.Debug("connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go c.writeLoop(ctx, log)

	s.hub.offer(c, game.GameEvent{
		Type:     game.EventRoomList,
		Audience: game.AudienceLobby,
		Payload:  map[string]interface{}{"rooms": s.mgr.Lobby()},
	})

	s.readLoop(ctx, c, ident, log)

	cancel()
	if s.hub.unregister(c) {
		for _, roomID := range c.joinedRooms() {
			_, _ = s.mgr.Handle(roomID, game.Disconnect{Player: ident.ID})
		}
	}
	_ = ws.Close(websocket.StatusNormalClosure, "")
	log.Debug("disconnected")
}

func (s *Server) readLoop(ctx context.Context, c *client, ident auth.Identity, log *logrus.Entry) {
	for {
		var msg game.ClientMessage
		if err := wsjson.Read(ctx, c.ws, &msg); err != nil {
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
				log.WithError(err).Debug("read failed")
			}
			return
		}

		cmd, err := game.DecodeCommand(ident.ID, ident.Name, msg)
		if err != nil {
			s.hub.offer(c, game.GameEvent{
				Type:     game.EventActionRejected,
				RoomID:   msg.RoomID,
				Audience: game.AudiencePlayer,
				Payload:  map[string]interface{}{"command": msg.Type, "reason": err.Error()},
			})
			continue
		}

		events, err := s.mgr.Handle(msg.RoomID, cmd)
		if err != nil {
			continue
		}
		switch cmd.(type) {
		case game.CreateRoom, game.JoinRoom:
			if id := roomOf(events); id != uuid.Nil {
				c.trackRoom(id, true)
			}
		case game.LeaveRoom:
			c.trackRoom(msg.RoomID, false)
		}
	}
}

// roomOf returns the room a batch of events belongs to.
func roomOf(events []game.GameEvent) uuid.UUID {
	for _, ev := range events {
		if ev.RoomID != uuid.Nil {
			return ev.RoomID
		}
	}
	return uuid.Nil
}
