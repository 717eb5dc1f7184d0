package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/pangkah/service/internal/models"
)

// GameEventType names an outbound event.
type GameEventType string

const (
	EventPlayersUpdated  GameEventType = "players-updated"
	EventGameInitialized GameEventType = "game-initialized" // Private: own hand, starter, removed Aces.
	EventTableUpdated    GameEventType = "table-updated"
	EventTurnAdvanced    GameEventType = "turn-advanced"
	EventTurnTimerTick   GameEventType = "turn-timer-tick"
	EventRoundCleared    GameEventType = "round-cleared"
	EventGameOver        GameEventType = "game-over"
	EventSwapRequested   GameEventType = "swap-requested"
	EventSwapDeclined    GameEventType = "swap-declined"
	EventSwapOccurred    GameEventType = "swap-occurred"
	EventRoomList        GameEventType = "room-list"
	EventActionRejected  GameEventType = "action-rejected" // Private: reason for a refused command.
	EventSyncState       GameEventType = "sync-state"      // Private: full state for one viewer.
)

// Audience says who receives an event.
type Audience uint8

const (
	AudienceRoom   Audience = iota // Every human seated in the room.
	AudiencePlayer                 // Only the players listed in To.
	AudienceLobby                  // Every connected client.
)

// EventUser identifies a player within an event.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
	Seat int       `json:"seat"`
}

// GameEvent is one outbound message. To is resolved when the event is
// created, so delivery needs no room state.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	RoomID  uuid.UUID              `json:"roomId"`
	User    *EventUser             `json:"user,omitempty"`
	Card    *models.Card           `json:"card,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	State   *ObfGameState          `json:"state,omitempty"`

	Audience Audience    `json:"-"`
	To       []uuid.UUID `json:"-"`
}

// EventSink delivers events to clients. Deliver must not block on slow clients.
type EventSink interface {
	Deliver(ev GameEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ev GameEvent)

// Deliver calls f(ev).
func (f EventSinkFunc) Deliver(ev GameEvent) { f(ev) }
