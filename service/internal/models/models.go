// internal/models/models.go
package models

import (
	"github.com/google/uuid"
	engine "github.com/jason-s-yu/pangkah/engine"
)

// Player is a seat holder in a room. Bots are Players with IsBot set.
type Player struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	IsBot        bool        `json:"isBot"`
	Connected    bool        `json:"connected"`
	RematchReady bool        `json:"rematchReady"`
	Stats        PlayerStats `json:"stats"`
}

// PlayerStats are the raw per-game tallies handed to the results store.
type PlayerStats struct {
	CardsPlayed      int `json:"cardsPlayed"`
	PangkahsDealt    int `json:"pangkahsDealt"`
	PangkahsReceived int `json:"pangkahsReceived"`
	CleanRounds      int `json:"cleanRounds"`
	Position         int `json:"position"` // 1 = first out; 0 while still playing.
}

// Card is the wire form of an engine card.
type Card struct {
	Code  string `json:"code"` // e.g. "10H", accepted back by play-card.
	Rank  string `json:"rank"`
	Suit  string `json:"suit"`
	Value int    `json:"value"`
}

// NewCard converts c using the room's Ace convention.
func NewCard(c engine.Card, aceHigh bool) Card {
	return Card{
		Code:  c.String(),
		Rank:  c.Rank().String(),
		Suit:  c.Suit().String(),
		Value: c.Value(aceHigh),
	}
}

// NewCards converts a slice of engine cards.
func NewCards(cs []engine.Card, aceHigh bool) []Card {
	out := make([]Card, len(cs))
	for i, c := range cs {
		out[i] = NewCard(c, aceHigh)
	}
	return out
}

// RoomSummary is one lobby entry.
type RoomSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Players    int       `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	InProgress bool      `json:"inProgress"`
	Private    bool      `json:"private"`
	Mode       string    `json:"mode"`
}

// ActionRecord is one entry of a room's action log.
type ActionRecord struct {
	RoomID      uuid.UUID              `json:"roomId"`
	GameNumber  int                    `json:"gameNumber"`
	ActionIndex int                    `json:"actionIndex"`
	ActorID     uuid.UUID              `json:"actorId"` // Nil for room-driven actions.
	ActionType  string                 `json:"actionType"`
	Payload     map[string]interface{} `json:"payload"`
	Timestamp   int64                  `json:"timestamp"` // Unix millis.
}

// PlayerResult is one human's outcome of a finished game.
type PlayerResult struct {
	PlayerID uuid.UUID   `json:"playerId"`
	Name     string      `json:"name"`
	Loser    bool        `json:"loser"`
	Stats    PlayerStats `json:"stats"`
}

// GameResult is everything the results store receives at game over.
type GameResult struct {
	RoomID     uuid.UUID      `json:"roomId"`
	GameNumber int            `json:"gameNumber"`
	NumPlayers int            `json:"numPlayers"`
	Mode       string         `json:"mode"`
	Tricks     int            `json:"tricks"`
	Players    []PlayerResult `json:"players"`
	EndedAt    int64          `json:"endedAt"`
}
