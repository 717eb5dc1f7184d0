package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/pangkah/engine"
)

// Command is one inbound intent for a room. Actor is uuid.Nil for commands
// the room issues to itself.
type Command interface {
	Name() string
	Actor() uuid.UUID
}

// RoomOptions configure a new room.
type RoomOptions struct {
	Name         string          `json:"name"`
	MaxPlayers   int             `json:"maxPlayers"`
	Mode         engine.RuleMode `json:"-"`
	ModeName     string          `json:"mode"`
	ShuffleSeats bool            `json:"shuffleSeats"`
	Password     string          `json:"password,omitempty"`
}

type (
	CreateRoom struct {
		Player     uuid.UUID
		PlayerName string
		Options    RoomOptions
	}
	JoinRoom struct {
		Player     uuid.UUID
		PlayerName string
		Password   string
	}
	LeaveRoom      struct{ Player uuid.UUID }
	AddBot         struct{ Player uuid.UUID }
	StartGame      struct{ Player uuid.UUID }
	RequestSwap    struct{ Player uuid.UUID }
	AcceptSwap     struct{ Player uuid.UUID }
	DeclineSwap    struct{ Player uuid.UUID }
	RequestRematch struct{ Player uuid.UUID }
	RequestSync    struct{ Player uuid.UUID }
	PlayCard       struct {
		Player uuid.UUID
		Card   string // Wire code, e.g. "10H".
	}
	// Disconnect marks a seated player offline without giving up the seat.
	Disconnect struct{ Player uuid.UUID }
	// TimerExpired is fed back through Handle when a room timer fires.
	TimerExpired struct {
		Kind TimerKind
		Gen  uint64
	}
)

func (CreateRoom) Name() string { return "create-room" }
func (JoinRoom) Name() string { return "join-room" }
func (LeaveRoom) Name() string { return "leave-room" }
func (AddBot) Name() string { return "add-bot" }
func (StartGame) Name() string { return "start-game" }
func (PlayCard) Name() string { return "play-card" }
func (RequestSwap) Name() string { return "request-swap" }
func (AcceptSwap) Name() string { return "accept-swap" }
func (DeclineSwap) Name() string { return "decline-swap" }
func (RequestRematch) Name() string { return "request-rematch" }
func (RequestSync) Name() string { return "sync-state" }
func (Disconnect) Name() string { return "disconnect" }
func (TimerExpired) Name() string { return "timer-expired" }

func (c CreateRoom) Actor() uuid.UUID { return c.Player }
func (c JoinRoom) Actor() uuid.UUID { return c.Player }
func (c LeaveRoom) Actor() uuid.UUID { return c.Player }
func (c AddBot) Actor() uuid.UUID { return c.Player }
func (c StartGame) Actor() uuid.UUID { return c.Player }
func (c PlayCard) Actor() uuid.UUID { return c.Player }
func (c RequestSwap) Actor() uuid.UUID { return c.Player }
func (c AcceptSwap) Actor() uuid.UUID { return c.Player }
func (c DeclineSwap) Actor() uuid.UUID { return c.Player }
func (c RequestRematch) Actor() uuid.UUID { return c.Player }
func (c RequestSync) Actor() uuid.UUID { return c.Player }
func (c Disconnect) Actor() uuid.UUID { return c.Player }
func (TimerExpired) Actor() uuid.UUID { return uuid.Nil }

// ClientMessage is the JSON envelope clients send.
type ClientMessage struct {
	Type    string          `json:"type"`
	RoomID  uuid.UUID       `json:"roomId"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeCommand turns a client message from player into a Command.
// Timer and disconnect commands cannot be sent by clients.
func DecodeCommand(player uuid.UUID, playerName string, msg ClientMessage) (Command, error) {
	switch msg.Type {
	case "create-room":
		var opts RoomOptions
		if err := decodePayload(msg.Payload, &opts); err != nil {
			return nil, err
		}
		opts.Mode = engine.ParseRuleMode(opts.ModeName)
		return CreateRoom{Player: player, PlayerName: playerName, Options: opts}, nil
	case "join-room":
		var p struct {
			Password string `json:"password"`
		}
		if err := decodePayload(msg.Payload, &p); err != nil {
			return nil, err
		}
		return JoinRoom{Player: player, PlayerName: playerName, Password: p.Password}, nil
	case "play-card":
		var p struct {
			Card string `json:"card"`
		}
		if err := decodePayload(msg.Payload, &p); err != nil {
			return nil, err
		}
		return PlayCard{Player: player, Card: p.Card}, nil
	case "leave-room":
		return LeaveRoom{Player: player}, nil
	case "add-bot":
		return AddBot{Player: player}, nil
	case "start-game":
		return StartGame{Player: player}, nil
	case "request-swap":
		return RequestSwap{Player: player}, nil
	case "accept-swap":
		return AcceptSwap{Player: player}, nil
	case "decline-swap":
		return DeclineSwap{Player: player}, nil
	case "request-rematch":
		return RequestRematch{Player: player}, nil
	case "sync-state":
		return RequestSync{Player: player}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, msg.Type)
}

func decodePayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
