// internal/game/commands_test.go
package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/pangkah/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommand(t *testing.T) {
	player := uuid.New()

	cmd, err := DecodeCommand(player, "Ana", ClientMessage{Type: "play-card", Payload: json.RawMessage(`{"card":"10H"}`)})
	require.NoError(t, err)
	assert.Equal(t, PlayCard{Player: player, Card: "10H"}, cmd)
	assert.Equal(t, player, cmd.Actor())

	cmd, err = DecodeCommand(player, "Ana", ClientMessage{
		Type:    "create-room",
		Payload: json.RawMessage(`{"name":"Late night","maxPlayers":6,"mode":"penalty","password":"pw"}`),
	})
	require.NoError(t, err)
	create, ok := cmd.(CreateRoom)
	require.True(t, ok)
	assert.Equal(t, "Ana", create.PlayerName)
	assert.Equal(t, 6, create.Options.MaxPlayers)
	assert.Equal(t, engine.RulePenalty, create.Options.Mode)
	assert.Equal(t, "pw", create.Options.Password)

	cmd, err = DecodeCommand(player, "Ana", ClientMessage{Type: "accept-swap"})
	require.NoError(t, err)
	assert.Equal(t, AcceptSwap{Player: player}, cmd)

	_, err = DecodeCommand(player, "Ana", ClientMessage{Type: "timer-expired"})
	assert.ErrorIs(t, err, ErrUnknownCommand, "timers cannot be sent by clients")

	_, err = DecodeCommand(player, "Ana", ClientMessage{Type: "play-card", Payload: json.RawMessage(`{"card":`)})
	assert.Error(t, err)
}

func TestRoomTimerGenerations(t *testing.T) {
	fired := make(chan TimerExpired, 2)
	rt := roomTimer{fire: func(kind TimerKind, gen uint64) { fired <- TimerExpired{Kind: kind, Gen: gen} }}

	rt.start(time.Hour, TimerTurnTick)
	staleGen := rt.gen
	rt.start(time.Millisecond, TimerBotMove)

	var got TimerExpired
	select {
	case got = <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Equal(t, TimerBotMove, got.Kind)
	assert.False(t, rt.claim(TimerTurnTick, staleGen), "replaced timer is stale")
	assert.True(t, rt.claim(got.Kind, got.Gen))
	assert.False(t, rt.claim(got.Kind, got.Gen), "a firing is claimed once")
	assert.Equal(t, TimerNone, rt.kind)

	rt.start(time.Hour, TimerResolve)
	rt.stop()
	assert.False(t, rt.claim(TimerResolve, rt.gen), "stopped timers are stale")
}

func TestTurnSeconds(t *testing.T) {
	assert.Equal(t, 15, DefaultTiming().turnSeconds())
	assert.Equal(t, 2, Timing{Turn: 1500 * time.Millisecond}.turnSeconds())
	assert.Equal(t, 0, Timing{}.turnSeconds())
}

func TestRepository(t *testing.T) {
	repo := NewRepository()
	a := &Room{ID: uuid.New(), Name: "b"}
	b := &Room{ID: uuid.New(), Name: "a"}
	repo.Add(a)
	repo.Add(b)

	got, ok := repo.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 2, repo.Len())
	assert.Equal(t, []*Room{b, a}, repo.List(), "listed by name")

	repo.Delete(a.ID)
	_, ok = repo.Get(a.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, repo.Len())
}
