// internal/game/room.go
package game

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/pangkah/engine"
	"github.com/jason-s-yu/pangkah/engine/agent"
	"github.com/jason-s-yu/pangkah/service/internal/models"
	"github.com/sirupsen/logrus"
)

// ResultRecorder stores the per-player tallies of a finished game.
type ResultRecorder interface {
	RecordGameResult(ctx context.Context, res models.GameResult) error
}

// ActionPublisher appends to the room action log.
type ActionPublisher interface {
	PublishGameAction(ctx context.Context, rec models.ActionRecord) error
}

// pendingSwap is an outstanding hand-absorption request.
type pendingSwap struct {
	Requester   int
	Target      int
	RequesterID uuid.UUID
	TargetID    uuid.UUID
}

// Room is one table: its seats, the current game and the room timer.
// Every field below Mu is guarded by it; the dispatcher holds Mu for the whole
// of each command.
type Room struct {
	ID           uuid.UUID
	Name         string
	MaxPlayers   int
	Mode         engine.RuleMode
	ShuffleSeats bool
	passwordHash string // Immutable after creation.

	Mu sync.Mutex

	Players    []*models.Player // Seat order; fixed while a game runs.
	HostID     uuid.UUID
	Game       *engine.GameState
	Memory     *agent.Memory
	Started    bool // A game is in progress.
	GameNumber int
	TurnID     int

	seatsMoved  bool // A seat was removed after Game was dealt; its seat indices are stale.
	swap        *pendingSwap
	timer       roomTimer
	secondsLeft int
	timing      Timing
	rng         *rand.Rand
	out         []GameEvent
	actionIndex int
	closed      bool
	botCount    int

	recorder ResultRecorder
	actions  ActionPublisher
	log      *logrus.Entry
}

// roomDeps are the collaborators a Manager hands to each room.
type roomDeps struct {
	timing   Timing
	seed     uint64
	recorder ResultRecorder
	actions  ActionPublisher
	log      *logrus.Entry
	fire     func(kind TimerKind, gen uint64)
}

func newRoom(id uuid.UUID, opts RoomOptions, passwordHash string, deps roomDeps) *Room {
	r := &Room{
		ID:           id,
		Name:         opts.Name,
		MaxPlayers:   opts.MaxPlayers,
		Mode:         opts.Mode,
		ShuffleSeats: opts.ShuffleSeats,
		passwordHash: passwordHash,
		timing:       deps.timing,
		rng:          rand.New(rand.NewPCG(deps.seed, deps.seed^uint64(id.ID()))),
		recorder:     deps.recorder,
		actions:      deps.actions,
		log:          deps.log.WithField("room", id.String()),
	}
	r.timer.fire = deps.fire
	return r
}

// seatOf returns the seat index of id, or -1.
func (r *Room) seatOf(id uuid.UUID) int {
	for i, p := range r.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) player(id uuid.UUID) *models.Player {
	if s := r.seatOf(id); s >= 0 {
		return r.Players[s]
	}
	return nil
}

// humanIDs returns the ids of every seated non-bot player.
func (r *Room) humanIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.IsBot {
			out = append(out, p.ID)
		}
	}
	return out
}

func (r *Room) eventUser(seat int) *EventUser {
	if seat < 0 || seat >= len(r.Players) {
		return nil
	}
	p := r.Players[seat]
	return &EventUser{ID: p.ID, Name: p.Name, Seat: seat}
}

// broadcast queues ev for every human in the room.
func (r *Room) broadcast(ev GameEvent) {
	ev.RoomID = r.ID
	ev.Audience = AudienceRoom
	ev.To = r.humanIDs()
	r.out = append(r.out, ev)
}

// sendTo queues ev for a single player. Bots receive nothing.
func (r *Room) sendTo(id uuid.UUID, ev GameEvent) {
	if p := r.player(id); p != nil && p.IsBot {
		return
	}
	ev.RoomID = r.ID
	ev.Audience = AudiencePlayer
	ev.To = []uuid.UUID{id}
	r.out = append(r.out, ev)
}

// reject tells actor why its command was refused.
func (r *Room) reject(actor uuid.UUID, command string, err error) {
	r.sendTo(actor, rejection(r.ID, command, err))
}

func rejection(roomID uuid.UUID, command string, err error) GameEvent {
	return GameEvent{
		Type:     EventActionRejected,
		RoomID:   roomID,
		Audience: AudiencePlayer,
		Payload: map[string]interface{}{
			"command": command,
			"reason":  err.Error(),
		},
	}
}

// drain returns and clears the queued events.
func (r *Room) drain() []GameEvent {
	out := r.out
	r.out = nil
	return out
}

// summary returns the lobby view of the room.
func (r *Room) summary() models.RoomSummary {
	return models.RoomSummary{
		ID:         r.ID,
		Name:       r.Name,
		Players:    len(r.Players),
		MaxPlayers: r.MaxPlayers,
		InProgress: r.Started,
		Private:    r.passwordHash != "",
		Mode:       r.Mode.String(),
	}
}

// close stops the room timer and marks the room for removal.
func (r *Room) close() {
	r.timer.stop()
	r.swap = nil
	r.closed = true
}

// logAction publishes an entry to the action log without blocking the room.
func (r *Room) logAction(actor uuid.UUID, actionType string, payload map[string]interface{}) {
	r.actionIndex++
	if r.actions == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	rec := models.ActionRecord{
		RoomID:      r.ID,
		GameNumber:  r.GameNumber,
		ActionIndex: r.actionIndex,
		ActorID:     actor,
		ActionType:  actionType,
		Payload:     payload,
		Timestamp:   time.Now().UnixMilli(),
	}
	pub, log := r.actions, r.log
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := pub.PublishGameAction(ctx, rec); err != nil {
			log.WithError(err).WithField("action", rec.ActionType).Warn("publish action failed")
		}
	}()
}

// playersPayload lists the seats for players-updated.
func (r *Room) playersPayload() map[string]interface{} {
	seats := make([]map[string]interface{}, len(r.Players))
	for i, p := range r.Players {
		seats[i] = map[string]interface{}{
			"id":           p.ID,
			"name":         p.Name,
			"seat":         i,
			"isBot":        p.IsBot,
			"connected":    p.Connected,
			"rematchReady": p.RematchReady,
			"isHost":       p.ID == r.HostID,
		}
	}
	return map[string]interface{}{
		"players":        seats,
		"hostId":         r.HostID,
		"maxPlayers":     r.MaxPlayers,
		"started":        r.Started,
		"gameNumber":     r.GameNumber,
		"rematchPending": r.timer.kind == TimerRematch,
	}
}

func (r *Room) broadcastPlayers() {
	r.broadcast(GameEvent{Type: EventPlayersUpdated, Payload: r.playersPayload()})
}

// apply runs one command. The caller holds Mu.
func (r *Room) apply(cmd Command) error {
	switch c := cmd.(type) {
	case JoinRoom:
		return r.join(c)
	case LeaveRoom:
		return r.leave(c.Player)
	case AddBot:
		return r.addBot(c.Player)
	case StartGame:
		return r.startByHost(c.Player)
	case PlayCard:
		return r.playByPlayer(c)
	case RequestSwap:
		return r.requestSwap(c.Player)
	case AcceptSwap:
		return r.acceptSwap(c.Player)
	case DeclineSwap:
		return r.declineSwap(c.Player)
	case RequestRematch:
		return r.requestRematch(c.Player)
	case RequestSync:
		if r.seatOf(c.Player) < 0 {
			return ErrNotSeated
		}
		r.sendSync(c.Player)
		return nil
	case Disconnect:
		p := r.player(c.Player)
		if p == nil {
			return ErrNotSeated
		}
		p.Connected = false
		r.broadcastPlayers()
		return nil
	case TimerExpired:
		r.onTimer(c)
		return nil
	}
	return ErrUnknownCommand
}

// onTimer dispatches a timer firing. Stale firings are dropped.
func (r *Room) onTimer(c TimerExpired) {
	if !r.timer.claim(c.Kind, c.Gen) {
		r.log.WithFields(logrus.Fields{"kind": c.Kind.String(), "gen": c.Gen}).Debug("stale timer ignored")
		return
	}
	switch c.Kind {
	case TimerTurnTick:
		r.onTurnTick()
	case TimerBotMove:
		r.botMove()
	case TimerResolve:
		r.resolve()
	case TimerSwapAccept:
		_ = r.completeSwap() // Logged and announced inside.
	case TimerRematch:
		r.startRematch()
	}
}
