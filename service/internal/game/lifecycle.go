// internal/game/lifecycle.go
package game

import (
	"fmt"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/pangkah/engine"
	"github.com/jason-s-yu/pangkah/engine/agent"
	"github.com/jason-s-yu/pangkah/service/internal/auth"
	"github.com/jason-s-yu/pangkah/service/internal/models"
	"github.com/sirupsen/logrus"
)

// join seats a player, or reconnects one who already holds a seat.
func (r *Room) join(c JoinRoom) error {
	if p := r.player(c.Player); p != nil {
		p.Connected = true
		if !r.Started && p.IsBot {
			// Seat was handed to a bot during the last game; take it back.
			p.IsBot = false
			p.RematchReady = false
		}
		if c.PlayerName != "" && !p.IsBot {
			p.Name = c.PlayerName
		}
		r.broadcastPlayers()
		r.sendSync(c.Player)
		return nil
	}

	if r.passwordHash != "" && !auth.CheckPassword(r.passwordHash, c.Password) {
		return ErrBadPassword
	}
	if r.Started {
		return ErrAlreadyStarted
	}
	if len(r.Players) >= r.MaxPlayers {
		return ErrRoomFull
	}

	name := c.PlayerName
	if name == "" {
		name = fmt.Sprintf("Player %d", len(r.Players)+1)
	}
	r.Players = append(r.Players, &models.Player{ID: c.Player, Name: name, Connected: true})
	if r.HostID == uuid.Nil {
		r.HostID = c.Player
	}
	if r.timer.kind == TimerRematch {
		// The newcomer has not agreed to the rematch yet.
		r.timer.stop()
	}
	r.log.WithField("player", c.Player).Info("player joined")
	r.broadcastPlayers()
	r.sendSync(c.Player)
	return nil
}

// leave removes a player. Mid-game the seat is handed to a bot so the
// rotation keeps its shape.
func (r *Room) leave(id uuid.UUID) error {
	seat := r.seatOf(id)
	if seat < 0 {
		return ErrNotSeated
	}
	p := r.Players[seat]

	if r.Started {
		p.IsBot = true
		p.Connected = false
		p.RematchReady = true
		r.log.WithField("seat", seat).Info("player left; bot takes over")
		if r.swap != nil {
			switch {
			case r.swap.RequesterID == id:
				r.swap = nil
				r.timer.stop()
				r.broadcast(GameEvent{Type: EventSwapDeclined, User: r.eventUser(seat),
					Payload: map[string]interface{}{"reason": "requester left"}})
				r.beginTurn()
			case r.swap.TargetID == id:
				r.timer.start(r.timing.SwapBotDelay, TimerSwapAccept)
			}
		} else if r.Game != nil && r.Game.CurrentTurn == seat && !r.Game.Resolving {
			r.beginTurn()
		}
	} else {
		r.Players = append(r.Players[:seat], r.Players[seat+1:]...)
		r.seatsMoved = r.Game != nil
		r.log.WithField("player", id).Info("player left")
	}

	if r.HostID == id {
		r.HostID = uuid.Nil
		for _, q := range r.Players {
			if !q.IsBot {
				r.HostID = q.ID
				break
			}
		}
	}
	if r.HostID == uuid.Nil {
		r.log.Info("no humans left; closing room")
		r.close()
		return nil
	}
	if !r.Started {
		r.maybeRematch()
	}
	r.broadcastPlayers()
	return nil
}

func (r *Room) addBot(actor uuid.UUID) error {
	if actor != r.HostID {
		return ErrNotHost
	}
	if r.Started {
		return ErrAlreadyStarted
	}
	if len(r.Players) >= r.MaxPlayers {
		return ErrRoomFull
	}
	r.botCount++
	bot := &models.Player{
		ID:           uuid.New(),
		Name:         fmt.Sprintf("Bot %d", r.botCount),
		IsBot:        true,
		Connected:    true,
		RematchReady: true,
	}
	r.Players = append(r.Players, bot)
	r.broadcastPlayers()
	return nil
}

func (r *Room) startByHost(actor uuid.UUID) error {
	if actor != r.HostID {
		return ErrNotHost
	}
	if r.Started {
		return ErrAlreadyStarted
	}
	return r.startGame()
}

// checkPlayerCount reports whether the seated count can be dealt.
func (r *Room) checkPlayerCount() error {
	n := len(r.Players)
	if n < engine.MinPlayers {
		return ErrNotEnoughPlayers
	}
	if _, ok := engine.AcesToRemove(n); !ok || n > engine.MaxPlayers {
		return ErrPlayerCount
	}
	return nil
}

// startGame deals a fresh game and hands the first turn out.
func (r *Room) startGame() error {
	if err := r.checkPlayerCount(); err != nil {
		return err
	}
	n := len(r.Players)
	if r.ShuffleSeats {
		r.rng.Shuffle(n, func(i, j int) { r.Players[i], r.Players[j] = r.Players[j], r.Players[i] })
	}

	g, err := engine.NewGame(r.rng.Uint64(), engine.HouseRules{Mode: r.Mode, NumPlayers: n})
	if err != nil {
		return err
	}
	deal, err := g.Deal()
	if err != nil {
		return err
	}
	if !deal.StarterFound {
		r.log.Warn("no hand holds the King of Spades; seat 0 starts")
	}

	r.Game = g
	if r.Memory == nil {
		r.Memory = agent.NewMemory(n)
	} else {
		r.Memory.Reset(n)
	}
	r.GameNumber++
	r.Started = true
	r.seatsMoved = false
	r.swap = nil
	r.actionIndex = 0
	for _, p := range r.Players {
		p.Stats = models.PlayerStats{}
		p.RematchReady = false
	}

	r.log.WithFields(logrus.Fields{
		"game":    r.GameNumber,
		"players": n,
		"starter": deal.Starter,
		"removed": len(g.Removed),
		"mode":    r.Mode.String(),
	}).Info("game started")

	aceHigh := g.AceHigh()
	removed := models.NewCards(g.Removed, aceHigh)
	for seat, p := range r.Players {
		r.sendTo(p.ID, GameEvent{
			Type: EventGameInitialized,
			User: r.eventUser(seat),
			Payload: map[string]interface{}{
				"seat":       seat,
				"hand":       models.NewCards(g.Hand(seat), aceHigh),
				"starter":    deal.Starter,
				"removed":    removed,
				"gameNumber": r.GameNumber,
				"mode":       r.Mode.String(),
				"handSizes":  g.HandSizes(),
			},
		})
	}
	r.broadcastPlayers()
	r.logAction(uuid.Nil, "deal", map[string]interface{}{"starter": deal.Starter, "removed": len(g.Removed)})
	r.beginTurn()
	return nil
}

func (r *Room) requestRematch(id uuid.UUID) error {
	p := r.player(id)
	if p == nil {
		return ErrNotSeated
	}
	if r.Started {
		return ErrAlreadyStarted
	}
	if r.Game == nil {
		return ErrNotStarted
	}
	p.RematchReady = true
	r.maybeRematch()
	r.broadcastPlayers()
	return nil
}

// maybeRematch schedules the next game once every seat is ready.
func (r *Room) maybeRematch() {
	if r.Started || r.Game == nil || !r.Game.IsTerminal() {
		return
	}
	for _, p := range r.Players {
		if !p.RematchReady {
			return
		}
	}
	if r.checkPlayerCount() != nil {
		return
	}
	if r.timer.kind == TimerRematch {
		return
	}
	r.log.WithField("delay", r.timing.RematchDelay).Info("all seats ready; rematch scheduled")
	r.timer.start(r.timing.RematchDelay, TimerRematch)
}

func (r *Room) startRematch() {
	if err := r.startGame(); err != nil {
		r.log.WithError(err).Warn("rematch did not start")
	}
}
