// internal/game/play.go
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/pangkah/engine"
	"github.com/jason-s-yu/pangkah/engine/agent"
	"github.com/jason-s-yu/pangkah/service/internal/models"
	"github.com/sirupsen/logrus"
)

// beginTurn announces the seat to act and arms the matching timer: a bot
// move delay for bots, the per-second countdown for humans.
func (r *Room) beginTurn() {
	g := r.Game
	if g == nil || g.IsTerminal() || g.Resolving {
		return
	}
	r.TurnID++
	seat := g.CurrentTurn
	p := r.Players[seat]

	payload := map[string]interface{}{
		"turnId":    r.TurnID,
		"firstMove": g.FirstMove,
		"isBot":     p.IsBot,
		"trick":     g.TrickNumber,
	}
	if g.LeadSuit != engine.SuitNone {
		payload["leadSuit"] = g.LeadSuit.String()
	}
	r.broadcast(GameEvent{Type: EventTurnAdvanced, User: r.eventUser(seat), Payload: payload})

	if p.IsBot {
		r.secondsLeft = 0
		r.timer.start(r.timing.BotDelay, TimerBotMove)
		return
	}
	r.secondsLeft = r.timing.turnSeconds()
	if r.secondsLeft == 0 {
		r.timer.stop()
		return
	}
	r.emitTick()
	r.timer.start(r.timing.Tick, TimerTurnTick)
}

func (r *Room) emitTick() {
	r.broadcast(GameEvent{
		Type: EventTurnTimerTick,
		User: r.eventUser(r.Game.CurrentTurn),
		Payload: map[string]interface{}{
			"secondsLeft": r.secondsLeft,
			"turnId":      r.TurnID,
		},
	})
}

func (r *Room) onTurnTick() {
	if r.Game == nil || r.Game.IsTerminal() || r.Game.Resolving {
		return
	}
	r.secondsLeft--
	r.emitTick()
	if r.secondsLeft > 0 {
		r.timer.start(r.timing.Tick, TimerTurnTick)
		return
	}
	r.autoPlay()
}

// autoPlay commits the fallback card for a seat whose countdown ran out.
func (r *Room) autoPlay() {
	g := r.Game
	seat := g.CurrentTurn
	card := g.FallbackCard(seat)
	if card == engine.NoCard {
		r.log.WithField("seat", seat).Error("turn expired on an empty hand")
		return
	}
	r.log.WithFields(logrus.Fields{"seat": seat, "card": card.String()}).Info("turn expired; playing fallback")
	if err := r.commitPlay(seat, card, uuid.Nil, "timeout"); err != nil {
		r.log.WithError(err).Error("fallback card rejected")
	}
}

func (r *Room) botMove() {
	g := r.Game
	if g == nil || g.IsTerminal() || g.Resolving {
		return
	}
	seat := g.CurrentTurn
	card := agent.Decide(agent.ViewOf(g, seat), r.Memory, r.rng)
	if err := g.ValidatePlay(seat, card); err != nil {
		r.log.WithError(err).WithField("seat", seat).Warn("bot chose an unplayable card; using fallback")
		card = g.FallbackCard(seat)
	}
	if err := r.commitPlay(seat, card, uuid.Nil, "bot"); err != nil {
		r.log.WithError(err).WithField("seat", seat).Error("bot move rejected")
	}
}

func (r *Room) playByPlayer(c PlayCard) error {
	if !r.Started || r.Game == nil {
		return ErrNotStarted
	}
	seat := r.seatOf(c.Player)
	if seat < 0 || r.Players[seat].IsBot {
		return ErrNotSeated
	}
	card, err := engine.ParseCard(c.Card)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrIllegalMove, err)
	}
	return r.commitPlay(seat, card, c.Player, "player")
}

// commitPlay is the single path every card takes onto the table, whoever
// chose it. Nothing changes when the engine rejects the card.
func (r *Room) commitPlay(seat int, card engine.Card, actor uuid.UUID, source string) error {
	g := r.Game
	out, err := g.PlayCard(seat, card)
	if err != nil {
		return err
	}
	if r.swap != nil && r.swap.Requester == seat {
		r.cancelSwap("requester played")
	}
	r.timer.stop()

	r.Players[seat].Stats.CardsPlayed++
	r.Memory.ObservePlay(out)

	wire := models.NewCard(card, g.AceHigh())
	r.broadcast(GameEvent{
		Type: EventTableUpdated,
		User: r.eventUser(seat),
		Card: &wire,
		Payload: map[string]interface{}{
			"table":    r.obfPlays(g.Table),
			"leadSuit": out.LeadSuit.String(),
			"lead":     out.Lead,
			"pangkah":  out.Pangkah,
			"handSize": len(g.Hands[seat]),
			"source":   source,
		},
	})
	r.logAction(actor, "play", map[string]interface{}{
		"seat":    seat,
		"card":    card.String(),
		"pangkah": out.Pangkah,
		"source":  source,
	})

	if out.Resolve {
		r.timer.start(r.timing.ResolveDelay, TimerResolve)
		return nil
	}
	r.beginTurn()
	return nil
}

// resolve settles the trick once the resolution delay has elapsed.
func (r *Room) resolve() {
	g := r.Game
	if g == nil {
		return
	}
	res, err := g.ResolveTrick()
	if err != nil {
		r.log.WithError(err).Error("trick resolution failed")
		return
	}
	if res.Anomaly {
		r.log.WithFields(logrus.Fields{
			"trick":    res.Trick,
			"leadSuit": res.LeadSuit.String(),
		}).Warn("no lead-suit card on the table; first play takes the trick")
	}

	if res.Pangkah {
		if res.PangkahSeat >= 0 {
			r.Players[res.PangkahSeat].Stats.PangkahsDealt++
		}
		r.Players[res.Winner].Stats.PangkahsReceived++
	} else {
		for _, pl := range res.Cards {
			r.Players[pl.Seat].Stats.CleanRounds++
		}
	}
	r.Memory.ObserveTrick(res)

	finished := make([]uuid.UUID, len(res.Finished))
	for i, s := range res.Finished {
		finished[i] = r.Players[s].ID
	}
	r.broadcast(GameEvent{
		Type: EventRoundCleared,
		User: r.eventUser(res.Winner),
		Payload: map[string]interface{}{
			"trick":       res.Trick,
			"winner":      res.Winner,
			"pangkah":     res.Pangkah,
			"pangkahSeat": res.PangkahSeat,
			"cards":       r.obfPlays(res.Cards),
			"finished":    finished,
			"nextLeader":  res.NextLeader,
			"handSizes":   g.HandSizes(),
		},
	})
	r.logAction(uuid.Nil, "resolve", map[string]interface{}{
		"trick":   res.Trick,
		"winner":  res.Winner,
		"pangkah": res.Pangkah,
	})

	if res.GameOver {
		r.finishGame()
		return
	}
	r.beginTurn()
}

// finishGame publishes the final standings and frees the room for a rematch.
func (r *Room) finishGame() {
	g := r.Game
	r.timer.stop()
	r.swap = nil
	r.Started = false

	stats := make(map[string]models.PlayerStats, len(r.Players))
	for seat, p := range r.Players {
		p.Stats.Position = g.Position(seat)
		if p.IsBot {
			p.RematchReady = true
		}
		stats[p.ID.String()] = p.Stats
	}
	order := make([]uuid.UUID, 0, len(g.FinishOrder)+1)
	for _, s := range g.FinishOrder {
		order = append(order, r.Players[s].ID)
	}
	var loserID uuid.UUID
	if g.Loser >= 0 {
		loserID = r.Players[g.Loser].ID
		order = append(order, loserID)
	}

	r.broadcast(GameEvent{
		Type: EventGameOver,
		User: r.eventUser(g.Loser),
		Payload: map[string]interface{}{
			"loser":       g.Loser,
			"loserId":     loserID,
			"finishOrder": order,
			"stats":       stats,
			"tricks":      g.TrickNumber - 1,
			"gameNumber":  r.GameNumber,
		},
	})
	r.broadcastPlayers()
	r.log.WithFields(logrus.Fields{"game": r.GameNumber, "loser": g.Loser}).Info("game over")
	r.logAction(uuid.Nil, "game-over", map[string]interface{}{"loser": g.Loser})
	r.recordResult()
	r.maybeRematch()
}

// recordResult hands the human tallies to the results store in the background.
func (r *Room) recordResult() {
	if r.recorder == nil {
		return
	}
	g := r.Game
	res := models.GameResult{
		RoomID:     r.ID,
		GameNumber: r.GameNumber,
		NumPlayers: g.NumPlayers(),
		Mode:       r.Mode.String(),
		Tricks:     g.TrickNumber - 1,
		EndedAt:    time.Now().UnixMilli(),
	}
	for seat, p := range r.Players {
		if p.IsBot {
			continue
		}
		res.Players = append(res.Players, models.PlayerResult{
			PlayerID: p.ID,
			Name:     p.Name,
			Loser:    seat == g.Loser,
			Stats:    p.Stats,
		})
	}
	if len(res.Players) == 0 {
		return
	}

	rec, log := r.recorder, r.log
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rec.RecordGameResult(ctx, res); err != nil {
			log.WithError(err).Warn("failed to record game result")
		}
	}()
}
