// internal/game/swap.go
package game

import (
	"github.com/google/uuid"
)

// requestSwap asks the next active seat to hand its cards to the player whose
// turn it is. Bot targets accept after SwapBotDelay.
func (r *Room) requestSwap(id uuid.UUID) error {
	if !r.Started || r.Game == nil {
		return ErrNotStarted
	}
	seat := r.seatOf(id)
	if seat < 0 || r.Players[seat].IsBot {
		return ErrNotSeated
	}
	if r.swap != nil {
		return ErrSwapPending
	}
	target, err := r.Game.SwapTarget(seat)
	if err != nil {
		return err
	}

	t := r.Players[target]
	r.swap = &pendingSwap{
		Requester:   seat,
		Target:      target,
		RequesterID: id,
		TargetID:    t.ID,
	}
	r.broadcast(GameEvent{
		Type: EventSwapRequested,
		User: r.eventUser(seat),
		Payload: map[string]interface{}{
			"target":     target,
			"targetId":   t.ID,
			"targetName": t.Name,
		},
	})
	r.logAction(id, "swap-request", map[string]interface{}{"seat": seat, "target": target})

	if t.IsBot {
		r.timer.start(r.timing.SwapBotDelay, TimerSwapAccept)
	}
	return nil
}

func (r *Room) acceptSwap(id uuid.UUID) error {
	if r.swap == nil || r.swap.TargetID != id {
		return ErrNoSwapPending
	}
	return r.completeSwap()
}

func (r *Room) declineSwap(id uuid.UUID) error {
	if r.swap == nil || r.swap.TargetID != id {
		return ErrNoSwapPending
	}
	s := r.swap
	r.swap = nil
	r.broadcast(GameEvent{
		Type: EventSwapDeclined,
		User: r.eventUser(s.Target),
		Payload: map[string]interface{}{
			"requester":   s.Requester,
			"requesterId": s.RequesterID,
		},
	})
	r.logAction(id, "swap-decline", map[string]interface{}{"seat": s.Target})
	return nil
}

// cancelSwap drops the pending request, e.g. when the requester plays instead.
func (r *Room) cancelSwap(reason string) {
	s := r.swap
	if s == nil {
		return
	}
	r.swap = nil
	r.broadcast(GameEvent{
		Type: EventSwapDeclined,
		User: r.eventUser(s.Target),
		Payload: map[string]interface{}{
			"requester":   s.Requester,
			"requesterId": s.RequesterID,
			"reason":      reason,
		},
	})
}

// completeSwap moves the target's hand to the requester. The turn stays with
// the requester, who now plays from the combined hand.
func (r *Room) completeSwap() error {
	s := r.swap
	if s == nil {
		return ErrNoSwapPending
	}
	r.swap = nil

	res, err := r.Game.SwapHands(s.Requester, s.Target)
	if err != nil {
		r.log.WithError(err).Warn("swap no longer valid")
		r.broadcast(GameEvent{
			Type: EventSwapDeclined,
			User: r.eventUser(s.Target),
			Payload: map[string]interface{}{
				"requester":   s.Requester,
				"requesterId": s.RequesterID,
				"reason":      err.Error(),
			},
		})
		// A human target answers while the requester's countdown runs on.
		if r.timer.kind != TimerTurnTick {
			r.beginTurn()
		}
		return err
	}
	r.timer.stop()

	r.broadcast(GameEvent{
		Type: EventSwapOccurred,
		User: r.eventUser(s.Requester),
		Payload: map[string]interface{}{
			"target":         s.Target,
			"targetId":       s.TargetID,
			"moved":          res.Moved,
			"targetFinished": res.TargetFinished,
			"handSizes":      r.Game.HandSizes(),
		},
	})
	r.sendSync(s.RequesterID)
	r.logAction(s.TargetID, "swap", map[string]interface{}{
		"seat":   s.Requester,
		"target": s.Target,
		"moved":  res.Moved,
	})

	if res.GameOver {
		r.finishGame()
		return nil
	}
	r.beginTurn()
	return nil
}
