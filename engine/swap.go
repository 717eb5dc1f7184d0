package engine

// SwapResult describes a completed hand absorption.
type SwapResult struct {
	Requester      int
	Target         int
	Moved          int
	TargetFinished bool
	GameOver       bool
	Loser          int // -1 unless GameOver.
}

// SwapTarget returns the seat requester may absorb: the next seat in turn
// order that still holds cards. Only the seat whose turn it is may swap, and
// not while that seat has a card on the table.
func (g *GameState) SwapTarget(requester int) (int, error) {
	if !g.Dealt {
		return -1, errNotDealt
	}
	if g.Over {
		return -1, errGameOver
	}
	if g.Resolving {
		return -1, errResolving
	}
	if requester < 0 || requester >= g.NumPlayers() {
		return -1, errBadSeat
	}
	if requester != g.CurrentTurn {
		return -1, errNotYourTurn
	}
	if len(g.Hands[requester]) == 0 {
		return -1, errEmptyHand
	}
	target, ok := g.NextActiveSeat(requester)
	if !ok {
		return -1, errNoSwapTarget
	}
	if g.HasPlayed(target) {
		return -1, errTargetPlayed
	}
	return target, nil
}

// SwapHands moves target's whole hand into requester's hand. target must still
// be requester's swap target; the negotiation may have taken a while.
// The emptied target is recorded as finished, and the game ends if requester
// is now the only seat holding cards.
func (g *GameState) SwapHands(requester, target int) (SwapResult, error) {
	want, err := g.SwapTarget(requester)
	if err != nil {
		return SwapResult{}, err
	}
	if target != want {
		return SwapResult{}, errSwapTarget
	}

	moved := g.Hands[target]
	g.Hands[requester] = append(g.Hands[requester], moved...)
	g.Hands[target] = nil

	res := SwapResult{
		Requester: requester,
		Target:    target,
		Moved:     len(moved),
		Loser:     -1,
	}
	res.TargetFinished = g.markFinished(target)

	if over, loser := g.settle(requester); over {
		res.GameOver = true
		res.Loser = loser
	}
	return res, nil
}
