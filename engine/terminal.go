package engine

// IsTerminal returns true when the game is over.
func (g *GameState) IsTerminal() bool { return g.Over }

// markFinished appends seat to the finish order if its hand is empty and it
// has not been recorded yet. Returns true if it was appended.
func (g *GameState) markFinished(seat int) bool {
	if len(g.Hands[seat]) > 0 || g.IsFinished(seat) {
		return false
	}
	g.FinishOrder = append(g.FinishOrder, seat)
	return true
}

// settle ends the game when at most one seat still holds cards.
//
// With exactly one survivor, that seat is the loser. If every hand emptied at
// once (a clean round that consumed every remaining card), fallback is the
// loser and is taken back out of the finish order, so the finish order always
// ends with NumPlayers-1 entries.
func (g *GameState) settle(fallback int) (over bool, loser int) {
	active := g.ActiveSeats()
	switch len(active) {
	case 0:
		loser = fallback
		g.FinishOrder = withoutSeat(g.FinishOrder, loser)
	case 1:
		loser = active[0]
	default:
		return false, -1
	}
	g.Over = true
	g.Loser = loser
	g.Resolving = false
	return true, loser
}

// Position returns seat's final placing (1 = first to finish). The loser is
// placed last. Returns 0 while the seat is still in play.
func (g *GameState) Position(seat int) int {
	for i, s := range g.FinishOrder {
		if s == seat {
			return i + 1
		}
	}
	if g.Over && seat == g.Loser {
		return g.NumPlayers()
	}
	return 0
}

// withoutSeat returns seats with every occurrence of seat removed.
func withoutSeat(seats []int, seat int) []int {
	out := seats[:0]
	for _, s := range seats {
		if s != seat {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
