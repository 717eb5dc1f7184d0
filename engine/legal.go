package engine

// ValidatePlay checks whether seat may play card right now.
// Checks run in a fixed order and nothing is mutated:
//  1. the round is resolving
//  2. it is not seat's turn
//  3. card is not in seat's hand
//  4. first move of the game must be the King of Spades
//  5. must follow the lead suit when able
func (g *GameState) ValidatePlay(seat int, card Card) error {
	if !g.Dealt {
		return errNotDealt
	}
	if g.Over {
		return errGameOver
	}
	if g.Resolving {
		return errResolving
	}
	if seat < 0 || seat >= g.NumPlayers() {
		return errBadSeat
	}
	if seat != g.CurrentTurn {
		return errNotYourTurn
	}
	if !card.Valid() {
		return errInvalidCard
	}
	hand := g.Hands[seat]
	if !containsCard(hand, card) {
		return errCardNotHeld
	}
	if g.FirstMove {
		if card != KingOfSpades {
			return errFirstMove
		}
		return nil
	}
	if len(g.Table) > 0 && card.Suit() != g.LeadSuit && countSuit(hand, g.LeadSuit) > 0 {
		return errMustFollow
	}
	return nil
}

// LegalCards returns every card seat may legally play now, in hand order.
// Empty when it is not seat's turn.
func (g *GameState) LegalCards(seat int) []Card {
	if seat < 0 || seat >= g.NumPlayers() {
		return nil
	}
	var out []Card
	for _, c := range g.Hands[seat] {
		if g.ValidatePlay(seat, c) == nil {
			out = append(out, c)
		}
	}
	return out
}

// trickComplete reports whether every seat that can act this trick has acted:
// |table| >= |{seats with cards} ∪ {seats that played}|.
func (g *GameState) trickComplete() bool {
	participants := 0
	for seat, hand := range g.Hands {
		if len(hand) > 0 || g.HasPlayed(seat) {
			participants++
		}
	}
	return len(g.Table) >= participants
}

// nextToAct returns the next seat after from that still holds cards and has
// not yet played this trick.
func (g *GameState) nextToAct(from int) (int, bool) {
	n := g.NumPlayers()
	for step := 1; step <= n; step++ {
		s := (from + step) % n
		if len(g.Hands[s]) > 0 && !g.HasPlayed(s) {
			return s, true
		}
	}
	return -1, false
}
