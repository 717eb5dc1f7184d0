package engine

// FallbackCard picks the card played on seat's behalf when its turn times out:
//   - the King of Spades on the first move of the game
//   - else the highest card of the lead suit, if any is held
//   - else the lowest-value card in hand
//
// Every choice is legal under ValidatePlay. Returns NoCard for an empty hand.
func (g *GameState) FallbackCard(seat int) Card {
	hand := g.Hand(seat)
	if len(hand) == 0 {
		return NoCard
	}
	if g.FirstMove && containsCard(hand, KingOfSpades) {
		return KingOfSpades
	}
	if len(g.Table) > 0 {
		if c, ok := g.highestOfSuit(hand, g.LeadSuit); ok {
			return c
		}
	}
	return g.lowest(hand)
}

// highestOfSuit returns the strongest card of suit s in hand.
func (g *GameState) highestOfSuit(hand []Card, s Suit) (Card, bool) {
	best, found := NoCard, false
	for _, c := range hand {
		if c.Suit() != s {
			continue
		}
		if !found || g.Value(c) > g.Value(best) {
			best, found = c, true
		}
	}
	return best, found
}

// lowest returns the weakest card in hand; the earliest wins ties.
func (g *GameState) lowest(hand []Card) Card {
	best := hand[0]
	for _, c := range hand[1:] {
		if g.Value(c) < g.Value(best) {
			best = c
		}
	}
	return best
}
