package agent

import (
	"math/rand/v2"

	engine "github.com/jason-s-yu/pangkah/engine"
)

// Decide returns the card the bot in v plays next. The choice is always legal
// for v. rng only breaks ties between equally good cards. Returns
// engine.NoCard for an empty hand.
func Decide(v View, m *Memory, rng *rand.Rand) engine.Card {
	if len(v.Hand) == 0 {
		return engine.NoCard
	}
	if v.FirstMove {
		for _, c := range v.Hand {
			if c == engine.KingOfSpades {
				return c
			}
		}
	}
	if len(v.Table) > 0 {
		if follow := v.suitCards(v.LeadSuit); len(follow) > 0 {
			return decideFollow(v, follow)
		}
		return decideBreak(v, rng)
	}
	return decideLead(v, m, rng)
}

// decideFollow ducks under the table's peak with the highest card that stays
// below it. Holding only cards above the peak, it plays the lowest of them.
func decideFollow(v View, follow []engine.Card) engine.Card {
	peak := v.tablePeak()
	var below []engine.Card
	for _, c := range follow {
		if v.value(c) < peak {
			below = append(below, c)
		}
	}
	if len(below) > 0 {
		return highest(v, below)
	}
	return lowest(v, follow)
}

// decideBreak picks the card for a forced pangkah: clear a singleton suit if
// there is one, else dump the highest card.
func decideBreak(v View, rng *rand.Rand) engine.Card {
	var singles []engine.Card
	for _, s := range engine.Suits {
		if cs := v.suitCards(s); len(cs) == 1 {
			singles = append(singles, cs[0])
		}
	}
	if len(singles) > 0 {
		return pick(rng, topByValue(v, singles))
	}
	return pick(rng, topByValue(v, v.Hand))
}

// decideLead chooses the opening card of a trick.
func decideLead(v View, m *Memory, rng *rand.Rand) engine.Card {
	if v.Phase() == PhaseLate {
		if s, ok := safestSuit(v, m); ok {
			return lowest(v, v.suitCards(s))
		}
	} else if s, ok := baitSuit(v, m); ok {
		return lowest(v, v.suitCards(s))
	}
	return pick(rng, bottomByValue(v, v.Hand))
}

// baitSuit returns a held suit that some downstream opponent is known to lack.
// The suit whose first void seat sits farthest downstream wins, so more seats
// must follow before the break lands.
func baitSuit(v View, m *Memory) (engine.Suit, bool) {
	if m == nil {
		return engine.SuitNone, false
	}
	best, bestDist := engine.SuitNone, -1
	for _, s := range engine.Suits {
		if len(v.suitCards(s)) == 0 {
			continue
		}
		for dist, seat := range v.Downstream {
			if m.KnownVoid(seat, s) {
				if dist > bestDist {
					best, bestDist = s, dist
				}
				break
			}
		}
	}
	return best, bestDist >= 0
}

// safestSuit returns the held suit with the most cards still live in other
// hands: 13 less what was discarded, held, fate-removed or is on the table.
func safestSuit(v View, m *Memory) (engine.Suit, bool) {
	best, bestLive := engine.SuitNone, -1
	for _, s := range engine.Suits {
		own := len(v.suitCards(s))
		if own == 0 {
			continue
		}
		live := 13 - own - countSuit(v.Removed, s)
		for _, p := range v.Table {
			if p.Card.Suit() == s {
				live--
			}
		}
		if m != nil {
			live -= m.Discarded(s)
		}
		if live > bestLive {
			best, bestLive = s, live
		}
	}
	return best, bestLive >= 0
}

func countSuit(cards []engine.Card, s engine.Suit) int {
	n := 0
	for _, c := range cards {
		if c.Suit() == s {
			n++
		}
	}
	return n
}

func highest(v View, cards []engine.Card) engine.Card { return topByValue(v, cards)[0] }

func lowest(v View, cards []engine.Card) engine.Card { return bottomByValue(v, cards)[0] }

// topByValue returns every card sharing the highest value, in input order.
func topByValue(v View, cards []engine.Card) []engine.Card {
	var out []engine.Card
	best := -1
	for _, c := range cards {
		switch val := v.value(c); {
		case val > best:
			best = val
			out = append(out[:0], c)
		case val == best:
			out = append(out, c)
		}
	}
	return out
}

// bottomByValue returns every card sharing the lowest value, in input order.
func bottomByValue(v View, cards []engine.Card) []engine.Card {
	var out []engine.Card
	best := 1 << 30
	for _, c := range cards {
		switch val := v.value(c); {
		case val < best:
			best = val
			out = append(out[:0], c)
		case val == best:
			out = append(out, c)
		}
	}
	return out
}

func pick(rng *rand.Rand, cards []engine.Card) engine.Card {
	if len(cards) == 1 || rng == nil {
		return cards[0]
	}
	return cards[rng.IntN(len(cards))]
}
