package engine

import "math/rand/v2"

// NewDeck returns the 52 standard cards ordered by suit then rank.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := RankAce; r <= RankKing; r++ {
			deck = append(deck, NewCard(s, r))
		}
	}
	return deck
}

// Shuffle permutes deck in place with an unbiased Fisher-Yates pass.
func Shuffle(deck []Card, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// BuildShuffledDeck returns a freshly shuffled 52-card deck.
func BuildShuffledDeck(rng *rand.Rand) []Card {
	deck := NewDeck()
	Shuffle(deck, rng)
	return deck
}

// NewRand returns the PCG source used for every engine shuffle.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// removeCard returns hand without the first occurrence of c, and whether c was found.
func removeCard(hand []Card, c Card) ([]Card, bool) {
	for i, h := range hand {
		if h == c {
			return append(hand[:i], hand[i+1:]...), true
		}
	}
	return hand, false
}

// containsCard reports whether hand holds c.
func containsCard(hand []Card, c Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// countSuit returns how many cards of suit s are in hand.
func countSuit(hand []Card, s Suit) int {
	n := 0
	for _, c := range hand {
		if c.Suit() == s {
			n++
		}
	}
	return n
}
