package engine

import (
	"fmt"
	"math/rand/v2"
)

// fateTable maps player count to the number of Aces discarded before the deal
// so that the remaining cards split evenly.
var fateTable = map[int]int{
	4:  0,
	5:  2,
	6:  4,
	7:  3,
	8:  4,
	10: 2,
}

// AcesToRemove returns the Fate Rule discard count for n players.
// ok is false when the Fate Rule is undefined for n.
func AcesToRemove(n int) (count int, ok bool) {
	count, ok = fateTable[n]
	return count, ok
}

// SupportedPlayerCounts lists every player count the Fate Rule defines, ascending.
func SupportedPlayerCounts() []int {
	out := make([]int, 0, len(fateTable))
	for n := MinPlayers; n <= MaxPlayers; n++ {
		if _, ok := fateTable[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// ApplyFateRule removes the Fate Rule's quota of Aces from deck, choosing
// uniformly at random among the four. Aces are matched by rank, so the value
// convention of the room is irrelevant. The input slice is not modified.
func ApplyFateRule(deck []Card, n int, rng *rand.Rand) (kept, removed []Card, err error) {
	count, ok := AcesToRemove(n)
	if !ok {
		return nil, nil, fmt.Errorf("%w: fate rule undefined for %d players", ErrInvalidState, n)
	}

	kept = make([]Card, len(deck))
	copy(kept, deck)
	if count == 0 {
		return kept, nil, nil
	}

	aces := make([]Card, 0, NumSuits)
	for _, s := range Suits {
		aces = append(aces, NewCard(s, RankAce))
	}
	Shuffle(aces, rng)

	removed = make([]Card, 0, count)
	for _, ace := range aces[:count] {
		var found bool
		kept, found = removeCard(kept, ace)
		if found {
			removed = append(removed, ace)
		}
	}
	return kept, removed, nil
}
