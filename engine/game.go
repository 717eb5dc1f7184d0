// Package engine implements the Pangkah trick-taking rules.
//
// The package is pure: it owns no goroutines, timers, or I/O. A GameState is
// mutated only through Deal, PlayCard, ResolveTrick and SwapHands, each of
// which validates before touching state. Callers serialize access.
package engine

import (
	"fmt"
	"math/rand/v2"
)

// GameState holds the complete, self-contained state of one Pangkah game.
// Seats are indexed 0..NumPlayers-1 in fixed turn order.
type GameState struct {
	Rules HouseRules

	Hands       [][]Card
	Table       []Play
	LeadSuit    Suit
	CurrentTurn int
	FirstMove   bool
	Discard     []Card
	Removed     []Card // Aces discarded by the Fate Rule.
	Resolving   bool
	FinishOrder []int // Seats in the order their hands emptied.
	Dealt       bool
	Over        bool
	Loser       int // Valid only when Over.
	TrickNumber int

	rng *rand.Rand
}

// DealResult reports where the first turn landed.
type DealResult struct {
	Starter      int
	StarterFound bool // False when no hand held the King of Spades.
}

// NewGame initializes a new GameState with the given seed and rules.
// The deck is built but not yet shuffled or dealt.
func NewGame(seed uint64, rules HouseRules) (*GameState, error) {
	n := rules.NumPlayers
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalidState, MinPlayers, MaxPlayers, n)
	}
	if _, ok := AcesToRemove(n); !ok {
		return nil, fmt.Errorf("%w: fate rule undefined for %d players", ErrInvalidState, n)
	}
	return &GameState{
		Rules:    rules,
		Hands:    make([][]Card, n),
		LeadSuit: SuitNone,
		Loser:    -1,
		rng:      NewRand(seed),
	}, nil
}

// NumPlayers returns the number of seats in this game.
func (g *GameState) NumPlayers() int { return len(g.Hands) }

// Deal shuffles the deck, applies the Fate Rule and distributes equal
// contiguous slices to every seat. The King of Spades holder gets the first turn.
func (g *GameState) Deal() (DealResult, error) {
	n := g.NumPlayers()
	deck := BuildShuffledDeck(g.rng)
	kept, removed, err := ApplyFateRule(deck, n, g.rng)
	if err != nil {
		return DealResult{}, err
	}

	per := len(kept) / n
	for p := 0; p < n; p++ {
		hand := make([]Card, per)
		copy(hand, kept[p*per:(p+1)*per])
		g.Hands[p] = hand
	}

	g.Removed = removed
	g.Table = nil
	g.Discard = nil
	g.LeadSuit = SuitNone
	g.FinishOrder = nil
	g.Resolving = false
	g.Over = false
	g.Loser = -1
	g.TrickNumber = 1
	g.FirstMove = true
	g.Dealt = true

	res := DealResult{Starter: 0}
	for p, hand := range g.Hands {
		if containsCard(hand, KingOfSpades) {
			res.Starter = p
			res.StarterFound = true
			break
		}
	}
	g.CurrentTurn = res.Starter
	return res, nil
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// Stage derives the state-machine stage from the flags.
func (g *GameState) Stage() Stage {
	switch {
	case !g.Dealt:
		return StageNotDealt
	case g.Over:
		return StageGameOver
	case g.Resolving:
		return StageResolving
	case g.FirstMove:
		return StageAwaitingFirstMove
	default:
		return StageInTrick
	}
}

// AceHigh reports the room's value convention.
func (g *GameState) AceHigh() bool { return g.Rules.AceHigh() }

// Value returns c's strength under this game's convention.
func (g *GameState) Value(c Card) int { return c.Value(g.AceHigh()) }

// Hand returns the cards held by seat. The slice must not be mutated.
func (g *GameState) Hand(seat int) []Card {
	if seat < 0 || seat >= len(g.Hands) {
		return nil
	}
	return g.Hands[seat]
}

// HandSizes returns the number of cards each seat holds.
func (g *GameState) HandSizes() []int {
	out := make([]int, len(g.Hands))
	for i, h := range g.Hands {
		out[i] = len(h)
	}
	return out
}

// CardsInHands returns the total number of cards held across all seats.
func (g *GameState) CardsInHands() int {
	n := 0
	for _, h := range g.Hands {
		n += len(h)
	}
	return n
}

// CardCount returns hands + table + discard + removed. Always DeckSize once dealt.
func (g *GameState) CardCount() int {
	return g.CardsInHands() + len(g.Table) + len(g.Discard) + len(g.Removed)
}

// HasPlayed reports whether seat already has a card on the current table.
func (g *GameState) HasPlayed(seat int) bool {
	for _, p := range g.Table {
		if p.Seat == seat {
			return true
		}
	}
	return false
}

// IsFinished reports whether seat is already in the finish order.
func (g *GameState) IsFinished(seat int) bool {
	for _, s := range g.FinishOrder {
		if s == seat {
			return true
		}
	}
	return false
}

// ActiveSeats returns seats that still hold cards, in turn order.
func (g *GameState) ActiveSeats() []int {
	out := make([]int, 0, len(g.Hands))
	for i, h := range g.Hands {
		if len(h) > 0 {
			out = append(out, i)
		}
	}
	return out
}

// NextActiveSeat returns the first seat after from (in turn order) that still
// holds cards. ok is false if no other seat does.
func (g *GameState) NextActiveSeat(from int) (int, bool) {
	n := g.NumPlayers()
	for step := 1; step < n; step++ {
		s := (from + step) % n
		if len(g.Hands[s]) > 0 {
			return s, true
		}
	}
	return -1, false
}

// SeatsBeforeNextTurn returns the active seats that act after seat and before
// seat's next turn, nearest first.
func (g *GameState) SeatsBeforeNextTurn(seat int) []int {
	n := g.NumPlayers()
	out := make([]int, 0, n-1)
	for step := 1; step < n; step++ {
		s := (seat + step) % n
		if len(g.Hands[s]) > 0 {
			out = append(out, s)
		}
	}
	return out
}
