// Package agent implements the bot player: per-game table memory, game-phase
// detection and the card-choice policy.
package agent

import engine "github.com/jason-s-yu/pangkah/engine"

// Memory is what the bots at one table have observed during the current game.
// A room owns exactly one Memory and resets it on every deal.
type Memory struct {
	// Game counts resets, so a stale Memory is easy to spot in logs.
	Game int

	void      [][engine.NumSuits]bool
	played    []engine.Play
	discarded [engine.NumSuits]int
}

// NewMemory returns an empty Memory for a table of numSeats.
func NewMemory(numSeats int) *Memory {
	m := &Memory{}
	m.Reset(numSeats)
	return m
}

// Reset forgets everything learned in the previous game.
func (m *Memory) Reset(numSeats int) {
	m.Game++
	m.void = make([][engine.NumSuits]bool, numSeats)
	m.played = nil
	m.discarded = [engine.NumSuits]int{}
}

// ObservePlay records a committed play. A pangkah marks the seat void in the
// lead suit for the rest of the game.
func (m *Memory) ObservePlay(out engine.PlayOutcome) {
	m.played = append(m.played, engine.Play{Seat: out.Seat, Card: out.Card})
	if out.Pangkah {
		m.MarkVoid(out.Seat, out.LeadSuit)
	}
}

// ObserveTrick records a resolved trick. Clean rounds remove their cards from
// play, so they count toward the per-suit discard tally.
func (m *Memory) ObserveTrick(res engine.TrickResult) {
	if res.Pangkah {
		m.MarkVoid(res.PangkahSeat, res.LeadSuit)
		return
	}
	for _, p := range res.Cards {
		if s := p.Card.Suit(); s < engine.NumSuits {
			m.discarded[s]++
		}
	}
}

// MarkVoid records that seat holds no cards of suit. Facts are never retracted
// within a game.
func (m *Memory) MarkVoid(seat int, suit engine.Suit) {
	if seat < 0 || seat >= len(m.void) || suit >= engine.NumSuits {
		return
	}
	m.void[seat][suit] = true
}

// KnownVoid reports whether seat has been seen breaking suit on suit.
func (m *Memory) KnownVoid(seat int, suit engine.Suit) bool {
	if seat < 0 || seat >= len(m.void) || suit >= engine.NumSuits {
		return false
	}
	return m.void[seat][suit]
}

// VoidSuits lists the suits seat is known to lack.
func (m *Memory) VoidSuits(seat int) []engine.Suit {
	var out []engine.Suit
	for _, s := range engine.Suits {
		if m.KnownVoid(seat, s) {
			out = append(out, s)
		}
	}
	return out
}

// Played returns every play observed this game, oldest first.
func (m *Memory) Played() []engine.Play { return m.played }

// Discarded returns how many cards of suit left play through clean rounds.
func (m *Memory) Discarded(suit engine.Suit) int {
	if suit >= engine.NumSuits {
		return 0
	}
	return m.discarded[suit]
}
