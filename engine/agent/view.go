package agent

import engine "github.com/jason-s-yu/pangkah/engine"

// View is the part of the table a bot may look at when choosing a card.
type View struct {
	Seat         int
	Hand         []engine.Card
	Table        []engine.Play
	LeadSuit     engine.Suit
	FirstMove    bool
	AceHigh      bool
	CardsInHands int
	Removed      []engine.Card
	// Downstream lists the active seats that act after Seat and before its
	// next turn, nearest first.
	Downstream []int
}

// ViewOf builds seat's View of g.
func ViewOf(g *engine.GameState, seat int) View {
	return View{
		Seat:         seat,
		Hand:         g.Hand(seat),
		Table:        g.Table,
		LeadSuit:     g.LeadSuit,
		FirstMove:    g.FirstMove,
		AceHigh:      g.AceHigh(),
		CardsInHands: g.CardsInHands(),
		Removed:      g.Removed,
		Downstream:   g.SeatsBeforeNextTurn(seat),
	}
}

// Phase returns the game phase as seen from this view.
func (v View) Phase() Phase { return DetectPhase(v.CardsInHands) }

func (v View) value(c engine.Card) int { return c.Value(v.AceHigh) }

// suitCards returns the held cards of suit s.
func (v View) suitCards(s engine.Suit) []engine.Card {
	var out []engine.Card
	for _, c := range v.Hand {
		if c.Suit() == s {
			out = append(out, c)
		}
	}
	return out
}

// tablePeak returns the highest lead-suit value on the table, or 0.
func (v View) tablePeak() int {
	peak := 0
	for _, p := range v.Table {
		if p.Card.Suit() == v.LeadSuit && v.value(p.Card) > peak {
			peak = v.value(p.Card)
		}
	}
	return peak
}
