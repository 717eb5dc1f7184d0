package engine

// PlayOutcome describes the effect of a committed play.
type PlayOutcome struct {
	Seat     int
	Card     Card
	Lead     bool // First card of the trick.
	LeadSuit Suit
	Pangkah  bool // Off-suit play by a seat void in the lead suit.
	Resolve  bool // The trick must now be resolved.
	NextTurn int  // -1 while resolving.
}

// TrickResult describes a resolved trick.
type TrickResult struct {
	Trick       int
	LeadSuit    Suit
	Cards       []Play
	Winner      int  // Holder of the highest lead-suit card.
	Pangkah     bool // Winner absorbed the table.
	PangkahSeat int  // Seat that broke suit, -1 on a clean round.
	Finished    []int
	Anomaly     bool // No lead-suit card was on the table; first entry used.
	GameOver    bool
	Loser       int // -1 unless GameOver.
	NextLeader  int // -1 when GameOver.
}

// PlayCard validates and commits card for seat.
//
// A pangkah short-circuits the trick: it goes to resolution immediately even if
// not every seat has played. Otherwise the trick resolves once every seat that
// can act has acted, and until then the turn passes to the next such seat.
func (g *GameState) PlayCard(seat int, card Card) (PlayOutcome, error) {
	if err := g.ValidatePlay(seat, card); err != nil {
		return PlayOutcome{}, err
	}

	g.Hands[seat], _ = removeCard(g.Hands[seat], card)
	lead := len(g.Table) == 0
	g.Table = append(g.Table, Play{Seat: seat, Card: card})
	if lead {
		g.LeadSuit = card.Suit()
	}
	g.FirstMove = false

	out := PlayOutcome{
		Seat:     seat,
		Card:     card,
		Lead:     lead,
		LeadSuit: g.LeadSuit,
		Pangkah:  card.Suit() != g.LeadSuit,
		NextTurn: -1,
	}

	if out.Pangkah || g.trickComplete() {
		g.Resolving = true
		out.Resolve = true
		return out, nil
	}

	next, ok := g.nextToAct(seat)
	if !ok {
		g.Resolving = true
		out.Resolve = true
		return out, nil
	}
	g.CurrentTurn = next
	out.NextTurn = next
	return out, nil
}

// ResolveTrick settles the trick on the table. It reads only Table and
// LeadSuit, so the outcome does not depend on timing. Any off-suit card on the
// table makes the trick a pangkah.
//
// On a pangkah the winner absorbs every table card into hand; on a clean
// round the table goes to the discard pile.
func (g *GameState) ResolveTrick() (TrickResult, error) {
	if !g.Dealt {
		return TrickResult{}, errNotDealt
	}
	if g.Over {
		return TrickResult{}, errGameOver
	}
	if !g.Resolving || len(g.Table) == 0 {
		return TrickResult{}, errNotResolving
	}

	cards := make([]Play, len(g.Table))
	copy(cards, g.Table)

	res := TrickResult{
		Trick:       g.TrickNumber,
		LeadSuit:    g.LeadSuit,
		Cards:       cards,
		PangkahSeat: -1,
		Loser:       -1,
		NextLeader:  -1,
	}

	winner, found := g.trickWinner()
	res.Winner = winner
	res.Anomaly = !found

	for _, p := range cards {
		if p.Card.Suit() != g.LeadSuit {
			res.Pangkah = true
			res.PangkahSeat = p.Seat
			break
		}
	}

	played := make([]Card, len(cards))
	for i, p := range cards {
		played[i] = p.Card
	}
	if res.Pangkah {
		g.Hands[winner] = append(g.Hands[winner], played...)
	} else {
		g.Discard = append(g.Discard, played...)
	}

	for _, p := range cards {
		if g.markFinished(p.Seat) {
			res.Finished = append(res.Finished, p.Seat)
		}
	}

	g.Table = nil
	g.LeadSuit = SuitNone
	g.Resolving = false
	g.TrickNumber++

	if over, loser := g.settle(winner); over {
		res.GameOver = true
		res.Loser = loser
		res.Finished = withoutSeat(res.Finished, loser)
		return res, nil
	}

	leader := winner
	if len(g.Hands[leader]) == 0 {
		leader, _ = g.NextActiveSeat(winner)
	}
	g.CurrentTurn = leader
	res.NextLeader = leader
	return res, nil
}

// trickWinner returns the seat holding the highest lead-suit card on the table.
// found is false if no lead-suit card is present, in which case the first
// table entry is returned.
func (g *GameState) trickWinner() (seat int, found bool) {
	best := -1
	seat = g.Table[0].Seat
	for _, p := range g.Table {
		if p.Card.Suit() != g.LeadSuit {
			continue
		}
		if v := g.Value(p.Card); v > best {
			best = v
			seat = p.Seat
			found = true
		}
	}
	return seat, found
}
