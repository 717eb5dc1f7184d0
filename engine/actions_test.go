package engine

import (
	"errors"
	"testing"
)

func card(t *testing.T, s string) Card {
	t.Helper()
	return parseCards(t, s)[0]
}

// TestResolvePangkahTableGoesToHighestLead uses a table of
// [(0,5H),(1,2C),(2,KH)] with Hearts led: seat 2 holds the highest Heart and
// absorbs all three cards.
func TestResolvePangkahTableGoesToHighestLead(t *testing.T) {
	g := newTableGame(t, RulePangkah, "7S 8S", "9D", "3S", "4D 5D")
	g.Table = []Play{
		{Seat: 0, Card: card(t, "5H")},
		{Seat: 1, Card: card(t, "2C")},
		{Seat: 2, Card: card(t, "KH")},
	}
	g.LeadSuit = SuitHearts
	g.Resolving = true
	total := g.CardCount()

	res, err := g.ResolveTrick()
	if err != nil {
		t.Fatalf("ResolveTrick: %v", err)
	}
	if !res.Pangkah || res.PangkahSeat != 1 {
		t.Errorf("Pangkah=%v PangkahSeat=%d, want true,1", res.Pangkah, res.PangkahSeat)
	}
	if res.Winner != 2 {
		t.Errorf("Winner = %d, want 2", res.Winner)
	}
	if got := len(g.Hand(2)); got != 4 {
		t.Errorf("seat 2 holds %d cards, want 1+3", got)
	}
	for _, c := range parseCards(t, "5H 2C KH") {
		if !containsCard(g.Hand(2), c) {
			t.Errorf("seat 2 missing absorbed %s", c)
		}
	}
	if len(g.Discard) != 0 {
		t.Errorf("pangkah discarded %v", g.Discard)
	}
	if res.NextLeader != 2 || g.CurrentTurn != 2 {
		t.Errorf("next leader %d / turn %d, want 2", res.NextLeader, g.CurrentTurn)
	}
	if g.CardCount() != total {
		t.Errorf("CardCount %d -> %d", total, g.CardCount())
	}
	if g.Table != nil || g.LeadSuit != SuitNone || g.Resolving {
		t.Error("table not reset after resolution")
	}
}

func TestPangkahShortCircuitsTrick(t *testing.T) {
	g := newTableGame(t, RulePangkah, "5H 7S", "2C 9D", "KH 3S", "4D")

	out, err := g.PlayCard(0, card(t, "5H"))
	if err != nil || out.Resolve || out.NextTurn != 1 {
		t.Fatalf("lead: out=%+v err=%v", out, err)
	}
	out, err = g.PlayCard(1, card(t, "2C"))
	if err != nil {
		t.Fatalf("pangkah play: %v", err)
	}
	if !out.Pangkah || !out.Resolve || out.NextTurn != -1 {
		t.Fatalf("pangkah outcome = %+v", out)
	}
	if g.Stage() != StageResolving {
		t.Errorf("Stage = %s, want resolving", g.Stage())
	}
	if _, err := g.PlayCard(2, card(t, "KH")); !errors.Is(err, errResolving) {
		t.Errorf("play while resolving err = %v", err)
	}

	res, err := g.ResolveTrick()
	if err != nil {
		t.Fatal(err)
	}
	if res.Winner != 0 || len(g.Hand(0)) != 3 {
		t.Errorf("winner %d holds %d, want seat 0 with 3", res.Winner, len(g.Hand(0)))
	}
}

func TestCleanTrickDiscards(t *testing.T) {
	g := newTableGame(t, RulePangkah, "4S 2H", "9S 3H", "JS 4H", "6S 5H")
	total := g.CardCount()

	for seat, c := range []string{"4S", "9S", "JS", "6S"} {
		out, err := g.PlayCard(seat, card(t, c))
		if err != nil {
			t.Fatalf("seat %d %s: %v", seat, c, err)
		}
		if out.Pangkah {
			t.Fatalf("seat %d flagged pangkah", seat)
		}
	}
	if !g.Resolving {
		t.Fatal("trick not complete after four follows")
	}
	res, err := g.ResolveTrick()
	if err != nil {
		t.Fatal(err)
	}
	if res.Pangkah || res.PangkahSeat != -1 {
		t.Error("clean trick reported pangkah")
	}
	if res.Winner != 2 || res.NextLeader != 2 {
		t.Errorf("winner=%d leader=%d, want 2", res.Winner, res.NextLeader)
	}
	if len(g.Discard) != 4 {
		t.Errorf("discard = %d, want 4", len(g.Discard))
	}
	if g.TrickNumber != 2 || g.CardCount() != total {
		t.Errorf("trick=%d count=%d", g.TrickNumber, g.CardCount())
	}
}

func TestAceConventionDecidesWinner(t *testing.T) {
	for _, tt := range []struct {
		mode RuleMode
		want int
	}{
		{RulePangkah, 1}, // KH beats AH
		{RulePenalty, 0}, // AH beats KH
	} {
		g := newTableGame(t, tt.mode, "AH 2S", "KH 3S", "2H 4S", "3H 5S")
		for seat, c := range []string{"AH", "KH", "2H", "3H"} {
			if _, err := g.PlayCard(seat, card(t, c)); err != nil {
				t.Fatal(err)
			}
		}
		res, err := g.ResolveTrick()
		if err != nil {
			t.Fatal(err)
		}
		if res.Winner != tt.want {
			t.Errorf("%s: winner %d, want %d", tt.mode, res.Winner, tt.want)
		}
	}
}

func TestTrickSkipsFinishedSeats(t *testing.T) {
	g := newTableGame(t, RulePangkah, "4S 2H", "", "JS 4H", "6S 5H")
	g.FinishOrder = []int{1}

	out, err := g.PlayCard(0, card(t, "4S"))
	if err != nil {
		t.Fatal(err)
	}
	if out.NextTurn != 2 {
		t.Errorf("NextTurn = %d, want 2", out.NextTurn)
	}
	if _, err := g.PlayCard(2, card(t, "JS")); err != nil {
		t.Fatal(err)
	}
	out, err = g.PlayCard(3, card(t, "6S"))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Resolve {
		t.Error("three of three participants played but trick not complete")
	}
}

func TestLastCardFinishesAtResolution(t *testing.T) {
	g := newTableGame(t, RulePangkah, "4S 2H", "9S", "JS 4H", "6S 5H")

	for seat, c := range []string{"4S", "9S", "JS"} {
		if _, err := g.PlayCard(seat, card(t, c)); err != nil {
			t.Fatal(err)
		}
	}
	if len(g.FinishOrder) != 0 {
		t.Error("seat recorded as finished before resolution")
	}
	// Seat 1 is empty but still counts as a participant until the trick ends.
	if g.Resolving {
		t.Fatal("trick resolved before seat 3 played")
	}
	if _, err := g.PlayCard(3, card(t, "6S")); err != nil {
		t.Fatal(err)
	}
	res, err := g.ResolveTrick()
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Finished) != 1 || res.Finished[0] != 1 {
		t.Errorf("Finished = %v, want [1]", res.Finished)
	}
	if len(g.FinishOrder) != 1 || g.FinishOrder[0] != 1 {
		t.Errorf("FinishOrder = %v, want [1]", g.FinishOrder)
	}
}

func TestEmptyWinnerPassesLead(t *testing.T) {
	g := newTableGame(t, RulePangkah, "4S 2H", "KS", "JS 4H", "6S 5H")
	for seat, c := range []string{"4S", "KS", "JS", "6S"} {
		if _, err := g.PlayCard(seat, card(t, c)); err != nil {
			t.Fatal(err)
		}
	}
	res, err := g.ResolveTrick()
	if err != nil {
		t.Fatal(err)
	}
	if res.Winner != 1 || res.NextLeader != 2 {
		t.Errorf("winner=%d leader=%d, want 1 then 2", res.Winner, res.NextLeader)
	}
}

func TestResolveAnomalyFallsBackToFirstEntry(t *testing.T) {
	g := newTableGame(t, RulePangkah, "2D", "3D", "4D", "5D")
	g.Table = []Play{
		{Seat: 3, Card: card(t, "9C")},
		{Seat: 0, Card: card(t, "KC")},
	}
	g.LeadSuit = SuitHearts
	g.Resolving = true

	res, err := g.ResolveTrick()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Anomaly || res.Winner != 3 {
		t.Errorf("Anomaly=%v Winner=%d, want true,3", res.Anomaly, res.Winner)
	}
}

func TestResolveRequiresResolvingTrick(t *testing.T) {
	g := newTableGame(t, RulePangkah, "2D", "3D", "4D", "5D")
	if _, err := g.ResolveTrick(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}

	fresh, _ := NewGame(1, DefaultHouseRules())
	if _, err := fresh.ResolveTrick(); !errors.Is(err, errNotDealt) {
		t.Errorf("undealt err = %v", err)
	}
}
