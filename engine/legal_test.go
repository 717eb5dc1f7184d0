package engine

import (
	"errors"
	"testing"
)

func TestFirstMoveMustBeKingOfSpades(t *testing.T) {
	g := newDealtGame(t, 42, 4)
	starter := g.CurrentTurn

	var other Card
	for _, c := range g.Hand(starter) {
		if c != KingOfSpades {
			other = c
			break
		}
	}
	err := g.ValidatePlay(starter, other)
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("first move %s err = %v, want ErrIllegalMove", other, err)
	}

	if _, err := g.PlayCard(starter, KingOfSpades); err != nil {
		t.Fatalf("PlayCard KS: %v", err)
	}
	if g.FirstMove {
		t.Error("FirstMove still set after KS")
	}
	if g.LeadSuit != SuitSpades {
		t.Errorf("LeadSuit = %s, want S", g.LeadSuit)
	}
}

func TestMustFollowSuit(t *testing.T) {
	g := newTableGame(t, RulePangkah,
		"5H 2C",
		"9H 3S 4D 7C",
		"KH",
		"QH",
	)
	if _, err := g.PlayCard(0, parseCards(t, "5H")[0]); err != nil {
		t.Fatalf("lead: %v", err)
	}
	for _, off := range parseCards(t, "3S 4D 7C") {
		_, err := g.PlayCard(1, off)
		if !errors.Is(err, ErrIllegalMove) || !errors.Is(err, errMustFollow) {
			t.Errorf("off-suit %s err = %v, want must-follow", off, err)
		}
	}
	if _, err := g.PlayCard(1, parseCards(t, "9H")[0]); err != nil {
		t.Errorf("following 9H: %v", err)
	}
}

func TestValidatePlayOrder(t *testing.T) {
	g := newTableGame(t, RulePangkah, "5H 2C", "9H", "KH", "QH")

	if err := g.ValidatePlay(1, parseCards(t, "9H")[0]); !errors.Is(err, errNotYourTurn) {
		t.Errorf("wrong turn err = %v", err)
	}
	if err := g.ValidatePlay(0, parseCards(t, "AS")[0]); !errors.Is(err, errCardNotHeld) {
		t.Errorf("card not held err = %v", err)
	}
	if err := g.ValidatePlay(0, NoCard); !errors.Is(err, errInvalidCard) {
		t.Errorf("invalid card err = %v", err)
	}
	if err := g.ValidatePlay(7, parseCards(t, "5H")[0]); !errors.Is(err, ErrInvalidState) {
		t.Errorf("bad seat err = %v", err)
	}

	g.Resolving = true
	if err := g.ValidatePlay(0, parseCards(t, "5H")[0]); !errors.Is(err, errResolving) {
		t.Errorf("resolving err = %v", err)
	}
}

func TestIllegalMoveIsIdempotent(t *testing.T) {
	g := newTableGame(t, RulePangkah, "5H 2C", "9H 3S", "KH", "QH")
	if _, err := g.PlayCard(0, parseCards(t, "5H")[0]); err != nil {
		t.Fatal(err)
	}

	before := snapshot(g)
	off := parseCards(t, "3S")[0]
	_, first := g.PlayCard(1, off)
	for i := 0; i < 5; i++ {
		_, err := g.PlayCard(1, off)
		if err != first {
			t.Fatalf("attempt %d err = %v, want %v", i, err, first)
		}
	}
	if snapshot(g) != before {
		t.Error("rejected play mutated state")
	}
}

func TestLegalCards(t *testing.T) {
	g := newTableGame(t, RulePangkah, "5H 2C", "9H 3S JH", "4D 6C", "QH")
	if _, err := g.PlayCard(0, parseCards(t, "5H")[0]); err != nil {
		t.Fatal(err)
	}
	if got := g.LegalCards(1); len(got) != 2 {
		t.Errorf("LegalCards(1) = %v, want the two hearts", got)
	}
	if got := g.LegalCards(2); len(got) != 0 {
		t.Errorf("LegalCards(2) = %v off-turn, want none", got)
	}
}
