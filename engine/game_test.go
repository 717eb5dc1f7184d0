package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// parseCards parses a space-separated card list such as "KS 10H 2C".
func parseCards(t *testing.T, s string) []Card {
	t.Helper()
	var out []Card
	for _, f := range strings.Fields(s) {
		c, err := ParseCard(f)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", f, err)
		}
		out = append(out, c)
	}
	return out
}

// newTableGame returns a dealt game past the first move with the given hands.
// Seat 0 is to act and the table is empty.
func newTableGame(t *testing.T, mode RuleMode, hands ...string) *GameState {
	t.Helper()
	g, err := NewGame(1, HouseRules{Mode: mode, NumPlayers: len(hands)})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	for i, h := range hands {
		g.Hands[i] = parseCards(t, h)
	}
	g.Dealt = true
	g.TrickNumber = 1
	g.CurrentTurn = 0
	return g
}

// newDealtGame returns a freshly dealt game for n players.
func newDealtGame(t *testing.T, seed uint64, n int) *GameState {
	t.Helper()
	g, err := NewGame(seed, HouseRules{Mode: RulePangkah, NumPlayers: n})
	if err != nil {
		t.Fatalf("NewGame(%d players): %v", n, err)
	}
	if _, err := g.Deal(); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	return g
}

// snapshot renders every mutable field so two states can be compared.
func snapshot(g *GameState) string {
	return fmt.Sprint(g.Hands, g.Table, g.LeadSuit, g.CurrentTurn, g.FirstMove,
		g.Discard, g.Resolving, g.FinishOrder, g.Over, g.TrickNumber)
}

func TestNewGameRejectsPlayerCount(t *testing.T) {
	for _, n := range []int{0, 3, 9, 11} {
		_, err := NewGame(1, HouseRules{NumPlayers: n})
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("NewGame(%d players) err = %v, want ErrInvalidState", n, err)
		}
	}
}

func TestDealEvenHands(t *testing.T) {
	for _, n := range SupportedPlayerCounts() {
		t.Run(fmt.Sprintf("%dp", n), func(t *testing.T) {
			g := newDealtGame(t, 7, n)
			aces, _ := AcesToRemove(n)
			want := (DeckSize - aces) / n

			seen := make(map[Card]bool)
			for seat, hand := range g.Hands {
				if len(hand) != want {
					t.Errorf("seat %d holds %d cards, want %d", seat, len(hand), want)
				}
				for _, c := range hand {
					if seen[c] {
						t.Errorf("duplicate card %s", c)
					}
					seen[c] = true
				}
			}
			if len(g.Removed) != aces {
				t.Errorf("removed %d aces, want %d", len(g.Removed), aces)
			}
			if got := g.CardCount(); got != DeckSize {
				t.Errorf("CardCount = %d, want %d", got, DeckSize)
			}
			if g.Stage() != StageAwaitingFirstMove {
				t.Errorf("Stage = %s, want awaiting_first_move", g.Stage())
			}
			if !containsCard(g.Hand(g.CurrentTurn), KingOfSpades) {
				t.Errorf("starter seat %d does not hold KS", g.CurrentTurn)
			}
		})
	}
}

func TestDealDeterministicPerSeed(t *testing.T) {
	a := newDealtGame(t, 99, 5)
	b := newDealtGame(t, 99, 5)
	if snapshot(a) != snapshot(b) {
		t.Error("same seed produced different deals")
	}
	c := newDealtGame(t, 100, 5)
	if snapshot(a) == snapshot(c) {
		t.Error("different seeds produced identical deals")
	}
}

func TestRedealResetsState(t *testing.T) {
	g := newDealtGame(t, 3, 4)
	if _, err := g.PlayCard(g.CurrentTurn, KingOfSpades); err != nil {
		t.Fatalf("PlayCard KS: %v", err)
	}
	if _, err := g.Deal(); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	if len(g.Table) != 0 || len(g.Discard) != 0 || len(g.FinishOrder) != 0 {
		t.Errorf("redeal left table=%v discard=%v finish=%v", g.Table, g.Discard, g.FinishOrder)
	}
	if !g.FirstMove || g.TrickNumber != 1 {
		t.Errorf("FirstMove=%v TrickNumber=%d after redeal", g.FirstMove, g.TrickNumber)
	}
}

func TestNextActiveSeatSkipsEmptyHands(t *testing.T) {
	g := newTableGame(t, RulePangkah, "2S", "", "", "3S")
	if s, ok := g.NextActiveSeat(0); !ok || s != 3 {
		t.Errorf("NextActiveSeat(0) = %d,%v, want 3,true", s, ok)
	}
	if s, ok := g.NextActiveSeat(3); !ok || s != 0 {
		t.Errorf("NextActiveSeat(3) = %d,%v, want 0,true", s, ok)
	}

	g = newTableGame(t, RulePangkah, "2S", "", "", "")
	if _, ok := g.NextActiveSeat(0); ok {
		t.Error("NextActiveSeat found a seat when only the caller holds cards")
	}
}

func TestSeatsBeforeNextTurn(t *testing.T) {
	g := newTableGame(t, RulePangkah, "2S", "3S", "", "4S", "5S")
	got := fmt.Sprint(g.SeatsBeforeNextTurn(3))
	if got != "[4 0 1]" {
		t.Errorf("SeatsBeforeNextTurn(3) = %s, want [4 0 1]", got)
	}
}
