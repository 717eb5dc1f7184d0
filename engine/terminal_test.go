package engine

import (
	"errors"
	"testing"
)

func TestSingleSurvivorLoses(t *testing.T) {
	g := newTableGame(t, RulePangkah, "2S", "3S", "4S", "5S 6S")
	for seat, c := range []string{"2S", "3S", "4S", "5S"} {
		if _, err := g.PlayCard(seat, card(t, c)); err != nil {
			t.Fatal(err)
		}
	}
	res, err := g.ResolveTrick()
	if err != nil {
		t.Fatal(err)
	}
	if !res.GameOver || res.Loser != 3 {
		t.Fatalf("GameOver=%v Loser=%d, want true,3", res.GameOver, res.Loser)
	}
	if res.NextLeader != -1 {
		t.Errorf("NextLeader = %d after game over", res.NextLeader)
	}
	if got := len(g.FinishOrder); got != g.NumPlayers()-1 {
		t.Errorf("finish order length %d, want %d", got, g.NumPlayers()-1)
	}
	for seat, want := range []int{1, 2, 3, 4} {
		if got := g.Position(seat); got != want {
			t.Errorf("Position(%d) = %d, want %d", seat, got, want)
		}
	}
	if !g.IsTerminal() || g.Stage() != StageGameOver {
		t.Error("game not terminal")
	}
	if _, err := g.PlayCard(3, card(t, "6S")); !errors.Is(err, errGameOver) {
		t.Errorf("play after game over err = %v", err)
	}
}

// TestAllHandsEmptyTrickWinnerLoses covers a clean trick that consumes every
// remaining card: the trick winner takes the last place.
func TestAllHandsEmptyTrickWinnerLoses(t *testing.T) {
	g := newTableGame(t, RulePangkah, "2S", "5S", "9S", "3S")
	for seat, c := range []string{"2S", "5S", "9S", "3S"} {
		if _, err := g.PlayCard(seat, card(t, c)); err != nil {
			t.Fatal(err)
		}
	}
	res, err := g.ResolveTrick()
	if err != nil {
		t.Fatal(err)
	}
	if !res.GameOver || res.Loser != 2 {
		t.Fatalf("GameOver=%v Loser=%d, want true,2", res.GameOver, res.Loser)
	}
	want := []int{0, 1, 3}
	if len(g.FinishOrder) != len(want) {
		t.Fatalf("FinishOrder = %v, want %v", g.FinishOrder, want)
	}
	for i := range want {
		if g.FinishOrder[i] != want[i] {
			t.Errorf("FinishOrder = %v, want %v", g.FinishOrder, want)
			break
		}
	}
	for _, s := range res.Finished {
		if s == 2 {
			t.Error("loser reported as finished")
		}
	}
}

func TestFinishOrderNeverDuplicates(t *testing.T) {
	g := newTableGame(t, RulePangkah, "", "3S 7H", "4S", "5S 6S")
	g.FinishOrder = []int{0}
	g.CurrentTurn = 1

	if g.markFinished(0) {
		t.Error("already finished seat appended again")
	}
	if g.markFinished(1) {
		t.Error("seat with cards marked finished")
	}
	if len(g.FinishOrder) != 1 {
		t.Errorf("FinishOrder = %v", g.FinishOrder)
	}
}
