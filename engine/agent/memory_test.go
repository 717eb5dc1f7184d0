package agent

import (
	"testing"

	engine "github.com/jason-s-yu/pangkah/engine"
)

func TestObservePlayRecordsVoidOnPangkah(t *testing.T) {
	m := NewMemory(4)
	m.ObservePlay(engine.PlayOutcome{Seat: 0, Card: mustCard(t, "5H"), LeadSuit: engine.SuitHearts, Lead: true})
	m.ObservePlay(engine.PlayOutcome{Seat: 1, Card: mustCard(t, "2C"), LeadSuit: engine.SuitHearts, Pangkah: true})

	if !m.KnownVoid(1, engine.SuitHearts) {
		t.Error("seat 1 not recorded void in Hearts")
	}
	if m.KnownVoid(0, engine.SuitHearts) || m.KnownVoid(1, engine.SuitClubs) {
		t.Error("unexpected void facts recorded")
	}
	if len(m.Played()) != 2 {
		t.Errorf("Played = %v, want 2 plays", m.Played())
	}
	if got := m.VoidSuits(1); len(got) != 1 || got[0] != engine.SuitHearts {
		t.Errorf("VoidSuits(1) = %v", got)
	}
}

func TestObserveTrickTalliesCleanDiscards(t *testing.T) {
	m := NewMemory(4)
	m.ObserveTrick(engine.TrickResult{
		LeadSuit:    engine.SuitSpades,
		PangkahSeat: -1,
		Cards: []engine.Play{
			{Seat: 0, Card: mustCard(t, "KS")},
			{Seat: 1, Card: mustCard(t, "2S")},
			{Seat: 2, Card: mustCard(t, "9S")},
			{Seat: 3, Card: mustCard(t, "QS")},
		},
	})
	if got := m.Discarded(engine.SuitSpades); got != 4 {
		t.Errorf("Discarded(S) = %d, want 4", got)
	}

	m.ObserveTrick(engine.TrickResult{
		LeadSuit:    engine.SuitDiamonds,
		Pangkah:     true,
		PangkahSeat: 2,
		Cards: []engine.Play{
			{Seat: 1, Card: mustCard(t, "4D")},
			{Seat: 2, Card: mustCard(t, "7C")},
		},
	})
	if m.Discarded(engine.SuitDiamonds) != 0 {
		t.Error("pangkah trick counted as discarded")
	}
	if !m.KnownVoid(2, engine.SuitDiamonds) {
		t.Error("pangkah trick did not record void")
	}
}

func TestMemoryIgnoresOutOfRange(t *testing.T) {
	m := NewMemory(4)
	m.MarkVoid(9, engine.SuitHearts)
	m.MarkVoid(0, engine.SuitNone)
	if m.KnownVoid(9, engine.SuitHearts) || m.KnownVoid(0, engine.SuitNone) {
		t.Error("out-of-range facts recorded")
	}
}

// TestMemoryScopedToOneGame plays a pangkah in one game, then redeals as a
// rematch would: the void fact must not survive.
func TestMemoryScopedToOneGame(t *testing.T) {
	g, err := engine.NewGame(3, engine.HouseRules{Mode: engine.RulePangkah, NumPlayers: 4})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMemory(4)
	if _, err := g.Deal(); err != nil {
		t.Fatal(err)
	}
	m.Reset(g.NumPlayers())
	gameOne := m.Game

	m.MarkVoid(2, engine.SuitClubs)
	m.ObservePlay(engine.PlayOutcome{Seat: 0, Card: engine.KingOfSpades, LeadSuit: engine.SuitSpades, Lead: true})

	if _, err := g.Deal(); err != nil {
		t.Fatal(err)
	}
	m.Reset(g.NumPlayers())

	if m.Game != gameOne+1 {
		t.Errorf("Game = %d, want %d", m.Game, gameOne+1)
	}
	for seat := 0; seat < 4; seat++ {
		if len(m.VoidSuits(seat)) != 0 {
			t.Errorf("seat %d void facts leaked into next game: %v", seat, m.VoidSuits(seat))
		}
	}
	if len(m.Played()) != 0 {
		t.Error("play log leaked into next game")
	}
}

func TestDetectPhase(t *testing.T) {
	tests := []struct {
		cards int
		want  Phase
	}{
		{52, PhaseEarly},
		{37, PhaseEarly}, // 71%
		{36, PhaseMid},   // 69%
		{19, PhaseMid},   // 36.5%
		{18, PhaseLate},  // 34.6%
		{0, PhaseLate},
	}
	for _, tt := range tests {
		if got := DetectPhase(tt.cards); got != tt.want {
			t.Errorf("DetectPhase(%d) = %s, want %s", tt.cards, got, tt.want)
		}
	}
}
