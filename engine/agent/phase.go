package agent

import engine "github.com/jason-s-yu/pangkah/engine"

// Phase is the coarse progress of a game, judged by cards still in hands.
type Phase uint8

const (
	PhaseEarly Phase = iota // more than 70% of the deck in hands
	PhaseMid                // 35-70%
	PhaseLate               // below 35%
)

func (p Phase) String() string {
	switch p {
	case PhaseEarly:
		return "early"
	case PhaseMid:
		return "mid"
	default:
		return "late"
	}
}

// DetectPhase classifies cardsInHands against the full 52-card deck.
func DetectPhase(cardsInHands int) Phase {
	pct := cardsInHands * 100
	switch {
	case pct > 70*engine.DeckSize:
		return PhaseEarly
	case pct < 35*engine.DeckSize:
		return PhaseLate
	default:
		return PhaseMid
	}
}
