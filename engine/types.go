package engine

import (
	"fmt"
	"strings"
)

// Suit identifies one of the four French suits.
type Suit uint8

// Suit constants, packed into the upper 4 bits of a Card.
const (
	SuitSpades   Suit = 0
	SuitHearts   Suit = 1
	SuitDiamonds Suit = 2
	SuitClubs    Suit = 3

	// SuitNone marks "no lead suit yet". Never packed into a Card.
	SuitNone Suit = 0x0F
)

// NumSuits is the number of real suits.
const NumSuits = 4

// Suits lists the real suits in canonical order.
var Suits = [NumSuits]Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// String returns the single-letter suit code used on the wire.
func (s Suit) String() string {
	switch s {
	case SuitSpades:
		return "S"
	case SuitHearts:
		return "H"
	case SuitDiamonds:
		return "D"
	case SuitClubs:
		return "C"
	default:
		return "-"
	}
}

// Symbol returns the unicode pip for the suit.
func (s Suit) Symbol() string {
	switch s {
	case SuitSpades:
		return "♠"
	case SuitHearts:
		return "♥"
	case SuitDiamonds:
		return "♦"
	case SuitClubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank is the face of a card. Ace is 1, King is 13.
type Rank uint8

// Rank constants, packed into the lower 4 bits of a Card.
const (
	RankAce   Rank = 1
	RankTwo   Rank = 2
	RankThree Rank = 3
	RankFour  Rank = 4
	RankFive  Rank = 5
	RankSix   Rank = 6
	RankSeven Rank = 7
	RankEight Rank = 8
	RankNine  Rank = 9
	RankTen   Rank = 10
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
)

// String returns the rank code used on the wire ("A", "2".."10", "J", "Q", "K").
func (r Rank) String() string {
	switch r {
	case RankAce:
		return "A"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	}
	if r >= RankTwo && r <= RankTen {
		return fmt.Sprintf("%d", uint8(r))
	}
	return "?"
}

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
// Cards are values, so the same logical card moves hand → table → hand/discard
// without any identity bookkeeping.
type Card uint8

// NoCard represents the absence of a card.
const NoCard Card = 0xFF

// KingOfSpades opens every game.
var KingOfSpades = NewCard(SuitSpades, RankKing)

// NewCard constructs a Card from suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card((uint8(suit) << 4) | (uint8(rank) & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() Suit { return Suit(uint8(c) >> 4) }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() Rank { return Rank(uint8(c) & 0x0F) }

// Value returns the ordinal strength of the card.
//   - Ace-low (Pangkah mode): A=1, 2..10 face value, J=11, Q=12, K=13
//   - Ace-high (Penalty mode): as above but A=14
func (c Card) Value(aceHigh bool) int {
	r := c.Rank()
	if r == RankAce && aceHigh {
		return 14
	}
	return int(r)
}

// Valid reports whether c encodes a real card.
func (c Card) Valid() bool {
	return c.Suit() < NumSuits && c.Rank() >= RankAce && c.Rank() <= RankKing
}

// String renders a card as rank followed by suit letter, e.g. "KS", "10H".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// Pretty renders a card with its suit pip, e.g. "K♠".
func (c Card) Pretty() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().Symbol()
}

// ParseCard parses the wire form produced by String. "T" is accepted for ten.
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return NoCard, fmt.Errorf("invalid card %q", s)
	}
	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	var suit Suit
	switch suitPart {
	case "S":
		suit = SuitSpades
	case "H":
		suit = SuitHearts
	case "D":
		suit = SuitDiamonds
	case "C":
		suit = SuitClubs
	default:
		return NoCard, fmt.Errorf("invalid suit in card %q", s)
	}

	var rank Rank
	switch rankPart {
	case "A":
		rank = RankAce
	case "J":
		rank = RankJack
	case "Q":
		rank = RankQueen
	case "K":
		rank = RankKing
	case "T", "10":
		rank = RankTen
	default:
		if len(rankPart) != 1 || rankPart[0] < '2' || rankPart[0] > '9' {
			return NoCard, fmt.Errorf("invalid rank in card %q", s)
		}
		rank = Rank(rankPart[0] - '0')
	}
	return NewCard(suit, rank), nil
}

// Play is one entry on the table: which seat played which card.
type Play struct {
	Seat int
	Card Card
}

// Stage is the coarse state of the trick state machine.
type Stage uint8

const (
	StageNotDealt         Stage = iota // 0
	StageAwaitingFirstMove             // 1
	StageInTrick                       // 2
	StageResolving                     // 3
	StageGameOver                      // 4
)

// String returns a lowercase label for logs and wire payloads.
func (s Stage) String() string {
	switch s {
	case StageNotDealt:
		return "not_dealt"
	case StageAwaitingFirstMove:
		return "awaiting_first_move"
	case StageInTrick:
		return "in_trick"
	case StageResolving:
		return "resolving"
	case StageGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
