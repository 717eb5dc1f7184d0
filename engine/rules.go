package engine

// RuleMode selects the card-value convention for a room.
type RuleMode uint8

const (
	// RulePangkah ranks Ace low (A=1, K=13).
	RulePangkah RuleMode = iota
	// RulePenalty ranks Ace high (A=14).
	RulePenalty
)

// String returns the mode name used in room configuration.
func (m RuleMode) String() string {
	if m == RulePenalty {
		return "penalty"
	}
	return "pangkah"
}

// ParseRuleMode maps a config string to a RuleMode, defaulting to RulePangkah.
func ParseRuleMode(s string) RuleMode {
	if s == "penalty" {
		return RulePenalty
	}
	return RulePangkah
}

const (
	MinPlayers = 4
	MaxPlayers = 10
	DeckSize   = 52
)

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	Mode       RuleMode
	NumPlayers int
}

// DefaultHouseRules returns the standard four-player Pangkah rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		Mode:       RulePangkah,
		NumPlayers: 4,
	}
}

// AceHigh reports whether Aces outrank Kings under these rules.
func (r HouseRules) AceHigh() bool { return r.Mode == RulePenalty }
