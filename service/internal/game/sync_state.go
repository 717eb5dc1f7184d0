// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	engine "github.com/jason-s-yu/pangkah/engine"
	"github.com/jason-s-yu/pangkah/service/internal/models"
)

// ObfPlay is one table entry as clients see it.
type ObfPlay struct {
	Seat     int         `json:"seat"`
	PlayerID uuid.UUID   `json:"playerId"`
	Card     models.Card `json:"card"`
}

// ObfPlayerState represents the state of a single player, obfuscated for a specific observer.
type ObfPlayerState struct {
	PlayerID      uuid.UUID          `json:"playerId"`
	Username      string             `json:"username"`
	Seat          int                `json:"seat"`
	IsBot         bool               `json:"isBot"`
	Connected     bool               `json:"connected"`
	HandSize      int                `json:"handSize"`
	Finished      bool               `json:"finished"`
	IsCurrentTurn bool               `json:"isCurrentTurn"`
	RematchReady  bool               `json:"rematchReady"`
	Stats         models.PlayerStats `json:"stats"`
	// Hand and LegalCards are populated only for the requesting player.
	Hand       []models.Card `json:"hand,omitempty"`
	LegalCards []models.Card `json:"legalCards,omitempty"`
}

// ObfGameState represents the room and game state, obfuscated for a specific observer.
type ObfGameState struct {
	RoomID          uuid.UUID        `json:"roomId"`
	GameNumber      int              `json:"gameNumber"`
	Mode            string           `json:"mode"`
	Started         bool             `json:"started"`
	GameOver        bool             `json:"gameOver"`
	Stage           string           `json:"stage"`
	HostID          uuid.UUID        `json:"hostId"`
	CurrentPlayerID uuid.UUID        `json:"currentPlayerId,omitempty"`
	TurnID          int              `json:"turnId"`
	SecondsLeft     int              `json:"secondsLeft"`
	Trick           int              `json:"trick"`
	FirstMove       bool             `json:"firstMove"`
	LeadSuit        string           `json:"leadSuit,omitempty"`
	Table           []ObfPlay        `json:"table"`
	DiscardSize     int              `json:"discardSize"`
	Removed         []models.Card    `json:"removed"`
	FinishOrder     []uuid.UUID      `json:"finishOrder"`
	LoserID         uuid.UUID        `json:"loserId,omitempty"`
	PendingSwap     *ObfSwap         `json:"pendingSwap,omitempty"`
	Players         []ObfPlayerState `json:"players"`
}

// ObfSwap describes an outstanding swap request.
type ObfSwap struct {
	RequesterID uuid.UUID `json:"requesterId"`
	TargetID    uuid.UUID `json:"targetId"`
}

// obfPlays converts table entries to their wire form.
func (r *Room) obfPlays(plays []engine.Play) []ObfPlay {
	aceHigh := r.Mode == engine.RulePenalty
	out := make([]ObfPlay, len(plays))
	for i, pl := range plays {
		out[i] = ObfPlay{Seat: pl.Seat, Card: models.NewCard(pl.Card, aceHigh)}
		if pl.Seat >= 0 && pl.Seat < len(r.Players) {
			out[i].PlayerID = r.Players[pl.Seat].ID
		}
	}
	return out
}

// ObfuscatedState builds the snapshot forUser may see: every hand size, but
// only forUser's own cards. The caller holds Mu.
func (r *Room) ObfuscatedState(forUser uuid.UUID) ObfGameState {
	obf := ObfGameState{
		RoomID:      r.ID,
		GameNumber:  r.GameNumber,
		Mode:        r.Mode.String(),
		Started:     r.Started,
		HostID:      r.HostID,
		TurnID:      r.TurnID,
		SecondsLeft: r.secondsLeft,
		Stage:       engine.StageNotDealt.String(),
		Table:       []ObfPlay{},
		Removed:     []models.Card{},
		FinishOrder: []uuid.UUID{},
	}
	g := r.Game
	// Per-seat fields of the last game only apply while its seats still line up.
	seated := g != nil && !r.seatsMoved
	if r.swap != nil {
		obf.PendingSwap = &ObfSwap{RequesterID: r.swap.RequesterID, TargetID: r.swap.TargetID}
	}

	for seat, p := range r.Players {
		ps := ObfPlayerState{
			PlayerID:     p.ID,
			Username:     p.Name,
			Seat:         seat,
			IsBot:        p.IsBot,
			Connected:    p.Connected,
			RematchReady: p.RematchReady,
			Stats:        p.Stats,
		}
		if seated && seat < g.NumPlayers() {
			ps.HandSize = len(g.Hands[seat])
			ps.Finished = g.IsFinished(seat)
			ps.IsCurrentTurn = r.Started && !g.Resolving && g.CurrentTurn == seat
			if p.ID == forUser {
				ps.Hand = models.NewCards(g.Hand(seat), g.AceHigh())
				if ps.IsCurrentTurn {
					ps.LegalCards = models.NewCards(g.LegalCards(seat), g.AceHigh())
				}
			}
		}
		obf.Players = append(obf.Players, ps)
	}
	if g == nil {
		return obf
	}

	obf.GameOver = g.IsTerminal()
	obf.Stage = g.Stage().String()
	obf.Trick = g.TrickNumber
	obf.FirstMove = g.FirstMove
	if g.LeadSuit != engine.SuitNone {
		obf.LeadSuit = g.LeadSuit.String()
	}
	obf.Table = r.obfPlays(g.Table)
	obf.DiscardSize = len(g.Discard)
	obf.Removed = models.NewCards(g.Removed, g.AceHigh())
	if !seated {
		return obf
	}
	for _, s := range g.FinishOrder {
		if s < len(r.Players) {
			obf.FinishOrder = append(obf.FinishOrder, r.Players[s].ID)
		}
	}
	if obf.GameOver && g.Loser >= 0 && g.Loser < len(r.Players) {
		obf.LoserID = r.Players[g.Loser].ID
	}
	if r.Started && !g.Resolving && g.CurrentTurn < len(r.Players) {
		obf.CurrentPlayerID = r.Players[g.CurrentTurn].ID
	}
	return obf
}

// sendSync queues a private sync-state snapshot for id.
func (r *Room) sendSync(id uuid.UUID) {
	state := r.ObfuscatedState(id)
	r.sendTo(id, GameEvent{Type: EventSyncState, State: &state})
}
