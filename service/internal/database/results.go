// internal/database/results.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/pangkah/service/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_results (
	id          BIGSERIAL PRIMARY KEY,
	room_id     UUID        NOT NULL,
	game_number INT         NOT NULL,
	num_players INT         NOT NULL,
	mode        TEXT        NOT NULL,
	tricks      INT         NOT NULL,
	ended_at    TIMESTAMPTZ NOT NULL,
	UNIQUE (room_id, game_number)
);

CREATE TABLE IF NOT EXISTS player_results (
	game_id           BIGINT  NOT NULL REFERENCES game_results(id) ON DELETE CASCADE,
	player_id         UUID    NOT NULL,
	name              TEXT    NOT NULL,
	position          INT     NOT NULL,
	loser             BOOLEAN NOT NULL,
	cards_played      INT     NOT NULL,
	pangkahs_dealt    INT     NOT NULL,
	pangkahs_received INT     NOT NULL,
	clean_rounds      INT     NOT NULL,
	PRIMARY KEY (game_id, player_id)
);

CREATE INDEX IF NOT EXISTS player_results_player_idx ON player_results (player_id);
`

// Store persists finished-game tallies to Postgres. Profile aggregation (XP,
// streaks, titles) reads from these tables elsewhere.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for url and makes sure the schema exists.
func Connect(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the results tables if they are missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() { s.pool.Close() }

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// RecordGameResult writes one finished game and its per-player rows in a
// single transaction. Re-recording the same room and game number is a no-op.
func (s *Store) RecordGameResult(ctx context.Context, res models.GameResult) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var gameID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO game_results (room_id, game_number, num_players, mode, tricks, ended_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (room_id, game_number) DO NOTHING
			RETURNING id`,
			res.RoomID, res.GameNumber, res.NumPlayers, res.Mode, res.Tricks, time.UnixMilli(res.EndedAt),
		).Scan(&gameID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("insert game result: %w", err)
		}

		batch := &pgx.Batch{}
		for _, p := range res.Players {
			batch.Queue(`
				INSERT INTO player_results (game_id, player_id, name, position, loser,
					cards_played, pangkahs_dealt, pangkahs_received, clean_rounds)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				gameID, p.PlayerID, p.Name, p.Stats.Position, p.Loser,
				p.Stats.CardsPlayed, p.Stats.PangkahsDealt, p.Stats.PangkahsReceived, p.Stats.CleanRounds,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert player results: %w", err)
		}
		return nil
	})
}

// PlayerTotals sums a player's recorded games.
type PlayerTotals struct {
	Games            int `json:"games"`
	Losses           int `json:"losses"`
	FirstPlaces      int `json:"firstPlaces"`
	CardsPlayed      int `json:"cardsPlayed"`
	PangkahsDealt    int `json:"pangkahsDealt"`
	PangkahsReceived int `json:"pangkahsReceived"`
	CleanRounds      int `json:"cleanRounds"`
}

// Totals aggregates every recorded game for player.
func (s *Store) Totals(ctx context.Context, player uuid.UUID) (PlayerTotals, error) {
	var t PlayerTotals
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE loser),
		       COUNT(*) FILTER (WHERE position = 1),
		       COALESCE(SUM(cards_played), 0),
		       COALESCE(SUM(pangkahs_dealt), 0),
		       COALESCE(SUM(pangkahs_received), 0),
		       COALESCE(SUM(clean_rounds), 0)
		FROM player_results WHERE player_id = $1`, player,
	).Scan(&t.Games, &t.Losses, &t.FirstPlaces, &t.CardsPlayed, &t.PangkahsDealt, &t.PangkahsReceived, &t.CleanRounds)
	if err != nil {
		return PlayerTotals{}, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}
