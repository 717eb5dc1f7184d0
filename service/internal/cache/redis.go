// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jason-s-yu/pangkah/service/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// ActionStream receives every room action, newest last.
	ActionStream = "pangkah:actions"
	// LobbyKey holds the latest lobby snapshot; LobbyChannel announces changes.
	LobbyKey     = "pangkah:lobby"
	LobbyChannel = "pangkah:lobby"

	actionStreamMaxLen = 100_000
)

// Client publishes room activity to Redis.
type Client struct {
	rdb redis.UniversalClient
}

// Options configures Connect.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect dials Redis and verifies the connection with PING.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return &Client{rdb: rdb}, nil
}

// New wraps an existing client.
func New(rdb redis.UniversalClient) *Client { return &Client{rdb: rdb} }

// Close releases the underlying connection pool.
func (c *Client) Close() error { return c.rdb.Close() }

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

// PublishGameAction appends rec to the action stream.
func (c *Client) PublishGameAction(ctx context.Context, rec models.ActionRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action: %w", err)
	}
	return c.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: ActionStream,
		MaxLen: actionStreamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"room":   rec.RoomID.String(),
			"game":   rec.GameNumber,
			"index":  rec.ActionIndex,
			"type":   rec.ActionType,
			"record": body,
		},
	}).Err()
}

// PublishLobby stores rooms as the current lobby snapshot and announces it.
func (c *Client) PublishLobby(ctx context.Context, rooms []models.RoomSummary) error {
	if rooms == nil {
		rooms = []models.RoomSummary{}
	}
	body, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("marshal lobby: %w", err)
	}
	_, err = c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, LobbyKey, body, 0)
		p.Publish(ctx, LobbyChannel, body)
		return nil
	})
	return err
}

// Lobby returns the last stored lobby snapshot.
func (c *Client) Lobby(ctx context.Context) ([]models.RoomSummary, error) {
	body, err := c.rdb.Get(ctx, LobbyKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rooms []models.RoomSummary
	if err := json.Unmarshal(body, &rooms); err != nil {
		return nil, fmt.Errorf("decode lobby: %w", err)
	}
	return rooms, nil
}
