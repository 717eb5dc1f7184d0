// internal/game/manager.go
package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/pangkah/engine"
	"github.com/jason-s-yu/pangkah/service/internal/auth"
	"github.com/jason-s-yu/pangkah/service/internal/models"
	"github.com/sirupsen/logrus"
)

// LobbyPublisher mirrors the lobby listing to other processes.
type LobbyPublisher interface {
	PublishLobby(ctx context.Context, rooms []models.RoomSummary) error
}

// Manager is the single entry point for room commands. It serializes every
// command per room, including timer expiries, and hands the resulting events
// to its EventSink.
type Manager struct {
	repo     *Repository
	sink     EventSink
	timing   Timing
	recorder ResultRecorder
	actions  ActionPublisher
	lobbyPub LobbyPublisher
	log      *logrus.Entry
	seed     func() uint64

	lobbyMu sync.Mutex
	lobby   map[uuid.UUID]models.RoomSummary
}

// Option configures a Manager.
type Option func(*Manager)

// WithTiming overrides the room delays.
func WithTiming(t Timing) Option { return func(m *Manager) { m.timing = t } }

// WithRecorder sets the game-over results store.
func WithRecorder(rec ResultRecorder) Option { return func(m *Manager) { m.recorder = rec } }

// WithActionPublisher sets the action log.
func WithActionPublisher(p ActionPublisher) Option { return func(m *Manager) { m.actions = p } }

// WithLobbyPublisher sets where lobby snapshots are mirrored.
func WithLobbyPublisher(p LobbyPublisher) Option { return func(m *Manager) { m.lobbyPub = p } }

// WithLogger sets the base logger.
func WithLogger(l *logrus.Entry) Option { return func(m *Manager) { m.log = l } }

// WithSeed sets the source of per-room RNG seeds. Tests use it for
// reproducible deals.
func WithSeed(seed func() uint64) Option { return func(m *Manager) { m.seed = seed } }

// NewManager returns a Manager over repo. A nil sink discards events.
func NewManager(repo *Repository, sink EventSink, opts ...Option) *Manager {
	m := &Manager{
		repo:   repo,
		sink:   sink,
		timing: DefaultTiming(),
		log:    logrus.NewEntry(logrus.StandardLogger()),
		seed:   rand.Uint64,
		lobby:  make(map[uuid.UUID]models.RoomSummary),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sink == nil {
		m.sink = EventSinkFunc(func(GameEvent) {})
	}
	return m
}

// Repository returns the room store.
func (m *Manager) Repository() *Repository { return m.repo }

// Handle applies cmd to the room roomID and returns the events it produced.
// The same events have already been handed to the sink when Handle returns.
// A rejected command yields an action-rejected event for its actor along with
// the error.
func (m *Manager) Handle(roomID uuid.UUID, cmd Command) ([]GameEvent, error) {
	if c, ok := cmd.(CreateRoom); ok {
		return m.createRoom(c)
	}
	r, ok := m.repo.Get(roomID)
	if !ok {
		if _, timer := cmd.(TimerExpired); timer {
			return nil, nil
		}
		return m.rejectUnrouted(roomID, cmd, ErrRoomNotFound)
	}
	return m.dispatch(r, cmd)
}

func (m *Manager) createRoom(c CreateRoom) ([]GameEvent, error) {
	opts := c.Options
	if opts.MaxPlayers == 0 {
		opts.MaxPlayers = engine.MinPlayers
	}
	if opts.MaxPlayers < engine.MinPlayers || opts.MaxPlayers > engine.MaxPlayers {
		return m.rejectUnrouted(uuid.Nil, c, fmt.Errorf("%w: max players must be %d-%d", ErrBadOptions, engine.MinPlayers, engine.MaxPlayers))
	}
	if opts.Name == "" {
		opts.Name = fmt.Sprintf("%s's table", c.PlayerName)
	}
	var hash string
	if opts.Password != "" {
		h, err := auth.HashPassword(opts.Password)
		if err != nil {
			return m.rejectUnrouted(uuid.Nil, c, err)
		}
		hash = h
	}

	id := uuid.New()
	r := newRoom(id, opts, hash, roomDeps{
		timing:   m.timing,
		seed:     m.seed(),
		recorder: m.recorder,
		actions:  m.actions,
		log:      m.log,
		fire: func(kind TimerKind, gen uint64) {
			_, _ = m.Handle(id, TimerExpired{Kind: kind, Gen: gen})
		},
	})
	m.repo.Add(r)
	m.log.WithFields(logrus.Fields{"room": id, "host": c.Player, "mode": opts.Mode.String()}).Info("room created")

	return m.dispatch(r, JoinRoom{Player: c.Player, PlayerName: c.PlayerName, Password: opts.Password})
}

// dispatch runs cmd under the room lock and fans out the resulting events
// before releasing it, so every sink sees a room's events in commit order.
func (m *Manager) dispatch(r *Room, cmd Command) ([]GameEvent, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.closed {
		if _, timer := cmd.(TimerExpired); timer {
			return nil, nil
		}
		return m.rejectUnrouted(r.ID, cmd, ErrRoomNotFound)
	}
	err := r.apply(cmd)
	if err != nil && cmd.Actor() != uuid.Nil {
		r.reject(cmd.Actor(), cmd.Name(), err)
		r.log.WithError(err).WithFields(logrus.Fields{
			"command": cmd.Name(),
			"actor":   cmd.Actor(),
		}).Debug("command rejected")
	}
	events := r.drain()
	if r.closed {
		m.repo.Delete(r.ID)
		m.log.WithField("room", r.ID).Info("room closed")
	}
	m.deliver(events)
	if ev, ok := m.updateLobby(r.summary(), r.closed); ok {
		events = append(events, ev)
	}
	return events, err
}

// rejectUnrouted answers a command that never reached a live room.
func (m *Manager) rejectUnrouted(roomID uuid.UUID, cmd Command, err error) ([]GameEvent, error) {
	if cmd.Actor() == uuid.Nil {
		return nil, err
	}
	ev := rejection(roomID, cmd.Name(), err)
	ev.To = []uuid.UUID{cmd.Actor()}
	events := []GameEvent{ev}
	m.deliver(events)
	return events, err
}

func (m *Manager) deliver(events []GameEvent) {
	for _, ev := range events {
		m.sink.Deliver(ev)
	}
}

// updateLobby records the room's summary. When the listing changed it
// delivers a room-list event, under the lobby lock so listings reach the
// sink in order, and returns it.
func (m *Manager) updateLobby(sum models.RoomSummary, closed bool) (GameEvent, bool) {
	m.lobbyMu.Lock()
	defer m.lobbyMu.Unlock()
	prev, had := m.lobby[sum.ID]
	switch {
	case closed && !had:
		return GameEvent{}, false
	case closed:
		delete(m.lobby, sum.ID)
	case had && prev == sum:
		return GameEvent{}, false
	default:
		m.lobby[sum.ID] = sum
	}
	ev := m.lobbyEvent(m.lobbyLocked())
	m.sink.Deliver(ev)
	return ev, true
}

// Lobby returns the current room listing.
func (m *Manager) Lobby() []models.RoomSummary {
	m.lobbyMu.Lock()
	defer m.lobbyMu.Unlock()
	return m.lobbyLocked()
}

func (m *Manager) lobbyLocked() []models.RoomSummary {
	out := make([]models.RoomSummary, 0, len(m.lobby))
	for _, s := range m.lobby {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// lobbyEvent builds a room-list event and mirrors it to the lobby publisher.
func (m *Manager) lobbyEvent(rooms []models.RoomSummary) GameEvent {
	if m.lobbyPub != nil {
		pub, log := m.lobbyPub, m.log
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := pub.PublishLobby(ctx, rooms); err != nil {
				log.WithError(err).Warn("publish lobby failed")
			}
		}()
	}
	return GameEvent{
		Type:     EventRoomList,
		Audience: AudienceLobby,
		Payload:  map[string]interface{}{"rooms": rooms},
	}
}

// Shutdown closes every room and cancels its timer.
func (m *Manager) Shutdown() {
	for _, r := range m.repo.List() {
		r.Mu.Lock()
		r.close()
		r.Mu.Unlock()
		m.repo.Delete(r.ID)
	}
	m.lobbyMu.Lock()
	m.lobby = make(map[uuid.UUID]models.RoomSummary)
	m.lobbyMu.Unlock()
	m.log.Info("all rooms closed")
}
