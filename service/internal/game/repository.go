// internal/game/repository.go
package game

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Repository holds the live rooms of one process.
type Repository struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*Room
}

// NewRepository returns an empty Repository.
func NewRepository() *Repository {
	return &Repository{rooms: make(map[uuid.UUID]*Room)}
}

// Add stores r under its ID.
func (rp *Repository) Add(r *Room) {
	rp.mu.Lock()
	rp.rooms[r.ID] = r
	rp.mu.Unlock()
}

// Get returns the room with id.
func (rp *Repository) Get(id uuid.UUID) (*Room, bool) {
	rp.mu.RLock()
	defer rp.mu.RUnlock()
	r, ok := rp.rooms[id]
	return r, ok
}

// Delete removes the room with id, if present.
func (rp *Repository) Delete(id uuid.UUID) {
	rp.mu.Lock()
	delete(rp.rooms, id)
	rp.mu.Unlock()
}

// List returns every room, ordered by name then id.
func (rp *Repository) List() []*Room {
	rp.mu.RLock()
	out := make([]*Room, 0, len(rp.rooms))
	for _, r := range rp.rooms {
		out = append(out, r)
	}
	rp.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Len returns the number of rooms.
func (rp *Repository) Len() int {
	rp.mu.RLock()
	defer rp.mu.RUnlock()
	return len(rp.rooms)
}
