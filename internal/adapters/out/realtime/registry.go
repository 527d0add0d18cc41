package realtime

import (
	"sync"

	"moving/internal/core/domain/model/kernel"
)

// ConnectionRegistry maps users to their open connection ids. A user may be
// connected from several devices at once.
type ConnectionRegistry interface {
	Add(userID kernel.UUID, connID string)
	Remove(userID kernel.UUID, connID string)
	Connections(userID kernel.UUID) []string
}

// InMemoryRegistry is a ConnectionRegistry for a single process.
type InMemoryRegistry struct {
	mu    sync.RWMutex
	conns map[kernel.UUID]map[string]struct{}
}

func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{conns: make(map[kernel.UUID]map[string]struct{})}
}

func (r *InMemoryRegistry) Add(userID kernel.UUID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		set = make(map[string]struct{})
		r.conns[userID] = set
	}
	set[connID] = struct{}{}
}

func (r *InMemoryRegistry) Remove(userID kernel.UUID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(r.conns, userID)
	}
}

func (r *InMemoryRegistry) Connections(userID kernel.UUID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.conns[userID]))
	for id := range r.conns[userID] {
		ids = append(ids, id)
	}
	return ids
}
