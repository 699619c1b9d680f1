package appstate

import (
	"sync"

	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/google/uuid"
)

// Registry tracks the live application state per signed-in user. A state is
// created at sign-in and destroyed at sign-out; lookups for users without a
// state fail closed so mutations against a dead session never reach the store.
type Registry struct {
	mu     sync.RWMutex
	states map[uuid.UUID]*State
}

// NewRegistry builds an empty state registry.
func NewRegistry() *Registry {
	return &Registry{states: make(map[uuid.UUID]*State)}
}

// Create installs a fresh state for the user, replacing any prior one.
func (r *Registry) Create(userID uuid.UUID) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := &State{}
	r.states[userID] = state
	return state
}

// Get returns the user's live state, or CodeUnauthorized when no session
// state exists.
func (r *Registry) Get(userID uuid.UUID) (*State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.states[userID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session state")
	}
	return state, nil
}

// GetOrCreate returns the user's live state, creating one when absent. Used by
// read paths that may run on a fresh access token before any load has happened.
func (r *Registry) GetOrCreate(userID uuid.UUID) *State {
	r.mu.RLock()
	state, ok := r.states[userID]
	r.mu.RUnlock()
	if ok {
		return state
	}
	return r.Create(userID)
}

// Destroy drops the user's state. Safe to call when none exists.
func (r *Registry) Destroy(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, userID)
}
