package service

import (
	"sync"

	"birthdaybot/internal/domain"
)

// StateStore keeps per-user conversation state in memory, keyed by user id.
// A state is created on first touch and lives until the flow clears it.
type StateStore struct {
	mu     sync.RWMutex
	states map[int64]*domain.ConversationState
}

// NewStateStore creates an empty state store
func NewStateStore() *StateStore {
	return &StateStore{states: make(map[int64]*domain.ConversationState)}
}

// Get returns the state for a user, creating an idle one if absent
func (s *StateStore) Get(userID int64) *domain.ConversationState {
	s.mu.RLock()
	state, ok := s.states[userID]
	s.mu.RUnlock()
	if ok {
		return state
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[userID]; ok {
		return state
	}
	state = &domain.ConversationState{Phase: domain.PhaseIdle}
	s.states[userID] = state
	return state
}

// Clear drops the state for a user, ending the current flow
func (s *StateStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
