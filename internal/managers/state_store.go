package managers

import (
	"sync"

	"github.com/filebeam/filebeam/internal/domain"
)

// stateStore holds per-user conversation state in memory. State does not
// survive a restart; every user starts back at Idle.
type stateStore struct {
	mu     sync.Mutex
	states map[int64]*domain.ConversationState
}

func NewStateStore() domain.StateStore {
	return &stateStore{
		states: make(map[int64]*domain.ConversationState),
	}
}

// lockedGet returns the state for userID, creating an Idle one on first
// use. Caller must hold the lock.
func (s *stateStore) lockedGet(userID int64) *domain.ConversationState {
	state, ok := s.states[userID]
	if !ok {
		state = &domain.ConversationState{
			UserID:  userID,
			Phase:   domain.PhaseIdle,
			Context: make(map[string]string),
		}
		s.states[userID] = state
	}

	return state
}

func (s *stateStore) Get(userID int64) domain.ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.lockedGet(userID)
}

func (s *stateStore) Update(userID int64, fn func(state *domain.ConversationState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.lockedGet(userID))
}

func (s *stateStore) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.lockedGet(userID)
	state.Phase = domain.PhaseIdle
	state.PendingFileKey = ""
	state.Context = make(map[string]string)
}
