package client

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/boardlive/internal/domain"
)

// interactionTTL bounds how long an indicator survives without its end
// event. A lost drag-end or typing-end otherwise leaves a peer's indicator
// stuck forever.
const interactionTTL = 5 * time.Second

// BoardState is the client-side view state for one board room: the presence
// snapshot and the active interaction indicators, keyed by target. All
// methods are safe for concurrent use by the read loop and the UI.
type BoardState struct {
	mu           sync.Mutex
	onlineUsers  []domain.OnlineUser
	lastUpdate   time.Time
	interactions map[uuid.UUID]domain.Interaction
	timers       map[uuid.UUID]*time.Timer
	ttl          time.Duration
}

func NewBoardState() *BoardState {
	return &BoardState{
		interactions: make(map[uuid.UUID]domain.Interaction),
		timers:       make(map[uuid.UUID]*time.Timer),
		ttl:          interactionTTL,
	}
}

// SetOnlineUsers installs a full presence snapshot. The list is keyed by
// connection on the server, so duplicates per user are expected.
func (s *BoardState) SetOnlineUsers(users []domain.OnlineUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onlineUsers = users
	s.lastUpdate = time.Now()
}

// OnlineUsers returns the latest presence snapshot.
func (s *BoardState) OnlineUsers() []domain.OnlineUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.OnlineUser, len(s.onlineUsers))
	copy(out, s.onlineUsers)
	return out
}

// LastUpdate returns when the presence snapshot last changed.
func (s *BoardState) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdate
}

// Apply folds one received interaction into the indicator map. An end kind
// clears its target unconditionally, whoever started it; any other kind
// upserts, last writer wins. Each upsert arms a safety timer that removes
// the entry only if the same user still owns it when it fires.
func (s *BoardState) Apply(it domain.Interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it.Kind.IsEnd() {
		// End without a matching entry is a no-op.
		s.removeLocked(it.TargetID)
		return
	}

	s.interactions[it.TargetID] = it
	if t, ok := s.timers[it.TargetID]; ok {
		t.Stop()
	}
	owner := it.UserID
	target := it.TargetID
	s.timers[target] = time.AfterFunc(s.ttl, func() {
		s.expire(target, owner)
	})
}

// Active returns the current indicator map.
func (s *BoardState) Active() map[uuid.UUID]domain.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]domain.Interaction, len(s.interactions))
	for k, v := range s.interactions {
		out[k] = v
	}
	return out
}

// Reset drops every indicator and timer. Called when the connection drops;
// stale indicators from the old session must not survive a reconnect.
func (s *BoardState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.interactions {
		s.removeLocked(id)
	}
}

// expire removes a target's entry if the user who armed the timer still owns
// it. A newer interaction from someone else keeps its own timer.
func (s *BoardState) expire(target, owner uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.interactions[target]; ok && cur.UserID == owner {
		s.removeLocked(target)
	}
}

func (s *BoardState) removeLocked(target uuid.UUID) {
	delete(s.interactions, target)
	if t, ok := s.timers[target]; ok {
		t.Stop()
		delete(s.timers, target)
	}
}
