package relay

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/boardlive/internal/domain"
)

// Sender delivers one encoded frame to a single connection. Implementations
// must be non-blocking (buffered, drop-on-full): the registry broadcasts
// while holding its lock, and a slow or dead peer must never stall delivery
// to the rest of a room.
type Sender interface {
	Send(frame []byte) error
}

// RoomWatcher observes room lifecycle. The server uses it to attach a pub/sub
// subscription to each live room and to tear it down on garbage collection.
// Callbacks run outside the registry lock and may call back into it.
type RoomWatcher interface {
	RoomOpened(boardID uuid.UUID)
	RoomClosed(boardID uuid.UUID)
}

type member struct {
	participant domain.Participant
	sender      Sender
}

// room tracks the participants of one board. Join order is kept so presence
// snapshots are stable across broadcasts.
type room struct {
	members map[string]*member
	order   []string // connection ids in join order
}

func (r *room) remove(connID string) bool {
	if _, ok := r.members[connID]; !ok {
		return false
	}
	delete(r.members, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *room) presence() []domain.OnlineUser {
	users := make([]domain.OnlineUser, 0, len(r.order))
	for _, connID := range r.order {
		users = append(users, r.members[connID].participant.User)
	}
	return users
}

// Registry is the ground truth of who is viewing which board right now.
// It owns all room state behind one mutex; rooms exist from first join until
// last leave and are never persisted, so a process restart clears presence.
type Registry struct {
	mu     sync.Mutex
	rooms  map[uuid.UUID]*room
	byConn map[string]map[uuid.UUID]struct{} // connection id -> boards joined

	// watcher is nil when no lifecycle observer is attached.
	watcher RoomWatcher
}

// NewRegistry creates an empty registry. watcher may be nil.
func NewRegistry(watcher RoomWatcher) *Registry {
	return &Registry{
		rooms:   make(map[uuid.UUID]*room),
		byConn:  make(map[string]map[uuid.UUID]struct{}),
		watcher: watcher,
	}
}

// Join adds the participant to the board room, creating the room on first
// join, and broadcasts the full presence list to everyone in the room
// including the joiner so all clients converge to the same view.
func (reg *Registry) Join(boardID uuid.UUID, p domain.Participant, s Sender) {
	reg.mu.Lock()

	rm, exists := reg.rooms[boardID]
	if !exists {
		rm = &room{members: make(map[string]*member)}
		reg.rooms[boardID] = rm
	}

	if _, rejoin := rm.members[p.ConnectionID]; !rejoin {
		rm.order = append(rm.order, p.ConnectionID)
	}
	rm.members[p.ConnectionID] = &member{participant: p, sender: s}

	joined, ok := reg.byConn[p.ConnectionID]
	if !ok {
		joined = make(map[uuid.UUID]struct{})
		reg.byConn[p.ConnectionID] = joined
	}
	joined[boardID] = struct{}{}

	reg.broadcastPresence(boardID, rm)
	reg.mu.Unlock()

	if !exists && reg.watcher != nil {
		reg.watcher.RoomOpened(boardID)
	}

	log.Debug().
		Str("board_id", boardID.String()).
		Str("conn_id", p.ConnectionID).
		Str("user", p.User.Name).
		Msg("participant joined room")
}

// Leave removes the participant from the board room and broadcasts the
// updated presence list. The room is deleted once empty.
func (reg *Registry) Leave(boardID uuid.UUID, connID string) {
	reg.mu.Lock()

	rm, ok := reg.rooms[boardID]
	if !ok || !rm.remove(connID) {
		reg.mu.Unlock()
		return
	}

	if joined, ok := reg.byConn[connID]; ok {
		delete(joined, boardID)
		if len(joined) == 0 {
			delete(reg.byConn, connID)
		}
	}

	closed := reg.finishRemoval(boardID, rm)
	reg.mu.Unlock()

	reg.notifyClosed(closed)

	log.Debug().
		Str("board_id", boardID.String()).
		Str("conn_id", connID).
		Msg("participant left room")
}

// DisconnectCleanup removes the connection from every room it joined,
// broadcasting per affected room. Idempotent; used when the transport drops
// without an explicit leave. The reverse index keeps this
// O(rooms containing the connection).
func (reg *Registry) DisconnectCleanup(connID string) {
	reg.mu.Lock()

	joined, ok := reg.byConn[connID]
	if !ok {
		reg.mu.Unlock()
		return
	}
	delete(reg.byConn, connID)

	var closed []uuid.UUID
	for boardID := range joined {
		rm, ok := reg.rooms[boardID]
		if !ok || !rm.remove(connID) {
			continue
		}
		closed = append(closed, reg.finishRemoval(boardID, rm)...)
	}
	reg.mu.Unlock()

	reg.notifyClosed(closed)

	log.Debug().Str("conn_id", connID).Msg("disconnect cleanup done")
}

// RelayInteraction forwards the ephemeral hint to every participant of the
// room except the sender. Stateless, at-most-once, never persisted.
func (reg *Registry) RelayInteraction(boardID uuid.UUID, senderConnID string, it domain.Interaction) {
	frame, err := EncodeUserInteraction(boardID, it)
	if err != nil {
		log.Error().Err(err).Msg("encode interaction")
		return
	}
	reg.sendToOthers(boardID, senderConnID, frame)
}

// RelayChange forwards a "board changed, refetch" signal to every participant
// of the room except the sender.
func (reg *Registry) RelayChange(boardID uuid.UUID, senderConnID, message, userName string) {
	frame, err := EncodeRefreshBoard(message, userName)
	if err != nil {
		log.Error().Err(err).Msg("encode refresh")
		return
	}
	reg.sendToOthers(boardID, senderConnID, frame)
}

// Broadcast sends a pre-encoded frame to every participant of the room.
// Used for server-originated refresh signals, which have no sender
// connection to exclude.
func (reg *Registry) Broadcast(boardID uuid.UUID, frame []byte) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rm, ok := reg.rooms[boardID]
	if !ok {
		return
	}
	for connID, m := range rm.members {
		if err := m.sender.Send(frame); err != nil {
			log.Debug().Err(err).Str("conn_id", connID).Msg("broadcast send dropped")
		}
	}
}

// Presence returns the current presence snapshot for a board in join order.
// Returns an empty slice when the room does not exist.
func (reg *Registry) Presence(boardID uuid.UUID) []domain.OnlineUser {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rm, ok := reg.rooms[boardID]
	if !ok {
		return []domain.OnlineUser{}
	}
	return rm.presence()
}

// RoomCount returns the number of live rooms.
func (reg *Registry) RoomCount() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// finishRemoval broadcasts the updated presence list and garbage-collects the
// room when empty. Caller holds the lock. Returns board ids whose rooms were
// closed so the watcher can be notified outside the lock.
func (reg *Registry) finishRemoval(boardID uuid.UUID, rm *room) []uuid.UUID {
	if len(rm.members) == 0 {
		delete(reg.rooms, boardID)
		return []uuid.UUID{boardID}
	}
	reg.broadcastPresence(boardID, rm)
	return nil
}

// broadcastPresence pushes the full presence list to every room member.
// Caller holds the lock; senders are non-blocking so this cannot stall.
func (reg *Registry) broadcastPresence(boardID uuid.UUID, rm *room) {
	frame, err := EncodeUsersUpdated(rm.presence())
	if err != nil {
		log.Error().Err(err).Str("board_id", boardID.String()).Msg("encode presence")
		return
	}
	for connID, m := range rm.members {
		if sendErr := m.sender.Send(frame); sendErr != nil {
			// Fire and forget per recipient: a dropped peer must not block
			// delivery to the rest of the room.
			log.Debug().Err(sendErr).Str("conn_id", connID).Msg("presence send dropped")
		}
	}
}

func (reg *Registry) sendToOthers(boardID uuid.UUID, senderConnID string, frame []byte) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rm, ok := reg.rooms[boardID]
	if !ok {
		return
	}
	for connID, m := range rm.members {
		if connID == senderConnID {
			continue
		}
		if err := m.sender.Send(frame); err != nil {
			log.Debug().Err(err).Str("conn_id", connID).Msg("relay send dropped")
		}
	}
}

func (reg *Registry) notifyClosed(boardIDs []uuid.UUID) {
	if reg.watcher == nil {
		return
	}
	for _, id := range boardIDs {
		reg.watcher.RoomClosed(id)
	}
}
