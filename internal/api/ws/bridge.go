package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/boardlive/internal/relay"
	redisstore "github.com/gosuda/boardlive/internal/store/redis"
)

// ChangeBridge connects live rooms to the Redis board channels that REST
// mutation handlers publish on. It implements relay.RoomWatcher: while a
// board has a room, one subscription feeds published refresh frames to every
// participant; the subscription is torn down when the room is
// garbage-collected.
type ChangeBridge struct {
	ctx    context.Context
	pubsub *redisstore.PubSub

	mu       sync.Mutex
	registry *relay.Registry
	cancels  map[uuid.UUID]context.CancelFunc
}

// NewChangeBridge creates a bridge rooted in ctx; all subscriptions stop when
// ctx is cancelled.
func NewChangeBridge(ctx context.Context, pubsub *redisstore.PubSub) *ChangeBridge {
	return &ChangeBridge{
		ctx:     ctx,
		pubsub:  pubsub,
		cancels: make(map[uuid.UUID]context.CancelFunc),
	}
}

// Bind attaches the registry the bridge broadcasts into. Called once during
// server wiring, before any connection is accepted; the bridge and registry
// reference each other so neither can be constructed second.
func (b *ChangeBridge) Bind(registry *relay.Registry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registry = registry
}

// RoomOpened starts relaying the board's Redis channel into the room.
func (b *ChangeBridge) RoomOpened(boardID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.cancels[boardID]; exists {
		return
	}

	subCtx, cancel := context.WithCancel(b.ctx)
	b.cancels[boardID] = cancel

	go b.relayLoop(subCtx, boardID)
}

// RoomClosed cancels the board's subscription.
func (b *ChangeBridge) RoomClosed(boardID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cancel, ok := b.cancels[boardID]; ok {
		cancel()
		delete(b.cancels, boardID)
	}
}

func (b *ChangeBridge) relayLoop(ctx context.Context, boardID uuid.UUID) {
	channel := redisstore.BoardChannel(boardID)

	messages, cleanup, err := b.pubsub.Subscribe(ctx, channel)
	if err != nil {
		// Presence and peer-to-peer relaying still work without the bridge;
		// server-side mutations just won't push refresh signals.
		log.Warn().Err(err).Str("board_id", boardID.String()).Msg("board channel subscribe failed")
		return
	}
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-messages:
			if !ok {
				return
			}
			b.mu.Lock()
			registry := b.registry
			b.mu.Unlock()
			if registry != nil {
				registry.Broadcast(boardID, frame)
			}
		}
	}
}
