// Package reorder implements the optimistic drag-and-drop engine for a board
// view. A drop mutates the local snapshot synchronously so the UI never
// waits, then queues one batched order update for asynchronous persistence.
// The engine never merges against concurrent remote reorders: the next full
// refetch overwrites local state with server-confirmed order.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/boardlive/internal/domain"
)

var (
	ErrDragInProgress  = errors.New("reorder: drag already in progress")
	ErrNoDrag          = errors.New("reorder: no drag in progress")
	ErrIndexOutOfRange = errors.New("reorder: index out of range")
	ErrUnknownList     = errors.New("reorder: unknown list")
)

// Persister executes the batched order updates a drop produces. Implemented
// by the REST API client; each call is atomic on the server side.
type Persister interface {
	UpdateListOrder(ctx context.Context, boardID uuid.UUID, updates []domain.ListOrderUpdate) error
	UpdateCardOrder(ctx context.Context, boardID uuid.UUID, updates []domain.CardOrderUpdate) error
}

// Notifier carries the ephemeral signals a gesture produces to room peers.
// Implemented by the presence context; emits are fire-and-forget.
type Notifier interface {
	EmitInteraction(kind domain.InteractionKind, targetID uuid.UUID)
	EmitChangeNotification(message string)
}

// Command is one queued persistence unit produced by a drop. Exactly one of
// Lists or Cards is populated; Cards may span two lists after a cross-list
// move.
type Command struct {
	BoardID uuid.UUID
	Lists   []domain.ListOrderUpdate
	Cards   []domain.CardOrderUpdate
}

type gestureState int

const (
	stateIdle gestureState = iota
	stateDragging
)

const commandQueueSize = 16

// Engine holds the client-side ordered snapshot of one board and applies
// drag gestures to it. Local state is authoritative for rendering between
// refetches only; persistence failures are reported on Errors and never
// rolled back.
type Engine struct {
	boardID   uuid.UUID
	persister Persister
	notifier  Notifier

	mu    sync.Mutex
	state gestureState
	lists []*domain.List
	cards map[uuid.UUID][]*domain.Card

	queue   chan Command
	errs    chan error
	done    chan struct{}
	closing sync.Once
}

// NewEngine creates an engine for one board and starts its persistence
// worker. The worker stops when ctx is cancelled or Close is called.
func NewEngine(ctx context.Context, boardID uuid.UUID, persister Persister, notifier Notifier) *Engine {
	e := &Engine{
		boardID:   boardID,
		persister: persister,
		notifier:  notifier,
		cards:     make(map[uuid.UUID][]*domain.Card),
		queue:     make(chan Command, commandQueueSize),
		errs:      make(chan error, commandQueueSize),
		done:      make(chan struct{}),
	}
	go e.persistLoop(ctx)
	return e
}

// Load replaces the local snapshot with server-confirmed state. Called on
// the initial fetch and on every revalidation; any optimistic order that
// disagrees is discarded here.
func (e *Engine) Load(lists []*domain.List, cards []*domain.Card) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lists = make([]*domain.List, len(lists))
	copy(e.lists, lists)

	e.cards = make(map[uuid.UUID][]*domain.Card, len(lists))
	for _, l := range lists {
		e.cards[l.ID] = nil
	}
	for _, c := range cards {
		e.cards[c.ListID] = append(e.cards[c.ListID], c)
	}
}

// Lists returns the lists in current display order.
func (e *Engine) Lists() []*domain.List {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*domain.List, len(e.lists))
	copy(out, e.lists)
	return out
}

// Cards returns the cards of one list in current display order.
func (e *Engine) Cards(listID uuid.UUID) []*domain.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	src := e.cards[listID]
	out := make([]*domain.Card, len(src))
	copy(out, src)
	return out
}

// Errors delivers persistence failures to the initiating UI. Local state is
// not rolled back; the next refetch reconciles.
func (e *Engine) Errors() <-chan error {
	return e.errs
}

// BeginDrag enters the Dragging state and tells peers someone is moving
// something on this board. The board id is the shared scope key.
func (e *Engine) BeginDrag() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateDragging {
		return ErrDragInProgress
	}
	e.state = stateDragging
	e.notifier.EmitInteraction(domain.InteractionDragStart, e.boardID)
	return nil
}

// CancelDrag returns to Idle without touching local state, clearing the peer
// indicator. Used when a gesture ends outside any drop zone.
func (e *Engine) CancelDrag() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != stateDragging {
		return ErrNoDrag
	}
	e.state = stateIdle
	e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
	return nil
}

// DropList completes a list drag from one index to another. Same index is a
// no-op that still clears the peer indicator. Otherwise the list is spliced
// to its new index, every list's order is re-stamped to index+1 and one
// batched update for the whole board is queued.
func (e *Engine) DropList(from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != stateDragging {
		return ErrNoDrag
	}
	e.state = stateIdle

	if from < 0 || from >= len(e.lists) || to < 0 || to >= len(e.lists) {
		e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
		return fmt.Errorf("reorder.Engine.DropList: from %d to %d of %d: %w", from, to, len(e.lists), ErrIndexOutOfRange)
	}

	if from == to {
		e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
		return nil
	}

	moved := e.lists[from]
	e.lists = append(e.lists[:from], e.lists[from+1:]...)
	e.lists = append(e.lists[:to], append([]*domain.List{moved}, e.lists[to:]...)...)

	updates := make([]domain.ListOrderUpdate, len(e.lists))
	for i, l := range e.lists {
		l.Order = i + 1
		updates[i] = domain.ListOrderUpdate{ID: l.ID, Order: l.Order}
	}

	e.enqueue(Command{BoardID: e.boardID, Lists: updates})
	e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
	e.notifier.EmitChangeNotification("lists reordered")
	return nil
}

// DropCard completes a card drag. Within one list the card is spliced and
// all siblings re-stamped; across lists the card's parent is rewritten and
// both lists' sequences are re-stamped independently, queued as a single
// command so persistence stays atomic.
func (e *Engine) DropCard(srcListID uuid.UUID, from int, dstListID uuid.UUID, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != stateDragging {
		return ErrNoDrag
	}
	e.state = stateIdle

	src, ok := e.cards[srcListID]
	if !ok {
		e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
		return fmt.Errorf("reorder.Engine.DropCard: source %s: %w", srcListID, ErrUnknownList)
	}
	if from < 0 || from >= len(src) {
		e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
		return fmt.Errorf("reorder.Engine.DropCard: from %d of %d: %w", from, len(src), ErrIndexOutOfRange)
	}

	if srcListID == dstListID {
		if to < 0 || to >= len(src) {
			e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
			return fmt.Errorf("reorder.Engine.DropCard: to %d of %d: %w", to, len(src), ErrIndexOutOfRange)
		}
		if from == to {
			e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
			return nil
		}

		moved := src[from]
		src = append(src[:from], src[from+1:]...)
		src = append(src[:to], append([]*domain.Card{moved}, src[to:]...)...)
		e.cards[srcListID] = src

		e.enqueue(Command{BoardID: e.boardID, Cards: restamp(srcListID, src)})
		e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
		e.notifier.EmitChangeNotification("cards reordered")
		return nil
	}

	dst, ok := e.cards[dstListID]
	if !ok {
		e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
		return fmt.Errorf("reorder.Engine.DropCard: destination %s: %w", dstListID, ErrUnknownList)
	}
	// Insertion at len(dst) appends; an empty destination accepts index 0.
	if to < 0 || to > len(dst) {
		e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
		return fmt.Errorf("reorder.Engine.DropCard: to %d of %d: %w", to, len(dst), ErrIndexOutOfRange)
	}

	moved := src[from]
	src = append(src[:from], src[from+1:]...)
	e.cards[srcListID] = src

	moved.ListID = dstListID
	dst = append(dst[:to], append([]*domain.Card{moved}, dst[to:]...)...)
	e.cards[dstListID] = dst

	updates := restamp(srcListID, src)
	updates = append(updates, restamp(dstListID, dst)...)

	e.enqueue(Command{BoardID: e.boardID, Cards: updates})
	e.notifier.EmitInteraction(domain.InteractionDragEnd, e.boardID)
	e.notifier.EmitChangeNotification("card moved")
	return nil
}

// Close stops the persistence worker. Queued commands are dropped.
// Idempotent.
func (e *Engine) Close() {
	e.closing.Do(func() { close(e.done) })
}

// restamp rewrites order to index+1 for every card of one list and returns
// the matching batch entries.
func restamp(listID uuid.UUID, cards []*domain.Card) []domain.CardOrderUpdate {
	updates := make([]domain.CardOrderUpdate, len(cards))
	for i, c := range cards {
		c.Order = i + 1
		c.ListID = listID
		updates[i] = domain.CardOrderUpdate{ID: c.ID, Order: c.Order, ListID: listID}
	}
	return updates
}

// enqueue hands a command to the worker. Caller holds e.mu; the queue is
// buffered so a drop never waits on the network, but a full queue (persister
// stalled for 16 gestures) drops the command and reports it.
func (e *Engine) enqueue(cmd Command) {
	select {
	case e.queue <- cmd:
	default:
		e.reportErr(fmt.Errorf("reorder.Engine: persistence queue full, command for board %s dropped", cmd.BoardID))
	}
}

func (e *Engine) persistLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.done:
			return
		case cmd := <-e.queue:
			var err error
			switch {
			case len(cmd.Lists) > 0:
				err = e.persister.UpdateListOrder(ctx, cmd.BoardID, cmd.Lists)
			case len(cmd.Cards) > 0:
				err = e.persister.UpdateCardOrder(ctx, cmd.BoardID, cmd.Cards)
			}
			if err != nil {
				// No rollback here. The next refetch overwrites local order.
				e.reportErr(fmt.Errorf("reorder.Engine: persist order for board %s: %w", cmd.BoardID, err))
			}
		}
	}
}

func (e *Engine) reportErr(err error) {
	select {
	case e.errs <- err:
	default:
		log.Warn().Err(err).Msg("reorder error channel full, error dropped")
	}
}
