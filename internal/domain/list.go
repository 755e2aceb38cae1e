package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// List is an ordered column on a board. Order values within a board are
// dense, contiguous and 1-based: the first list has order 1 and creation
// always appends at max(order)+1.
type List struct {
	ID        uuid.UUID
	BoardID   uuid.UUID
	Title     string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListOrderUpdate is one entry of a batched list reorder. Batches are applied
// atomically by the repository.
type ListOrderUpdate struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

// ListRepository operations are scoped to userID having board access: the
// owner or any member.
type ListRepository interface {
	// Create inserts the list at the end of the board (order = max+1, or 1
	// for an empty board) and returns the stored entity.
	Create(ctx context.Context, userID, boardID uuid.UUID, title string) (*List, error)
	ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]*List, error)
	// UpdateOrder applies all updates in a single transaction. A row outside
	// a board userID can access fails the whole batch.
	UpdateOrder(ctx context.Context, userID uuid.UUID, updates []ListOrderUpdate) error
	// Delete removes the list and cascades to its cards. Restricted to the
	// board owner and admin members.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
