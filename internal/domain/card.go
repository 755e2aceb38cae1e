package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Card is an ordered item inside a list. ListID is mutable: a drag across
// lists reparents the card. Order follows the same 1-based dense sequence as
// List, scoped per list.
type Card struct {
	ID          uuid.UUID
	ListID      uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Description string
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CardOrderUpdate is one entry of a batched card reorder. ListID carries the
// (possibly new) parent so cross-list moves persist in the same batch.
type CardOrderUpdate struct {
	ID     uuid.UUID `json:"id"`
	Order  int       `json:"order"`
	ListID uuid.UUID `json:"listId"`
}

// CardRepository operations are scoped to userID having board access: the
// owner or any member.
type CardRepository interface {
	// Create inserts the card at the end of the list (order = max+1, or 1
	// for an empty list) and returns the stored entity.
	Create(ctx context.Context, userID, listID, authorID uuid.UUID, title, description string) (*Card, error)
	ListByList(ctx context.Context, userID, listID uuid.UUID) ([]*Card, error)
	ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]*Card, error)
	// UpdateOrder applies all updates (order and parent list) in a single
	// transaction. A row outside a board userID can access fails the batch.
	UpdateOrder(ctx context.Context, userID uuid.UUID, updates []CardOrderUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
