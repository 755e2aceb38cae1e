package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Title   string
	// InviteCode lets other users join the board as members.
	InviteCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBoard creates a Board with validated required fields and a fresh
// invite code.
func NewBoard(ownerID uuid.UUID, title string) (*Board, error) {
	if ownerID == uuid.Nil {
		return nil, errors.New("board: owner ID is required")
	}
	if title == "" {
		return nil, errors.New("board: title is required")
	}
	now := time.Now()
	return &Board{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      title,
		InviteCode: NewInviteCode(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NewInviteCode returns a short shareable code, the first six hex digits of
// a fresh uuid in upper case.
func NewInviteCode() string {
	return strings.ToUpper(uuid.NewString()[:6])
}

// BoardRepository reads are scoped to userID having access: the owner or
// any member. Delete stays owner-only.
type BoardRepository interface {
	Create(ctx context.Context, b *Board) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Board, error)
	GetByInviteCode(ctx context.Context, code string) (*Board, error)
	// List returns boards the user owns plus boards they are a member of.
	List(ctx context.Context, userID uuid.UUID) ([]*Board, error)
	// Delete removes the board and cascades to its lists, cards and
	// members. Owner only.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
