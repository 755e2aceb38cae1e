package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MemberRole grades what a board member may do. Admins can delete lists;
// only the owner can delete the board itself.
type MemberRole string

const (
	RoleMember MemberRole = "member"
	RoleAdmin  MemberRole = "admin"
)

func (r MemberRole) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// BoardMember grants a user access to a board they do not own. The owner is
// never stored as a member row.
type BoardMember struct {
	BoardID   uuid.UUID
	UserID    uuid.UUID
	Role      MemberRole
	CreatedAt time.Time
}

func NewBoardMember(boardID, userID uuid.UUID, role MemberRole) *BoardMember {
	return &BoardMember{
		BoardID:   boardID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
}

type BoardMemberRepository interface {
	// Add inserts the membership. ErrConflict when the user already is a
	// member of the board.
	Add(ctx context.Context, m *BoardMember) error
	// Role returns the user's role on the board. ErrNotFound when the user
	// is not a member (owners have no member row).
	Role(ctx context.Context, boardID, userID uuid.UUID) (MemberRole, error)
	// ListByBoard returns the member roster. userID must have access to the
	// board (owner or member) or ErrNotFound is returned.
	ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]*BoardMember, error)
}
