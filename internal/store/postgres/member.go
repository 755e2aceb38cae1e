package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/boardlive/internal/domain"
)

type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

func (r *MemberRepo) Add(ctx context.Context, m *domain.BoardMember) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO board_members (board_id, user_id, role, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (board_id, user_id) DO NOTHING`,
		m.BoardID, m.UserID, m.Role, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("memberRepo.Add: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("memberRepo.Add: %w", domain.ErrConflict)
	}

	return nil
}

func (r *MemberRepo) Role(ctx context.Context, boardID, userID uuid.UUID) (domain.MemberRole, error) {
	var role domain.MemberRole

	err := r.pool.QueryRow(ctx,
		`SELECT role FROM board_members WHERE board_id = $1 AND user_id = $2`,
		boardID, userID,
	).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("memberRepo.Role: %w", domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("memberRepo.Role: %w", err)
	}

	return role, nil
}

func (r *MemberRepo) ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]*domain.BoardMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.board_id, m.user_id, m.role, m.created_at
		 FROM board_members m
		 JOIN boards b ON b.id = m.board_id
		 WHERE m.board_id = $1
		   AND (b.owner_id = $2 OR EXISTS (
		     SELECT 1 FROM board_members acc
		     WHERE acc.board_id = b.id AND acc.user_id = $2
		   ))
		 ORDER BY m.created_at
		 LIMIT 1000`,
		boardID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("memberRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	members := make([]*domain.BoardMember, 0)
	for rows.Next() {
		var m domain.BoardMember
		if scanErr := rows.Scan(&m.BoardID, &m.UserID, &m.Role, &m.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("memberRepo.ListByBoard: scan: %w", scanErr)
		}
		members = append(members, &m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("memberRepo.ListByBoard: rows: %w", rows.Err())
	}

	return members, nil
}
