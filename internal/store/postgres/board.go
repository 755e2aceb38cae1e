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

// boardAccess is the shared read predicate: the user owns the board or has
// a member row. The user id placeholder is interpolated per query.
const boardAccess = `(b.owner_id = %s OR EXISTS (
    SELECT 1 FROM board_members m WHERE m.board_id = b.id AND m.user_id = %s))`

func accessClause(placeholder string) string {
	return fmt.Sprintf(boardAccess, placeholder, placeholder)
}

type BoardRepo struct {
	pool *pgxpool.Pool
}

func NewBoardRepo(pool *pgxpool.Pool) *BoardRepo {
	return &BoardRepo{pool: pool}
}

func (r *BoardRepo) Create(ctx context.Context, b *domain.Board) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO boards (id, owner_id, title, invite_code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.OwnerID, b.Title, b.InviteCode, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Create: %w", err)
	}

	return nil
}

func (r *BoardRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Board, error) {
	var b domain.Board

	err := r.pool.QueryRow(ctx,
		`SELECT b.id, b.owner_id, b.title, b.invite_code, b.created_at, b.updated_at
		 FROM boards b
		 WHERE b.id = $2 AND `+accessClause("$1"),
		userID, id,
	).Scan(&b.ID, &b.OwnerID, &b.Title, &b.InviteCode, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("boardRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("boardRepo.GetByID: %w", err)
	}

	return &b, nil
}

func (r *BoardRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Board, error) {
	var b domain.Board

	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, title, invite_code, created_at, updated_at
		 FROM boards WHERE invite_code = $1`,
		code,
	).Scan(&b.ID, &b.OwnerID, &b.Title, &b.InviteCode, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("boardRepo.GetByInviteCode: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("boardRepo.GetByInviteCode: %w", err)
	}

	return &b, nil
}

// List returns boards the user owns plus boards they joined as a member,
// oldest first.
func (r *BoardRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.owner_id, b.title, b.invite_code, b.created_at, b.updated_at
		 FROM boards b
		 WHERE `+accessClause("$1")+`
		 ORDER BY b.created_at
		 LIMIT 1000`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("boardRepo.List: %w", err)
	}
	defer rows.Close()

	boards := make([]*domain.Board, 0)
	for rows.Next() {
		var b domain.Board
		if scanErr := rows.Scan(&b.ID, &b.OwnerID, &b.Title, &b.InviteCode, &b.CreatedAt, &b.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("boardRepo.List: scan: %w", scanErr)
		}
		boards = append(boards, &b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("boardRepo.List: rows: %w", rows.Err())
	}

	return boards, nil
}

// Delete removes the board with its lists, cards and members in one
// transaction. Owner only: member roles never reach board deletion.
func (r *BoardRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx,
		`DELETE FROM cards c USING lists l, boards b
		 WHERE c.list_id = l.id AND l.board_id = b.id AND b.id = $1 AND b.owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: cards: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM lists l USING boards b
		 WHERE l.board_id = b.id AND b.id = $1 AND b.owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: lists: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM board_members m USING boards b
		 WHERE m.board_id = b.id AND b.id = $1 AND b.owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: members: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM boards WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: board: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("boardRepo.Delete: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("boardRepo.Delete: commit: %w", err)
	}

	return nil
}
