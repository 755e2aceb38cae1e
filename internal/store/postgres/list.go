package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/boardlive/internal/domain"
)

type ListRepo struct {
	pool *pgxpool.Pool
}

func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

// Create appends the list to the board: position = max+1, or 1 on an empty
// board. The access check and the position computation happen in the same
// statement so concurrent creates cannot race an explicit read.
func (r *ListRepo) Create(ctx context.Context, userID, boardID uuid.UUID, title string) (*domain.List, error) {
	l := domain.List{
		ID:        uuid.New(),
		BoardID:   boardID,
		Title:     title,
		CreatedAt: time.Now(),
	}
	l.UpdatedAt = l.CreatedAt

	err := r.pool.QueryRow(ctx,
		`INSERT INTO lists (id, board_id, title, position, created_at, updated_at)
		 SELECT $1, b.id, $3, COALESCE(MAX(l.position), 0) + 1, $4, $4
		 FROM boards b LEFT JOIN lists l ON l.board_id = b.id
		 WHERE b.id = $2 AND `+accessClause("$5")+`
		 GROUP BY b.id
		 RETURNING position`,
		l.ID, boardID, title, l.CreatedAt, userID,
	).Scan(&l.Order)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("listRepo.Create: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("listRepo.Create: %w", err)
	}

	return &l, nil
}

func (r *ListRepo) ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]*domain.List, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT l.id, l.board_id, l.title, l.position, l.created_at, l.updated_at
		 FROM lists l JOIN boards b ON b.id = l.board_id
		 WHERE l.board_id = $1 AND `+accessClause("$2")+`
		 ORDER BY l.position
		 LIMIT 1000`,
		boardID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	lists := make([]*domain.List, 0)
	for rows.Next() {
		var l domain.List
		if scanErr := rows.Scan(&l.ID, &l.BoardID, &l.Title, &l.Order, &l.CreatedAt, &l.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("listRepo.ListByBoard: scan: %w", scanErr)
		}
		lists = append(lists, &l)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("listRepo.ListByBoard: rows: %w", rows.Err())
	}

	return lists, nil
}

// UpdateOrder applies a batched reorder in one transaction. Any row that is
// missing or on a board userID cannot access aborts the whole batch, so a
// reorder is all-or-nothing for the caller.
func (r *ListRepo) UpdateOrder(ctx context.Context, userID uuid.UUID, updates []domain.ListOrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("listRepo.UpdateOrder: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, u := range updates {
		tag, execErr := tx.Exec(ctx,
			`UPDATE lists l SET position = $1, updated_at = now()
			 FROM boards b
			 WHERE l.id = $2 AND b.id = l.board_id AND `+accessClause("$3"),
			u.Order, u.ID, userID,
		)
		if execErr != nil {
			return fmt.Errorf("listRepo.UpdateOrder: %w", execErr)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("listRepo.UpdateOrder: list %s: %w", u.ID, domain.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("listRepo.UpdateOrder: commit: %w", err)
	}

	return nil
}

// Delete removes the list and its cards in one transaction. Restricted to
// the board owner and admin members; plain members get ErrForbidden.
func (r *ListRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const adminAccess = `(b.owner_id = $2 OR EXISTS (
	    SELECT 1 FROM board_members m
	    WHERE m.board_id = b.id AND m.user_id = $2 AND m.role = 'admin'))`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("listRepo.Delete: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx,
		`DELETE FROM cards c USING lists l, boards b
		 WHERE c.list_id = l.id AND l.id = $1 AND l.board_id = b.id AND `+adminAccess,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("listRepo.Delete: cards: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM lists l USING boards b
		 WHERE l.id = $1 AND l.board_id = b.id AND `+adminAccess,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("listRepo.Delete: list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Visible to the user but not deletable means a role problem.
		var exists bool
		checkErr := tx.QueryRow(ctx,
			`SELECT EXISTS (
			   SELECT 1 FROM lists l JOIN boards b ON b.id = l.board_id
			   WHERE l.id = $1 AND `+accessClause("$2")+`)`,
			id, userID,
		).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("listRepo.Delete: access check: %w", checkErr)
		}
		if exists {
			return fmt.Errorf("listRepo.Delete: %w", domain.ErrForbidden)
		}
		return fmt.Errorf("listRepo.Delete: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("listRepo.Delete: commit: %w", err)
	}

	return nil
}
