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

type CardRepo struct {
	pool *pgxpool.Pool
}

func NewCardRepo(pool *pgxpool.Pool) *CardRepo {
	return &CardRepo{pool: pool}
}

// Create appends the card to the list: position = max+1, or 1 on an empty
// list. Access to the target list's board is checked in the same statement.
func (r *CardRepo) Create(ctx context.Context, userID, listID, authorID uuid.UUID, title, description string) (*domain.Card, error) {
	c := domain.Card{
		ID:          uuid.New(),
		ListID:      listID,
		AuthorID:    authorID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	c.UpdatedAt = c.CreatedAt

	err := r.pool.QueryRow(ctx,
		`INSERT INTO cards (id, list_id, author_id, title, description, position, created_at, updated_at)
		 SELECT $1, l.id, $3, $4, $5, COALESCE(MAX(c.position), 0) + 1, $6, $6
		 FROM lists l
		 JOIN boards b ON b.id = l.board_id
		 LEFT JOIN cards c ON c.list_id = l.id
		 WHERE l.id = $2 AND `+accessClause("$7")+`
		 GROUP BY l.id
		 RETURNING position`,
		c.ID, listID, authorID, title, description, c.CreatedAt, userID,
	).Scan(&c.Order)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("cardRepo.Create: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cardRepo.Create: %w", err)
	}

	return &c, nil
}

func (r *CardRepo) ListByList(ctx context.Context, userID, listID uuid.UUID) ([]*domain.Card, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.list_id, c.author_id, c.title, c.description, c.position, c.created_at, c.updated_at
		 FROM cards c
		 JOIN lists l ON l.id = c.list_id
		 JOIN boards b ON b.id = l.board_id
		 WHERE c.list_id = $1 AND `+accessClause("$2")+`
		 ORDER BY c.position
		 LIMIT 1000`,
		listID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("cardRepo.ListByList: %w", err)
	}
	defer rows.Close()

	return scanCards(rows, "cardRepo.ListByList")
}

func (r *CardRepo) ListByBoard(ctx context.Context, userID, boardID uuid.UUID) ([]*domain.Card, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.list_id, c.author_id, c.title, c.description, c.position, c.created_at, c.updated_at
		 FROM cards c
		 JOIN lists l ON l.id = c.list_id
		 JOIN boards b ON b.id = l.board_id
		 WHERE l.board_id = $1 AND `+accessClause("$2")+`
		 ORDER BY l.position, c.position
		 LIMIT 5000`,
		boardID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("cardRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	return scanCards(rows, "cardRepo.ListByBoard")
}

// UpdateOrder applies a batched reorder in one transaction. Each update may
// also reparent the card (cross-list drag); both the card's current board
// and the destination list's board must be accessible to userID or the
// whole batch aborts.
func (r *CardRepo) UpdateOrder(ctx context.Context, userID uuid.UUID, updates []domain.CardOrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cardRepo.UpdateOrder: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, u := range updates {
		tag, execErr := tx.Exec(ctx,
			`UPDATE cards c SET position = $1, list_id = $2, updated_at = now()
			 FROM lists dst
			 JOIN boards b ON b.id = dst.board_id
			 WHERE c.id = $3 AND dst.id = $2 AND `+accessClause("$4")+`
			   AND EXISTS (
			     SELECT 1 FROM lists src
			     JOIN boards b ON b.id = src.board_id
			     WHERE src.id = c.list_id AND `+accessClause("$4")+`
			   )`,
			u.Order, u.ListID, u.ID, userID,
		)
		if execErr != nil {
			return fmt.Errorf("cardRepo.UpdateOrder: %w", execErr)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("cardRepo.UpdateOrder: card %s: %w", u.ID, domain.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("cardRepo.UpdateOrder: commit: %w", err)
	}

	return nil
}

func (r *CardRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cards c USING lists l, boards b
		 WHERE c.id = $1 AND l.id = c.list_id AND b.id = l.board_id AND `+accessClause("$2"),
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("cardRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cardRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanCards(rows pgx.Rows, op string) ([]*domain.Card, error) {
	cards := make([]*domain.Card, 0)
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.ID, &c.ListID, &c.AuthorID, &c.Title, &c.Description, &c.Order, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		cards = append(cards, &c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return cards, nil
}
