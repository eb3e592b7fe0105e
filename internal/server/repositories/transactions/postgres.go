package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, client_id, category_client_id, amount, note, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, client_id)
		DO UPDATE SET
			category_client_id = EXCLUDED.category_client_id,
			amount = EXCLUDED.amount,
			note = EXCLUDED.note,
			occurred_at = EXCLUDED.occurred_at,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.UserID, t.ClientID, t.CategoryClientID, t.Amount, t.Note, t.OccurredAt).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, client_id, category_client_id, amount, note, occurred_at, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_at, client_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	result := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.ClientID, &t.CategoryClientID, &t.Amount, &t.Note,
			&t.OccurredAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *models.Transaction) error {
	query := `
		UPDATE transactions
		SET category_client_id = $3, amount = $4, note = $5, occurred_at = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING client_id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, t.ID, t.UserID, t.CategoryClientID, t.Amount, t.Note, t.OccurredAt).
		Scan(&t.ClientID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
