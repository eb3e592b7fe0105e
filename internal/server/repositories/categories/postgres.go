package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
)

// PostgresRepository implements category storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (id, user_id, client_id, name, color, type)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, client_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			color = EXCLUDED.color,
			type = EXCLUDED.type,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.UserID, c.ClientID, c.Name, c.Color, c.Type).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Category, error) {
	query := `
		SELECT id, user_id, client_id, name, color, type, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at, client_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	result := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.ClientID, &c.Name, &c.Color, &c.Type, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Category) error {
	query := `
		UPDATE categories
		SET name = $3, color = $4, type = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING client_id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.UserID, c.Name, c.Color, c.Type).
		Scan(&c.ClientID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
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
