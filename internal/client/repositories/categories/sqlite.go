package categories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
)

// SQLiteStore implements Store using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) GetAll(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, type_code FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, models.StorageErrorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	result := make([]models.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.StorageErrorf("failed to iterate categories: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, color, type_code FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (s *SQLiteStore) Put(ctx context.Context, c *models.Category) error {
	code, err := c.Type.Code()
	if err != nil {
		return models.StorageErrorf("failed to put category[%d]: %w", c.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, type_code) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			type_code = excluded.type_code
	`, c.ID, c.Name, c.Color, code)
	if err != nil {
		return models.StorageErrorf("failed to put category[%d]: %w", c.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return models.StorageErrorf("failed to remove category[%d]: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (*models.Category, error) {
	var (
		c    models.Category
		code int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, models.StorageErrorf("failed to scan category: %w", err)
	}

	t, err := models.CategoryTypeFromCode(code)
	if err != nil {
		return nil, models.StorageErrorf("category[%d]: %w", c.ID, err)
	}
	c.Type = t
	return &c, nil
}
