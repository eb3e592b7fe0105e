package transactions

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/timex"
	"github.com/shopspring/decimal"
)

type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectColumns = `SELECT id, category_id, amount, note, occurred_at FROM transactions`

func (s *SQLiteStore) GetAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY rowid`)
	if err != nil {
		return nil, models.StorageErrorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	result := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, models.StorageErrorf("failed to iterate transactions: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

func (s *SQLiteStore) Put(ctx context.Context, t *models.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, category_id, amount, note, occurred_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category_id = excluded.category_id,
			amount = excluded.amount,
			note = excluded.note,
			occurred_at = excluded.occurred_at
	`, t.ID, t.CategoryID, t.Amount.String(), t.Note, timex.UnixMilli(t.OccurredAt))
	if err != nil {
		return models.StorageErrorf("failed to put transaction[%d]: %w", t.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return models.StorageErrorf("failed to remove transaction[%d]: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	var (
		t          models.Transaction
		amount     string
		occurredAt int64
	)
	if err := row.Scan(&t.ID, &t.CategoryID, &amount, &t.Note, &occurredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, models.StorageErrorf("failed to scan transaction: %w", err)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, models.StorageErrorf("transaction[%d] amount: %w", t.ID, err)
	}
	t.Amount = d
	t.OccurredAt = timex.FromUnixMilli(occurredAt)
	return &t, nil
}
