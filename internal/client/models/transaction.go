package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single money movement. CategoryID is an opaque reference
// to Category.ID; 0 means uncategorized.
type Transaction struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (t Transaction) Key() int64 { return t.ID }

func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return &ValidationError{Field: "id", Reason: "must be positive"}
	}
	if t.CategoryID < 0 {
		return &ValidationError{Field: "category_id", Reason: "must not be negative"}
	}
	if t.Amount.IsZero() {
		return &ValidationError{Field: "amount", Reason: "must not be zero"}
	}
	if t.OccurredAt.IsZero() {
		return &ValidationError{Field: "occurred_at", Reason: "is required"}
	}
	return nil
}
