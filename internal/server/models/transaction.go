package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID               string
	UserID           string
	ClientID         int64
	CategoryClientID int64
	Amount           decimal.Decimal
	Note             string
	OccurredAt       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
