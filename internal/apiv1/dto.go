package apiv1

import (
	"time"

	"github.com/shopspring/decimal"
)

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CategoryRequest is the body of create and update calls. ClientID is the
// identity the client assigned locally; the server treats it as opaque.
type CategoryRequest struct {
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Type     string `json:"type"`
}

type Category struct {
	ID       string `json:"id"`
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Type     string `json:"type"`
}

type TransactionRequest struct {
	ClientID         int64           `json:"client_id"`
	CategoryClientID int64           `json:"category_client_id"`
	Amount           decimal.Decimal `json:"amount"`
	Note             string          `json:"note"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

type Transaction struct {
	ID               string          `json:"id"`
	ClientID         int64           `json:"client_id"`
	CategoryClientID int64           `json:"category_client_id"`
	Amount           decimal.Decimal `json:"amount"`
	Note             string          `json:"note"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

// Created is the payload of a successful create.
type Created struct {
	ID string `json:"id"`
}
