package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
)

type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager) *TransactionService {
	return &TransactionService{db: db, repomanager: m}
}

func validateTransaction(t *models.Transaction) error {
	switch {
	case t.ClientID <= 0:
		return fmt.Errorf("client_id must be positive: %w", common.ErrorBadRequest)
	case t.CategoryClientID < 0:
		return fmt.Errorf("category_client_id must not be negative: %w", common.ErrorBadRequest)
	case t.Amount.IsZero():
		return fmt.Errorf("amount must not be zero: %w", common.ErrorBadRequest)
	case t.OccurredAt.IsZero():
		return fmt.Errorf("occurred_at is required: %w", common.ErrorBadRequest)
	}
	return nil
}

func (s *TransactionService) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.repomanager.Transactions(s.db).List(ctx, userID)
}

// Create stores t for userID; see CategoryService.Create for the retry
// behaviour.
func (s *TransactionService) Create(ctx context.Context, userID string, t *models.Transaction) (*models.Transaction, error) {
	if err := validateTransaction(t); err != nil {
		return nil, err
	}
	t.ID = newID()
	t.UserID = userID

	if err := s.repomanager.Transactions(s.db).Upsert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id string, t *models.Transaction) (*models.Transaction, error) {
	if !validID(id) {
		return nil, errInvalidUUID
	}
	if err := validateTransaction(t); err != nil {
		return nil, err
	}
	t.ID = id
	t.UserID = userID

	if err := s.repomanager.Transactions(s.db).Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return errInvalidUUID
	}
	return s.repomanager.Transactions(s.db).Delete(ctx, userID, id)
}
