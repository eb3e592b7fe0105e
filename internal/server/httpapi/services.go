package httpapi

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/services"
)

//go:generate mockgen -source=services.go -destination=mock_services_test.go -package=httpapi

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.Token, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

type CategoryService interface {
	List(ctx context.Context, userID string) ([]models.Category, error)
	Create(ctx context.Context, userID string, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, userID, id string, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, userID, id string) error
}

type TransactionService interface {
	List(ctx context.Context, userID string) ([]models.Transaction, error)
	Create(ctx context.Context, userID string, t *models.Transaction) (*models.Transaction, error)
	Update(ctx context.Context, userID, id string, t *models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}
