package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var (
	colorPattern   = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	categoryTypes  = map[string]struct{}{"expense": {}, "income": {}, "transfer": {}}
	newID          = uuid.NewString
	errInvalidUUID = fmt.Errorf("malformed id: %w", common.ErrorNotFound)
)

type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager) *CategoryService {
	return &CategoryService{db: db, repomanager: m}
}

func validateCategory(c *models.Category) error {
	if c.ClientID <= 0 {
		return fmt.Errorf("client_id must be positive: %w", common.ErrorBadRequest)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name must not be empty: %w", common.ErrorBadRequest)
	}
	if !colorPattern.MatchString(c.Color) {
		return fmt.Errorf("color %q is not #RRGGBB: %w", c.Color, common.ErrorBadRequest)
	}
	if _, ok := categoryTypes[c.Type]; !ok {
		return fmt.Errorf("unknown category type %q: %w", c.Type, common.ErrorBadRequest)
	}
	return nil
}

// validID reports whether id can name a stored row. Malformed ids cannot
// exist, so callers answer them with not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	return s.repomanager.Categories(s.db).List(ctx, userID)
}

// Create stores c for userID. Creating the same client id twice returns the
// row stored the first time, with its fields overwritten.
func (s *CategoryService) Create(ctx context.Context, userID string, c *models.Category) (*models.Category, error) {
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	c.ID = newID()
	c.UserID = userID
	c.Color = strings.ToUpper(c.Color)

	if err := s.repomanager.Categories(s.db).Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, c *models.Category) (*models.Category, error) {
	if !validID(id) {
		return nil, errInvalidUUID
	}
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	c.ID = id
	c.UserID = userID
	c.Color = strings.ToUpper(c.Color)

	if err := s.repomanager.Categories(s.db).Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return errInvalidUUID
	}
	return s.repomanager.Categories(s.db).Delete(ctx, userID, id)
}
