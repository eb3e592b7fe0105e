package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func food() *models.Category {
	return &models.Category{ClientID: 1, Name: "Food", Color: "#ff0000", Type: "expense"}
}

func TestCategoryService_CreateIsIdempotentPerClientID(t *testing.T) {
	m := newFakeManager()
	s := NewCategoryService(nil, m)
	ctx := context.Background()

	first, err := s.Create(ctx, "u1", food())
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", first.Color)
	_, err = uuid.Parse(first.ID)
	require.NoError(t, err)

	retry := food()
	retry.Name = "Groceries"
	second, err := s.Create(ctx, "u1", retry)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := s.Create(ctx, "u2", food())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Groceries", list[0].Name)
}

func TestCategoryService_Validation(t *testing.T) {
	s := NewCategoryService(nil, newFakeManager())
	ctx := context.Background()

	cases := map[string]func(c *models.Category){
		"client id": func(c *models.Category) { c.ClientID = 0 },
		"name":      func(c *models.Category) { c.Name = " " },
		"color":     func(c *models.Category) { c.Color = "red" },
		"type":      func(c *models.Category) { c.Type = "gift" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := food()
			mutate(c)
			_, err := s.Create(ctx, "u1", c)
			require.ErrorIs(t, err, common.ErrorBadRequest)
		})
	}
}

func TestCategoryService_UpdateAndDelete(t *testing.T) {
	m := newFakeManager()
	s := NewCategoryService(nil, m)
	ctx := context.Background()

	created, err := s.Create(ctx, "u1", food())
	require.NoError(t, err)

	upd := food()
	upd.Name = "Groceries"
	got, err := s.Update(ctx, "u1", created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Name)

	_, err = s.Update(ctx, "u2", created.ID, food())
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Update(ctx, "u1", "not-a-uuid", food())
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.ErrorIs(t, s.Delete(ctx, "u1", "nope"), common.ErrorNotFound)
	require.NoError(t, s.Delete(ctx, "u1", created.ID))
	require.ErrorIs(t, s.Delete(ctx, "u1", created.ID), common.ErrorNotFound)
}

func lunch() *models.Transaction {
	return &models.Transaction{
		ClientID: 7, Amount: decimal.RequireFromString("-12.50"),
		Note: "lunch", OccurredAt: time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionService_CRUD(t *testing.T) {
	m := newFakeManager()
	s := NewTransactionService(nil, m)
	ctx := context.Background()

	created, err := s.Create(ctx, "u1", lunch())
	require.NoError(t, err)

	again, err := s.Create(ctx, "u1", lunch())
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	upd := lunch()
	upd.Note = "dinner"
	_, err = s.Update(ctx, "u1", created.ID, upd)
	require.NoError(t, err)

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dinner", list[0].Note)

	require.NoError(t, s.Delete(ctx, "u1", created.ID))
	list, err = s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactionService_Validation(t *testing.T) {
	s := NewTransactionService(nil, newFakeManager())
	ctx := context.Background()

	zero := lunch()
	zero.Amount = decimal.Zero
	_, err := s.Create(ctx, "u1", zero)
	require.ErrorIs(t, err, common.ErrorBadRequest)

	undated := lunch()
	undated.OccurredAt = time.Time{}
	_, err = s.Create(ctx, "u1", undated)
	require.ErrorIs(t, err, common.ErrorBadRequest)

	negCat := lunch()
	negCat.CategoryClientID = -1
	_, err = s.Create(ctx, "u1", negCat)
	require.ErrorIs(t, err, common.ErrorBadRequest)

	_, err = s.Update(ctx, "u1", "x", lunch())
	require.ErrorIs(t, err, common.ErrorNotFound)
}
