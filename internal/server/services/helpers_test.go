package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	mu     sync.Mutex
	byName map[string]*models.User
	err    error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = "u-" + u.UserName
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

// rowKey mirrors the (user_id, client_id) unique constraint.
type rowKey struct {
	user   string
	client int64
}

type fakeCategoriesRepo struct {
	rows map[rowKey]models.Category
	err  error
}

func (f *fakeCategoriesRepo) Upsert(_ context.Context, c *models.Category) error {
	if f.err != nil {
		return f.err
	}
	k := rowKey{c.UserID, c.ClientID}
	if old, ok := f.rows[k]; ok {
		c.ID = old.ID
	}
	f.rows[k] = *c
	return nil
}

func (f *fakeCategoriesRepo) List(_ context.Context, userID string) ([]models.Category, error) {
	out := []models.Category{}
	for k, c := range f.rows {
		if k.user == userID {
			out = append(out, c)
		}
	}
	return out, f.err
}

func (f *fakeCategoriesRepo) Update(_ context.Context, c *models.Category) error {
	for k, row := range f.rows {
		if row.ID == c.ID && k.user == c.UserID {
			c.ClientID = row.ClientID
			f.rows[k] = *c
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeCategoriesRepo) Delete(_ context.Context, userID, id string) error {
	for k, row := range f.rows {
		if row.ID == id && k.user == userID {
			delete(f.rows, k)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeTransactionsRepo struct {
	rows map[rowKey]models.Transaction
}

func (f *fakeTransactionsRepo) Upsert(_ context.Context, t *models.Transaction) error {
	k := rowKey{t.UserID, t.ClientID}
	if old, ok := f.rows[k]; ok {
		t.ID = old.ID
	}
	t.UpdatedAt = time.Now()
	f.rows[k] = *t
	return nil
}

func (f *fakeTransactionsRepo) List(_ context.Context, userID string) ([]models.Transaction, error) {
	out := []models.Transaction{}
	for k, t := range f.rows {
		if k.user == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionsRepo) Update(_ context.Context, t *models.Transaction) error {
	for k, row := range f.rows {
		if row.ID == t.ID && k.user == t.UserID {
			t.ClientID = row.ClientID
			f.rows[k] = *t
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeTransactionsRepo) Delete(_ context.Context, userID, id string) error {
	for k, row := range f.rows {
		if row.ID == id && k.user == userID {
			delete(f.rows, k)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeManager struct {
	users *fakeUsersRepo
	cats  *fakeCategoriesRepo
	txs   *fakeTransactionsRepo
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		users: &fakeUsersRepo{byName: map[string]*models.User{}},
		cats:  &fakeCategoriesRepo{rows: map[rowKey]models.Category{}},
		txs:   &fakeTransactionsRepo{rows: map[rowKey]models.Transaction{}},
	}
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeManager) Categories(dbx.DBTX) categories.Repository    { return m.cats }
func (m *fakeManager) Transactions(dbx.DBTX) transactions.Repository {
	return m.txs
}
