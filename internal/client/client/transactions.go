package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/finkeeper/internal/apiv1"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/common"
)

// TransactionsAPI is the remote counterpart of the local transactions store.
type TransactionsAPI struct {
	c *HTTPClient
}

func (c *HTTPClient) Transactions() *TransactionsAPI {
	return &TransactionsAPI{c: c}
}

func toTransactionRequest(t *models.Transaction) apiv1.TransactionRequest {
	return apiv1.TransactionRequest{
		ClientID:         t.ID,
		CategoryClientID: t.CategoryID,
		Amount:           t.Amount,
		Note:             t.Note,
		OccurredAt:       t.OccurredAt,
	}
}

func (a *TransactionsAPI) CreateRemote(ctx context.Context, t *models.Transaction) (string, error) {
	created, err := call[apiv1.Created](ctx, a.c, http.MethodPost, apiv1.TransactionsPath, toTransactionRequest(t), true)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (a *TransactionsAPI) UpdateRemote(ctx context.Context, remoteID string, t *models.Transaction) error {
	_, err := call[apiv1.Transaction](ctx, a.c, http.MethodPut,
		apiv1.TransactionsPath+"/"+url.PathEscape(remoteID), toTransactionRequest(t), true)
	return err
}

func (a *TransactionsAPI) DeleteRemote(ctx context.Context, remoteID string) error {
	_, err := call[any](ctx, a.c, http.MethodDelete, apiv1.TransactionsPath+"/"+url.PathEscape(remoteID), nil, true)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

func (a *TransactionsAPI) ListRemote(ctx context.Context) ([]models.RemoteRecord[models.Transaction], error) {
	items, err := call[[]apiv1.Transaction](ctx, a.c, http.MethodGet, apiv1.TransactionsPath, nil, true)
	if err != nil {
		return nil, err
	}

	out := make([]models.RemoteRecord[models.Transaction], 0, len(items))
	for _, it := range items {
		out = append(out, models.RemoteRecord[models.Transaction]{
			RemoteID: it.ID,
			Entity: models.Transaction{
				ID:         it.ClientID,
				CategoryID: it.CategoryClientID,
				Amount:     it.Amount,
				Note:       it.Note,
				OccurredAt: it.OccurredAt.UTC(),
			},
		})
	}
	return out, nil
}
