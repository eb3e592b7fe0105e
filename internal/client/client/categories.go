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

// CategoriesAPI is the remote counterpart of the local categories store.
type CategoriesAPI struct {
	c *HTTPClient
}

func (c *HTTPClient) Categories() *CategoriesAPI {
	return &CategoriesAPI{c: c}
}

func toCategoryRequest(cat *models.Category) apiv1.CategoryRequest {
	return apiv1.CategoryRequest{
		ClientID: cat.ID,
		Name:     cat.Name,
		Color:    cat.Color,
		Type:     cat.Type.String(),
	}
}

func (a *CategoriesAPI) CreateRemote(ctx context.Context, cat *models.Category) (string, error) {
	created, err := call[apiv1.Created](ctx, a.c, http.MethodPost, apiv1.CategoriesPath, toCategoryRequest(cat), true)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (a *CategoriesAPI) UpdateRemote(ctx context.Context, remoteID string, cat *models.Category) error {
	_, err := call[apiv1.Category](ctx, a.c, http.MethodPut,
		apiv1.CategoriesPath+"/"+url.PathEscape(remoteID), toCategoryRequest(cat), true)
	return err
}

// DeleteRemote treats a missing remote category as already deleted.
func (a *CategoriesAPI) DeleteRemote(ctx context.Context, remoteID string) error {
	_, err := call[any](ctx, a.c, http.MethodDelete, apiv1.CategoriesPath+"/"+url.PathEscape(remoteID), nil, true)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

func (a *CategoriesAPI) ListRemote(ctx context.Context) ([]models.RemoteRecord[models.Category], error) {
	items, err := call[[]apiv1.Category](ctx, a.c, http.MethodGet, apiv1.CategoriesPath, nil, true)
	if err != nil {
		return nil, err
	}

	out := make([]models.RemoteRecord[models.Category], 0, len(items))
	for _, it := range items {
		// Unknown types are kept so the caller's validation can skip the row.
		t, err := models.ParseCategoryType(it.Type)
		if err != nil {
			t = models.CategoryTypeUnknown
		}
		out = append(out, models.RemoteRecord[models.Category]{
			RemoteID: it.ID,
			Entity:   models.Category{ID: it.ClientID, Name: it.Name, Color: it.Color, Type: t},
		})
	}
	return out, nil
}
