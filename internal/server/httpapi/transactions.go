package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/finkeeper/internal/apiv1"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func toTransaction(t *models.Transaction) apiv1.Transaction {
	return apiv1.Transaction{
		ID:               t.ID,
		ClientID:         t.ClientID,
		CategoryClientID: t.CategoryClientID,
		Amount:           t.Amount,
		Note:             t.Note,
		OccurredAt:       t.OccurredAt,
	}
}

func fromTransactionRequest(req apiv1.TransactionRequest) *models.Transaction {
	return &models.Transaction{
		ClientID:         req.ClientID,
		CategoryClientID: req.CategoryClientID,
		Amount:           req.Amount,
		Note:             req.Note,
		OccurredAt:       req.OccurredAt,
	}
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	items, err := h.transactions.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	out := make([]apiv1.Transaction, 0, len(items))
	for i := range items {
		out = append(out, toTransaction(&items[i]))
	}
	writeOK(w, r, h.logger, http.StatusOK, out)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req apiv1.TransactionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	t, err := h.transactions.Create(r.Context(), userID, fromTransactionRequest(req))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeOK(w, r, h.logger, http.StatusCreated, apiv1.Created{ID: t.ID})
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req apiv1.TransactionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	t, err := h.transactions.Update(r.Context(), userID, chi.URLParam(r, "id"), fromTransactionRequest(req))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeOK(w, r, h.logger, http.StatusOK, toTransaction(t))
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.transactions.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeOK[any](w, r, h.logger, http.StatusOK, nil)
}
