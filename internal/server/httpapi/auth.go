package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/finkeeper/internal/apiv1"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req apiv1.CredentialsRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if _, err := h.users.Register(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "username", req.Username)
	writeOK[any](w, r, h.logger, http.StatusCreated, nil)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req apiv1.CredentialsRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	tok, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeOK(w, r, h.logger, http.StatusOK, apiv1.LoginResponse{
		AccessToken: tok.AccessToken,
		ExpiresAt:   tok.ExpiresAt,
	})
}
