package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/finkeeper/internal/apiv1"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/goccy/go-json"
)

// maxRequestBytes caps request bodies.
const maxRequestBytes = 1 << 20

func writeEnvelope[T any](ctx context.Context, log logging.Logger, w http.ResponseWriter, env apiv1.Envelope[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.Status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error(ctx, "failed to encode response", "error", err)
	}
}

func writeOK[T any](w http.ResponseWriter, r *http.Request, log logging.Logger, status int, data T) {
	writeEnvelope(r.Context(), log, w, apiv1.OK(status, data))
}

func writeFail(w http.ResponseWriter, r *http.Request, log logging.Logger, status int, message string) {
	writeEnvelope(r.Context(), log, w, apiv1.Fail(status, message))
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status matching err. Internal failures are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		msg = common.ErrorInternal.Error()
	}
	writeFail(w, r, log, status, msg)
}

// decode reads a JSON body into dst. Unknown fields are rejected.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed body: %v: %w", err, common.ErrorBadRequest)
	}
	return nil
}
