package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// mapError converts a failed call into a NetworkError. status is 0 when the
// request never produced a response; cause is the transport error then.
func mapError(status int, message string, cause error) error {
	e := &models.NetworkError{Status: status, Message: message}

	switch {
	case status == 0 && cause != nil:
		e.Err = fmt.Errorf("%w: %w", ErrUnavailable, cause)
	case status == http.StatusUnauthorized:
		e.Err = ErrUnauthorized
	case status == http.StatusNotFound:
		e.Err = common.ErrorNotFound
	case status == http.StatusServiceUnavailable:
		e.Err = ErrUnavailable
	default:
		e.Err = cause
	}
	return e
}
