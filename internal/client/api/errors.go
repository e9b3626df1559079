package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/recipebox/recipebox/internal/common"
)

// ErrUnavailable marks transport-level failures: the server could not be
// reached at all.
var ErrUnavailable = errors.New("server unavailable")

// statusError maps an HTTP error status to one of the shared sentinel errors
// so callers can use errors.Is. The server-provided message is preserved.
func statusError(code int, msg string) error {
	var sentinel error
	switch code {
	case http.StatusBadRequest:
		sentinel = common.ErrorValidation
	case http.StatusUnauthorized:
		sentinel = common.ErrorUnauthorized
	case http.StatusForbidden:
		sentinel = common.ErrorForbidden
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
	default:
		sentinel = common.ErrorInternal
	}

	if msg == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}
