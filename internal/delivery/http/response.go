package http

import (
	"errors"
	"net/http"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// statusForError maps domain sentinels onto HTTP status codes. Anything
// unmapped is a 500 and should be treated as a bug or an outage.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrDisputeNotFound),
		errors.Is(err, domain.ErrEscrowNotFound),
		errors.Is(err, domain.ErrCredentialsNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrDeadlinePassed),
		errors.Is(err, domain.ErrAlreadyTerminal),
		errors.Is(err, domain.ErrAlreadySettled),
		errors.Is(err, domain.ErrAlreadyStored),
		errors.Is(err, domain.ErrDuplicateDispute):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrListingUnavailable):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
