package domain

import "errors"

var (
	ErrForbidden           = errors.New("actor is not permitted to perform this action")
	ErrInvalidTransition   = errors.New("action is not available in the current order status")
	ErrDeadlinePassed      = errors.New("deadline for this action has passed")
	ErrAlreadyTerminal     = errors.New("order is already completed or cancelled")
	ErrAlreadySettled      = errors.New("escrow entry is already settled")
	ErrAlreadyStored       = errors.New("credentials are already stored for this order")
	ErrDuplicateDispute    = errors.New("dispute already exists for this order")
	ErrInsufficientFunds   = errors.New("buyer balance is below the listing price")
	ErrListingUnavailable  = errors.New("listing is not available for purchase")
	ErrOrderNotFound       = errors.New("order not found")
	ErrDisputeNotFound     = errors.New("dispute not found")
	ErrEscrowNotFound      = errors.New("escrow entry not found")
	ErrCredentialsNotFound = errors.New("credentials not found")
)
