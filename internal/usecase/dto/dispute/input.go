package disputedto

import "github.com/acctbay/acctbay-escrow-service/internal/domain"

type OpenDisputeInput struct {
	OrderID     string
	ActorID     string
	Reason      domain.DisputeReason
	Description string
}

type ResolveDisputeInput struct {
	DisputeID string
	Outcome   domain.DisputeOutcome
}

type GetDisputesInput struct {
	OrderID  string
	OpenedBy string
	Status   string
	Page     int
	Limit    int
}
