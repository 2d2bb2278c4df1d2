package domain

import "time"

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "DISPUTE_OPEN"
	DisputeResolved DisputeStatus = "DISPUTE_RESOLVED"
)

type DisputeOutcome string

const (
	OutcomeReleaseToSeller DisputeOutcome = "RELEASE_TO_SELLER"
	OutcomeRefundToBuyer   DisputeOutcome = "REFUND_TO_BUYER"
)

type DisputeReason string

const (
	ReasonCredentialsInvalid DisputeReason = "CREDENTIALS_INVALID"
	ReasonAccountReclaimed   DisputeReason = "ACCOUNT_RECLAIMED"
	ReasonNotAsDescribed     DisputeReason = "NOT_AS_DESCRIBED"
	ReasonSellerUnresponsive DisputeReason = "SELLER_UNRESPONSIVE"
	ReasonOther              DisputeReason = "OTHER"
)

type Dispute struct {
	ID                  string
	OrderID             string
	OpenedBy            string
	Reason              DisputeReason
	Description         string
	Status              DisputeStatus
	Outcome             DisputeOutcome
	OrderStatusOriginal OrderStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ResolvedAt          *time.Time
}

type GetDisputesFilter struct {
	OrderID  string
	OpenedBy string
	Status   string
	Page     int
	Limit    int
}

type DisputeRepository interface {
	// CreateDisputeWithOrderFreeze creates the dispute and moves the order to
	// DISPUTED in a single transaction. At most one dispute per order.
	CreateDisputeWithOrderFreeze(dispute *Dispute) error
	GetDisputeByID(disputeID string) (*Dispute, error)
	GetDisputeByOrderID(orderID string) (*Dispute, error)
	GetDisputes(filter GetDisputesFilter) ([]*Dispute, int64, error)

	// ProcessDisputeCriticalOperation resolves the dispute and forces the
	// order into its terminal status together with the escrow side effect,
	// all inside one transaction.
	ProcessDisputeCriticalOperation(disputeID, orderID string, newDisputeStatus DisputeStatus, outcome DisputeOutcome, orderUpdate OrderUpdate, sideEffect func() error) error
}
