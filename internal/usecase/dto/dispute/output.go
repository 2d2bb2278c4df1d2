package disputedto

import (
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	orderdto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/order"
)

type DisputeOutput struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	OpenedBy    string     `json:"opened_by"`
	Reason      string     `json:"reason"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Outcome     string     `json:"outcome,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

func FromDomainDispute(dispute *domain.Dispute) *DisputeOutput {
	return &DisputeOutput{
		ID:          dispute.ID,
		OrderID:     dispute.OrderID,
		OpenedBy:    dispute.OpenedBy,
		Reason:      string(dispute.Reason),
		Description: dispute.Description,
		Status:      string(dispute.Status),
		Outcome:     string(dispute.Outcome),
		CreatedAt:   dispute.CreatedAt,
		ResolvedAt:  dispute.ResolvedAt,
	}
}

// ResolveDisputeOutput carries the resolved dispute together with the
// order it settled, so callers see the terminal order status directly.
type ResolveDisputeOutput struct {
	Dispute *DisputeOutput        `json:"dispute"`
	Order   *orderdto.OrderOutput `json:"order"`
}

type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int64 `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

type GetDisputesOutput struct {
	Disputes   []*DisputeOutput `json:"disputes"`
	Pagination Pagination       `json:"pagination"`
}
