package orderdto

import (
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
)

type OrderOutput struct {
	ID             string     `json:"id"`
	ListingID      string     `json:"listing_id"`
	BuyerID        string     `json:"buyer_id"`
	SellerID       string     `json:"seller_id"`
	ListingTitle   string     `json:"listing_title"`
	Price          float64    `json:"price"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	CancelReason   string     `json:"cancel_reason,omitempty"`
	SellerDeadline time.Time  `json:"seller_deadline"`
	BuyerDeadline  *time.Time `json:"buyer_deadline,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	// Credentials is populated only for the buyer once the seller has
	// released them; everyone else sees the availability flag at most.
	CredentialsAvailable bool   `json:"credentials_available"`
	Credentials          string `json:"credentials,omitempty"`
}

func FromDomainOrder(order *domain.Order) *OrderOutput {
	out := &OrderOutput{
		ID:             order.ID,
		ListingID:      order.ListingID,
		BuyerID:        order.BuyerID,
		SellerID:       order.SellerID,
		ListingTitle:   order.ListingTitle,
		Price:          order.Price,
		Currency:       order.Currency,
		Status:         string(order.Status),
		CancelReason:   string(order.CancelReason),
		SellerDeadline: order.SellerDeadline,
		CreatedAt:      order.CreatedAt,
		CompletedAt:    order.CompletedAt,
	}
	if !order.BuyerDeadline.IsZero() {
		bd := order.BuyerDeadline
		out.BuyerDeadline = &bd
	}
	return out
}

type Pagination struct {
	CurrentPage  int64 `json:"current_page"`
	TotalPages   int64 `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int64 `json:"items_per_page"`
}

type GetOrdersOutput struct {
	Orders     []*OrderOutput `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}
