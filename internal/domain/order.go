package domain

import "time"

type OrderStatus string

const (
	StatusWaitingForSeller OrderStatus = "WAITING_FOR_SELLER"
	StatusWaitingForBuyer  OrderStatus = "WAITING_FOR_BUYER"
	StatusCompleted        OrderStatus = "COMPLETED"
	StatusCancelled        OrderStatus = "CANCELLED"
	StatusDisputed         OrderStatus = "DISPUTED"
)

type CancelReason string

const (
	ReasonSellerDeclined CancelReason = "SELLER_DECLINED"
	ReasonSellerTimeout  CancelReason = "SELLER_TIMEOUT"
	ReasonBuyerTimeout   CancelReason = "BUYER_TIMEOUT"
)

type Order struct {
	ID             string
	ListingID      string
	BuyerID        string
	SellerID       string
	ListingTitle   string
	Price          float64
	Currency       string
	Status         OrderStatus
	CancelReason   CancelReason
	SellerDeadline time.Time
	BuyerDeadline  time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// IsTerminal reports whether no buyer or seller action can move the order.
func (o *Order) IsTerminal() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

// IsActive reports whether the order is still inside the normal lifecycle.
func (o *Order) IsActive() bool {
	return o.Status == StatusWaitingForSeller || o.Status == StatusWaitingForBuyer
}

func (o *Order) IsBuyer(userID string) bool {
	return userID != "" && userID == o.BuyerID
}

func (o *Order) IsSeller(userID string) bool {
	return userID != "" && userID == o.SellerID
}

type OrderFilters struct {
	Statuses  []string
	MinPrice  float64
	MaxPrice  float64
	DateFrom  time.Time
	DateTo    time.Time
	ListingID string
}

type OrderStatistics struct {
	TotalOrders     int64
	CompletedOrders int64
	CancelledOrders int64
	DisputedOrders  int64
	CompletedAmount float64
	CancelledAmount float64
}
