package orderdto

import (
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
)

type CreateOrderInput struct {
	ListingID string
	BuyerID   string
}

type GetOrdersInput struct {
	UserID    string
	Page      int64
	Limit     int64
	SortBy    string
	SortOrder string
	Filters   domain.OrderFilters
}

type GetStatisticsInput struct {
	UserID   string
	DateFrom time.Time
	DateTo   time.Time
}
