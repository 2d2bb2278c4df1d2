package domain

import "time"

// OrderUpdate describes the field changes applied by a single transition.
type OrderUpdate struct {
	NewStatus     OrderStatus
	CancelReason  CancelReason
	BuyerDeadline *time.Time
	CompletedAt   *time.Time
}

type OrderRepository interface {
	CreateOrder(order *Order) error
	GetOrderByID(orderID string) (*Order, error)
	UpdateOrderStatus(orderID string, newStatus OrderStatus) error
	GetOrdersByUserID(userID string, page, limit int64, sortBy, sortOrder string, filters OrderFilters) ([]*Order, int64, error)
	FindExpiredOrders() ([]*Order, error)
	GetOrderStatistics(userID string, dateFrom, dateTo time.Time) (*OrderStatistics, error)

	// ProcessOrderCriticalOperation locks the order row, verifies the current
	// status is one of from, applies update and runs sideEffect inside the
	// same database transaction. Either everything commits or nothing does.
	ProcessOrderCriticalOperation(orderID string, from []OrderStatus, update OrderUpdate, sideEffect func() error) error
}
