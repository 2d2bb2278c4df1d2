package usecase

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	publisher "github.com/acctbay/acctbay-escrow-service/internal/infrastructure/kafka"
)

// OrderOperation describes one transition of the state machine.
type OrderOperation struct {
	OrderID      string
	Operation    string // "release_credentials", "confirm", "decline", "expire", ...
	FromStatuses []domain.OrderStatus
	Update       domain.OrderUpdate
	SideEffect   func() error
	CreatedAt    time.Time
}

// ProcessOrderOperation applies the transition through the repository's
// critical section: status check, field updates and the side effect commit
// together or not at all.
func (uc *DefaultOrderUsecase) ProcessOrderOperation(op *OrderOperation) error {
	return uc.OrderRepo.ProcessOrderCriticalOperation(
		op.OrderID,
		op.FromStatuses,
		op.Update,
		op.SideEffect,
	)
}

func (uc *DefaultOrderUsecase) publishOrderEvent(order *domain.Order) {
	event := publisher.OrderEvent{
		OrderID:      order.ID,
		ListingID:    order.ListingID,
		BuyerID:      order.BuyerID,
		SellerID:     order.SellerID,
		Status:       string(order.Status),
		CancelReason: string(order.CancelReason),
		Price:        order.Price,
		Currency:     order.Currency,
	}

	go func() {
		value, err := json.Marshal(event)
		if err != nil {
			slog.Error("failed to marshal order event", "order_id", event.OrderID, "error", err.Error())
			return
		}
		if err := uc.Publisher.Publish(publisher.OrderEventsTopic, domain.Message{
			Key:   []byte(event.OrderID),
			Value: value,
		}); err != nil {
			slog.Error("failed to publish order event", "order_id", event.OrderID, "error", err.Error())
		}
	}()
}

// relist makes the listing purchasable again after a seller-side cancel.
// Availability is advisory: the catalog re-syncs, so failures are only logged.
func (uc *DefaultOrderUsecase) relist(order *domain.Order) {
	if err := uc.Listings.SetAvailability(order.ListingID, true); err != nil {
		slog.Warn("failed to relist listing", "listing_id", order.ListingID, "order_id", order.ID, "error", err.Error())
	}
}

func settlementSeconds(order *domain.Order) float64 {
	return time.Since(order.CreatedAt).Seconds()
}
