package usecase

import (
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	orderdto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/order"
)

// ConfirmReceipt completes the order and releases the escrowed funds to the
// seller. The buyer deadline is soft: a late confirmation is honored as long
// as the timeout sweep has not transitioned the order first.
func (uc *DefaultOrderUsecase) ConfirmReceipt(orderID, buyerID string) (*orderdto.OrderOutput, error) {
	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsBuyer(buyerID) {
		return nil, domain.ErrForbidden
	}
	if order.Status != domain.StatusWaitingForBuyer {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	op := &OrderOperation{
		OrderID:      orderID,
		Operation:    "confirm",
		FromStatuses: []domain.OrderStatus{domain.StatusWaitingForBuyer},
		Update: domain.OrderUpdate{
			NewStatus:   domain.StatusCompleted,
			CompletedAt: &now,
		},
		SideEffect: func() error {
			_, err := uc.Escrow.Release(orderID)
			return err
		},
		CreatedAt: now,
	}

	if err := uc.ProcessOrderOperation(op); err != nil {
		return nil, err
	}

	order.Status = domain.StatusCompleted
	order.CompletedAt = &now
	uc.Metrics.RecordOrderCompleted(order.Currency, settlementSeconds(order))
	uc.Metrics.RecordEscrowReleased(order.Currency, order.Price)
	uc.publishOrderEvent(order)

	return orderdto.FromDomainOrder(order), nil
}
