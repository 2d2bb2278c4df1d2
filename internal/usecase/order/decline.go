package usecase

import (
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	orderdto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/order"
)

// DeclineOrder is the seller backing out before delivery: the buyer is
// refunded and the listing goes back on sale.
func (uc *DefaultOrderUsecase) DeclineOrder(orderID, sellerID string) (*orderdto.OrderOutput, error) {
	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsSeller(sellerID) {
		return nil, domain.ErrForbidden
	}
	if order.Status != domain.StatusWaitingForSeller {
		return nil, domain.ErrInvalidTransition
	}

	op := &OrderOperation{
		OrderID:      orderID,
		Operation:    "decline",
		FromStatuses: []domain.OrderStatus{domain.StatusWaitingForSeller},
		Update: domain.OrderUpdate{
			NewStatus:    domain.StatusCancelled,
			CancelReason: domain.ReasonSellerDeclined,
		},
		SideEffect: func() error {
			_, err := uc.Escrow.Refund(orderID)
			return err
		},
		CreatedAt: time.Now(),
	}

	if err := uc.ProcessOrderOperation(op); err != nil {
		return nil, err
	}

	order.Status = domain.StatusCancelled
	order.CancelReason = domain.ReasonSellerDeclined
	uc.Metrics.RecordOrderCancelled(string(domain.ReasonSellerDeclined), settlementSeconds(order))
	uc.Metrics.RecordEscrowRefunded(order.Currency, order.Price)
	uc.relist(order)
	uc.publishOrderEvent(order)

	return orderdto.FromDomainOrder(order), nil
}
