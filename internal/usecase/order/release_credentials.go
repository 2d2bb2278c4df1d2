package usecase

import (
	"errors"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	orderdto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/order"
)

// ReleaseCredentials is the seller's delivery step: the transfer payload goes
// into the vault and the order moves to WAITING_FOR_BUYER with the buyer
// confirmation window armed. A seller past the deadline is auto-cancelled
// instead.
func (uc *DefaultOrderUsecase) ReleaseCredentials(orderID, sellerID, payload string) (*orderdto.OrderOutput, error) {
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

	now := time.Now()
	if domain.Expired(order.SellerDeadline, now) {
		if err := uc.expireSellerTimeout(order); err != nil && err != domain.ErrInvalidTransition {
			return nil, err
		}
		return nil, domain.ErrDeadlinePassed
	}

	buyerDeadline := now.Add(uc.Policy.BuyerWindow)
	op := &OrderOperation{
		OrderID:      orderID,
		Operation:    "release_credentials",
		FromStatuses: []domain.OrderStatus{domain.StatusWaitingForSeller},
		Update: domain.OrderUpdate{
			NewStatus:     domain.StatusWaitingForBuyer,
			BuyerDeadline: &buyerDeadline,
		},
		SideEffect: func() error {
			// The vault write commits on its own connection. If a previous
			// attempt stored the payload but the order transaction never
			// committed, the retry must still move the order forward.
			if err := uc.Vault.Store(orderID, payload); err != nil && !errors.Is(err, domain.ErrAlreadyStored) {
				return err
			}
			return nil
		},
		CreatedAt: now,
	}

	if err := uc.ProcessOrderOperation(op); err != nil {
		return nil, err
	}

	order.Status = domain.StatusWaitingForBuyer
	order.BuyerDeadline = buyerDeadline
	uc.publishOrderEvent(order)

	return orderdto.FromDomainOrder(order), nil
}
