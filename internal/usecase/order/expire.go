package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/config"
	"github.com/acctbay/acctbay-escrow-service/internal/domain"
)

// CancelExpiredOrders is the deadline sweep: every active order past its
// current window is transitioned. Correctness does not depend on the sweep
// cadence because GetOrder applies the same check lazily.
func (uc *DefaultOrderUsecase) CancelExpiredOrders(ctx context.Context) error {
	orders, err := uc.OrderRepo.FindExpiredOrders()
	if err != nil {
		return err
	}

	for _, order := range orders {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := uc.applyExpiry(order); err != nil {
			slog.Error("failed to expire order", "order_id", order.ID, "status", order.Status, "error", err.Error())
		}
	}

	return nil
}

// applyExpiry transitions one order whose deadline has lapsed. Losing the
// race against a concurrent buyer/seller action is benign: the critical
// section rejects the stale transition and the sweep moves on.
func (uc *DefaultOrderUsecase) applyExpiry(order *domain.Order) error {
	now := time.Now()

	switch order.Status {
	case domain.StatusWaitingForSeller:
		if !domain.Expired(order.SellerDeadline, now) {
			return nil
		}
		err := uc.expireSellerTimeout(order)
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil
		}
		return err
	case domain.StatusWaitingForBuyer:
		if !domain.Expired(order.BuyerDeadline, now) {
			return nil
		}
		err := uc.expireBuyerTimeout(order)
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil
		}
		return err
	default:
		return nil
	}
}

// expireSellerTimeout cancels an order the seller never delivered on:
// refund the buyer, relist.
func (uc *DefaultOrderUsecase) expireSellerTimeout(order *domain.Order) error {
	op := &OrderOperation{
		OrderID:      order.ID,
		Operation:    "expire_seller",
		FromStatuses: []domain.OrderStatus{domain.StatusWaitingForSeller},
		Update: domain.OrderUpdate{
			NewStatus:    domain.StatusCancelled,
			CancelReason: domain.ReasonSellerTimeout,
		},
		SideEffect: func() error {
			_, err := uc.Escrow.Refund(order.ID)
			return err
		},
		CreatedAt: time.Now(),
	}

	if err := uc.ProcessOrderOperation(op); err != nil {
		return err
	}

	order.Status = domain.StatusCancelled
	order.CancelReason = domain.ReasonSellerTimeout
	uc.Metrics.RecordOrderCancelled(string(domain.ReasonSellerTimeout), settlementSeconds(order))
	uc.Metrics.RecordEscrowRefunded(order.Currency, order.Price)
	uc.relist(order)
	uc.publishOrderEvent(order)
	return nil
}

// expireBuyerTimeout resolves an order the buyer never confirmed. The
// outcome is a policy decision: "cancel" refunds the buyer, "complete"
// releases to the seller. Credentials were already revealed, so the listing
// is never relisted here.
func (uc *DefaultOrderUsecase) expireBuyerTimeout(order *domain.Order) error {
	now := time.Now()

	if uc.Policy.BuyerTimeoutPolicy == config.BuyerTimeoutComplete {
		op := &OrderOperation{
			OrderID:      order.ID,
			Operation:    "expire_buyer",
			FromStatuses: []domain.OrderStatus{domain.StatusWaitingForBuyer},
			Update: domain.OrderUpdate{
				NewStatus:   domain.StatusCompleted,
				CompletedAt: &now,
			},
			SideEffect: func() error {
				_, err := uc.Escrow.Release(order.ID)
				return err
			},
			CreatedAt: now,
		}
		if err := uc.ProcessOrderOperation(op); err != nil {
			return err
		}

		order.Status = domain.StatusCompleted
		order.CompletedAt = &now
		uc.Metrics.RecordOrderCompleted(order.Currency, settlementSeconds(order))
		uc.Metrics.RecordEscrowReleased(order.Currency, order.Price)
		uc.publishOrderEvent(order)
		return nil
	}

	op := &OrderOperation{
		OrderID:      order.ID,
		Operation:    "expire_buyer",
		FromStatuses: []domain.OrderStatus{domain.StatusWaitingForBuyer},
		Update: domain.OrderUpdate{
			NewStatus:    domain.StatusCancelled,
			CancelReason: domain.ReasonBuyerTimeout,
		},
		SideEffect: func() error {
			_, err := uc.Escrow.Refund(order.ID)
			return err
		},
		CreatedAt: now,
	}
	if err := uc.ProcessOrderOperation(op); err != nil {
		return err
	}

	order.Status = domain.StatusCancelled
	order.CancelReason = domain.ReasonBuyerTimeout
	uc.Metrics.RecordOrderCancelled(string(domain.ReasonBuyerTimeout), settlementSeconds(order))
	uc.Metrics.RecordEscrowRefunded(order.Currency, order.Price)
	uc.publishOrderEvent(order)
	return nil
}
