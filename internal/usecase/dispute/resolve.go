package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	disputedto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/dispute"
	orderdto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/order"
)

// ResolveDispute is the moderator verdict. It forces the disputed order into
// a terminal status, bypassing the normal role and deadline guards, and
// settles the escrow accordingly. The caller is trusted: moderator
// authentication happens upstream.
func (uc *DefaultDisputeUsecase) ResolveDispute(input *disputedto.ResolveDisputeInput) (*disputedto.ResolveDisputeOutput, error) {
	dispute, err := uc.DisputeRepo.GetDisputeByID(input.DisputeID)
	if err != nil {
		return nil, err
	}
	if dispute.Status != domain.DisputeOpen {
		return nil, fmt.Errorf("invalid dispute status to resolve: %s", dispute.Status)
	}

	order, err := uc.OrderRepo.GetOrderByID(dispute.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusDisputed {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	var orderUpdate domain.OrderUpdate
	var sideEffect func() error

	switch input.Outcome {
	case domain.OutcomeReleaseToSeller:
		orderUpdate = domain.OrderUpdate{
			NewStatus:   domain.StatusCompleted,
			CompletedAt: &now,
		}
		sideEffect = func() error {
			_, err := uc.Escrow.Release(order.ID)
			return err
		}
	case domain.OutcomeRefundToBuyer:
		orderUpdate = domain.OrderUpdate{
			NewStatus: domain.StatusCancelled,
		}
		sideEffect = func() error {
			_, err := uc.Escrow.Refund(order.ID)
			return err
		}
	default:
		return nil, fmt.Errorf("unknown dispute outcome: %s", input.Outcome)
	}

	if err := uc.DisputeRepo.ProcessDisputeCriticalOperation(
		dispute.ID,
		order.ID,
		domain.DisputeResolved,
		input.Outcome,
		orderUpdate,
		sideEffect,
	); err != nil {
		return nil, err
	}

	dispute.Status = domain.DisputeResolved
	dispute.Outcome = input.Outcome
	dispute.ResolvedAt = &now
	order.Status = orderUpdate.NewStatus
	order.CompletedAt = orderUpdate.CompletedAt

	// A refund that unwinds an order frozen before the seller ever handed
	// over the account leaves the listing intact, so put it back on sale.
	if input.Outcome == domain.OutcomeRefundToBuyer && dispute.OrderStatusOriginal == domain.StatusWaitingForSeller {
		if err := uc.Listings.SetAvailability(order.ListingID, true); err != nil {
			slog.Warn("failed to relist listing", "listing_id", order.ListingID, "order_id", order.ID, "error", err.Error())
		}
	}

	uc.Metrics.RecordDisputeResolved(string(input.Outcome))
	if input.Outcome == domain.OutcomeReleaseToSeller {
		uc.Metrics.RecordEscrowReleased(order.Currency, order.Price)
	} else {
		uc.Metrics.RecordEscrowRefunded(order.Currency, order.Price)
	}
	uc.publishDisputeEvent(dispute)

	return &disputedto.ResolveDisputeOutput{
		Dispute: disputedto.FromDomainDispute(dispute),
		Order:   orderdto.FromDomainOrder(order),
	}, nil
}
