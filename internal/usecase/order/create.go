package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	orderdto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/order"
	"github.com/google/uuid"
)

func (uc *DefaultOrderUsecase) CreateOrder(input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error) {
	listing, err := uc.Listings.GetListing(input.ListingID)
	if err != nil {
		uc.Metrics.RecordError("create", "listing_lookup")
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	if !listing.Available {
		return nil, domain.ErrListingUnavailable
	}
	if listing.SellerID == input.BuyerID {
		return nil, domain.ErrForbidden
	}

	balance, err := uc.Provider.GetBalance(input.BuyerID)
	if err != nil {
		uc.Metrics.RecordError("create", "balance_lookup")
		return nil, fmt.Errorf("failed to fetch buyer balance: %w", err)
	}
	if balance < listing.Price {
		return nil, domain.ErrInsufficientFunds
	}

	now := time.Now()
	order := &domain.Order{
		ID:             uuid.NewString(),
		ListingID:      listing.ID,
		BuyerID:        input.BuyerID,
		SellerID:       listing.SellerID,
		ListingTitle:   listing.Title,
		Price:          listing.Price,
		Currency:       listing.Currency,
		Status:         domain.StatusWaitingForSeller,
		SellerDeadline: now.Add(uc.Policy.SellerWindow),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.OrderRepo.CreateOrder(order); err != nil {
		uc.Metrics.RecordError("create", "persist")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if _, err := uc.Escrow.Hold(order.ID, order.BuyerID, order.SellerID, order.Price, order.Currency); err != nil {
		uc.cancelOrderDueToHoldFailure(order, err)
		return nil, fmt.Errorf("failed to hold funds: %w", err)
	}

	if err := uc.Listings.SetAvailability(order.ListingID, false); err != nil {
		slog.Warn("failed to mark listing unavailable", "listing_id", order.ListingID, "error", err.Error())
	}

	uc.Metrics.RecordOrderCreated(order.Currency)
	uc.Metrics.RecordEscrowHeld(order.Currency, order.Price)
	uc.publishOrderEvent(order)

	return orderdto.FromDomainOrder(order), nil
}

func (uc *DefaultOrderUsecase) cancelOrderDueToHoldFailure(order *domain.Order, holdErr error) {
	slog.Error("escrow hold failed after order creation, cancelling order", "order_id", order.ID, "error", holdErr.Error())

	if err := uc.OrderRepo.UpdateOrderStatus(order.ID, domain.StatusCancelled); err != nil {
		slog.Error("failed to cancel order after hold failure", "order_id", order.ID, "error", err.Error())
	}
	uc.Metrics.RecordError("create", "escrow_hold")
}
