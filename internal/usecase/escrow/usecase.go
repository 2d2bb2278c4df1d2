package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/google/uuid"
)

// DefaultEscrowUsecase keeps the authoritative fund state per order and
// drives the opaque payment-provider calls behind it. Hold, Release and
// Refund are idempotent keyed by order id; Release and Refund are mutually
// exclusive.
type DefaultEscrowUsecase struct {
	EscrowRepo domain.EscrowRepository
	Provider   domain.PaymentProvider
}

func NewDefaultEscrowUsecase(escrowRepo domain.EscrowRepository, provider domain.PaymentProvider) *DefaultEscrowUsecase {
	return &DefaultEscrowUsecase{
		EscrowRepo: escrowRepo,
		Provider:   provider,
	}
}

func (uc *DefaultEscrowUsecase) Hold(orderID, buyerID, sellerID string, amount float64, currency string) (*domain.EscrowEntry, error) {
	existing, err := uc.EscrowRepo.GetEntryByOrderID(orderID)
	if err == nil {
		// Repeated hold for the same order is a no-op.
		return existing, nil
	}
	if !errors.Is(err, domain.ErrEscrowNotFound) {
		return nil, err
	}

	if err := uc.Provider.Hold(buyerID, orderID, amount); err != nil {
		return nil, fmt.Errorf("provider hold failed: %w", err)
	}

	entry := &domain.EscrowEntry{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
		Amount:    amount,
		Currency:  currency,
		State:     domain.EscrowHeld,
		CreatedAt: time.Now(),
	}
	if err := uc.EscrowRepo.CreateEntry(entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *DefaultEscrowUsecase) Release(orderID string) (*domain.EscrowEntry, error) {
	return uc.settle(orderID, domain.EscrowReleased)
}

func (uc *DefaultEscrowUsecase) Refund(orderID string) (*domain.EscrowEntry, error) {
	return uc.settle(orderID, domain.EscrowRefunded)
}

func (uc *DefaultEscrowUsecase) GetByOrderID(orderID string) (*domain.EscrowEntry, error) {
	return uc.EscrowRepo.GetEntryByOrderID(orderID)
}

func (uc *DefaultEscrowUsecase) settle(orderID string, target domain.EscrowState) (*domain.EscrowEntry, error) {
	entry, err := uc.EscrowRepo.GetEntryByOrderID(orderID)
	if err != nil {
		return nil, err
	}

	switch entry.State {
	case target:
		// Already settled the same way: return the original result.
		return entry, nil
	case domain.EscrowHeld:
	default:
		return nil, domain.ErrAlreadySettled
	}

	if err := uc.moveFunds(entry, target); err != nil {
		return nil, fmt.Errorf("provider settlement failed: %w", err)
	}

	if err := uc.EscrowRepo.SettleEntry(orderID, domain.EscrowHeld, target); err != nil {
		if errors.Is(err, domain.ErrAlreadySettled) {
			// Lost a settlement race: report whatever actually happened.
			current, readErr := uc.EscrowRepo.GetEntryByOrderID(orderID)
			if readErr != nil {
				return nil, readErr
			}
			if current.State == target {
				return current, nil
			}
			return nil, domain.ErrAlreadySettled
		}
		return nil, err
	}

	return uc.EscrowRepo.GetEntryByOrderID(orderID)
}

func (uc *DefaultEscrowUsecase) moveFunds(entry *domain.EscrowEntry, target domain.EscrowState) error {
	switch target {
	case domain.EscrowReleased:
		return uc.Provider.Release(entry.SellerID, entry.OrderID, entry.Amount)
	case domain.EscrowRefunded:
		return uc.Provider.Refund(entry.BuyerID, entry.OrderID, entry.Amount)
	default:
		return fmt.Errorf("unknown escrow settlement state: %s", target)
	}
}
