package usecase

import (
	"errors"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	orderdto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/order"
)

// GetOrder returns a consistent snapshot of the order for the requester.
// The deadline check runs first, so a lapsed order is transitioned before
// anyone sees it; credentials are attached only when the vault permits.
func (uc *DefaultOrderUsecase) GetOrder(orderID, requesterID string) (*orderdto.OrderOutput, error) {
	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	if order.IsActive() {
		if err := uc.applyExpiry(order); err != nil {
			return nil, err
		}
		// Re-read: the expiry transition may have just rewritten the order.
		order, err = uc.OrderRepo.GetOrderByID(orderID)
		if err != nil {
			return nil, err
		}
	}

	if !order.IsBuyer(requesterID) && !order.IsSeller(requesterID) {
		return nil, domain.ErrForbidden
	}

	out := orderdto.FromDomainOrder(order)

	hasCreds, err := uc.Vault.HasCredentials(orderID)
	if err != nil {
		return nil, err
	}
	out.CredentialsAvailable = hasCreds

	if hasCreds {
		payload, err := uc.Vault.Reveal(orderID, requesterID)
		switch {
		case err == nil:
			out.Credentials = payload
		case errors.Is(err, domain.ErrForbidden):
			// Requester is not entitled to the plaintext: leave it redacted.
		default:
			return nil, err
		}
	}

	return out, nil
}

func (uc *DefaultOrderUsecase) GetOrdersByUserID(input *orderdto.GetOrdersInput) (*orderdto.GetOrdersOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}

	orders, total, err := uc.OrderRepo.GetOrdersByUserID(
		input.UserID,
		page, limit,
		input.SortBy, input.SortOrder,
		input.Filters,
	)
	if err != nil {
		return nil, err
	}

	outputs := make([]*orderdto.OrderOutput, len(orders))
	for i, order := range orders {
		outputs[i] = orderdto.FromDomainOrder(order)
	}

	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	return &orderdto.GetOrdersOutput{
		Orders: outputs,
		Pagination: orderdto.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

func (uc *DefaultOrderUsecase) GetOrderStatistics(userID string, dateFrom, dateTo time.Time) (*domain.OrderStatistics, error) {
	return uc.OrderRepo.GetOrderStatistics(userID, dateFrom, dateTo)
}
