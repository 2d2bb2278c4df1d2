package mappers

import (
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	var buyerDeadline time.Time
	if model.BuyerDeadline != nil {
		buyerDeadline = *model.BuyerDeadline
	}
	return &domain.Order{
		ID:             model.ID,
		ListingID:      model.ListingID,
		BuyerID:        model.BuyerID,
		SellerID:       model.SellerID,
		ListingTitle:   model.ListingTitle,
		Price:          model.Price,
		Currency:       model.Currency,
		Status:         model.Status,
		CancelReason:   domain.CancelReason(model.CancelReason),
		SellerDeadline: model.SellerDeadline,
		BuyerDeadline:  buyerDeadline,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
		CompletedAt:    model.CompletedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	var buyerDeadline *time.Time
	if !order.BuyerDeadline.IsZero() {
		bd := order.BuyerDeadline
		buyerDeadline = &bd
	}
	return &models.OrderModel{
		ID:             order.ID,
		ListingID:      order.ListingID,
		BuyerID:        order.BuyerID,
		SellerID:       order.SellerID,
		ListingTitle:   order.ListingTitle,
		Price:          order.Price,
		Currency:       order.Currency,
		Status:         order.Status,
		CancelReason:   string(order.CancelReason),
		SellerDeadline: order.SellerDeadline,
		BuyerDeadline:  buyerDeadline,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
		CompletedAt:    order.CompletedAt,
	}
}
