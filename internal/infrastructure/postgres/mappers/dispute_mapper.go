package mappers

import (
	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	return &domain.Dispute{
		ID:                  model.ID,
		OrderID:             model.OrderID,
		OpenedBy:            model.OpenedBy,
		Reason:              domain.DisputeReason(model.Reason),
		Description:         model.Description,
		Status:              domain.DisputeStatus(model.Status),
		Outcome:             domain.DisputeOutcome(model.Outcome),
		OrderStatusOriginal: domain.OrderStatus(model.OrderStatusOriginal),
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
		ResolvedAt:          model.ResolvedAt,
	}
}

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	return &models.DisputeModel{
		ID:                  dispute.ID,
		OrderID:             dispute.OrderID,
		OpenedBy:            dispute.OpenedBy,
		Reason:              string(dispute.Reason),
		Description:         dispute.Description,
		Status:              string(dispute.Status),
		Outcome:             string(dispute.Outcome),
		OrderStatusOriginal: string(dispute.OrderStatusOriginal),
		CreatedAt:           dispute.CreatedAt,
		UpdatedAt:           dispute.UpdatedAt,
		ResolvedAt:          dispute.ResolvedAt,
	}
}
