package usecase

import (
	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	disputedto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/dispute"
)

func (uc *DefaultDisputeUsecase) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	return uc.DisputeRepo.GetDisputeByID(disputeID)
}

func (uc *DefaultDisputeUsecase) GetDisputeByOrderID(orderID string) (*domain.Dispute, error) {
	return uc.DisputeRepo.GetDisputeByOrderID(orderID)
}

func (uc *DefaultDisputeUsecase) GetDisputes(input *disputedto.GetDisputesInput) (*disputedto.GetDisputesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	disputes, total, err := uc.DisputeRepo.GetDisputes(domain.GetDisputesFilter{
		OrderID:  input.OrderID,
		OpenedBy: input.OpenedBy,
		Status:   input.Status,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	outputs := make([]*disputedto.DisputeOutput, 0, len(disputes))
	for _, dispute := range disputes {
		outputs = append(outputs, disputedto.FromDomainDispute(dispute))
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &disputedto.GetDisputesOutput{
		Disputes: outputs,
		Pagination: disputedto.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}
