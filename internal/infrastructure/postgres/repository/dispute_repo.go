package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultDisputeRepository struct {
	db *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{db: db}
}

// CreateDisputeWithOrderFreeze creates the dispute row and freezes the order
// into DISPUTED atomically. The unique index on order_id is the final guard
// against a second dispute racing past the usecase check.
func (r *DefaultDisputeRepository) CreateDisputeWithOrderFreeze(dispute *domain.Dispute) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var orderModel models.OrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&orderModel, "id = ?", dispute.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		switch orderModel.Status {
		case domain.StatusWaitingForSeller, domain.StatusWaitingForBuyer:
		case domain.StatusDisputed:
			return domain.ErrDuplicateDispute
		default:
			return domain.ErrAlreadyTerminal
		}

		dispute.OrderStatusOriginal = orderModel.Status

		disputeModel := mappers.ToGORMDispute(dispute)
		if err := tx.Create(disputeModel).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateDispute
			}
			return err
		}

		return tx.Model(&models.OrderModel{}).
			Where("id = ?", dispute.OrderID).
			Updates(map[string]interface{}{
				"status":     domain.StatusDisputed,
				"updated_at": time.Now(),
			}).Error
	})
}

func (r *DefaultDisputeRepository) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.Model(&models.DisputeModel{}).Where("id = ?", disputeID).First(&disputeModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}

	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) GetDisputeByOrderID(orderID string) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.Model(&models.DisputeModel{}).Where("order_id = ?", orderID).First(&disputeModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}

	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) GetDisputes(filter domain.GetDisputesFilter) ([]*domain.Dispute, int64, error) {
	query := r.db.Model(&models.DisputeModel{})

	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.OpenedBy != "" {
		query = query.Where("opened_by = ?", filter.OpenedBy)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count disputes: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	var disputeModels []models.DisputeModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&disputeModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find disputes: %w", err)
	}

	disputes := make([]*domain.Dispute, len(disputeModels))
	for i, disputeModel := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModel)
	}

	return disputes, total, nil
}

// ProcessDisputeCriticalOperation resolves the dispute and forces the order
// terminal transition in one transaction, with the escrow side effect inside.
func (r *DefaultDisputeRepository) ProcessDisputeCriticalOperation(
	disputeID, orderID string,
	newDisputeStatus domain.DisputeStatus,
	outcome domain.DisputeOutcome,
	orderUpdate domain.OrderUpdate,
	sideEffect func() error,
) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var orderModel models.OrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&orderModel, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		if orderModel.Status != domain.StatusDisputed {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		if err := tx.Model(&models.DisputeModel{}).
			Where("id = ?", disputeID).
			Updates(map[string]interface{}{
				"status":      string(newDisputeStatus),
				"outcome":     string(outcome),
				"resolved_at": now,
				"updated_at":  now,
			}).Error; err != nil {
			return err
		}

		changes := map[string]interface{}{
			"status":     orderUpdate.NewStatus,
			"updated_at": now,
		}
		if orderUpdate.CancelReason != "" {
			changes["cancel_reason"] = string(orderUpdate.CancelReason)
		}
		if orderUpdate.CompletedAt != nil {
			changes["completed_at"] = *orderUpdate.CompletedAt
		}
		if err := tx.Model(&models.OrderModel{}).
			Where("id = ?", orderID).
			Updates(changes).Error; err != nil {
			return err
		}

		if sideEffect != nil {
			if err := sideEffect(); err != nil {
				return err
			}
		}

		return nil
	})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
