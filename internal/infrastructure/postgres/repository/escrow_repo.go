package repository

import (
	"errors"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultEscrowRepository struct {
	db *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{db: db}
}

func (r *DefaultEscrowRepository) CreateEntry(entry *domain.EscrowEntry) error {
	entryModel := mappers.ToGORMEscrowEntry(entry)
	return r.db.Create(entryModel).Error
}

func (r *DefaultEscrowRepository) GetEntryByOrderID(orderID string) (*domain.EscrowEntry, error) {
	var entryModel models.EscrowEntryModel
	if err := r.db.First(&entryModel, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEscrowNotFound
		}
		return nil, err
	}

	return mappers.ToDomainEscrowEntry(&entryModel), nil
}

// SettleEntry is a guarded state flip: the WHERE clause on the current state
// makes concurrent settlements lose cleanly instead of double-applying.
func (r *DefaultEscrowRepository) SettleEntry(orderID string, from, to domain.EscrowState) error {
	now := time.Now()
	result := r.db.Model(&models.EscrowEntryModel{}).
		Where("order_id = ? AND state = ?", orderID, from).
		Updates(map[string]interface{}{
			"state":      to,
			"settled_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadySettled
	}
	return nil
}
