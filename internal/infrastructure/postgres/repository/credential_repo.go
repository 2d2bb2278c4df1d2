package repository

import (
	"errors"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCredentialRepository struct {
	db *gorm.DB
}

func NewDefaultCredentialRepository(db *gorm.DB) *DefaultCredentialRepository {
	return &DefaultCredentialRepository{db: db}
}

func (r *DefaultCredentialRepository) CreateCredential(cred *domain.Credential) error {
	credModel := mappers.ToGORMCredential(cred)
	if err := r.db.Create(credModel).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyStored
		}
		return err
	}
	return nil
}

func (r *DefaultCredentialRepository) GetCredentialByOrderID(orderID string) (*domain.Credential, error) {
	var credModel models.CredentialModel
	if err := r.db.First(&credModel, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsNotFound
		}
		return nil, err
	}

	return mappers.ToDomainCredential(&credModel), nil
}
