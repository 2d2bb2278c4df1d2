package mappers

import (
	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainEscrowEntry(model *models.EscrowEntryModel) *domain.EscrowEntry {
	return &domain.EscrowEntry{
		ID:        model.ID,
		OrderID:   model.OrderID,
		BuyerID:   model.BuyerID,
		SellerID:  model.SellerID,
		Amount:    model.Amount,
		Currency:  model.Currency,
		State:     model.State,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		SettledAt: model.SettledAt,
	}
}

func ToGORMEscrowEntry(entry *domain.EscrowEntry) *models.EscrowEntryModel {
	return &models.EscrowEntryModel{
		ID:        entry.ID,
		OrderID:   entry.OrderID,
		BuyerID:   entry.BuyerID,
		SellerID:  entry.SellerID,
		Amount:    entry.Amount,
		Currency:  entry.Currency,
		State:     entry.State,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
		SettledAt: entry.SettledAt,
	}
}

func ToDomainCredential(model *models.CredentialModel) *domain.Credential {
	return &domain.Credential{
		ID:         model.ID,
		OrderID:    model.OrderID,
		Ciphertext: model.Ciphertext,
		CreatedAt:  model.CreatedAt,
	}
}

func ToGORMCredential(cred *domain.Credential) *models.CredentialModel {
	return &models.CredentialModel{
		ID:         cred.ID,
		OrderID:    cred.OrderID,
		Ciphertext: cred.Ciphertext,
		CreatedAt:  cred.CreatedAt,
	}
}
