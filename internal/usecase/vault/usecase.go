package usecase

import (
	"errors"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/google/uuid"
)

// DefaultVaultUsecase stores seller-submitted transfer credentials encrypted
// at rest and reveals them to the buyer only after release.
type DefaultVaultUsecase struct {
	CredentialRepo domain.CredentialRepository
	OrderRepo      domain.OrderRepository
	Cipher         domain.CredentialCipher
}

func NewDefaultVaultUsecase(
	credentialRepo domain.CredentialRepository,
	orderRepo domain.OrderRepository,
	cipher domain.CredentialCipher,
) *DefaultVaultUsecase {
	return &DefaultVaultUsecase{
		CredentialRepo: credentialRepo,
		OrderRepo:      orderRepo,
		Cipher:         cipher,
	}
}

func (uc *DefaultVaultUsecase) Store(orderID, payload string) error {
	if _, err := uc.CredentialRepo.GetCredentialByOrderID(orderID); err == nil {
		return domain.ErrAlreadyStored
	} else if !errors.Is(err, domain.ErrCredentialsNotFound) {
		return err
	}

	ciphertext, err := uc.Cipher.Encrypt([]byte(payload))
	if err != nil {
		return err
	}

	return uc.CredentialRepo.CreateCredential(&domain.Credential{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		Ciphertext: ciphertext,
		CreatedAt:  time.Now(),
	})
}

func (uc *DefaultVaultUsecase) Reveal(orderID, requesterID string) (string, error) {
	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		return "", err
	}

	if !order.IsBuyer(requesterID) {
		return "", domain.ErrForbidden
	}
	if order.Status != domain.StatusWaitingForBuyer && order.Status != domain.StatusCompleted {
		return "", domain.ErrForbidden
	}

	cred, err := uc.CredentialRepo.GetCredentialByOrderID(orderID)
	if err != nil {
		return "", err
	}

	plaintext, err := uc.Cipher.Decrypt(cred.Ciphertext)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

func (uc *DefaultVaultUsecase) HasCredentials(orderID string) (bool, error) {
	_, err := uc.CredentialRepo.GetCredentialByOrderID(orderID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrCredentialsNotFound) {
		return false, nil
	}
	return false, err
}
