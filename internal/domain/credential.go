package domain

import "time"

// Credential is the seller-submitted transfer payload, stored encrypted.
type Credential struct {
	ID         string
	OrderID    string
	Ciphertext []byte
	CreatedAt  time.Time
}

type CredentialRepository interface {
	CreateCredential(cred *Credential) error
	GetCredentialByOrderID(orderID string) (*Credential, error)
}

type CredentialCipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

type VaultUsecase interface {
	// Store accepts the payload exactly once per order.
	Store(orderID, payload string) error
	// Reveal returns the plaintext only to the order's buyer and only after
	// the credentials have been released.
	Reveal(orderID, requesterID string) (string, error)
	HasCredentials(orderID string) (bool, error)
}
