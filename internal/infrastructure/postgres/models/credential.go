package models

import "time"

type CredentialModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	OrderID    string `gorm:"uniqueIndex"`
	Ciphertext []byte
	CreatedAt  time.Time
}
