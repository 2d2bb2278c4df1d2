package models

import (
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
)

type EscrowEntryModel struct {
	ID        string             `gorm:"primaryKey;type:uuid"`
	OrderID   string             `gorm:"uniqueIndex"`
	BuyerID   string
	SellerID  string
	Amount    float64
	Currency  string
	State     domain.EscrowState `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	SettledAt *time.Time
}
