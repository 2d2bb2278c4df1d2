package models

import (
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
)

type OrderModel struct {
	ID             string             `gorm:"primaryKey;type:uuid"`
	ListingID      string             `gorm:"index"`
	BuyerID        string             `gorm:"index:idx_buyer"`
	SellerID       string             `gorm:"index:idx_seller"`
	ListingTitle   string
	Price          float64            `gorm:"index:idx_price"`
	Currency       string
	Status         domain.OrderStatus `gorm:"index:idx_status_deadline"`
	CancelReason   string
	SellerDeadline time.Time          `gorm:"index:idx_status_deadline"`
	BuyerDeadline  *time.Time
	CreatedAt      time.Time          `gorm:"index:idx_created_at"`
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}
