package models

import (
	"time"
)

type DisputeModel struct {
	ID                  string `gorm:"primaryKey"`
	OrderID             string `gorm:"uniqueIndex"`
	OpenedBy            string
	Reason              string
	Description         string
	Status              string
	Outcome             string
	OrderStatusOriginal string
	Order               OrderModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ResolvedAt          *time.Time
}
