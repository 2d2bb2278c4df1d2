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

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.Create(orderModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(orderID string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) UpdateOrderStatus(orderID string, newStatus domain.OrderStatus) error {
	return r.DB.Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		Update("status", newStatus).Error
}

func (r *DefaultOrderRepository) GetOrdersByUserID(
	userID string,
	page, limit int64,
	sortBy, sortOrder string,
	filters domain.OrderFilters,
) ([]*domain.Order, int64, error) {
	var orderModels []models.OrderModel
	var total int64

	safeSortBy := "created_at"
	switch sortBy {
	case "price":
		safeSortBy = "price"
	case "seller_deadline":
		safeSortBy = "seller_deadline"
	case "created_at":
		safeSortBy = "created_at"
	}

	safeSortOrder := "DESC"
	if strings.ToUpper(sortOrder) == "ASC" {
		safeSortOrder = "ASC"
	}

	baseQuery := r.DB.Model(&models.OrderModel{}).
		Where("buyer_id = ? OR seller_id = ?", userID, userID)

	if len(filters.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN (?)", filters.Statuses)
	}
	if filters.MinPrice > 0 {
		baseQuery = baseQuery.Where("price >= ?", filters.MinPrice)
	}
	if filters.MaxPrice > 0 {
		baseQuery = baseQuery.Where("price <= ?", filters.MaxPrice)
	}
	if !filters.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		baseQuery = baseQuery.Where("created_at <= ?", filters.DateTo)
	}
	if filters.ListingID != "" {
		baseQuery = baseQuery.Where("listing_id = ?", filters.ListingID)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Order(fmt.Sprintf("%s %s", safeSortBy, safeSortOrder)).
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&orderModels).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}

	return orders, total, nil
}

// FindExpiredOrders returns active orders whose current deadline has lapsed.
// DISPUTED orders are excluded by construction: no expiry applies to them.
func (r *DefaultOrderRepository) FindExpiredOrders() ([]*domain.Order, error) {
	now := time.Now()
	var orderModels []models.OrderModel
	if err := r.DB.
		Where("(status = ? AND seller_deadline < ?) OR (status = ? AND buyer_deadline < ?)",
			domain.StatusWaitingForSeller, now,
			domain.StatusWaitingForBuyer, now).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}

	return orders, nil
}

func (r *DefaultOrderRepository) GetOrderStatistics(userID string, dateFrom, dateTo time.Time) (*domain.OrderStatistics, error) {
	var stats domain.OrderStatistics

	baseQuery := func() *gorm.DB {
		return r.DB.
			Model(&models.OrderModel{}).
			Where("buyer_id = ? OR seller_id = ?", userID, userID).
			Where("created_at BETWEEN ? AND ?", dateFrom, dateTo)
	}

	if err := baseQuery().Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("count total orders: %w", err)
	}

	type outcomeAgg struct {
		Count int64
		Sum   float64
	}

	var completed outcomeAgg
	if err := baseQuery().
		Where("status = ?", domain.StatusCompleted).
		Select("COUNT(*) as count, COALESCE(SUM(price), 0) as sum").
		Scan(&completed).Error; err != nil {
		return nil, fmt.Errorf("completed agg: %w", err)
	}
	stats.CompletedOrders = completed.Count
	stats.CompletedAmount = completed.Sum

	var cancelled outcomeAgg
	if err := baseQuery().
		Where("status = ?", domain.StatusCancelled).
		Select("COUNT(*) as count, COALESCE(SUM(price), 0) as sum").
		Scan(&cancelled).Error; err != nil {
		return nil, fmt.Errorf("cancelled agg: %w", err)
	}
	stats.CancelledOrders = cancelled.Count
	stats.CancelledAmount = cancelled.Sum

	if err := baseQuery().
		Where("status = ?", domain.StatusDisputed).
		Count(&stats.DisputedOrders).Error; err != nil {
		return nil, fmt.Errorf("count disputed orders: %w", err)
	}

	return &stats, nil
}

// ProcessOrderCriticalOperation serializes transitions per order with a row
// lock. The status check, field updates and the escrow side effect commit
// together or not at all.
func (r *DefaultOrderRepository) ProcessOrderCriticalOperation(
	orderID string,
	from []domain.OrderStatus,
	update domain.OrderUpdate,
	sideEffect func() error,
) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var orderModel models.OrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&orderModel, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		allowed := false
		for _, status := range from {
			if orderModel.Status == status {
				allowed = true
				break
			}
		}
		if !allowed {
			return domain.ErrInvalidTransition
		}

		changes := map[string]interface{}{
			"status":     update.NewStatus,
			"updated_at": time.Now(),
		}
		if update.CancelReason != "" {
			changes["cancel_reason"] = string(update.CancelReason)
		}
		if update.BuyerDeadline != nil {
			changes["buyer_deadline"] = *update.BuyerDeadline
		}
		if update.CompletedAt != nil {
			changes["completed_at"] = *update.CompletedAt
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
