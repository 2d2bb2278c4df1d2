package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.OrderModel{},
		&models.DisputeModel{},
		&models.EscrowEntryModel{},
		&models.CredentialModel{},
	))
	return db
}

func seedOrder(t *testing.T, repo *DefaultOrderRepository, order *domain.Order) {
	t.Helper()
	require.NoError(t, repo.CreateOrder(order))
}

func baseOrder(id string) *domain.Order {
	now := time.Now()
	return &domain.Order{
		ID:             id,
		ListingID:      "listing-1",
		BuyerID:        "buyer-1",
		SellerID:       "seller-1",
		ListingTitle:   "aged gaming account",
		Price:          100,
		Currency:       "USD",
		Status:         domain.StatusWaitingForSeller,
		SellerDeadline: now.Add(30 * time.Minute),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestOrderRepositoryRoundtrip(t *testing.T) {
	repo := NewDefaultOrderRepository(newTestDB(t))

	order := baseOrder("11111111-1111-1111-1111-111111111111")
	seedOrder(t, repo, order)

	stored, err := repo.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
	assert.Equal(t, domain.StatusWaitingForSeller, stored.Status)
	assert.Equal(t, "aged gaming account", stored.ListingTitle)
	assert.True(t, stored.BuyerDeadline.IsZero(), "buyer deadline is unset until release")
}

func TestOrderRepositoryNotFound(t *testing.T) {
	repo := NewDefaultOrderRepository(newTestDB(t))

	_, err := repo.GetOrderByID("missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	repo := NewDefaultOrderRepository(newTestDB(t))
	order := baseOrder("22222222-2222-2222-2222-222222222222")
	seedOrder(t, repo, order)

	require.NoError(t, repo.UpdateOrderStatus(order.ID, domain.StatusCancelled))

	stored, err := repo.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}

func TestFindExpiredOrders(t *testing.T) {
	repo := NewDefaultOrderRepository(newTestDB(t))
	now := time.Now()

	expiredSeller := baseOrder("aaaaaaaa-0000-0000-0000-000000000001")
	expiredSeller.SellerDeadline = now.Add(-time.Minute)
	seedOrder(t, repo, expiredSeller)

	activeSeller := baseOrder("aaaaaaaa-0000-0000-0000-000000000002")
	activeSeller.SellerDeadline = now.Add(time.Hour)
	seedOrder(t, repo, activeSeller)

	expiredBuyer := baseOrder("aaaaaaaa-0000-0000-0000-000000000003")
	expiredBuyer.Status = domain.StatusWaitingForBuyer
	expiredBuyer.BuyerDeadline = now.Add(-time.Minute)
	seedOrder(t, repo, expiredBuyer)

	disputed := baseOrder("aaaaaaaa-0000-0000-0000-000000000004")
	disputed.Status = domain.StatusDisputed
	disputed.SellerDeadline = now.Add(-time.Hour)
	seedOrder(t, repo, disputed)

	completed := baseOrder("aaaaaaaa-0000-0000-0000-000000000005")
	completed.Status = domain.StatusCompleted
	completed.SellerDeadline = now.Add(-time.Hour)
	seedOrder(t, repo, completed)

	expired, err := repo.FindExpiredOrders()
	require.NoError(t, err)

	ids := make([]string, len(expired))
	for i, order := range expired {
		ids[i] = order.ID
	}
	assert.ElementsMatch(t, []string{expiredSeller.ID, expiredBuyer.ID}, ids,
		"disputed and terminal orders never expire")
}

func TestGetOrdersByUserIDFilters(t *testing.T) {
	repo := NewDefaultOrderRepository(newTestDB(t))

	cheap := baseOrder("bbbbbbbb-0000-0000-0000-000000000001")
	cheap.Price = 10
	seedOrder(t, repo, cheap)

	expensive := baseOrder("bbbbbbbb-0000-0000-0000-000000000002")
	expensive.Price = 900
	expensive.Status = domain.StatusCompleted
	seedOrder(t, repo, expensive)

	foreign := baseOrder("bbbbbbbb-0000-0000-0000-000000000003")
	foreign.BuyerID = "someone-else"
	foreign.SellerID = "someone-else-2"
	seedOrder(t, repo, foreign)

	orders, total, err := repo.GetOrdersByUserID("buyer-1", 1, 10, "price", "asc", domain.OrderFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, orders, 2)
	assert.Equal(t, cheap.ID, orders[0].ID, "ascending price sort")

	orders, total, err = repo.GetOrdersByUserID("buyer-1", 1, 10, "", "", domain.OrderFilters{MinPrice: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, expensive.ID, orders[0].ID)

	orders, total, err = repo.GetOrdersByUserID("buyer-1", 1, 10, "", "", domain.OrderFilters{
		Statuses: []string{string(domain.StatusCompleted)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, expensive.ID, orders[0].ID)

	// seller sees the same orders from the other side
	_, total, err = repo.GetOrdersByUserID("seller-1", 1, 10, "", "", domain.OrderFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestGetOrderStatistics(t *testing.T) {
	repo := NewDefaultOrderRepository(newTestDB(t))
	now := time.Now()

	completed := baseOrder("cccccccc-0000-0000-0000-000000000001")
	completed.Status = domain.StatusCompleted
	completed.Price = 150
	seedOrder(t, repo, completed)

	cancelled := baseOrder("cccccccc-0000-0000-0000-000000000002")
	cancelled.Status = domain.StatusCancelled
	cancelled.Price = 70
	seedOrder(t, repo, cancelled)

	disputed := baseOrder("cccccccc-0000-0000-0000-000000000003")
	disputed.Status = domain.StatusDisputed
	seedOrder(t, repo, disputed)

	stats, err := repo.GetOrderStatistics("buyer-1", now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.CompletedOrders)
	assert.Equal(t, 150.0, stats.CompletedAmount)
	assert.Equal(t, int64(1), stats.CancelledOrders)
	assert.Equal(t, 70.0, stats.CancelledAmount)
	assert.Equal(t, int64(1), stats.DisputedOrders)
}

func TestEscrowRepositorySettleGuard(t *testing.T) {
	repo := NewDefaultEscrowRepository(newTestDB(t))

	entry := &domain.EscrowEntry{
		ID:        "entry-1",
		OrderID:   "order-1",
		BuyerID:   "buyer-1",
		SellerID:  "seller-1",
		Amount:    100,
		Currency:  "USD",
		State:     domain.EscrowHeld,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateEntry(entry))

	require.NoError(t, repo.SettleEntry("order-1", domain.EscrowHeld, domain.EscrowReleased))

	stored, err := repo.GetEntryByOrderID("order-1")
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowReleased, stored.State)
	assert.NotNil(t, stored.SettledAt)

	err = repo.SettleEntry("order-1", domain.EscrowHeld, domain.EscrowRefunded)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled, "settled entry cannot flip again")
}

func TestEscrowRepositoryNotFound(t *testing.T) {
	repo := NewDefaultEscrowRepository(newTestDB(t))

	_, err := repo.GetEntryByOrderID("missing")
	assert.ErrorIs(t, err, domain.ErrEscrowNotFound)

	err = repo.SettleEntry("missing", domain.EscrowHeld, domain.EscrowReleased)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
}

func TestCredentialRepositoryUniquePerOrder(t *testing.T) {
	repo := NewDefaultCredentialRepository(newTestDB(t))

	first := &domain.Credential{
		ID:         "cred-1",
		OrderID:    "order-1",
		Ciphertext: []byte{0x01, 0x02, 0x03},
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.CreateCredential(first))

	second := &domain.Credential{
		ID:         "cred-2",
		OrderID:    "order-1",
		Ciphertext: []byte{0x04, 0x05},
		CreatedAt:  time.Now(),
	}
	err := repo.CreateCredential(second)
	assert.ErrorIs(t, err, domain.ErrAlreadyStored)

	stored, err := repo.GetCredentialByOrderID("order-1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, stored.Ciphertext, "the first payload wins")
}

func TestCredentialRepositoryNotFound(t *testing.T) {
	repo := NewDefaultCredentialRepository(newTestDB(t))

	_, err := repo.GetCredentialByOrderID("missing")
	assert.ErrorIs(t, err, domain.ErrCredentialsNotFound)
}

func TestDisputeRepositoryQueries(t *testing.T) {
	db := newTestDB(t)
	orderRepo := NewDefaultOrderRepository(db)
	disputeRepo := NewDefaultDisputeRepository(db)

	order := baseOrder("dddddddd-0000-0000-0000-000000000001")
	order.Status = domain.StatusDisputed
	seedOrder(t, orderRepo, order)

	dispute := &domain.Dispute{
		ID:                  "dispute-1",
		OrderID:             order.ID,
		OpenedBy:            "buyer-1",
		Reason:              domain.ReasonCredentialsInvalid,
		Description:         "password rejected",
		Status:              domain.DisputeOpen,
		OrderStatusOriginal: domain.StatusWaitingForBuyer,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	require.NoError(t, db.Create(mappers.ToGORMDispute(dispute)).Error)

	byID, err := disputeRepo.GetDisputeByID("dispute-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeOpen, byID.Status)
	assert.Equal(t, domain.ReasonCredentialsInvalid, byID.Reason)

	byOrder, err := disputeRepo.GetDisputeByOrderID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "dispute-1", byOrder.ID)

	listed, total, err := disputeRepo.GetDisputes(domain.GetDisputesFilter{OpenedBy: "buyer-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listed, 1)

	_, total, err = disputeRepo.GetDisputes(domain.GetDisputesFilter{Status: string(domain.DisputeResolved)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, err = disputeRepo.GetDisputeByOrderID("missing")
	assert.ErrorIs(t, err, domain.ErrDisputeNotFound)
}
