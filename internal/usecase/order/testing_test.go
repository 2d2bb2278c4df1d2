package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/acctbay/acctbay-escrow-service/internal/config"
	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/crypto"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/metrics"
	escrowusecase "github.com/acctbay/acctbay-escrow-service/internal/usecase/escrow"
	vaultusecase "github.com/acctbay/acctbay-escrow-service/internal/usecase/vault"
)

const testCipherKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// memOrderRepo mirrors the transactional repository in memory: the critical
// operation checks the current status, applies the update and runs the side
// effect, committing nothing when the side effect fails.
type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *memOrderRepo) CreateOrder(order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *memOrderRepo) GetOrderByID(orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *memOrderRepo) UpdateOrderStatus(orderID string, newStatus domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = newStatus
	return nil
}

func (r *memOrderRepo) GetOrdersByUserID(userID string, page, limit int64, sortBy, sortOrder string, filters domain.OrderFilters) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Order
	for _, order := range r.orders {
		if order.BuyerID == userID || order.SellerID == userID {
			copied := *order
			matched = append(matched, &copied)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *memOrderRepo) FindExpiredOrders() ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var expired []*domain.Order
	for _, order := range r.orders {
		switch order.Status {
		case domain.StatusWaitingForSeller:
			if domain.Expired(order.SellerDeadline, now) {
				copied := *order
				expired = append(expired, &copied)
			}
		case domain.StatusWaitingForBuyer:
			if domain.Expired(order.BuyerDeadline, now) {
				copied := *order
				expired = append(expired, &copied)
			}
		}
	}
	return expired, nil
}

func (r *memOrderRepo) GetOrderStatistics(userID string, dateFrom, dateTo time.Time) (*domain.OrderStatistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &domain.OrderStatistics{}
	for _, order := range r.orders {
		if order.BuyerID != userID && order.SellerID != userID {
			continue
		}
		stats.TotalOrders++
		switch order.Status {
		case domain.StatusCompleted:
			stats.CompletedOrders++
			stats.CompletedAmount += order.Price
		case domain.StatusCancelled:
			stats.CancelledOrders++
			stats.CancelledAmount += order.Price
		case domain.StatusDisputed:
			stats.DisputedOrders++
		}
	}
	return stats, nil
}

func (r *memOrderRepo) ProcessOrderCriticalOperation(orderID string, from []domain.OrderStatus, update domain.OrderUpdate, sideEffect func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}

	allowed := false
	for _, status := range from {
		if order.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return domain.ErrInvalidTransition
	}

	if sideEffect != nil {
		if err := sideEffect(); err != nil {
			return err
		}
	}

	order.Status = update.NewStatus
	if update.CancelReason != "" {
		order.CancelReason = update.CancelReason
	}
	if update.BuyerDeadline != nil {
		order.BuyerDeadline = *update.BuyerDeadline
	}
	if update.CompletedAt != nil {
		order.CompletedAt = update.CompletedAt
	}
	order.UpdatedAt = time.Now()
	return nil
}

type memEscrowRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.EscrowEntry
}

func newMemEscrowRepo() *memEscrowRepo {
	return &memEscrowRepo{entries: make(map[string]*domain.EscrowEntry)}
}

func (r *memEscrowRepo) CreateEntry(entry *domain.EscrowEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.OrderID]; ok {
		return domain.ErrAlreadySettled
	}
	copied := *entry
	r.entries[entry.OrderID] = &copied
	return nil
}

func (r *memEscrowRepo) GetEntryByOrderID(orderID string) (*domain.EscrowEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[orderID]
	if !ok {
		return nil, domain.ErrEscrowNotFound
	}
	copied := *entry
	return &copied, nil
}

func (r *memEscrowRepo) SettleEntry(orderID string, from, to domain.EscrowState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[orderID]
	if !ok {
		return domain.ErrEscrowNotFound
	}
	if entry.State != from {
		return domain.ErrAlreadySettled
	}
	entry.State = to
	return nil
}

type memCredentialRepo struct {
	mu    sync.Mutex
	creds map[string]*domain.Credential
}

func newMemCredentialRepo() *memCredentialRepo {
	return &memCredentialRepo{creds: make(map[string]*domain.Credential)}
}

func (r *memCredentialRepo) CreateCredential(cred *domain.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.creds[cred.OrderID]; ok {
		return domain.ErrAlreadyStored
	}
	r.creds[cred.OrderID] = cred
	return nil
}

func (r *memCredentialRepo) GetCredentialByOrderID(orderID string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cred, ok := r.creds[orderID]
	if !ok {
		return nil, domain.ErrCredentialsNotFound
	}
	return cred, nil
}

type recordingProvider struct {
	mu       sync.Mutex
	balances map[string]float64
	holds    []string
	releases []string
	refunds  []string

	failHold error
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{balances: make(map[string]float64)}
}

func (p *recordingProvider) GetBalance(userID string) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balances[userID], nil
}

func (p *recordingProvider) Hold(userID, orderID string, amount float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failHold != nil {
		return p.failHold
	}
	p.holds = append(p.holds, orderID)
	return nil
}

func (p *recordingProvider) Release(userID, orderID string, amount float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releases = append(p.releases, orderID)
	return nil
}

func (p *recordingProvider) Refund(userID, orderID string, amount float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refunds = append(p.refunds, orderID)
	return nil
}

func (p *recordingProvider) releaseCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.releases)
}

func (p *recordingProvider) refundCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.refunds)
}

type memListingCatalog struct {
	mu       sync.Mutex
	listings map[string]*domain.Listing
}

func newMemListingCatalog() *memListingCatalog {
	return &memListingCatalog{listings: make(map[string]*domain.Listing)}
}

func (c *memListingCatalog) GetListing(listingID string) (*domain.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	listing, ok := c.listings[listingID]
	if !ok {
		return nil, domain.ErrListingUnavailable
	}
	copied := *listing
	return &copied, nil
}

func (c *memListingCatalog) SetAvailability(listingID string, available bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if listing, ok := c.listings[listingID]; ok {
		listing.Available = available
	}
	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(topic string, msgs ...domain.Message) error { return nil }

// testEnv wires the order usecase against in-memory collaborators with a
// real escrow ledger and a real vault behind it.
type testEnv struct {
	uc       *DefaultOrderUsecase
	orders   *memOrderRepo
	escrow   *memEscrowRepo
	creds    *memCredentialRepo
	provider *recordingProvider
	catalog  *memListingCatalog
}

func defaultTestPolicy() config.Policy {
	return config.Policy{
		SellerWindow:       30 * time.Minute,
		BuyerWindow:        24 * time.Hour,
		BuyerTimeoutPolicy: config.BuyerTimeoutCancel,
		SweepInterval:      30 * time.Second,
	}
}

func newTestEnv(t *testing.T, policy config.Policy) *testEnv {
	t.Helper()

	orders := newMemOrderRepo()
	escrowRepo := newMemEscrowRepo()
	credRepo := newMemCredentialRepo()
	provider := newRecordingProvider()
	catalog := newMemListingCatalog()

	cipher, err := crypto.NewAESEncryptor(testCipherKey)
	require.NoError(t, err)

	escrowUc := escrowusecase.NewDefaultEscrowUsecase(escrowRepo, provider)
	vaultUc := vaultusecase.NewDefaultVaultUsecase(credRepo, orders, cipher)

	uc := NewDefaultOrderUsecase(
		orders,
		escrowUc,
		vaultUc,
		catalog,
		provider,
		noopPublisher{},
		metrics.NewOrderMetrics(prometheus.NewRegistry()),
		policy,
	)

	return &testEnv{
		uc:       uc,
		orders:   orders,
		escrow:   escrowRepo,
		creds:    credRepo,
		provider: provider,
		catalog:  catalog,
	}
}

func (env *testEnv) addListing(listing *domain.Listing) {
	env.catalog.mu.Lock()
	defer env.catalog.mu.Unlock()
	env.catalog.listings[listing.ID] = listing
}

func (env *testEnv) setBalance(userID string, balance float64) {
	env.provider.mu.Lock()
	defer env.provider.mu.Unlock()
	env.provider.balances[userID] = balance
}

func (env *testEnv) forceDeadline(t *testing.T, orderID string, sellerDeadline, buyerDeadline time.Time) {
	t.Helper()
	env.orders.mu.Lock()
	defer env.orders.mu.Unlock()
	order, ok := env.orders.orders[orderID]
	require.True(t, ok)
	order.SellerDeadline = sellerDeadline
	order.BuyerDeadline = buyerDeadline
}
