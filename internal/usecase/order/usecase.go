package usecase

import (
	"context"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/config"
	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/metrics"
	orderdto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error)
	GetOrder(orderID, requesterID string) (*orderdto.OrderOutput, error)
	ReleaseCredentials(orderID, sellerID, payload string) (*orderdto.OrderOutput, error)
	ConfirmReceipt(orderID, buyerID string) (*orderdto.OrderOutput, error)
	DeclineOrder(orderID, sellerID string) (*orderdto.OrderOutput, error)
	CancelExpiredOrders(ctx context.Context) error

	GetOrdersByUserID(input *orderdto.GetOrdersInput) (*orderdto.GetOrdersOutput, error)
	GetOrderStatistics(userID string, dateFrom, dateTo time.Time) (*domain.OrderStatistics, error)
}

// DefaultOrderUsecase is the order state machine. It owns every Order.status
// transition; the escrow ledger and the credential vault are invoked as side
// effects inside the transition's critical section.
type DefaultOrderUsecase struct {
	OrderRepo domain.OrderRepository
	Escrow    domain.EscrowUsecase
	Vault     domain.VaultUsecase
	Listings  domain.ListingCatalog
	Provider  domain.PaymentProvider
	Publisher domain.PublisherPort
	Metrics   *metrics.OrderMetrics
	Policy    config.Policy
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	escrow domain.EscrowUsecase,
	vault domain.VaultUsecase,
	listings domain.ListingCatalog,
	provider domain.PaymentProvider,
	publisher domain.PublisherPort,
	orderMetrics *metrics.OrderMetrics,
	policy config.Policy,
) *DefaultOrderUsecase {

	return &DefaultOrderUsecase{
		OrderRepo: orderRepo,
		Escrow:    escrow,
		Vault:     vault,
		Listings:  listings,
		Provider:  provider,
		Publisher: publisher,
		Metrics:   orderMetrics,
		Policy:    policy,
	}
}
