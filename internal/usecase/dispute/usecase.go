package usecase

import (
	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/metrics"
	disputedto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/dispute"
)

type DisputeUsecase interface {
	OpenDispute(input *disputedto.OpenDisputeInput) (*disputedto.DisputeOutput, error)
	ResolveDispute(input *disputedto.ResolveDisputeInput) (*disputedto.ResolveDisputeOutput, error)
	GetDisputeByID(disputeID string) (*domain.Dispute, error)
	GetDisputeByOrderID(orderID string) (*domain.Dispute, error)
	GetDisputes(input *disputedto.GetDisputesInput) (*disputedto.GetDisputesOutput, error)
}

// DefaultDisputeUsecase freezes an active order pending moderation and is
// the only path to a terminal status other than the normal lifecycle.
type DefaultDisputeUsecase struct {
	DisputeRepo domain.DisputeRepository
	OrderRepo   domain.OrderRepository
	Escrow      domain.EscrowUsecase
	Listings    domain.ListingCatalog
	Publisher   domain.PublisherPort
	Metrics     *metrics.OrderMetrics
}

func NewDefaultDisputeUsecase(
	disputeRepo domain.DisputeRepository,
	orderRepo domain.OrderRepository,
	escrow domain.EscrowUsecase,
	listings domain.ListingCatalog,
	publisher domain.PublisherPort,
	orderMetrics *metrics.OrderMetrics,
) *DefaultDisputeUsecase {
	return &DefaultDisputeUsecase{
		DisputeRepo: disputeRepo,
		OrderRepo:   orderRepo,
		Escrow:      escrow,
		Listings:    listings,
		Publisher:   publisher,
		Metrics:     orderMetrics,
	}
}
