package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/config"
	orderusecase "github.com/acctbay/acctbay-escrow-service/internal/usecase/order"
)

// BackgroundTasks drives the deadline sweeper. The sweep is a safety net: the
// read path already applies expiry lazily, so orders nobody looks at are the
// only ones the ticker has to pick up.
type BackgroundTasks struct {
	OrderUsecase orderusecase.OrderUsecase
	Policy       config.Policy
}

func NewBackgroundTasks(orderUC orderusecase.OrderUsecase, policy config.Policy) *BackgroundTasks {
	return &BackgroundTasks{
		OrderUsecase: orderUC,
		Policy:       policy,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startExpiredOrderSweep(ctx)
}

func (bt *BackgroundTasks) startExpiredOrderSweep(ctx context.Context) {
	interval := bt.Policy.SweepInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.OrderUsecase.CancelExpiredOrders(ctx); err != nil {
				slog.Error("expired order sweep failed", "error", err.Error())
			}
		}
	}
}
