package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrderMetrics covers the order lifecycle and escrow fund movements.
type OrderMetrics struct {
	OrdersCreatedTotal   *prometheus.CounterVec
	OrdersCompletedTotal *prometheus.CounterVec
	OrdersCancelledTotal *prometheus.CounterVec

	DisputesOpenedTotal   *prometheus.CounterVec
	DisputesResolvedTotal *prometheus.CounterVec

	EscrowHeldAmountTotal     *prometheus.CounterVec
	EscrowReleasedAmountTotal *prometheus.CounterVec
	EscrowRefundedAmountTotal *prometheus.CounterVec

	OrderSettlementDuration *prometheus.HistogramVec

	OrderErrorsTotal *prometheus.CounterVec
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	factory := promauto.With(reg)
	return &OrderMetrics{
		OrdersCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Total number of orders created",
			},
			[]string{"currency"},
		),

		OrdersCompletedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_completed_total",
				Help: "Total number of completed orders",
			},
			[]string{"currency"},
		),

		OrdersCancelledTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_cancelled_total",
				Help: "Total number of cancelled orders by reason",
			},
			[]string{"reason"},
		),

		DisputesOpenedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_opened_total",
				Help: "Total number of disputes opened by reason",
			},
			[]string{"reason"},
		),

		DisputesResolvedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_resolved_total",
				Help: "Total number of disputes resolved by outcome",
			},
			[]string{"outcome"},
		),

		EscrowHeldAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_held_amount_total",
				Help: "Total amount of funds placed on hold",
			},
			[]string{"currency"},
		),

		EscrowReleasedAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_released_amount_total",
				Help: "Total amount of funds released to sellers",
			},
			[]string{"currency"},
		),

		EscrowRefundedAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_refunded_amount_total",
				Help: "Total amount of funds refunded to buyers",
			},
			[]string{"currency"},
		),

		OrderSettlementDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "order_settlement_duration_seconds",
				Help:    "Time from order creation to terminal status in seconds",
				Buckets: prometheus.ExponentialBuckets(60, 2, 12),
			},
			[]string{"outcome"},
		),

		OrderErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_errors_total",
				Help: "Total number of order operation errors",
			},
			[]string{"operation", "error_type"},
		),
	}
}

func (m *OrderMetrics) RecordOrderCreated(currency string) {
	m.OrdersCreatedTotal.WithLabelValues(currency).Inc()
}

func (m *OrderMetrics) RecordOrderCompleted(currency string, settlementSeconds float64) {
	m.OrdersCompletedTotal.WithLabelValues(currency).Inc()
	m.OrderSettlementDuration.WithLabelValues("completed").Observe(settlementSeconds)
}

func (m *OrderMetrics) RecordOrderCancelled(reason string, settlementSeconds float64) {
	m.OrdersCancelledTotal.WithLabelValues(reason).Inc()
	m.OrderSettlementDuration.WithLabelValues("cancelled").Observe(settlementSeconds)
}

func (m *OrderMetrics) RecordDisputeOpened(reason string) {
	m.DisputesOpenedTotal.WithLabelValues(reason).Inc()
}

func (m *OrderMetrics) RecordDisputeResolved(outcome string) {
	m.DisputesResolvedTotal.WithLabelValues(outcome).Inc()
}

func (m *OrderMetrics) RecordEscrowHeld(currency string, amount float64) {
	m.EscrowHeldAmountTotal.WithLabelValues(currency).Add(amount)
}

func (m *OrderMetrics) RecordEscrowReleased(currency string, amount float64) {
	m.EscrowReleasedAmountTotal.WithLabelValues(currency).Add(amount)
}

func (m *OrderMetrics) RecordEscrowRefunded(currency string, amount float64) {
	m.EscrowRefundedAmountTotal.WithLabelValues(currency).Add(amount)
}

func (m *OrderMetrics) RecordError(operation, errorType string) {
	m.OrderErrorsTotal.WithLabelValues(operation, errorType).Inc()
}
