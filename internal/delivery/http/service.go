package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	disputeusecase "github.com/acctbay/acctbay-escrow-service/internal/usecase/dispute"
	orderusecase "github.com/acctbay/acctbay-escrow-service/internal/usecase/order"
)

// requesterHeader identifies the acting user. The API gateway authenticates
// the session and forwards the verified user ID in this header.
const requesterHeader = "X-User-ID"

type HttpService struct {
	orderUc   orderusecase.OrderUsecase
	disputeUc disputeusecase.DisputeUsecase
}

func NewHttpService(orderUc orderusecase.OrderUsecase, disputeUc disputeusecase.DisputeUsecase) *HttpService {
	return &HttpService{
		orderUc:   orderUc,
		disputeUc: disputeUc,
	}
}

func (httpSvc *HttpService) RegisterRoutes(e *echo.Echo) {
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			slog.Info("handled request",
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"request_id", values.RequestID,
			)
			return nil
		},
	}))

	v1 := e.Group("/v1")

	v1.POST("/orders", httpSvc.createOrderHandler)
	v1.GET("/orders", httpSvc.listOrdersHandler)
	v1.GET("/orders/statistics", httpSvc.orderStatisticsHandler)
	v1.GET("/orders/:id", httpSvc.getOrderHandler)
	v1.POST("/orders/:id/credentials", httpSvc.releaseCredentialsHandler)
	v1.POST("/orders/:id/confirm", httpSvc.confirmReceiptHandler)
	v1.POST("/orders/:id/decline", httpSvc.declineOrderHandler)

	v1.POST("/orders/:id/disputes", httpSvc.openDisputeHandler)
	v1.GET("/disputes", httpSvc.listDisputesHandler)
	v1.GET("/disputes/:id", httpSvc.getDisputeHandler)
	v1.POST("/disputes/:id/resolve", httpSvc.resolveDisputeHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
}

func requesterID(c echo.Context) string {
	return c.Request().Header.Get(requesterHeader)
}
