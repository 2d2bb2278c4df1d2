package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	orderdto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/order"
)

type createOrderRequest struct {
	ListingID string `json:"listing_id"`
}

type releaseCredentialsRequest struct {
	Credentials string `json:"credentials"`
}

func (httpSvc *HttpService) createOrderHandler(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Bad request: %s", err.Error()),
		})
	}
	if req.ListingID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "listing_id is required",
		})
	}
	buyerID := requesterID(c)
	if buyerID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "missing " + requesterHeader + " header",
		})
	}

	order, err := httpSvc.orderUc.CreateOrder(&orderdto.CreateOrderInput{
		ListingID: req.ListingID,
		BuyerID:   buyerID,
	})
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, order)
}

func (httpSvc *HttpService) getOrderHandler(c echo.Context) error {
	order, err := httpSvc.orderUc.GetOrder(c.Param("id"), requesterID(c))
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, order)
}

func (httpSvc *HttpService) releaseCredentialsHandler(c echo.Context) error {
	var req releaseCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Bad request: %s", err.Error()),
		})
	}
	if req.Credentials == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "credentials are required",
		})
	}

	order, err := httpSvc.orderUc.ReleaseCredentials(c.Param("id"), requesterID(c), req.Credentials)
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, order)
}

func (httpSvc *HttpService) confirmReceiptHandler(c echo.Context) error {
	order, err := httpSvc.orderUc.ConfirmReceipt(c.Param("id"), requesterID(c))
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, order)
}

func (httpSvc *HttpService) declineOrderHandler(c echo.Context) error {
	order, err := httpSvc.orderUc.DeclineOrder(c.Param("id"), requesterID(c))
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, order)
}

func (httpSvc *HttpService) listOrdersHandler(c echo.Context) error {
	userID := requesterID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "missing " + requesterHeader + " header",
		})
	}

	input := &orderdto.GetOrdersInput{
		UserID:    userID,
		Page:      queryInt64(c, "page", 1),
		Limit:     queryInt64(c, "limit", 20),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
		Filters:   parseOrderFilters(c),
	}

	orders, err := httpSvc.orderUc.GetOrdersByUserID(input)
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, orders)
}

func (httpSvc *HttpService) orderStatisticsHandler(c echo.Context) error {
	userID := requesterID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "missing " + requesterHeader + " header",
		})
	}

	stats, err := httpSvc.orderUc.GetOrderStatistics(userID, queryTime(c, "date_from"), queryTime(c, "date_to"))
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

func parseOrderFilters(c echo.Context) domain.OrderFilters {
	filters := domain.OrderFilters{
		ListingID: c.QueryParam("listing_id"),
		DateFrom:  queryTime(c, "date_from"),
		DateTo:    queryTime(c, "date_to"),
	}
	if statuses := c.QueryParam("statuses"); statuses != "" {
		filters.Statuses = strings.Split(statuses, ",")
	}
	if minPrice := c.QueryParam("min_price"); minPrice != "" {
		if parsed, err := strconv.ParseFloat(minPrice, 64); err == nil {
			filters.MinPrice = parsed
		}
	}
	if maxPrice := c.QueryParam("max_price"); maxPrice != "" {
		if parsed, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			filters.MaxPrice = parsed
		}
	}
	return filters
}

func queryInt64(c echo.Context, name string, fallback int64) int64 {
	if raw := c.QueryParam(name); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func queryTime(c echo.Context, name string) time.Time {
	if raw := c.QueryParam(name); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
