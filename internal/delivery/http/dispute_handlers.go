package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	disputedto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/dispute"
)

type openDisputeRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

type resolveDisputeRequest struct {
	Outcome string `json:"outcome"`
}

func (httpSvc *HttpService) openDisputeHandler(c echo.Context) error {
	var req openDisputeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Bad request: %s", err.Error()),
		})
	}
	actorID := requesterID(c)
	if actorID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "missing " + requesterHeader + " header",
		})
	}

	reason := domain.DisputeReason(req.Reason)
	switch reason {
	case domain.ReasonCredentialsInvalid,
		domain.ReasonAccountReclaimed,
		domain.ReasonNotAsDescribed,
		domain.ReasonSellerUnresponsive,
		domain.ReasonOther:
	case "":
		reason = domain.ReasonOther
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("unknown dispute reason: %s", req.Reason),
		})
	}

	dispute, err := httpSvc.disputeUc.OpenDispute(&disputedto.OpenDisputeInput{
		OrderID:     c.Param("id"),
		ActorID:     actorID,
		Reason:      reason,
		Description: req.Description,
	})
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, dispute)
}

// resolveDisputeHandler is a moderator endpoint. Moderator authentication is
// the gateway's job; this service only validates the verdict itself.
func (httpSvc *HttpService) resolveDisputeHandler(c echo.Context) error {
	var req resolveDisputeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Bad request: %s", err.Error()),
		})
	}

	outcome := domain.DisputeOutcome(req.Outcome)
	if outcome != domain.OutcomeReleaseToSeller && outcome != domain.OutcomeRefundToBuyer {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("unknown dispute outcome: %s", req.Outcome),
		})
	}

	resolution, err := httpSvc.disputeUc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID: c.Param("id"),
		Outcome:   outcome,
	})
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, resolution)
}

func (httpSvc *HttpService) getDisputeHandler(c echo.Context) error {
	dispute, err := httpSvc.disputeUc.GetDisputeByID(c.Param("id"))
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, disputedto.FromDomainDispute(dispute))
}

func (httpSvc *HttpService) listDisputesHandler(c echo.Context) error {
	disputes, err := httpSvc.disputeUc.GetDisputes(&disputedto.GetDisputesInput{
		OrderID:  c.QueryParam("order_id"),
		OpenedBy: c.QueryParam("opened_by"),
		Status:   c.QueryParam("status"),
		Page:     int(queryInt64(c, "page", 1)),
		Limit:    int(queryInt64(c, "limit", 20)),
	})
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, disputes)
}
