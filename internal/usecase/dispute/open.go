package usecase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
	publisher "github.com/acctbay/acctbay-escrow-service/internal/infrastructure/kafka"
	disputedto "github.com/acctbay/acctbay-escrow-service/internal/usecase/dto/dispute"
	"github.com/jaevor/go-nanoid"
)

// OpenDispute freezes an active order into DISPUTED. While disputed the
// escrow hold stays put and no expiry transition applies; only ResolveDispute
// can move the order again.
func (uc *DefaultDisputeUsecase) OpenDispute(input *disputedto.OpenDisputeInput) (*disputedto.DisputeOutput, error) {
	order, err := uc.OrderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Status == domain.StatusDisputed {
		return nil, domain.ErrDuplicateDispute
	}
	if order.IsTerminal() {
		return nil, domain.ErrAlreadyTerminal
	}
	if !order.IsBuyer(input.ActorID) && !order.IsSeller(input.ActorID) {
		return nil, domain.ErrForbidden
	}

	if _, err := uc.DisputeRepo.GetDisputeByOrderID(input.OrderID); err == nil {
		return nil, domain.ErrDuplicateDispute
	} else if !errors.Is(err, domain.ErrDisputeNotFound) {
		return nil, err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dispute := &domain.Dispute{
		ID:          idGenerator(),
		OrderID:     input.OrderID,
		OpenedBy:    input.ActorID,
		Reason:      input.Reason,
		Description: input.Description,
		Status:      domain.DisputeOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.DisputeRepo.CreateDisputeWithOrderFreeze(dispute); err != nil {
		return nil, err
	}

	uc.Metrics.RecordDisputeOpened(string(dispute.Reason))
	uc.publishDisputeEvent(dispute)

	return disputedto.FromDomainDispute(dispute), nil
}

func (uc *DefaultDisputeUsecase) publishDisputeEvent(dispute *domain.Dispute) {
	event := publisher.DisputeEvent{
		DisputeID: dispute.ID,
		OrderID:   dispute.OrderID,
		OpenedBy:  dispute.OpenedBy,
		Reason:    string(dispute.Reason),
		Status:    string(dispute.Status),
		Outcome:   string(dispute.Outcome),
	}

	go func() {
		value, err := json.Marshal(event)
		if err != nil {
			slog.Error("failed to marshal dispute event", "dispute_id", event.DisputeID, "error", err.Error())
			return
		}
		if err := uc.Publisher.Publish(publisher.DisputeEventsTopic, domain.Message{
			Key:   []byte(event.OrderID),
			Value: value,
		}); err != nil {
			slog.Error("failed to publish dispute event", "dispute_id", event.DisputeID, "error", err.Error())
		}
	}()
}
