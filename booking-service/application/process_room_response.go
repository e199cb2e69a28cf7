package application

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
	"github.com/stayware/hotel-system/shared/telemetry"
)

// ProcessRoomResponseCommand carries a room service response event
type ProcessRoomResponseCommand struct {
	SagaID string `json:"saga_id"`
	Topic  string `json:"topic"`
	Reason string `json:"reason,omitempty"`
}

// ProcessRoomResponse use case. Consumes room service acknowledgements and
// advances or compensates the saga. Idempotency comes from the outbox: a
// response whose request row is already closed is a duplicate and is
// dropped without side effects.
type ProcessRoomResponse struct {
	bookingRepository domain.BookingRepository
	outboxStore       outbox.Store
}

// NewProcessRoomResponse creates a new ProcessRoomResponse use case
func NewProcessRoomResponse(bookingRepository domain.BookingRepository, outboxStore outbox.Store) *ProcessRoomResponse {
	return &ProcessRoomResponse{
		bookingRepository: bookingRepository,
		outboxStore:       outboxStore,
	}
}

// Execute executes the process room response use case
func (uc *ProcessRoomResponse) Execute(ctx context.Context, cmd *ProcessRoomResponseCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "ProcessRoomResponse.Execute")
	defer span.End()

	if cmd.SagaID == "" {
		return errors.New("saga ID is required")
	}

	sagaID, err := models.NewID(cmd.SagaID)
	if err != nil {
		return errors.Wrap(err, "invalid saga ID")
	}

	message, err := uc.outboxStore.FindActive(ctx, sagaID, outbox.TargetRoom)
	if err != nil {
		if errors.Is(err, outbox.ErrMessageNotFound) {
			// Duplicate or stale response; the conversation already moved on.
			telemetry.RecordCounter(ctx, "saga_duplicate_responses_total", "Responses dropped as duplicates", 1,
				attribute.String("target", string(outbox.TargetRoom)))
			return nil
		}
		return errors.Wrap(err, "failed to find active room message")
	}

	booking, err := uc.bookingRepository.FindBySagaID(ctx, sagaID)
	if err != nil {
		return errors.Wrap(err, "failed to find booking")
	}
	if booking == nil {
		return errors.Wrapf(domain.ErrBookingNotFound, "saga %s", sagaID)
	}

	switch message.Topic.String() {
	case events.RoomReserveRequestedEvent:
		if message.SagaStatus == saga.StatusCompensating {
			return uc.resolveCancelledReserve(ctx, booking, message, cmd)
		}
		return uc.resolveReserve(ctx, booking, message, cmd)
	case events.RoomReleaseRequestedEvent:
		return uc.resolveRelease(ctx, booking, message, cmd)
	}

	return errors.Errorf("unexpected active room message topic %s for saga %s", message.Topic, sagaID)
}

// resolveReserve handles the answer to a live reservation request.
func (uc *ProcessRoomResponse) resolveReserve(ctx context.Context, booking *domain.Booking, message *outbox.Message, cmd *ProcessRoomResponseCommand) error {
	switch cmd.Topic {
	case events.RoomReservedEvent:
		if err := booking.Confirm(); err != nil {
			return err
		}
		if err := message.Close(outbox.StatusCompleted, saga.StatusSucceeded); err != nil {
			return err
		}

		notification, err := notificationMessage(booking, saga.StatusProcessing)
		if err != nil {
			return errors.Wrap(err, "failed to build notification message")
		}

		return uc.bookingRepository.Save(ctx, booking, message, notification)

	case events.RoomReserveRejectedEvent:
		// Roll the deposit step back and return the customer's money.
		if err := booking.Compensate(); err != nil {
			return err
		}
		if err := message.Close(outbox.StatusFailed, saga.StatusCompensated); err != nil {
			return err
		}

		refund, err := bookingMessage(booking, outbox.TargetPayment, events.PaymentDepositRefundRequestedEvent, PaymentRefundRequest{
			BookingID:  booking.ID,
			SagaID:     booking.SagaID,
			CustomerID: booking.CustomerID,
			Reason:     cmd.Reason,
		}, saga.StatusCompensating)
		if err != nil {
			return errors.Wrap(err, "failed to build refund message")
		}

		telemetry.RecordCounter(ctx, "saga_compensations_total", "Saga compensations triggered", 1,
			attribute.String("step", "room_reserve"))

		return uc.bookingRepository.Save(ctx, booking, message, refund)
	}

	return errors.Errorf("unexpected room response topic %s", cmd.Topic)
}

// resolveCancelledReserve handles a reservation answer that arrived after
// the booking was cancelled. A successful hold is released; a rejection
// means there is nothing left to unwind.
func (uc *ProcessRoomResponse) resolveCancelledReserve(ctx context.Context, booking *domain.Booking, message *outbox.Message, cmd *ProcessRoomResponseCommand) error {
	switch cmd.Topic {
	case events.RoomReservedEvent:
		if err := message.Close(outbox.StatusCompleted, saga.StatusCompensated); err != nil {
			return err
		}

		release, err := bookingMessage(booking, outbox.TargetRoom, events.RoomReleaseRequestedEvent, RoomReleaseRequest{
			BookingID: booking.ID,
			SagaID:    booking.SagaID,
			Rooms:     booking.Rooms,
			Reason:    cmd.Reason,
		}, saga.StatusCompensating)
		if err != nil {
			return errors.Wrap(err, "failed to build room release message")
		}

		return uc.bookingRepository.Save(ctx, booking, message, release)

	case events.RoomReserveRejectedEvent:
		if err := message.Close(outbox.StatusFailed, saga.StatusCompensated); err != nil {
			return err
		}
		return uc.finalize(ctx, booking, message)
	}

	return errors.Errorf("unexpected room response topic %s", cmd.Topic)
}

// resolveRelease handles the room service acknowledging an unwind; it is
// the last outstanding effect, so the cancellation closes here.
func (uc *ProcessRoomResponse) resolveRelease(ctx context.Context, booking *domain.Booking, message *outbox.Message, cmd *ProcessRoomResponseCommand) error {
	if cmd.Topic != events.RoomReleasedEvent {
		return errors.Errorf("unexpected room response topic %s", cmd.Topic)
	}

	if err := message.Close(outbox.StatusCompleted, saga.StatusCompensated); err != nil {
		return err
	}
	return uc.finalize(ctx, booking, message)
}

func (uc *ProcessRoomResponse) finalize(ctx context.Context, booking *domain.Booking, message *outbox.Message) error {
	if err := booking.FinalizeCancel(); err != nil {
		return err
	}

	notification, err := notificationMessage(booking, saga.StatusCompensating)
	if err != nil {
		return errors.Wrap(err, "failed to build notification message")
	}

	return uc.bookingRepository.Save(ctx, booking, message, notification)
}
