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

// ProcessPaymentResponseCommand carries a payment service response event
type ProcessPaymentResponseCommand struct {
	SagaID string `json:"saga_id"`
	Topic  string `json:"topic"`
	Reason string `json:"reason,omitempty"`
}

// ProcessPaymentResponse use case. Consumes payment service charge outcomes.
// Duplicates are dropped the same way room responses are: no active request
// row, no side effects.
type ProcessPaymentResponse struct {
	bookingRepository domain.BookingRepository
	outboxStore       outbox.Store
}

// NewProcessPaymentResponse creates a new ProcessPaymentResponse use case
func NewProcessPaymentResponse(bookingRepository domain.BookingRepository, outboxStore outbox.Store) *ProcessPaymentResponse {
	return &ProcessPaymentResponse{
		bookingRepository: bookingRepository,
		outboxStore:       outboxStore,
	}
}

// Execute executes the process payment response use case
func (uc *ProcessPaymentResponse) Execute(ctx context.Context, cmd *ProcessPaymentResponseCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "ProcessPaymentResponse.Execute")
	defer span.End()

	if cmd.SagaID == "" {
		return errors.New("saga ID is required")
	}

	sagaID, err := models.NewID(cmd.SagaID)
	if err != nil {
		return errors.Wrap(err, "invalid saga ID")
	}

	message, err := uc.outboxStore.FindActive(ctx, sagaID, outbox.TargetPayment)
	if err != nil {
		if errors.Is(err, outbox.ErrMessageNotFound) {
			telemetry.RecordCounter(ctx, "saga_duplicate_responses_total", "Responses dropped as duplicates", 1,
				attribute.String("target", string(outbox.TargetPayment)))
			return nil
		}
		return errors.Wrap(err, "failed to find active payment message")
	}

	if message.Topic.String() != events.PaymentChargeRequestedEvent {
		return errors.Errorf("unexpected active payment message topic %s for saga %s", message.Topic, sagaID)
	}

	booking, err := uc.bookingRepository.FindBySagaID(ctx, sagaID)
	if err != nil {
		return errors.Wrap(err, "failed to find booking")
	}
	if booking == nil {
		return errors.Wrapf(domain.ErrBookingNotFound, "saga %s", sagaID)
	}

	if message.SagaStatus == saga.StatusCompensating {
		return uc.resolveCancelledCharge(ctx, booking, message, cmd)
	}
	return uc.resolveCharge(ctx, booking, message, cmd)
}

// resolveCharge handles the outcome of a live stay charge.
func (uc *ProcessPaymentResponse) resolveCharge(ctx context.Context, booking *domain.Booking, message *outbox.Message, cmd *ProcessPaymentResponseCommand) error {
	switch cmd.Topic {
	case events.PaymentChargeCompletedEvent:
		if err := booking.MarkPaid(); err != nil {
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

	case events.PaymentChargeFailedEvent:
		// Charge declined: the guest stays checked in operationally, but
		// the booking rolls back to CONFIRMED so the front desk retries
		// the charge through a fresh check-in.
		if err := booking.Compensate(); err != nil {
			return err
		}
		if err := message.Close(outbox.StatusFailed, saga.StatusCompensated); err != nil {
			return err
		}

		notification, err := notificationMessage(booking, saga.StatusCompensating)
		if err != nil {
			return errors.Wrap(err, "failed to build notification message")
		}

		telemetry.RecordCounter(ctx, "saga_compensations_total", "Saga compensations triggered", 1,
			attribute.String("step", "payment_charge"))

		return uc.bookingRepository.Save(ctx, booking, message, notification)
	}

	return errors.Errorf("unexpected payment response topic %s", cmd.Topic)
}

// resolveCancelledCharge handles a charge outcome arriving after the booking
// was cancelled. A completed charge is refunded in full; a failed one left
// no money to return.
func (uc *ProcessPaymentResponse) resolveCancelledCharge(ctx context.Context, booking *domain.Booking, message *outbox.Message, cmd *ProcessPaymentResponseCommand) error {
	switch cmd.Topic {
	case events.PaymentChargeCompletedEvent:
		if err := message.Close(outbox.StatusCompleted, saga.StatusCompensated); err != nil {
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

		return uc.outboxStore.Save(ctx, message, refund)

	case events.PaymentChargeFailedEvent:
		if err := message.Close(outbox.StatusFailed, saga.StatusCompensated); err != nil {
			return err
		}
		return uc.outboxStore.Save(ctx, message)
	}

	return errors.Errorf("unexpected payment response topic %s", cmd.Topic)
}
