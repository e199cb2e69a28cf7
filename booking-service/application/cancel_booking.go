package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
	"github.com/stayware/hotel-system/shared/telemetry"
)

// CancelBookingCommand represents the command to cancel a booking
type CancelBookingCommand struct {
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason"`
}

// CancelBookingResponse represents the response after starting a cancellation
type CancelBookingResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// CancelBooking use case. Cancellation unwinds whatever the saga already
// did: a held room is released, a taken deposit is refunded, and an
// in-flight request is flipped to COMPENSATING so its response is handled
// as a rollback instead of a step forward. The booking stays CANCELLING
// until the room service acknowledged the unwind; a booking with nothing to
// unwind closes immediately.
type CancelBooking struct {
	bookingRepository domain.BookingRepository
	outboxStore       outbox.Store
}

// NewCancelBooking creates a new CancelBooking use case
func NewCancelBooking(bookingRepository domain.BookingRepository, outboxStore outbox.Store) *CancelBooking {
	return &CancelBooking{
		bookingRepository: bookingRepository,
		outboxStore:       outboxStore,
	}
}

// Execute executes the cancel booking use case
func (uc *CancelBooking) Execute(ctx context.Context, cmd *CancelBookingCommand) (*CancelBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "CancelBooking.Execute")
	defer span.End()

	if cmd.BookingID == "" {
		return nil, errors.New("booking ID is required")
	}

	bookingID, err := models.NewID(cmd.BookingID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid booking ID")
	}

	booking, err := uc.bookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find booking")
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}

	fromStatus := booking.Status
	if err := booking.Cancel(); err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, 3)
	awaitingRoom := false

	roomMessage, err := uc.outboxStore.FindActive(ctx, booking.SagaID, outbox.TargetRoom)
	if err != nil && !errors.Is(err, outbox.ErrMessageNotFound) {
		return nil, errors.Wrap(err, "failed to find active room message")
	}

	switch {
	case roomMessage != nil:
		// Reserve request still in flight. Flip it to COMPENSATING; the
		// room response listener turns the eventual answer into a release
		// or a finalized cancel.
		roomMessage.SagaStatus = saga.StatusCompensating
		messages = append(messages, roomMessage)
		awaitingRoom = true
	case roomHeldAt(fromStatus):
		release, err := bookingMessage(booking, outbox.TargetRoom, events.RoomReleaseRequestedEvent, RoomReleaseRequest{
			BookingID: booking.ID,
			SagaID:    booking.SagaID,
			Rooms:     booking.Rooms,
			Reason:    cmd.Reason,
		}, saga.StatusCompensating)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build room release message")
		}
		messages = append(messages, release)
		awaitingRoom = true
	}

	paymentMessage, err := uc.outboxStore.FindActive(ctx, booking.SagaID, outbox.TargetPayment)
	if err != nil && !errors.Is(err, outbox.ErrMessageNotFound) {
		return nil, errors.Wrap(err, "failed to find active payment message")
	}

	switch {
	case paymentMessage != nil:
		// Charge in flight. The refund, if one is owed, is issued by the
		// payment response listener once the charge outcome is known.
		paymentMessage.SagaStatus = saga.StatusCompensating
		messages = append(messages, paymentMessage)
	case fromStatus != domain.StatusPending:
		refund, err := bookingMessage(booking, outbox.TargetPayment, events.PaymentDepositRefundRequestedEvent, PaymentRefundRequest{
			BookingID:  booking.ID,
			SagaID:     booking.SagaID,
			CustomerID: booking.CustomerID,
			Reason:     cmd.Reason,
		}, saga.StatusCompensating)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build refund message")
		}
		messages = append(messages, refund)
	}

	if !awaitingRoom {
		if err := booking.FinalizeCancel(); err != nil {
			return nil, err
		}
	}

	notification, err := notificationMessage(booking, saga.StatusCompensating)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build notification message")
	}
	messages = append(messages, notification)

	if err := uc.bookingRepository.Save(ctx, booking, messages...); err != nil {
		return nil, errors.Wrap(err, "failed to save booking")
	}

	telemetry.RecordCounter(ctx, "bookings_cancelled_total", "Booking cancellations started", 1)

	return &CancelBookingResponse{
		BookingID: booking.ID.String(),
		Status:    string(booking.Status),
	}, nil
}

// roomHeldAt reports whether the room service holds a confirmed reservation
// for a booking that was in the given status.
func roomHeldAt(status domain.Status) bool {
	switch status {
	case domain.StatusConfirmed, domain.StatusCheckedIn, domain.StatusPaid:
		return true
	}
	return false
}
