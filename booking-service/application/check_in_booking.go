package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
	"github.com/stayware/hotel-system/shared/telemetry"
)

// CheckInBookingCommand represents the command to check a guest in
type CheckInBookingCommand struct {
	BookingID   string    `json:"booking_id"`
	QRCode      string    `json:"qr_code"`
	CheckInTime time.Time `json:"check_in_time"`
}

// CheckInBookingResponse represents the response after check-in
type CheckInBookingResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// CheckInBooking use case. Check-in moves the booking to CHECKED_IN and asks
// the payment service to charge the full stay; the charge outcome arrives
// asynchronously through ProcessPaymentResponse.
type CheckInBooking struct {
	bookingRepository domain.BookingRepository
}

// NewCheckInBooking creates a new CheckInBooking use case
func NewCheckInBooking(bookingRepository domain.BookingRepository) *CheckInBooking {
	return &CheckInBooking{bookingRepository: bookingRepository}
}

// Execute executes the check-in use case
func (uc *CheckInBooking) Execute(ctx context.Context, cmd *CheckInBookingCommand) (*CheckInBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "CheckInBooking.Execute")
	defer span.End()

	if err := uc.validateCommand(cmd); err != nil {
		return nil, errors.Wrap(err, "invalid command")
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

	if err := booking.CheckIn(cmd.QRCode, cmd.CheckInTime); err != nil {
		return nil, err
	}

	charge, err := bookingMessage(booking, outbox.TargetPayment, events.PaymentChargeRequestedEvent, PaymentChargeRequest{
		BookingID:  booking.ID,
		SagaID:     booking.SagaID,
		CustomerID: booking.CustomerID,
		Amount:     booking.TotalPrice,
	}, saga.StatusProcessing)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build payment charge message")
	}

	if err := uc.bookingRepository.Save(ctx, booking, charge); err != nil {
		return nil, errors.Wrap(err, "failed to save booking")
	}

	telemetry.RecordCounter(ctx, "bookings_checked_in_total", "Guests checked in", 1)

	return &CheckInBookingResponse{
		BookingID: booking.ID.String(),
		Status:    string(booking.Status),
	}, nil
}

func (uc *CheckInBooking) validateCommand(cmd *CheckInBookingCommand) error {
	if cmd.BookingID == "" {
		return errors.New("booking ID is required")
	}
	if cmd.QRCode == "" {
		return errors.New("QR code is required")
	}
	if cmd.CheckInTime.IsZero() {
		return errors.New("check-in time is required")
	}
	return nil
}
