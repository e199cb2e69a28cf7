package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/saga"
)

// CheckOutBookingCommand represents the command to check a guest out
type CheckOutBookingCommand struct {
	BookingID    string    `json:"booking_id"`
	CheckOutTime time.Time `json:"check_out_time"`
}

// CheckOutBookingResponse represents the response after check-out
type CheckOutBookingResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// CheckOutBooking use case. Check-out is allowed from CHECKED_IN as well as
// PAID, so a guest whose stay charge is still settling can leave; the saga
// keeps settling in the background.
type CheckOutBooking struct {
	bookingRepository domain.BookingRepository
}

// NewCheckOutBooking creates a new CheckOutBooking use case
func NewCheckOutBooking(bookingRepository domain.BookingRepository) *CheckOutBooking {
	return &CheckOutBooking{bookingRepository: bookingRepository}
}

// Execute executes the check-out use case
func (uc *CheckOutBooking) Execute(ctx context.Context, cmd *CheckOutBookingCommand) (*CheckOutBookingResponse, error) {
	if cmd.BookingID == "" {
		return nil, errors.New("booking ID is required")
	}
	if cmd.CheckOutTime.IsZero() {
		return nil, errors.New("check-out time is required")
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

	if err := booking.CheckOut(cmd.CheckOutTime); err != nil {
		return nil, err
	}

	notification, err := notificationMessage(booking, saga.StatusProcessing)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build notification message")
	}

	if err := uc.bookingRepository.Save(ctx, booking, notification); err != nil {
		return nil, errors.Wrap(err, "failed to save booking")
	}

	return &CheckOutBookingResponse{
		BookingID: booking.ID.String(),
		Status:    string(booking.Status),
	}, nil
}
