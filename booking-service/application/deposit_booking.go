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

// DepositBookingCommand represents the command to record a deposit payment
type DepositBookingCommand struct {
	BookingID string `json:"booking_id"`
}

// DepositBookingResponse represents the response after recording a deposit
type DepositBookingResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// DepositBooking use case. Recording the deposit opens the saga conversation:
// the booking moves to DEPOSITED and the room reservation request is written
// to the outbox in the same transaction.
type DepositBooking struct {
	bookingRepository domain.BookingRepository
	roomDirectory     domain.RoomDirectory
}

// NewDepositBooking creates a new DepositBooking use case
func NewDepositBooking(
	bookingRepository domain.BookingRepository,
	roomDirectory domain.RoomDirectory,
) *DepositBooking {
	return &DepositBooking{
		bookingRepository: bookingRepository,
		roomDirectory:     roomDirectory,
	}
}

// Execute executes the deposit booking use case
func (uc *DepositBooking) Execute(ctx context.Context, cmd *DepositBookingCommand) (*DepositBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "DepositBooking.Execute")
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

	// Availability can change between create and deposit; re-check before
	// committing the customer's money.
	if err := uc.checkAvailability(ctx, booking); err != nil {
		return nil, err
	}

	if err := booking.Deposit(); err != nil {
		return nil, err
	}

	reserve, err := bookingMessage(booking, outbox.TargetRoom, events.RoomReserveRequestedEvent, RoomReserveRequest{
		BookingID:    booking.ID,
		SagaID:       booking.SagaID,
		CustomerID:   booking.CustomerID,
		Rooms:        booking.Rooms,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
	}, saga.StatusProcessing)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build room reserve message")
	}

	if err := uc.bookingRepository.Save(ctx, booking, reserve); err != nil {
		return nil, errors.Wrap(err, "failed to save booking")
	}

	return &DepositBookingResponse{
		BookingID: booking.ID.String(),
		Status:    string(booking.Status),
	}, nil
}

func (uc *DepositBooking) checkAvailability(ctx context.Context, booking *domain.Booking) error {
	snapshots, err := uc.roomDirectory.GetAllRooms(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch rooms")
	}

	byID := make(map[string]domain.RoomSnapshot, len(snapshots))
	for _, snapshot := range snapshots {
		byID[snapshot.ID.String()] = snapshot
	}

	for _, room := range booking.Rooms {
		snapshot, ok := byID[room.RoomID.String()]
		if !ok {
			return errors.Wrapf(domain.ErrRoomUnavailable, "room %s not found", room.RoomID)
		}
		if snapshot.Status != domain.RoomStatusAvailable {
			return errors.Wrapf(domain.ErrRoomUnavailable, "room %s is %s", snapshot.Number, snapshot.Status)
		}
	}

	return nil
}
