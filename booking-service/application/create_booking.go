package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/saga"
	"github.com/stayware/hotel-system/shared/telemetry"
)

// CreateBookingCommand represents the command to create a booking
type CreateBookingCommand struct {
	CustomerID   string    `json:"customer_id"`
	RoomIDs      []string  `json:"room_ids"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
}

// CreateBookingResponse represents the response after creating a booking
type CreateBookingResponse struct {
	BookingID  string       `json:"booking_id"`
	SagaID     string       `json:"saga_id"`
	Status     string       `json:"status"`
	TotalPrice models.Money `json:"total_price"`
}

// CreateBooking use case. The booking is created PENDING together with its
// created-notification outbox record; the saga conversation with the room
// and payment services starts at deposit time.
type CreateBooking struct {
	bookingRepository domain.BookingRepository
	roomDirectory     domain.RoomDirectory
	customerDirectory domain.CustomerDirectory
}

// NewCreateBooking creates a new CreateBooking use case
func NewCreateBooking(
	bookingRepository domain.BookingRepository,
	roomDirectory domain.RoomDirectory,
	customerDirectory domain.CustomerDirectory,
) *CreateBooking {
	return &CreateBooking{
		bookingRepository: bookingRepository,
		roomDirectory:     roomDirectory,
		customerDirectory: customerDirectory,
	}
}

// Execute executes the create booking use case
func (uc *CreateBooking) Execute(ctx context.Context, cmd *CreateBookingCommand) (*CreateBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateBooking.Execute")
	defer span.End()

	if err := uc.validateCommand(cmd); err != nil {
		return nil, errors.Wrap(err, "invalid command")
	}

	customerID, err := models.NewID(cmd.CustomerID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid customer ID")
	}

	customer, err := uc.customerDirectory.FindByID(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up customer")
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	rooms, err := uc.resolveRooms(ctx, cmd.RoomIDs)
	if err != nil {
		return nil, err
	}

	booking, err := domain.CreateBooking(customerID, cmd.CheckInDate, cmd.CheckOutDate, rooms)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create booking")
	}

	notification, err := notificationMessage(booking, saga.StatusStarted)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build notification message")
	}

	if err := uc.bookingRepository.Save(ctx, booking, notification); err != nil {
		return nil, errors.Wrap(err, "failed to save booking")
	}

	telemetry.RecordCounter(ctx, "bookings_created_total", "Bookings created", 1)

	return &CreateBookingResponse{
		BookingID:  booking.ID.String(),
		SagaID:     booking.SagaID.String(),
		Status:     string(booking.Status),
		TotalPrice: booking.TotalPrice,
	}, nil
}

// resolveRooms validates the requested rooms against the room service
// snapshot and copies their numbers and rates into the booking.
func (uc *CreateBooking) resolveRooms(ctx context.Context, roomIDs []string) ([]domain.BookingRoom, error) {
	snapshots, err := uc.roomDirectory.GetAllRooms(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch rooms")
	}

	byID := make(map[string]domain.RoomSnapshot, len(snapshots))
	for _, snapshot := range snapshots {
		byID[snapshot.ID.String()] = snapshot
	}

	rooms := make([]domain.BookingRoom, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		snapshot, ok := byID[roomID]
		if !ok {
			return nil, errors.Wrapf(domain.ErrRoomUnavailable, "room %s not found", roomID)
		}
		if snapshot.Status != domain.RoomStatusAvailable {
			return nil, errors.Wrapf(domain.ErrRoomUnavailable, "room %s is %s", snapshot.Number, snapshot.Status)
		}

		rooms = append(rooms, domain.BookingRoom{
			RoomID:      snapshot.ID,
			RoomNumber:  snapshot.Number,
			NightlyRate: snapshot.BasePrice,
		})
	}

	return rooms, nil
}

// validateCommand validates the create booking command
func (uc *CreateBooking) validateCommand(cmd *CreateBookingCommand) error {
	if cmd.CustomerID == "" {
		return errors.New("customer ID is required")
	}

	if len(cmd.RoomIDs) == 0 {
		return errors.New("at least one room is required")
	}

	seen := make(map[string]bool, len(cmd.RoomIDs))
	for _, roomID := range cmd.RoomIDs {
		if roomID == "" {
			return errors.New("room ID cannot be empty")
		}
		if seen[roomID] {
			return errors.Errorf("room %s requested more than once", roomID)
		}
		seen[roomID] = true
	}

	if cmd.CheckInDate.IsZero() || cmd.CheckOutDate.IsZero() {
		return errors.New("check-in and check-out dates are required")
	}

	if !cmd.CheckOutDate.After(cmd.CheckInDate) {
		return errors.New("check-out date must be after check-in date")
	}

	return nil
}
