package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
)

var (
	testCheckIn  = time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	testCheckOut = time.Date(2026, 9, 13, 11, 0, 0, 0, time.UTC)
)

func availableRooms() []domain.RoomSnapshot {
	return []domain.RoomSnapshot{
		{
			ID:        mustID("550e8400-e29b-41d4-a716-446655440001"),
			Number:    "101",
			BasePrice: models.NewMoney(12000, "USD"),
			Status:    domain.RoomStatusAvailable,
		},
		{
			ID:        mustID("550e8400-e29b-41d4-a716-446655440002"),
			Number:    "102",
			BasePrice: models.NewMoney(15000, "USD"),
			Status:    domain.RoomStatusAvailable,
		},
	}
}

func mustID(s string) models.ID {
	id, err := models.NewID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// bookingAt builds a booking advanced to the given status.
func bookingAt(t *testing.T, status domain.Status) *domain.Booking {
	t.Helper()

	rooms := []domain.BookingRoom{
		{RoomID: mustID("550e8400-e29b-41d4-a716-446655440001"), RoomNumber: "101", NightlyRate: models.NewMoney(12000, "USD")},
	}

	booking, err := domain.CreateBooking(models.GenerateUUID(), testCheckIn, testCheckOut, rooms)
	require.NoError(t, err)

	steps := map[domain.Status][]func() error{
		domain.StatusPending:   {},
		domain.StatusDeposited: {booking.Deposit},
		domain.StatusConfirmed: {booking.Deposit, booking.Confirm},
		domain.StatusCheckedIn: {booking.Deposit, booking.Confirm, func() error {
			return booking.CheckIn("qr-abc123", testCheckIn)
		}},
		domain.StatusPaid: {booking.Deposit, booking.Confirm, func() error {
			return booking.CheckIn("qr-abc123", testCheckIn)
		}, booking.MarkPaid},
		domain.StatusCheckedOut: {booking.Deposit, booking.Confirm, func() error {
			return booking.CheckIn("qr-abc123", testCheckIn)
		}, booking.MarkPaid, func() error {
			return booking.CheckOut(testCheckOut)
		}},
		domain.StatusCancelling: {booking.Deposit, booking.Cancel},
	}

	forStatus, ok := steps[status]
	require.True(t, ok, "unsupported test status %s", status)
	for _, step := range forStatus {
		require.NoError(t, step())
	}

	booking.ClearEvents()
	return booking
}

// activeRequest builds the outbox row an earlier step would have written for
// this booking, still open and waiting for its answer.
func activeRequest(t *testing.T, booking *domain.Booking, target outbox.Target, topic events.Topic, sagaStatus saga.Status) *outbox.Message {
	t.Helper()

	message, err := outbox.NewMessage(booking.SagaID, saga.TypeBooking, target, topic, struct{}{}, string(booking.Status), sagaStatus)
	require.NoError(t, err)
	return message
}

// publishedRequest is an activeRequest the relay already handed to the broker.
func publishedRequest(t *testing.T, booking *domain.Booking, target outbox.Target, topic events.Topic, sagaStatus saga.Status) *outbox.Message {
	t.Helper()

	message := activeRequest(t, booking, target, topic, sagaStatus)
	message.MarkPublished()
	return message
}
