package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/booking-service/mocks"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
)

func TestGetBooking_Execute(t *testing.T) {
	t.Run("returns the booking with its saga history", func(t *testing.T) {
		mockRepo := mocks.NewMockBookingRepository(t)
		mockStore := mocks.NewMockOutboxStore(t)

		booking := bookingAt(t, domain.StatusConfirmed)
		reserve := publishedRequest(t, booking, outbox.TargetRoom, events.RoomReserveRequestedEvent, saga.StatusProcessing)
		require.NoError(t, reserve.Close(outbox.StatusCompleted, saga.StatusSucceeded))
		notification := activeRequest(t, booking, outbox.TargetNotification, events.NotificationRequestedEvent, saga.StatusProcessing)

		mockRepo.EXPECT().FindByID(mock.Anything, booking.ID).Return(booking, nil).Once()
		mockStore.EXPECT().FindBySaga(mock.Anything, booking.SagaID).
			Return([]*outbox.Message{notification, reserve}, nil).Once()

		useCase := NewGetBooking(mockRepo, mockStore)
		result, err := useCase.Execute(context.Background(), &GetBookingQuery{BookingID: booking.ID.String()})

		require.NoError(t, err)
		assert.Equal(t, booking.ID.String(), result.BookingID)
		assert.Equal(t, booking.SagaID.String(), result.SagaID)
		assert.Equal(t, string(domain.StatusConfirmed), result.Status)
		assert.Len(t, result.Saga, 2)
		assert.Equal(t, events.RoomReserveRequestedEvent, result.Saga[1].Topic)
		assert.Equal(t, string(outbox.StatusCompleted), result.Saga[1].OutboxStatus)
		assert.Equal(t, saga.StatusSucceeded.String(), result.Saga[1].SagaStatus)
		assert.NotNil(t, result.Saga[1].ProcessedAt)
	})

	t.Run("booking does not exist", func(t *testing.T) {
		mockRepo := mocks.NewMockBookingRepository(t)
		mockStore := mocks.NewMockOutboxStore(t)

		mockRepo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(nil, nil).Once()

		useCase := NewGetBooking(mockRepo, mockStore)
		result, err := useCase.Execute(context.Background(), &GetBookingQuery{BookingID: "550e8400-e29b-41d4-a716-446655440100"})

		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
		assert.Nil(t, result)
	})

	t.Run("missing booking ID", func(t *testing.T) {
		useCase := NewGetBooking(mocks.NewMockBookingRepository(t), mocks.NewMockOutboxStore(t))

		result, err := useCase.Execute(context.Background(), &GetBookingQuery{})

		assert.ErrorContains(t, err, "booking ID is required")
		assert.Nil(t, result)
	})
}
