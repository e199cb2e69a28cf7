package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/booking-service/mocks"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
)

func TestDepositBooking_Execute(t *testing.T) {
	tests := []struct {
		name           string
		command        *DepositBookingCommand
		setupMocks     func(*testing.T, *mocks.MockBookingRepository, *mocks.MockRoomDirectory)
		expectedError  string
		expectedStatus domain.Status
	}{
		{
			name:    "deposit opens the room reservation conversation",
			command: &DepositBookingCommand{BookingID: "550e8400-e29b-41d4-a716-446655440100"},
			setupMocks: func(t *testing.T, repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory) {
				booking := bookingAt(t, domain.StatusPending)
				repo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(booking, nil).Once()
				rooms.EXPECT().GetAllRooms(mock.Anything).Return(availableRooms(), nil).Once()
				repo.EXPECT().Save(mock.Anything, booking, mock.MatchedBy(func(msg *outbox.Message) bool {
					return msg.Target == outbox.TargetRoom &&
						msg.Topic.String() == events.RoomReserveRequestedEvent &&
						msg.SagaStatus == saga.StatusProcessing &&
						msg.BookingStatus == string(domain.StatusDeposited)
				})).Return(nil).Once()
			},
			expectedStatus: domain.StatusDeposited,
		},
		{
			name:    "booking does not exist",
			command: &DepositBookingCommand{BookingID: "550e8400-e29b-41d4-a716-446655440100"},
			setupMocks: func(t *testing.T, repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory) {
				repo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(nil, nil).Once()
			},
			expectedError: "booking not found",
		},
		{
			name:    "room no longer available",
			command: &DepositBookingCommand{BookingID: "550e8400-e29b-41d4-a716-446655440100"},
			setupMocks: func(t *testing.T, repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory) {
				booking := bookingAt(t, domain.StatusPending)
				snapshots := availableRooms()
				snapshots[0].Status = domain.RoomStatusOccupied
				repo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(booking, nil).Once()
				rooms.EXPECT().GetAllRooms(mock.Anything).Return(snapshots, nil).Once()
			},
			expectedError: "room 101 is occupied",
		},
		{
			name:    "deposit on an already deposited booking",
			command: &DepositBookingCommand{BookingID: "550e8400-e29b-41d4-a716-446655440100"},
			setupMocks: func(t *testing.T, repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory) {
				booking := bookingAt(t, domain.StatusDeposited)
				repo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(booking, nil).Once()
				rooms.EXPECT().GetAllRooms(mock.Anything).Return(availableRooms(), nil).Once()
			},
			expectedError: "invalid state transition",
		},
		{
			name:          "missing booking ID",
			command:       &DepositBookingCommand{},
			setupMocks:    func(*testing.T, *mocks.MockBookingRepository, *mocks.MockRoomDirectory) {},
			expectedError: "booking ID is required",
		},
		{
			name:    "repository save error",
			command: &DepositBookingCommand{BookingID: "550e8400-e29b-41d4-a716-446655440100"},
			setupMocks: func(t *testing.T, repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory) {
				booking := bookingAt(t, domain.StatusPending)
				repo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(booking, nil).Once()
				rooms.EXPECT().GetAllRooms(mock.Anything).Return(availableRooms(), nil).Once()
				repo.EXPECT().Save(mock.Anything, booking, mock.Anything).
					Return(errors.New("database error")).Once()
			},
			expectedError: "failed to save booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockBookingRepository(t)
			mockRooms := mocks.NewMockRoomDirectory(t)

			tt.setupMocks(t, mockRepo, mockRooms)

			useCase := NewDepositBooking(mockRepo, mockRooms)
			result, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, result)
			assert.Equal(t, string(tt.expectedStatus), result.Status)
		})
	}
}
