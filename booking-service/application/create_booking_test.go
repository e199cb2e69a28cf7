package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/booking-service/mocks"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
)

func TestCreateBooking_Execute(t *testing.T) {
	customerID := "550e8400-e29b-41d4-a716-446655440010"
	customer := &domain.Customer{
		ID:    mustID(customerID),
		Name:  "Ada Guest",
		Email: "ada@example.com",
	}

	tests := []struct {
		name          string
		command       *CreateBookingCommand
		setupMocks    func(*mocks.MockBookingRepository, *mocks.MockRoomDirectory, *mocks.MockCustomerDirectory)
		expectedError string
	}{
		{
			name: "successful booking creation",
			command: &CreateBookingCommand{
				CustomerID:   customerID,
				RoomIDs:      []string{"550e8400-e29b-41d4-a716-446655440001", "550e8400-e29b-41d4-a716-446655440002"},
				CheckInDate:  testCheckIn,
				CheckOutDate: testCheckOut,
			},
			setupMocks: func(repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory, customers *mocks.MockCustomerDirectory) {
				customers.EXPECT().FindByID(mock.Anything, mustID(customerID)).Return(customer, nil).Once()
				rooms.EXPECT().GetAllRooms(mock.Anything).Return(availableRooms(), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Booking"), mock.MatchedBy(func(msg *outbox.Message) bool {
					return msg.Target == outbox.TargetNotification && msg.SagaStatus == saga.StatusStarted
				})).Return(nil).Once()
			},
		},
		{
			name: "customer does not exist",
			command: &CreateBookingCommand{
				CustomerID:   customerID,
				RoomIDs:      []string{"550e8400-e29b-41d4-a716-446655440001"},
				CheckInDate:  testCheckIn,
				CheckOutDate: testCheckOut,
			},
			setupMocks: func(repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory, customers *mocks.MockCustomerDirectory) {
				customers.EXPECT().FindByID(mock.Anything, mustID(customerID)).Return(nil, nil).Once()
			},
			expectedError: "customer not found",
		},
		{
			name: "unknown room",
			command: &CreateBookingCommand{
				CustomerID:   customerID,
				RoomIDs:      []string{"550e8400-e29b-41d4-a716-446655449999"},
				CheckInDate:  testCheckIn,
				CheckOutDate: testCheckOut,
			},
			setupMocks: func(repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory, customers *mocks.MockCustomerDirectory) {
				customers.EXPECT().FindByID(mock.Anything, mock.Anything).Return(customer, nil).Once()
				rooms.EXPECT().GetAllRooms(mock.Anything).Return(availableRooms(), nil).Once()
			},
			expectedError: "not found",
		},
		{
			name: "room under maintenance",
			command: &CreateBookingCommand{
				CustomerID:   customerID,
				RoomIDs:      []string{"550e8400-e29b-41d4-a716-446655440001"},
				CheckInDate:  testCheckIn,
				CheckOutDate: testCheckOut,
			},
			setupMocks: func(repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory, customers *mocks.MockCustomerDirectory) {
				snapshots := availableRooms()
				snapshots[0].Status = domain.RoomStatusMaintenance
				customers.EXPECT().FindByID(mock.Anything, mock.Anything).Return(customer, nil).Once()
				rooms.EXPECT().GetAllRooms(mock.Anything).Return(snapshots, nil).Once()
			},
			expectedError: "room 101 is maintenance",
		},
		{
			name: "empty customer ID",
			command: &CreateBookingCommand{
				RoomIDs:      []string{"550e8400-e29b-41d4-a716-446655440001"},
				CheckInDate:  testCheckIn,
				CheckOutDate: testCheckOut,
			},
			setupMocks:    func(*mocks.MockBookingRepository, *mocks.MockRoomDirectory, *mocks.MockCustomerDirectory) {},
			expectedError: "customer ID is required",
		},
		{
			name: "no rooms requested",
			command: &CreateBookingCommand{
				CustomerID:   customerID,
				CheckInDate:  testCheckIn,
				CheckOutDate: testCheckOut,
			},
			setupMocks:    func(*mocks.MockBookingRepository, *mocks.MockRoomDirectory, *mocks.MockCustomerDirectory) {},
			expectedError: "at least one room is required",
		},
		{
			name: "same room requested twice",
			command: &CreateBookingCommand{
				CustomerID:   customerID,
				RoomIDs:      []string{"550e8400-e29b-41d4-a716-446655440001", "550e8400-e29b-41d4-a716-446655440001"},
				CheckInDate:  testCheckIn,
				CheckOutDate: testCheckOut,
			},
			setupMocks:    func(*mocks.MockBookingRepository, *mocks.MockRoomDirectory, *mocks.MockCustomerDirectory) {},
			expectedError: "requested more than once",
		},
		{
			name: "check-out before check-in",
			command: &CreateBookingCommand{
				CustomerID:   customerID,
				RoomIDs:      []string{"550e8400-e29b-41d4-a716-446655440001"},
				CheckInDate:  testCheckOut,
				CheckOutDate: testCheckIn,
			},
			setupMocks:    func(*mocks.MockBookingRepository, *mocks.MockRoomDirectory, *mocks.MockCustomerDirectory) {},
			expectedError: "check-out date must be after check-in date",
		},
		{
			name: "repository save error",
			command: &CreateBookingCommand{
				CustomerID:   customerID,
				RoomIDs:      []string{"550e8400-e29b-41d4-a716-446655440001"},
				CheckInDate:  testCheckIn,
				CheckOutDate: testCheckOut,
			},
			setupMocks: func(repo *mocks.MockBookingRepository, rooms *mocks.MockRoomDirectory, customers *mocks.MockCustomerDirectory) {
				customers.EXPECT().FindByID(mock.Anything, mock.Anything).Return(customer, nil).Once()
				rooms.EXPECT().GetAllRooms(mock.Anything).Return(availableRooms(), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.Anything, mock.Anything).
					Return(errors.New("database error")).Once()
			},
			expectedError: "failed to save booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockBookingRepository(t)
			mockRooms := mocks.NewMockRoomDirectory(t)
			mockCustomers := mocks.NewMockCustomerDirectory(t)

			tt.setupMocks(mockRepo, mockRooms, mockCustomers)

			useCase := NewCreateBooking(mockRepo, mockRooms, mockCustomers)
			result, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, result)
			assert.NotEmpty(t, result.BookingID)
			assert.NotEmpty(t, result.SagaID)
			assert.NotEqual(t, result.BookingID, result.SagaID)
			assert.Equal(t, string(domain.StatusPending), result.Status)
			// Two rooms at 12000 and 15000 a night for three nights.
			assert.Equal(t, int64(81000), result.TotalPrice.Amount)
		})
	}
}
