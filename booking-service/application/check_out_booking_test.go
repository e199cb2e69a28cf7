package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/booking-service/mocks"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
)

func TestCheckOutBooking_Execute(t *testing.T) {
	validCommand := &CheckOutBookingCommand{
		BookingID:    "550e8400-e29b-41d4-a716-446655440100",
		CheckOutTime: testCheckOut,
	}

	tests := []struct {
		name          string
		command       *CheckOutBookingCommand
		bookingStatus domain.Status
		found         bool
		expectedError string
	}{
		{
			name:          "check-out after the stay charge settled",
			command:       validCommand,
			bookingStatus: domain.StatusPaid,
			found:         true,
		},
		{
			name:          "check-out while the charge is still settling",
			command:       validCommand,
			bookingStatus: domain.StatusCheckedIn,
			found:         true,
		},
		{
			name:          "check-out before check-in is rejected",
			command:       validCommand,
			bookingStatus: domain.StatusConfirmed,
			found:         true,
			expectedError: "invalid state transition",
		},
		{
			name:          "booking does not exist",
			command:       validCommand,
			expectedError: "booking not found",
		},
		{
			name:          "missing check-out time",
			command:       &CheckOutBookingCommand{BookingID: "550e8400-e29b-41d4-a716-446655440100"},
			expectedError: "check-out time is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockBookingRepository(t)

			if tt.found {
				booking := bookingAt(t, tt.bookingStatus)
				mockRepo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(booking, nil).Once()
				if tt.expectedError == "" {
					mockRepo.EXPECT().Save(mock.Anything, bookingIn(domain.StatusCheckedOut),
						messageOn(outbox.TargetNotification, events.NotificationRequestedEvent, saga.StatusProcessing),
					).Return(nil).Once()
				}
			} else if tt.command.BookingID != "" && !tt.command.CheckOutTime.IsZero() {
				mockRepo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(nil, nil).Once()
			}

			useCase := NewCheckOutBooking(mockRepo)
			result, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, result)
			assert.Equal(t, string(domain.StatusCheckedOut), result.Status)
		})
	}
}
