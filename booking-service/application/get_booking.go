package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
)

// GetBookingQuery represents the query to get a booking
type GetBookingQuery struct {
	BookingID string `json:"booking_id"`
}

// SagaStepView is one outbox message in the booking's saga history.
type SagaStepView struct {
	Target        string     `json:"target"`
	Topic         string     `json:"topic"`
	SagaStatus    string     `json:"saga_status"`
	OutboxStatus  string     `json:"outbox_status"`
	BookingStatus string     `json:"booking_status"`
	CreatedAt     time.Time  `json:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

// GetBookingResponse represents the booking with its saga history
type GetBookingResponse struct {
	BookingID      string               `json:"booking_id"`
	CustomerID     string               `json:"customer_id"`
	SagaID         string               `json:"saga_id"`
	Status         string               `json:"status"`
	CheckInDate    time.Time            `json:"check_in_date"`
	CheckOutDate   time.Time            `json:"check_out_date"`
	Rooms          []domain.BookingRoom `json:"rooms"`
	TotalPrice     models.Money         `json:"total_price"`
	QRCode         string               `json:"qr_code,omitempty"`
	ActualCheckIn  *time.Time           `json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time           `json:"actual_check_out,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	Saga           []SagaStepView       `json:"saga"`
}

// GetBooking use case
type GetBooking struct {
	bookingRepository domain.BookingRepository
	outboxStore       outbox.Store
}

// NewGetBooking creates a new GetBooking use case
func NewGetBooking(bookingRepository domain.BookingRepository, outboxStore outbox.Store) *GetBooking {
	return &GetBooking{
		bookingRepository: bookingRepository,
		outboxStore:       outboxStore,
	}
}

// Execute executes the get booking query
func (uc *GetBooking) Execute(ctx context.Context, query *GetBookingQuery) (*GetBookingResponse, error) {
	if query.BookingID == "" {
		return nil, errors.New("booking ID is required")
	}

	bookingID, err := models.NewID(query.BookingID)
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

	messages, err := uc.outboxStore.FindBySaga(ctx, booking.SagaID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load saga history")
	}

	steps := make([]SagaStepView, len(messages))
	for i, message := range messages {
		steps[i] = SagaStepView{
			Target:        string(message.Target),
			Topic:         message.Topic.String(),
			SagaStatus:    message.SagaStatus.String(),
			OutboxStatus:  string(message.Status),
			BookingStatus: message.BookingStatus,
			CreatedAt:     message.CreatedAt,
			ProcessedAt:   message.ProcessedAt,
		}
	}

	return &GetBookingResponse{
		BookingID:      booking.ID.String(),
		CustomerID:     booking.CustomerID.String(),
		SagaID:         booking.SagaID.String(),
		Status:         string(booking.Status),
		CheckInDate:    booking.CheckInDate,
		CheckOutDate:   booking.CheckOutDate,
		Rooms:          booking.Rooms,
		TotalPrice:     booking.TotalPrice,
		QRCode:         booking.QRCode,
		ActualCheckIn:  booking.ActualCheckIn,
		ActualCheckOut: booking.ActualCheckOut,
		CreatedAt:      booking.Timestamps.CreatedAt,
		UpdatedAt:      booking.Timestamps.UpdatedAt,
		Saga:           steps,
	}, nil
}
