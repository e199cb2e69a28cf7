package application

import (
	"time"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
)

// RoomReserveRequest is the payload asking the room service to hold the
// booking's rooms for the stay window.
type RoomReserveRequest struct {
	BookingID    models.ID            `json:"booking_id"`
	SagaID       models.ID            `json:"saga_id"`
	CustomerID   models.ID            `json:"customer_id"`
	Rooms        []domain.BookingRoom `json:"rooms"`
	CheckInDate  time.Time            `json:"check_in_date"`
	CheckOutDate time.Time            `json:"check_out_date"`
}

// RoomReleaseRequest is the payload asking the room service to release a
// previously reserved hold.
type RoomReleaseRequest struct {
	BookingID models.ID            `json:"booking_id"`
	SagaID    models.ID            `json:"saga_id"`
	Rooms     []domain.BookingRoom `json:"rooms"`
	Reason    string               `json:"reason"`
}

// PaymentChargeRequest is the payload asking the payment service to charge
// the full stay amount at check-in.
type PaymentChargeRequest struct {
	BookingID  models.ID    `json:"booking_id"`
	SagaID     models.ID    `json:"saga_id"`
	CustomerID models.ID    `json:"customer_id"`
	Amount     models.Money `json:"amount"`
}

// PaymentRefundRequest is the payload asking the payment service to return
// the deposit after a compensation or cancellation.
type PaymentRefundRequest struct {
	BookingID  models.ID `json:"booking_id"`
	SagaID     models.ID `json:"saga_id"`
	CustomerID models.ID `json:"customer_id"`
	Reason     string    `json:"reason"`
}

// NotificationRequest is the payload for guest-facing notifications. The
// notification service picks the template from the booking status.
type NotificationRequest struct {
	BookingID     models.ID `json:"booking_id"`
	SagaID        models.ID `json:"saga_id"`
	CustomerID    models.ID `json:"customer_id"`
	BookingStatus string    `json:"booking_status"`
}

// bookingMessage builds an outbox message stamped with the booking's status
// snapshot. All saga correlation goes through the booking's saga id.
func bookingMessage(booking *domain.Booking, target outbox.Target, topic events.Topic, payload interface{}, sagaStatus saga.Status) (*outbox.Message, error) {
	return outbox.NewMessage(booking.SagaID, saga.TypeBooking, target, topic, payload, string(booking.Status), sagaStatus)
}

// notificationMessage builds the fan-out message every booking status change
// emits alongside its step.
func notificationMessage(booking *domain.Booking, sagaStatus saga.Status) (*outbox.Message, error) {
	return bookingMessage(booking, outbox.TargetNotification, events.NotificationRequestedEvent, NotificationRequest{
		BookingID:     booking.ID,
		SagaID:        booking.SagaID,
		CustomerID:    booking.CustomerID,
		BookingStatus: string(booking.Status),
	}, sagaStatus)
}
