package handlers

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/application"
	"github.com/stayware/hotel-system/shared/events"
)

// SagaResponseData is the payload shape shared by all downstream responses.
type SagaResponseData struct {
	SagaID    string `json:"saga_id"`
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason,omitempty"`
}

// BookingEventHandlers consumes room and payment service responses and
// feeds them into the saga listeners.
type BookingEventHandlers struct {
	processRoomResponse    *application.ProcessRoomResponse
	processPaymentResponse *application.ProcessPaymentResponse
}

// NewBookingEventHandlers creates new booking event handlers
func NewBookingEventHandlers(
	processRoomResponse *application.ProcessRoomResponse,
	processPaymentResponse *application.ProcessPaymentResponse,
) *BookingEventHandlers {
	return &BookingEventHandlers{
		processRoomResponse:    processRoomResponse,
		processPaymentResponse: processPaymentResponse,
	}
}

// Handle implements the events.EventHandler interface
func (h *BookingEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.Topic.String() {
	case events.RoomReservedEvent, events.RoomReserveRejectedEvent, events.RoomReleasedEvent:
		return h.handleRoomResponse(ctx, event)
	case events.PaymentChargeCompletedEvent, events.PaymentChargeFailedEvent:
		return h.handlePaymentResponse(ctx, event)
	default:
		// Unknown topic, ignore
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *BookingEventHandlers) HandlerID() string {
	return "booking-service-event-handler"
}

func (h *BookingEventHandlers) handleRoomResponse(ctx context.Context, event *events.Event) error {
	data, err := parseResponse(event)
	if err != nil {
		return err
	}

	cmd := &application.ProcessRoomResponseCommand{
		SagaID: data.SagaID,
		Topic:  event.Topic.String(),
		Reason: data.Reason,
	}

	if err := h.processRoomResponse.Execute(ctx, cmd); err != nil {
		log.Printf("failed to process room response for saga %s: %v", data.SagaID, err)
		return err
	}

	return nil
}

func (h *BookingEventHandlers) handlePaymentResponse(ctx context.Context, event *events.Event) error {
	data, err := parseResponse(event)
	if err != nil {
		return err
	}

	cmd := &application.ProcessPaymentResponseCommand{
		SagaID: data.SagaID,
		Topic:  event.Topic.String(),
		Reason: data.Reason,
	}

	if err := h.processPaymentResponse.Execute(ctx, cmd); err != nil {
		log.Printf("failed to process payment response for saga %s: %v", data.SagaID, err)
		return err
	}

	return nil
}

func parseResponse(event *events.Event) (*SagaResponseData, error) {
	var data SagaResponseData
	if err := event.UnmarshalPayload(&data); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s payload", event.Topic)
	}

	if data.SagaID == "" {
		// Fall back to the correlation id the requester stamped on the way out.
		data.SagaID = event.CorrelationID.String()
	}
	if data.SagaID == "" {
		return nil, errors.Errorf("%s event carries no saga ID", event.Topic)
	}

	return &data, nil
}
