package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/saga"
)

var (
	// ErrActiveMessageExists is returned when a new message is written for a
	// (saga id, target) pair that still has a non-terminal message in flight.
	ErrActiveMessageExists = errors.New("active outbox message already exists for saga and target")

	// ErrMessageNotFound is returned when no message matches a lookup.
	ErrMessageNotFound = errors.New("outbox message not found")
)

// Status is the delivery status of an outbox message. It tracks transport
// progress only; coordination progress lives in the message's saga status.
type Status string

const (
	// StatusStarted means the message is waiting to be published.
	StatusStarted Status = "STARTED"
	// StatusProcessing means the message was published and the target is
	// expected to respond before the message can be closed.
	StatusProcessing Status = "PROCESSING"
	// StatusCompleted means delivery finished.
	StatusCompleted Status = "COMPLETED"
	// StatusFailed means the downstream participant rejected the step.
	// Transport failures never produce this status; they are retried.
	StatusFailed Status = "FAILED"
)

// IsTerminal reports whether the delivery status permits no further updates.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Target names a downstream participant family. Each target has its own
// relay loop and its own acknowledgement semantics.
type Target string

const (
	TargetRoom         Target = "room"
	TargetPayment      Target = "payment"
	TargetNotification Target = "notification"
)

// IsConversational reports whether this target participates in the saga
// conversation. Conversational targets are subject to the single-active-
// message invariant; notification sends are fire-and-forget fan-out.
func (t Target) IsConversational() bool {
	return t == TargetRoom || t == TargetPayment
}

// Message is one durable record of a pending or sent domain event. Messages
// are created in the same database transaction as the aggregate mutation
// that caused them, and are never deleted: the table doubles as the saga's
// audit log and as the single source of idempotency truth.
type Message struct {
	ID            models.ID
	SagaID        models.ID
	SagaType      saga.Type
	Target        Target
	Topic         events.Topic
	Payload       json.RawMessage
	BookingStatus string // aggregate status snapshot at emission time
	SagaStatus    saga.Status
	Status        Status
	CreatedAt     time.Time
	ProcessedAt   *time.Time
	ClaimedAt     *time.Time // relay publish lease
}

// NewMessage creates an outbox message in STARTED delivery status.
func NewMessage(sagaID models.ID, sagaType saga.Type, target Target, topic events.Topic, payload interface{}, bookingStatus string, sagaStatus saga.Status) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal outbox payload")
	}

	return &Message{
		ID:            models.GenerateUUID(),
		SagaID:        sagaID,
		SagaType:      sagaType,
		Target:        target,
		Topic:         topic,
		Payload:       raw,
		BookingStatus: bookingStatus,
		SagaStatus:    sagaStatus,
		Status:        StatusStarted,
		CreatedAt:     time.Now(),
	}, nil
}

// IsActive reports whether the message still participates in coordination.
func (m *Message) IsActive() bool {
	return m.SagaStatus.IsActive()
}

// awaitsResponse reports whether the published message stays open until a
// downstream participant answers. Requests do; notifications and refund
// instructions are one-way.
func (m *Message) awaitsResponse() bool {
	switch m.Topic.String() {
	case events.RoomReserveRequestedEvent, events.RoomReleaseRequestedEvent, events.PaymentChargeRequestedEvent:
		return true
	}
	return false
}

// MarkPublished records a successful publish. Messages awaiting a downstream
// response stay open in PROCESSING; everything else is closed immediately.
func (m *Message) MarkPublished() {
	now := time.Now()
	m.ProcessedAt = &now

	if m.awaitsResponse() {
		m.Status = StatusProcessing
		return
	}

	m.Status = StatusCompleted
	if saga.CanTransition(m.SagaStatus, saga.StatusSucceeded) {
		m.SagaStatus = saga.StatusSucceeded
	} else if saga.CanTransition(m.SagaStatus, saga.StatusCompensated) {
		m.SagaStatus = saga.StatusCompensated
	}
}

// Close resolves the message after the downstream participant responded.
func (m *Message) Close(status Status, sagaStatus saga.Status) error {
	if m.Status.IsTerminal() {
		return errors.Errorf("outbox message %s already closed with status %s", m.ID, m.Status)
	}
	if !saga.CanTransition(m.SagaStatus, sagaStatus) {
		return errors.Errorf("illegal saga status transition %s -> %s for message %s", m.SagaStatus, sagaStatus, m.ID)
	}

	now := time.Now()
	m.Status = status
	m.SagaStatus = sagaStatus
	m.ProcessedAt = &now
	return nil
}

// Event rebuilds the transport event from the stored payload.
func (m *Message) Event() *events.Event {
	evt := events.NewEvent(m.SagaID, m.Topic, m.Payload)
	evt.WithCorrelationID(m.SagaID)
	evt.WithMetadata("saga_type", string(m.SagaType))
	evt.WithMetadata("outbox_message_id", m.ID.String())
	return evt
}

// Store persists outbox messages. Writes issued together with an aggregate
// mutation go through the owning repository instead, inside its transaction.
type Store interface {
	// Save inserts new messages or updates existing ones by id.
	Save(ctx context.Context, messages ...*Message) error

	// FindActive returns the single non-terminal message for a saga and
	// target, or ErrMessageNotFound.
	FindActive(ctx context.Context, sagaID models.ID, target Target) (*Message, error)

	// FindBySaga returns all messages of one saga instance, oldest first.
	FindBySaga(ctx context.Context, sagaID models.ID) ([]*Message, error)

	// ClaimPending leases up to limit publishable messages for a target.
	// A claimed message is invisible to other relay instances until the
	// lease expires.
	ClaimPending(ctx context.Context, target Target, limit int) ([]*Message, error)

	// Update persists delivery and saga status changes for one message.
	Update(ctx context.Context, message *Message) error
}
