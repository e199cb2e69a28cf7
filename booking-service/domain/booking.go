package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
)

// BookingRoom associates a booking with one reserved room. The reference is
// always by id; the room aggregate lives in the room service.
type BookingRoom struct {
	RoomID      models.ID    `json:"room_id"`
	RoomNumber  string       `json:"room_number"`
	NightlyRate models.Money `json:"nightly_rate"`
}

// Booking aggregate root
type Booking struct {
	ID             models.ID
	CustomerID     models.ID
	SagaID         models.ID // correlates all outbox messages of this booking's saga
	CheckInDate    time.Time
	CheckOutDate   time.Time
	Rooms          []BookingRoom
	TotalPrice     models.Money
	QRCode         string
	ActualCheckIn  *time.Time
	ActualCheckOut *time.Time
	Status         Status
	Timestamps     models.Timestamps
	Version        models.Version

	// persistedVersion is the version as last read or written by the
	// repository. One save may carry zero or more steps, so the optimistic
	// predicate compares against this baseline, never against a value
	// derived from the current version.
	persistedVersion int

	events []*events.Event
}

// CreateBooking factory method. A booking starts in PENDING and owns a fresh
// saga id; the deposit step opens the distributed conversation.
func CreateBooking(customerID models.ID, checkIn, checkOut time.Time, rooms []BookingRoom) (*Booking, error) {
	if customerID.IsEmpty() {
		return nil, errors.New("customer ID is required")
	}
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	if !checkOut.After(checkIn) {
		return nil, errors.New("check-out date must be after check-in date")
	}

	nights := nightsBetween(checkIn, checkOut)

	total := models.NewMoney(0, rooms[0].NightlyRate.Currency)
	for _, room := range rooms {
		sum, err := total.Add(room.NightlyRate.Multiply(nights))
		if err != nil {
			return nil, errors.Wrap(err, "mixed currencies in booking rooms")
		}
		total = sum
	}

	booking := &Booking{
		ID:           models.GenerateUUID(),
		CustomerID:   customerID,
		SagaID:       models.GenerateUUID(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Rooms:        rooms,
		TotalPrice:   total,
		Status:       StatusPending,
		Timestamps:   models.NewTimestamps(),
		Version:      models.NewVersion(),
	}

	booking.recordEvent(events.BookingCreatedEvent)
	return booking, nil
}

// nightsBetween counts hotel nights: calendar days between the check-in and
// check-out dates, ignoring the time of day. A 15:00 arrival before an 11:00
// departure three days later is still three nights.
func nightsBetween(checkIn, checkOut time.Time) int64 {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	nights := int64(out.Sub(in).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

// Deposit moves the booking to DEPOSITED once the customer's deposit payment
// is confirmed. The room reservation request goes out through the outbox.
func (b *Booking) Deposit() error {
	if len(b.Rooms) == 0 {
		return ErrNoRooms
	}
	if err := b.applyStep(StepDeposit); err != nil {
		return err
	}

	b.recordEvent(events.BookingDepositedEvent)
	return nil
}

// Confirm marks the booking CONFIRMED after the room service acknowledged
// the reservation.
func (b *Booking) Confirm() error {
	if err := b.applyStep(StepConfirm); err != nil {
		return err
	}

	b.recordEvent(events.BookingConfirmedEvent)
	return nil
}

// CheckIn records the guest's arrival.
func (b *Booking) CheckIn(qrCode string, at time.Time) error {
	if qrCode == "" {
		return errors.New("QR code is required")
	}
	if at.IsZero() {
		return errors.New("check-in time is required")
	}
	if err := b.applyStep(StepCheckIn); err != nil {
		return err
	}

	b.QRCode = qrCode
	b.ActualCheckIn = &at

	b.recordEvent(events.BookingCheckedInEvent)
	return nil
}

// MarkPaid moves the booking to PAID after the stay charge settled.
func (b *Booking) MarkPaid() error {
	if err := b.applyStep(StepSettle); err != nil {
		return err
	}

	b.recordEvent(events.BookingPaidEvent)
	return nil
}

// CheckOut records the guest's departure.
func (b *Booking) CheckOut(at time.Time) error {
	if at.IsZero() {
		return errors.New("check-out time is required")
	}
	if err := b.applyStep(StepCheckOut); err != nil {
		return err
	}

	b.ActualCheckOut = &at

	b.recordEvent(events.BookingCheckedOutEvent)
	return nil
}

// Cancel starts cancellation. The booking stays in CANCELLING until every
// downstream effect is unwound; FinalizeCancel closes it.
func (b *Booking) Cancel() error {
	if err := b.applyStep(StepCancel); err != nil {
		return err
	}

	b.recordEvent(events.BookingCancelledEvent)
	return nil
}

// FinalizeCancel closes a cancellation once downstream participants
// acknowledged the unwind.
func (b *Booking) FinalizeCancel() error {
	if err := b.applyStep(StepFinalizeCancel); err != nil {
		return err
	}

	b.recordEvent(events.BookingCancelledEvent)
	return nil
}

// Compensate reverts the booking one step backward after a downstream
// rejection of the step that produced the current status.
func (b *Booking) Compensate() error {
	target, err := CompensationTarget(b.Status)
	if err != nil {
		return err
	}

	b.Status = target
	b.Timestamps = b.Timestamps.Update()
	b.Version = b.Version.Update()

	b.recordEvent(events.BookingCompensatedEvent)
	return nil
}

// applyStep performs a transition through the central table.
func (b *Booking) applyStep(step Step) error {
	next, err := Next(b.Status, step)
	if err != nil {
		return err
	}

	b.Status = next
	b.Timestamps = b.Timestamps.Update()
	b.Version = b.Version.Update()
	return nil
}

// Snapshot returns the event payload describing the booking's current state.
func (b *Booking) Snapshot() BookingEventData {
	return BookingEventData{
		BookingID:    b.ID,
		CustomerID:   b.CustomerID,
		SagaID:       b.SagaID,
		Status:       string(b.Status),
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Rooms:        b.Rooms,
		TotalPrice:   b.TotalPrice,
	}
}

// PersistedVersion returns the version baseline for optimistic updates.
func (b *Booking) PersistedVersion() int {
	return b.persistedVersion
}

// MarkPersisted records the current version as the persisted baseline.
// Repositories call it after loading and after every successful write.
func (b *Booking) MarkPersisted() {
	b.persistedVersion = b.Version.Value
}

// Events returns domain events
func (b *Booking) Events() []*events.Event {
	return b.events
}

// ClearEvents clears domain events
func (b *Booking) ClearEvents() {
	b.events = make([]*events.Event, 0)
}

// recordEvent records a domain event carrying the post-mutation snapshot
func (b *Booking) recordEvent(topic events.Topic) {
	b.events = append(b.events, events.NewEvent(b.ID, topic, b.Snapshot()).WithCorrelationID(b.SagaID))
}

// BookingEventData is the payload every booking event carries.
type BookingEventData struct {
	BookingID    models.ID     `json:"booking_id"`
	CustomerID   models.ID     `json:"customer_id"`
	SagaID       models.ID     `json:"saga_id"`
	Status       string        `json:"status"`
	CheckInDate  time.Time     `json:"check_in_date"`
	CheckOutDate time.Time     `json:"check_out_date"`
	Rooms        []BookingRoom `json:"rooms"`
	TotalPrice   models.Money  `json:"total_price"`
}

// BookingRepository persists the booking aggregate. Save writes the
// aggregate mutation and the given outbox messages in one database
// transaction: a booking state change is never durably committed without
// its outbox record, and vice versa.
type BookingRepository interface {
	Save(ctx context.Context, booking *Booking, messages ...*outbox.Message) error
	FindByID(ctx context.Context, id models.ID) (*Booking, error)
	FindBySagaID(ctx context.Context, sagaID models.ID) (*Booking, error)
}
