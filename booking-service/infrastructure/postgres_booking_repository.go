package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/infrastructure"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
)

// PostgresBookingRepository implements BookingRepository using PostgreSQL.
// The booking row and its outbox messages are written in one transaction;
// neither is ever durably committed without the other.
type PostgresBookingRepository struct {
	db          *sqlx.DB
	outboxStore *infrastructure.PostgresOutboxStore
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(db *sqlx.DB, outboxStore *infrastructure.PostgresOutboxStore) *PostgresBookingRepository {
	return &PostgresBookingRepository{db: db, outboxStore: outboxStore}
}

// postgresBooking represents a booking in the database
type postgresBooking struct {
	ID             string          `db:"id"`
	CustomerID     string          `db:"customer_id"`
	SagaID         string          `db:"saga_id"`
	CheckInDate    time.Time       `db:"check_in_date"`
	CheckOutDate   time.Time       `db:"check_out_date"`
	Rooms          json.RawMessage `db:"rooms"`
	TotalAmount    int64           `db:"total_amount"`
	Currency       string          `db:"currency"`
	QRCode         string          `db:"qr_code"`
	ActualCheckIn  *time.Time      `db:"actual_check_in"`
	ActualCheckOut *time.Time      `db:"actual_check_out"`
	Status         string          `db:"status"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
	Version        int             `db:"version"`
}

// Save persists the booking mutation together with its outbox messages.
func (r *PostgresBookingRepository) Save(ctx context.Context, booking *domain.Booking, messages ...*outbox.Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := r.saveBooking(ctx, tx, booking); err != nil {
		return err
	}

	if err := r.outboxStore.SaveTx(ctx, tx, messages...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	booking.ClearEvents()
	booking.MarkPersisted()
	return nil
}

// saveBooking decides between insert and update from the recorded events.
func (r *PostgresBookingRepository) saveBooking(ctx context.Context, tx *sqlx.Tx, booking *domain.Booking) error {
	for _, event := range booking.Events() {
		if event.Topic.String() == events.BookingCreatedEvent {
			return r.insertBooking(ctx, tx, booking)
		}
	}
	return r.updateBooking(ctx, tx, booking)
}

func (r *PostgresBookingRepository) insertBooking(ctx context.Context, tx *sqlx.Tx, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, customer_id, saga_id, check_in_date, check_out_date,
			rooms, total_amount, currency, qr_code,
			actual_check_in, actual_check_out, status,
			created_at, updated_at, version
		) VALUES (
			:id, :customer_id, :saga_id, :check_in_date, :check_out_date,
			:rooms, :total_amount, :currency, :qr_code,
			:actual_check_in, :actual_check_out, :status,
			:created_at, :updated_at, :version
		)`

	pgBooking, err := r.toPostgres(booking)
	if err != nil {
		return err
	}

	if _, err := tx.NamedExecContext(ctx, query, pgBooking); err != nil {
		return errors.Wrap(err, "failed to insert booking")
	}

	return nil
}

func (r *PostgresBookingRepository) updateBooking(ctx context.Context, tx *sqlx.Tx, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = :status, qr_code = :qr_code,
			actual_check_in = :actual_check_in, actual_check_out = :actual_check_out,
			updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := tx.NamedExecContext(ctx, query, map[string]interface{}{
		"id":               booking.ID.String(),
		"status":           string(booking.Status),
		"qr_code":          booking.QRCode,
		"actual_check_in":  booking.ActualCheckIn,
		"actual_check_out": booking.ActualCheckOut,
		"updated_at":       booking.Timestamps.UpdatedAt,
		"version":          booking.Version.Value,
		"old_version":      booking.PersistedVersion(), // Optimistic locking
	})
	if err != nil {
		return errors.Wrap(err, "failed to update booking")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return errors.Errorf("booking %s was modified concurrently", booking.ID)
	}

	return nil
}

// FindByID finds a booking by ID
func (r *PostgresBookingRepository) FindByID(ctx context.Context, id models.ID) (*domain.Booking, error) {
	return r.findOne(ctx, "id = $1", id.String())
}

// FindBySagaID finds the booking owning a saga instance
func (r *PostgresBookingRepository) FindBySagaID(ctx context.Context, sagaID models.ID) (*domain.Booking, error) {
	return r.findOne(ctx, "saga_id = $1", sagaID.String())
}

func (r *PostgresBookingRepository) findOne(ctx context.Context, where string, arg interface{}) (*domain.Booking, error) {
	query := `
		SELECT id, customer_id, saga_id, check_in_date, check_out_date,
			   rooms, total_amount, currency, qr_code,
			   actual_check_in, actual_check_out, status,
			   created_at, updated_at, version
		FROM bookings
		WHERE ` + where

	var pgBooking postgresBooking
	err := r.db.GetContext(ctx, &pgBooking, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Booking not found
		}
		return nil, errors.Wrap(err, "failed to find booking")
	}

	return r.toDomain(&pgBooking)
}

// toPostgres converts domain booking to postgres model
func (r *PostgresBookingRepository) toPostgres(booking *domain.Booking) (*postgresBooking, error) {
	rooms, err := json.Marshal(booking.Rooms)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal booking rooms")
	}

	return &postgresBooking{
		ID:             booking.ID.String(),
		CustomerID:     booking.CustomerID.String(),
		SagaID:         booking.SagaID.String(),
		CheckInDate:    booking.CheckInDate,
		CheckOutDate:   booking.CheckOutDate,
		Rooms:          rooms,
		TotalAmount:    booking.TotalPrice.Amount,
		Currency:       booking.TotalPrice.Currency,
		QRCode:         booking.QRCode,
		ActualCheckIn:  booking.ActualCheckIn,
		ActualCheckOut: booking.ActualCheckOut,
		Status:         string(booking.Status),
		CreatedAt:      booking.Timestamps.CreatedAt,
		UpdatedAt:      booking.Timestamps.UpdatedAt,
		Version:        booking.Version.Value,
	}, nil
}

// toDomain converts postgres model to domain booking
func (r *PostgresBookingRepository) toDomain(pgBooking *postgresBooking) (*domain.Booking, error) {
	id, err := models.NewID(pgBooking.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid booking ID")
	}

	customerID, err := models.NewID(pgBooking.CustomerID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid customer ID")
	}

	sagaID, err := models.NewID(pgBooking.SagaID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid saga ID")
	}

	var rooms []domain.BookingRoom
	if err := json.Unmarshal(pgBooking.Rooms, &rooms); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal booking rooms")
	}

	booking := &domain.Booking{
		ID:             id,
		CustomerID:     customerID,
		SagaID:         sagaID,
		CheckInDate:    pgBooking.CheckInDate,
		CheckOutDate:   pgBooking.CheckOutDate,
		Rooms:          rooms,
		TotalPrice:     models.NewMoney(pgBooking.TotalAmount, pgBooking.Currency),
		QRCode:         pgBooking.QRCode,
		ActualCheckIn:  pgBooking.ActualCheckIn,
		ActualCheckOut: pgBooking.ActualCheckOut,
		Status:         domain.Status(pgBooking.Status),
		Timestamps: models.Timestamps{
			CreatedAt: pgBooking.CreatedAt,
			UpdatedAt: pgBooking.UpdatedAt,
		},
		Version: models.Version{Value: pgBooking.Version},
	}
	booking.MarkPersisted()

	return booking, nil
}
