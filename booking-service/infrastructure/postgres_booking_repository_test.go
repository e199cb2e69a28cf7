package infrastructure

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/infrastructure"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
)

func newTestRepository(t *testing.T) (*PostgresBookingRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewPostgresBookingRepository(sqlxDB, infrastructure.NewPostgresOutboxStore(sqlxDB)), mock
}

// storedBooking builds a booking the way the repository hands one out: no
// pending events and the persisted version matching the current version.
func storedBooking(t *testing.T) *domain.Booking {
	t.Helper()

	rooms := []domain.BookingRoom{
		{RoomID: models.GenerateUUID(), RoomNumber: "101", NightlyRate: models.NewMoney(12000, "USD")},
	}
	booking, err := domain.CreateBooking(
		models.GenerateUUID(),
		time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 13, 11, 0, 0, 0, time.UTC),
		rooms,
	)
	require.NoError(t, err)

	booking.ClearEvents()
	booking.MarkPersisted()
	return booking
}

func notificationMessage(t *testing.T, booking *domain.Booking) *outbox.Message {
	t.Helper()

	message, err := outbox.NewMessage(
		booking.SagaID, saga.TypeBooking, outbox.TargetNotification,
		events.NotificationRequestedEvent, booking.Snapshot(),
		string(booking.Status), saga.StatusProcessing,
	)
	require.NoError(t, err)
	return message
}

func TestSave_InsertsNewBooking(t *testing.T) {
	repo, mock := newTestRepository(t)

	rooms := []domain.BookingRoom{
		{RoomID: models.GenerateUUID(), RoomNumber: "101", NightlyRate: models.NewMoney(12000, "USD")},
	}
	booking, err := domain.CreateBooking(
		models.GenerateUUID(),
		time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 13, 11, 0, 0, 0, time.UTC),
		rooms,
	)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Save(context.Background(), booking, notificationMessage(t, booking))
	require.NoError(t, err)

	assert.Empty(t, booking.Events())
	assert.Equal(t, 1, booking.PersistedVersion())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A cancellation from PENDING closes immediately and carries two version
// bumps in a single save. The optimistic predicate must still match the
// stored row, which is at the version the booking was loaded with.
func TestSave_CancelFromPendingUpdatesAgainstLoadedVersion(t *testing.T) {
	repo, mock := newTestRepository(t)

	booking := storedBooking(t)
	require.NoError(t, booking.Cancel())
	require.NoError(t, booking.FinalizeCancel())
	require.Equal(t, 3, booking.Version.Value)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").
		WithArgs(
			string(domain.StatusCancelled), "", nil, nil, sqlmock.AnyArg(),
			3, booking.ID.String(), 1,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), booking, notificationMessage(t, booking))
	require.NoError(t, err)

	assert.Equal(t, 3, booking.PersistedVersion())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Saving an unchanged booking still has to go through, since the save may
// carry outbox messages that must be persisted atomically with the row.
func TestSave_WithoutVersionBumpStillMatchesStoredRow(t *testing.T) {
	repo, mock := newTestRepository(t)

	booking := storedBooking(t)
	require.Equal(t, booking.Version.Value, booking.PersistedVersion())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").
		WithArgs(
			string(domain.StatusPending), "", nil, nil, sqlmock.AnyArg(),
			1, booking.ID.String(), 1,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), booking, notificationMessage(t, booking))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_ConcurrentModificationRollsBack(t *testing.T) {
	repo, mock := newTestRepository(t)

	booking := storedBooking(t)
	require.NoError(t, booking.Deposit())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), booking)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modified concurrently")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// When the outbox write fails the booking update must roll back with it,
// leaving the aggregate marked unsaved so the caller can retry.
func TestSave_OutboxFailureRollsBackBookingUpdate(t *testing.T) {
	repo, mock := newTestRepository(t)

	booking := storedBooking(t)
	require.NoError(t, booking.Deposit())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_messages").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), booking, notificationMessage(t, booking))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert outbox message")

	assert.Equal(t, 1, booking.PersistedVersion())
	assert.NotEmpty(t, booking.Events())
	assert.NoError(t, mock.ExpectationsWereMet())
}
