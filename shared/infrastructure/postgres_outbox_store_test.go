package infrastructure

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
)

func newTestStore(t *testing.T) (*PostgresOutboxStore, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewPostgresOutboxStore(sqlxDB), sqlxDB, mock
}

func storeTestMessage(t *testing.T, target outbox.Target, topic events.Topic) *outbox.Message {
	t.Helper()

	message, err := outbox.NewMessage(
		models.GenerateUUID(), saga.TypeBooking, target, topic,
		map[string]string{"booking_id": "b-1"}, "DEPOSITED", saga.StatusProcessing,
	)
	require.NoError(t, err)
	return message
}

func existsRow(exists bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exists"}).AddRow(exists)
}

// A second in-flight message for the same saga and conversational target is
// rejected before anything is written.
func TestSaveTx_RejectsSecondActiveMessageForTarget(t *testing.T) {
	store, db, mock := newTestStore(t)
	message := storeTestMessage(t, outbox.TargetRoom, events.RoomReserveRequestedEvent)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(message.SagaID.String(), string(outbox.TargetRoom), message.ID.String()).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(message.ID.String()).
		WillReturnRows(existsRow(false))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	err = store.SaveTx(context.Background(), tx, message)
	assert.ErrorIs(t, err, outbox.ErrActiveMessageExists)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Re-saving the active row itself is an update, not a second message, and
// must go through.
func TestSaveTx_AllowsUpdatingTheActiveMessage(t *testing.T) {
	store, db, mock := newTestStore(t)
	message := storeTestMessage(t, outbox.TargetRoom, events.RoomReserveRequestedEvent)
	message.MarkPublished()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(message.SagaID.String(), string(outbox.TargetRoom), message.ID.String()).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(message.ID.String()).
		WillReturnRows(existsRow(true))
	mock.ExpectExec("INSERT INTO outbox_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	require.NoError(t, store.SaveTx(context.Background(), tx, message))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Notifications are one-way and may pile up per saga, so they skip the
// single-active check entirely.
func TestSaveTx_NotificationSkipsActiveCheck(t *testing.T) {
	store, db, mock := newTestStore(t)
	message := storeTestMessage(t, outbox.TargetNotification, events.NotificationRequestedEvent)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	require.NoError(t, store.SaveTx(context.Background(), tx, message))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_UnknownMessage(t *testing.T) {
	store, _, mock := newTestStore(t)
	message := storeTestMessage(t, outbox.TargetRoom, events.RoomReserveRequestedEvent)

	mock.ExpectExec("UPDATE outbox_messages").WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Update(context.Background(), message)
	assert.ErrorIs(t, err, outbox.ErrMessageNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActive_NoActiveMessage(t *testing.T) {
	store, _, mock := newTestStore(t)
	sagaID := models.GenerateUUID()

	mock.ExpectQuery("FROM outbox_messages").
		WithArgs(sagaID.String(), string(outbox.TargetRoom)).
		WillReturnError(sql.ErrNoRows)

	message, err := store.FindActive(context.Background(), sagaID, outbox.TargetRoom)
	assert.Nil(t, message)
	assert.ErrorIs(t, err, outbox.ErrMessageNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
