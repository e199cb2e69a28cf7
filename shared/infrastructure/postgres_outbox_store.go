package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/models"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/saga"
)

// claimLease is how long a claimed outbox row stays invisible to other relay
// instances. A publish that neither succeeds nor updates the row within the
// lease is retried by whichever instance claims it next.
const claimLease = 30 * time.Second

// PostgresOutboxStore implements outbox.Store using PostgreSQL
type PostgresOutboxStore struct {
	db *sqlx.DB
}

// NewPostgresOutboxStore creates a new PostgresOutboxStore
func NewPostgresOutboxStore(db *sqlx.DB) *PostgresOutboxStore {
	return &PostgresOutboxStore{db: db}
}

// postgresOutboxMessage represents an outbox message in the database
type postgresOutboxMessage struct {
	ID            string     `db:"id"`
	SagaID        string     `db:"saga_id"`
	SagaType      string     `db:"saga_type"`
	Target        string     `db:"target"`
	Topic         string     `db:"topic"`
	Payload       []byte     `db:"payload"`
	BookingStatus string     `db:"booking_status"`
	SagaStatus    string     `db:"saga_status"`
	OutboxStatus  string     `db:"outbox_status"`
	CreatedAt     time.Time  `db:"created_at"`
	ProcessedAt   *time.Time `db:"processed_at"`
	ClaimedAt     *time.Time `db:"claimed_at"`
}

// Save inserts new messages or updates existing ones by id. When called with
// an open transaction via SaveTx it participates in the caller's transaction;
// this variant runs standalone.
func (s *PostgresOutboxStore) Save(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := s.SaveTx(ctx, tx, messages...); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveTx upserts messages inside the given transaction. It enforces the
// single-active-message invariant for conversational targets: a new message
// for a (saga id, target) pair is rejected while a prior message for that
// pair has not reached a terminal delivery status.
func (s *PostgresOutboxStore) SaveTx(ctx context.Context, tx *sqlx.Tx, messages ...*outbox.Message) error {
	for _, message := range messages {
		if message.Target.IsConversational() {
			var exists bool
			err := tx.GetContext(ctx, &exists, `
				SELECT EXISTS (
					SELECT 1 FROM outbox_messages
					WHERE saga_id = $1 AND target = $2 AND id <> $3
					  AND outbox_status IN ('STARTED', 'PROCESSING')
				)`,
				message.SagaID.String(), string(message.Target), message.ID.String())
			if err != nil && err != sql.ErrNoRows {
				return errors.Wrap(err, "failed to check active outbox message")
			}

			// Updates to the already-active row are fine; a second active
			// row for the same target is not.
			if exists {
				var isUpdate bool
				err := tx.GetContext(ctx, &isUpdate,
					"SELECT EXISTS (SELECT 1 FROM outbox_messages WHERE id = $1)",
					message.ID.String())
				if err != nil {
					return errors.Wrap(err, "failed to check outbox message existence")
				}
				if !isUpdate {
					return outbox.ErrActiveMessageExists
				}
			}
		}

		query := `
			INSERT INTO outbox_messages (
				id, saga_id, saga_type, target, topic, payload,
				booking_status, saga_status, outbox_status,
				created_at, processed_at, claimed_at
			) VALUES (
				:id, :saga_id, :saga_type, :target, :topic, :payload,
				:booking_status, :saga_status, :outbox_status,
				:created_at, :processed_at, :claimed_at
			)
			ON CONFLICT (id) DO UPDATE SET
				saga_status = EXCLUDED.saga_status,
				outbox_status = EXCLUDED.outbox_status,
				processed_at = EXCLUDED.processed_at,
				claimed_at = EXCLUDED.claimed_at`

		if _, err := tx.NamedExecContext(ctx, query, s.toPostgres(message)); err != nil {
			return errors.Wrap(err, "failed to upsert outbox message")
		}
	}

	return nil
}

// FindActive returns the single non-terminal message for a saga and target.
func (s *PostgresOutboxStore) FindActive(ctx context.Context, sagaID models.ID, target outbox.Target) (*outbox.Message, error) {
	query := `
		SELECT id, saga_id, saga_type, target, topic, payload,
			   booking_status, saga_status, outbox_status,
			   created_at, processed_at, claimed_at
		FROM outbox_messages
		WHERE saga_id = $1 AND target = $2
		  AND saga_status NOT IN ('SUCCEEDED', 'COMPENSATED', 'FAILED')
		ORDER BY created_at DESC
		LIMIT 1`

	var pgMessage postgresOutboxMessage
	err := s.db.GetContext(ctx, &pgMessage, query, sagaID.String(), string(target))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, outbox.ErrMessageNotFound
		}
		return nil, errors.Wrap(err, "failed to find active outbox message")
	}

	return s.toDomain(&pgMessage)
}

// FindBySaga returns all messages of one saga instance, oldest first.
func (s *PostgresOutboxStore) FindBySaga(ctx context.Context, sagaID models.ID) ([]*outbox.Message, error) {
	query := `
		SELECT id, saga_id, saga_type, target, topic, payload,
			   booking_status, saga_status, outbox_status,
			   created_at, processed_at, claimed_at
		FROM outbox_messages
		WHERE saga_id = $1
		ORDER BY created_at ASC`

	var pgMessages []postgresOutboxMessage
	if err := s.db.SelectContext(ctx, &pgMessages, query, sagaID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to find outbox messages by saga")
	}

	messages := make([]*outbox.Message, len(pgMessages))
	for i, pgMessage := range pgMessages {
		message, err := s.toDomain(&pgMessage)
		if err != nil {
			return nil, err
		}
		messages[i] = message
	}

	return messages, nil
}

// ClaimPending leases up to limit publishable messages for a target. The
// claim uses FOR UPDATE SKIP LOCKED so concurrent relay instances never
// double-claim a row, and re-claims rows whose lease expired.
func (s *PostgresOutboxStore) ClaimPending(ctx context.Context, target outbox.Target, limit int) ([]*outbox.Message, error) {
	query := `
		UPDATE outbox_messages
		SET claimed_at = NOW()
		WHERE id IN (
			SELECT id FROM outbox_messages
			WHERE target = $1
			  AND outbox_status = 'STARTED'
			  AND saga_status IN ('STARTED', 'PROCESSING', 'COMPENSATING')
			  AND (claimed_at IS NULL OR claimed_at < $2)
			ORDER BY created_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, saga_id, saga_type, target, topic, payload,
				  booking_status, saga_status, outbox_status,
				  created_at, processed_at, claimed_at`

	var pgMessages []postgresOutboxMessage
	err := s.db.SelectContext(ctx, &pgMessages, query,
		string(target), time.Now().Add(-claimLease), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim pending outbox messages")
	}

	messages := make([]*outbox.Message, len(pgMessages))
	for i, pgMessage := range pgMessages {
		message, err := s.toDomain(&pgMessage)
		if err != nil {
			return nil, err
		}
		messages[i] = message
	}

	return messages, nil
}

// Update persists delivery and saga status changes for one message.
func (s *PostgresOutboxStore) Update(ctx context.Context, message *outbox.Message) error {
	query := `
		UPDATE outbox_messages
		SET saga_status = :saga_status,
			outbox_status = :outbox_status,
			processed_at = :processed_at,
			claimed_at = :claimed_at
		WHERE id = :id`

	result, err := s.db.NamedExecContext(ctx, query, s.toPostgres(message))
	if err != nil {
		return errors.Wrap(err, "failed to update outbox message")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return outbox.ErrMessageNotFound
	}

	return nil
}

// toPostgres converts a domain message to the database model
func (s *PostgresOutboxStore) toPostgres(message *outbox.Message) *postgresOutboxMessage {
	return &postgresOutboxMessage{
		ID:            message.ID.String(),
		SagaID:        message.SagaID.String(),
		SagaType:      string(message.SagaType),
		Target:        string(message.Target),
		Topic:         message.Topic.String(),
		Payload:       message.Payload,
		BookingStatus: message.BookingStatus,
		SagaStatus:    message.SagaStatus.String(),
		OutboxStatus:  string(message.Status),
		CreatedAt:     message.CreatedAt,
		ProcessedAt:   message.ProcessedAt,
		ClaimedAt:     message.ClaimedAt,
	}
}

// toDomain converts the database model to a domain message
func (s *PostgresOutboxStore) toDomain(pgMessage *postgresOutboxMessage) (*outbox.Message, error) {
	id, err := models.NewID(pgMessage.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid outbox message ID")
	}

	sagaID, err := models.NewID(pgMessage.SagaID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid saga ID")
	}

	topic, err := events.NewTopic(pgMessage.Topic)
	if err != nil {
		return nil, errors.Wrap(err, "invalid topic")
	}

	return &outbox.Message{
		ID:            id,
		SagaID:        sagaID,
		SagaType:      saga.Type(pgMessage.SagaType),
		Target:        outbox.Target(pgMessage.Target),
		Topic:         topic,
		Payload:       pgMessage.Payload,
		BookingStatus: pgMessage.BookingStatus,
		SagaStatus:    saga.Status(pgMessage.SagaStatus),
		Status:        outbox.Status(pgMessage.OutboxStatus),
		CreatedAt:     pgMessage.CreatedAt,
		ProcessedAt:   pgMessage.ProcessedAt,
		ClaimedAt:     pgMessage.ClaimedAt,
	}, nil
}
