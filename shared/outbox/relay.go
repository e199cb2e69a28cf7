package outbox

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/stayware/hotel-system/shared/events"
	"github.com/stayware/hotel-system/shared/telemetry"
)

// RelayConfig holds the scheduling parameters of the publish loops.
type RelayConfig struct {
	InitialDelay time.Duration
	FixedDelay   time.Duration
	BatchSize    int
}

// DefaultRelayConfig returns the default relay cadence.
func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		InitialDelay: 5 * time.Second,
		FixedDelay:   2 * time.Second,
		BatchSize:    50,
	}
}

// Relay periodically drains pending outbox messages to the event transport.
// One polling loop runs per target family so a slow participant cannot stall
// the others. Messages are claimed with a lease before publishing; a claim
// that is never marked published simply expires and is retried, so transport
// failures cost a tick of latency but never lose or fail a message.
type Relay struct {
	store     Store
	publisher events.Publisher
	config    RelayConfig
	targets   []Target
}

// NewRelay creates a relay for the given targets.
func NewRelay(store Store, publisher events.Publisher, config RelayConfig, targets ...Target) *Relay {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultRelayConfig().BatchSize
	}
	if config.FixedDelay <= 0 {
		config.FixedDelay = DefaultRelayConfig().FixedDelay
	}
	if len(targets) == 0 {
		targets = []Target{TargetRoom, TargetPayment, TargetNotification}
	}

	return &Relay{
		store:     store,
		publisher: publisher,
		config:    config,
		targets:   targets,
	}
}

// Start launches one publish loop per target. It returns immediately; the
// loops stop when ctx is cancelled.
func (r *Relay) Start(ctx context.Context) {
	for _, target := range r.targets {
		go r.run(ctx, target)
	}
}

func (r *Relay) run(ctx context.Context, target Target) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(r.config.InitialDelay):
	}

	ticker := time.NewTicker(r.config.FixedDelay)
	defer ticker.Stop()

	for {
		if err := r.Tick(ctx, target); err != nil {
			log.Printf("outbox relay tick failed for target %s: %v", target, err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick claims and publishes one batch of pending messages for a target.
// Publish failures leave the message claimed-but-STARTED: the lease expires
// and the next tick retries. Only the per-message status update after a
// successful publish is persisted, and that write is idempotent.
func (r *Relay) Tick(ctx context.Context, target Target) error {
	messages, err := r.store.ClaimPending(ctx, target, r.config.BatchSize)
	if err != nil {
		return err
	}

	for _, message := range messages {
		if err := r.publisher.Publish(ctx, message.Event()); err != nil {
			// Transport failure: retried on a later tick, never fatal.
			log.Printf("outbox relay failed to publish message %s: %v", message.ID, err)
			telemetry.RecordCounter(ctx, "outbox_publish_total", "Total outbox publish attempts", 1,
				attribute.String("target", string(target)),
				attribute.String("status", "error"),
			)
			continue
		}

		message.MarkPublished()
		if err := r.store.Update(ctx, message); err != nil {
			// The message stays claimed; the update is retried after the
			// lease expires. Duplicate publishes are absorbed downstream by
			// the saga-status idempotency guard.
			log.Printf("outbox relay failed to mark message %s published: %v", message.ID, err)
			continue
		}

		telemetry.RecordCounter(ctx, "outbox_publish_total", "Total outbox publish attempts", 1,
			attribute.String("target", string(target)),
			attribute.String("status", "success"),
		)
	}

	return nil
}
