package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/stayware/hotel-system/booking-service/application"
	"github.com/stayware/hotel-system/booking-service/handlers"
	"github.com/stayware/hotel-system/booking-service/infrastructure"
	sharedinfra "github.com/stayware/hotel-system/shared/infrastructure"
	"github.com/stayware/hotel-system/shared/outbox"
	"github.com/stayware/hotel-system/shared/telemetry"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Outbox
	OutboxStore *sharedinfra.PostgresOutboxStore
	OutboxRelay *outbox.Relay

	// Repositories
	BookingRepository *infrastructure.PostgresBookingRepository

	// Collaborators
	RoomDirectory     *infrastructure.RoomHTTPClient
	CustomerDirectory *infrastructure.CustomerHTTPClient

	// Use Cases
	CreateBooking          *application.CreateBooking
	GetBooking             *application.GetBooking
	DepositBooking         *application.DepositBooking
	CheckInBooking         *application.CheckInBooking
	CheckOutBooking        *application.CheckOutBooking
	CancelBooking          *application.CancelBooking
	ProcessRoomResponse    *application.ProcessRoomResponse
	ProcessPaymentResponse *application.ProcessPaymentResponse

	// HTTP Handlers
	BookingHandlers *handlers.BookingHandlers

	// Event Handlers
	BookingEventHandlers *handlers.BookingEventHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry
	if config.Telemetry.Enabled {
		telConfig := telemetry.BookingServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			fmt.Printf("Warning: failed to initialize telemetry: %v\n", err)
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize outbox
	deps.OutboxStore = sharedinfra.NewPostgresOutboxStore(db)
	deps.OutboxRelay = outbox.NewRelay(deps.OutboxStore, eventPublisher, outbox.RelayConfig{
		InitialDelay: config.Relay.InitialDelay(),
		FixedDelay:   config.Relay.FixedDelay(),
		BatchSize:    config.Relay.BatchSize,
	})

	// Initialize repositories and collaborators
	deps.BookingRepository = infrastructure.NewPostgresBookingRepository(db, deps.OutboxStore)
	deps.RoomDirectory = infrastructure.NewRoomHTTPClient(config.RoomService.URL, config.RoomService.Timeout())
	deps.CustomerDirectory = infrastructure.NewCustomerHTTPClient(config.Customers.URL, config.Customers.Timeout())

	// Initialize use cases
	deps.CreateBooking = application.NewCreateBooking(deps.BookingRepository, deps.RoomDirectory, deps.CustomerDirectory)
	deps.GetBooking = application.NewGetBooking(deps.BookingRepository, deps.OutboxStore)
	deps.DepositBooking = application.NewDepositBooking(deps.BookingRepository, deps.RoomDirectory)
	deps.CheckInBooking = application.NewCheckInBooking(deps.BookingRepository)
	deps.CheckOutBooking = application.NewCheckOutBooking(deps.BookingRepository)
	deps.CancelBooking = application.NewCancelBooking(deps.BookingRepository, deps.OutboxStore)
	deps.ProcessRoomResponse = application.NewProcessRoomResponse(deps.BookingRepository, deps.OutboxStore)
	deps.ProcessPaymentResponse = application.NewProcessPaymentResponse(deps.BookingRepository, deps.OutboxStore)

	// Initialize handlers
	deps.BookingHandlers = handlers.NewBookingHandlers(
		deps.CreateBooking,
		deps.GetBooking,
		deps.DepositBooking,
		deps.CheckInBooking,
		deps.CheckOutBooking,
		deps.CancelBooking,
	)
	deps.BookingEventHandlers = handlers.NewBookingEventHandlers(
		deps.ProcessRoomResponse,
		deps.ProcessPaymentResponse,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
