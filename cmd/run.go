package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"microbank/config"
	"microbank/database"
	"microbank/events"
	"microbank/models"
	"microbank/repository"
	"microbank/scheduler"
	"microbank/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting interest service...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	registerEventLogging(eventBus)
	log.Println("Event bus initialized successfully")

	// Initialize unit of work factory
	log.Println("Initializing unit of work factory...")
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	log.Println("Unit of work factory initialized successfully")

	// Initialize services
	log.Println("Initializing services...")
	interestService := service.NewInterestService(uowFactory, cfg.SystemActorID)
	log.Println("Services initialized successfully")

	// Initialize the interest scheduler
	log.Println("Starting interest scheduler...")
	sched := scheduler.New(scheduler.Config{
		DebugMode:       cfg.DebugMode,
		DebugInterval:   cfg.DebugInterval,
		FDSchedule:      scheduler.Schedule{Hour: cfg.FDScheduleHour, Minute: cfg.FDScheduleMinute},
		SavingsSchedule: scheduler.Schedule{Hour: cfg.SavingsScheduleHour, Minute: cfg.SavingsScheduleMinute},
	}, interestService)
	sched.Start(ctx)

	// Wait for context cancellation
	log.Printf("Interest service is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down interest service...")

	// Stop the scheduler and wait for any in-flight run
	sched.Stop()

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}

// registerEventLogging subscribes audit log handlers for ledger events
func registerEventLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeInterestCredited, func(ctx context.Context, event events.Event) {
		credited, ok := event.(events.InterestCreditedEvent)
		if !ok {
			return
		}
		log.Printf("Interest credited: kind=%s source=%d account=%d amount=%s tx=%d",
			credited.Kind, credited.SourceID, credited.CreditAccountID,
			credited.Amount.StringFixed(2), credited.TransactionID)
	})
	bus.Subscribe(events.EventTypeInterestRunCompleted, func(ctx context.Context, event events.Event) {
		completed, ok := event.(events.InterestRunCompletedEvent)
		if !ok {
			return
		}
		msg := fmt.Sprintf("Interest run completed: kind=%s period=%s credited=%d failed=%d total=%s",
			completed.Kind, completed.Period.Format("2006-01-02"),
			completed.ItemsCredited, completed.ItemsFailed,
			completed.TotalInterestCredited.StringFixed(2))
		if completed.Kind == models.InterestKindFD {
			msg += fmt.Sprintf(" matured=%d principalReturned=%s",
				completed.MaturedProcessed, completed.PrincipalReturned.StringFixed(2))
		}
		log.Println(msg)
	})
}
