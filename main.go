package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	api "callsync-backend/cmd/api"
	appointmentdomain "callsync-backend/internal/appointment/domain"
	appointmentRepo "callsync-backend/internal/appointment/repository"
	appointmentUsecase "callsync-backend/internal/appointment/usecase"
	callsyncDelivery "callsync-backend/internal/callsync/delivery"
	"callsync-backend/internal/callsync/scheduler"
	callsyncUsecase "callsync-backend/internal/callsync/usecase"
	tenantdomain "callsync-backend/internal/tenant/domain"
	tenantRepo "callsync-backend/internal/tenant/repository"
	"callsync-backend/pkg/config"
	"callsync-backend/pkg/database"
	"callsync-backend/pkg/lisa"
	"callsync-backend/pkg/synthflow"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&appointmentdomain.Appointment{}, &tenantdomain.Tenant{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	appointmentRepository := appointmentRepo.NewAppointmentRepository(db)
	tenantRegistry := tenantRepo.NewTenantRegistry(db)

	// Initialize external service clients
	lisaClient := lisa.NewClient(cfg.LisaBaseURL, cfg.LisaModelName)
	synthflowClient := synthflow.NewClient(cfg.SynthflowBaseURL, cfg.SynthflowAPIKey)
	if cfg.SynthflowAPIKey == "" {
		log.Println("[WARN] SYNTHFLOW_API_KEY not set, calling-platform requests will be unauthenticated")
	}

	// Initialize use cases
	appointmentUc := appointmentUsecase.NewAppointmentUsecase(appointmentRepository)
	dedupCache := callsyncUsecase.NewDedupCache(cfg.DedupCacheSize, cfg.DedupCacheTTL)
	orchestrator := callsyncUsecase.NewSyncOrchestrator(
		tenantRegistry,
		synthflowClient,
		lisaClient,
		appointmentRepository,
		dedupCache,
		cfg.SynthflowCallLimit,
	)

	// Start the sync scheduler (runs once immediately, then on cron)
	syncScheduler := scheduler.NewSyncScheduler(orchestrator, cfg.SyncCron)
	if err := syncScheduler.Start(); err != nil {
		log.Fatal("Failed to start sync scheduler:", err)
	}

	// Let an in-flight pass finish before exiting
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		syncScheduler.Stop()
		os.Exit(0)
	}()

	// Initialize HTTP handler
	syncHandler := callsyncDelivery.NewSyncHandler(orchestrator, synthflowClient)
	handler := api.NewHandler(appointmentUc, syncHandler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := handler.Start(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
