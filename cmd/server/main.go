package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/config"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/database"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/scheduler"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	fundRepo := repository.NewFundRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	treasurerRepo := repository.NewTreasurerRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	fundService := service.NewFundService(
		db,
		fundRepo,
		settingRepo,
	)
	allocationService := service.NewAllocationService(
		db,
		fundRepo,
		transactionRepo,
		settingRepo,
	)
	reversalService := service.NewReversalService(
		db,
		fundRepo,
		transactionRepo,
	)
	reportService := service.NewReportService(
		fundRepo,
		transactionRepo,
	)
	treasurerService := service.NewTreasurerService(
		treasurerRepo,
	)
	snapshotService := service.NewSnapshotService(
		fundRepo,
		snapshotRepo,
	)

	// Start the monthly balance snapshot scheduler
	var snapshotScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		snapshotScheduler = scheduler.New(snapshotService)
		if err := snapshotScheduler.Register(cfg.Scheduler.Spec); err != nil {
			log.Fatalf("Failed to register snapshot task: %v", err)
		}
		snapshotScheduler.Start()
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Fund:       fundService,
		Allocation: allocationService,
		Reversal:   reversalService,
		Report:     reportService,
		Treasurer:  treasurerService,
		Snapshot:   snapshotService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if snapshotScheduler != nil {
		snapshotScheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
