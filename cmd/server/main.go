package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dairy-backend/internal/auth"
	"dairy-backend/internal/cache"
	"dairy-backend/internal/config"
	"dairy-backend/internal/database"
	"dairy-backend/internal/db"
	"dairy-backend/internal/handlers"
	"dairy-backend/internal/health"
	h "dairy-backend/internal/http"
	"dairy-backend/internal/middleware"
	"dairy-backend/internal/repositories"
	"dairy-backend/internal/services"
	"dairy-backend/internal/storage"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "path to SQL migration files")
	flag.Parse()

	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	if err := cache.Init(); err != nil {
		log.Printf("Redis unavailable, product cache disabled: %v", err)
	}

	migrator := database.NewMigrator(pool, *migrationsDir)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg)

	billFiles, err := storage.NewBillStore(cfg)
	if err != nil {
		log.Fatalf("Bill storage init failed: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	subscriptionRepo := repositories.NewSubscriptionRepository(pool)
	inventoryRepo := repositories.NewInventoryRepository(pool)
	workerInventoryRepo := repositories.NewWorkerInventoryRepository(pool)
	deliveryRepo := repositories.NewDeliveryRepository(pool)
	cashRepo := repositories.NewCashRepository(pool)
	verificationRepo := repositories.NewVerificationRepository(pool)
	billRepo := repositories.NewBillRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	productService := services.NewProductService(productRepo)
	demandService := services.NewDemandService(subscriptionRepo, productRepo, inventoryRepo)
	customerService := services.NewCustomerService(customerRepo, subscriptionRepo, demandService)
	inventoryService := services.NewInventoryService(inventoryRepo)
	workerInventoryService := services.NewWorkerInventoryService(workerInventoryRepo)
	deliveryService := services.NewDeliveryService(deliveryRepo)
	cashService := services.NewCashService(cashRepo)
	verificationService := services.NewVerificationService(verificationRepo)
	billingService := services.NewBillingService(billRepo, customerRepo, billFiles, cfg.Billing.DeliveryCharge)
	reportService := services.NewReportService(deliveryRepo, verificationRepo, cashRepo)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, demandService)
	workerInventoryHandler := handlers.NewWorkerInventoryHandler(workerInventoryService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	cashHandler := handlers.NewCashHandler(cashService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	billHandler := handlers.NewBillHandler(billingService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		userHandler,
		customerHandler,
		productHandler,
		inventoryHandler,
		workerInventoryHandler,
		deliveryHandler,
		cashHandler,
		verificationHandler,
		billHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.NewCORS(cfg)(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
