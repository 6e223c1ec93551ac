package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"crm-backend/internal/auth"
	"crm-backend/internal/cache"
	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/handlers"
	"crm-backend/internal/health"
	h "crm-backend/internal/http"
	"crm-backend/internal/middleware"
	"crm-backend/internal/monitoring"
	"crm-backend/internal/repositories"
	"crm-backend/internal/services"
	"crm-backend/internal/sms"
	"crm-backend/internal/storage"
	"crm-backend/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

func connectDB(cfg *config.Config) *pgxpool.Pool {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 1 * time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Printf("Connected to database %s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	return pool
}

func main() {
	cfg := config.Load()

	pool := connectDB(cfg)
	defer pool.Close()

	// Redis cache is optional - graceful fallback if unavailable
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations from the embedded filesystem
	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)

	// Monitoring dashboard runs on its own port
	go monitoring.NewServer(pool, cfg.Server.MonitoringPort).Start()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	leadRepo := repositories.NewLeadRepository(pool)
	dcRepo := repositories.NewDCRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	stockReturnRepo := repositories.NewStockReturnRepository(pool)
	trainingRepo := repositories.NewTrainingRepository(pool)
	trainerRepo := repositories.NewTrainerRepository(pool)
	sampleRepo := repositories.NewSampleRequestRepository(pool)
	contactRepo := repositories.NewContactQueryRepository(pool)
	leaveRepo := repositories.NewLeaveRepository(pool)
	trackingRepo := repositories.NewTrackingRepository(pool)
	auditRepo := repositories.NewAuditLogRepository(pool)
	settingRepo := repositories.NewSystemSettingRepository(pool)

	// Object storage for PO photo uploads (nil when not configured)
	store := storage.New(storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})

	// SMS provider: Fast2SMS in production, mock when the key is not set
	var smsProvider sms.Provider
	if apiKey := os.Getenv("FAST2SMS_API_KEY"); apiKey != "" {
		log.Println("Using Fast2SMS for notifications")
		smsProvider = sms.NewFast2SMSProvider(apiKey)
	} else {
		log.Println("WARNING: FAST2SMS_API_KEY not set, SMS notifications print to logs only")
		smsProvider = sms.NewMockProvider()
	}

	// Services
	notifier := services.NewNotificationService(smsProvider, userRepo, settingRepo)
	razorpay := services.NewRazorpayService(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret)
	userService := services.NewUserService(userRepo, auditRepo, jwtManager)
	leadService := services.NewLeadService(leadRepo, dcRepo, userRepo, auditRepo)
	dcService := services.NewDCService(dcRepo, leadRepo, stockRepo, auditRepo, store)
	dcService.SetNotifier(notifier)
	paymentService := services.NewPaymentService(paymentRepo, auditRepo, razorpay)
	expenseService := services.NewExpenseService(expenseRepo, userRepo, auditRepo)
	trainingService := services.NewTrainingService(trainingRepo, trainerRepo, auditRepo)
	warehouseService := services.NewWarehouseService(stockRepo, stockReturnRepo, auditRepo)
	leaveService := services.NewLeaveService(leaveRepo, userRepo, auditRepo, notifier)
	reportService := services.NewReportService(leadRepo, dcRepo, paymentRepo)
	exportService := services.NewExportService(paymentRepo, expenseRepo, trackingRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	leadHandler := handlers.NewLeadHandler(leadService)
	dcHandler := handlers.NewDCHandler(dcService, reportService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, reportService, exportService, razorpay)
	expenseHandler := handlers.NewExpenseHandler(expenseService, exportService)
	employeeHandler := handlers.NewEmployeeHandler(userService, leaveService, trackingRepo, exportService)
	trainingHandler := handlers.NewTrainingHandler(trainingService, trainerRepo)
	warehouseHandler := handlers.NewWarehouseHandler(warehouseService)
	productHandler := handlers.NewProductHandler(productRepo)
	miscHandler := handlers.NewMiscHandler(sampleRepo, contactRepo)
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(auditRepo, settingRepo)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		authHandler,
		leadHandler,
		dcHandler,
		paymentHandler,
		expenseHandler,
		employeeHandler,
		trainingHandler,
		warehouseHandler,
		productHandler,
		miscHandler,
		reportHandler,
		adminHandler,
		healthHandler,
		authMiddleware,
		cfg,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server running on %s", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
