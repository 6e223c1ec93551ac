package http

import (
	"net/http"

	"crm-backend/internal/config"
	"crm-backend/internal/handlers"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	leadHandler *handlers.LeadHandler,
	dcHandler *handlers.DCHandler,
	paymentHandler *handlers.PaymentHandler,
	expenseHandler *handlers.ExpenseHandler,
	employeeHandler *handlers.EmployeeHandler,
	trainingHandler *handlers.TrainingHandler,
	warehouseHandler *handlers.WarehouseHandler,
	productHandler *handlers.ProductHandler,
	miscHandler *handlers.MiscHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)

	staff := []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleFinanceManager, models.RoleManager, models.RoleExecutive, models.RoleCoordinator}
	finance := []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleFinanceManager}
	warehouse := []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleCoordinator}
	admins := []string{models.RoleSuperAdmin, models.RoleAdmin}
	managers := []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleManager}

	requireRole := func(h http.HandlerFunc, roles ...string) http.HandlerFunc {
		return authMiddleware.RequireRole(roles...)(h).ServeHTTP
	}

	// Public routes
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/verify-totp", authHandler.VerifyTOTP).Methods("POST")
	r.HandleFunc("/api/contact-queries", miscHandler.CreateContactQuery).Methods("POST")
	r.HandleFunc("/api/payments/razorpay/webhook", paymentHandler.Webhook).Methods("POST")

	// Authenticated account routes
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/totp/setup", authHandler.SetupTOTP).Methods("POST")
	authAPI.HandleFunc("/totp/confirm", authHandler.ConfirmTOTP).Methods("POST")

	// Leads / deals (dc-orders: creating one creates its DC)
	leadsAPI := r.PathPrefix("/api/dc-orders").Subrouter()
	leadsAPI.Use(authMiddleware.Authenticate)
	leadsAPI.HandleFunc("", leadHandler.Create).Methods("POST")
	leadsAPI.HandleFunc("", leadHandler.List).Methods("GET")
	leadsAPI.HandleFunc("/check-duplicate", leadHandler.CheckDuplicate).Methods("GET")
	leadsAPI.HandleFunc("/{id}", leadHandler.Get).Methods("GET")
	leadsAPI.HandleFunc("/{id}", leadHandler.Update).Methods("PUT")

	// Delivery challans. Listing and PO submission are open to all staff;
	// warehouse transitions are coordinator territory and completion needs
	// an admin. Per-action role checks are enforced again in the service.
	dcAPI := r.PathPrefix("/api/dc").Subrouter()
	dcAPI.Use(authMiddleware.Authenticate)
	dcAPI.HandleFunc("", dcHandler.List).Methods("GET")
	dcAPI.HandleFunc("/{id}", dcHandler.Get).Methods("GET")
	dcAPI.HandleFunc("/{id}/po", dcHandler.SubmitPO).Methods("POST")
	dcAPI.HandleFunc("/{id}/queue", requireRole(dcHandler.Queue, warehouse...)).Methods("PUT")
	dcAPI.HandleFunc("/{id}/start-processing", requireRole(dcHandler.StartProcessing, warehouse...)).Methods("PUT")
	dcAPI.HandleFunc("/{id}/hold", requireRole(dcHandler.Hold, warehouse...)).Methods("PUT")
	dcAPI.HandleFunc("/{id}/release", requireRole(dcHandler.Release, warehouse...)).Methods("PUT")
	dcAPI.HandleFunc("/{id}/complete", requireRole(dcHandler.Complete, admins...)).Methods("PUT")
	dcAPI.HandleFunc("/{id}/quantities", requireRole(dcHandler.UpdateQuantities, warehouse...)).Methods("PUT")
	dcAPI.HandleFunc("/{id}/challan.pdf", dcHandler.ChallanPDF).Methods("GET")

	// Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("", paymentHandler.Create).Methods("POST")
	paymentsAPI.HandleFunc("", paymentHandler.List).Methods("GET")
	paymentsAPI.HandleFunc("/export/csv", requireRole(paymentHandler.ExportCSV, finance...)).Methods("GET")
	paymentsAPI.HandleFunc("/export/xlsx", requireRole(paymentHandler.ExportXLSX, finance...)).Methods("GET")
	paymentsAPI.HandleFunc("/razorpay/order", paymentHandler.CreateOrder).Methods("POST")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.Get).Methods("GET")
	paymentsAPI.HandleFunc("/{id}/review", requireRole(paymentHandler.Review, finance...)).Methods("PUT")

	// Expenses
	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.Use(authMiddleware.Authenticate)
	expensesAPI.HandleFunc("", expenseHandler.Create).Methods("POST")
	expensesAPI.HandleFunc("", expenseHandler.List).Methods("GET")
	expensesAPI.HandleFunc("/manager-pending", requireRole(expenseHandler.ManagerQueue, managers...)).Methods("GET")
	expensesAPI.HandleFunc("/approve-multiple", requireRole(expenseHandler.ApproveMultiple, managers...)).Methods("PUT")
	expensesAPI.HandleFunc("/finance-pending", requireRole(expenseHandler.FinanceQueue, finance...)).Methods("GET")
	expensesAPI.HandleFunc("/export/xlsx", requireRole(expenseHandler.ExportXLSX, finance...)).Methods("GET")
	expensesAPI.HandleFunc("/{id}", expenseHandler.Get).Methods("GET")
	expensesAPI.HandleFunc("/{id}/finance-review", requireRole(expenseHandler.FinanceReview, finance...)).Methods("PUT")

	// Employees (admin-managed accounts) plus self-serve tracking and leave
	employeesAPI := r.PathPrefix("/api/employees").Subrouter()
	employeesAPI.Use(authMiddleware.Authenticate)
	employeesAPI.HandleFunc("", requireRole(employeeHandler.Create, admins...)).Methods("POST")
	employeesAPI.HandleFunc("", requireRole(employeeHandler.List, append(admins, models.RoleManager, models.RoleFinanceManager)...)).Methods("GET")
	employeesAPI.HandleFunc("/tracking", employeeHandler.RecordTracking).Methods("POST")
	employeesAPI.HandleFunc("/tracking", requireRole(employeeHandler.ListTracking, managers...)).Methods("GET")
	employeesAPI.HandleFunc("/tracking/export", requireRole(employeeHandler.ExportTracking, managers...)).Methods("GET")
	employeesAPI.HandleFunc("/leaves", employeeHandler.ApplyLeave).Methods("POST")
	employeesAPI.HandleFunc("/leaves", employeeHandler.MyLeaves).Methods("GET")
	employeesAPI.HandleFunc("/{id}", requireRole(employeeHandler.Get, append(admins, models.RoleManager)...)).Methods("GET")
	employeesAPI.HandleFunc("/{id}", requireRole(employeeHandler.Update, admins...)).Methods("PUT")
	employeesAPI.HandleFunc("/{id}/active", requireRole(employeeHandler.SetActive, admins...)).Methods("PUT")

	// Manager team views
	teamAPI := r.PathPrefix("/api/executive-managers").Subrouter()
	teamAPI.Use(authMiddleware.RequireRole(managers...))
	teamAPI.HandleFunc("/team", employeeHandler.Team).Methods("GET")
	teamAPI.HandleFunc("/leaves", employeeHandler.TeamLeaves).Methods("GET")
	teamAPI.HandleFunc("/leaves/{id}", employeeHandler.ReviewLeave).Methods("PUT")

	// Trainings and service visits
	trainingAPI := r.PathPrefix("/api/training").Subrouter()
	trainingAPI.Use(authMiddleware.Authenticate)
	trainingAPI.HandleFunc("", trainingHandler.CreateTraining).Methods("POST")
	trainingAPI.HandleFunc("", trainingHandler.ListTrainings).Methods("GET")
	trainingAPI.HandleFunc("/stats", trainingHandler.TrainingStats).Methods("GET")
	trainingAPI.HandleFunc("/stats/export", trainingHandler.ExportTrainingStats).Methods("GET")
	trainingAPI.HandleFunc("/{id}", trainingHandler.Get).Methods("GET")
	trainingAPI.HandleFunc("/{id}", trainingHandler.Update).Methods("PUT")

	servicesAPI := r.PathPrefix("/api/services").Subrouter()
	servicesAPI.Use(authMiddleware.Authenticate)
	servicesAPI.HandleFunc("", trainingHandler.CreateService).Methods("POST")
	servicesAPI.HandleFunc("", trainingHandler.ListServices).Methods("GET")
	servicesAPI.HandleFunc("/stats", trainingHandler.ServiceStats).Methods("GET")
	servicesAPI.HandleFunc("/stats/export", trainingHandler.ExportServiceStats).Methods("GET")

	trainersAPI := r.PathPrefix("/api/trainers").Subrouter()
	trainersAPI.Use(authMiddleware.Authenticate)
	trainersAPI.HandleFunc("", requireRole(trainingHandler.CreateTrainer, admins...)).Methods("POST")
	trainersAPI.HandleFunc("", trainingHandler.ListTrainers).Methods("GET")
	trainersAPI.HandleFunc("/{id}/active", requireRole(trainingHandler.SetTrainerActive, admins...)).Methods("PUT")

	// Warehouse queue views, stock and returns
	warehouseAPI := r.PathPrefix("/api/warehouse").Subrouter()
	warehouseAPI.Use(authMiddleware.Authenticate)
	warehouseAPI.HandleFunc("/pending", dcHandler.PendingQueue).Methods("GET")
	warehouseAPI.HandleFunc("/processing", dcHandler.ProcessingQueue).Methods("GET")
	warehouseAPI.HandleFunc("/listed", dcHandler.ListedQueue).Methods("GET")
	warehouseAPI.HandleFunc("/hold", dcHandler.HoldQueue).Methods("GET")
	warehouseAPI.HandleFunc("/status-counts", dcHandler.StatusCounts).Methods("GET")
	warehouseAPI.HandleFunc("/stock", warehouseHandler.Stock).Methods("GET")
	warehouseAPI.HandleFunc("/stock/adjust", requireRole(warehouseHandler.AdjustStock, warehouse...)).Methods("POST")

	returnsAPI := r.PathPrefix("/api/stock-returns").Subrouter()
	returnsAPI.Use(authMiddleware.Authenticate)
	returnsAPI.HandleFunc("", warehouseHandler.CreateReturn).Methods("POST")
	returnsAPI.HandleFunc("", warehouseHandler.ListReturns).Methods("GET")
	returnsAPI.HandleFunc("/{id}/advance", requireRole(warehouseHandler.AdvanceReturn, warehouse...)).Methods("PUT")

	// Product catalog
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", requireRole(productHandler.Create, admins...)).Methods("POST")
	productsAPI.HandleFunc("", productHandler.List).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.Get).Methods("GET")
	productsAPI.HandleFunc("/{id}", requireRole(productHandler.Update, admins...)).Methods("PUT")

	// Sample requests
	samplesAPI := r.PathPrefix("/api/sample-requests").Subrouter()
	samplesAPI.Use(authMiddleware.Authenticate)
	samplesAPI.HandleFunc("", miscHandler.CreateSampleRequest).Methods("POST")
	samplesAPI.HandleFunc("", miscHandler.ListSampleRequests).Methods("GET")
	samplesAPI.HandleFunc("/{id}/status", requireRole(miscHandler.UpdateSampleStatus, warehouse...)).Methods("PUT")

	// Contact query follow-up (intake above is public)
	contactAPI := r.PathPrefix("/api/contact-queries").Subrouter()
	contactAPI.Use(authMiddleware.RequireRole(staff...))
	contactAPI.HandleFunc("", miscHandler.ListContactQueries).Methods("GET")
	contactAPI.HandleFunc("/{id}/assign", miscHandler.AssignContactQuery).Methods("PUT")
	contactAPI.HandleFunc("/{id}/close", miscHandler.CloseContactQuery).Methods("PUT")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.RequireRole(append(admins, models.RoleFinanceManager, models.RoleManager)...))
	reportsAPI.HandleFunc("/sales", reportHandler.Sales).Methods("GET")

	// Admin
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.RequireRole(admins...))
	adminAPI.HandleFunc("/audit-logs", adminHandler.AuditLogs).Methods("GET")
	adminAPI.HandleFunc("/settings", adminHandler.ListSettings).Methods("GET")
	adminAPI.HandleFunc("/settings", adminHandler.UpdateSetting).Methods("PUT")

	// Health endpoint (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return middleware.NewCORS(cfg)(r)
}
