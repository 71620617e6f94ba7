package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dairy-backend/internal/handlers"
	"dairy-backend/internal/middleware"
)

func NewRouter(
	userHandler *handlers.UserHandler,
	customerHandler *handlers.CustomerHandler,
	productHandler *handlers.ProductHandler,
	inventoryHandler *handlers.InventoryHandler,
	workerInventoryHandler *handlers.WorkerInventoryHandler,
	deliveryHandler *handlers.DeliveryHandler,
	cashHandler *handlers.CashHandler,
	verificationHandler *handlers.VerificationHandler,
	billHandler *handlers.BillHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", userHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", userHandler.Login).Methods("POST")

	// Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireRole("admin"))
	usersAPI.HandleFunc("", userHandler.List).Methods("GET")
	usersAPI.HandleFunc("/{id}/active", userHandler.SetActive).Methods("PUT")

	// Customers and subscriptions
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.List).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.Create).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.Get).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.Update).Methods("PUT")
	customersAPI.HandleFunc("/{id}/subscriptions", customerHandler.ListSubscriptions).Methods("GET")
	customersAPI.HandleFunc("/{id}/subscriptions", customerHandler.UpsertSubscription).Methods("POST")

	// Products
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.List).Methods("GET")
	productsAPI.HandleFunc("", productHandler.Create).Methods("POST")
	productsAPI.HandleFunc("/{id}", productHandler.Get).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.Update).Methods("PUT")

	// Depot inventory (admin only)
	inventoryAPI := r.PathPrefix("/api/inventory").Subrouter()
	inventoryAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireRole("admin"))
	inventoryAPI.HandleFunc("", inventoryHandler.ListDay).Methods("GET")
	inventoryAPI.HandleFunc("/demand/recalculate", inventoryHandler.RecalculateDemand).Methods("POST")
	inventoryAPI.HandleFunc("/ordered", inventoryHandler.SetOrdered).Methods("PUT")
	inventoryAPI.HandleFunc("/received", inventoryHandler.SetReceived).Methods("PUT")
	inventoryAPI.HandleFunc("/remaining", inventoryHandler.SetRemaining).Methods("PUT")

	// Worker stock
	workerStockAPI := r.PathPrefix("/api/worker-inventory").Subrouter()
	workerStockAPI.Use(authMiddleware.Authenticate)
	workerStockAPI.HandleFunc("/picked", workerInventoryHandler.RecordPicked).Methods("POST")
	workerStockAPI.HandleFunc("/remaining", workerInventoryHandler.RecordRemaining).Methods("POST")
	workerStockAPI.HandleFunc("/{workerId}", workerInventoryHandler.ListDay).Methods("GET")

	// Deliveries
	deliveriesAPI := r.PathPrefix("/api/deliveries").Subrouter()
	deliveriesAPI.Use(authMiddleware.Authenticate)
	deliveriesAPI.HandleFunc("", deliveryHandler.Record).Methods("POST")
	deliveriesAPI.HandleFunc("/today", deliveryHandler.ListToday).Methods("GET")
	deliveriesAPI.HandleFunc("/worker/{workerId}", deliveryHandler.ListWorkerDay).Methods("GET")

	// Cash in hand
	cashAPI := r.PathPrefix("/api/cash").Subrouter()
	cashAPI.Use(authMiddleware.Authenticate)
	cashAPI.HandleFunc("", cashHandler.Report).Methods("POST")
	cashAPI.HandleFunc("/worker/{workerId}", cashHandler.GetWorkerDay).Methods("GET")
	cashAPI.HandleFunc("", cashHandler.ListDay).Methods("GET")

	// End-of-day verification (admin only)
	verifyAPI := r.PathPrefix("/api/verification").Subrouter()
	verifyAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireRole("admin"))
	verifyAPI.HandleFunc("", verificationHandler.Submit).Methods("POST")
	verifyAPI.HandleFunc("", verificationHandler.ListDay).Methods("GET")

	// Billing (admin only)
	billsAPI := r.PathPrefix("/api/bills").Subrouter()
	billsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireRole("admin"))
	billsAPI.HandleFunc("", billHandler.List).Methods("GET")
	billsAPI.HandleFunc("", billHandler.Generate).Methods("POST")
	billsAPI.HandleFunc("/preview/{customerId}", billHandler.Preview).Methods("GET")
	billsAPI.HandleFunc("/{id}", billHandler.Get).Methods("GET")
	billsAPI.HandleFunc("/{id}/paid", billHandler.MarkPaid).Methods("PUT")
	billsAPI.HandleFunc("/{id}/download", billHandler.Download).Methods("GET")

	// Reports (admin only)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireRole("admin"))
	reportsAPI.HandleFunc("/daily", reportHandler.DailySummary).Methods("GET")

	return r
}
