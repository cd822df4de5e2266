package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/peopledesk/hrms-backend/internal/hrms/events"
	"github.com/peopledesk/hrms-backend/internal/hrms/handler"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/internal/hrms/service"
	"github.com/peopledesk/hrms-backend/pkg/config"
	"github.com/peopledesk/hrms-backend/pkg/database"
	"github.com/peopledesk/hrms-backend/pkg/httputil"
	"github.com/peopledesk/hrms-backend/pkg/logger"
	"github.com/peopledesk/hrms-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("hrms-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("hrms-server", cfg.Server.Environment)
	log.Info().Msg("starting HRMS server")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Apply schema
	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer migrateCancel()
	if err := repository.Migrate(migrateCtx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply database schema")
	}

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewHRMSEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Initialize services
	employeeService := service.NewEmployeeService(employeeRepo, publisher, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, publisher, log)
	leaveService := service.NewLeaveService(leaveRepo, publisher, log)
	payrollService := service.NewPayrollService(payrollRepo, employeeRepo, publisher, log)
	dashboardService := service.NewDashboardService(dashboardRepo, log)

	// Initialize handlers
	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, log)
	leaveHandler := handler.NewLeaveHandler(leaveService, log)
	payrollHandler := handler.NewPayrollHandler(payrollService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "hrms-server",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Get("/{id}", employeeHandler.Get)
			r.Put("/{id}", employeeHandler.Update)
			r.Delete("/{id}", employeeHandler.Delete)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.List)
			r.Post("/", attendanceHandler.Mark)
			r.Get("/stats", attendanceHandler.Stats)
		})

		r.Route("/leave-requests", func(r chi.Router) {
			r.Get("/", leaveHandler.List)
			r.Post("/", leaveHandler.Submit)
			r.Get("/stats", leaveHandler.Stats)
			r.Put("/{id}/approve", leaveHandler.Approve)
			r.Put("/{id}/reject", leaveHandler.Reject)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", payrollHandler.List)
			r.Post("/process", payrollHandler.Process)
			r.Get("/stats", payrollHandler.Stats)
			r.Get("/{id}/payslip", payrollHandler.Payslip)
		})

		r.Get("/dashboard/stats", dashboardHandler.Stats)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
