package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrms-portal/api"
	"hrms-portal/internal/config"
	"hrms-portal/internal/database"
	"hrms-portal/internal/event"
	"hrms-portal/internal/handler"
	"hrms-portal/internal/middleware"
	"hrms-portal/internal/model"
	"hrms-portal/internal/repository"
	"hrms-portal/internal/router"
	"hrms-portal/internal/service"
	"hrms-portal/internal/storage"
	"hrms-portal/internal/websocket"
)

type App struct {
	server       *http.Server
	log          *slog.Logger
	cleanupFuncs []func()
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	photos, err := storage.NewPhotoStore(cfg.PhotoRoot, cfg.MaxUploadSize, cfg.ThumbnailSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	log.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	recordRepo := repository.NewRecordRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	log.Info("database ready")

	validate := service.NewValidator(time.Now)
	bus := event.NewBus(log)
	auditService := service.NewAuditService(auditRepo, log)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.JWTAccessTTL, log)
	authService.SetEventBus(bus)
	if err := authService.EnsureDefaultAdmin(context.Background(), cfg.DefaultAdminPassword); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed default admin: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)

	records := service.NewRecords(recordRepo, validate, auditService, bus, log, time.Now)
	employeeService := service.NewEmployeeService(records.Employees, photos, bus, log)
	attendanceService := service.NewAttendanceService(records.Attendance, validate, time.Now)
	clockService := service.NewClockService(records.Clock, validate, time.Now)
	payrollService := service.NewPayrollService(records.Payrolls, records.Employees, validate, time.Now)

	hub := websocket.NewHub(bus, log)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:        handler.NewAuthHandler(authService, auditService),
		Audit:       handler.NewAuditHandler(auditService),
		Employees:   handler.NewEmployeeHandler(employeeService, cfg.MaxUploadSize),
		Benefits:    handler.NewRecordHandler[model.Benefit](records.Benefits),
		Compliances: handler.NewRecordHandler[model.Compliance](records.Compliances),
		Departments: handler.NewRecordHandler[model.Department](records.Departments),
		LeaveTypes:  handler.NewRecordHandler[model.LeaveType](records.LeaveTypes),
		Attendance:  handler.NewAttendanceHandler(attendanceService),
		Clock:       handler.NewClockHandler(clockService),
		Payroll:     handler.NewPayrollHandler(payrollService),
		Docs:        handler.NewDocsHandler(api.OpenAPI),
		Events:      websocket.NewServer(hub, cfg.CORSOrigins).ServeWS,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		log:    log,
		cleanupFuncs: []func(){
			hubCancel,
			db.Close,
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		a.log.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			a.log.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	a.log.Info("server stopped")
	return nil
}
