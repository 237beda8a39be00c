package main

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

	"github.com/staffhub-hr/staffhub-backend-go/internal/config"
	"github.com/staffhub-hr/staffhub-backend-go/internal/document"
	appHTTP "github.com/staffhub-hr/staffhub-backend-go/internal/handler/http"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/jwt"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/obs"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/storage"
	"github.com/staffhub-hr/staffhub-backend-go/internal/repository/postgresql"
	companyService "github.com/staffhub-hr/staffhub-backend-go/internal/service/company"
	employeeService "github.com/staffhub-hr/staffhub-backend-go/internal/service/employee"
	leavePolicyService "github.com/staffhub-hr/staffhub-backend-go/internal/service/leavepolicy"
	notificationService "github.com/staffhub-hr/staffhub-backend-go/internal/service/notification"
	payslipService "github.com/staffhub-hr/staffhub-backend-go/internal/service/payslip"
	planService "github.com/staffhub-hr/staffhub-backend-go/internal/service/plan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if cfg.App.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	obs.Init()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	planRepo := postgresql.NewPlanRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	policyRepo := postgresql.NewLeavePolicyRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	txMgr := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	notificationSvc := notificationService.NewNotificationService(notificationRepo, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	}, logger)
	defer notificationSvc.Stop()

	renderer := document.NewPDFRenderer(logger)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		logger.Error("failed to initialize file storage", "error", err)
		os.Exit(1)
	}
	logoPolicy := storage.UploadPolicy{
		Filter:      storage.ImageFilter,
		MaxFileSize: cfg.Storage.MaxFileSize,
	}

	planSvc := planService.NewPlanService(planRepo, txMgr, logger)
	companySvc := companyService.NewCompanyService(companyRepo, planRepo, userRepo, txMgr, jwtService, logger)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, companyRepo, txMgr, logger)
	policySvc := leavePolicyService.NewLeavePolicyService(policyRepo, companyRepo, txMgr, logger)
	payslipSvc := payslipService.NewPayslipService(payslipRepo, employeeRepo, companyRepo, userRepo, notificationSvc, renderer, txMgr, logger)

	// Make sure the plan catalog exists before the first signup.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := planSvc.SeedDefaults(seedCtx); err != nil {
		cancelSeed()
		logger.Error("failed to seed plan catalog", "error", err)
		os.Exit(1)
	}
	cancelSeed()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:          jwtService,
		CompanyService:      companySvc,
		PlanHandler:         appHTTP.NewPlanHandler(planSvc),
		CompanyHandler:      appHTTP.NewCompanyHandler(companySvc, jwtService, fileStorage, logoPolicy),
		EmployeeHandler:     appHTTP.NewEmployeeHandler(employeeSvc),
		LeavePolicyHandler:  appHTTP.NewLeavePolicyHandler(policySvc),
		PayslipHandler:      appHTTP.NewPayslipHandler(payslipSvc),
		NotificationHandler: appHTTP.NewNotificationHandler(notificationSvc),
		Env:                 cfg.App.Env,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
