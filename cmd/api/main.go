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

	"github.com/go-chi/httplog/v3"

	"github.com/nalaaircon/nala-backend/internal/config"
	appHTTP "github.com/nalaaircon/nala-backend/internal/handler/http"
	"github.com/nalaaircon/nala-backend/internal/pkg/cron"
	"github.com/nalaaircon/nala-backend/internal/pkg/jwt"
	"github.com/nalaaircon/nala-backend/internal/pkg/notifier"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/storage"
	"github.com/nalaaircon/nala-backend/internal/repository/record"
	attendanceService "github.com/nalaaircon/nala-backend/internal/service/attendance"
	serviceAuth "github.com/nalaaircon/nala-backend/internal/service/auth"
	dashboardService "github.com/nalaaircon/nala-backend/internal/service/dashboard"
	employeeService "github.com/nalaaircon/nala-backend/internal/service/employee"
	expenseService "github.com/nalaaircon/nala-backend/internal/service/expense"
	fileService "github.com/nalaaircon/nala-backend/internal/service/file"
	financeService "github.com/nalaaircon/nala-backend/internal/service/finance"
	inventoryService "github.com/nalaaircon/nala-backend/internal/service/inventory"
	kasbonService "github.com/nalaaircon/nala-backend/internal/service/kasbon"
	kpiService "github.com/nalaaircon/nala-backend/internal/service/kpi"
	leaveService "github.com/nalaaircon/nala-backend/internal/service/leave"
	payrollService "github.com/nalaaircon/nala-backend/internal/service/payroll"
	recordService "github.com/nalaaircon/nala-backend/internal/service/records"
)

var version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nala-aircon"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := recordstore.Open(ctx, recordstore.Options{
		Backend:         cfg.Store.Backend,
		PostgresDSN:     cfg.DatabaseURL(),
		ConnectTimeout:  cfg.Store.ConnectTimeout,
		SQLitePath:      cfg.Store.SQLitePath,
		FallbackToLocal: cfg.Store.FallbackToLocal,
	})
	if err != nil {
		slog.Error("Error opening record store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Record store ready", "backend", store.Backend())

	rules := cfg.Rules
	calc := payrollService.NewCalculator(rules)

	employeeRepo := record.NewEmployeeRepository(store)
	attendanceRepo := record.NewAttendanceRepository(store)
	leaveRequestRepo := record.NewLeaveRequestRepository(store)
	itemRepo := record.NewItemRepository(store)
	movementRepo := record.NewMovementRepository(store)
	expenseRepo := record.NewExpenseRepository(store)
	incomeRepo := record.NewIncomeRepository(store)
	kasbonRepo := record.NewKasbonRepository(store)
	kpiRepo := record.NewKPIRepository(store)
	slipRepo := record.NewSalarySlipRepository(store)
	documentRepo := record.NewDocumentRepository(store)

	created, err := employeeService.EnsureAdmin(ctx, employeeRepo, rules, cfg.Admin.Name, cfg.Admin.Phone, cfg.Admin.Password)
	if err != nil {
		slog.Error("Error seeding admin account", "error", err)
		os.Exit(1)
	}
	if created {
		slog.Info("Admin account created", "phone", cfg.Admin.Phone)
	}

	uploads, err := storage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("Error preparing upload storage", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(store, employeeRepo, rules)
	attendanceSvc := attendanceService.NewAttendanceService(store, attendanceRepo, employeeRepo, calc, nil)
	leaveSvc := leaveService.NewLeaveService(store, leaveRequestRepo, employeeRepo, rules, nil)
	fileSvc := fileService.NewFileService(uploads, nil)
	inventorySvc := inventoryService.NewInventoryService(store, itemRepo, movementRepo)
	kasbonSvc := kasbonService.NewKasbonService(store, kasbonRepo, employeeRepo, attendanceRepo, kpiRepo, calc, nil)
	kpiSvc := kpiService.NewKPIService(store, kpiRepo, employeeRepo, movementRepo, inventorySvc, calc)
	expenseSvc := expenseService.NewExpenseService(store, expenseRepo, itemRepo, movementRepo, inventorySvc, kasbonRepo, kasbonSvc, rules)
	incomeSvc := financeService.NewIncomeService(incomeRepo, expenseRepo, rules)
	recordSvc := recordService.NewRecordService(documentRepo)
	payrollSvc := payrollService.NewPayrollService(store, slipRepo, employeeRepo, attendanceRepo, kpiRepo, kasbonRepo, calc, nil)
	dashboardSvc := dashboardService.NewDashboardService(incomeSvc, inventorySvc, kpiSvc, recordSvc, employeeRepo, attendanceRepo, calc, nil)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, calc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc, fileSvc),
		Inventory:  appHTTP.NewInventoryHandler(inventorySvc),
		Finance:    appHTTP.NewFinanceHandler(expenseSvc, incomeSvc, calc),
		Record:     appHTTP.NewRecordHandler(recordSvc),
		KPI:        appHTTP.NewKPIHandler(kpiSvc, calc),
		Kasbon:     appHTTP.NewKasbonHandler(kasbonSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc, calc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	}
	router := appHTTP.NewRouter(JWTService, handlers, appHTTP.RouterOptions{
		Logger:      logger,
		CORSOrigins: cfg.App.CORSOrigins,
	})

	// Background jobs
	alerts := notifier.New(cfg.Telegram.Token, cfg.Telegram.ChatID)
	scheduler := cron.NewScheduler()
	cron.NewInventoryJobs(inventorySvc, alerts, rules.Location()).
		RegisterJobs(scheduler, cfg.Jobs.ReconcileHour, cfg.Jobs.LowStockHour)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
