package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/handler/http/middleware"
	"github.com/nalaaircon/nala-backend/internal/pkg/jwt"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Inventory  InventoryHandler
	Finance    FinanceHandler
	Record     RecordHandler
	KPI        KPIHandler
	Kasbon     KasbonHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
}

// RouterOptions configures the ambient middleware.
type RouterOptions struct {
	Logger      *slog.Logger
	CORSOrigins []string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	read := middleware.RequirePermission(user.PermissionRead)
	write := middleware.RequirePermission(user.PermissionWrite)
	writeFinance := middleware.RequirePermission(user.PermissionWriteFinance)
	approve := middleware.RequirePermission(user.PermissionApprove)
	admin := middleware.RequirePermission(user.PermissionAll)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/employees", func(r chi.Router) {
				r.With(read).Get("/", h.Employee.ListEmployees)
				r.With(read).Get("/{id}", h.Employee.GetEmployee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(admin)
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeactivateEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionCheckIn)).Post("/check-in", h.Attendance.ClockIn)
				r.With(middleware.RequirePermission(user.PermissionCheckOut)).Post("/check-out", h.Attendance.ClockOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/me", h.Attendance.GetMyAttendance)
				r.With(read).Get("/summary", h.Attendance.Summary)
				r.With(approve).Get("/", h.Attendance.List)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Use(read)
				r.Get("/", h.Leave.ListRequests)
				r.Post("/", h.Leave.CreateRequest)
				r.Post("/proof", h.Leave.UploadProof)
				r.Get("/proof/*", h.Leave.ServeProof)
				r.Get("/{id}", h.Leave.GetRequest)
				r.With(approve).Post("/{id}/approve", h.Leave.ApproveRequest)
				r.With(approve).Post("/{id}/reject", h.Leave.RejectRequest)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Use(read)
				r.Get("/", h.Inventory.ListItems)
				r.Get("/low-stock", h.Inventory.LowStock)
				r.Get("/reconcile", h.Inventory.ReconcileAll)
				r.Get("/{id}", h.Inventory.GetItem)
				r.Get("/{id}/movements", h.Inventory.ListMovements)
				r.Get("/{id}/reconcile", h.Inventory.Reconcile)

				r.Group(func(r chi.Router) {
					r.Use(write)
					r.Post("/", h.Inventory.CreateItem)
					r.Put("/{id}", h.Inventory.UpdateItem)
					r.Delete("/{id}", h.Inventory.DeleteItem)
					r.Post("/{id}/stock-in", h.Inventory.StockIn)
					r.Post("/{id}/stock-out", h.Inventory.StockOut)
				})
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(read)
				r.Get("/", h.Finance.ListExpenses)
				r.Get("/summary", h.Finance.ExpenseSummary)
				r.Get("/{id}", h.Finance.GetExpense)

				r.Group(func(r chi.Router) {
					r.Use(writeFinance)
					r.Post("/", h.Finance.CreateExpense)
					r.Delete("/{id}", h.Finance.DeleteExpense)
					r.Post("/{id}/sync-inventory", h.Finance.SyncExpense)
				})
			})

			r.Route("/income", func(r chi.Router) {
				r.Use(read)
				r.Get("/", h.Finance.ListIncome)
				r.With(writeFinance).Post("/", h.Finance.CreateIncome)
				r.With(writeFinance).Delete("/{id}", h.Finance.DeleteIncome)
			})

			r.With(read).Get("/finance/cashflow", h.Finance.Cashflow)

			r.Route("/records/{collection}", func(r chi.Router) {
				r.Use(read)
				r.Get("/", h.Record.List)
				r.Get("/{id}", h.Record.Get)

				r.Group(func(r chi.Router) {
					r.Use(write)
					r.Post("/", h.Record.Create)
					r.Put("/{id}", h.Record.Update)
					r.Delete("/{id}", h.Record.Delete)
				})
			})

			r.Route("/kpi", func(r chi.Router) {
				r.Use(read)
				r.Get("/", h.KPI.Summaries)
				r.Get("/{employeeID}", h.KPI.GetRecord)

				r.Group(func(r chi.Router) {
					r.Use(write)
					r.Put("/{employeeID}", h.KPI.Upsert)
					r.Post("/jobs", h.KPI.RecordJob)
					r.Post("/jobs/reverse", h.KPI.ReverseJob)
				})
			})

			r.Route("/kasbon", func(r chi.Router) {
				r.Use(read)
				r.Get("/", h.Kasbon.List)
				r.Get("/limit/{employeeID}", h.Kasbon.Limit)
				r.With(writeFinance).Post("/", h.Kasbon.Create)
				r.With(writeFinance).Post("/{id}/paid", h.Kasbon.MarkPaid)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(read)
				r.Get("/slips", h.Payroll.ListSlips)
				r.Get("/slips/{id}", h.Payroll.GetSlip)

				r.Group(func(r chi.Router) {
					r.Use(approve)
					r.Post("/preview", h.Payroll.Preview)
					r.Post("/slips", h.Payroll.GenerateSlip)
					r.Get("/slips/export", h.Payroll.ExportSlips)
				})
			})

			r.Route("/modules", func(r chi.Router) {
				r.Use(read)
				r.Get("/", h.Dashboard.ListModules)
				r.Get("/overview", h.Dashboard.Overview)
				r.Get("/{module}/summary", h.Dashboard.Summary)
			})
		})
	})
	return r
}
