package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
	"github.com/nalaaircon/nala-backend/internal/pkg/jwt"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/storage"
	"github.com/nalaaircon/nala-backend/internal/repository/record"
	attendanceService "github.com/nalaaircon/nala-backend/internal/service/attendance"
	authService "github.com/nalaaircon/nala-backend/internal/service/auth"
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

const (
	adminPhone    = "081100000000"
	adminPassword = "admin123"
)

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	clock   time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := recordstore.NewMemoryStore()
	rules := config.DefaultRules()
	calc := payrollService.NewCalculator(rules)
	s := &testServer{t: t, clock: time.Date(2025, 1, 6, 8, 40, 0, 0, rules.Location())}
	now := func() time.Time { return s.clock }

	employeeRepo := record.NewEmployeeRepository(store)
	attendanceRepo := record.NewAttendanceRepository(store)
	itemRepo := record.NewItemRepository(store)
	movementRepo := record.NewMovementRepository(store)
	kasbonRepo := record.NewKasbonRepository(store)
	kpiRepo := record.NewKPIRepository(store)
	expenseRepo := record.NewExpenseRepository(store)
	incomeRepo := record.NewIncomeRepository(store)

	created, err := employeeService.EnsureAdmin(ctx, employeeRepo, rules, "Admin", adminPhone, adminPassword)
	require.NoError(t, err)
	require.True(t, created)

	uploads, err := storage.NewLocalStorage(t.TempDir(), "http://nala.test/api/v1/leave-requests/proof")
	require.NoError(t, err)

	jwtService := jwt.NewJWTService("router-test-secret", "1h")
	inventorySvc := inventoryService.NewInventoryService(store, itemRepo, movementRepo)
	kasbonSvc := kasbonService.NewKasbonService(store, kasbonRepo, employeeRepo, attendanceRepo, kpiRepo, calc, now)
	kpiSvc := kpiService.NewKPIService(store, kpiRepo, employeeRepo, movementRepo, inventorySvc, calc)
	incomeSvc := financeService.NewIncomeService(incomeRepo, expenseRepo, rules)
	recordSvc := recordService.NewRecordService(record.NewDocumentRepository(store))
	expenseSvc := expenseService.NewExpenseService(store, expenseRepo, itemRepo, movementRepo, inventorySvc, kasbonRepo, kasbonSvc, rules)
	payrollSvc := payrollService.NewPayrollService(store, record.NewSalarySlipRepository(store), employeeRepo, attendanceRepo, kpiRepo, kasbonRepo, calc, now)

	handlers := Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(employeeRepo, jwtService)),
		Employee:   NewEmployeeHandler(employeeService.NewEmployeeService(store, employeeRepo, rules)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(store, attendanceRepo, employeeRepo, calc, now), calc),
		Leave: NewLeaveHandler(leaveService.NewLeaveService(store, record.NewLeaveRequestRepository(store), employeeRepo, rules, now),
			fileService.NewFileService(uploads, now)),
		Inventory:  NewInventoryHandler(inventorySvc),
		Finance:    NewFinanceHandler(expenseSvc, incomeSvc, calc),
		Record:     NewRecordHandler(recordSvc),
		KPI:        NewKPIHandler(kpiSvc, calc),
		Kasbon:     NewKasbonHandler(kasbonSvc),
		Payroll:    NewPayrollHandler(payrollSvc, calc),
		Dashboard: NewDashboardHandler(dashboardService.NewDashboardService(
			incomeSvc, inventorySvc, kpiSvc, recordSvc, employeeRepo, attendanceRepo, calc, now)),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.handler = NewRouter(jwtService, handlers, RouterOptions{Logger: logger})
	return s
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s *testServer) login(phone, password string) string {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"phone": phone, "password": password})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &token))
	require.NotEmpty(s.t, token.AccessToken)
	return token.AccessToken
}

func dataID(t *testing.T, env envelope) string {
	t.Helper()
	var v struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	require.NotEmpty(t, v.ID)
	return v.ID
}

// createTechnician adds a technician through the API and logs them in.
func (s *testServer) createTechnician(adminToken, phone string) (id, token string) {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, "/api/v1/employees", adminToken, map[string]string{
		"name": "Andi", "phone": phone, "password": "rahasia1",
		"role": "teknisi", "level": "teknisi", "branch": "makassar",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return dataID(s.t, env), s.login(phone, "rahasia1")
}

func TestRouter_Auth(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"phone": adminPhone, "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)

	rec, _ = s.do(http.MethodGet, "/api/v1/modules", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login(adminPhone, adminPassword)
	rec, env = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"role":"admin"`)
}

func TestRouter_Permissions(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminPhone, adminPassword)
	_, teknisi := s.createTechnician(admin, "081200000001")

	rec, _ := s.do(http.MethodPost, "/api/v1/inventory", teknisi, map[string]any{"name": "Pipa", "category": "material", "unit": "meter"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/employees", teknisi, map[string]string{"name": "X"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/v1/inventory", teknisi, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Admins hold every permission but are not technicians with a check-in.
	rec, _ = s.do(http.MethodGet, "/api/v1/attendance?date=2025-01-06", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodGet, "/api/v1/attendance?date=2025-01-06", teknisi, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AttendanceFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminPhone, adminPassword)
	_, teknisi := s.createTechnician(admin, "081200000002")

	rec, env := s.do(http.MethodPost, "/api/v1/attendance/check-in", teknisi, map[string]string{"error_code": "PERMISSION_DENIED"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "LOCATION_PERMISSION_DENIED", env.Error.Code)

	rec, env = s.do(http.MethodPost, "/api/v1/attendance/check-in", teknisi, map[string]float64{"latitude": -5.2, "longitude": 119.42379})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "OUTSIDE_RADIUS", env.Error.Code)
	assert.Equal(t, "Kantor Makassar", env.Error.Details["office"])

	rec, env = s.do(http.MethodPost, "/api/v1/attendance/check-in", teknisi, map[string]float64{"latitude": -5.135399, "longitude": 119.42379, "accuracy": 8})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"state":"CHECKED_IN"`)

	rec, _ = s.do(http.MethodPost, "/api/v1/attendance/check-in", teknisi, map[string]float64{"latitude": -5.135399, "longitude": 119.42379})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/v1/attendance/today", teknisi, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"date":"2025-01-06"`)

	// Check-out without a body is accepted.
	s.clock = s.clock.Add(9 * time.Hour)
	rec, _ = s.do(http.MethodPost, "/api/v1/attendance/check-out", teknisi, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_InventoryAndRecords(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminPhone, adminPassword)

	rec, env := s.do(http.MethodPost, "/api/v1/inventory", admin, map[string]any{
		"name": "Freon R32", "category": "material", "quantity": 5, "unit": "kg", "min_stock": 2, "unit_price": "85000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	itemID := dataID(t, env)

	rec, _ = s.do(http.MethodPost, "/api/v1/inventory/"+itemID+"/stock-in", admin, map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = s.do(http.MethodPost, "/api/v1/inventory/"+itemID+"/stock-in", admin, map[string]any{"quantity": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "quantity")

	rec, env = s.do(http.MethodGet, "/api/v1/inventory/"+itemID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"quantity":"8"`)

	rec, env = s.do(http.MethodGet, "/api/v1/inventory/"+itemID+"/reconcile", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"drift":"0"`)

	rec, env = s.do(http.MethodGet, "/api/v1/inventory/"+itemID+"/movements", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, env.Meta.TotalItems)

	rec, env = s.do(http.MethodPost, "/api/v1/records/bookings", admin, map[string]string{
		"customer_name": "Ibu Sari", "service_date": "2025-01-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"status":"pending"`)

	rec, env = s.do(http.MethodGet, "/api/v1/records/bookings?date=2025-01-10", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.Meta.TotalItems)

	rec, _ = s.do(http.MethodGet, "/api/v1/records/invoices", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ModulesAndExport(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminPhone, adminPassword)

	rec, env := s.do(http.MethodGet, "/api/v1/modules", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, env.Meta.TotalItems)

	rec, _ = s.do(http.MethodGet, "/api/v1/modules/inventory/summary", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/v1/modules/gudang/summary", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/v1/payroll/slips/export?period=2025-01", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="slip-gaji-2025-01.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotZero(t, rec.Body.Len())
}

func TestRouter_LeaveProofUpload(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminPhone, adminPassword)
	_, teknisi := s.createTechnician(admin, "081200000003")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "surat-dokter.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 surat dokter"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leave-requests/proof", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+teknisi)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var upload struct {
		Path string `json:"path"`
		URL  string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &upload))
	proofURL := "/api/v1/leave-requests/proof/" + upload.Path
	assert.Equal(t, "http://nala.test"+proofURL, upload.URL)

	rec, _ = s.do(http.MethodGet, proofURL, teknisi, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "%PDF-1.4 surat dokter", rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec, _ = s.do(http.MethodGet, proofURL, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, proofURL, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, other := s.createTechnician(admin, "081200000004")
	rec, _ = s.do(http.MethodGet, proofURL, other, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	dir := path.Dir(upload.Path)
	for _, p := range []string{dir, dir + "/", path.Dir(dir), "leave/"} {
		rec, _ = s.do(http.MethodGet, "/api/v1/leave-requests/proof/"+p, admin, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, p)
		assert.NotContains(t, rec.Body.String(), path.Base(upload.Path), p)
	}

	for _, old := range []string{"/uploads/" + upload.Path, "/uploads/leave/"} {
		rec = httptest.NewRecorder()
		s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, old, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, old)
	}

	leaveBody := map[string]string{
		"leave_type": "sakit", "start_date": "2025-01-07", "end_date": "2025-01-08", "reason": "Demam",
	}
	rec, _ = s.do(http.MethodPost, "/api/v1/leave-requests", teknisi, leaveBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	leaveBody["proof_url"] = upload.URL
	rec, env = s.do(http.MethodPost, "/api/v1/leave-requests", teknisi, leaveBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"total_days":2`)
}
