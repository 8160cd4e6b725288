package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/expense"
	"github.com/nalaaircon/nala-backend/internal/domain/finance"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
	"github.com/nalaaircon/nala-backend/internal/service/payroll"
)

type FinanceHandler interface {
	// Expenses
	CreateExpense(w http.ResponseWriter, r *http.Request)
	ListExpenses(w http.ResponseWriter, r *http.Request)
	GetExpense(w http.ResponseWriter, r *http.Request)
	DeleteExpense(w http.ResponseWriter, r *http.Request)
	SyncExpense(w http.ResponseWriter, r *http.Request)
	ExpenseSummary(w http.ResponseWriter, r *http.Request)

	// Income
	CreateIncome(w http.ResponseWriter, r *http.Request)
	ListIncome(w http.ResponseWriter, r *http.Request)
	DeleteIncome(w http.ResponseWriter, r *http.Request)

	Cashflow(w http.ResponseWriter, r *http.Request)
}

type financeHandlerImpl struct {
	expenseService expense.ExpenseService
	incomeService  finance.IncomeService
	calc           *payroll.Calculator
}

func NewFinanceHandler(expenseService expense.ExpenseService, incomeService finance.IncomeService, calc *payroll.Calculator) FinanceHandler {
	return &financeHandlerImpl{
		expenseService: expenseService,
		incomeService:  incomeService,
		calc:           calc,
	}
}

// ========== EXPENSES ==========

// CreateExpense handles POST /expenses. Material and AC unit purchases are
// booked into inventory, kasbon expenses become an advance.
func (h *financeHandlerImpl) CreateExpense(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req expense.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateExpense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CreatedBy = session.EmployeeID

	result, err := h.expenseService.CreateWithInventorySync(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense recorded successfully", result)
}

func (h *financeHandlerImpl) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := expense.ExpenseFilter{
		Category: r.URL.Query().Get("category"),
		Branch:   r.URL.Query().Get("branch"),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}

	items, err := h.expenseService.ListExpenses(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, items, len(items))
}

func (h *financeHandlerImpl) GetExpense(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteExpense handles DELETE /expenses/{id} and reverses its stock and kasbon effects.
func (h *financeHandlerImpl) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseService.DeleteWithInventorySync(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense deleted successfully", nil)
}

// SyncExpense handles POST /expenses/{id}/sync-inventory
func (h *financeHandlerImpl) SyncExpense(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.SyncToInventory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense synced to inventory", result)
}

func (h *financeHandlerImpl) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.Summary(r.Context(), periodParam(r, h.calc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== INCOME ==========

func (h *financeHandlerImpl) CreateIncome(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req finance.CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateIncome decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CreatedBy = session.EmployeeID

	result, err := h.incomeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Income recorded successfully", result)
}

func (h *financeHandlerImpl) ListIncome(w http.ResponseWriter, r *http.Request) {
	filter := finance.IncomeFilter{
		Branch: r.URL.Query().Get("branch"),
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
	}

	items, err := h.incomeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, items, len(items))
}

func (h *financeHandlerImpl) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := h.incomeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Income deleted successfully", nil)
}

// Cashflow handles GET /finance/cashflow
func (h *financeHandlerImpl) Cashflow(w http.ResponseWriter, r *http.Request) {
	result, err := h.incomeService.Cashflow(r.Context(), periodParam(r, h.calc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
