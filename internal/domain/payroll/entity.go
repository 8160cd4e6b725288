package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIDetail is the achievement of one job type within a period.
type KPIDetail struct {
	JobType    string          `json:"job_type"`
	Name       string          `json:"name"`
	Achieved   int             `json:"achieved"`
	Target     int             `json:"target"`
	Percentage decimal.Decimal `json:"percentage"`
}

// KPIResult is the equal-weight KPI average and the salary deduction it
// causes.
type KPIResult struct {
	Details             []KPIDetail     `json:"details"`
	AveragePercentage   decimal.Decimal `json:"average_percentage"`
	DeductionPercentage decimal.Decimal `json:"deduction_percentage"`
	DeductionAmount     decimal.Decimal `json:"deduction_amount"`
}

// Income (pendapatan)
type Income struct {
	BaseSalary    decimal.Decimal `json:"gaji_pokok"`
	Overtime      decimal.Decimal `json:"lembur"`
	MealAllowance decimal.Decimal `json:"uang_makan"`
	Total         decimal.Decimal `json:"total"`
}

// Deductions (potongan)
type Deductions struct {
	Kasbon      decimal.Decimal `json:"kasbon"`
	LatePenalty decimal.Decimal `json:"denda_telat"`
	KPI         decimal.Decimal `json:"potongan_kpi"`
	Total       decimal.Decimal `json:"total"`
}

// SlipInput is everything a salary slip is computed from.
type SlipInput struct {
	Level         string
	WorkDays      int
	OvertimeHours decimal.Decimal
	LateMinutes   int
	MealAllowance decimal.Decimal
	Kasbon        decimal.Decimal
	Achievements  map[string]int
	Period        string
}

// Breakdown is a computed salary slip. NetSalary always equals
// Income.Total minus Deductions.Total.
type Breakdown struct {
	Period      string          `json:"period"`
	PeriodLabel string          `json:"periode"`
	Income      Income          `json:"pendapatan"`
	Deductions  Deductions      `json:"potongan"`
	KPI         KPIResult       `json:"kpi_detail"`
	NetSalary   decimal.Decimal `json:"gaji_bersih"`
}

// SalarySlip is the persisted snapshot of a generated slip. It is never
// recomputed after creation.
type SalarySlip struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	Level         string          `json:"level"`
	Branch        string          `json:"branch"`
	Period        string          `json:"period"`
	WorkDays      int             `json:"work_days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	LateMinutes   int             `json:"late_minutes"`
	Breakdown     Breakdown       `json:"breakdown"`
	KasbonIDs     []string        `json:"kasbon_ids"`
	GeneratedBy   string          `json:"generated_by"`
	CreatedAt     time.Time       `json:"created_at"`
}
