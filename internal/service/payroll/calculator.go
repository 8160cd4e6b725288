package payroll

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/payroll"
)

var hundred = decimal.NewFromInt(100)

// Calculator holds the salary and KPI rules. Every method is pure: the same
// input always gives the same output and nothing reads the clock.
//
// Unknown levels yield zero rates instead of an error; callers validate the
// level before relying on the result.
type Calculator struct {
	rules config.Rules
}

func NewCalculator(rules config.Rules) *Calculator {
	return &Calculator{rules: rules}
}

func (c *Calculator) Rules() config.Rules {
	return c.rules
}

// LateMinutes counts minutes past work start plus tolerance, rounded up.
// A check-in exactly at the end of the tolerance is on time.
func LateMinutes(checkIn time.Time, workStart config.ClockTime, toleranceMinutes int) int {
	deadline := workStart.On(checkIn).Add(time.Duration(toleranceMinutes) * time.Minute)
	if !checkIn.After(deadline) {
		return 0
	}
	return int(math.Ceil(checkIn.Sub(deadline).Minutes()))
}

// LatePenalty charges perHour for every started hour of lateness beyond the
// tolerance.
func LatePenalty(lateMinutes, toleranceMinutes int, perHour decimal.Decimal) decimal.Decimal {
	if lateMinutes <= toleranceMinutes {
		return decimal.Zero
	}
	blocks := (lateMinutes - toleranceMinutes + 59) / 60
	return perHour.Mul(decimal.NewFromInt(int64(blocks)))
}

// OvertimeMinutes counts whole minutes worked after work end.
func OvertimeMinutes(checkOut time.Time, workEnd config.ClockTime) int {
	end := workEnd.On(checkOut)
	if !checkOut.After(end) {
		return 0
	}
	return int(math.Floor(checkOut.Sub(end).Minutes()))
}

// KPIPercentage is achieved/target as a percentage capped at 100.
func KPIPercentage(achieved, target int) decimal.Decimal {
	if target <= 0 || achieved <= 0 {
		return decimal.Zero
	}
	pct := decimal.NewFromInt(int64(achieved)).Mul(hundred).Div(decimal.NewFromInt(int64(target)))
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// KasbonLimit is the largest advance allowed for the given KPI achievement.
func KasbonLimit(kpiPercentage, baseSalary, limitPercentage decimal.Decimal) decimal.Decimal {
	kpi := decimal.Min(decimal.Max(kpiPercentage, decimal.Zero), hundred)
	return baseSalary.Mul(kpi).Div(hundred).Mul(limitPercentage).Div(hundred).Round(0)
}

func (c *Calculator) location() *time.Location {
	return c.rules.Location()
}

// Date returns the company-local date (YYYY-MM-DD) of t.
func (c *Calculator) Date(t time.Time) string {
	return t.In(c.location()).Format("2006-01-02")
}

// Period returns the company-local payroll period (YYYY-MM) of t.
func (c *Calculator) Period(t time.Time) string {
	return t.In(c.location()).Format("2006-01")
}

// LateMinutes uses the configured work start and tolerance, in the company
// time zone.
func (c *Calculator) LateMinutes(checkIn time.Time) int {
	return LateMinutes(checkIn.In(c.location()), c.rules.WorkStart, c.rules.LateToleranceMinutes)
}

func (c *Calculator) LatePenalty(lateMinutes int) decimal.Decimal {
	return LatePenalty(lateMinutes, c.rules.LateToleranceMinutes, decimal.NewFromInt(c.rules.LatePenaltyPerHour))
}

func (c *Calculator) OvertimeMinutes(checkOut time.Time) int {
	return OvertimeMinutes(checkOut.In(c.location()), c.rules.WorkEnd)
}

func (c *Calculator) OvertimePay(hours decimal.Decimal, level string) decimal.Decimal {
	return hours.Mul(c.rules.OvertimeRate(level)).Round(0)
}

func (c *Calculator) BaseSalary(workDays int, level string) decimal.Decimal {
	return c.rules.DailyRate(level).Mul(decimal.NewFromInt(int64(workDays)))
}

// KPIDeduction averages the achievement percentage of every configured job
// type with equal weight. A job type missing from achievements counts as 0.
func (c *Calculator) KPIDeduction(achievements map[string]int, baseSalary decimal.Decimal) payroll.KPIResult {
	result := payroll.KPIResult{Details: make([]payroll.KPIDetail, 0, len(c.rules.KPITargets))}

	sum := decimal.Zero
	for _, target := range c.rules.KPITargets {
		achieved := achievements[target.JobType]
		pct := KPIPercentage(achieved, target.Target)
		sum = sum.Add(pct)
		result.Details = append(result.Details, payroll.KPIDetail{
			JobType:    target.JobType,
			Name:       target.Name,
			Achieved:   achieved,
			Target:     target.Target,
			Percentage: pct.Round(2),
		})
	}

	average := decimal.Zero
	if n := len(c.rules.KPITargets); n > 0 {
		average = sum.Div(decimal.NewFromInt(int64(n)))
	}
	deduction := decimal.Max(decimal.Zero, hundred.Sub(average))

	result.AveragePercentage = average.Round(2)
	result.DeductionPercentage = deduction.Round(2)
	result.DeductionAmount = baseSalary.Mul(deduction).Div(hundred).Round(0)
	return result
}

// AverageKPI returns only the average achievement percentage.
func (c *Calculator) AverageKPI(achievements map[string]int) decimal.Decimal {
	return c.KPIDeduction(achievements, decimal.Zero).AveragePercentage
}

func (c *Calculator) KasbonLimit(kpiPercentage, baseSalary decimal.Decimal) decimal.Decimal {
	return KasbonLimit(kpiPercentage, baseSalary, decimal.NewFromInt(c.rules.KasbonLimitPercentage))
}

// SalarySlip computes the full breakdown of a slip.
func (c *Calculator) SalarySlip(in payroll.SlipInput) payroll.Breakdown {
	base := c.BaseSalary(in.WorkDays, in.Level)
	overtime := c.OvertimePay(in.OvertimeHours, in.Level)
	kpi := c.KPIDeduction(in.Achievements, base)
	late := c.LatePenalty(in.LateMinutes)

	income := payroll.Income{
		BaseSalary:    base,
		Overtime:      overtime,
		MealAllowance: in.MealAllowance,
		Total:         base.Add(overtime).Add(in.MealAllowance),
	}
	deductions := payroll.Deductions{
		Kasbon:      in.Kasbon,
		LatePenalty: late,
		KPI:         kpi.DeductionAmount,
		Total:       in.Kasbon.Add(late).Add(kpi.DeductionAmount),
	}

	return payroll.Breakdown{
		Period:      in.Period,
		PeriodLabel: PeriodLabel(in.Period),
		Income:      income,
		Deductions:  deductions,
		KPI:         kpi,
		NetSalary:   income.Total.Sub(deductions.Total),
	}
}

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// PeriodLabel formats "2025-01" as "Januari 2025". Unparseable periods are
// returned unchanged.
func PeriodLabel(period string) string {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return period
	}
	return fmt.Sprintf("%s %d", bulan[t.Month()-1], t.Year())
}
