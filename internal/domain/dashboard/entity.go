package dashboard

import (
	"github.com/shopspring/decimal"
)

// Module is a top-level area of the console.
type Module string

const (
	ModuleFinancing Module = "financing"
	ModuleInventory Module = "inventory"
	ModuleAbsensi   Module = "absensi"
	ModuleDatabase  Module = "database"
	ModuleKPI       Module = "kpi"
)

// ModuleInfo describes a module shown on the home screen.
type ModuleInfo struct {
	ID          Module `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var modules = []ModuleInfo{
	{ID: ModuleFinancing, Name: "Financing", Description: "Manajemen keuangan, pengeluaran & pemasukan"},
	{ID: ModuleInventory, Name: "Inventory", Description: "Stok material & unit AC"},
	{ID: ModuleAbsensi, Name: "Absensi", Description: "Kehadiran & aktivitas teknisi"},
	{ID: ModuleDatabase, Name: "Database", Description: "Data customer, proyek & teknisi"},
	{ID: ModuleKPI, Name: "KPI", Description: "Performa & tracking proyek"},
}

// Modules returns every module in display order.
func Modules() []ModuleInfo {
	return append([]ModuleInfo(nil), modules...)
}

// ParseModule returns ErrUnknownModule for a name that is not a module.
func ParseModule(name string) (Module, error) {
	for _, m := range modules {
		if string(m.ID) == name {
			return m.ID, nil
		}
	}
	return "", ErrUnknownModule
}

type FinancingSummary struct {
	Period   string          `json:"period"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

type InventorySummary struct {
	TotalItems    int             `json:"total_items"`
	MaterialItems int             `json:"material_items"`
	ACUnitItems   int             `json:"ac_unit_items"`
	LowStock      int             `json:"low_stock"`
	StockValue    decimal.Decimal `json:"stock_value"`
}

type AbsensiSummary struct {
	Date            string `json:"date"`
	ActiveEmployees int    `json:"active_employees"`
	CheckedIn       int    `json:"checked_in"`
	CheckedOut      int    `json:"checked_out"`
	Late            int    `json:"late"`
	Absent          int    `json:"absent"`
}

type DatabaseSummary struct {
	Employees int `json:"employees"`
	Customers int `json:"customers"`
	Projects  int `json:"projects"`
	Bookings  int `json:"bookings"`
}

type KPISummary struct {
	Period            string          `json:"period"`
	Employees         int             `json:"employees"`
	JobsCompleted     int             `json:"jobs_completed"`
	AveragePercentage decimal.Decimal `json:"average_percentage"`
}

// Overview is the combined home screen response.
type Overview struct {
	Financing FinancingSummary `json:"financing"`
	Inventory InventorySummary `json:"inventory"`
	Absensi   AbsensiSummary   `json:"absensi"`
	Database  DatabaseSummary  `json:"database"`
	KPI       KPISummary       `json:"kpi"`
}
