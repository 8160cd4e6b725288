package payroll

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nalaaircon/nala-backend/internal/domain/payroll"
)

const slipSheet = "Slip Gaji"

var slipHeader = []interface{}{
	"Nama", "Level", "Cabang", "Hari Kerja", "Jam Lembur", "Menit Telat",
	"Gaji Pokok", "Lembur", "Uang Makan", "Total Pendapatan",
	"Kasbon", "Denda Telat", "Potongan KPI", "Total Potongan",
	"KPI (%)", "Gaji Bersih",
}

// SlipsWorkbook renders slips as a single-sheet xlsx workbook, one row per
// slip after the header row.
func SlipsWorkbook(period string, slips []payroll.SalarySlip) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", slipSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetCellValue(slipSheet, "A1", "Periode "+PeriodLabel(period)); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}
	if err := f.SetSheetRow(slipSheet, "A3", &slipHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, slip := range slips {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		b := slip.Breakdown
		row := []interface{}{
			slip.EmployeeName, slip.Level, slip.Branch, slip.WorkDays,
			slip.OvertimeHours.InexactFloat64(), slip.LateMinutes,
			b.Income.BaseSalary.IntPart(), b.Income.Overtime.IntPart(),
			b.Income.MealAllowance.IntPart(), b.Income.Total.IntPart(),
			b.Deductions.Kasbon.IntPart(), b.Deductions.LatePenalty.IntPart(),
			b.Deductions.KPI.IntPart(), b.Deductions.Total.IntPart(),
			b.KPI.AveragePercentage.InexactFloat64(), b.NetSalary.IntPart(),
		}
		if err := f.SetSheetRow(slipSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write slip %s: %w", slip.ID, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
