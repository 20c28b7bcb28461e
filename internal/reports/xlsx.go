package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fleetrent-backend/internal/domain"
)

const sheetName = "Sheet1"

// WriteMonthlyXLSX writes the monthly profit and loss report as an
// Excel workbook.
func WriteMonthlyXLSX(w io.Writer, rows []domain.ProfitLossRow) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue(sheetName, "A1", "Month")
	f.SetCellValue(sheetName, "B1", "Revenue")
	f.SetCellValue(sheetName, "C1", "Expenses")
	f.SetCellValue(sheetName, "D1", "Profit")

	for i, r := range rows {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+row, r.Month)
		f.SetCellValue(sheetName, "B"+row, r.Revenue.InexactFloat64())
		f.SetCellValue(sheetName, "C"+row, r.Expenses.InexactFloat64())
		f.SetCellValue(sheetName, "D"+row, r.Profit.InexactFloat64())
	}

	return f.Write(w)
}

// WriteVehicleXLSX writes the per-vehicle profit and loss report as an
// Excel workbook.
func WriteVehicleXLSX(w io.Writer, rows []domain.VehicleProfitLossRow) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue(sheetName, "A1", "Vehicle")
	f.SetCellValue(sheetName, "B1", "LicensePlate")
	f.SetCellValue(sheetName, "C1", "Revenue")
	f.SetCellValue(sheetName, "D1", "Expenses")
	f.SetCellValue(sheetName, "E1", "Profit")

	for i, r := range rows {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+row, fmt.Sprintf("%s %s", r.Make, r.Model))
		f.SetCellValue(sheetName, "B"+row, r.LicensePlate)
		f.SetCellValue(sheetName, "C"+row, r.Revenue.InexactFloat64())
		f.SetCellValue(sheetName, "D"+row, r.Expenses.InexactFloat64())
		f.SetCellValue(sheetName, "E"+row, r.Profit.InexactFloat64())
	}

	return f.Write(w)
}
