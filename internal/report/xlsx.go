package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	entriesSheet = "Fill-ups"
	monthlySheet = "Monthly"
	summarySheet = "Summary"
)

// WriteXLSX writes a workbook with the fill-up log, the monthly spend and a
// summary sheet
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", entriesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{monthlySheet, summarySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	// Fill-ups
	if err := setRow(f, entriesSheet, 1, toCells(entryHeaders)); err != nil {
		return err
	}
	for i, e := range r.Entries {
		cost, _ := entryCost(e).Float64()
		row := []interface{}{
			e.Date.Format("2006-01-02"),
			e.Odometer,
			e.FuelAmount,
			e.PricePerLiter,
			cost,
			yesNo(e.FullTank),
			string(e.FuelType),
		}
		if err := setRow(f, entriesSheet, i+2, row); err != nil {
			return err
		}
	}
	f.SetColWidth(entriesSheet, "A", "A", 12)
	f.SetColWidth(entriesSheet, "B", "E", 14)
	f.SetColWidth(entriesSheet, "F", "G", 10)

	// Monthly
	if err := setRow(f, monthlySheet, 1, toCells([]string{"Month", "Fill-ups", "Fuel (L)", "Cost"})); err != nil {
		return err
	}
	for i, m := range r.Monthly {
		if err := setRow(f, monthlySheet, i+2, []interface{}{m.Month, m.FillUps, m.Fuel, m.Cost}); err != nil {
			return err
		}
	}

	// Summary
	summary := [][]interface{}{
		{"Vehicle", r.Vehicle.DisplayName()},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"Fill-ups", len(r.Entries)},
	}
	if r.HasStats {
		summary = append(summary,
			[]interface{}{"Average efficiency (km/L)", r.Stats.AvgEfficiency},
			[]interface{}{"Best efficiency (km/L)", r.Stats.BestEfficiency},
			[]interface{}{"Worst efficiency (km/L)", r.Stats.WorstEfficiency},
			[]interface{}{"Total distance (km)", r.Stats.TotalDistance},
			[]interface{}{"Total fuel (L)", r.Stats.TotalFuel},
			[]interface{}{"Total cost", r.Stats.TotalCost},
			[]interface{}{"Cost per km", r.Stats.CostPerKm},
		)
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 24)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// setRow writes values left to right starting at column A
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
