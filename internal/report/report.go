// Package report renders a vehicle's fill-up log as CSV, XLSX or PDF.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/stats"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts a format name or a file name with a known extension
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if ext := filepath.Ext(s); ext != "" {
		s = strings.TrimPrefix(ext, ".")
	}
	switch Format(s) {
	case FormatCSV, FormatXLSX, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported report format %q. Use: csv, xlsx or pdf", s)
}

// Report is everything the renderers need, computed once
type Report struct {
	Vehicle     models.Vehicle
	Entries     []models.FuelEntry // oldest first
	Stats       stats.Stats
	HasStats    bool
	Monthly     []stats.MonthSpend
	Insights    []stats.Insight
	Currency    string
	GeneratedAt time.Time
}

// New builds a report for one vehicle
func New(vehicle models.Vehicle, entries []models.FuelEntry, currency string, now time.Time) Report {
	sorted := make([]models.FuelEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	s, ok := stats.Compute(sorted)
	return Report{
		Vehicle:     vehicle,
		Entries:     sorted,
		Stats:       s,
		HasStats:    ok,
		Monthly:     stats.MonthlySpend(sorted),
		Insights:    stats.InsightsIn(currency, sorted, now),
		Currency:    currency,
		GeneratedAt: now,
	}
}

// Write renders r in the given format
func (r Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	}
	return fmt.Errorf("unsupported report format %q", format)
}

// WriteFile renders r to path
func (r Report) WriteFile(path string, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := r.Write(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var entryHeaders = []string{"Date", "Odometer (km)", "Fuel (L)", "Price/L", "Cost", "Full tank", "Fuel type"}

// money formats an amount with two decimals
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// entryCost is fuel x price rounded to cents
func entryCost(e models.FuelEntry) decimal.Decimal {
	return decimal.NewFromFloat(e.FuelAmount).Mul(decimal.NewFromFloat(e.PricePerLiter)).Round(2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func entryRow(e models.FuelEntry) []string {
	return []string{
		e.Date.Format("2006-01-02"),
		fmt.Sprintf("%.1f", e.Odometer),
		fmt.Sprintf("%.2f", e.FuelAmount),
		money(e.PricePerLiter),
		entryCost(e).StringFixed(2),
		yesNo(e.FullTank),
		string(e.FuelType),
	}
}
