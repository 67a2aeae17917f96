package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balkashynov/motofuel/internal/models"
)

const monthKeyLayout = "2006-01"

// TrendPoint is the efficiency of one segment, dated by the fill-up closing it
type TrendPoint struct {
	Date       time.Time `json:"date"`
	Odometer   float64   `json:"odometer"`
	Efficiency float64   `json:"efficiency"`
}

// EfficiencyTrend returns one point per valid full-tank segment in odometer order
func EfficiencyTrend(entries []models.FuelEntry) []TrendPoint {
	segments := fullTankSegments(entries)
	points := make([]TrendPoint, 0, len(segments))
	for _, s := range segments {
		points = append(points, TrendPoint{
			Date:       s.entry.Date,
			Odometer:   s.entry.Odometer,
			Efficiency: s.efficiency,
		})
	}
	return points
}

// MonthSpend is the fuel bought in one calendar month
type MonthSpend struct {
	Month   string  `json:"month"`
	FillUps int     `json:"fill_ups"`
	Fuel    float64 `json:"fuel"`
	Cost    float64 `json:"cost"`
}

// MonthlySpend groups entries by calendar month, oldest month first
func MonthlySpend(entries []models.FuelEntry) []MonthSpend {
	type bucket struct {
		fillUps int
		fuel    float64
		cost    decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	var keys []string

	for _, e := range entries {
		key := e.Date.Format(monthKeyLayout)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{cost: decimal.Zero}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.fillUps++
		b.fuel += e.FuelAmount
		b.cost = b.cost.Add(decimal.NewFromFloat(e.FuelAmount).Mul(decimal.NewFromFloat(e.PricePerLiter)))
	}

	sort.Strings(keys)
	months := make([]MonthSpend, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		months = append(months, MonthSpend{
			Month:   key,
			FillUps: b.fillUps,
			Fuel:    b.fuel,
			Cost:    b.cost.InexactFloat64(),
		})
	}
	return months
}

// PricePoint is the latest price paid within a month
type PricePoint struct {
	Month    string          `json:"month"`
	Date     time.Time       `json:"date"`
	Price    float64         `json:"price"`
	FuelType models.FuelType `json:"fuel_type"`
}

// PriceHistory returns the most recent price of each month, newest first.
// A limit of zero or less returns every month.
func PriceHistory(entries []models.FuelEntry, limit int) []PricePoint {
	sorted := make([]models.FuelEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	seen := make(map[string]bool)
	var points []PricePoint
	for _, e := range sorted {
		key := e.Date.Format(monthKeyLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		points = append(points, PricePoint{Month: key, Date: e.Date, Price: e.PricePerLiter, FuelType: e.FuelType})
		if limit > 0 && len(points) == limit {
			break
		}
	}
	return points
}

// Estimate is the live preview shown while a fill-up is typed in
type Estimate struct {
	DistanceSinceLast *float64 `json:"distance_since_last,omitempty"`
	Efficiency        *float64 `json:"efficiency,omitempty"`
	Cost              *float64 `json:"cost,omitempty"`
}

// EstimateFill previews distance since the last reading, efficiency and cost.
// lastOdometer is nil when the vehicle has no entries yet.
func EstimateFill(lastOdometer *float64, odometer, fuel, price float64) Estimate {
	var est Estimate
	if lastOdometer != nil && odometer > *lastOdometer {
		distance := odometer - *lastOdometer
		est.DistanceSinceLast = &distance
		if fuel > 0 {
			efficiency := distance / fuel
			est.Efficiency = &efficiency
		}
	}
	if fuel > 0 && price > 0 {
		cost := fuel * price
		est.Cost = &cost
	}
	return est
}
