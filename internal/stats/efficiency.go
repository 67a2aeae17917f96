package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/balkashynov/motofuel/internal/models"
)

// Stats is the aggregate summary of a set of fill-ups
type Stats struct {
	AvgEfficiency   float64 `json:"avg_efficiency"`
	BestEfficiency  float64 `json:"best_efficiency"`
	WorstEfficiency float64 `json:"worst_efficiency"`
	TotalDistance   float64 `json:"total_distance"`
	TotalFuel       float64 `json:"total_fuel"`
	TotalCost       float64 `json:"total_cost"`
	CostPerKm       float64 `json:"cost_per_km"`
	LastOdometer    float64 `json:"last_odometer"`
	EntryCount      int     `json:"entry_count"`
}

// segment is one full-tank to full-tank interval, closed by entry
type segment struct {
	entry      models.FuelEntry
	efficiency float64
}

// sortedByOdometer returns a copy of entries in ascending odometer order.
// The sort is stable so duplicate readings keep their input order.
func sortedByOdometer(entries []models.FuelEntry) []models.FuelEntry {
	sorted := make([]models.FuelEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Odometer < sorted[j].Odometer
	})
	return sorted
}

// fullTankSegments walks consecutive full-tank entries by odometer and keeps
// every pair with positive distance and positive fuel. Anything else is
// skipped silently: logs may contain data-entry mistakes.
func fullTankSegments(entries []models.FuelEntry) []segment {
	var full []models.FuelEntry
	for _, e := range sortedByOdometer(entries) {
		if e.FullTank {
			full = append(full, e)
		}
	}

	var segments []segment
	for i := 1; i < len(full); i++ {
		distance := full[i].Odometer - full[i-1].Odometer
		fuel := full[i].FuelAmount
		if distance > 0 && fuel > 0 {
			segments = append(segments, segment{entry: full[i], efficiency: distance / fuel})
		}
	}
	return segments
}

// EfficiencySegments returns the km/L value of every valid full-tank segment
// in odometer order. Partial fills never open or close a segment.
func EfficiencySegments(entries []models.FuelEntry) []float64 {
	segments := fullTankSegments(entries)
	values := make([]float64, 0, len(segments))
	for _, s := range segments {
		values = append(values, s.efficiency)
	}
	return values
}

// mean is the arithmetic mean of values, 0 when there are none
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// totalCost sums fuel x price over entries
func totalCost(entries []models.FuelEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(decimal.NewFromFloat(e.FuelAmount).Mul(decimal.NewFromFloat(e.PricePerLiter)))
	}
	return total
}

// Compute summarises entries. It returns false when there is no data.
//
// Totals (distance, fuel, cost) use every entry, full or partial, while the
// efficiency figures only use full-tank segments.
func Compute(entries []models.FuelEntry) (Stats, bool) {
	if len(entries) == 0 {
		return Stats{}, false
	}

	sorted := sortedByOdometer(entries)
	segments := EfficiencySegments(entries)

	var s Stats
	s.EntryCount = len(entries)
	s.LastOdometer = sorted[len(sorted)-1].Odometer

	if len(sorted) > 1 {
		s.TotalDistance = sorted[len(sorted)-1].Odometer - sorted[0].Odometer
	}

	for _, e := range entries {
		s.TotalFuel += e.FuelAmount
	}
	s.TotalCost = totalCost(entries).InexactFloat64()

	if s.TotalDistance > 0 {
		s.CostPerKm = s.TotalCost / s.TotalDistance
	}

	if len(segments) > 0 {
		s.AvgEfficiency = mean(segments)
		s.BestEfficiency = segments[0]
		s.WorstEfficiency = segments[0]
		for _, v := range segments[1:] {
			if v > s.BestEfficiency {
				s.BestEfficiency = v
			}
			if v < s.WorstEfficiency {
				s.WorstEfficiency = v
			}
		}
	}

	return s, true
}
