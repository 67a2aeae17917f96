package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

// Category classifies an insight for display
type Category string

const (
	CategoryPositive Category = "POSITIVE"
	CategoryWarning  Category = "WARNING"
	CategoryInfo     Category = "INFO"
)

// Product-tuned thresholds for insight rules
const (
	MonthWindow            = 30 * 24 * time.Hour
	ChangeThresholdPercent = 5.0
	PriceDriftThreshold    = 1.0
	FrequentFillUps        = 6
	MinBestSegments        = 2
)

// DefaultCurrency is used in money messages when no symbol is configured
const DefaultCurrency = "₹"

// Insight is a short human-readable observation about the fill-up log
type Insight struct {
	Symbol   string   `json:"symbol"`
	Message  string   `json:"message"`
	Category Category `json:"category"`
}

// Insights evaluates every rule against entries as of now, using the default
// currency symbol.
func Insights(entries []models.FuelEntry, now time.Time) []Insight {
	return InsightsIn(DefaultCurrency, entries, now)
}

// InsightsIn evaluates every rule against entries as of now. Rules are
// independent; the order of the result is fixed.
func InsightsIn(currency string, entries []models.FuelEntry, now time.Time) []Insight {
	insights := []Insight{}
	if len(entries) < 2 {
		return insights
	}

	sorted := make([]models.FuelEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	oneMonthAgo := now.Add(-MonthWindow)
	twoMonthsAgo := now.Add(-2 * MonthWindow)

	var thisMonth, lastMonth []models.FuelEntry
	for _, e := range sorted {
		switch {
		case !e.Date.Before(oneMonthAgo):
			thisMonth = append(thisMonth, e)
		case !e.Date.Before(twoMonthsAgo):
			lastMonth = append(lastMonth, e)
		}
	}

	if in, ok := monthOverMonth(thisMonth, lastMonth); ok {
		insights = append(insights, in)
	}
	if in, ok := priceDrift(currency, sorted); ok {
		insights = append(insights, in)
	}
	if in, ok := bestFillUp(entries); ok {
		insights = append(insights, in)
	}

	if len(thisMonth) > 0 {
		spend := totalCost(thisMonth).InexactFloat64()
		insights = append(insights, Insight{
			Symbol:   "💰",
			Message:  fmt.Sprintf("You've spent %s%.0f on fuel this month", currency, spend),
			Category: CategoryInfo,
		})
	}

	if len(thisMonth) >= FrequentFillUps {
		insights = append(insights, Insight{
			Symbol:   "⛽",
			Message:  fmt.Sprintf("You've filled up %d times this month, quite frequent!", len(thisMonth)),
			Category: CategoryWarning,
		})
	}

	return insights
}

// monthOverMonth compares efficiency of the last 30 days with the 30 days
// before. Both windows need at least one full-tank segment.
func monthOverMonth(thisMonth, lastMonth []models.FuelEntry) (Insight, bool) {
	current := mean(EfficiencySegments(thisMonth))
	previous := mean(EfficiencySegments(lastMonth))
	if current <= 0 || previous <= 0 {
		return Insight{}, false
	}

	change := (current - previous) / previous * 100
	switch {
	case change >= ChangeThresholdPercent:
		return Insight{
			Symbol:   "🚀",
			Message:  fmt.Sprintf("Mileage improved %.1f%% compared to last month!", change),
			Category: CategoryPositive,
		}, true
	case change <= -ChangeThresholdPercent:
		return Insight{
			Symbol:   "⚠️",
			Message:  fmt.Sprintf("Mileage dropped %.1f%% compared to last month", -change),
			Category: CategoryWarning,
		}, true
	default:
		return Insight{
			Symbol:   "✅",
			Message:  "Mileage is consistent with last month",
			Category: CategoryInfo,
		}, true
	}
}

// priceDrift compares the first and the latest price paid (by date)
func priceDrift(currency string, byDate []models.FuelEntry) (Insight, bool) {
	diff := byDate[len(byDate)-1].PricePerLiter - byDate[0].PricePerLiter
	switch {
	case diff > PriceDriftThreshold:
		return Insight{
			Symbol:   "📈",
			Message:  fmt.Sprintf("Fuel price increased %s%.2f/L since your first entry", currency, diff),
			Category: CategoryWarning,
		}, true
	case diff < -PriceDriftThreshold:
		return Insight{
			Symbol:   "📉",
			Message:  fmt.Sprintf("Fuel price decreased %s%.2f/L since your first entry", currency, -diff),
			Category: CategoryPositive,
		}, true
	}
	return Insight{}, false
}

// bestFillUp reports the most efficient segment. On ties the earliest
// segment counts as the best one.
func bestFillUp(entries []models.FuelEntry) (Insight, bool) {
	segments := fullTankSegments(entries)
	if len(segments) < MinBestSegments {
		return Insight{}, false
	}

	best := 0
	for i, s := range segments {
		if s.efficiency > segments[best].efficiency {
			best = i
		}
	}

	if best == len(segments)-1 {
		return Insight{
			Symbol:   "🏆",
			Message:  fmt.Sprintf("Your last fill-up was your most efficient ever at %.1f km/L!", segments[best].efficiency),
			Category: CategoryPositive,
		}, true
	}
	return Insight{
		Symbol:   "🏆",
		Message:  fmt.Sprintf("Best fill-up was %.1f km/L", segments[best].efficiency),
		Category: CategoryInfo,
	}, true
}
