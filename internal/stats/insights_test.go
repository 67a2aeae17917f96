package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func datedFill(odometer, fuel float64, days int) models.FuelEntry {
	e := fill(odometer, fuel, true)
	e.Date = daysAgo(days)
	return e
}

func findInsight(insights []Insight, symbol string) (Insight, bool) {
	for _, in := range insights {
		if in.Symbol == symbol {
			return in, true
		}
	}
	return Insight{}, false
}

func TestInsights_TooFewEntries(t *testing.T) {
	testCases := [][]models.FuelEntry{
		nil,
		{datedFill(1000, 10, 1)},
	}
	for _, entries := range testCases {
		got := Insights(entries, testNow)
		if got == nil || len(got) != 0 {
			t.Errorf("Insights(%d entries) = %v, want empty non-nil slice", len(entries), got)
		}
	}
}

func TestInsights_FrequentFillUps(t *testing.T) {
	var entries []models.FuelEntry
	for i := 0; i < 7; i++ {
		entries = append(entries, datedFill(1000+float64(i)*100, 10, 18-2*i))
	}

	got := Insights(entries, testNow)
	if len(got) != 3 {
		t.Fatalf("Insights() returned %d insights, want 3: %v", len(got), got)
	}

	freq, ok := findInsight(got, "⛽")
	if !ok {
		t.Fatal("frequency insight missing")
	}
	if freq.Category != CategoryWarning {
		t.Errorf("frequency Category = %v, want %v", freq.Category, CategoryWarning)
	}
	if !strings.Contains(freq.Message, "7 times") {
		t.Errorf("frequency Message = %q, want it to contain %q", freq.Message, "7 times")
	}

	spend, ok := findInsight(got, "💰")
	if !ok || spend.Message != "You've spent ₹7000 on fuel this month" {
		t.Errorf("spend insight = %+v, want ₹7000 this month", spend)
	}

	best, ok := findInsight(got, "🏆")
	if !ok || best.Category != CategoryInfo || best.Message != "Best fill-up was 10.0 km/L" {
		t.Errorf("best insight = %+v, want earliest tie reported as INFO", best)
	}
}

func TestInsights_MonthOverMonth(t *testing.T) {
	testCases := []struct {
		name     string
		closeOdo float64
		symbol   string
		category Category
		message  string
	}{
		{"improved", 2300, "🚀", CategoryPositive, "Mileage improved 25.0% compared to last month!"},
		{"dropped", 2150, "⚠️", CategoryWarning, "Mileage dropped 12.5% compared to last month"},
		{"consistent", 2210, "✅", CategoryInfo, "Mileage is consistent with last month"},
	}

	for _, tc := range testCases {
		entries := []models.FuelEntry{
			datedFill(1000, 10, 50),
			datedFill(1400, 10, 40), // 40 km/L last month
			datedFill(1800, 10, 20),
			datedFill(tc.closeOdo, 10, 5),
		}

		got := Insights(entries, testNow)
		if len(got) == 0 {
			t.Fatalf("%s: Insights() returned nothing", tc.name)
		}
		first := got[0]
		if first.Symbol != tc.symbol || first.Category != tc.category || first.Message != tc.message {
			t.Errorf("%s: first insight = %+v, want %s %s %q", tc.name, first, tc.symbol, tc.category, tc.message)
		}
	}
}

func TestInsights_MonthOverMonthNeedsSegmentsInBothWindows(t *testing.T) {
	entries := []models.FuelEntry{
		datedFill(1000, 10, 45), // alone in last month's window
		datedFill(1400, 10, 20),
		datedFill(1900, 10, 5),
	}

	got := Insights(entries, testNow)
	for _, symbol := range []string{"🚀", "⚠️", "✅"} {
		if in, ok := findInsight(got, symbol); ok {
			t.Errorf("unexpected month-over-month insight %+v", in)
		}
	}
}

func TestInsights_PriceDrift(t *testing.T) {
	testCases := []struct {
		name     string
		first    float64
		latest   float64
		symbol   string
		category Category
		message  string
	}{
		{"increase", 100, 102.5, "📈", CategoryWarning, "Fuel price increased ₹2.50/L since your first entry"},
		{"decrease", 105, 101, "📉", CategoryPositive, "Fuel price decreased ₹4.00/L since your first entry"},
	}

	for _, tc := range testCases {
		older := datedFill(1000, 10, 10)
		older.PricePerLiter = tc.first
		newer := datedFill(1300, 10, 1)
		newer.PricePerLiter = tc.latest

		// input order must not matter, rules sort by date
		got := Insights([]models.FuelEntry{newer, older}, testNow)
		in, ok := findInsight(got, tc.symbol)
		if !ok {
			t.Fatalf("%s: price insight missing from %v", tc.name, got)
		}
		if in.Category != tc.category || in.Message != tc.message {
			t.Errorf("%s: price insight = %+v, want %s %q", tc.name, in, tc.category, tc.message)
		}
	}
}

func TestInsights_PriceDriftAtThreshold(t *testing.T) {
	older := datedFill(1000, 10, 10)
	newer := datedFill(1300, 10, 1)
	newer.PricePerLiter = older.PricePerLiter + PriceDriftThreshold

	got := Insights([]models.FuelEntry{older, newer}, testNow)
	for _, symbol := range []string{"📈", "📉"} {
		if in, ok := findInsight(got, symbol); ok {
			t.Errorf("unexpected price insight %+v", in)
		}
	}
}

func TestInsights_BestFillUp(t *testing.T) {
	entries := []models.FuelEntry{
		datedFill(1000, 10, 12),
		datedFill(1400, 10, 8),
		datedFill(1900, 10, 3),
	}

	got := Insights(entries, testNow)
	best, ok := findInsight(got, "🏆")
	if !ok {
		t.Fatal("best fill-up insight missing")
	}
	want := "Your last fill-up was your most efficient ever at 50.0 km/L!"
	if best.Category != CategoryPositive || best.Message != want {
		t.Errorf("best insight = %+v, want POSITIVE %q", best, want)
	}

	// one segment is not enough to call anything the best
	got = Insights(entries[:2], testNow)
	if in, ok := findInsight(got, "🏆"); ok {
		t.Errorf("unexpected best fill-up insight %+v", in)
	}
}

func TestInsightsIn_Currency(t *testing.T) {
	entries := []models.FuelEntry{datedFill(1000, 10, 2), datedFill(1300, 5, 1)}

	got := InsightsIn("$", entries, testNow)
	spend, ok := findInsight(got, "💰")
	if !ok {
		t.Fatal("spend insight missing")
	}
	if spend.Message != "You've spent $1500 on fuel this month" {
		t.Errorf("spend Message = %q", spend.Message)
	}
}

func TestInsights_OldEntriesOnly(t *testing.T) {
	entries := []models.FuelEntry{datedFill(1000, 10, 90), datedFill(1300, 10, 80)}

	got := Insights(entries, testNow)
	for _, symbol := range []string{"💰", "⛽"} {
		if in, ok := findInsight(got, symbol); ok {
			t.Errorf("unexpected this-month insight %+v", in)
		}
	}
}
