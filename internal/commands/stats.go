package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/stats"
)

// vehicleEntries resolves --vehicle and loads that vehicle's fill-ups
func vehicleEntries(cmd *cobra.Command) (*models.Vehicle, []models.FuelEntry, error) {
	vehicle, err := vehicleFlag(cmd)
	if err != nil {
		return nil, nil, err
	}
	entries, err := store.ListEntries(&vehicle.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load fill-ups: %w", err)
	}
	return vehicle, entries, nil
}

// printJSON writes v as indented JSON
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show fuel efficiency and spending",
	Long: `Show fuel efficiency and spending for a vehicle.

Efficiency is measured between consecutive full-tank fill-ups; partial fills
count towards cost but not towards efficiency.`,
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, entries, err := vehicleEntries(cmd)
		if err != nil {
			printError(err)
			return
		}

		s, ok := stats.Compute(entries)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out := struct {
				Vehicle models.Vehicle `json:"vehicle"`
				Stats   *stats.Stats   `json:"stats"`
			}{Vehicle: *vehicle}
			if ok {
				out.Stats = &s
			}
			if err := printJSON(out); err != nil {
				printError(err)
			}
			return
		}

		fmt.Printf("📊 %s\n", vehicle.DisplayName())
		if !ok {
			fmt.Println("No data. Log a fill-up with 'motofuel fill 12450km 8.5l'.")
			return
		}

		c := cfg.Currency
		fmt.Printf("  Average efficiency: %.1f km/L\n", s.AvgEfficiency)
		fmt.Printf("  Best / worst:       %.1f / %.1f km/L\n", s.BestEfficiency, s.WorstEfficiency)
		fmt.Printf("  Distance:           %.0f km\n", s.TotalDistance)
		fmt.Printf("  Fuel:               %.2f L\n", s.TotalFuel)
		fmt.Printf("  Spent:              %s%.2f\n", c, s.TotalCost)
		fmt.Printf("  Cost per km:        %s%.2f\n", c, s.CostPerKm)
		fmt.Printf("  Odometer:           %.0f km\n", s.LastOdometer)
		fmt.Printf("  Fill-ups:           %d\n", s.EntryCount)
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show hints about your fuel use this month",
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, entries, err := vehicleEntries(cmd)
		if err != nil {
			printError(err)
			return
		}

		insights := stats.InsightsIn(cfg.Currency, entries, time.Now())
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if insights == nil {
				insights = []stats.Insight{}
			}
			if err := printJSON(insights); err != nil {
				printError(err)
			}
			return
		}

		if len(insights) == 0 {
			fmt.Printf("💡 No insights for %s yet. They appear after a few fill-ups.\n", vehicle.Name)
			return
		}
		fmt.Printf("💡 %s\n", vehicle.DisplayName())
		for _, in := range insights {
			fmt.Printf("  %s %s\n", in.Symbol, in.Message)
		}
	},
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show efficiency over time",
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, entries, err := vehicleEntries(cmd)
		if err != nil {
			printError(err)
			return
		}

		points := stats.EfficiencyTrend(entries)
		if len(points) == 0 {
			fmt.Printf("📈 Not enough full-tank fill-ups for %s to show a trend.\n", vehicle.Name)
			return
		}

		best := 0.0
		for _, p := range points {
			if p.Efficiency > best {
				best = p.Efficiency
			}
		}

		fmt.Printf("📈 %s\n", vehicle.DisplayName())
		for _, p := range points {
			bar := strings.Repeat("█", int(p.Efficiency/best*30+0.5))
			fmt.Printf("  %s %8.0f km %6.1f km/L %s\n", p.Date.Format("02/01/2006"), p.Odometer, p.Efficiency, bar)
		}
	},
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show fuel spending per month",
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, entries, err := vehicleEntries(cmd)
		if err != nil {
			printError(err)
			return
		}

		months := stats.MonthlySpend(entries)
		if len(months) == 0 {
			fmt.Printf("No fill-ups for %s yet.\n", vehicle.Name)
			return
		}

		fmt.Printf("🗓️  %s\n", vehicle.DisplayName())
		fmt.Printf("  %-8s %8s %10s %12s\n", "MONTH", "FILL-UPS", "LITRES", "SPENT")
		fmt.Println("  " + strings.Repeat("-", 42))
		for _, m := range months {
			fmt.Printf("  %-8s %8d %10.2f %12s\n", m.Month, m.FillUps, m.Fuel, fmt.Sprintf("%s%.2f", cfg.Currency, m.Cost))
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{statsCmd, insightsCmd, trendCmd, monthlyCmd} {
		c.Flags().StringP("vehicle", "v", "", "Vehicle name or ID")
	}
	statsCmd.Flags().Bool("json", false, "JSON output")
	insightsCmd.Flags().Bool("json", false, "JSON output")
}
