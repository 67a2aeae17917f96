package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/parser"
	"github.com/balkashynov/motofuel/internal/stats"
)

var priceCmd = &cobra.Command{
	Use:     "price",
	Aliases: []string{"prices"},
	Short:   "Show or set fuel prices",
}

var priceGetCmd = &cobra.Command{
	Use:   "get [fuel-type]",
	Short: "Show the current price per litre",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fuelTypes := models.FuelTypes
		if len(args) == 1 {
			fuelType, err := models.ParseFuelType(args[0])
			if err != nil {
				printError(err)
				return
			}
			fuelTypes = []models.FuelType{fuelType}
		}

		for _, ft := range fuelTypes {
			if price := prefs.Price(ft); price > 0 {
				fmt.Printf("🏷️  %-9s %s%.2f/L\n", ft, cfg.Currency, price)
			} else {
				fmt.Printf("🏷️  %-9s not set\n", ft)
			}
		}
		if updated, ok := prefs.PriceUpdatedAt(); ok {
			fmt.Printf("Last updated: %s\n", parser.FormatDate(updated, time.Now()))
		}
	},
}

var priceSetCmd = &cobra.Command{
	Use:   "set [fuel-type] [price]",
	Short: "Set the price per litre used for new fill-ups",
	Long: `Set the price per litre used for new fill-ups.

Examples:
  motofuel price set petrol 102.50
  motofuel price set 102.50          # petrol`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		fuelType, price, err := parsePriceArgs(args)
		if err != nil {
			printError(err)
			return
		}

		old := prefs.Price(fuelType)
		if err := prefs.SetPrice(fuelType, price); err != nil {
			printError(err)
			return
		}

		fmt.Printf("✅ %s price set to %s%.2f/L\n", fuelType, cfg.Currency, price)
		if old > 0 && old != price {
			fmt.Printf("  Was %s%.2f/L (%+.2f)\n", cfg.Currency, old, price-old)
		}
	},
}

// parsePriceArgs accepts "<type> <price>" or just "<price>" for petrol
func parsePriceArgs(args []string) (models.FuelType, float64, error) {
	fuelType := models.FuelPetrol
	raw := args[0]
	if len(args) == 2 {
		ft, err := models.ParseFuelType(args[0])
		if err != nil {
			return "", 0, err
		}
		fuelType, raw = ft, args[1]
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid price '%s'", raw)
	}
	return fuelType, price, nil
}

var priceHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the price paid per month",
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, entries, err := vehicleEntries(cmd)
		if err != nil {
			printError(err)
			return
		}

		limit, _ := cmd.Flags().GetInt("limit")
		points := stats.PriceHistory(entries, limit)
		if len(points) == 0 {
			fmt.Printf("No fill-ups for %s yet.\n", vehicle.Name)
			return
		}

		fmt.Printf("🏷️  Price history for %s\n", vehicle.DisplayName())
		for i, p := range points {
			change := ""
			if i+1 < len(points) {
				if diff := p.Price - points[i+1].Price; diff != 0 {
					change = fmt.Sprintf(" (%+.2f)", diff)
				}
			}
			fmt.Printf("  %s  %-9s %s%.2f/L%s\n", p.Month, p.FuelType, cfg.Currency, p.Price, change)
		}
	},
}

func init() {
	priceHistoryCmd.Flags().StringP("vehicle", "v", "", "Vehicle name or ID")
	priceHistoryCmd.Flags().IntP("limit", "n", 12, "Number of months to show, 0 for all")

	priceCmd.AddCommand(priceGetCmd)
	priceCmd.AddCommand(priceSetCmd)
	priceCmd.AddCommand(priceHistoryCmd)
}
