package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/db"
	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/parser"
	"github.com/balkashynov/motofuel/internal/stats"
	"github.com/balkashynov/motofuel/internal/tui"
)

var fillCmd = &cobra.Command{
	Use:     "fill [fill-up]",
	Aliases: []string{"add"},
	Short:   "Log a fill-up",
	Long: `Log a fill-up for a vehicle.

Modes:
  Interactive: motofuel fill -i (or just 'motofuel fill' with no arguments)
  Quick: motofuel fill 12450km 8.5l

Quick syntax:
  12450km, odo:12450   - Odometer reading (required)
  8.5l                 - Litres filled (required)
  full, partial        - Tank filled up or not (default full)
  date:yesterday       - Date (today, yesterday, N days ago, dd/mm/yyyy)
  @activa              - Vehicle name or id (default the selected vehicle)
  type:diesel          - Fuel type when it differs from the vehicle's

The price per litre is the current price set with 'motofuel price set'.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		interactive, _ := cmd.Flags().GetBool("interactive")
		noUI, _ := cmd.Flags().GetBool("no-ui")
		if len(args) == 0 && !noUI {
			interactive = true
		}

		now := time.Now()
		parsed := parser.ParseFillUp(strings.Join(args, " "), now)

		ref := parsed.Vehicle
		if flagRef, _ := cmd.Flags().GetString("vehicle"); flagRef != "" {
			ref = flagRef
		}
		vehicle, err := resolveVehicle(ref)
		if err != nil {
			printError(err)
			return
		}

		if !interactive && len(parsed.Errors) > 0 {
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			if noUI {
				return
			}
			fmt.Println("Opening interactive mode for confirmation...")
			interactive = true
		}

		if interactive {
			runInteractiveFill(vehicle, &parsed, now)
			return
		}
		runDirectFill(vehicle, parsed, now)
	},
}

// priceFor returns the current price for fuelType, warning when none is set
func priceFor(fuelType models.FuelType) float64 {
	price := prefs.Price(fuelType)
	if price <= 0 {
		fmt.Printf("⚠️  No %s price set, the fill-up is saved without a cost. Set it with 'motofuel price set %s <price>'.\n",
			fuelType, strings.ToLower(string(fuelType)))
	}
	return price
}

// fuelTypeFor is the fuel of a fill-up: the parsed one or the vehicle's
func fuelTypeFor(vehicle *models.Vehicle, parsed parser.ParsedFillUp) models.FuelType {
	if parsed.FuelType != "" {
		return parsed.FuelType
	}
	return vehicle.FuelType
}

// runInteractiveFill opens the fill-up form, pre-filled from quick syntax
// when parsed is not nil
func runInteractiveFill(vehicle *models.Vehicle, parsed *parser.ParsedFillUp, now time.Time) {
	last, err := store.LastOdometer(vehicle.ID)
	if err != nil {
		printError(err)
		return
	}

	fuelType := vehicle.FuelType
	if parsed != nil {
		fuelType = fuelTypeFor(vehicle, *parsed)
	}

	entry, err := tui.RunAddFillUp(store, tui.FillUpOptions{
		Vehicle:      *vehicle,
		LastOdometer: last,
		Price:        priceFor(fuelType),
		Currency:     cfg.Currency,
		Now:          now,
		Prefilled:    parsed,
	})
	if err != nil {
		printError(err)
		return
	}
	if entry != nil {
		if err := prefs.EntryAdded(); err != nil {
			printError(err)
		}
	}
}

// runDirectFill saves a fully parsed fill-up without the TUI
func runDirectFill(vehicle *models.Vehicle, parsed parser.ParsedFillUp, now time.Time) {
	last, err := store.LastOdometer(vehicle.ID)
	if err != nil {
		printError(err)
		return
	}

	entry, err := addFillUp(vehicle, parsed, priceFor(fuelTypeFor(vehicle, parsed)))
	if err != nil {
		printError(err)
		return
	}

	fmt.Printf("✅ Fill-up #%d saved for %s\n", entry.ID, vehicle.Name)
	fmt.Printf("  Odometer: %.0f km\n", entry.Odometer)
	fmt.Printf("  Fuel: %.2f L (%s)\n", entry.FuelAmount, tankLabel(entry.FullTank))
	fmt.Printf("  Date: %s\n", parser.FormatDate(entry.Date, now))

	est := stats.EstimateFill(last, entry.Odometer, entry.FuelAmount, entry.PricePerLiter)
	if est.Cost != nil {
		fmt.Printf("  Cost: %s%.2f\n", cfg.Currency, *est.Cost)
	}
	if est.DistanceSinceLast != nil {
		fmt.Printf("  Since last fill-up: %.0f km\n", *est.DistanceSinceLast)
	}
	if est.Efficiency != nil && entry.FullTank {
		fmt.Printf("  Estimated efficiency: %.1f km/L\n", *est.Efficiency)
	}
}

// addFillUp records a parsed fill-up at price and moves onboarding along
func addFillUp(vehicle *models.Vehicle, parsed parser.ParsedFillUp, price float64) (*models.FuelEntry, error) {
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(parsed.Errors, ", "), db.ErrValidation)
	}

	entry, err := store.AddEntry(db.AddEntryRequest{
		VehicleID:  vehicle.ID,
		Odometer:   *parsed.Odometer,
		FuelAmount: *parsed.FuelAmount,
		FullTank:   parsed.FullTank,
		FuelType:   parsed.FuelType,
		Date:       parsed.Date,
	}, price)
	if err != nil {
		return nil, err
	}

	if err := prefs.EntryAdded(); err != nil {
		return nil, err
	}
	return entry, nil
}

func tankLabel(full bool) string {
	if full {
		return "full tank"
	}
	return "partial"
}

var entriesCmd = &cobra.Command{
	Use:     "entries",
	Aliases: []string{"entry", "log"},
	Short:   "List or delete fill-ups",
}

var entriesListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List fill-ups, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, err := vehicleFlag(cmd)
		if err != nil {
			printError(err)
			return
		}

		entries, err := store.ListEntries(&vehicle.ID)
		if err != nil {
			printError(err)
			return
		}

		if len(entries) == 0 {
			fmt.Printf("No fill-ups for %s yet. Use 'motofuel fill 12450km 8.5l' to log one.\n", vehicle.Name)
			return
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		now := time.Now()
		fmt.Printf("⛽ %s\n", vehicle.DisplayName())
		fmt.Printf("%-5s %-26s %10s %8s %10s %10s %s\n", "ID", "DATE", "ODOMETER", "LITRES", "PRICE/L", "COST", "TANK")
		fmt.Println(strings.Repeat("-", 84))
		for _, e := range entries {
			fmt.Printf("%-5d %-26s %10.0f %8.2f %10.2f %10.2f %s\n",
				e.ID,
				parser.FormatDate(e.Date, now),
				e.Odometer,
				e.FuelAmount,
				e.PricePerLiter,
				e.Cost(),
				tankLabel(e.FullTank))
		}
	},
}

var entriesRemoveCmd = &cobra.Command{
	Use:     "rm [entry-id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a fill-up",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		all, _ := cmd.Flags().GetBool("all")
		if all {
			if err := store.DeleteAllEntries(); err != nil {
				printError(err)
				return
			}
			fmt.Println("🗑️  Deleted every fill-up")
			return
		}

		if len(args) == 0 {
			printError(fmt.Errorf("give an entry ID or --all"))
			return
		}
		id, err := parseID("entry", args[0])
		if err != nil {
			printError(err)
			return
		}
		if err := store.DeleteEntry(id); err != nil {
			printError(err)
			return
		}
		fmt.Printf("🗑️  Deleted fill-up #%d\n", id)
	},
}

func init() {
	fillCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	fillCmd.Flags().Bool("no-ui", false, "Never open the TUI")
	fillCmd.Flags().StringP("vehicle", "v", "", "Vehicle name or ID")

	entriesListCmd.Flags().StringP("vehicle", "v", "", "Vehicle name or ID")
	entriesListCmd.Flags().IntP("limit", "n", 0, "Show only the newest N fill-ups")
	entriesRemoveCmd.Flags().Bool("all", false, "Delete every fill-up of every vehicle")

	entriesCmd.AddCommand(entriesListCmd)
	entriesCmd.AddCommand(entriesRemoveCmd)
}
