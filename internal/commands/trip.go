package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/db"
	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/stats"
	"github.com/balkashynov/motofuel/internal/tui"
)

var tripCmd = &cobra.Command{
	Use:     "trip",
	Aliases: []string{"trips"},
	Short:   "Measure distances with named trips and the A/B trip meters",
}

var tripStartCmd = &cobra.Command{
	Use:   "start [name | a | b]",
	Short: "Start a named trip or a quick trip meter",
	Long: `Start a trip at the given odometer reading. Opens the trip meter by default, use --no-ui for a simple start.

Examples:
  motofuel trip start "Goa run" --odo 12450
  motofuel trip start a --odo 12450 --no-ui`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, err := vehicleFlag(cmd)
		if err != nil {
			printError(err)
			return
		}

		odometer, err := tripOdometer(cmd, vehicle)
		if err != nil {
			printError(err)
			return
		}
		notes, _ := cmd.Flags().GetString("notes")

		trip, err := startTrip(vehicle, strings.Join(args, " "), odometer, notes, time.Now())
		if err != nil {
			printError(err)
			return
		}

		if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
			fmt.Printf("🧭 Started trip #%d \"%s\" for %s at %.0f km\n", trip.ID, trip.Name, vehicle.Name, trip.StartOdometer)
			return
		}
		if err := tui.RunTripMeter(store, *trip); err != nil {
			printError(err)
		}
	},
}

// tripOdometer reads --odo, falling back to the vehicle's last fill-up reading
func tripOdometer(cmd *cobra.Command, vehicle *models.Vehicle) (float64, error) {
	if cmd.Flags().Changed("odo") {
		return cmd.Flags().GetFloat64("odo")
	}
	last, err := store.LastOdometer(vehicle.ID)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return 0, errors.New("no odometer reading known yet; pass --odo")
	}
	return *last, nil
}

// startTrip starts the A/B meter for "a"/"b" and a named trip otherwise
func startTrip(vehicle *models.Vehicle, name string, odometer float64, notes string, now time.Time) (*models.Trip, error) {
	if quick, err := models.ParseQuickTrip(name); err == nil {
		return store.StartQuickTrip(vehicle.ID, quick, odometer, now)
	}
	return store.StartTrip(db.StartTripRequest{
		VehicleID: vehicle.ID,
		Name:      name,
		Odometer:  odometer,
		Notes:     notes,
		StartedAt: now,
	})
}

var tripEndCmd = &cobra.Command{
	Use:   "end [trip-id]",
	Short: "End a running trip",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID("trip", args[0])
		if err != nil {
			printError(err)
			return
		}
		odometer, err := cmd.Flags().GetFloat64("odo")
		if err != nil || !cmd.Flags().Changed("odo") {
			printError(errors.New("pass the end reading with --odo"))
			return
		}

		trip, err := store.EndTrip(id, odometer, time.Now())
		if err != nil {
			printError(err)
			return
		}

		distance, _ := trip.Distance()
		fmt.Printf("🏁 Trip #%d \"%s\" ended: %.0f km\n", trip.ID, trip.Name, distance)
		printTripStats(*trip)
	},
}

var tripResetCmd = &cobra.Command{
	Use:   "reset [a | b]",
	Short: "End a quick trip meter and start it again from the current reading",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, err := vehicleFlag(cmd)
		if err != nil {
			printError(err)
			return
		}
		quick, err := models.ParseQuickTrip(args[0])
		if err != nil {
			printError(err)
			return
		}
		odometer, err := tripOdometer(cmd, vehicle)
		if err != nil {
			printError(err)
			return
		}

		fresh, err := resetQuickTrip(vehicle, quick, odometer, time.Now())
		if err != nil {
			printError(err)
			return
		}
		fmt.Printf("🔄 %s reset for %s. Counting from %.0f km (trip #%d)\n", fresh.Name, vehicle.Name, fresh.StartOdometer, fresh.ID)
	},
}

// resetQuickTrip restarts the A/B meter at odometer, starting it when it
// is not running
func resetQuickTrip(vehicle *models.Vehicle, quick models.TripType, odometer float64, now time.Time) (*models.Trip, error) {
	active, err := store.ActiveTrip(vehicle.ID, quick)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return store.StartQuickTrip(vehicle.ID, quick, odometer, now)
	}
	return store.ResetTrip(active.ID, odometer, now)
}

var tripListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List trips, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, err := vehicleFlag(cmd)
		if err != nil {
			printError(err)
			return
		}
		trips, err := store.ListTrips(&vehicle.ID)
		if err != nil {
			printError(err)
			return
		}

		if len(trips) == 0 {
			fmt.Printf("No trips for %s yet. Use 'motofuel trip start <name> --odo N' to start one.\n", vehicle.Name)
			return
		}

		fmt.Printf("%-5s %-20s %-8s %-12s %10s %10s %s\n", "ID", "NAME", "TYPE", "STARTED", "START", "END", "DISTANCE")
		fmt.Println(strings.Repeat("-", 84))
		for _, t := range trips {
			end, distance := "running", "-"
			if d, ok := t.Distance(); ok {
				end = fmt.Sprintf("%.0f", *t.EndOdometer)
				distance = fmt.Sprintf("%.0f km", d)
			}
			fmt.Printf("%-5d %-20s %-8s %-12s %10.0f %10s %s\n",
				t.ID, truncate(t.Name, 20), tripTypeLabel(t.Type), t.StartDate.Format("02/01/2006"), t.StartOdometer, end, distance)
		}
	},
}

func tripTypeLabel(t models.TripType) string {
	switch t {
	case models.TripQuickA:
		return "A"
	case models.TripQuickB:
		return "B"
	default:
		return "named"
	}
}

var tripRemoveCmd = &cobra.Command{
	Use:     "rm [trip-id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a trip",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID("trip", args[0])
		if err != nil {
			printError(err)
			return
		}
		if err := store.DeleteTrip(id); err != nil {
			printError(err)
			return
		}
		fmt.Printf("🗑️  Deleted trip #%d\n", id)
	},
}

var tripStatsCmd = &cobra.Command{
	Use:   "stats [trip-id]",
	Short: "Show fuel used and cost over an ended trip",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID("trip", args[0])
		if err != nil {
			printError(err)
			return
		}
		trip, err := store.GetTrip(id)
		if err != nil {
			printError(err)
			return
		}

		fmt.Printf("🧭 Trip #%d \"%s\"\n", trip.ID, trip.Name)
		printTripStats(*trip)
	},
}

var tripWatchCmd = &cobra.Command{
	Use:   "watch [trip-id]",
	Short: "Open the trip meter for a running trip",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID("trip", args[0])
		if err != nil {
			printError(err)
			return
		}
		trip, err := store.GetTrip(id)
		if err != nil {
			printError(err)
			return
		}
		if !trip.IsActive {
			printError(fmt.Errorf("trip #%d %w", trip.ID, db.ErrTripEnded))
			return
		}
		if err := tui.RunTripMeter(store, *trip); err != nil {
			printError(err)
		}
	},
}

// printTripStats prints distance, fuel and cost from the fill-ups made
// during trip
func printTripStats(trip models.Trip) {
	entries, err := store.ListEntries(&trip.VehicleID)
	if err != nil {
		printError(err)
		return
	}

	s, ok := stats.ComputeTrip(trip, entries)
	if !ok {
		if trip.IsActive {
			fmt.Println("  Still running. Stats are available once the trip ends.")
		} else {
			fmt.Println("  No distance covered.")
		}
		return
	}

	fmt.Printf("  Distance:   %.0f km\n", s.Distance)
	if s.FuelUsed == 0 {
		fmt.Println("  No full-tank fill-ups during this trip.")
		return
	}
	fmt.Printf("  Fuel used:  %.2f L\n", s.FuelUsed)
	fmt.Printf("  Cost:       %s%.2f\n", cfg.Currency, s.Cost)
	fmt.Printf("  Efficiency: %.1f km/L\n", s.Efficiency)
}

func init() {
	for _, c := range []*cobra.Command{tripStartCmd, tripResetCmd, tripListCmd} {
		c.Flags().StringP("vehicle", "v", "", "Vehicle name or ID")
	}
	for _, c := range []*cobra.Command{tripStartCmd, tripEndCmd, tripResetCmd} {
		c.Flags().Float64("odo", 0, "Odometer reading in km")
	}
	tripStartCmd.Flags().String("notes", "", "Notes for a named trip")
	tripStartCmd.Flags().Bool("no-ui", false, "Start without the trip meter")

	tripCmd.AddCommand(tripStartCmd)
	tripCmd.AddCommand(tripEndCmd)
	tripCmd.AddCommand(tripResetCmd)
	tripCmd.AddCommand(tripListCmd)
	tripCmd.AddCommand(tripRemoveCmd)
	tripCmd.AddCommand(tripStatsCmd)
	tripCmd.AddCommand(tripWatchCmd)
}
