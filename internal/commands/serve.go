package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/api"
	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a local read-only JSON API",
	Long: `Serve vehicles, fill-ups, stats, insights, trips and a backup download over HTTP.

Listens on server.address:server.port from the config file (default 127.0.0.1:8787).

Routes:
  GET /api/health
  GET /api/vehicles
  GET /api/vehicles/:id/entries | stats | insights | trend | monthly | trips
  GET /api/backup`,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Addr()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		h := api.NewHandler(store, prefs, cfg.Currency)
		if err := api.Serve(ctx, h, cfg.Server, addr); err != nil {
			printError(err)
			return
		}
		fmt.Println("👋 Server stopped")
	},
}

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "ui"},
	Short:   "Open the interactive dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		vehicles, err := store.ListVehicles()
		if err != nil {
			printError(err)
			return
		}
		entries, err := store.ListEntries(nil)
		if err != nil {
			printError(err)
			return
		}
		trips, err := store.ListTrips(nil)
		if err != nil {
			printError(err)
			return
		}
		selected, _ := prefs.SelectedVehicle()

		action, vehicle, err := tui.RunDashboard(tui.DashboardData{
			Vehicles: vehicles,
			Entries:  entries,
			Trips:    trips,
			Currency: cfg.Currency,
			Selected: selected,
		})
		if err != nil {
			printError(err)
			return
		}

		switch action {
		case tui.ActionAddFillUp:
			runInteractiveFill(vehicle, nil, time.Now())
		case tui.ActionTrip:
			openTripMeter(vehicle, trips)
		}
	},
}

// openTripMeter opens the newest running trip of vehicle
func openTripMeter(vehicle *models.Vehicle, trips []models.Trip) {
	for _, t := range trips {
		if t.VehicleID == vehicle.ID && t.IsActive {
			if err := tui.RunTripMeter(store, t); err != nil {
				printError(err)
			}
			return
		}
	}
	fmt.Printf("No running trip for %s. Start one with 'motofuel trip start <name> --odo N'.\n", vehicle.Name)
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address, overrides the config")
}
