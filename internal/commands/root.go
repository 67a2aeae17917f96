package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/config"
	"github.com/balkashynov/motofuel/internal/db"
	"github.com/balkashynov/motofuel/internal/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Shared by every command once initApp has run
var (
	cfg   *config.Config
	store *db.Store
	prefs *config.Preferences
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "motofuel",
	Short: "A CLI fuel expense and mileage tracker",
	Long: `motofuel keeps a log of your vehicles' fill-ups and trips.
Track fuel efficiency, spending and price changes, and back everything up from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["skipApp"] == "true" {
			return nil
		}
		return initApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeApp()
	},
}

// initApp loads the config, opens the store and the preferences file
func initApp() error {
	if store != nil {
		return nil
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	s, err := db.Open(c.Database)
	if err != nil {
		return err
	}
	p, err := config.OpenPreferences(c.PrefsPath())
	if err != nil {
		s.Close()
		return err
	}

	cfg, store, prefs = c, s, p
	return nil
}

func closeApp() {
	if store != nil {
		store.Close()
		store = nil
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// printError reports a failed command the way every command does
func printError(err error) {
	fmt.Printf("❌ Error: %v\n", err)
}

// parseID parses a positive numeric id argument
func parseID(kind, arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s ID '%s'", kind, arg)
	}
	return uint(id), nil
}

// resolveVehicle finds a vehicle by id or case-insensitive name. An empty
// ref means the selected vehicle, or the first one when none is selected.
func resolveVehicle(ref string) (*models.Vehicle, error) {
	ref = strings.TrimSpace(ref)

	if ref == "" {
		if id, ok := prefs.SelectedVehicle(); ok {
			v, err := store.GetVehicle(id)
			if err == nil {
				return v, nil
			}
			if !errors.Is(err, db.ErrNotFound) {
				return nil, err
			}
		}
	}

	vehicles, err := store.ListVehicles()
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return nil, errors.New("no vehicles yet. Add one with 'motofuel vehicle add <name>'")
	}
	if ref == "" {
		return &vehicles[0], nil
	}

	if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
		for i := range vehicles {
			if vehicles[i].ID == uint(id) {
				return &vehicles[i], nil
			}
		}
	}
	for i := range vehicles {
		if strings.EqualFold(vehicles[i].Name, ref) {
			return &vehicles[i], nil
		}
	}
	return nil, fmt.Errorf("vehicle '%s' %w", ref, db.ErrNotFound)
}

// vehicleFlag resolves the --vehicle flag of cmd
func vehicleFlag(cmd *cobra.Command) (*models.Vehicle, error) {
	ref, _ := cmd.Flags().GetString("vehicle")
	return resolveVehicle(ref)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/motofuel/motofuel.yaml)")

	rootCmd.AddCommand(vehicleCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(tripCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(helpCmd)
}
