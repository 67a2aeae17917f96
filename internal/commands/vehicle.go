package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/db"
	"github.com/balkashynov/motofuel/internal/models"
)

var vehicleCmd = &cobra.Command{
	Use:     "vehicle",
	Aliases: []string{"vehicles", "v"},
	Short:   "Manage your vehicles",
}

var vehicleAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a vehicle",
	Long: `Add a vehicle to track.

Examples:
  motofuel vehicle add Activa --make Honda --model "Activa 6G" --plate KA01AB1234
  motofuel vehicle add Nexon --fuel diesel`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req, err := vehicleRequestFromFlags(cmd, strings.Join(args, " "))
		if err != nil {
			printError(err)
			return
		}

		vehicle, err := addVehicle(req)
		if err != nil {
			printError(err)
			return
		}

		fmt.Printf("✅ Added vehicle #%d: %s\n", vehicle.ID, vehicle.DisplayName())
		fmt.Printf("  Fuel: %s\n", vehicle.FuelType)
		if vehicle.LicensePlate != "" {
			fmt.Printf("  Plate: %s\n", vehicle.LicensePlate)
		}
	},
}

// addVehicle creates a vehicle, selects it when it is the first one and
// moves onboarding along
func addVehicle(req db.VehicleRequest) (*models.Vehicle, error) {
	vehicle, err := store.CreateVehicle(req)
	if err != nil {
		return nil, err
	}

	if _, ok := prefs.SelectedVehicle(); !ok {
		if err := prefs.SetSelectedVehicle(vehicle.ID); err != nil {
			return nil, err
		}
	}
	if err := prefs.VehicleAdded(); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// vehicleRequestFromFlags builds a request from the add/edit flags
func vehicleRequestFromFlags(cmd *cobra.Command, name string) (db.VehicleRequest, error) {
	req := db.VehicleRequest{Name: name}
	req.Make, _ = cmd.Flags().GetString("make")
	req.Model, _ = cmd.Flags().GetString("model")
	req.LicensePlate, _ = cmd.Flags().GetString("plate")

	if fuel, _ := cmd.Flags().GetString("fuel"); fuel != "" {
		fuelType, err := models.ParseFuelType(fuel)
		if err != nil {
			return req, err
		}
		req.FuelType = fuelType
	}
	if image, _ := cmd.Flags().GetString("image"); image != "" {
		req.ImageURL = &image
	}
	return req, nil
}

var vehicleListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List vehicles",
	Run: func(cmd *cobra.Command, args []string) {
		vehicles, err := store.ListVehicles()
		if err != nil {
			printError(err)
			return
		}

		if len(vehicles) == 0 {
			fmt.Println("No vehicles yet. Use 'motofuel vehicle add <name>' to add your first one.")
			return
		}

		selected, _ := prefs.SelectedVehicle()

		fmt.Printf("  %-4s %-20s %-24s %-9s %s\n", "ID", "NAME", "MAKE/MODEL", "FUEL", "PLATE")
		fmt.Println(strings.Repeat("-", 72))
		for _, v := range vehicles {
			marker := " "
			if v.ID == selected {
				marker = "*"
			}
			details := strings.TrimSpace(v.Make + " " + v.Model)
			fmt.Printf("%s %-4d %-20s %-24s %-9s %s\n", marker, v.ID, truncate(v.Name, 20), truncate(details, 24), v.FuelType, v.LicensePlate)
		}
	},
}

var vehicleEditCmd = &cobra.Command{
	Use:   "edit [vehicle-id]",
	Short: "Edit a vehicle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID("vehicle", args[0])
		if err != nil {
			printError(err)
			return
		}

		vehicle, err := store.GetVehicle(id)
		if err != nil {
			printError(err)
			return
		}

		if err := applyVehicleFlags(cmd, vehicle); err != nil {
			printError(err)
			return
		}
		if err := store.UpdateVehicle(vehicle); err != nil {
			printError(err)
			return
		}

		fmt.Printf("✅ Updated vehicle #%d: %s\n", vehicle.ID, vehicle.DisplayName())
	},
}

// applyVehicleFlags copies only the flags that were set onto v
func applyVehicleFlags(cmd *cobra.Command, v *models.Vehicle) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		v.Name, _ = flags.GetString("name")
	}
	if flags.Changed("make") {
		v.Make, _ = flags.GetString("make")
	}
	if flags.Changed("model") {
		v.Model, _ = flags.GetString("model")
	}
	if flags.Changed("plate") {
		v.LicensePlate, _ = flags.GetString("plate")
	}
	if flags.Changed("fuel") {
		fuel, _ := flags.GetString("fuel")
		fuelType, err := models.ParseFuelType(fuel)
		if err != nil {
			return err
		}
		v.FuelType = fuelType
	}
	if flags.Changed("image") {
		image, _ := flags.GetString("image")
		if image == "" {
			v.ImageURL = nil
		} else {
			v.ImageURL = &image
		}
	}
	return nil
}

var vehicleRemoveCmd = &cobra.Command{
	Use:     "rm [vehicle-id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a vehicle with all its fill-ups and trips",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID("vehicle", args[0])
		if err != nil {
			printError(err)
			return
		}

		if err := removeVehicle(id); err != nil {
			printError(err)
			return
		}
		fmt.Printf("🗑️  Deleted vehicle #%d with its fill-ups and trips\n", id)
	},
}

// removeVehicle deletes a vehicle and clears it from the selection
func removeVehicle(id uint) error {
	if err := store.DeleteVehicle(id); err != nil {
		return err
	}
	if selected, ok := prefs.SelectedVehicle(); ok && selected == id {
		return prefs.SetSelectedVehicle(0)
	}
	return nil
}

var vehicleSelectCmd = &cobra.Command{
	Use:   "select [vehicle-id or name]",
	Short: "Choose the vehicle commands use by default",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vehicle, err := resolveVehicle(args[0])
		if err != nil {
			printError(err)
			return
		}
		if err := prefs.SetSelectedVehicle(vehicle.ID); err != nil {
			printError(err)
			return
		}
		fmt.Printf("🏍️  Selected vehicle #%d: %s\n", vehicle.ID, vehicle.DisplayName())
	},
}

// truncate shortens s to width runes, ending with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func init() {
	for _, c := range []*cobra.Command{vehicleAddCmd, vehicleEditCmd} {
		c.Flags().String("make", "", "Manufacturer, e.g. Honda")
		c.Flags().String("model", "", "Model, e.g. Activa 6G")
		c.Flags().String("plate", "", "License plate")
		c.Flags().String("fuel", "", "Fuel type: petrol, diesel, cng or electric")
		c.Flags().String("image", "", "Image URL")
	}
	vehicleEditCmd.Flags().String("name", "", "New name")

	vehicleCmd.AddCommand(vehicleAddCmd)
	vehicleCmd.AddCommand(vehicleListCmd)
	vehicleCmd.AddCommand(vehicleEditCmd)
	vehicleCmd.AddCommand(vehicleRemoveCmd)
	vehicleCmd.AddCommand(vehicleSelectCmd)
}
