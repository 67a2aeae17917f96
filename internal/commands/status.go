package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/config"
	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/reminder"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show setup progress, running trips and due reminders",
	Run: func(cmd *cobra.Command, args []string) {
		now := time.Now()

		if hint := onboardingHint(prefs.OnboardingStep()); hint != "" {
			fmt.Printf("👋 Getting started: %s\n", hint)
		}

		vehicles, err := store.ListVehicles()
		if err != nil {
			printError(err)
			return
		}
		if id, ok := prefs.SelectedVehicle(); ok {
			for _, v := range vehicles {
				if v.ID == id {
					fmt.Printf("🏍️  Selected vehicle: %s\n", v.DisplayName())
				}
			}
		}

		trips, err := store.ListTrips(nil)
		if err != nil {
			printError(err)
			return
		}
		for _, t := range trips {
			if t.IsActive {
				fmt.Printf("🧭 Running: #%d %s from %.0f km, %s ago\n", t.ID, t.Name, t.StartOdometer, formatDuration(now.Sub(t.StartDate)))
			}
		}

		if prices := prefs.Prices(); len(prices) > 0 {
			var parts []string
			for _, ft := range models.FuelTypes {
				if _, ok := prices[ft]; !ok {
					continue
				}
				parts = append(parts, fmt.Sprintf("%s %s%.2f", strings.ToLower(string(ft)), cfg.Currency, prices[ft]))
			}
			fmt.Printf("⛽ Prices: %s\n", strings.Join(parts, ", "))
		}

		if !prefs.NotificationsEnabled() {
			return
		}
		due, err := dueReminders(now)
		if err != nil {
			printError(err)
			return
		}
		for _, r := range due {
			fmt.Printf("🔔 %s\n   %s\n", r.Title, r.Message)
		}
	},
}

// onboardingHint is the next thing a new user should do, empty when done
func onboardingHint(step int) string {
	switch step {
	case config.StepSetPrice:
		return "set your fuel price with 'motofuel price set 1.85'"
	case config.StepAddVehicle:
		return "add a vehicle with 'motofuel vehicle add <name>'"
	case config.StepAddEntry:
		return "log your first fill-up with 'motofuel fill 12450km 8.5l'"
	}
	return ""
}

// dueReminders checks the reminders against the newest fill-up and the last
// price change
func dueReminders(now time.Time) ([]reminder.Reminder, error) {
	entries, err := store.ListEntries(nil)
	if err != nil {
		return nil, err
	}

	var lastEntry, priceUpdatedAt *time.Time
	if len(entries) > 0 {
		lastEntry = &entries[0].Date
	}
	if t, ok := prefs.PriceUpdatedAt(); ok {
		priceUpdatedAt = &t
	}
	return reminder.Due(now, lastEntry, priceUpdatedAt), nil
}

var notifyCmd = &cobra.Command{
	Use:       "notify [on | off]",
	Short:     "Turn fill-up and price reminders on or off",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			if prefs.NotificationsEnabled() {
				fmt.Println("🔔 Reminders are on")
			} else {
				fmt.Println("🔕 Reminders are off")
			}
			return
		}

		var enabled bool
		switch strings.ToLower(args[0]) {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			printError(fmt.Errorf("invalid value '%s'. Use: on or off", args[0]))
			return
		}

		if err := prefs.SetNotifications(enabled); err != nil {
			printError(err)
			return
		}
		if enabled {
			fmt.Println("🔔 Reminders turned on. They show up in 'motofuel status'.")
		} else {
			fmt.Println("🔕 Reminders turned off")
		}
	},
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{"skipApp": "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("motofuel %s (commit %s, built %s)\n", version, commit, date)
	},
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 24 {
		return fmt.Sprintf("%.0fd", d.Hours()/24)
	} else if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}
