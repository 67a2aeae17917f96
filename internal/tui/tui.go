package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/motofuel/internal/models"
)

// RunDashboard starts the dashboard and returns what the user asked for on
// exit, along with the vehicle that was on screen
func RunDashboard(data DashboardData) (Action, *models.Vehicle, error) {
	p := tea.NewProgram(NewDashboardModel(data, time.Now()), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return ActionNone, nil, err
	}

	m, ok := finalModel.(DashboardModel)
	if !ok {
		return ActionNone, nil, nil
	}
	return m.Action(), m.SelectedVehicle(), nil
}

// RunAddFillUp starts the interactive fill-up form. It returns the saved
// entry, nil when cancelled.
func RunAddFillUp(store FillUpStore, opts FillUpOptions) (*models.FuelEntry, error) {
	p := tea.NewProgram(NewAddFillUpModel(store, opts), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	if m, ok := finalModel.(AddFillUpModel); ok {
		if m.cancelled {
			fmt.Println("❌ Fill-up cancelled.")
		} else if m.completed && m.entry != nil {
			fmt.Printf("✅ Fill-up #%d saved: %.2f L at %.0f km\n", m.entry.ID, m.entry.FuelAmount, m.entry.Odometer)
			return m.entry, nil
		} else if m.err != nil {
			fmt.Printf("❌ Error: %v\n", m.err)
		}
	}
	return nil, nil
}

// RunTripMeter shows a running trip until the user ends, resets or leaves it
func RunTripMeter(store TripStore, trip models.Trip) error {
	p := tea.NewProgram(NewTripModel(store, trip, time.Now), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(TripModel)
	if !ok {
		return nil
	}
	switch {
	case m.result != nil && m.result.IsActive:
		fmt.Printf("🔄 %s reset. New trip #%d started at %.0f km\n", trip.Name, m.result.ID, m.result.StartOdometer)
	case m.result != nil:
		distance, _ := m.result.Distance()
		fmt.Printf("🏁 Trip #%d \"%s\" ended: %.0f km\n", m.result.ID, m.result.Name, distance)
	default:
		fmt.Printf("💡 Trip #%d \"%s\" is still running. Use 'motofuel trip end %d --odo N' to end it.\n", trip.ID, trip.Name, trip.ID)
	}
	return nil
}
