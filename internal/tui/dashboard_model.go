package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/parser"
	"github.com/balkashynov/motofuel/internal/stats"
)

// Action is what the user asked for when leaving the dashboard
type Action int

const (
	ActionNone Action = iota
	ActionAddFillUp
	ActionTrip
)

// DashboardData is everything the dashboard shows. Entries and trips cover
// all vehicles and are filtered per vehicle on screen.
type DashboardData struct {
	Vehicles []models.Vehicle
	Entries  []models.FuelEntry // newest first
	Trips    []models.Trip
	Currency string
	Selected uint // vehicle id to open on, 0 for the first
}

// DashboardModel represents the TUI model for the fuel dashboard
type DashboardModel struct {
	width  int
	height int

	data DashboardData
	now  time.Time

	vehicle       int // index in data.Vehicles
	selectedEntry int // index in the current vehicle's entries

	// Pagination
	currentPage    int
	entriesPerPage int

	shimmer *Shimmer
	action  Action
}

// NewDashboardModel creates a new dashboard TUI model
func NewDashboardModel(data DashboardData, now time.Time) DashboardModel {
	m := DashboardModel{
		data:           data,
		now:            now,
		entriesPerPage: 10,
		shimmer:        NewShimmer(),
	}
	for i, v := range data.Vehicles {
		if v.ID == data.Selected {
			m.vehicle = i
		}
	}
	return m
}

// Init initializes the model
func (m DashboardModel) Init() tea.Cmd {
	return m.shimmer.Tick()
}

// Action returns the action chosen on exit
func (m DashboardModel) Action() Action {
	return m.action
}

// SelectedVehicle returns the vehicle on screen, nil when there are none
func (m DashboardModel) SelectedVehicle() *models.Vehicle {
	if len(m.data.Vehicles) == 0 {
		return nil
	}
	return &m.data.Vehicles[m.vehicle]
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.shimmer.Advance()
		return m, m.shimmer.Tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height minus header, tabs, help bar and borders
		m.entriesPerPage = m.height - 14
		if m.entriesPerPage < 3 {
			m.entriesPerPage = 3
		}
		m.currentPage = m.selectedEntry / m.entriesPerPage
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			return m.switchVehicle(1), nil
		case "shift+tab", "left", "h":
			return m.switchVehicle(-1), nil
		case "up", "k":
			return m.moveSelection(-1), nil
		case "down", "j":
			return m.moveSelection(1), nil
		case "pgup":
			return m.moveSelection(-m.entriesPerPage), nil
		case "pgdown":
			return m.moveSelection(m.entriesPerPage), nil
		case "a":
			if len(m.data.Vehicles) == 0 {
				return m, nil
			}
			m.action = ActionAddFillUp
			return m, tea.Quit
		case "t":
			if len(m.data.Vehicles) == 0 {
				return m, nil
			}
			m.action = ActionTrip
			return m, tea.Quit
		}
	}

	return m, nil
}

// switchVehicle cycles through vehicles, wrapping around
func (m DashboardModel) switchVehicle(delta int) DashboardModel {
	n := len(m.data.Vehicles)
	if n < 2 {
		return m
	}
	m.vehicle = ((m.vehicle+delta)%n + n) % n
	m.selectedEntry = 0
	m.currentPage = 0
	m.shimmer.Reset()
	return m
}

// moveSelection moves the entry cursor, following it across pages
func (m DashboardModel) moveSelection(delta int) DashboardModel {
	entries := m.vehicleEntries()
	if len(entries) == 0 {
		return m
	}
	m.selectedEntry += delta
	if m.selectedEntry < 0 {
		m.selectedEntry = 0
	}
	if m.selectedEntry > len(entries)-1 {
		m.selectedEntry = len(entries) - 1
	}
	m.currentPage = m.selectedEntry / m.entriesPerPage
	return m
}

// vehicleEntries returns the selected vehicle's entries, newest first
func (m DashboardModel) vehicleEntries() []models.FuelEntry {
	v := m.SelectedVehicle()
	if v == nil {
		return nil
	}
	var entries []models.FuelEntry
	for _, e := range m.data.Entries {
		if e.VehicleID == v.ID {
			entries = append(entries, e)
		}
	}
	return entries
}

// activeTrips returns the selected vehicle's running trips
func (m DashboardModel) activeTrips() []models.Trip {
	v := m.SelectedVehicle()
	if v == nil {
		return nil
	}
	var trips []models.Trip
	for _, t := range m.data.Trips {
		if t.VehicleID == v.ID && t.IsActive {
			trips = append(trips, t)
		}
	}
	return trips
}

// View renders the TUI
func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if len(m.data.Vehicles) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Padding(1, 2)
		return emptyStyle.Render("🏍️  No vehicles yet. Add one with 'motofuel vehicle add <name>'.\n\nq to quit")
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderEntryTable(leftWidth),
		" ",
		m.renderStatsPanel(rightWidth),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderVehicleTabs(),
		content,
		"",
		m.renderHelpBar(),
	)
}

// renderVehicleTabs renders one tab per vehicle, the selected one shimmering
func (m DashboardModel) renderVehicleTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDisabledText)).
		Padding(0, 1)
	activeStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1)

	var tabs []string
	for i, v := range m.data.Vehicles {
		if i == m.vehicle {
			tabs = append(tabs, activeStyle.Render("🏍️  "+m.shimmer.Render(v.DisplayName(), 32)))
			continue
		}
		tabs = append(tabs, tabStyle.Render(v.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}

// renderEntryTable renders the left panel with the fill-up table
func (m DashboardModel) renderEntryTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render("⛽ Fill-ups"))
	b.WriteString("\n\n")

	entries := m.vehicleEntries()
	panelStyle := lipgloss.NewStyle().
		Width(width - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)

	if len(entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No fill-ups yet. Press a to add one."))
		return panelStyle.Render(b.String())
	}

	columnHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("%-12s %10s %8s %10s %6s",
		"DATE", "ODOMETER", "LITRES", "COST", "TANK")))
	b.WriteString("\n")

	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	start := m.currentPage * m.entriesPerPage
	end := start + m.entriesPerPage
	if end > len(entries) {
		end = len(entries)
	}
	for i := start; i < end; i++ {
		e := entries[i]
		tank := "full"
		if !e.FullTank {
			tank = "part"
		}
		row := fmt.Sprintf("%-12s %10.0f %8.2f %10s %6s",
			e.Date.Format("02/01/2006"),
			e.Odometer,
			e.FuelAmount,
			fmt.Sprintf("%s%.0f", m.data.Currency, e.Cost()),
			tank)
		if i == m.selectedEntry {
			b.WriteString(selectedStyle.Render("▶ " + row))
		} else {
			b.WriteString(rowStyle.Render("  " + row))
		}
		b.WriteString("\n")
	}

	pages := (len(entries) + m.entriesPerPage - 1) / m.entriesPerPage
	if pages > 1 {
		pageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
		b.WriteString(pageStyle.Render(fmt.Sprintf("\nPage %d/%d", m.currentPage+1, pages)))
	}

	return panelStyle.Render(b.String())
}

// renderStatsPanel renders efficiency stats, insights and running trips
func (m DashboardModel) renderStatsPanel(width int) string {
	var b strings.Builder
	entries := m.vehicleEntries()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)

	b.WriteString(titleStyle.Render("📊 Stats"))
	b.WriteString("\n\n")

	s, ok := stats.Compute(entries)
	if !ok {
		b.WriteString(labelStyle.Render("No data"))
	} else {
		line := func(label, value string) {
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", label)))
			b.WriteString(valueStyle.Render(value))
			b.WriteString("\n")
		}
		line("Average", fmt.Sprintf("%.1f km/L", s.AvgEfficiency))
		line("Best", fmt.Sprintf("%.1f km/L", s.BestEfficiency))
		line("Worst", fmt.Sprintf("%.1f km/L", s.WorstEfficiency))
		line("Distance", fmt.Sprintf("%.0f km", s.TotalDistance))
		line("Fuel", fmt.Sprintf("%.2f L", s.TotalFuel))
		line("Spent", fmt.Sprintf("%s%.2f", m.data.Currency, s.TotalCost))
		line("Cost per km", fmt.Sprintf("%s%.2f", m.data.Currency, s.CostPerKm))
		line("Odometer", fmt.Sprintf("%.0f km", s.LastOdometer))
		if len(entries) > 0 {
			line("Last fill-up", parser.FormatDate(entries[0].Date, m.now))
		}
	}

	insights := stats.InsightsIn(m.data.Currency, entries, m.now)
	if len(insights) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("💡 Insights"))
		b.WriteString("\n\n")
		for _, in := range insights {
			b.WriteString(insightStyle(in.Category).Render(in.Symbol + " " + in.Message))
			b.WriteString("\n")
		}
	}

	if trips := m.activeTrips(); len(trips) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("🧭 Running trips"))
		b.WriteString("\n\n")
		for _, t := range trips {
			b.WriteString(fmt.Sprintf("#%d %s from %.0f km (%s)\n",
				t.ID, t.Name, t.StartOdometer, formatDuration(m.now.Sub(t.StartDate))))
		}
	}

	panelStyle := lipgloss.NewStyle().
		Width(width - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1)
	return panelStyle.Render(b.String())
}

// insightStyle colors an insight by its category
func insightStyle(category stats.Category) lipgloss.Style {
	switch category {
	case stats.CategoryPositive:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	case stats.CategoryWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorInfo))
	}
}

// renderHelpBar renders the key help at the bottom
func (m DashboardModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	return helpStyle.Render("tab/←→ vehicle · ↑↓ entries · a add fill-up · t trip meter · q quit")
}
