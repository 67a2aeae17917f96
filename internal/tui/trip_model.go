package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/motofuel/internal/models"
)

// TripStore is the part of the store the trip meter writes to
type TripStore interface {
	EndTrip(id uint, odometer float64, now time.Time) (*models.Trip, error)
	ResetTrip(id uint, odometer float64, now time.Time) (*models.Trip, error)
}

// tripAction is the pending odometer prompt on the trip meter
type tripAction int

const (
	tripWatching tripAction = iota
	tripEnding
	tripResetting
)

// TripModel shows a running trip with a live clock
type TripModel struct {
	width  int
	height int

	store TripStore
	trip  models.Trip
	clock func() time.Time

	elapsed   time.Duration
	animation int

	action        tripAction
	odometer      textinput.Model
	validationErr string

	result *models.Trip // ended trip, or the fresh one after a reset
	err    error
	done   bool
}

// tripTickMsg is sent every second to update the clock
type tripTickMsg struct{}

// NewTripModel creates a trip meter for an active trip
func NewTripModel(store TripStore, trip models.Trip, clock func() time.Time) TripModel {
	input := textinput.New()
	input.Placeholder = fmt.Sprintf("Odometer in km (at least %.0f)", trip.StartOdometer)
	input.CharLimit = 12
	input.Width = 30
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return TripModel{
		store:    store,
		trip:     trip,
		clock:    clock,
		elapsed:  clock().Sub(trip.StartDate),
		odometer: input,
	}
}

// Init starts the clock
func (m TripModel) Init() tea.Cmd {
	return tripTick()
}

func tripTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tripTickMsg{}
	})
}

// Update handles messages
func (m TripModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tripTickMsg:
		m.elapsed = m.clock().Sub(m.trip.StartDate)
		m.animation = (m.animation + 1) % 4
		if m.done {
			return m, nil
		}
		return m, tripTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.action != tripWatching {
			return m.handlePromptKeys(msg)
		}
		switch msg.String() {
		case "e", "E":
			m.action = tripEnding
			m.odometer.Focus()
			return m, textinput.Blink
		case "r", "R":
			if m.trip.Type == models.TripNamed {
				m.validationErr = "Only quick trips can be reset"
				return m, nil
			}
			m.action = tripResetting
			m.odometer.Focus()
			return m, textinput.Blink
		case "ctrl+c", "esc", "q":
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handlePromptKeys handles keys while the odometer prompt is open
func (m TripModel) handlePromptKeys(msg tea.KeyMsg) (TripModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.done = true
		return m, tea.Quit
	case "esc":
		m.action = tripWatching
		m.validationErr = ""
		m.odometer.Blur()
		m.odometer.SetValue("")
		return m, nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.odometer, cmd = m.odometer.Update(msg)
	return m, cmd
}

// submit ends or resets the trip at the typed odometer reading
func (m TripModel) submit() (TripModel, tea.Cmd) {
	m.validationErr = ""
	odometer, err := strconv.ParseFloat(strings.TrimSpace(m.odometer.Value()), 64)
	if err != nil || odometer <= 0 {
		m.validationErr = "Enter the odometer reading in km"
		return m, nil
	}
	if odometer < m.trip.StartOdometer {
		m.validationErr = fmt.Sprintf("Odometer can't be below the trip start (%.0f km)", m.trip.StartOdometer)
		return m, nil
	}

	var trip *models.Trip
	if m.action == tripResetting {
		trip, err = m.store.ResetTrip(m.trip.ID, odometer, m.clock())
	} else {
		trip, err = m.store.EndTrip(m.trip.ID, odometer, m.clock())
	}
	if err != nil {
		m.err = err
		m.validationErr = err.Error()
		return m, nil
	}

	m.result = trip
	m.done = true
	return m, tea.Quit
}

// View renders the trip meter
func (m TripModel) View() string {
	if m.done {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width)

	var components []string

	anim := []string{"◐", "◓", "◑", "◒"}[m.animation]
	headerStyle := center.
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	components = append(components, headerStyle.Render(fmt.Sprintf("%s  TRIP RUNNING  %s", anim, anim)))

	nameStyle := center.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)
	components = append(components, nameStyle.Render(fmt.Sprintf("#%d %s", m.trip.ID, m.trip.Name)))

	var clock []string
	for _, line := range strings.Split(renderBigClock(m.elapsed), "\n") {
		clock = append(clock, center.Foreground(lipgloss.Color(ColorAccentMain)).Render(line))
	}
	components = append(components, strings.Join(clock, "\n"))

	infoStyle := center.
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true)
	components = append(components, infoStyle.Render(fmt.Sprintf("Started %s at %.0f km",
		m.trip.StartDate.Format("02/01/2006 15:04"), m.trip.StartOdometer)))

	if m.action != tripWatching {
		label := "🏁 End odometer"
		if m.action == tripResetting {
			label = "🔄 Reset at odometer"
		}
		components = append(components, center.Render(label+"\n"+m.odometer.View()))
	}

	if m.validationErr != "" {
		errorStyle := center.
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)
		components = append(components, errorStyle.Render("❌ "+m.validationErr))
	}

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderHelpBar())
}

// renderHelpBar renders the help bar at the bottom
func (m TripModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	if m.action != tripWatching {
		return helpStyle.Render("enter confirm · esc back")
	}
	if m.trip.Type == models.TripNamed {
		return helpStyle.Render("e end trip · esc/q exit (keep running)")
	}
	return helpStyle.Render("e end trip · r reset · esc/q exit (keep running)")
}

// bigDigits are 5-row glyphs for the clock
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders an elapsed duration as hh:mm:ss in block digits
func renderBigClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	text := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)

	rows := make([]string, 5)
	for _, r := range text {
		glyph := bigDigits[r]
		for i := range rows {
			rows[i] += glyph[i] + " "
		}
	}
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}
	return strings.Join(rows, "\n")
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
