package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/motofuel/internal/db"
	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/parser"
	"github.com/balkashynov/motofuel/internal/stats"
)

// FillUpStore is the part of the store the fill-up form writes to
type FillUpStore interface {
	AddEntry(req db.AddEntryRequest, price float64) (*models.FuelEntry, error)
}

// Step represents the current step in the wizard
type Step int

const (
	StepOdometer Step = iota
	StepFuel
	StepTank
	StepDate
	StepSave
)

var stepLabels = []string{"Odometer", "Fuel", "Tank", "Date", "Save"}

// AddFillUpModel represents the TUI model for logging a fill-up
type AddFillUpModel struct {
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	store        FillUpStore
	vehicle      models.Vehicle
	fuelType     models.FuelType // empty means the vehicle's
	lastOdometer *float64
	price        float64
	currency     string
	now          time.Time

	// State
	err           error
	completed     bool
	cancelled     bool
	validationErr string
	entry         *models.FuelEntry

	// Save confirmation modal
	showSaveModal   bool
	saveModalChoice bool // true for Yes, false for No
}

// FillUpOptions holds what the form needs besides the store
type FillUpOptions struct {
	Vehicle      models.Vehicle
	LastOdometer *float64 // nil when the vehicle has no entries yet
	Price        float64  // current price per litre for the vehicle's fuel
	Currency     string
	Now          time.Time
	Prefilled    *parser.ParsedFillUp
}

// NewAddFillUpModel creates a new fill-up form
func NewAddFillUpModel(store FillUpStore, opts FillUpOptions) AddFillUpModel {
	inputs := make([]textinput.Model, 4)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	if opts.LastOdometer != nil {
		inputs[StepOdometer].Placeholder = fmt.Sprintf("Odometer in km (last: %.0f)", *opts.LastOdometer)
	} else {
		inputs[StepOdometer].Placeholder = "Odometer in km (required)"
	}
	inputs[StepOdometer].CharLimit = 12
	inputs[StepOdometer].Focus()

	inputs[StepFuel].Placeholder = "Litres filled (required)"
	inputs[StepFuel].CharLimit = 8

	inputs[StepTank].Placeholder = "full/partial (Enter for full)"
	inputs[StepTank].CharLimit = 7

	inputs[StepDate].Placeholder = "today, yesterday, 3 days ago or dd/mm/yyyy (Enter for today)"
	inputs[StepDate].CharLimit = 20

	m := AddFillUpModel{
		currentStep:  StepOdometer,
		inputs:       inputs,
		store:        store,
		vehicle:      opts.Vehicle,
		lastOdometer: opts.LastOdometer,
		price:        opts.Price,
		currency:     opts.Currency,
		now:          opts.Now,
	}

	if p := opts.Prefilled; p != nil {
		if p.Odometer != nil {
			m.inputs[StepOdometer].SetValue(strconv.FormatFloat(*p.Odometer, 'f', -1, 64))
		}
		if p.FuelAmount != nil {
			m.inputs[StepFuel].SetValue(strconv.FormatFloat(*p.FuelAmount, 'f', -1, 64))
		}
		if !p.FullTank {
			m.inputs[StepTank].SetValue("partial")
		}
		if p.Date != nil {
			m.inputs[StepDate].SetValue(p.Date.Format("02/01/2006"))
		}
		m.fuelType = p.FuelType
	}

	return m
}

// Init initializes the model
func (m AddFillUpModel) Init() tea.Cmd {
	return textinput.Blink
}

// Entry returns the saved fill-up, nil until saved
func (m AddFillUpModel) Entry() *models.FuelEntry {
	return m.entry
}

// Cancelled reports whether the form was left without saving
func (m AddFillUpModel) Cancelled() bool {
	return m.cancelled
}

// Update handles messages
func (m AddFillUpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputWidth := (m.width * 2 / 3) - 10
		if inputWidth < 30 {
			inputWidth = 30
		}
		if inputWidth > 70 {
			inputWidth = 70
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		if m.showSaveModal {
			switch msg.String() {
			case "left", "right":
				m.saveModalChoice = !m.saveModalChoice
				return m, nil
			case "y", "Y":
				m.saveModalChoice = true
				return m.handleSaveChoice()
			case "n", "N":
				m.saveModalChoice = false
				return m.handleSaveChoice()
			case "enter":
				return m.handleSaveChoice()
			case "esc":
				m.showSaveModal = false
				return m, nil
			case "ctrl+c":
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.currentStep == StepSave {
				return m.prevStep()
			}
			if !m.hasChanges() {
				m.cancelled = true
				return m, tea.Quit
			}
			m.showSaveModal = true
			m.saveModalChoice = true
			return m, nil

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			if err := m.validateStep(m.currentStep); err != "" {
				m.validationErr = err
				return m, nil
			}
			return m.nextStep()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

// value returns the trimmed text of a step's input
func (m AddFillUpModel) value(step Step) string {
	return strings.TrimSpace(m.inputs[step].Value())
}

// number parses a step's input, false when empty or not a number
func (m AddFillUpModel) number(step Step) (float64, bool) {
	v, err := strconv.ParseFloat(m.value(step), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// fullTank reads the tank step, defaulting to a full tank
func (m AddFillUpModel) fullTank() bool {
	return !strings.HasPrefix(strings.ToLower(m.value(StepTank)), "p")
}

// date parses the date step, today when empty
func (m AddFillUpModel) date() (time.Time, error) {
	if m.value(StepDate) == "" {
		return m.now, nil
	}
	return parser.ParseDate(m.value(StepDate), m.now)
}

// validateStep returns a message when the step's input can't be accepted
func (m AddFillUpModel) validateStep(step Step) string {
	switch step {
	case StepOdometer:
		odometer, ok := m.number(StepOdometer)
		if !ok || odometer <= 0 {
			return "Odometer is required and must be greater than 0"
		}
		if m.lastOdometer != nil && odometer <= *m.lastOdometer {
			return fmt.Sprintf("Odometer must be greater than the last reading (%.0f km)", *m.lastOdometer)
		}
	case StepFuel:
		fuel, ok := m.number(StepFuel)
		if !ok || fuel <= 0 {
			return "Fuel amount is required and must be greater than 0"
		}
	case StepTank:
		switch strings.ToLower(m.value(StepTank)) {
		case "", "full", "f", "partial", "p":
		default:
			return "Tank must be full or partial"
		}
	case StepDate:
		if _, err := m.date(); err != nil {
			return "Invalid date: " + err.Error()
		}
	}
	return ""
}

// hasChanges checks if anything was typed
func (m AddFillUpModel) hasChanges() bool {
	for i := range m.inputs {
		if m.value(Step(i)) != "" {
			return true
		}
	}
	return false
}

// handleEnter processes the Enter key
func (m AddFillUpModel) handleEnter() (AddFillUpModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep == StepSave {
		return m.saveEntry()
	}
	if err := m.validateStep(m.currentStep); err != "" {
		m.validationErr = err
		return m, nil
	}
	return m.nextStep()
}

// nextStep moves to the next step
func (m AddFillUpModel) nextStep() (AddFillUpModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

// prevStep moves to the previous step
func (m AddFillUpModel) prevStep() (AddFillUpModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep > StepOdometer {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

// saveEntry validates every step and stores the fill-up
func (m AddFillUpModel) saveEntry() (AddFillUpModel, tea.Cmd) {
	for step := StepOdometer; step < StepSave; step++ {
		if err := m.validateStep(step); err != "" {
			m.validationErr = err
			m.inputs[m.currentStep].Blur()
			m.currentStep = step
			m.inputs[step].Focus()
			return m, nil
		}
	}

	odometer, _ := m.number(StepOdometer)
	fuel, _ := m.number(StepFuel)
	date, _ := m.date()

	entry, err := m.store.AddEntry(db.AddEntryRequest{
		VehicleID:  m.vehicle.ID,
		Odometer:   odometer,
		FuelAmount: fuel,
		FullTank:   m.fullTank(),
		FuelType:   m.fuelType,
		Date:       &date,
	}, m.price)
	if err != nil {
		m.err = err
		m.validationErr = err.Error()
		return m, nil
	}

	m.entry = entry
	m.completed = true
	return m, tea.Quit
}

// handleSaveChoice handles the save confirmation modal response
func (m AddFillUpModel) handleSaveChoice() (AddFillUpModel, tea.Cmd) {
	m.showSaveModal = false
	if m.saveModalChoice {
		return m.saveEntry()
	}
	m.cancelled = true
	return m, tea.Quit
}

// View renders the TUI
func (m AddFillUpModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	if m.width < 85 {
		style := lipgloss.NewStyle().
			Width(m.width - 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(1)
		return style.Render(m.renderWizard() + "\n" + m.renderSmallPreview())
	}

	rightWidth := 48
	leftWidth := m.width - rightWidth - 4

	leftStyle := lipgloss.NewStyle().
		Width(leftWidth).
		Height(m.height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)
	rightStyle := lipgloss.NewStyle().
		Width(rightWidth).
		Height(m.height - 2).
		Padding(1)

	mainView := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.renderWizard()),
		" ",
		rightStyle.Render(m.renderPreview()),
	)

	if m.showSaveModal {
		return m.renderSaveModal()
	}
	return mainView
}

// renderWizard renders the step list and the current input
func (m AddFillUpModel) renderWizard() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(titleStyle.Render("⛽ New fill-up for " + m.vehicle.Name))
	b.WriteString("\n\n")

	currentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	futureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	for i, label := range stepLabels {
		step := Step(i)
		if step == StepSave {
			b.WriteString("\n")
			label = "💾 " + label
		}
		switch {
		case step == m.currentStep:
			b.WriteString(currentStyle.Render("▶ " + label))
		case step < m.currentStep:
			b.WriteString(doneStyle.Render("✓ " + label))
		default:
			b.WriteString(futureStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.currentStep {
	case StepOdometer:
		b.WriteString("📍 Odometer (km)\n")
	case StepFuel:
		b.WriteString("⛽ Fuel (litres)\n")
	case StepTank:
		b.WriteString("🛢️  Full tank?\n")
	case StepDate:
		b.WriteString("📅 Date\n")
	case StepSave:
		b.WriteString("💾 Save fill-up\n")
		b.WriteString("Press Enter to save")
	}
	if m.currentStep < StepSave {
		b.WriteString(m.inputs[m.currentStep].View())
	}

	if m.validationErr != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true).
			MarginTop(1)
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("❌ " + m.validationErr))
	}

	b.WriteString("\n\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString(helpStyle.Render("Enter: Next | Tab/↓: Next | Shift+Tab/↑: Back | Esc: Cancel"))

	return b.String()
}

// estimate previews the fill-up from what has been typed so far
func (m AddFillUpModel) estimate() stats.Estimate {
	odometer, _ := m.number(StepOdometer)
	fuel, _ := m.number(StepFuel)
	return stats.EstimateFill(m.lastOdometer, odometer, fuel, m.price)
}

// previewLines are the card lines shared by both layouts
func (m AddFillUpModel) previewLines() []string {
	var lines []string
	if v := m.value(StepOdometer); v != "" {
		lines = append(lines, fmt.Sprintf("📍 Odometer: %s km", v))
	}
	if v := m.value(StepFuel); v != "" {
		lines = append(lines, fmt.Sprintf("⛽ Fuel: %s L", v))
	}
	if m.fullTank() {
		lines = append(lines, "🛢️  Full tank")
	} else {
		lines = append(lines, "🛢️  Partial fill")
	}
	if date, err := m.date(); err == nil {
		lines = append(lines, "📅 "+parser.FormatDate(date, m.now))
	}
	if m.price > 0 {
		lines = append(lines, fmt.Sprintf("🏷️  Price: %s%.2f/L", m.currency, m.price))
	} else {
		lines = append(lines, "🏷️  No price set (motofuel price set)")
	}

	est := m.estimate()
	if est.DistanceSinceLast != nil {
		lines = append(lines, fmt.Sprintf("🛣️  Since last: %.0f km", *est.DistanceSinceLast))
	}
	if est.Efficiency != nil {
		lines = append(lines, fmt.Sprintf("📈 Est. efficiency: %.1f km/L", *est.Efficiency))
	}
	if est.Cost != nil {
		lines = append(lines, fmt.Sprintf("💰 Cost: %s%.2f", m.currency, *est.Cost))
	}
	return lines
}

// renderPreview renders the live fill-up card
func (m AddFillUpModel) renderPreview() string {
	var card strings.Builder

	headerStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Center).
		Width(38)
	card.WriteString(headerStyle.Render("🏍️  " + m.vehicle.DisplayName()))
	card.WriteString("\n")

	separatorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
	card.WriteString(separatorStyle.Render(strings.Repeat("─", 38)))
	card.WriteString("\n")

	metadataStyle := lipgloss.NewStyle().Padding(0, 1)
	card.WriteString(metadataStyle.Render(strings.Join(m.previewLines(), "\n")))

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(42).
		Padding(1)
	return cardStyle.Render(card.String())
}

// renderSmallPreview renders a compact preview for small terminals
func (m AddFillUpModel) renderSmallPreview() string {
	var b strings.Builder
	b.WriteString("═══ PREVIEW ═══\n")
	b.WriteString("💡 Tip: Stretch terminal for better UI\n")
	for _, line := range m.previewLines() {
		b.WriteString(line + "\n")
	}
	b.WriteString("═══════════════\n")
	return b.String()
}

// renderSaveModal renders the save confirmation modal
func (m AddFillUpModel) renderSaveModal() string {
	var content strings.Builder
	content.WriteString("Save this fill-up?\n\n")

	yesStyle := lipgloss.NewStyle().Padding(0, 2)
	noStyle := lipgloss.NewStyle().Padding(0, 2)
	if m.saveModalChoice {
		yesStyle = yesStyle.
			Background(lipgloss.Color(ColorAccentBright)).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)
	} else {
		noStyle = noStyle.
			Background(lipgloss.Color(ColorError)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)
	}

	content.WriteString(lipgloss.JoinHorizontal(
		lipgloss.Center,
		yesStyle.Render("Yes"),
		"   ",
		noStyle.Render("No"),
	))
	content.WriteString("\n\n")
	content.WriteString("← → or Y/N to choose, Enter to confirm\nEsc to cancel")

	modalStyle := lipgloss.NewStyle().
		Width(50).
		Height(7).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentBright)).
		Background(lipgloss.Color(ColorCardBackground)).
		Padding(1).
		Align(lipgloss.Center)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		modalStyle.Render(content.String()),
	)
}
