package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// shimmerTickMsg is sent when the shimmer should advance
type shimmerTickMsg struct{}

// Shimmer sweeps a highlight across a short piece of text, such as the
// selected vehicle name on the dashboard
type Shimmer struct {
	Interval time.Duration
	Cycle    int // ticks per sweep
	Pause    int // ticks to hold between sweeps

	tick      int
	active    bool
	trueColor bool
}

// NewShimmer returns an active shimmer. NO_COLOR turns it into a static highlight.
func NewShimmer() *Shimmer {
	return &Shimmer{
		Interval:  100 * time.Millisecond,
		Cycle:     18,
		Pause:     5,
		active:    os.Getenv("NO_COLOR") == "",
		trueColor: os.Getenv("COLORTERM") == "truecolor",
	}
}

// Tick returns the command that schedules the next frame, nil when inactive
func (s *Shimmer) Tick() tea.Cmd {
	if !s.active {
		return nil
	}
	return tea.Tick(s.Interval, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// Advance moves the highlight one frame forward
func (s *Shimmer) Advance() {
	s.tick = (s.tick + 1) % (s.Cycle + s.Pause)
}

// Reset restarts the sweep (call when the selection changes)
func (s *Shimmer) Reset() {
	s.tick = 0
}

// SetActive enables or disables the animation
func (s *Shimmer) SetActive(active bool) {
	s.active = active && os.Getenv("NO_COLOR") == ""
}

// center is the highlight position in runes, past the end while paused
func (s *Shimmer) center(length int) float64 {
	if s.tick >= s.Cycle {
		return float64(length) * 2
	}
	span := float64(length) * 1.5
	return -float64(length)*0.25 + span*float64(s.tick)/float64(s.Cycle)
}

// Render draws text with the highlight at the current frame
func (s *Shimmer) Render(text string, maxWidth int) string {
	runes := []rune(text)
	if maxWidth > 3 && len(runes) > maxWidth {
		runes = append(runes[:maxWidth-3], []rune("...")...)
	}
	if len(runes) == 0 {
		return ""
	}
	if !s.active {
		return fmt.Sprintf("\033[38;2;251;146;60m%s\033[0m", string(runes)) // ColorAccentBright
	}

	center := s.center(len(runes))
	sigma := math.Max(1, float64(len(runes))/8)

	var b strings.Builder
	for i, r := range runes {
		dx := float64(i) - center
		weight := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		if s.trueColor {
			// Blend #B8B2A7 towards #FFEDD5
			red := int(184 + (255-184)*weight)
			green := int(178 + (237-178)*weight)
			blue := int(167 + (213-167)*weight)
			fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c", red, green, blue, r)
			continue
		}
		if weight > 0.5 {
			fmt.Fprintf(&b, "\033[38;5;216m%c", r)
		} else {
			fmt.Fprintf(&b, "\033[38;5;250m%c", r)
		}
	}
	b.WriteString("\033[0m")
	return b.String()
}
