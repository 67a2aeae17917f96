package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/motofuel/internal/db"
	"github.com/balkashynov/motofuel/internal/models"
)

type fakeTripStore struct {
	ended    []float64
	reset    []float64
	endError error
}

func (s *fakeTripStore) EndTrip(id uint, odometer float64, now time.Time) (*models.Trip, error) {
	if s.endError != nil {
		return nil, s.endError
	}
	s.ended = append(s.ended, odometer)
	return &models.Trip{ID: id, Name: "Goa run", StartOdometer: 1000, EndOdometer: &odometer, EndDate: &now}, nil
}

func (s *fakeTripStore) ResetTrip(id uint, odometer float64, now time.Time) (*models.Trip, error) {
	s.reset = append(s.reset, odometer)
	return &models.Trip{ID: id + 1, Name: "Trip A", Type: models.TripQuickA, StartOdometer: odometer, StartDate: now, IsActive: true}, nil
}

func runningTrip(tripType models.TripType) models.Trip {
	return models.Trip{
		ID:            4,
		VehicleID:     1,
		Name:          "Goa run",
		Type:          tripType,
		StartOdometer: 1000,
		StartDate:     tuiNow.Add(-90 * time.Minute),
		IsActive:      true,
	}
}

func fixedClock() time.Time {
	return tuiNow
}

// press feeds messages to a trip meter in order
func press(m TripModel, msgs ...tea.Msg) (TripModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(TripModel)
	}
	return m, cmd
}

func TestTripMeter_EndTrip(t *testing.T) {
	store := &fakeTripStore{}
	m := NewTripModel(store, runningTrip(models.TripNamed), fixedClock)

	m, cmd := press(m, keyRunes("e"), keyRunes("1450"), key(tea.KeyEnter))

	if len(store.ended) != 1 || store.ended[0] != 1450 {
		t.Fatalf("EndTrip calls = %v, want [1450]", store.ended)
	}
	if m.result == nil || m.result.IsActive {
		t.Errorf("result = %+v, want an ended trip", m.result)
	}
	if cmd == nil {
		t.Error("expected quit command after ending the trip")
	}
}

func TestTripMeter_ResetQuickTrip(t *testing.T) {
	store := &fakeTripStore{}
	m := NewTripModel(store, runningTrip(models.TripQuickA), fixedClock)

	m, _ = press(m, keyRunes("r"), keyRunes("1200"), key(tea.KeyEnter))

	if len(store.reset) != 1 || store.reset[0] != 1200 {
		t.Fatalf("ResetTrip calls = %v, want [1200]", store.reset)
	}
	if m.result == nil || !m.result.IsActive || m.result.StartOdometer != 1200 {
		t.Errorf("result = %+v, want a fresh trip from 1200", m.result)
	}
}

func TestTripMeter_Validation(t *testing.T) {
	tests := []struct {
		name     string
		tripType models.TripType
		msgs     []tea.Msg
		wantErr  string
	}{
		{
			name:     "named trips can't be reset",
			tripType: models.TripNamed,
			msgs:     []tea.Msg{keyRunes("r")},
			wantErr:  "Only quick trips can be reset",
		},
		{
			name:     "not a number",
			tripType: models.TripNamed,
			msgs:     []tea.Msg{keyRunes("e"), keyRunes("abc"), key(tea.KeyEnter)},
			wantErr:  "Enter the odometer reading",
		},
		{
			name:     "below start",
			tripType: models.TripQuickB,
			msgs:     []tea.Msg{keyRunes("e"), keyRunes("900"), key(tea.KeyEnter)},
			wantErr:  "below the trip start (1000 km)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeTripStore{}
			m, _ := press(NewTripModel(store, runningTrip(tt.tripType), fixedClock), tt.msgs...)

			if !strings.Contains(m.validationErr, tt.wantErr) {
				t.Errorf("validationErr = %q, want it to contain %q", m.validationErr, tt.wantErr)
			}
			if len(store.ended)+len(store.reset) != 0 {
				t.Error("store was called for invalid input")
			}
		})
	}
}

func TestTripMeter_StoreError(t *testing.T) {
	store := &fakeTripStore{endError: db.ErrTripEnded}
	m, _ := press(NewTripModel(store, runningTrip(models.TripNamed), fixedClock),
		keyRunes("e"), keyRunes("1100"), key(tea.KeyEnter))

	if m.result != nil {
		t.Errorf("result = %+v, want nil", m.result)
	}
	if m.err != db.ErrTripEnded {
		t.Errorf("err = %v, want %v", m.err, db.ErrTripEnded)
	}
}

func TestTripMeter_EscLeavesPromptThenExits(t *testing.T) {
	m := NewTripModel(&fakeTripStore{}, runningTrip(models.TripNamed), fixedClock)

	m, _ = press(m, keyRunes("e"), key(tea.KeyEsc))
	if m.action != tripWatching || m.done {
		t.Errorf("action = %v, done = %v; want back to watching", m.action, m.done)
	}

	m, cmd := press(m, key(tea.KeyEsc))
	if !m.done || cmd == nil {
		t.Error("second esc should exit the trip meter")
	}
	if m.result != nil {
		t.Errorf("result = %+v, want nil when leaving the trip running", m.result)
	}
}

func TestTripMeter_Tick(t *testing.T) {
	now := tuiNow
	m := NewTripModel(&fakeTripStore{}, runningTrip(models.TripNamed), func() time.Time { return now })

	now = now.Add(30 * time.Second)
	m, cmd := press(m, tripTickMsg{})

	if m.elapsed != 90*time.Minute+30*time.Second {
		t.Errorf("elapsed = %v, want %v", m.elapsed, 90*time.Minute+30*time.Second)
	}
	if cmd == nil {
		t.Error("expected the clock to keep ticking")
	}
}

func TestRenderBigClock(t *testing.T) {
	clock := renderBigClock(time.Hour + 2*time.Minute + 3*time.Second)
	rows := strings.Split(clock, "\n")
	if len(rows) != 5 {
		t.Fatalf("renderBigClock() has %d rows, want 5", len(rows))
	}
	// 8 glyphs of width 5 with single spaces between
	if got := len([]rune(rows[4])); got > 8*5+7 {
		t.Errorf("row width = %d, want at most %d", got, 8*5+7)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{5 * time.Minute, "5m"},
		{90 * time.Minute, "1.5h"},
		{50 * time.Hour, "2d"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
