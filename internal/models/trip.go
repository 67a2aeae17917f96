package models

import (
	"fmt"
	"strings"
	"time"
)

// TripType distinguishes named trips from the two quick trip meters
type TripType string

const (
	TripNamed  TripType = "NAMED"
	TripQuickA TripType = "QUICK_A"
	TripQuickB TripType = "QUICK_B"
)

// ParseQuickTrip maps "a"/"b" (or the raw type) to a quick trip type
func ParseQuickTrip(s string) (TripType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", string(TripQuickA):
		return TripQuickA, nil
	case "B", string(TripQuickB):
		return TripQuickB, nil
	default:
		return "", fmt.Errorf("invalid quick trip %q. Use: a or b", s)
	}
}

// QuickTripName is the fixed label of a quick trip meter
func QuickTripName(t TripType) string {
	if t == TripQuickB {
		return "Trip B"
	}
	return "Trip A"
}

// Trip is a distance measured between a start and an end odometer reading
type Trip struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	VehicleID     uint       `gorm:"index;not null" json:"vehicle_id"`
	Name          string     `gorm:"not null" json:"name"`
	Type          TripType   `gorm:"size:16;not null" json:"type"`
	StartOdometer float64    `gorm:"not null" json:"start_odometer"`
	EndOdometer   *float64   `json:"end_odometer"`
	StartDate     time.Time  `gorm:"not null" json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Notes         string     `json:"notes"`
	IsActive      bool       `gorm:"index;not null" json:"is_active"`
}

// Distance returns the covered distance once the trip has ended
func (t Trip) Distance() (float64, bool) {
	if t.EndOdometer == nil {
		return 0, false
	}
	return *t.EndOdometer - t.StartOdometer, true
}
