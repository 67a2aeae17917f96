package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

// Version is the only snapshot format version this build reads and writes
const Version = 1

var ErrInvalidSnapshot = errors.New("invalid backup file")

// requiredFields must all be present at the top level of a snapshot
var requiredFields = []string{"version", "petrolPrice", "vehicles", "fuelEntries", "trips"}

// Snapshot is the portable backup document. Ids are those of the exporting
// database and only serve to link entries and trips to their vehicle.
type Snapshot struct {
	Version     int                `json:"version"`
	ExportDate  int64              `json:"exportDate"`
	PetrolPrice float64            `json:"petrolPrice"`
	FuelPrices  map[string]float64 `json:"fuelPrices,omitempty"`
	Vehicles    []VehicleRecord    `json:"vehicles"`
	FuelEntries []EntryRecord      `json:"fuelEntries"`
	Trips       []TripRecord       `json:"trips"`
}

type VehicleRecord struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"licensePlate"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	FuelType     string  `json:"fuelType,omitempty"`
}

type EntryRecord struct {
	ID            int64   `json:"id"`
	VehicleID     int64   `json:"vehicleId"`
	Odometer      float64 `json:"odometer"`
	FuelAmount    float64 `json:"fuelAmount"`
	PricePerLiter float64 `json:"pricePerLiter"`
	FullTank      bool    `json:"fullTank"`
	FuelType      string  `json:"fuelType"`
	Date          int64   `json:"date"`
}

type TripRecord struct {
	ID            int64    `json:"id"`
	VehicleID     int64    `json:"vehicleId"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	StartOdometer float64  `json:"startOdometer"`
	EndOdometer   *float64 `json:"endOdometer,omitempty"`
	StartDate     int64    `json:"startDate"`
	EndDate       *int64   `json:"endDate,omitempty"`
	Notes         string   `json:"notes"`
	IsActive      bool     `json:"isActive"`
}

// Parse decodes and validates a snapshot. Nothing is written anywhere, so a
// failed parse leaves the database untouched.
func Parse(data []byte) (*Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	for _, name := range requiredFields {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidSnapshot, name)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Validate checks a decoded snapshot can be imported
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: no snapshot", ErrInvalidSnapshot)
	}
	if s.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, s.Version)
	}
	if !validPrice(s.PetrolPrice) {
		return fmt.Errorf("%w: invalid petrol price %v", ErrInvalidSnapshot, s.PetrolPrice)
	}
	for name, price := range s.FuelPrices {
		if _, err := models.ParseFuelType(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		if !validPrice(price) {
			return fmt.Errorf("%w: invalid %s price %v", ErrInvalidSnapshot, name, price)
		}
	}
	for _, v := range s.Vehicles {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("%w: vehicle %d has no name", ErrInvalidSnapshot, v.ID)
		}
	}
	return nil
}

func validPrice(p float64) bool {
	return p >= 0 && !math.IsInf(p, 0)
}

// Marshal encodes the snapshot as indented JSON
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// FileName is the default backup name for a snapshot taken at t
func FileName(t time.Time) string {
	return "motofuel_backup_" + t.Format("20060102_150405") + ".json"
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
