package models

import (
	"fmt"
	"strings"
	"time"
)

// FuelType is the fuel category of a vehicle or fill-up
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelCNG      FuelType = "CNG"
	FuelElectric FuelType = "Electric"
)

// FuelTypes lists every supported fuel category in display order
var FuelTypes = []FuelType{FuelPetrol, FuelDiesel, FuelCNG, FuelElectric}

// ParseFuelType converts user input to a FuelType (case insensitive)
func ParseFuelType(s string) (FuelType, error) {
	s = strings.TrimSpace(s)
	for _, ft := range FuelTypes {
		if strings.EqualFold(s, string(ft)) {
			return ft, nil
		}
	}
	return "", fmt.Errorf("invalid fuel type %q. Use: petrol, diesel, cng or electric", s)
}

// Vehicle represents a tracked vehicle
type Vehicle struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string   `gorm:"not null" json:"name"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	LicensePlate string   `json:"license_plate"`
	FuelType     FuelType `gorm:"size:16;not null" json:"fuel_type"`
	ImageURL     *string  `json:"image_url,omitempty"`

	// Relationships
	Entries []FuelEntry `gorm:"foreignKey:VehicleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Trips   []Trip      `gorm:"foreignKey:VehicleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// DisplayName returns the name followed by make/model when known
func (v Vehicle) DisplayName() string {
	details := strings.TrimSpace(v.Make + " " + v.Model)
	if details == "" {
		return v.Name
	}
	return fmt.Sprintf("%s (%s)", v.Name, details)
}
