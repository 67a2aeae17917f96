package models

import "time"

// FuelEntry is a single fill-up. Entries are never edited, only deleted.
type FuelEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	VehicleID     uint      `gorm:"index;not null" json:"vehicle_id"`
	Odometer      float64   `gorm:"not null" json:"odometer"`
	FuelAmount    float64   `gorm:"not null" json:"fuel_amount"`
	PricePerLiter float64   `gorm:"not null" json:"price_per_liter"`
	FullTank      bool      `gorm:"not null" json:"full_tank"`
	FuelType      FuelType  `gorm:"size:16;not null" json:"fuel_type"`
	Date          time.Time `gorm:"index;not null" json:"date"`
}

// Cost is the amount paid for this fill-up
func (e FuelEntry) Cost() float64 {
	return e.FuelAmount * e.PricePerLiter
}
