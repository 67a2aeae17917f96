package db

import (
	"fmt"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

// AddEntryRequest is a fill-up as typed by the user. The price is captured
// separately, from the current price setting.
type AddEntryRequest struct {
	VehicleID  uint
	Odometer   float64
	FuelAmount float64
	FullTank   bool
	FuelType   models.FuelType // empty means the vehicle's fuel type
	Date       *time.Time      // nil means now
}

// ListEntries returns fill-ups newest first. A nil vehicleID lists all vehicles.
func (s *Store) ListEntries(vehicleID *uint) ([]models.FuelEntry, error) {
	var entries []models.FuelEntry

	query := s.db.Order("date DESC").Order("id DESC")
	if vehicleID != nil {
		query = query.Where("vehicle_id = ?", *vehicleID)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// InsertEntry stores e under a fresh id as-is, without validation.
// Used when restoring backups.
func (s *Store) InsertEntry(e *models.FuelEntry) error {
	e.ID = 0
	if err := s.db.Create(e).Error; err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// LastOdometer returns the highest odometer reading logged for the vehicle,
// nil when it has no entries yet
func (s *Store) LastOdometer(vehicleID uint) (*float64, error) {
	var entries []models.FuelEntry
	err := s.db.Where("vehicle_id = ?", vehicleID).
		Order("odometer DESC").
		Limit(1).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil // No entries is not an error
	}
	return &entries[0].Odometer, nil
}

// AddEntry validates and records a new fill-up at the given price per litre
func (s *Store) AddEntry(req AddEntryRequest, price float64) (*models.FuelEntry, error) {
	vehicle, err := s.GetVehicle(req.VehicleID)
	if err != nil {
		return nil, err
	}

	if req.Odometer <= 0 {
		return nil, fmt.Errorf("odometer must be greater than 0: %w", ErrValidation)
	}
	if req.FuelAmount <= 0 {
		return nil, fmt.Errorf("fuel amount must be greater than 0: %w", ErrValidation)
	}

	last, err := s.LastOdometer(req.VehicleID)
	if err != nil {
		return nil, err
	}
	if last != nil && req.Odometer <= *last {
		return nil, fmt.Errorf("odometer must be greater than the last reading (%.0f km): %w", *last, ErrValidation)
	}

	fuelType := req.FuelType
	if fuelType == "" {
		fuelType = vehicle.FuelType
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	entry := models.FuelEntry{
		VehicleID:     req.VehicleID,
		Odometer:      req.Odometer,
		FuelAmount:    req.FuelAmount,
		PricePerLiter: price,
		FullTank:      req.FullTank,
		FuelType:      fuelType,
		Date:          date,
	}
	if err := s.InsertEntry(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes a single fill-up
func (s *Store) DeleteEntry(id uint) error {
	result := s.db.Delete(&models.FuelEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("entry #%d %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAllEntries removes every fill-up of every vehicle
func (s *Store) DeleteAllEntries() error {
	return s.db.Where("1 = 1").Delete(&models.FuelEntry{}).Error
}
