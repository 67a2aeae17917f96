package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/motofuel/internal/models"
)

// VehicleRequest holds the data needed to create or edit a vehicle
type VehicleRequest struct {
	Name         string
	Make         string
	Model        string
	LicensePlate string
	FuelType     models.FuelType // empty means petrol
	ImageURL     *string
}

func (req VehicleRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("vehicle name cannot be empty: %w", ErrValidation)
	}
	return nil
}

// ListVehicles returns every vehicle in creation order
func (s *Store) ListVehicles() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.db.Order("id ASC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *Store) GetVehicle(id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		return nil, notFound(err, "vehicle", id)
	}
	return &vehicle, nil
}

// InsertVehicle stores v under a fresh id and returns that id.
// Any id already set on v is ignored.
func (s *Store) InsertVehicle(v *models.Vehicle) (uint, error) {
	v.ID = 0
	if v.FuelType == "" {
		v.FuelType = models.FuelPetrol
	}
	if err := s.db.Omit("Entries", "Trips").Create(v).Error; err != nil {
		return 0, fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return v.ID, nil
}

// CreateVehicle validates req and creates a new vehicle
func (s *Store) CreateVehicle(req VehicleRequest) (*models.Vehicle, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	vehicle := models.Vehicle{
		Name:         strings.TrimSpace(req.Name),
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		LicensePlate: strings.TrimSpace(req.LicensePlate),
		FuelType:     req.FuelType,
		ImageURL:     req.ImageURL,
	}
	if _, err := s.InsertVehicle(&vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle saves every field of an existing vehicle
func (s *Store) UpdateVehicle(v *models.Vehicle) error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("vehicle name cannot be empty: %w", ErrValidation)
	}
	if _, err := s.GetVehicle(v.ID); err != nil {
		return err
	}
	if v.FuelType == "" {
		v.FuelType = models.FuelPetrol
	}
	return s.db.Omit("Entries", "Trips").Save(v).Error
}

// DeleteVehicle removes a vehicle together with its entries and trips
func (s *Store) DeleteVehicle(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.FuelEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete entries of vehicle #%d: %w", id, err)
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.Trip{}).Error; err != nil {
			return fmt.Errorf("failed to delete trips of vehicle #%d: %w", id, err)
		}

		result := tx.Delete(&models.Vehicle{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("vehicle #%d %w", id, ErrNotFound)
		}
		return nil
	})
}

// DeleteAllVehicles removes every vehicle. Callers clear entries and trips first.
func (s *Store) DeleteAllVehicles() error {
	return s.db.Where("1 = 1").Delete(&models.Vehicle{}).Error
}
