package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

// StartTripRequest holds the data needed to start a named trip
type StartTripRequest struct {
	VehicleID uint
	Name      string
	Odometer  float64
	Notes     string
	StartedAt time.Time
}

// ListTrips returns trips newest start first. A nil vehicleID lists all vehicles.
func (s *Store) ListTrips(vehicleID *uint) ([]models.Trip, error) {
	var trips []models.Trip

	query := s.db.Order("start_date DESC").Order("id DESC")
	if vehicleID != nil {
		query = query.Where("vehicle_id = ?", *vehicleID)
	}
	if err := query.Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

// GetTrip retrieves a trip by ID
func (s *Store) GetTrip(id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := s.db.First(&trip, id).Error; err != nil {
		return nil, notFound(err, "trip", id)
	}
	return &trip, nil
}

// InsertTrip stores t under a fresh id as-is, without checks.
// Used when restoring backups.
func (s *Store) InsertTrip(t *models.Trip) error {
	t.ID = 0
	if err := s.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

// UpdateTrip saves every field of an existing trip
func (s *Store) UpdateTrip(t *models.Trip) error {
	return s.db.Save(t).Error
}

// DeleteTrip removes a single trip
func (s *Store) DeleteTrip(id uint) error {
	result := s.db.Delete(&models.Trip{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("trip #%d %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAllTrips removes every trip of every vehicle
func (s *Store) DeleteAllTrips() error {
	return s.db.Where("1 = 1").Delete(&models.Trip{}).Error
}

// ActiveTrip returns the running trip of the given type, if any
func (s *Store) ActiveTrip(vehicleID uint, tripType models.TripType) (*models.Trip, error) {
	var trips []models.Trip
	err := s.db.Where("vehicle_id = ? AND type = ? AND is_active = ?", vehicleID, tripType, true).
		Limit(1).
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, nil // No active trip is not an error
	}
	return &trips[0], nil
}

// startTrip inserts a new active trip unless one of the same type is running
func (s *Store) startTrip(trip models.Trip) (*models.Trip, error) {
	if trip.StartOdometer < 0 {
		return nil, fmt.Errorf("start odometer cannot be negative: %w", ErrValidation)
	}

	err := s.Transaction(func(tx *Store) error {
		if _, err := tx.GetVehicle(trip.VehicleID); err != nil {
			return err
		}

		active, err := tx.ActiveTrip(trip.VehicleID, trip.Type)
		if err != nil {
			return err
		}
		if active != nil {
			return fmt.Errorf("%q is still running (trip #%d). End it first: %w", active.Name, active.ID, ErrTripActive)
		}

		trip.IsActive = true
		return tx.InsertTrip(&trip)
	})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// StartTrip starts a named trip
func (s *Store) StartTrip(req StartTripRequest) (*models.Trip, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("trip name cannot be empty: %w", ErrValidation)
	}

	startedAt := req.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	return s.startTrip(models.Trip{
		VehicleID:     req.VehicleID,
		Name:          name,
		Type:          models.TripNamed,
		StartOdometer: req.Odometer,
		StartDate:     startedAt,
		Notes:         strings.TrimSpace(req.Notes),
	})
}

// StartQuickTrip starts the "Trip A" or "Trip B" meter of a vehicle
func (s *Store) StartQuickTrip(vehicleID uint, tripType models.TripType, odometer float64, now time.Time) (*models.Trip, error) {
	if tripType != models.TripQuickA && tripType != models.TripQuickB {
		return nil, fmt.Errorf("%s is not a quick trip: %w", tripType, ErrValidation)
	}

	return s.startTrip(models.Trip{
		VehicleID:     vehicleID,
		Name:          models.QuickTripName(tripType),
		Type:          tripType,
		StartOdometer: odometer,
		StartDate:     now,
	})
}

// finish marks trip as ended at odometer. The trip must still be active.
func finish(trip *models.Trip, odometer float64, now time.Time) error {
	if !trip.IsActive {
		return fmt.Errorf("trip #%d %w", trip.ID, ErrTripEnded)
	}
	if odometer < trip.StartOdometer {
		return fmt.Errorf("end odometer %.0f is below the start reading %.0f: %w", odometer, trip.StartOdometer, ErrValidation)
	}

	trip.EndOdometer = &odometer
	trip.EndDate = &now
	trip.IsActive = false
	return nil
}

// EndTrip ends an active trip at the given odometer reading
func (s *Store) EndTrip(id uint, odometer float64, now time.Time) (*models.Trip, error) {
	trip, err := s.GetTrip(id)
	if err != nil {
		return nil, err
	}
	if err := finish(trip, odometer, now); err != nil {
		return nil, err
	}
	if err := s.UpdateTrip(trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ResetTrip ends the trip at odometer and starts a fresh one with the same
// name and type from that reading. Both happen in one transaction.
func (s *Store) ResetTrip(id uint, odometer float64, now time.Time) (*models.Trip, error) {
	var fresh models.Trip

	err := s.Transaction(func(tx *Store) error {
		trip, err := tx.GetTrip(id)
		if err != nil {
			return err
		}
		if err := finish(trip, odometer, now); err != nil {
			return err
		}
		if err := tx.UpdateTrip(trip); err != nil {
			return err
		}

		fresh = models.Trip{
			VehicleID:     trip.VehicleID,
			Name:          trip.Name,
			Type:          trip.Type,
			StartOdometer: odometer,
			StartDate:     now,
			IsActive:      true,
		}
		return tx.InsertTrip(&fresh)
	})
	if err != nil {
		return nil, err
	}
	return &fresh, nil
}
