package backup

import (
	"fmt"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

// Source is the read side of the store needed to take a snapshot
type Source interface {
	ListVehicles() ([]models.Vehicle, error)
	ListEntries(vehicleID *uint) ([]models.FuelEntry, error)
	ListTrips(vehicleID *uint) ([]models.Trip, error)
}

// PriceReader exposes the current fuel prices
type PriceReader interface {
	Price(fuelType models.FuelType) float64
	Prices() map[models.FuelType]float64
}

// Export copies every vehicle, entry and trip into a snapshot. prices may be
// nil, in which case the snapshot carries a zero petrol price.
func Export(src Source, prices PriceReader, now time.Time) (*Snapshot, error) {
	vehicles, err := src.ListVehicles()
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	entries, err := src.ListEntries(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	trips, err := src.ListTrips(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	snap := &Snapshot{
		Version:     Version,
		ExportDate:  toMillis(now),
		Vehicles:    make([]VehicleRecord, 0, len(vehicles)),
		FuelEntries: make([]EntryRecord, 0, len(entries)),
		Trips:       make([]TripRecord, 0, len(trips)),
	}

	if prices != nil {
		snap.PetrolPrice = prices.Price(models.FuelPetrol)
		for ft, price := range prices.Prices() {
			if snap.FuelPrices == nil {
				snap.FuelPrices = make(map[string]float64)
			}
			snap.FuelPrices[string(ft)] = price
		}
	}

	for _, v := range vehicles {
		snap.Vehicles = append(snap.Vehicles, VehicleRecord{
			ID:           int64(v.ID),
			Name:         v.Name,
			Make:         v.Make,
			Model:        v.Model,
			LicensePlate: v.LicensePlate,
			ImageURL:     v.ImageURL,
			FuelType:     string(v.FuelType),
		})
	}

	for _, e := range entries {
		snap.FuelEntries = append(snap.FuelEntries, EntryRecord{
			ID:            int64(e.ID),
			VehicleID:     int64(e.VehicleID),
			Odometer:      e.Odometer,
			FuelAmount:    e.FuelAmount,
			PricePerLiter: e.PricePerLiter,
			FullTank:      e.FullTank,
			FuelType:      string(e.FuelType),
			Date:          toMillis(e.Date),
		})
	}

	for _, t := range trips {
		record := TripRecord{
			ID:            int64(t.ID),
			VehicleID:     int64(t.VehicleID),
			Name:          t.Name,
			Type:          string(t.Type),
			StartOdometer: t.StartOdometer,
			EndOdometer:   t.EndOdometer,
			StartDate:     toMillis(t.StartDate),
			Notes:         t.Notes,
			IsActive:      t.IsActive,
		}
		if t.EndDate != nil {
			end := toMillis(*t.EndDate)
			record.EndDate = &end
		}
		snap.Trips = append(snap.Trips, record)
	}

	return snap, nil
}
