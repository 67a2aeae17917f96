package backup

import (
	"fmt"
	"sort"

	"github.com/balkashynov/motofuel/internal/models"
)

// Mode selects how a snapshot is combined with existing data
type Mode int

const (
	// Replace wipes all existing data before restoring
	Replace Mode = iota
	// Merge appends the snapshot next to existing data
	Merge
)

func (m Mode) String() string {
	if m == Merge {
		return "MERGE"
	}
	return "REPLACE"
}

// Writer is the write side of the store needed to restore a snapshot
type Writer interface {
	InsertVehicle(v *models.Vehicle) (uint, error)
	InsertEntry(e *models.FuelEntry) error
	InsertTrip(t *models.Trip) error
	DeleteAllEntries() error
	DeleteAllTrips() error
	DeleteAllVehicles() error
}

// PriceSetter persists a restored fuel price
type PriceSetter func(fuelType models.FuelType, price float64) error

// Result counts what an import restored and what it dropped
type Result struct {
	Vehicles       int `json:"vehicles"`
	Entries        int `json:"entries"`
	Trips          int `json:"trips"`
	SkippedEntries int `json:"skipped_entries"`
	SkippedTrips   int `json:"skipped_trips"`
}

// Import restores the records of snap into store. Vehicles get fresh ids;
// entries and trips are relinked through the old -> new id map and dropped
// when their vehicle is not part of the snapshot. Prices are not touched,
// apply them with RestorePrices once the store writes are committed.
//
// Import performs several writes; run it inside a transaction to make the
// restore all-or-nothing.
func Import(store Writer, snap *Snapshot, mode Mode) (Result, error) {
	var res Result
	if err := snap.Validate(); err != nil {
		return res, err
	}

	if mode == Replace {
		if err := store.DeleteAllEntries(); err != nil {
			return res, fmt.Errorf("failed to clear entries: %w", err)
		}
		if err := store.DeleteAllTrips(); err != nil {
			return res, fmt.Errorf("failed to clear trips: %w", err)
		}
		if err := store.DeleteAllVehicles(); err != nil {
			return res, fmt.Errorf("failed to clear vehicles: %w", err)
		}
	}

	idMap := make(map[int64]uint, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		fuelType := models.FuelType(v.FuelType)
		if fuelType == "" {
			fuelType = models.FuelPetrol
		}
		vehicle := models.Vehicle{
			Name:         v.Name,
			Make:         v.Make,
			Model:        v.Model,
			LicensePlate: v.LicensePlate,
			FuelType:     fuelType,
			ImageURL:     v.ImageURL,
		}
		newID, err := store.InsertVehicle(&vehicle)
		if err != nil {
			return res, fmt.Errorf("failed to restore vehicle %q: %w", v.Name, err)
		}
		idMap[v.ID] = newID
		res.Vehicles++
	}

	for _, e := range snap.FuelEntries {
		vehicleID, ok := idMap[e.VehicleID]
		if !ok {
			res.SkippedEntries++
			continue
		}
		entry := models.FuelEntry{
			VehicleID:     vehicleID,
			Odometer:      e.Odometer,
			FuelAmount:    e.FuelAmount,
			PricePerLiter: e.PricePerLiter,
			FullTank:      e.FullTank,
			FuelType:      models.FuelType(e.FuelType),
			Date:          fromMillis(e.Date),
		}
		if err := store.InsertEntry(&entry); err != nil {
			return res, fmt.Errorf("failed to restore entry %d: %w", e.ID, err)
		}
		res.Entries++
	}

	for _, t := range snap.Trips {
		vehicleID, ok := idMap[t.VehicleID]
		if !ok {
			res.SkippedTrips++
			continue
		}
		trip := models.Trip{
			VehicleID:     vehicleID,
			Name:          t.Name,
			Type:          models.TripType(t.Type),
			StartOdometer: t.StartOdometer,
			EndOdometer:   t.EndOdometer,
			StartDate:     fromMillis(t.StartDate),
			Notes:         t.Notes,
			IsActive:      t.IsActive,
		}
		if t.EndDate != nil {
			end := fromMillis(*t.EndDate)
			trip.EndDate = &end
		}
		if err := store.InsertTrip(&trip); err != nil {
			return res, fmt.Errorf("failed to restore trip %d: %w", t.ID, err)
		}
		res.Trips++
	}

	return res, nil
}

// RestorePrices applies the per-type prices of snap, then the petrol price
// which is authoritative for petrol
func RestorePrices(snap *Snapshot, setPrice PriceSetter) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	names := make([]string, 0, len(snap.FuelPrices))
	for name := range snap.FuelPrices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fuelType, err := models.ParseFuelType(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		if fuelType == models.FuelPetrol {
			continue
		}
		if err := setPrice(fuelType, snap.FuelPrices[name]); err != nil {
			return fmt.Errorf("failed to restore %s price: %w", fuelType, err)
		}
	}

	if err := setPrice(models.FuelPetrol, snap.PetrolPrice); err != nil {
		return fmt.Errorf("failed to restore petrol price: %w", err)
	}
	return nil
}
