package db

import (
	"errors"
	"testing"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

func TestCreateVehicle(t *testing.T) {
	store := setupTestDB(t)

	v, err := store.CreateVehicle(VehicleRequest{Name: "  Activa ", Make: "Honda", Model: "6G"})
	if err != nil {
		t.Fatalf("CreateVehicle() error = %v", err)
	}
	if v.ID == 0 {
		t.Error("CreateVehicle() did not assign an id")
	}
	if v.Name != "Activa" {
		t.Errorf("Name = %q, want trimmed %q", v.Name, "Activa")
	}
	if v.FuelType != models.FuelPetrol {
		t.Errorf("FuelType = %q, want %q", v.FuelType, models.FuelPetrol)
	}

	got, err := store.GetVehicle(v.ID)
	if err != nil {
		t.Fatalf("GetVehicle() error = %v", err)
	}
	if got.DisplayName() != "Activa (Honda 6G)" {
		t.Errorf("DisplayName() = %q", got.DisplayName())
	}
}

func TestCreateVehicle_BlankName(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.CreateVehicle(VehicleRequest{Name: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("CreateVehicle(blank) error = %v, want ErrValidation", err)
	}
}

func TestInsertVehicle_IgnoresGivenID(t *testing.T) {
	store := setupTestDB(t)
	first := mustCreateVehicle(t, store, "First")

	v := models.Vehicle{ID: first.ID, Name: "Restored", FuelType: models.FuelDiesel}
	id, err := store.InsertVehicle(&v)
	if err != nil {
		t.Fatalf("InsertVehicle() error = %v", err)
	}
	if id == first.ID {
		t.Errorf("InsertVehicle() reused id %d", id)
	}
}

func TestUpdateVehicle(t *testing.T) {
	store := setupTestDB(t)
	v := mustCreateVehicle(t, store, "Old")

	v.Name = "New"
	v.FuelType = models.FuelCNG
	if err := store.UpdateVehicle(v); err != nil {
		t.Fatalf("UpdateVehicle() error = %v", err)
	}

	got, _ := store.GetVehicle(v.ID)
	if got.Name != "New" || got.FuelType != models.FuelCNG {
		t.Errorf("GetVehicle() = %+v, want updated name and fuel type", got)
	}

	missing := &models.Vehicle{ID: 999, Name: "Ghost"}
	if err := store.UpdateVehicle(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateVehicle(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteVehicle_Cascades(t *testing.T) {
	store := setupTestDB(t)
	keep := mustCreateVehicle(t, store, "Keep")
	drop := mustCreateVehicle(t, store, "Drop")

	for _, id := range []uint{keep.ID, drop.ID} {
		if _, err := store.AddEntry(AddEntryRequest{VehicleID: id, Odometer: 100, FuelAmount: 5, FullTank: true}, 100); err != nil {
			t.Fatal(err)
		}
		if _, err := store.StartQuickTrip(id, models.TripQuickA, 100, time.Now()); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.DeleteVehicle(drop.ID); err != nil {
		t.Fatalf("DeleteVehicle() error = %v", err)
	}

	entries, _ := store.ListEntries(nil)
	if len(entries) != 1 || entries[0].VehicleID != keep.ID {
		t.Errorf("entries after delete = %+v, want only vehicle #%d", entries, keep.ID)
	}
	trips, _ := store.ListTrips(nil)
	if len(trips) != 1 || trips[0].VehicleID != keep.ID {
		t.Errorf("trips after delete = %+v, want only vehicle #%d", trips, keep.ID)
	}

	if err := store.DeleteVehicle(drop.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteVehicle(again) error = %v, want ErrNotFound", err)
	}
}

func TestGetVehicle_NotFound(t *testing.T) {
	store := setupTestDB(t)

	if _, err := store.GetVehicle(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetVehicle(42) error = %v, want ErrNotFound", err)
	}
}
