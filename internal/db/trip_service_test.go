package db

import (
	"errors"
	"testing"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

func TestStartTrip_OneActivePerType(t *testing.T) {
	store := setupTestDB(t)
	v := mustCreateVehicle(t, store, "Himalayan")
	now := time.Now()

	trip, err := store.StartTrip(StartTripRequest{VehicleID: v.ID, Name: "Leh", Odometer: 5000, StartedAt: now})
	if err != nil {
		t.Fatalf("StartTrip() error = %v", err)
	}
	if !trip.IsActive || trip.Type != models.TripNamed {
		t.Errorf("StartTrip() = %+v, want an active named trip", trip)
	}

	_, err = store.StartTrip(StartTripRequest{VehicleID: v.ID, Name: "Spiti", Odometer: 5000})
	if !errors.Is(err, ErrTripActive) {
		t.Errorf("second StartTrip() error = %v, want ErrTripActive", err)
	}

	// a quick trip is a different type and may run alongside
	if _, err := store.StartQuickTrip(v.ID, models.TripQuickA, 5000, now); err != nil {
		t.Errorf("StartQuickTrip(A) error = %v", err)
	}
	if _, err := store.StartQuickTrip(v.ID, models.TripQuickA, 5000, now); !errors.Is(err, ErrTripActive) {
		t.Errorf("second StartQuickTrip(A) error = %v, want ErrTripActive", err)
	}

	// another vehicle is independent
	other := mustCreateVehicle(t, store, "Other")
	if _, err := store.StartTrip(StartTripRequest{VehicleID: other.ID, Name: "Leh", Odometer: 10}); err != nil {
		t.Errorf("StartTrip(other vehicle) error = %v", err)
	}
}

func TestStartTrip_Validation(t *testing.T) {
	store := setupTestDB(t)
	v := mustCreateVehicle(t, store, "A")

	if _, err := store.StartTrip(StartTripRequest{VehicleID: v.ID, Name: " "}); !errors.Is(err, ErrValidation) {
		t.Errorf("StartTrip(blank name) error = %v, want ErrValidation", err)
	}
	if _, err := store.StartTrip(StartTripRequest{VehicleID: 99, Name: "Ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("StartTrip(unknown vehicle) error = %v, want ErrNotFound", err)
	}
	if _, err := store.StartQuickTrip(v.ID, models.TripNamed, 0, time.Now()); !errors.Is(err, ErrValidation) {
		t.Errorf("StartQuickTrip(NAMED) error = %v, want ErrValidation", err)
	}
}

func TestStartQuickTrip_Names(t *testing.T) {
	store := setupTestDB(t)
	v := mustCreateVehicle(t, store, "A")

	a, err := store.StartQuickTrip(v.ID, models.TripQuickA, 10, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	b, err := store.StartQuickTrip(v.ID, models.TripQuickB, 10, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "Trip A" || b.Name != "Trip B" {
		t.Errorf("quick trip names = %q, %q, want Trip A, Trip B", a.Name, b.Name)
	}
}

func TestEndTrip(t *testing.T) {
	store := setupTestDB(t)
	v := mustCreateVehicle(t, store, "A")
	trip, err := store.StartTrip(StartTripRequest{VehicleID: v.ID, Name: "Goa", Odometer: 1000})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.EndTrip(trip.ID, 900, time.Now()); !errors.Is(err, ErrValidation) {
		t.Errorf("EndTrip(below start) error = %v, want ErrValidation", err)
	}

	ended, err := store.EndTrip(trip.ID, 1600, time.Now())
	if err != nil {
		t.Fatalf("EndTrip() error = %v", err)
	}
	if ended.IsActive || ended.EndOdometer == nil || *ended.EndOdometer != 1600 || ended.EndDate == nil {
		t.Errorf("EndTrip() = %+v, want inactive trip ending at 1600", ended)
	}

	if _, err := store.EndTrip(trip.ID, 1700, time.Now()); !errors.Is(err, ErrTripEnded) {
		t.Errorf("EndTrip(again) error = %v, want ErrTripEnded", err)
	}

	active, err := store.ActiveTrip(v.ID, models.TripNamed)
	if err != nil || active != nil {
		t.Errorf("ActiveTrip() = %v, %v, want nil, nil", active, err)
	}
}

func TestResetTrip(t *testing.T) {
	store := setupTestDB(t)
	v := mustCreateVehicle(t, store, "A")
	now := time.Now()
	trip, err := store.StartQuickTrip(v.ID, models.TripQuickB, 2000, now)
	if err != nil {
		t.Fatal(err)
	}

	fresh, err := store.ResetTrip(trip.ID, 2350, now)
	if err != nil {
		t.Fatalf("ResetTrip() error = %v", err)
	}
	if fresh.ID == trip.ID || !fresh.IsActive || fresh.StartOdometer != 2350 || fresh.Name != "Trip B" || fresh.Type != models.TripQuickB {
		t.Errorf("ResetTrip() = %+v, want a new active Trip B from 2350", fresh)
	}

	old, _ := store.GetTrip(trip.ID)
	if old.IsActive || old.EndOdometer == nil || *old.EndOdometer != 2350 {
		t.Errorf("old trip = %+v, want ended at 2350", old)
	}

	active, _ := store.ActiveTrip(v.ID, models.TripQuickB)
	if active == nil || active.ID != fresh.ID {
		t.Errorf("ActiveTrip() = %+v, want the fresh trip", active)
	}
}

func TestResetTrip_EndedTripLeavesNoTrace(t *testing.T) {
	store := setupTestDB(t)
	v := mustCreateVehicle(t, store, "A")
	trip, err := store.StartQuickTrip(v.ID, models.TripQuickA, 100, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.EndTrip(trip.ID, 200, time.Now()); err != nil {
		t.Fatal(err)
	}

	if _, err := store.ResetTrip(trip.ID, 300, time.Now()); !errors.Is(err, ErrTripEnded) {
		t.Errorf("ResetTrip(ended) error = %v, want ErrTripEnded", err)
	}
	trips, _ := store.ListTrips(&v.ID)
	if len(trips) != 1 {
		t.Errorf("ListTrips() returned %d trips, want 1", len(trips))
	}
}

func TestDeleteTrip(t *testing.T) {
	store := setupTestDB(t)
	v := mustCreateVehicle(t, store, "A")
	trip, err := store.StartQuickTrip(v.ID, models.TripQuickA, 100, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteTrip(trip.ID); err != nil {
		t.Fatalf("DeleteTrip() error = %v", err)
	}
	if err := store.DeleteTrip(trip.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteTrip(again) error = %v, want ErrNotFound", err)
	}
}
