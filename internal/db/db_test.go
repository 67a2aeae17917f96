package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/balkashynov/motofuel/internal/config"
	"github.com/balkashynov/motofuel/internal/models"
)

func setupTestDB(t *testing.T) *Store {
	t.Helper()
	store, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "motofuel.db"),
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateVehicle(t *testing.T, store *Store, name string) *models.Vehicle {
	t.Helper()
	v, err := store.CreateVehicle(VehicleRequest{Name: name})
	if err != nil {
		t.Fatalf("CreateVehicle(%q) error = %v", name, err)
	}
	return v
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	testCases := []config.DatabaseConfig{
		{Driver: "postgres", Path: "x.db"},
		{Driver: "sqlite"},
		{Driver: "mysql"},
	}
	for _, cfg := range testCases {
		if _, err := Open(cfg); err == nil {
			t.Errorf("Open(%+v) error = nil, want error", cfg)
		}
	}
}

func TestTransaction_RollsBack(t *testing.T) {
	store := setupTestDB(t)
	sentinel := errors.New("boom")

	err := store.Transaction(func(tx *Store) error {
		if _, err := tx.CreateVehicle(VehicleRequest{Name: "Bullet"}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Transaction() error = %v, want %v", err, sentinel)
	}

	vehicles, err := store.ListVehicles()
	if err != nil {
		t.Fatal(err)
	}
	if len(vehicles) != 0 {
		t.Errorf("ListVehicles() returned %d vehicles after rollback, want 0", len(vehicles))
	}
}
