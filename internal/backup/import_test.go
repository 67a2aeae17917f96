package backup

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/balkashynov/motofuel/internal/db"
	"github.com/balkashynov/motofuel/internal/models"
)

func seedExisting(t *testing.T, store *db.Store) *models.Vehicle {
	t.Helper()
	v, err := store.CreateVehicle(db.VehicleRequest{Name: "Existing"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddEntry(db.AddEntryRequest{VehicleID: v.ID, Odometer: 500, FuelAmount: 3, FullTank: true}, 95); err != nil {
		t.Fatal(err)
	}
	if _, err := store.StartQuickTrip(v.ID, models.TripQuickB, 500, time.Now()); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestImport_ReplaceRemapsAndSkipsOrphans(t *testing.T) {
	store := setupTestStore(t)
	seedExisting(t, store)
	snap := mustParse(t, twoVehicleBackup)

	var res Result
	err := store.Transaction(func(tx *db.Store) error {
		var err error
		res, err = Import(tx, snap, Replace)
		return err
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	want := Result{Vehicles: 2, Entries: 4, Trips: 2, SkippedEntries: 1, SkippedTrips: 1}
	if res != want {
		t.Errorf("Import() = %+v, want %+v", res, want)
	}

	vehicles, _ := store.ListVehicles()
	if len(vehicles) != 2 {
		t.Fatalf("ListVehicles() returned %d vehicles, want 2", len(vehicles))
	}
	entries, _ := store.ListEntries(nil)
	if len(entries) != 4 {
		t.Errorf("ListEntries() returned %d entries, want 4", len(entries))
	}
	trips, _ := store.ListTrips(nil)
	if len(trips) != 2 {
		t.Errorf("ListTrips() returned %d trips, want 2", len(trips))
	}

	byName := make(map[string]uint)
	for _, v := range vehicles {
		byName[v.Name] = v.ID
	}
	activa := byName["Activa"]
	activaEntries, _ := store.ListEntries(&activa)
	if len(activaEntries) != 2 {
		t.Fatalf("Activa has %d entries, want 2", len(activaEntries))
	}
	if activaEntries[0].Odometer != 1250 || activaEntries[1].Odometer != 1000 {
		t.Errorf("Activa odometers = %v, %v, want 1250, 1000", activaEntries[0].Odometer, activaEntries[1].Odometer)
	}

	quick, _ := store.ActiveTrip(activa, models.TripQuickA)
	if quick == nil || quick.StartOdometer != 1250 {
		t.Errorf("ActiveTrip(Activa, A) = %+v, want the restored Trip A", quick)
	}
}

func TestImport_Merge(t *testing.T) {
	store := setupTestStore(t)
	existing := seedExisting(t, store)
	snap := mustParse(t, twoVehicleBackup)

	if _, err := Import(store, snap, Merge); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	vehicles, _ := store.ListVehicles()
	if len(vehicles) != 3 {
		t.Errorf("ListVehicles() returned %d vehicles, want 3", len(vehicles))
	}
	entries, _ := store.ListEntries(nil)
	if len(entries) != 5 {
		t.Errorf("ListEntries() returned %d entries, want 5", len(entries))
	}
	kept, _ := store.ListEntries(&existing.ID)
	if len(kept) != 1 {
		t.Errorf("existing vehicle has %d entries, want 1", len(kept))
	}

	// merging again duplicates rather than deduplicates
	if _, err := Import(store, snap, Merge); err != nil {
		t.Fatal(err)
	}
	vehicles, _ = store.ListVehicles()
	if len(vehicles) != 5 {
		t.Errorf("ListVehicles() after second merge returned %d vehicles, want 5", len(vehicles))
	}
}

func TestImport_InvalidSnapshotWritesNothing(t *testing.T) {
	testCases := []struct {
		name string
		snap *Snapshot
	}{
		{"nil", nil},
		{"wrong version", &Snapshot{Version: 7, Vehicles: []VehicleRecord{{ID: 1, Name: "X"}}}},
		{"negative petrol price", &Snapshot{Version: Version, PetrolPrice: -5, FuelPrices: map[string]float64{"Diesel": 90}}},
		{"negative diesel price", &Snapshot{Version: Version, PetrolPrice: 100, FuelPrices: map[string]float64{"Diesel": -1}}},
		{"unknown fuel price", &Snapshot{Version: Version, PetrolPrice: 100, FuelPrices: map[string]float64{"Hydrogen": 5}}},
		{"blank vehicle name", &Snapshot{Version: Version, Vehicles: []VehicleRecord{{ID: 1, Name: "   "}}}},
	}

	for _, tc := range testCases {
		w := &countingWriter{}
		_, err := Import(w, tc.snap, Replace)
		if !errors.Is(err, ErrInvalidSnapshot) {
			t.Errorf("%s: Import() error = %v, want ErrInvalidSnapshot", tc.name, err)
		}
		if w.writes != 0 {
			t.Errorf("%s: Import() made %d writes, want none", tc.name, w.writes)
		}

		called := false
		err = RestorePrices(tc.snap, func(models.FuelType, float64) error {
			called = true
			return nil
		})
		if !errors.Is(err, ErrInvalidSnapshot) || called {
			t.Errorf("%s: RestorePrices() error = %v (price set: %v), want ErrInvalidSnapshot and no price", tc.name, err, called)
		}
	}
}

func TestImport_NegativePriceLeavesStoreAndPrices(t *testing.T) {
	store := setupTestStore(t)
	seedExisting(t, store)

	data := `{"version": 1, "exportDate": 0, "petrolPrice": -5, "fuelPrices": {"Diesel": 90},
		"vehicles": [{"id": 1, "name": "Activa"}], "fuelEntries": [], "trips": []}`
	if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("Parse() error = %v, want ErrInvalidSnapshot", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		t.Fatal(err)
	}
	prices := make(map[models.FuelType]float64)
	setPrice := func(ft models.FuelType, price float64) error {
		prices[ft] = price
		return nil
	}

	err := store.Transaction(func(tx *db.Store) error {
		_, err := Import(tx, &snap, Replace)
		return err
	})
	if err == nil {
		err = RestorePrices(&snap, setPrice)
	}
	if !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("restore error = %v, want ErrInvalidSnapshot", err)
	}
	if len(prices) != 0 {
		t.Errorf("prices after failed restore = %v, want none", prices)
	}
	vehicles, _ := store.ListVehicles()
	if len(vehicles) != 1 || vehicles[0].Name != "Existing" {
		t.Errorf("ListVehicles() after failed restore = %+v, want only the existing vehicle", vehicles)
	}
}

func TestRestorePrices(t *testing.T) {
	snap := mustParse(t, twoVehicleBackup)
	snap.FuelPrices = map[string]float64{"Diesel": 90, "Petrol": 1, "CNG": 76}

	type call struct {
		fuelType models.FuelType
		price    float64
	}
	var calls []call
	err := RestorePrices(snap, func(ft models.FuelType, price float64) error {
		calls = append(calls, call{ft, price})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []call{{models.FuelCNG, 76}, {models.FuelDiesel, 90}, {models.FuelPetrol, 104.5}}
	if len(calls) != len(want) {
		t.Fatalf("price setter calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

// failingTrips lets vehicles and entries through and fails on the first trip
type failingTrips struct {
	*db.Store
}

func (f failingTrips) InsertTrip(*models.Trip) error {
	return errors.New("disk full")
}

func TestImport_RollsBackInTransaction(t *testing.T) {
	store := setupTestStore(t)
	seedExisting(t, store)
	snap := mustParse(t, twoVehicleBackup)

	err := store.Transaction(func(tx *db.Store) error {
		_, err := Import(failingTrips{tx}, snap, Replace)
		return err
	})
	if err == nil {
		t.Fatal("Import() error = nil, want failure")
	}

	vehicles, _ := store.ListVehicles()
	if len(vehicles) != 1 || vehicles[0].Name != "Existing" {
		t.Errorf("ListVehicles() after failed restore = %+v, want only the existing vehicle", vehicles)
	}
	entries, _ := store.ListEntries(nil)
	if len(entries) != 1 {
		t.Errorf("ListEntries() after failed restore returned %d entries, want 1", len(entries))
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	source := setupTestStore(t)
	if _, err := Import(source, mustParse(t, twoVehicleBackup), Replace); err != nil {
		t.Fatal(err)
	}
	prices := fixedPrices{models.FuelPetrol: 104.5, models.FuelDiesel: 92}

	first, err := Export(source, prices, time.Now())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if first.PetrolPrice != 104.5 || first.FuelPrices["Diesel"] != 92 {
		t.Errorf("Export() prices = %v, %v", first.PetrolPrice, first.FuelPrices)
	}

	data, err := Encode(first, false, "")
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data, "")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	target := setupTestStore(t)
	seedExisting(t, target)
	if _, err := Import(target, decoded, Replace); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	second, err := Export(target, prices, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	a, b := canonical(first), canonical(second)
	if len(a) != len(b) {
		t.Fatalf("round trip changed record count: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("round trip mismatch:\n got %s\nwant %s", b[i], a[i])
		}
	}
}

func TestExport_EmptyStore(t *testing.T) {
	snap, err := Export(setupTestStore(t), nil, time.UnixMilli(1717200000000))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Version != Version || snap.ExportDate != 1717200000000 {
		t.Errorf("Export() = version %d, date %d", snap.Version, snap.ExportDate)
	}
	if snap.Vehicles == nil || snap.FuelEntries == nil || snap.Trips == nil {
		t.Error("Export() left a collection nil, it must encode as []")
	}

	// an empty export must itself be importable
	data, _ := snap.Marshal()
	if _, err := Parse(data); err != nil {
		t.Errorf("Parse(empty export) error = %v", err)
	}
}
