package backup

import (
	"fmt"
	"path/filepath"
	"sort"
	"testing"

	"github.com/balkashynov/motofuel/internal/config"
	"github.com/balkashynov/motofuel/internal/db"
	"github.com/balkashynov/motofuel/internal/models"
)

// twoVehicleBackup has one entry and one trip pointing at a vehicle id that
// is not in the file
const twoVehicleBackup = `{
  "version": 1,
  "exportDate": 1717200000000,
  "petrolPrice": 104.5,
  "vehicles": [
    {"id": 1, "name": "Activa", "make": "Honda", "model": "6G", "licensePlate": "KA01AB1234"},
    {"id": 2, "name": "Classic", "make": "Royal Enfield", "model": "350", "licensePlate": "KA02CD5678", "imageUrl": "content://img/2"}
  ],
  "fuelEntries": [
    {"id": 10, "vehicleId": 1, "odometer": 1000, "fuelAmount": 5, "pricePerLiter": 100, "fullTank": true, "fuelType": "Petrol", "date": 1714521600000},
    {"id": 11, "vehicleId": 1, "odometer": 1250, "fuelAmount": 4.5, "pricePerLiter": 102, "fullTank": true, "fuelType": "Petrol", "date": 1715126400000},
    {"id": 12, "vehicleId": 2, "odometer": 8000, "fuelAmount": 10, "pricePerLiter": 101, "fullTank": false, "fuelType": "Petrol", "date": 1714608000000},
    {"id": 13, "vehicleId": 2, "odometer": 8300, "fuelAmount": 9, "pricePerLiter": 103, "fullTank": true, "fuelType": "Petrol", "date": 1715212800000},
    {"id": 14, "vehicleId": 99, "odometer": 50, "fuelAmount": 2, "pricePerLiter": 99, "fullTank": true, "fuelType": "Petrol", "date": 1715212800000}
  ],
  "trips": [
    {"id": 20, "vehicleId": 2, "name": "Coorg", "type": "NAMED", "startOdometer": 8000, "endOdometer": 8300, "startDate": 1714608000000, "endDate": 1715212800000, "notes": "monsoon ride", "isActive": false},
    {"id": 21, "vehicleId": 1, "name": "Trip A", "type": "QUICK_A", "startOdometer": 1250, "startDate": 1715126400000, "notes": "", "isActive": true},
    {"id": 22, "vehicleId": 42, "name": "Lost", "type": "NAMED", "startOdometer": 1, "startDate": 1715126400000, "notes": "", "isActive": true}
  ]
}`

func setupTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "motofuel.db"),
	})
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustParse(t *testing.T, data string) *Snapshot {
	t.Helper()
	snap, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return snap
}

// canonical renders a snapshot with ids replaced by vehicle names so that
// snapshots from different databases can be compared
func canonical(snap *Snapshot) []string {
	names := make(map[int64]string)
	var out []string
	for _, v := range snap.Vehicles {
		names[v.ID] = v.Name
		image := ""
		if v.ImageURL != nil {
			image = *v.ImageURL
		}
		out = append(out, fmt.Sprintf("vehicle|%s|%s|%s|%s|%s", v.Name, v.Make, v.Model, v.LicensePlate, image))
	}
	for _, e := range snap.FuelEntries {
		out = append(out, fmt.Sprintf("entry|%s|%v|%v|%v|%v|%s|%d",
			names[e.VehicleID], e.Odometer, e.FuelAmount, e.PricePerLiter, e.FullTank, e.FuelType, e.Date))
	}
	for _, t := range snap.Trips {
		end, endDate := "-", "-"
		if t.EndOdometer != nil {
			end = fmt.Sprint(*t.EndOdometer)
		}
		if t.EndDate != nil {
			endDate = fmt.Sprint(*t.EndDate)
		}
		out = append(out, fmt.Sprintf("trip|%s|%s|%s|%v|%s|%d|%s|%s|%v",
			names[t.VehicleID], t.Name, t.Type, t.StartOdometer, end, t.StartDate, endDate, t.Notes, t.IsActive))
	}
	sort.Strings(out)
	return out
}

// countingWriter records writes without storing anything
type countingWriter struct {
	writes int
	nextID uint
}

func (w *countingWriter) InsertVehicle(v *models.Vehicle) (uint, error) {
	w.writes++
	w.nextID++
	return w.nextID, nil
}
func (w *countingWriter) InsertEntry(*models.FuelEntry) error { w.writes++; return nil }
func (w *countingWriter) InsertTrip(*models.Trip) error { w.writes++; return nil }
func (w *countingWriter) DeleteAllEntries() error { w.writes++; return nil }
func (w *countingWriter) DeleteAllTrips() error { w.writes++; return nil }
func (w *countingWriter) DeleteAllVehicles() error { w.writes++; return nil }

// fixedPrices is a static PriceReader
type fixedPrices map[models.FuelType]float64

func (p fixedPrices) Price(ft models.FuelType) float64 { return p[ft] }
func (p fixedPrices) Prices() map[models.FuelType]float64 { return p }
