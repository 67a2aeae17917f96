package stats

import "github.com/balkashynov/motofuel/internal/models"

// TripStats describes fuel use over a completed trip
type TripStats struct {
	Distance   float64 `json:"distance"`
	FuelUsed   float64 `json:"fuel_used"`
	Cost       float64 `json:"cost"`
	Efficiency float64 `json:"efficiency"`
}

// ComputeTrip returns stats for a finished trip. It returns false while the
// trip has no end odometer or when the covered distance is not positive.
//
// Entries are matched by odometer range, not by date, so the caller must pass
// only the entries of the trip's vehicle.
func ComputeTrip(trip models.Trip, entries []models.FuelEntry) (TripStats, bool) {
	distance, ended := trip.Distance()
	if !ended || distance <= 0 {
		return TripStats{}, false
	}
	end := *trip.EndOdometer

	var inRange []models.FuelEntry
	for _, e := range entries {
		if e.FullTank && e.Odometer >= trip.StartOdometer && e.Odometer <= end {
			inRange = append(inRange, e)
		}
	}

	ts := TripStats{Distance: distance}
	for _, e := range inRange {
		ts.FuelUsed += e.FuelAmount
	}
	ts.Cost = totalCost(inRange).InexactFloat64()
	if ts.FuelUsed > 0 {
		ts.Efficiency = distance / ts.FuelUsed
	}
	return ts, true
}
