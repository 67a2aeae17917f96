package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

// ParsedFillUp represents a fill-up parsed from quick syntax
type ParsedFillUp struct {
	Odometer   *float64
	FuelAmount *float64
	FullTank   bool
	FuelType   models.FuelType // empty means the vehicle's default
	Vehicle    string          // name or id given with @, empty for the selected vehicle
	Date       *time.Time
	Errors     []string
}

var (
	fillDateRegex = regexp.MustCompile(`(?i)date:(\d+\s*(?:d|days?)\s+ago|\S+)`)
	vehicleRegex  = regexp.MustCompile(`@(\S+)`)
	odometerRegex = regexp.MustCompile(`(?i)^(?:odo:(\d+(?:\.\d+)?)(?:km)?|(\d+(?:\.\d+)?)km)$`)
	fuelRegex     = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)l$`)
	typeRegex     = regexp.MustCompile(`(?i)^type:(\S+)$`)
)

// ParseFillUp extracts a fill-up from quick syntax
// Syntax: "12450km 8.5l partial date:yesterday @activa type:petrol"
// Missing odometer or fuel amount is reported in Errors, as is every token
// that is not understood.
func ParseFillUp(input string, now time.Time) ParsedFillUp {
	result := ParsedFillUp{
		FullTank: true,
		Errors:   []string{},
	}

	// Extract date first, "N days ago" contains spaces
	if matches := fillDateRegex.FindStringSubmatch(input); len(matches) > 1 {
		date, err := ParseDate(matches[1], now)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid date '"+matches[1]+"': "+err.Error())
		} else {
			result.Date = &date
		}
		input = fillDateRegex.ReplaceAllString(input, "")
	}

	// Extract vehicle (@name or @id)
	if matches := vehicleRegex.FindStringSubmatch(input); len(matches) > 1 {
		result.Vehicle = matches[1]
		input = vehicleRegex.ReplaceAllString(input, "")
	}

	for _, token := range strings.Fields(input) {
		lower := strings.ToLower(token)

		switch {
		case lower == "full":
			result.FullTank = true
		case lower == "partial":
			result.FullTank = false
		case odometerRegex.MatchString(token):
			m := odometerRegex.FindStringSubmatch(token)
			raw := m[1]
			if raw == "" {
				raw = m[2]
			}
			if result.Odometer != nil {
				result.Errors = append(result.Errors, "Odometer given twice: "+token)
				continue
			}
			value, _ := strconv.ParseFloat(raw, 64)
			result.Odometer = &value
		case fuelRegex.MatchString(token):
			if result.FuelAmount != nil {
				result.Errors = append(result.Errors, "Fuel amount given twice: "+token)
				continue
			}
			value, _ := strconv.ParseFloat(fuelRegex.FindStringSubmatch(token)[1], 64)
			result.FuelAmount = &value
		case typeRegex.MatchString(token):
			fuelType, err := models.ParseFuelType(typeRegex.FindStringSubmatch(token)[1])
			if err != nil {
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			result.FuelType = fuelType
		default:
			result.Errors = append(result.Errors, "Unknown token '"+token+"'. Use: <n>km, <n>l, full, partial, date:<date>, @vehicle, type:<fuel>")
		}
	}

	if result.Odometer == nil {
		result.Errors = append(result.Errors, "Odometer is required, e.g. 12450km")
	}
	if result.FuelAmount == nil {
		result.Errors = append(result.Errors, "Fuel amount is required, e.g. 8.5l")
	}

	return result
}
