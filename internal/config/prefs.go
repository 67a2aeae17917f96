package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/balkashynov/motofuel/internal/models"
)

// Onboarding steps: set a price, add a vehicle, log a fill-up, done
const (
	StepSetPrice = iota
	StepAddVehicle
	StepAddEntry
	StepDone
)

const (
	keyPriceUpdatedAt  = "price_updated_at"
	keyOnboardingStep  = "onboarding_step"
	keyNotifications   = "notifications"
	keySelectedVehicle = "selected_vehicle"
)

var ErrInvalidPrice = errors.New("price must not be negative")

// Preferences is the small key/value store for user settings that are not
// part of the fill-up data: current fuel prices, onboarding progress and
// notification choices. Every setter persists immediately.
type Preferences struct {
	v    *viper.Viper
	path string
	now  func() time.Time
}

// OpenPreferences loads the preferences file at path. A missing file is not
// an error, it is written on the first change.
func OpenPreferences(path string) (*Preferences, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(keyOnboardingStep, StepSetPrice)
	v.SetDefault(keyNotifications, true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read preferences: %w", err)
		}
	}

	return &Preferences{v: v, path: path, now: time.Now}, nil
}

func (p *Preferences) save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := p.v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func priceKey(fuelType models.FuelType) string {
	return "prices." + strings.ToLower(string(fuelType))
}

// Price returns the current price per litre for fuelType, 0 when unset
func (p *Preferences) Price(fuelType models.FuelType) float64 {
	return p.v.GetFloat64(priceKey(fuelType))
}

// Prices returns every price that has been set
func (p *Preferences) Prices() map[models.FuelType]float64 {
	prices := make(map[models.FuelType]float64)
	for _, ft := range models.FuelTypes {
		if price := p.Price(ft); price > 0 {
			prices[ft] = price
		}
	}
	return prices
}

// SetPrice stores the price for fuelType. The first price ever set completes
// the first onboarding step.
func (p *Preferences) SetPrice(fuelType models.FuelType, price float64) error {
	return p.storePrice(fuelType, price, true)
}

// RestorePrice stores a price from a backup. Unlike SetPrice it leaves
// PriceUpdatedAt alone, so restoring an old backup does not count as a
// price check.
func (p *Preferences) RestorePrice(fuelType models.FuelType, price float64) error {
	return p.storePrice(fuelType, price, false)
}

func (p *Preferences) storePrice(fuelType models.FuelType, price float64, stamp bool) error {
	if price < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	p.v.Set(priceKey(fuelType), price)
	if stamp {
		p.v.Set(keyPriceUpdatedAt, p.now().UTC().Format(time.RFC3339))
	}
	if p.OnboardingStep() == StepSetPrice {
		p.v.Set(keyOnboardingStep, StepAddVehicle)
	}
	return p.save()
}

// PriceUpdatedAt reports when any price was last changed
func (p *Preferences) PriceUpdatedAt() (time.Time, bool) {
	raw := p.v.GetString(keyPriceUpdatedAt)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (p *Preferences) OnboardingStep() int {
	step := p.v.GetInt(keyOnboardingStep)
	switch {
	case step < StepSetPrice:
		return StepSetPrice
	case step > StepDone:
		return StepDone
	}
	return step
}

// SetOnboardingStep stores step, clamped to the valid range
func (p *Preferences) SetOnboardingStep(step int) error {
	if step < StepSetPrice {
		step = StepSetPrice
	}
	if step > StepDone {
		step = StepDone
	}
	p.v.Set(keyOnboardingStep, step)
	return p.save()
}

func (p *Preferences) OnboardingComplete() bool {
	return p.OnboardingStep() >= StepDone
}

// VehicleAdded advances onboarding when it is waiting for the first vehicle
func (p *Preferences) VehicleAdded() error {
	if p.OnboardingStep() != StepAddVehicle {
		return nil
	}
	return p.SetOnboardingStep(StepAddEntry)
}

// EntryAdded completes onboarding after the first fill-up
func (p *Preferences) EntryAdded() error {
	if p.OnboardingStep() != StepAddEntry {
		return nil
	}
	return p.SetOnboardingStep(StepDone)
}

func (p *Preferences) NotificationsEnabled() bool {
	return p.v.GetBool(keyNotifications)
}

func (p *Preferences) SetNotifications(enabled bool) error {
	p.v.Set(keyNotifications, enabled)
	return p.save()
}

// SelectedVehicle returns the vehicle commands default to
func (p *Preferences) SelectedVehicle() (uint, bool) {
	id := p.v.GetUint(keySelectedVehicle)
	return id, id != 0
}

// SetSelectedVehicle stores id as the default vehicle; 0 clears it
func (p *Preferences) SetSelectedVehicle(id uint) error {
	p.v.Set(keySelectedVehicle, id)
	return p.save()
}
