package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/balkashynov/motofuel/internal/models"
)

func openTestPrefs(t *testing.T) (*Preferences, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	prefs, err := OpenPreferences(path)
	if err != nil {
		t.Fatalf("OpenPreferences() error = %v", err)
	}
	return prefs, path
}

func TestPreferences_Defaults(t *testing.T) {
	prefs, _ := openTestPrefs(t)

	if got := prefs.Price(models.FuelPetrol); got != 0 {
		t.Errorf("Price(Petrol) = %v, want 0", got)
	}
	if _, ok := prefs.PriceUpdatedAt(); ok {
		t.Error("PriceUpdatedAt() ok = true before any price was set")
	}
	if got := prefs.OnboardingStep(); got != StepSetPrice {
		t.Errorf("OnboardingStep() = %d, want %d", got, StepSetPrice)
	}
	if !prefs.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = false, want true")
	}
	if _, ok := prefs.SelectedVehicle(); ok {
		t.Error("SelectedVehicle() ok = true, want false")
	}
}

func TestPreferences_SetPricePersists(t *testing.T) {
	prefs, path := openTestPrefs(t)
	fixed := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	prefs.now = func() time.Time { return fixed }

	if err := prefs.SetPrice(models.FuelPetrol, 104.5); err != nil {
		t.Fatalf("SetPrice() error = %v", err)
	}
	if err := prefs.SetPrice(models.FuelCNG, 76); err != nil {
		t.Fatalf("SetPrice() error = %v", err)
	}

	reopened, err := OpenPreferences(path)
	if err != nil {
		t.Fatalf("OpenPreferences() error = %v", err)
	}
	if got := reopened.Price(models.FuelPetrol); got != 104.5 {
		t.Errorf("Price(Petrol) = %v, want 104.5", got)
	}
	if got := reopened.Price(models.FuelCNG); got != 76 {
		t.Errorf("Price(CNG) = %v, want 76", got)
	}
	if got := len(reopened.Prices()); got != 2 {
		t.Errorf("len(Prices()) = %d, want 2", got)
	}
	updated, ok := reopened.PriceUpdatedAt()
	if !ok || !updated.Equal(fixed) {
		t.Errorf("PriceUpdatedAt() = %v, %v, want %v", updated, ok, fixed)
	}
	if got := reopened.OnboardingStep(); got != StepAddVehicle {
		t.Errorf("OnboardingStep() = %d, want %d", got, StepAddVehicle)
	}
}

func TestPreferences_NegativePrice(t *testing.T) {
	prefs, _ := openTestPrefs(t)

	err := prefs.SetPrice(models.FuelDiesel, -1)
	if !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("SetPrice(-1) error = %v, want ErrInvalidPrice", err)
	}
}

func TestPreferences_RestorePriceKeepsTimestamp(t *testing.T) {
	prefs, _ := openTestPrefs(t)

	if err := prefs.RestorePrice(models.FuelDiesel, 90); err != nil {
		t.Fatalf("RestorePrice() error = %v", err)
	}
	if got := prefs.Price(models.FuelDiesel); got != 90 {
		t.Errorf("Price(Diesel) = %v, want 90", got)
	}
	if _, ok := prefs.PriceUpdatedAt(); ok {
		t.Error("PriceUpdatedAt() ok = true after a restore, want false")
	}
	if got := prefs.OnboardingStep(); got != StepAddVehicle {
		t.Errorf("OnboardingStep() = %d, want %d", got, StepAddVehicle)
	}

	checked := time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC)
	prefs.now = func() time.Time { return checked }
	if err := prefs.SetPrice(models.FuelPetrol, 104.5); err != nil {
		t.Fatal(err)
	}
	prefs.now = func() time.Time { return checked.AddDate(0, 3, 0) }
	if err := prefs.RestorePrice(models.FuelPetrol, 99); err != nil {
		t.Fatal(err)
	}
	if got, ok := prefs.PriceUpdatedAt(); !ok || !got.Equal(checked) {
		t.Errorf("PriceUpdatedAt() = %v, %v, want %v", got, ok, checked)
	}
	if err := prefs.RestorePrice(models.FuelCNG, -1); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("RestorePrice(-1) error = %v, want ErrInvalidPrice", err)
	}
}

func TestPreferences_Onboarding(t *testing.T) {
	prefs, _ := openTestPrefs(t)

	// out of order events do not skip steps
	if err := prefs.VehicleAdded(); err != nil {
		t.Fatal(err)
	}
	if got := prefs.OnboardingStep(); got != StepSetPrice {
		t.Fatalf("OnboardingStep() = %d, want %d", got, StepSetPrice)
	}

	if err := prefs.SetPrice(models.FuelPetrol, 100); err != nil {
		t.Fatal(err)
	}
	if err := prefs.VehicleAdded(); err != nil {
		t.Fatal(err)
	}
	if err := prefs.EntryAdded(); err != nil {
		t.Fatal(err)
	}
	if !prefs.OnboardingComplete() {
		t.Errorf("OnboardingComplete() = false at step %d", prefs.OnboardingStep())
	}

	testCases := []struct{ set, want int }{
		{-4, StepSetPrice},
		{2, StepAddEntry},
		{9, StepDone},
	}
	for _, tc := range testCases {
		if err := prefs.SetOnboardingStep(tc.set); err != nil {
			t.Fatal(err)
		}
		if got := prefs.OnboardingStep(); got != tc.want {
			t.Errorf("SetOnboardingStep(%d): OnboardingStep() = %d, want %d", tc.set, got, tc.want)
		}
	}
}

func TestPreferences_NotificationsAndSelection(t *testing.T) {
	prefs, path := openTestPrefs(t)

	if err := prefs.SetNotifications(false); err != nil {
		t.Fatal(err)
	}
	if err := prefs.SetSelectedVehicle(3); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenPreferences(path)
	if err != nil {
		t.Fatal(err)
	}
	if reopened.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = true after disabling")
	}
	if id, ok := reopened.SelectedVehicle(); !ok || id != 3 {
		t.Errorf("SelectedVehicle() = %d, %v, want 3, true", id, ok)
	}
}
