package prefs

import (
	"context"
	"fmt"
	"strconv"
)

// Preferences exposes the per-location settings kept on this device.
type Preferences struct {
	store Store
}

func New(store Store) *Preferences {
	return &Preferences{store: store}
}

const (
	keyLoadedLocation = "loaded-location"
	keyAuthToken      = "auth-token"
)

func locationKey(name, locationID string) string {
	return fmt.Sprintf("%s:%s", name, locationID)
}

// PrintOverrides are the values that win over the print form at print time.
type PrintOverrides struct {
	Year       string
	Color      string
	Department string
}

func (p *Preferences) get(ctx context.Context, key string) (string, error) {
	v, _, err := p.store.Get(ctx, key)
	return v, err
}

func (p *Preferences) setOrClear(ctx context.Context, key, value string) error {
	if value == "" {
		return p.store.Delete(ctx, key)
	}
	return p.store.Set(ctx, key, value)
}

func (p *Preferences) PrintOverrides(ctx context.Context, locationID string) (PrintOverrides, error) {
	var o PrintOverrides
	var err error
	if o.Year, err = p.get(ctx, locationKey("print-year", locationID)); err != nil {
		return o, err
	}
	if o.Color, err = p.get(ctx, locationKey("print-color", locationID)); err != nil {
		return o, err
	}
	if o.Department, err = p.get(ctx, locationKey("print-department", locationID)); err != nil {
		return o, err
	}
	return o, nil
}

func (p *Preferences) SetPrintYear(ctx context.Context, locationID, year string) error {
	return p.setOrClear(ctx, locationKey("print-year", locationID), year)
}

func (p *Preferences) SetPrintColor(ctx context.Context, locationID, color string) error {
	return p.setOrClear(ctx, locationKey("print-color", locationID), color)
}

func (p *Preferences) SetPrintDepartment(ctx context.Context, locationID, department string) error {
	return p.setOrClear(ctx, locationKey("print-department", locationID), department)
}

func (p *Preferences) AutoPrint(ctx context.Context, locationID string) (bool, error) {
	v, err := p.get(ctx, locationKey("auto-print", locationID))
	if err != nil || v == "" {
		return false, err
	}
	on, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return on, nil
}

func (p *Preferences) SetAutoPrint(ctx context.Context, locationID string, on bool) error {
	return p.store.Set(ctx, locationKey("auto-print", locationID), strconv.FormatBool(on))
}

// LoadedLocation is the location id last opened on this device.
func (p *Preferences) LoadedLocation(ctx context.Context) (string, error) {
	return p.get(ctx, keyLoadedLocation)
}

func (p *Preferences) SetLoadedLocation(ctx context.Context, locationID string) error {
	return p.setOrClear(ctx, keyLoadedLocation, locationID)
}

func (p *Preferences) SelectedItem(ctx context.Context, locationID string) (string, error) {
	return p.get(ctx, locationKey("selected-item", locationID))
}

func (p *Preferences) SetSelectedItem(ctx context.Context, locationID, itemID string) error {
	return p.setOrClear(ctx, locationKey("selected-item", locationID), itemID)
}

func (p *Preferences) AuthToken(ctx context.Context) (string, error) {
	return p.get(ctx, keyAuthToken)
}

func (p *Preferences) SetAuthToken(ctx context.Context, token string) error {
	return p.setOrClear(ctx, keyAuthToken, token)
}

func (p *Preferences) Close() error {
	return p.store.Close()
}
