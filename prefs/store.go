package prefs

import (
	"context"
	"fmt"
)

// Store is a flat string key/value store with no expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open returns the store selected by driver.
func Open(ctx context.Context, driver, path, dsn string) (Store, error) {
	switch driver {
	case "", DriverSQLite:
		return OpenSQLite(path)
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown preference driver %q (want sqlite or postgres)", driver)
	}
}
