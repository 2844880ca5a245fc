// Package driver opens the configured db.Store backend.
package driver

import (
	"fmt"

	"github.com/kailas-cloud/gallformers/internal/config"
	"github.com/kailas-cloud/gallformers/internal/db"
	dbRedis "github.com/kailas-cloud/gallformers/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/gallformers/internal/db/sqlite"
)

// Open creates the store selected by cfg.Driver.
func Open(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		return s, nil
	case config.DriverSQLite:
		s, err := dbSQLite.NewStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
