package configs

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	connectAttempts = 10
	connectDelay    = 5 * time.Second
)

// DSN renders the MySQL connection string for this environment.
func (e ENV) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		e.DBUser, e.DBPassword, e.DBHost, e.DBPort, e.DBName)
}

// OpenConnection dials the database, retrying while it comes up so the
// service survives a slow MySQL start.
func OpenConnection() (*gorm.DB, error) {
	log := Log.Sugar()
	dsn := LoadENV.DSN()

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
			}
			if pingErr == nil {
				log.Infow("database connected", "host", LoadENV.DBHost, "attempt", attempt)
				return db, nil
			}
			err = pingErr
		}

		lastErr = err
		log.Warnw("database not ready, retrying",
			"attempt", attempt, "max_attempts", connectAttempts, "error", err)
		time.Sleep(connectDelay)
	}

	return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, lastErr)
}
