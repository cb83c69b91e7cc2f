package main

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/oxhq/strata/db"
)

// connectDB opens the database connection and runs migrations, returning a
// wrapped error when the database is unreachable so the caller can exit
// non-zero per the startup contract.
func connectDB(dsn string, debug bool, logger *log.Logger) (*gorm.DB, error) {
	gdb, err := db.Connect(dsn, debug)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	logger.Println("database connection established")
	return gdb, nil
}
