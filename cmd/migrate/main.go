package main

import (
	"flag" // Command-line flags

	"gifty/internal/config" // Custom import path (Config)
	"gifty/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", false, "insert demo user and merchants after migrating")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration

	// Database Source Name (DSN) for MySQL connection
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db.Migrate(dsn)
	// Optionally seed demo data
	if *seed {
		db.Seed(dsn)
	}
}
