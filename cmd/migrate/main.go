package main

import (
	"ledger_system/internal/config" // Custom import path (Config)
	"ledger_system/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Create/update the schema
}
