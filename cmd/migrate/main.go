package main

import (
	"log"
	"os"

	"huntstay-be/internal/model"
	"huntstay-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		// Required for the exclusion constraint over (uuid, range) pairs
		`CREATE EXTENSION IF NOT EXISTS btree_gist;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate for 4 Tables...")

	models := []interface{}{
		&model.User{},
		&model.Property{},
		&model.Booking{},
		&model.Payment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. Post-Migration: the double-booking backstop. The service layer
	// checks overlap inside its transaction; this constraint makes the race
	// between two concurrent inserts lose deterministically.
	log.Println("Step 3: Installing booking overlap exclusion constraint...")

	constraintSQL := `
		DO $$ BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
			) THEN
				ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
				EXCLUDE USING gist (
					property_id WITH =,
					tsrange(check_in_date, check_out_date, '[)') WITH &&
				)
				WHERE (status IN ('pending', 'confirmed'));
			END IF;
		END $$;`

	if err := db.Exec(constraintSQL).Error; err != nil {
		log.Fatal("Error: Failed to install overlap constraint:", err)
	}

	log.Println("✅ Migration completed successfully")
}
