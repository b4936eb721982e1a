package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the portal tables if they do not exist yet.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createAdminsTable(db); err != nil {
		return err
	}
	if err := createStudentResultsTable(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createAdminsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS admins (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to create admins table: %v", err)
		return err
	}
	return nil
}

func createStudentResultsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS student_results (
			id UUID PRIMARY KEY,
			roll_number INTEGER NOT NULL UNIQUE,
			name TEXT NOT NULL,
			marks INTEGER NOT NULL CHECK (marks >= 0 AND marks <= 100),
			image_url TEXT NOT NULL,
			image_public_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to create student_results table: %v", err)
		return err
	}
	return nil
}
