package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go.
func InitSchema(db *sql.DB) error {
	if err := createUniversitiesTable(db); err != nil {
		return err
	}
	return createMajorsTable(db)
}

func createUniversitiesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS universities (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		localized_name TEXT,
		city TEXT,
		province TEXT,
		country TEXT NOT NULL DEFAULT 'China',
		aliases TEXT NOT NULL DEFAULT '[]',
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_universities_name ON universities(name);
	CREATE INDEX IF NOT EXISTS idx_universities_city ON universities(city, province);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create universities table: %w", err)
	}

	return nil
}

func createMajorsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS majors (
		id INTEGER PRIMARY KEY,
		university_id INTEGER NOT NULL REFERENCES universities(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		degree_level TEXT NOT NULL,
		keywords TEXT NOT NULL DEFAULT '[]',
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_majors_university ON majors(university_id);
	CREATE INDEX IF NOT EXISTS idx_majors_name ON majors(name);
	CREATE INDEX IF NOT EXISTS idx_majors_degree ON majors(degree_level);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create majors table: %w", err)
	}

	return nil
}
