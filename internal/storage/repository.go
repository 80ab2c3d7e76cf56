package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/studygate/partner-bot-go/internal/catalog"
)

// slowQueryThreshold is the duration above which an operation is logged.
const slowQueryThreshold = 100 * time.Millisecond

// ListUniversities returns all catalog universities.
func (db *DB) ListUniversities(ctx context.Context) ([]catalog.University, error) {
	query := `
		SELECT id, name, COALESCE(localized_name, ''), COALESCE(city, ''),
		       COALESCE(province, ''), country, aliases
		FROM universities
		ORDER BY id
	`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list universities", "error", err)
		return nil, fmt.Errorf("failed to list universities: %w", err)
	}
	defer rows.Close()

	var universities []catalog.University
	for rows.Next() {
		var uni catalog.University
		var aliases string
		if err := rows.Scan(&uni.ID, &uni.Name, &uni.LocalizedName, &uni.City,
			&uni.Province, &uni.Country, &aliases); err != nil {
			return nil, fmt.Errorf("failed to scan university: %w", err)
		}
		uni.Aliases = decodeStringList(ctx, aliases, "university", uni.ID)
		universities = append(universities, uni)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate universities: %w", err)
	}

	logSlowQuery(ctx, "ListUniversities", start)
	return universities, nil
}

// ListMajors returns all catalog majors.
func (db *DB) ListMajors(ctx context.Context) ([]catalog.Major, error) {
	query := `
		SELECT id, university_id, name, degree_level, keywords
		FROM majors
		ORDER BY id
	`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list majors", "error", err)
		return nil, fmt.Errorf("failed to list majors: %w", err)
	}
	defer rows.Close()

	var majors []catalog.Major
	for rows.Next() {
		var major catalog.Major
		var keywords string
		if err := rows.Scan(&major.ID, &major.UniversityID, &major.Name,
			&major.DegreeLevel, &keywords); err != nil {
			return nil, fmt.Errorf("failed to scan major: %w", err)
		}
		major.Keywords = decodeStringList(ctx, keywords, "major", major.ID)
		majors = append(majors, major)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate majors: %w", err)
	}

	logSlowQuery(ctx, "ListMajors", start)
	return majors, nil
}

// SaveUniversitiesBatch inserts or updates universities in one transaction.
// Used by catalog imports.
func (db *DB) SaveUniversitiesBatch(ctx context.Context, universities []catalog.University) error {
	if len(universities) == 0 {
		return nil
	}

	query := `
		INSERT INTO universities (id, name, localized_name, city, province, country, aliases, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			localized_name = excluded.localized_name,
			city = excluded.city,
			province = excluded.province,
			country = excluded.country,
			aliases = excluded.aliases,
			updated_at = excluded.updated_at
	`

	start := time.Now()
	updatedAt := time.Now().Unix()
	err := db.execBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, uni := range universities {
			aliases, err := json.Marshal(emptyIfNil(uni.Aliases))
			if err != nil {
				return fmt.Errorf("failed to encode aliases for university %d: %w", uni.ID, err)
			}
			country := uni.Country
			if country == "" {
				country = "China"
			}
			if _, err := stmt.ExecContext(ctx, uni.ID, uni.Name, uni.LocalizedName,
				uni.City, uni.Province, country, string(aliases), updatedAt); err != nil {
				return fmt.Errorf("failed to save university %d: %w", uni.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logSlowQuery(ctx, "SaveUniversitiesBatch", start)
	return nil
}

// SaveMajorsBatch inserts or updates majors in one transaction.
func (db *DB) SaveMajorsBatch(ctx context.Context, majors []catalog.Major) error {
	if len(majors) == 0 {
		return nil
	}

	query := `
		INSERT INTO majors (id, university_id, name, degree_level, keywords, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			university_id = excluded.university_id,
			name = excluded.name,
			degree_level = excluded.degree_level,
			keywords = excluded.keywords,
			updated_at = excluded.updated_at
	`

	start := time.Now()
	updatedAt := time.Now().Unix()
	err := db.execBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, major := range majors {
			keywords, err := json.Marshal(emptyIfNil(major.Keywords))
			if err != nil {
				return fmt.Errorf("failed to encode keywords for major %d: %w", major.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, major.ID, major.UniversityID, major.Name,
				major.DegreeLevel, string(keywords), updatedAt); err != nil {
				return fmt.Errorf("failed to save major %d: %w", major.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logSlowQuery(ctx, "SaveMajorsBatch", start)
	return nil
}

// CountUniversities returns the number of stored universities.
func (db *DB) CountUniversities(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM universities").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count universities: %w", err)
	}
	return count, nil
}

// execBatch runs fn against a prepared statement inside one transaction.
func (db *DB) execBatch(ctx context.Context, query string, fn func(stmt *sql.Stmt) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	if err := fn(stmt); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// decodeStringList parses a JSON string array column. A corrupt value is
// logged and treated as empty rather than failing the whole listing.
func decodeStringList(ctx context.Context, raw, entity string, id int64) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		slog.WarnContext(ctx, "corrupt string list column",
			"entity", entity,
			"id", id,
			"error", err)
		return nil
	}
	return list
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func logSlowQuery(ctx context.Context, operation string, start time.Time) {
	if duration := time.Since(start); duration > slowQueryThreshold {
		slog.WarnContext(ctx, "slow database operation",
			"operation", operation,
			"duration_ms", duration.Milliseconds())
	}
}
