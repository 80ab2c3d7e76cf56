package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/studygate/partner-bot-go/internal/catalog"
	"github.com/studygate/partner-bot-go/internal/sliceutil"
)

// Seed file schema. Aliases and keywords are plain JSON arrays; the
// repository re-encodes them into the TEXT columns.
type seedUniversity struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	LocalizedName string   `json:"localized_name"`
	City          string   `json:"city"`
	Province      string   `json:"province"`
	Country       string   `json:"country"`
	Aliases       []string `json:"aliases"`
}

type seedMajor struct {
	ID           int64    `json:"id"`
	UniversityID int64    `json:"university_id"`
	Name         string   `json:"name"`
	DegreeLevel  string   `json:"degree_level"`
	Keywords     []string `json:"keywords"`
}

type seedFile struct {
	Universities []seedUniversity `json:"universities"`
	Majors       []seedMajor      `json:"majors"`
}

// ImportSeed loads a catalog seed JSON file into the database. Rows upsert
// by id, so repeated imports are idempotent. Duplicate ids within the file
// keep the first occurrence. Returns the number of universities and majors
// written.
func (db *DB) ImportSeed(ctx context.Context, path string) (int, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return 0, 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	universities := make([]catalog.University, 0, len(seed.Universities))
	for i, u := range seed.Universities {
		if u.ID <= 0 || u.Name == "" {
			slog.WarnContext(ctx, "skipping invalid seed university", "index", i, "id", u.ID)
			continue
		}
		universities = append(universities, catalog.University{
			ID:            u.ID,
			Name:          u.Name,
			LocalizedName: u.LocalizedName,
			City:          u.City,
			Province:      u.Province,
			Country:       u.Country,
			Aliases:       u.Aliases,
		})
	}
	universities = sliceutil.Deduplicate(universities, func(u catalog.University) int64 { return u.ID })

	majors := make([]catalog.Major, 0, len(seed.Majors))
	for i, m := range seed.Majors {
		if m.ID <= 0 || m.UniversityID <= 0 || m.Name == "" {
			slog.WarnContext(ctx, "skipping invalid seed major", "index", i, "id", m.ID)
			continue
		}
		majors = append(majors, catalog.Major{
			ID:           m.ID,
			UniversityID: m.UniversityID,
			Name:         m.Name,
			DegreeLevel:  m.DegreeLevel,
			Keywords:     m.Keywords,
		})
	}
	majors = sliceutil.Deduplicate(majors, func(m catalog.Major) int64 { return m.ID })

	if err := db.SaveUniversitiesBatch(ctx, universities); err != nil {
		return 0, 0, fmt.Errorf("failed to import universities: %w", err)
	}
	if err := db.SaveMajorsBatch(ctx, majors); err != nil {
		return len(universities), 0, fmt.Errorf("failed to import majors: %w", err)
	}

	return len(universities), len(majors), nil
}
