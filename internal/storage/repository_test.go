package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studygate/partner-bot-go/internal/catalog"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedCatalog(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, db.SaveUniversitiesBatch(ctx, []catalog.University{
		{ID: 1, Name: "Jinan University", LocalizedName: "暨南大学", City: "Guangzhou", Province: "Guangdong", Aliases: []string{"JNU"}},
		{ID: 2, Name: "Zhejiang University", City: "Hangzhou", Province: "Zhejiang"},
	}))

	require.NoError(t, db.SaveMajorsBatch(ctx, []catalog.Major{
		{ID: 10, UniversityID: 1, Name: "Clinical Medicine (MBBS)", DegreeLevel: "Bachelor", Keywords: []string{"mbbs", "medicine"}},
		{ID: 11, UniversityID: 2, Name: "Computer Science and Technology", DegreeLevel: "Master"},
	}))
}

func TestListUniversities(t *testing.T) {
	t.Parallel()
	db := testDB(t)
	seedCatalog(t, db)

	universities, err := db.ListUniversities(context.Background())
	require.NoError(t, err)
	require.Len(t, universities, 2)

	jinan := universities[0]
	assert.Equal(t, "Jinan University", jinan.Name)
	assert.Equal(t, "暨南大学", jinan.LocalizedName)
	assert.Equal(t, []string{"JNU"}, jinan.Aliases)
	assert.Equal(t, "China", jinan.Country, "country should default to China")
}

func TestListMajors(t *testing.T) {
	t.Parallel()
	db := testDB(t)
	seedCatalog(t, db)

	majors, err := db.ListMajors(context.Background())
	require.NoError(t, err)
	require.Len(t, majors, 2)

	mbbs := majors[0]
	assert.Equal(t, int64(1), mbbs.UniversityID)
	assert.Equal(t, "Bachelor", mbbs.DegreeLevel)
	assert.Len(t, mbbs.Keywords, 2)
	assert.Nil(t, majors[1].Keywords, "empty keywords should decode to nil")
}

func TestSaveUniversitiesBatchUpsert(t *testing.T) {
	t.Parallel()
	db := testDB(t)
	seedCatalog(t, db)

	ctx := context.Background()
	require.NoError(t, db.SaveUniversitiesBatch(ctx, []catalog.University{
		{ID: 1, Name: "Jinan University", City: "Guangzhou", Aliases: []string{"JNU", "Ji'nan"}},
	}))

	universities, err := db.ListUniversities(ctx)
	require.NoError(t, err)
	require.Len(t, universities, 2, "upsert must not add rows")
	assert.Len(t, universities[0].Aliases, 2)
}

func TestSaveBatchEmptyInput(t *testing.T) {
	t.Parallel()
	db := testDB(t)

	assert.NoError(t, db.SaveUniversitiesBatch(context.Background(), nil))
	assert.NoError(t, db.SaveMajorsBatch(context.Background(), nil))
}

func TestCountUniversities(t *testing.T) {
	t.Parallel()
	db := testDB(t)

	count, err := db.CountUniversities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	seedCatalog(t, db)
	count, err = db.CountUniversities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListEmptyCatalog(t *testing.T) {
	t.Parallel()
	db := testDB(t)

	universities, err := db.ListUniversities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, universities)
}
