package query

import (
	"context"
	"errors"
	"testing"

	"github.com/studygate/partner-bot-go/internal/catalog"
	domerrors "github.com/studygate/partner-bot-go/internal/errors"
	"github.com/studygate/partner-bot-go/internal/slots"
)

type staticSnapshots struct {
	snap *catalog.Snapshot
	err  error
}

func (s *staticSnapshots) Get(_ context.Context) (*catalog.Snapshot, error) {
	return s.snap, s.err
}

func testBuilder(snap *catalog.Snapshot) *Builder {
	return NewBuilder(&staticSnapshots{snap: snap}, catalog.NewMatcher(catalog.DefaultThresholds), nil)
}

func catalogFixture() *catalog.Snapshot {
	return &catalog.Snapshot{
		Universities: []catalog.University{
			{ID: 1, Name: "Jinan University", City: "Guangzhou", Aliases: []string{"JNU"}},
			{ID: 2, Name: "north china university"},
			{ID: 3, Name: "north china university of technology"},
		},
		Majors: []catalog.Major{
			{ID: 10, UniversityID: 1, Name: "Computer Science and Technology", DegreeLevel: "Bachelor", Keywords: []string{"cs"}},
			{ID: 11, UniversityID: 1, Name: "Pharmacy", DegreeLevel: "Bachelor"},
		},
	}
}

func TestBuildProjectsScalars(t *testing.T) {
	state := slots.New()
	state.Intent = slots.IntentListPrograms
	state.DegreeLevel = slots.DegreeMaster
	state.TeachingLanguage = "English"
	state.IntakeTerm = "September"
	state.IntakeYear = 2027
	state.DurationYears = 2
	state.DurationBound = slots.ConstraintMax
	state.BudgetMax = 25000
	state.City = "Shanghai"
	state.WantsList = true
	state.WantsScholarship = true

	params, err := testBuilder(catalogFixture()).Build(context.Background(), state)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if params.Intent != slots.IntentListPrograms || params.DegreeLevel != slots.DegreeMaster {
		t.Errorf("intent/degree = %v %q", params.Intent, params.DegreeLevel)
	}
	if params.IntakeTerm != "September" || params.IntakeYear != 2027 {
		t.Errorf("intake = %q %d", params.IntakeTerm, params.IntakeYear)
	}
	if params.DurationYears != 2 || params.DurationBound != slots.ConstraintMax {
		t.Errorf("duration = %v %v", params.DurationYears, params.DurationBound)
	}
	if params.BudgetMax != 25000 || params.City != "Shanghai" {
		t.Errorf("budget/city = %v %q", params.BudgetMax, params.City)
	}
	if !params.WantsList || !params.WantsScholarship {
		t.Error("want flags not carried")
	}
	if params.Pagination.Limit != slots.DefaultPageLimit {
		t.Errorf("Pagination = %+v", params.Pagination)
	}
}

func TestBuildResolvesUniversity(t *testing.T) {
	state := slots.New()
	state.UniversityQuery = "jnu"

	params, err := testBuilder(catalogFixture()).Build(context.Background(), state)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if params.UniversityID != 1 || params.UniversityName != "Jinan University" {
		t.Errorf("university = %d %q", params.UniversityID, params.UniversityName)
	}
}

func TestBuildAmbiguousUniversity(t *testing.T) {
	state := slots.New()
	state.UniversityQuery = "north china"

	_, err := testBuilder(catalogFixture()).Build(context.Background(), state)
	if !errors.Is(err, domerrors.ErrAmbiguousMatch) {
		t.Fatalf("err = %v, want ErrAmbiguousMatch", err)
	}

	var ambiguous *AmbiguousUniversityError
	if !errors.As(err, &ambiguous) {
		t.Fatal("expected AmbiguousUniversityError")
	}
	if len(ambiguous.Candidates) == 0 {
		t.Error("candidates empty")
	}
}

func TestBuildUnknownUniversity(t *testing.T) {
	state := slots.New()
	state.UniversityQuery = "hogwarts"

	_, err := testBuilder(catalogFixture()).Build(context.Background(), state)
	if !errors.Is(err, domerrors.ErrNoConfidentMatch) {
		t.Fatalf("err = %v, want ErrNoConfidentMatch", err)
	}
}

func TestBuildResolvesMajors(t *testing.T) {
	state := slots.New()
	state.MajorQuery = "pharmacy"

	params, err := testBuilder(catalogFixture()).Build(context.Background(), state)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(params.MajorIDs) != 1 || params.MajorIDs[0] != 11 {
		t.Errorf("MajorIDs = %v", params.MajorIDs)
	}
	if params.MajorQuery != "" {
		t.Errorf("MajorQuery = %q, want empty once resolved", params.MajorQuery)
	}
}

func TestBuildUnmatchedMajorKeepsText(t *testing.T) {
	state := slots.New()
	state.MajorQuery = "astrobiology"

	params, err := testBuilder(catalogFixture()).Build(context.Background(), state)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(params.MajorIDs) != 0 || params.MajorQuery != "astrobiology" {
		t.Errorf("MajorIDs = %v, MajorQuery = %q", params.MajorIDs, params.MajorQuery)
	}
}

func TestBuildMajorScopedToUniversity(t *testing.T) {
	state := slots.New()
	state.UniversityQuery = "Jinan University"
	state.MajorQuery = "computer science"

	params, err := testBuilder(catalogFixture()).Build(context.Background(), state)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(params.MajorIDs) != 1 || params.MajorIDs[0] != 10 {
		t.Errorf("MajorIDs = %v", params.MajorIDs)
	}
}

func TestBuildSnapshotError(t *testing.T) {
	b := NewBuilder(&staticSnapshots{err: errors.New("db down")}, catalog.NewMatcher(catalog.DefaultThresholds), nil)

	state := slots.New()
	state.UniversityQuery = "Jinan University"

	if _, err := b.Build(context.Background(), state); err == nil {
		t.Error("expected snapshot error to surface")
	}
}

func TestBuildNoMentionsSkipsSnapshot(t *testing.T) {
	// no university or major mention means the snapshot source is never hit
	b := NewBuilder(&staticSnapshots{err: errors.New("db down")}, catalog.NewMatcher(catalog.DefaultThresholds), nil)

	state := slots.New()
	state.Intent = slots.IntentFees
	state.DegreeLevel = slots.DegreeBachelor

	if _, err := b.Build(context.Background(), state); err != nil {
		t.Fatalf("Build without mentions: %v", err)
	}
}
