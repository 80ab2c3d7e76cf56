// This file contains the builder that resolves catalog mentions into Params.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/studygate/partner-bot-go/internal/catalog"
	domerrors "github.com/studygate/partner-bot-go/internal/errors"
	"github.com/studygate/partner-bot-go/internal/metrics"
	"github.com/studygate/partner-bot-go/internal/slots"
)

// SnapshotSource serves catalog snapshots for mention resolution.
type SnapshotSource interface {
	Get(ctx context.Context) (*catalog.Snapshot, error)
}

// Builder turns a routed state into query parameters, resolving university
// and major mentions against the catalog snapshot.
type Builder struct {
	snapshots SnapshotSource
	matcher   *catalog.Matcher
	metrics   *metrics.Metrics
}

// NewBuilder creates a params builder. m may be nil to disable metrics.
func NewBuilder(snapshots SnapshotSource, matcher *catalog.Matcher, m *metrics.Metrics) *Builder {
	return &Builder{
		snapshots: snapshots,
		matcher:   matcher,
		metrics:   m,
	}
}

// AmbiguousUniversityError reports several close university candidates.
// The caller should offer the candidates and ask the user to pick one.
type AmbiguousUniversityError struct {
	Query      string
	Candidates []string
}

func (e *AmbiguousUniversityError) Error() string {
	return fmt.Sprintf("university %q is ambiguous between: %s", e.Query, strings.Join(e.Candidates, ", "))
}

// Unwrap lets errors.Is see through to the sentinel.
func (e *AmbiguousUniversityError) Unwrap() error {
	return domerrors.ErrAmbiguousMatch
}

// UnknownUniversityError reports a university mention with no catalog match.
type UnknownUniversityError struct {
	Query string
}

func (e *UnknownUniversityError) Error() string {
	return fmt.Sprintf("no university in the catalog matches %q", e.Query)
}

// Unwrap lets errors.Is see through to the sentinel.
func (e *UnknownUniversityError) Unwrap() error {
	return domerrors.ErrNoConfidentMatch
}

// Build projects the state into Params and resolves its catalog mentions.
// A confidently matched university pins UniversityID; ambiguous or unknown
// university mentions are errors since every downstream filter depends on
// the institution. Major mentions degrade to free text when unmatched.
func (b *Builder) Build(ctx context.Context, state *slots.QueryState) (*Params, error) {
	params := project(state)

	var snap *catalog.Snapshot
	if state.UniversityQuery != "" || state.MajorQuery != "" {
		var err error
		snap, err = b.snapshots.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog snapshot: %w", err)
		}
	}

	if state.UniversityQuery != "" {
		if err := b.resolveUniversity(state.UniversityQuery, snap, params); err != nil {
			return nil, err
		}
	}

	if state.MajorQuery != "" {
		b.resolveMajors(state.MajorQuery, snap, params)
	}

	return params, nil
}

func (b *Builder) resolveUniversity(mention string, snap *catalog.Snapshot, params *Params) error {
	result := b.matcher.MatchUniversity(mention, snap)
	b.metrics.RecordCatalogMatch("university", string(result.Outcome))

	switch result.Outcome {
	case catalog.OutcomeConfident:
		params.UniversityID = result.Best.ID
		params.UniversityName = result.Best.Name
		return nil
	case catalog.OutcomeAmbiguous:
		names := make([]string, 0, len(result.Candidates))
		for _, c := range result.Candidates {
			names = append(names, c.University.Name)
		}
		return &AmbiguousUniversityError{Query: mention, Candidates: names}
	default:
		return &UnknownUniversityError{Query: mention}
	}
}

func (b *Builder) resolveMajors(mention string, snap *catalog.Snapshot, params *Params) {
	result := b.matcher.MatchMajors(mention, snap, params.UniversityID, params.DegreeLevel)
	b.metrics.RecordCatalogMatch("major", string(result.Outcome))

	if result.Outcome == catalog.OutcomeNone {
		// Unmatched majors stay as free text so the query layer can fall
		// back to its own search.
		params.MajorQuery = mention
		return
	}
	params.MajorIDs = result.IDs()
}
