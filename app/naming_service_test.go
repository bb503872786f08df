package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qiming/domain/history"
	"qiming/domain/name"
	"qiming/internal/errors"
	"qiming/internal/knowledge"
	"qiming/internal/scoring"
	"qiming/ports"
)

// stubGenerator returns canned candidates or a canned error.
type stubGenerator struct {
	source name.Source
	names  []string
	err    error

	lastParams ports.GenerateParams
}

func (g *stubGenerator) Source() name.Source { return g.source }

func (g *stubGenerator) Generate(_ context.Context, params ports.GenerateParams) ([]name.Candidate, error) {
	g.lastParams = params
	if g.err != nil {
		return nil, g.err
	}
	out := make([]name.Candidate, 0, len(g.names))
	for _, n := range g.names {
		out = append(out, name.Candidate{
			FullName:  params.Input.Surname + n,
			FirstName: n,
			Source:    g.source,
		})
	}
	return out, nil
}

// memNameRepo records inserts and can be told to fail.
type memNameRepo struct {
	inserted  []*history.Record
	insertErr error
}

func (r *memNameRepo) Insert(_ context.Context, rec *history.Record) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, rec)
	return nil
}

func (r *memNameRepo) InsertBatch(_ context.Context, recs []*history.Record) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, recs...)
	return nil
}

func (r *memNameRepo) List(context.Context, history.Identity, history.ListOptions) ([]history.Record, int, error) {
	return nil, 0, nil
}

func (r *memNameRepo) ToggleFavorite(context.Context, int64, history.Identity) (bool, error) {
	return false, nil
}

func (r *memNameRepo) Annotate(context.Context, int64, string, history.Identity) error {
	return nil
}

func (r *memNameRepo) Delete(context.Context, int64, history.Identity) error { return nil }

func (r *memNameRepo) Stats(context.Context, history.Identity) (*history.Stats, error) {
	return &history.Stats{}, nil
}

func (r *memNameRepo) Migrate(context.Context, string, int64) (int64, error) { return 0, nil }

func testScorer(t *testing.T) *scoring.Scorer {
	t.Helper()
	kb, err := knowledge.Default()
	require.NoError(t, err)
	return scoring.NewScorer(kb)
}

func validInput() name.Input {
	return name.Input{
		Surname:     "李",
		Gender:      name.GenderNeutral,
		Preferences: []string{"聪明智慧"},
		Sources:     []name.Source{name.SourcePoetry},
		Count:       4,
	}
}

func TestGenerateValidation(t *testing.T) {
	svc := NewNamingService(nil, testScorer(t), nil, nil)
	id := history.Identity{SessionID: "s1"}

	tests := []struct {
		name   string
		mutate func(*name.Input)
	}{
		{"empty surname", func(in *name.Input) { in.Surname = "" }},
		{"surname too long", func(in *name.Input) { in.Surname = "欧阳王" }},
		{"no preferences", func(in *name.Input) { in.Preferences = nil }},
		{"no sources", func(in *name.Input) { in.Sources = nil }},
		{"negative count", func(in *name.Input) { in.Count = -1 }},
		{"multi-rune fixed char", func(in *name.Input) {
			in.FixedChar = &name.FixedChar{Char: "思源", Position: name.PositionFirst}
		}},
		{"bad fixed position", func(in *name.Input) {
			in.FixedChar = &name.FixedChar{Char: "思", Position: "middle"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := svc.Generate(context.Background(), id, input)
			require.Error(t, err)
			assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
		})
	}
}

func TestGenerateZeroCountReturnsEmpty(t *testing.T) {
	repo := &memNameRepo{}
	gen := &stubGenerator{source: name.SourcePoetry, names: []string{"思源"}}
	svc := NewNamingService([]ports.NameGenerator{gen}, testScorer(t), repo, nil)

	input := validInput()
	input.Count = 0
	cands, err := svc.Generate(context.Background(), history.Identity{SessionID: "s1"}, input)
	require.NoError(t, err)
	assert.Empty(t, cands)
	assert.Empty(t, repo.inserted)
}

func TestGenerateScoresAndSortsDescending(t *testing.T) {
	gen := &stubGenerator{source: name.SourcePoetry, names: []string{"龘龘", "思源", "明月"}}
	svc := NewNamingService([]ports.NameGenerator{gen}, testScorer(t), nil, nil)

	input := validInput()
	cands, err := svc.Generate(context.Background(), history.Identity{SessionID: "s1"}, input)
	require.NoError(t, err)
	require.Len(t, cands, 3)

	for i := range cands {
		require.NotNil(t, cands[i].ScoreDetail)
		assert.Equal(t, cands[i].ScoreDetail.Total, cands[i].Score)
		if i > 0 {
			assert.GreaterOrEqual(t, cands[i-1].Score, cands[i].Score)
		}
	}
}

func TestGenerateSplitsQuotaAcrossSources(t *testing.T) {
	poetry := &stubGenerator{source: name.SourcePoetry, names: []string{"思源", "明月", "浩宇", "婉雅"}}
	wuxing := &stubGenerator{source: name.SourceWuxing, names: []string{"金水", "水木"}}
	svc := NewNamingService([]ports.NameGenerator{poetry, wuxing}, testScorer(t), nil, nil)

	input := validInput()
	input.Sources = []name.Source{name.SourcePoetry, name.SourceWuxing}
	input.Count = 4

	cands, err := svc.Generate(context.Background(), history.Identity{SessionID: "s1"}, input)
	require.NoError(t, err)

	// ceil(4/2) = 2 per source; the poetry surplus is trimmed.
	assert.Len(t, cands, 4)
	assert.Equal(t, 2, poetry.lastParams.Count)
	assert.Equal(t, 2, wuxing.lastParams.Count)
}

func TestGenerateToleratesPartialFailure(t *testing.T) {
	poetry := &stubGenerator{source: name.SourcePoetry, names: []string{"思源"}}
	wuxing := &stubGenerator{source: name.SourceWuxing, err: fmt.Errorf("boom")}
	svc := NewNamingService([]ports.NameGenerator{poetry, wuxing}, testScorer(t), nil, nil)

	input := validInput()
	input.Sources = []name.Source{name.SourcePoetry, name.SourceWuxing}

	cands, err := svc.Generate(context.Background(), history.Identity{SessionID: "s1"}, input)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "思源", cands[0].FirstName)
}

func TestGenerateFailsWhenAllGeneratorsFail(t *testing.T) {
	wuxing := &stubGenerator{source: name.SourceWuxing, err: fmt.Errorf("boom")}
	svc := NewNamingService([]ports.NameGenerator{wuxing}, testScorer(t), nil, nil)

	input := validInput()
	input.Sources = []name.Source{name.SourceWuxing}
	_, err := svc.Generate(context.Background(), history.Identity{SessionID: "s1"}, input)
	require.Error(t, err)
}

func TestGenerateUnknownSourceIsAFailure(t *testing.T) {
	svc := NewNamingService(nil, testScorer(t), nil, nil)

	input := validInput()
	input.Sources = []name.Source{name.SourceAI}
	_, err := svc.Generate(context.Background(), history.Identity{SessionID: "s1"}, input)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestGeneratePersistsBatch(t *testing.T) {
	repo := &memNameRepo{}
	gen := &stubGenerator{source: name.SourcePoetry, names: []string{"思源", "明月"}}
	svc := NewNamingService([]ports.NameGenerator{gen}, testScorer(t), repo, nil)

	id := history.Identity{SessionID: "s1"}
	cands, err := svc.Generate(context.Background(), id, validInput())
	require.NoError(t, err)
	require.Len(t, repo.inserted, len(cands))

	for _, rec := range repo.inserted {
		assert.Equal(t, "s1", rec.SessionID)
		assert.Equal(t, "李", rec.Surname)
		assert.NotEmpty(t, rec.ScoreBreakdown)
		assert.NotZero(t, rec.ScoreTotal)
	}
}

func TestGenerateSurvivesPersistFailure(t *testing.T) {
	repo := &memNameRepo{insertErr: fmt.Errorf("disk full")}
	gen := &stubGenerator{source: name.SourcePoetry, names: []string{"思源"}}
	svc := NewNamingService([]ports.NameGenerator{gen}, testScorer(t), repo, nil)

	cands, err := svc.Generate(context.Background(), history.Identity{SessionID: "s1"}, validInput())
	require.NoError(t, err)
	assert.Len(t, cands, 1)
}

func TestGenerateSkipsPersistWithoutIdentity(t *testing.T) {
	repo := &memNameRepo{}
	gen := &stubGenerator{source: name.SourcePoetry, names: []string{"思源"}}
	svc := NewNamingService([]ports.NameGenerator{gen}, testScorer(t), repo, nil)

	_, err := svc.Generate(context.Background(), history.Identity{}, validInput())
	require.NoError(t, err)
	assert.Empty(t, repo.inserted)
}

func TestGenerateNeedsRouting(t *testing.T) {
	poetry := &stubGenerator{source: name.SourcePoetry, names: []string{"思源"}}
	wuxing := &stubGenerator{source: name.SourceWuxing, names: []string{"源泽"}}
	svc := NewNamingService([]ports.NameGenerator{poetry, wuxing}, testScorer(t), nil, nil)

	// Without a birth date the element generator falls back to the
	// preference-derived needs and the poetry generator gets none.
	input := validInput()
	input.Sources = []name.Source{name.SourcePoetry, name.SourceWuxing}
	_, err := svc.Generate(context.Background(), history.Identity{SessionID: "s1"}, input)
	require.NoError(t, err)

	assert.Empty(t, poetry.lastParams.ElementNeeds)
	assert.Equal(t, []string{"水"}, wuxing.lastParams.ElementNeeds)
}
