package app

import (
	"context"
	"sort"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"qiming/domain/bazi"
	"qiming/domain/history"
	"qiming/domain/name"
	"qiming/internal/errors"
	"qiming/internal/knowledge"
	"qiming/internal/logging"
	"qiming/internal/scoring"
	"qiming/ports"
)

// NamingService orchestrates generation: it validates the request, derives
// element needs, fans out to the selected generators, scores everything,
// and persists the batch best-effort.
type NamingService struct {
	generators map[name.Source]ports.NameGenerator
	scorer     *scoring.Scorer
	names      ports.NameRepository
	logger     *logging.Logger
}

// NewNamingService wires the orchestrator. names may be nil when no store
// is configured; generation then simply skips persistence.
func NewNamingService(generators []ports.NameGenerator, scorer *scoring.Scorer, names ports.NameRepository, logger *logging.Logger) *NamingService {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	bySource := make(map[name.Source]ports.NameGenerator, len(generators))
	for _, g := range generators {
		bySource[g.Source()] = g
	}
	return &NamingService{
		generators: bySource,
		scorer:     scorer,
		names:      names,
		logger:     logger,
	}
}

// Generate runs one naming request and returns scored candidates ordered
// by total descending.
func (s *NamingService) Generate(ctx context.Context, id history.Identity, input name.Input) ([]name.Candidate, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Count == 0 {
		return []name.Candidate{}, nil
	}

	sources := name.ExpandSources(input.Sources)
	perSource := (input.Count + len(sources) - 1) / len(sources)

	baziNeeds, preferenceNeeds := s.deriveNeeds(input)

	// Fan out. A failing generator is logged and skipped; only a total
	// wipeout is an error.
	results := make([][]name.Candidate, len(sources))
	failures := make([]error, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		gen, ok := s.generators[src]
		if !ok {
			failures[i] = errors.ValidationError("unsupported source: " + string(src))
			continue
		}
		params := ports.GenerateParams{
			Input:        input,
			ElementNeeds: s.needsForSource(src, baziNeeds, preferenceNeeds),
			Count:        perSource,
		}
		wg.Add(1)
		go func(i int, gen ports.NameGenerator) {
			defer wg.Done()
			cands, err := gen.Generate(ctx, params)
			if err != nil {
				failures[i] = err
				return
			}
			results[i] = cands
		}(i, gen)
	}
	wg.Wait()

	var candidates []name.Candidate
	for i, cands := range results {
		if failures[i] != nil {
			s.logger.Warn("generator %s failed: %v", sources[i], failures[i])
			continue
		}
		if len(cands) > perSource {
			cands = cands[:perSource]
		}
		candidates = append(candidates, cands...)
	}
	if len(candidates) == 0 {
		for _, err := range failures {
			if err != nil {
				return nil, err
			}
		}
		return []name.Candidate{}, nil
	}

	if err := s.scoreAll(ctx, input, candidates); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	s.persist(ctx, id, input, candidates)
	return candidates, nil
}

func validateInput(input name.Input) error {
	surnameLen := utf8.RuneCountInString(input.Surname)
	if surnameLen == 0 || surnameLen > 2 {
		return errors.ValidationError("姓氏必须为1-2个汉字")
	}
	if len(input.Preferences) == 0 {
		return errors.ValidationError("请至少选择一个偏好")
	}
	if len(input.Sources) == 0 {
		return errors.ValidationError("请至少选择一个名字来源")
	}
	if input.Count < 0 {
		return errors.ValidationError("数量无效")
	}
	if fc := input.FixedChar; fc != nil {
		if utf8.RuneCountInString(fc.Char) != 1 {
			return errors.ValidationError("固定字必须为单个汉字")
		}
		if fc.Position != name.PositionFirst && fc.Position != name.PositionSecond {
			return errors.ValidationError("固定字位置无效")
		}
	}
	return nil
}

// deriveNeeds returns the bazi-derived needs (nil when no birth instant or
// on conversion failure) and the preference-derived fallback.
func (s *NamingService) deriveNeeds(input name.Input) ([]string, []string) {
	preferenceNeeds := knowledge.ElementsForPreferences(input.Preferences)
	if input.BirthDate == nil {
		return nil, preferenceNeeds
	}
	report, err := bazi.Calculate(*input.BirthDate)
	if err != nil {
		s.logger.Warn("bazi conversion failed, falling back to preference needs: %v", err)
		return nil, preferenceNeeds
	}
	return report.Needs, preferenceNeeds
}

// needsForSource decides which element needs each generator sees. The
// element generator always needs a non-empty set; the poetry generator
// only filters when a birth chart produced real needs; the LLM works from
// the prompt alone.
func (s *NamingService) needsForSource(src name.Source, baziNeeds, preferenceNeeds []string) []string {
	switch src {
	case name.SourceWuxing:
		if len(baziNeeds) > 0 {
			return baziNeeds
		}
		return preferenceNeeds
	case name.SourcePoetry:
		return baziNeeds
	default:
		return nil
	}
}

func (s *NamingService) scoreAll(ctx context.Context, input name.Input, candidates []name.Candidate) error {
	g, _ := errgroup.WithContext(ctx)
	for i := range candidates {
		g.Go(func() error {
			c := &candidates[i]
			result := s.scorer.Score(c.FullName, c.FirstName, input.Preferences)
			c.Score = result.Total
			c.ScoreDetail = result
			return nil
		})
	}
	return g.Wait()
}

// persist writes the batch when an owner is known. Failures are logged
// and dropped; the response never depends on the write.
func (s *NamingService) persist(ctx context.Context, id history.Identity, input name.Input, candidates []name.Candidate) {
	if s.names == nil || id.Empty() || len(candidates) == 0 {
		return
	}
	records := make([]*history.Record, 0, len(candidates))
	for _, c := range candidates {
		rec, err := history.NewRecord(id, input, c)
		if err != nil {
			s.logger.Warn("skipping unpersistable candidate %s: %v", c.FullName, err)
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return
	}
	if err := s.names.InsertBatch(ctx, records); err != nil {
		s.logger.Error("persisting generated names failed: %v", err)
	}
}
