package ports

import (
	"context"

	"qiming/domain/name"
)

// GenerateParams is the resolved per-generator request: the raw input plus
// the element needs derived by the orchestrator and the quota for this
// generator.
type GenerateParams struct {
	Input        name.Input
	ElementNeeds []string
	Count        int
}

// NameGenerator produces unscored candidates from one source.
type NameGenerator interface {
	Source() name.Source
	Generate(ctx context.Context, params GenerateParams) ([]name.Candidate, error)
}
