package generator

import (
	"context"
	"fmt"
	"math/rand"

	"qiming/domain/name"
	"qiming/internal/knowledge"
	"qiming/ports"
)

// Poetry mines given names from the fragment index.
type Poetry struct {
	kb *knowledge.Base
	sh *shuffler
}

// NewPoetry builds the poetry generator. rng may be nil for a time-seeded
// stream.
func NewPoetry(kb *knowledge.Base, rng *rand.Rand) *Poetry {
	return &Poetry{kb: kb, sh: newShuffler(rng)}
}

func (g *Poetry) Source() name.Source { return name.SourcePoetry }

// Generate selects fragments and dresses them up as candidates. With a
// fixed character only two-character fragments pinning that character are
// considered and the element filter is skipped; otherwise every character
// of a fragment must carry a needed element. Gender is accepted but not
// used here.
func (g *Poetry) Generate(_ context.Context, params ports.GenerateParams) ([]name.Candidate, error) {
	idx := g.kb.Fragments()

	var fragments []knowledge.Fragment
	if fc := params.Input.FixedChar; fc != nil {
		pos := fixedIndex(fc.Position)
		fragments = idx.Filter(func(f knowledge.Fragment) bool {
			if f.Kind != knowledge.KindConsecutive2 {
				return false
			}
			c, ok := runeAt(f.Chars, pos)
			return ok && c == fc.Char
		})
	} else if len(params.ElementNeeds) > 0 {
		needed := make(map[string]bool, len(params.ElementNeeds))
		for _, e := range params.ElementNeeds {
			needed[e] = true
		}
		fragments = idx.Filter(func(f knowledge.Fragment) bool {
			for _, r := range f.Chars {
				if !needed[g.kb.ElementOf(string(r))] {
					return false
				}
			}
			return true
		})
	} else {
		fragments = idx.All()
	}

	cands := make([]name.Candidate, 0, len(fragments))
	for _, f := range fragments {
		cands = append(cands, name.Candidate{
			FullName:     params.Input.Surname + f.Chars,
			FirstName:    f.Chars,
			Source:       name.SourcePoetry,
			SourceDetail: fmt.Sprintf("《%s》%s：%s", f.Title, f.Author, f.Excerpt),
		})
	}

	g.sh.shuffle(cands)
	return truncate(cands, params.Count), nil
}
