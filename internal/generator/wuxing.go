package generator

import (
	"context"
	"fmt"
	"math/rand"

	"qiming/domain/bazi"
	"qiming/domain/name"
	"qiming/internal/knowledge"
	"qiming/ports"
)

// pairLimit bounds the cross product of the target and helper character
// sets per needed element.
const pairLimit = 8

// Wuxing synthesizes names from the element-partitioned character table,
// favoring pairs linked by the generation cycle.
type Wuxing struct {
	kb *knowledge.Base
	sh *shuffler
}

// NewWuxing builds the element generator. rng may be nil for a
// time-seeded stream.
func NewWuxing(kb *knowledge.Base, rng *rand.Rand) *Wuxing {
	return &Wuxing{kb: kb, sh: newShuffler(rng)}
}

func (g *Wuxing) Source() name.Source { return name.SourceWuxing }

func (g *Wuxing) Generate(_ context.Context, params ports.GenerateParams) ([]name.Candidate, error) {
	needs := params.ElementNeeds
	if len(needs) == 0 {
		return nil, nil
	}
	quota := params.Count
	if quota > 0 {
		quota = (params.Count + len(needs) - 1) / len(needs)
	}

	var all []name.Candidate
	for _, e := range needs {
		all = append(all, g.forElement(e, params.Input, quota)...)
	}

	g.sh.shuffle(all)
	return truncate(all, params.Count), nil
}

func (g *Wuxing) forElement(element string, input name.Input, quota int) []name.Candidate {
	target := filterByGender(g.kb.CharsWithElement(element), input.Gender)
	producer := bazi.Producer(element)
	helper := filterByGender(g.kb.CharsWithElement(producer), input.Gender)

	pairDetail := fmt.Sprintf("五行补%s（%s生%s）", element, producer, element)
	plainDetail := fmt.Sprintf("五行补%s", element)

	var out []name.Candidate
	add := func(first, detail string) {
		out = append(out, name.Candidate{
			FullName:     input.Surname + first,
			FirstName:    first,
			Source:       name.SourceWuxing,
			SourceDetail: detail,
		})
	}

	for i, t := range target {
		if i >= pairLimit {
			break
		}
		for j, h := range helper {
			if j >= pairLimit {
				break
			}
			add(t+h, pairDetail)
			add(h+t, pairDetail)
		}
	}

	if len(out) < quota {
		for i, a := range target {
			if i >= pairLimit {
				break
			}
			for j, b := range target {
				if j >= pairLimit {
					break
				}
				if a == b {
					continue
				}
				add(a+b, plainDetail)
			}
		}
	}

	if len(out) < quota {
		for _, t := range target {
			add(t, plainDetail)
		}
	}

	if fc := input.FixedChar; fc != nil {
		pos := fixedIndex(fc.Position)
		kept := out[:0]
		for _, c := range out {
			if ch, ok := runeAt(c.FirstName, pos); ok && ch == fc.Char {
				kept = append(kept, c)
			}
		}
		out = kept
	}
	return out
}

var (
	_ ports.NameGenerator = (*Wuxing)(nil)
	_ ports.NameGenerator = (*Poetry)(nil)
)
