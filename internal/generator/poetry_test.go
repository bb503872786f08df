package generator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qiming/domain/name"
	"qiming/internal/knowledge"
	"qiming/ports"
)

func testBase(t *testing.T) *knowledge.Base {
	t.Helper()
	kb, err := knowledge.Default()
	require.NoError(t, err)
	return kb
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestPoetryGenerateRespectsElementNeeds(t *testing.T) {
	kb := testBase(t)
	g := NewPoetry(kb, seeded())

	cands, err := g.Generate(context.Background(), ports.GenerateParams{
		Input:        name.Input{Surname: "李"},
		ElementNeeds: []string{"水", "木"},
		Count:        50,
	})
	require.NoError(t, err)
	require.NotEmpty(t, cands)

	allowed := map[string]bool{"水": true, "木": true}
	for _, c := range cands {
		assert.Equal(t, name.SourcePoetry, c.Source)
		assert.Equal(t, "李"+c.FirstName, c.FullName)
		assert.NotEmpty(t, c.SourceDetail)
		for _, r := range c.FirstName {
			assert.True(t, allowed[kb.ElementOf(string(r))],
				"candidate %s carries element %s", c.FirstName, kb.ElementOf(string(r)))
		}
	}
}

func TestPoetryGenerateFixedCharacter(t *testing.T) {
	kb := testBase(t)
	g := NewPoetry(kb, seeded())

	cands, err := g.Generate(context.Background(), ports.GenerateParams{
		Input: name.Input{
			Surname:   "王",
			FixedChar: &name.FixedChar{Char: "明", Position: name.PositionFirst},
		},
		// The fixed character overrides element filtering entirely.
		ElementNeeds: []string{"土"},
		Count:        20,
	})
	require.NoError(t, err)
	require.NotEmpty(t, cands)

	for _, c := range cands {
		runes := []rune(c.FirstName)
		require.Len(t, runes, 2)
		assert.Equal(t, "明", string(runes[0]))
	}
}

func TestPoetryGenerateFixedSecondPosition(t *testing.T) {
	kb := testBase(t)
	g := NewPoetry(kb, seeded())

	cands, err := g.Generate(context.Background(), ports.GenerateParams{
		Input: name.Input{
			Surname:   "王",
			FixedChar: &name.FixedChar{Char: "月", Position: name.PositionSecond},
		},
		Count: 20,
	})
	require.NoError(t, err)
	require.NotEmpty(t, cands)

	for _, c := range cands {
		runes := []rune(c.FirstName)
		require.Len(t, runes, 2)
		assert.Equal(t, "月", string(runes[1]))
	}
}

func TestPoetryGenerateTruncatesToCount(t *testing.T) {
	g := NewPoetry(testBase(t), seeded())

	cands, err := g.Generate(context.Background(), ports.GenerateParams{
		Input: name.Input{Surname: "赵"},
		Count: 3,
	})
	require.NoError(t, err)
	assert.Len(t, cands, 3)
}

func TestPoetrySourceDetailNamesThePoem(t *testing.T) {
	g := NewPoetry(testBase(t), seeded())

	cands, err := g.Generate(context.Background(), ports.GenerateParams{
		Input: name.Input{
			Surname:   "李",
			FixedChar: &name.FixedChar{Char: "明", Position: name.PositionFirst},
		},
		Count: 1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	assert.Contains(t, cands[0].SourceDetail, "《")
	assert.Contains(t, cands[0].SourceDetail, "》")
}
