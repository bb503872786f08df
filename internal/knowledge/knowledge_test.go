package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T) *Base {
	t.Helper()
	b, err := Default()
	require.NoError(t, err)
	return b
}

func TestLookups(t *testing.T) {
	b := mustLoad(t)

	assert.Equal(t, "火", b.ElementOf("明"))
	assert.Equal(t, "金", b.ElementOf("思"))
	assert.Equal(t, "水", b.ElementOf("源"))
	assert.Empty(t, b.ElementOf("龘"))
	assert.False(t, b.HasElement("龘"))

	n, ok := b.StrokesOf("明")
	require.True(t, ok)
	assert.Equal(t, 8, n)
	_, ok = b.StrokesOf("龘")
	assert.False(t, ok)

	p, ok := b.PinyinOf("思")
	require.True(t, ok)
	assert.Equal(t, "sī", p.Pinyin)
	assert.Equal(t, "si", p.PinyinNoTone)
	assert.Equal(t, 1, p.Tone)
	assert.Equal(t, "s", p.Shengmu)
	assert.Equal(t, "i", p.Yunmu)
}

func TestEveryElementHasCharacters(t *testing.T) {
	b := mustLoad(t)
	for _, e := range []string{"金", "木", "水", "火", "土"} {
		chars := b.CharsWithElement(e)
		assert.NotEmpty(t, chars, "element %s", e)
		for _, c := range chars {
			assert.Equal(t, e, b.ElementOf(c))
		}
	}
}

func TestPoemsContaining(t *testing.T) {
	b := mustLoad(t)

	poems := b.PoemsContaining("思")
	require.NotEmpty(t, poems)

	// 源 appears only in 观书有感.
	poems = b.PoemsContaining("源")
	require.NotEmpty(t, poems)
	assert.Equal(t, "观书有感", poems[0].Title)

	assert.Empty(t, b.PoemsContaining("龘"))
}

func TestTablesAgreeOnCoverage(t *testing.T) {
	b := mustLoad(t)
	for c := range b.elements {
		_, ok := b.StrokesOf(c)
		assert.True(t, ok, "missing strokes for %s", c)
		_, ok = b.PinyinOf(c)
		assert.True(t, ok, "missing pinyin for %s", c)
	}
}
