package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qiming/domain/name"
	"qiming/internal/knowledge"
)

func testBase(t *testing.T) *knowledge.Base {
	t.Helper()
	kb, err := knowledge.Default()
	require.NoError(t, err)
	return kb
}

func TestScoreLiSiyuan(t *testing.T) {
	scorer := NewScorer(testBase(t))
	result := scorer.Score("李思源", "思源", []string{"聪明智慧", "文雅诗意"})

	// 思(金) 源(水): two distinct elements with 金生水, the full 25.
	assert.Equal(t, 25, result.Breakdown.Wuxing.Score)
	// Tones 3-1-2 form 仄平平; finals i/i/uan repeat once.
	assert.Equal(t, 22, result.Breakdown.Yinlu.Score)
	assert.Equal(t, "perfect", result.Breakdown.Yinlu.Details.TonePattern)
	// 22 total strokes is not a lucky number; both characters moderate.
	assert.Equal(t, 16, result.Breakdown.Zixing.Score)
	// Both characters have a poetry source; one of two preferences matches.
	assert.Equal(t, 26, result.Breakdown.Yuyi.Score)

	assert.Equal(t, 89, result.Total)
	assert.Equal(t, "A", result.Grade)
	assert.Equal(t, []string{"这是一个非常好的名字，各方面都很出色！"}, result.Suggestions)
}

func TestScoreAxisBounds(t *testing.T) {
	scorer := NewScorer(testBase(t))
	names := []struct {
		full, first string
	}{
		{"李思源", "思源"},
		{"王浩宇", "浩宇"},
		{"张明", "明"},
		{"刘婉雅", "婉雅"},
	}
	for _, n := range names {
		r := scorer.Score(n.full, n.first, []string{"聪明智慧"})
		assert.LessOrEqual(t, r.Breakdown.Wuxing.Score, 25, n.full)
		assert.LessOrEqual(t, r.Breakdown.Yinlu.Score, 25, n.full)
		assert.LessOrEqual(t, r.Breakdown.Zixing.Score, 20, n.full)
		assert.LessOrEqual(t, r.Breakdown.Yuyi.Score, 30, n.full)
		assert.Equal(t, r.Breakdown.Wuxing.Score+r.Breakdown.Yinlu.Score+
			r.Breakdown.Zixing.Score+r.Breakdown.Yuyi.Score, r.Total, n.full)
		assert.NotEmpty(t, r.Suggestions)
	}
}

func TestScoreDegradesOnUnknownCharacters(t *testing.T) {
	scorer := NewScorer(testBase(t))
	r := scorer.Score("李龘龘", "龘龘", nil)

	assert.Equal(t, 15, r.Breakdown.Wuxing.Score)
	assert.Contains(t, r.Breakdown.Wuxing.Reason, "缺少五行数据")
	assert.Equal(t, 15, r.Breakdown.Yinlu.Score)
	assert.Equal(t, 12, r.Breakdown.Zixing.Score)
	// Meaning never degrades: no poetry hit plus no preferences.
	assert.Equal(t, 13, r.Breakdown.Yuyi.Score)
}

func TestScoreSingleCharacterName(t *testing.T) {
	scorer := NewScorer(testBase(t))
	r := scorer.Score("张明", "明", nil)

	// A single character can never be element-diverse.
	assert.Equal(t, 13, r.Breakdown.Wuxing.Score)
	assert.Contains(t, r.Breakdown.Wuxing.Reason, "单字名")
}

func TestSuggestionsFlagWeakAxes(t *testing.T) {
	weak := suggestions(
		axis(10), axis(10), axis(8), axis(12),
	)
	assert.Len(t, weak, 4)

	strong := suggestions(axis(25), axis(25), axis(20), axis(30))
	assert.Equal(t, []string{"这是一个非常好的名字，各方面都很出色！"}, strong)
}

func TestTonePattern(t *testing.T) {
	tests := []struct {
		tones []int
		want  string
	}{
		{[]int{1, 3, 4}, "perfect"}, // PZZ
		{[]int{3, 1, 2}, "perfect"}, // ZPP
		{[]int{1, 2, 4}, "perfect"}, // PPZ
		{[]int{3, 4, 1}, "perfect"}, // ZZP
		{[]int{1, 4, 2}, "good"},    // PZP, differing ends
		{[]int{2, 3, 2}, "normal"},
		{[]int{1, 3}, "good"},
		{[]int{2, 2}, "normal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tonePattern(tt.tones), "tones %v", tt.tones)
	}
}

func TestRimeVariety(t *testing.T) {
	assert.Equal(t, 2, rimeVariety([]string{"an", "an", "an"}))
	assert.Equal(t, 10, rimeVariety([]string{"i", "an", "ou"}))
	assert.Equal(t, 7, rimeVariety([]string{"i", "i", "an"}))
	assert.Equal(t, 5, rimeVariety([]string{"i", "i", "an", "an"}))
}

func TestStrokeLuck(t *testing.T) {
	score, _ := strokeLuck(16)
	assert.Equal(t, 10, score)
	score, _ = strokeLuck(22)
	assert.Equal(t, 6, score)
	// 81 wraps to itself, which is lucky.
	score, _ = strokeLuck(81)
	assert.Equal(t, 10, score)
	score, _ = strokeLuck(162)
	assert.Equal(t, 10, score)
}

func axis(score int) name.AxisDetail {
	return name.AxisDetail{Score: score}
}
