// Package scoring implements the four-axis name scorer: element balance,
// tone and rime, stroke shape, and meaning. Axes are pure functions of
// the knowledge tables; they degrade on missing data and never fail.
package scoring

import (
	"qiming/domain/name"
	"qiming/internal/knowledge"
)

// Scorer evaluates names against one knowledge base.
type Scorer struct {
	kb *knowledge.Base
}

func NewScorer(kb *knowledge.Base) *Scorer {
	return &Scorer{kb: kb}
}

// Score computes the full four-axis result. The tonal axis reads the full
// name, the other three only the given name.
func (s *Scorer) Score(fullName, firstName string, preferences []string) *name.ScoreResult {
	wuxing := scoreElement(s.kb, firstName)
	yinlu := scorePhonetic(s.kb, fullName)
	zixing := scoreStroke(s.kb, firstName)
	yuyi := scoreMeaning(s.kb, firstName, preferences)

	total := wuxing.Score + yinlu.Score + zixing.Score + yuyi.Score

	return &name.ScoreResult{
		Total: total,
		Breakdown: name.Breakdown{
			Wuxing: wuxing,
			Yinlu:  yinlu,
			Zixing: zixing,
			Yuyi:   yuyi,
		},
		Grade:       name.GradeFor(total),
		Suggestions: suggestions(wuxing, yinlu, zixing, yuyi),
	}
}

func suggestions(wuxing, yinlu, zixing, yuyi name.AxisDetail) []string {
	var out []string
	if wuxing.Score < 15 {
		out = append(out, "建议选择五行平衡或相生的字")
	}
	if yinlu.Score < 15 {
		out = append(out, "可以优化声调搭配，使读音更加和谐")
	}
	if zixing.Score < 12 {
		out = append(out, "建议选择笔画适中、结构平衡的字")
	}
	if yuyi.Score < 20 {
		out = append(out, "可以从诗词典故中寻找更有文化内涵的字")
	}
	if len(out) == 0 {
		out = append(out, "这是一个非常好的名字，各方面都很出色！")
	}
	return out
}
