package scoring

import (
	"strings"

	"qiming/domain/name"
	"qiming/internal/knowledge"
)

// scorePhonetic grades tone patterning and rime variety over the full
// name, surname included. Max 25. Missing data degrades to 15.
func scorePhonetic(kb *knowledge.Base, fullName string) name.AxisDetail {
	chars := []rune(fullName)
	tones := make([]int, 0, len(chars))
	finals := make([]string, 0, len(chars))
	pinyins := make([]string, 0, len(chars))
	for _, c := range chars {
		p, ok := kb.PinyinOf(string(c))
		if !ok {
			return name.AxisDetail{
				Score:   15,
				Reason:  "部分汉字缺少拼音数据，使用默认评分",
				Details: &name.AxisDetails{Note: "需要补充拼音数据库"},
			}
		}
		tones = append(tones, p.Tone)
		finals = append(finals, p.Yunmu)
		pinyins = append(pinyins, p.Pinyin)
	}

	var score int
	var reasons []string

	pattern := tonePattern(tones)
	switch pattern {
	case "perfect":
		score += 15
		reasons = append(reasons, "声调搭配完美，平仄和谐，富有韵律美")
	case "good":
		score += 10
		reasons = append(reasons, "声调搭配良好，读起来顺口")
	default:
		score += 6
		reasons = append(reasons, "声调搭配一般")
	}

	rimeScore := rimeVariety(finals)
	score += rimeScore
	switch {
	case rimeScore >= 8:
		reasons = append(reasons, "韵母和谐，发音流畅自然")
	case rimeScore >= 5:
		reasons = append(reasons, "韵母搭配尚可")
	default:
		reasons = append(reasons, "韵母相近，建议调整避免拗口")
	}

	if score > 25 {
		score = 25
	}
	return name.AxisDetail{
		Score:  score,
		Reason: strings.Join(reasons, "；"),
		Details: &name.AxisDetails{
			Tones:       tones,
			TonePattern: pattern,
			Finals:      finals,
			Pinyins:     pinyins,
		},
	}
}

// tonePattern classifies the tone sequence. Tones 1 and 2 are level (平),
// 3 and 4 oblique (仄).
func tonePattern(tones []int) string {
	if len(tones) == 3 {
		var b strings.Builder
		for _, t := range tones {
			if t <= 2 {
				b.WriteByte('P')
			} else {
				b.WriteByte('Z')
			}
		}
		switch b.String() {
		case "PZZ", "ZPP", "PPZ", "ZZP":
			return "perfect"
		}
		if tones[0] != tones[2] {
			return "good"
		}
		return "normal"
	}
	if len(tones) == 2 {
		if tones[0] != tones[1] {
			return "good"
		}
		return "normal"
	}
	return "normal"
}

func rimeVariety(finals []string) int {
	if len(finals) >= 2 {
		allSame := true
		for _, y := range finals[1:] {
			if y != finals[0] {
				allSame = false
				break
			}
		}
		if allSame {
			return 2
		}
	}
	unique := make(map[string]bool, len(finals))
	for _, y := range finals {
		unique[y] = true
	}
	switch {
	case len(unique) == len(finals):
		return 10
	case len(unique) == len(finals)-1:
		return 7
	default:
		return 5
	}
}
