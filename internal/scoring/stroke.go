package scoring

import (
	"fmt"

	"qiming/domain/name"
	"qiming/internal/knowledge"
)

// luckyNumbers are the auspicious values of the 81-number system
// (simplified subset).
var luckyNumbers = map[int]bool{
	1: true, 3: true, 5: true, 6: true, 7: true, 8: true,
	11: true, 13: true, 15: true, 16: true, 17: true, 18: true,
	21: true, 23: true, 24: true, 25: true, 29: true,
	31: true, 32: true, 33: true, 35: true, 37: true, 39: true,
	41: true, 45: true, 47: true, 48: true, 52: true, 57: true,
	63: true, 65: true, 67: true, 68: true, 81: true,
}

// scoreStroke grades stroke numerology and writeability of the given
// name. Max 20. Missing data degrades to 12.
func scoreStroke(kb *knowledge.Base, firstName string) name.AxisDetail {
	chars := []rune(firstName)
	strokes := make([]int, 0, len(chars))
	for _, c := range chars {
		n, ok := kb.StrokesOf(string(c))
		if !ok {
			return name.AxisDetail{
				Score:   12,
				Reason:  "部分汉字缺少笔画数据，使用默认评分",
				Details: &name.AxisDetails{Note: "需要补充笔画数据库"},
			}
		}
		strokes = append(strokes, n)
	}

	total := 0
	for _, n := range strokes {
		total += n
	}

	luckScore, luckReason := strokeLuck(total)
	writeScore, writeReason := writeability(strokes)

	score := luckScore + writeScore
	if score > 20 {
		score = 20
	}
	return name.AxisDetail{
		Score:  score,
		Reason: luckReason + "；" + writeReason,
		Details: &name.AxisDetails{
			Strokes:      strokes,
			TotalStrokes: total,
			AvgStrokes:   fmt.Sprintf("%.1f", float64(total)/float64(len(strokes))),
		},
	}
}

func strokeLuck(total int) (int, string) {
	num := total % 81
	if num == 0 {
		num = 81
	}
	if luckyNumbers[num] {
		return 10, fmt.Sprintf("笔画数%d画，数理吉利", total)
	}
	return 6, fmt.Sprintf("笔画数%d画，数理一般", total)
}

// writeability scores moderate stroke counts (6 to 16 per character) and
// a small spread between the heaviest and lightest character.
func writeability(strokes []int) (int, string) {
	moderate := 0
	maxStroke, minStroke := strokes[0], strokes[0]
	for _, s := range strokes {
		if s >= 6 && s <= 16 {
			moderate++
		}
		if s > maxStroke {
			maxStroke = s
		}
		if s < minStroke {
			minStroke = s
		}
	}

	score := 5
	var reason string
	switch {
	case moderate == len(strokes):
		score += 3
		reason = "笔画适中，书写美观"
	case moderate >= len(strokes)-1:
		score += 2
		reason = "笔画较为适中"
	default:
		score += 1
		reason = "部分字笔画偏多或偏少"
	}

	diff := maxStroke - minStroke
	switch {
	case diff <= 5:
		score += 2
		reason += "，笔画平衡"
	case diff <= 10:
		score += 1
		reason += "，笔画差异适中"
	default:
		reason += "，笔画差异较大"
	}

	if score > 10 {
		score = 10
	}
	return score, reason
}
