package scoring

import (
	"fmt"
	"strings"

	"qiming/domain/bazi"
	"qiming/domain/name"
	"qiming/internal/knowledge"
)

// scoreElement grades the element balance and generation relations of the
// given name. Max 25. Missing data degrades to 15.
func scoreElement(kb *knowledge.Base, firstName string) name.AxisDetail {
	chars := []rune(firstName)
	elements := make([]string, 0, len(chars))
	for _, c := range chars {
		e := kb.ElementOf(string(c))
		if e == "" {
			return name.AxisDetail{
				Score:   15,
				Reason:  "部分汉字缺少五行数据，使用默认评分",
				Details: &name.AxisDetails{Note: "需要补充五行数据库"},
			}
		}
		elements = append(elements, e)
	}

	balanceScore, balanceReason := elementBalance(elements)
	shengScore, shengReason := elementSheng(elements)

	score := balanceScore + shengScore
	if score > 25 {
		score = 25
	}
	return name.AxisDetail{
		Score:  score,
		Reason: balanceReason + "；" + shengReason,
		Details: &name.AxisDetails{
			Elements:      elements,
			ElementCounts: countElements(elements),
			Note:          "未包含八字分析，如需精准五行评分请提供出生日期",
		},
	}
}

func elementBalance(elements []string) (int, string) {
	counts := countElements(elements)
	unique := len(counts)
	switch {
	case unique == len(elements) && len(elements) >= 2:
		return 15, fmt.Sprintf("五行%s，元素多样平衡", strings.Join(elements, "、"))
	case unique >= 2:
		return 12, fmt.Sprintf("五行%s，元素较为平衡", strings.Join(elements, "、"))
	default:
		return 8, fmt.Sprintf("五行均为%s，建议增加其他元素", elements[0])
	}
}

func elementSheng(elements []string) (int, string) {
	if len(elements) < 2 {
		return 5, "单字名，无法分析五行相生"
	}
	shengCount := 0
	for i := 0; i < len(elements)-1; i++ {
		if bazi.Produces(elements[i]) == elements[i+1] {
			shengCount++
		}
	}
	switch {
	case shengCount == len(elements)-1:
		return 10, "五行相生，气场和谐流畅"
	case shengCount > 0:
		return 7, "五行部分相生"
	default:
		return 5, "五行独立，无明显相生关系"
	}
}

func countElements(elements []string) map[string]int {
	counts := make(map[string]int)
	for _, e := range elements {
		counts[e]++
	}
	return counts
}
