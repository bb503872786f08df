package bazi

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// stemElements maps the ten heavenly stems to their element.
var stemElements = map[string]Element{
	"甲": Wood, "乙": Wood,
	"丙": Fire, "丁": Fire,
	"戊": Earth, "己": Earth,
	"庚": Metal, "辛": Metal,
	"壬": Water, "癸": Water,
}

// branchElements maps the twelve earthly branches to their element.
var branchElements = map[string]Element{
	"子": Water, "丑": Earth, "寅": Wood, "卯": Wood,
	"辰": Earth, "巳": Fire, "午": Fire, "未": Earth,
	"申": Metal, "酉": Metal, "戌": Earth, "亥": Water,
}

// Calculate converts a Gregorian instant into the four ganzhi pillars and
// derives the element needs. The lunar conversion runs through the solar
// calendar of the birth instant; minute and second precision is accepted
// but only the hour matters for the hour pillar.
func Calculate(birth time.Time) (*Report, error) {
	solar := calendar.NewSolar(
		birth.Year(), int(birth.Month()), birth.Day(),
		birth.Hour(), birth.Minute(), birth.Second(),
	)
	if solar == nil {
		return nil, fmt.Errorf("solar conversion failed for %s", birth.Format(time.RFC3339))
	}
	lunar := solar.GetLunar()
	if lunar == nil {
		return nil, fmt.Errorf("lunar conversion failed for %s", birth.Format(time.RFC3339))
	}

	pillars := []string{
		lunar.GetYearInGanZhi(),
		lunar.GetMonthInGanZhi(),
		lunar.GetDayInGanZhi(),
		lunar.GetTimeInGanZhi(),
	}
	parsed := make([]Pillar, 0, 4)
	for _, gz := range pillars {
		runes := []rune(gz)
		if len(runes) < 2 {
			return nil, fmt.Errorf("malformed ganzhi pillar %q", gz)
		}
		parsed = append(parsed, Pillar{Stem: string(runes[0]), Branch: string(runes[1])})
	}

	counts := map[Element]int{Metal: 0, Wood: 0, Water: 0, Fire: 0, Earth: 0}
	for _, p := range parsed {
		if e, ok := stemElements[p.Stem]; ok {
			counts[e]++
		}
		if e, ok := branchElements[p.Branch]; ok {
			counts[e]++
		}
	}

	var lacking []Element
	for _, e := range Elements {
		if counts[e] == 0 {
			lacking = append(lacking, e)
		}
	}

	needs := append([]Element{}, lacking...)
	if len(needs) == 0 {
		ordered := append([]Element{}, Elements...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return counts[ordered[i]] < counts[ordered[j]]
		})
		needs = append(needs, ordered[0])
		if counts[ordered[1]] == counts[ordered[0]] {
			needs = append(needs, ordered[1])
		}
	}

	return &Report{
		Year:    parsed[0],
		Month:   parsed[1],
		Day:     parsed[2],
		Hour:    parsed[3],
		Counts:  counts,
		Lacking: lacking,
		Needs:   needs,
	}, nil
}

// Format renders the report for display.
func (r *Report) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "八字：%s %s %s %s\n", r.Year, r.Month, r.Day, r.Hour)
	b.WriteString("五行：")
	for i, e := range Elements {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s%d", e, r.Counts[e])
	}
	if len(r.Lacking) > 0 {
		fmt.Fprintf(&b, "\n缺：%s", strings.Join(r.Lacking, "、"))
	}
	fmt.Fprintf(&b, "\n建议补：%s", strings.Join(r.Needs, "、"))
	return b.String()
}
