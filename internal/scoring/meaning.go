package scoring

import (
	"fmt"
	"strings"

	"qiming/domain/name"
	"qiming/internal/knowledge"
)

// scoreMeaning grades literary provenance and preference fit of the given
// name. Max 30. Never degrades: an empty corpus hit still scores.
func scoreMeaning(kb *knowledge.Base, firstName string, preferences []string) name.AxisDetail {
	chars := []rune(firstName)
	var score int
	var reasons []string
	var poetrySources []string
	foundPoetryCount := 0

	for _, c := range chars {
		poems := kb.PoemsContaining(string(c))
		if len(poems) > 0 {
			foundPoetryCount++
			poem := poems[0]
			poetrySources = append(poetrySources,
				fmt.Sprintf("\"%s\"字出自%s《%s》：%s", string(c), poem.Author, poem.Title, poem.Content))
		}
	}

	switch {
	case foundPoetryCount == len(chars):
		score += 20
		reasons = append(reasons, "名字每个字都有诗词出处，富有文化内涵")
	case foundPoetryCount > 0:
		score += 12
		reasons = append(reasons, fmt.Sprintf("%d/%d个字有诗词出处", foundPoetryCount, len(chars)))
	default:
		score += 8
		reasons = append(reasons, "暂无诗词出处")
	}

	if len(preferences) > 0 {
		prefScore, prefReason := matchPreferences(firstName, preferences)
		score += prefScore
		reasons = append(reasons, prefReason)
	} else {
		score += 5
		reasons = append(reasons, "未指定偏好")
	}

	if score > 30 {
		score = 30
	}
	return name.AxisDetail{
		Score:  score,
		Reason: strings.Join(reasons, "；"),
		Details: &name.AxisDetails{
			PoetrySources:    poetrySources,
			Preferences:      preferences,
			FoundPoetryCount: foundPoetryCount,
		},
	}
}

func matchPreferences(firstName string, preferences []string) (int, string) {
	matchCount := 0
	for _, pref := range preferences {
		tag, ok := knowledge.PreferenceFor(pref)
		if !ok {
			continue
		}
		for _, kw := range tag.Keywords {
			if strings.Contains(firstName, kw) {
				matchCount++
				break
			}
		}
	}

	switch {
	case matchCount == len(preferences):
		return 10, "完全符合您的偏好要求"
	case matchCount > 0:
		return 6, fmt.Sprintf("部分符合您的偏好（%d/%d项）", matchCount, len(preferences))
	default:
		return 3, "与偏好匹配度较低"
	}
}
