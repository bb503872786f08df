package knowledge

// PreferenceTag couples a request preference with the element it hints at
// and the characters that express it.
type PreferenceTag struct {
	Tag      string
	Element  string
	Keywords []string
}

// PreferenceTags is the fixed vocabulary of supported preferences.
var PreferenceTags = []PreferenceTag{
	{"聪明智慧", "水", []string{"智", "慧", "明", "聪", "睿", "思", "颖", "敏"}},
	{"品德高尚", "木", []string{"德", "善", "仁", "义", "贤", "诚", "忠", "孝"}},
	{"健康平安", "土", []string{"康", "健", "安", "平", "泰", "宁", "祥", "福"}},
	{"事业成功", "金", []string{"成", "功", "达", "业", "昌", "盛", "兴", "荣"}},
	{"文雅诗意", "水", []string{"文", "雅", "诗", "韵", "涵", "墨", "书", "画"}},
	{"活泼开朗", "火", []string{"朗", "阳", "明", "欢", "乐", "悦", "畅", "欣"}},
	{"勇敢坚强", "金", []string{"勇", "刚", "毅", "坚", "强", "威", "豪", "烈"}},
	{"温柔善良", "木", []string{"温", "柔", "慈", "惠", "淑", "婉", "和", "静"}},
	{"文艺才华", "水", []string{"艺", "才", "华", "音", "舞", "丹", "青", "灵"}},
}

var preferenceByTag = func() map[string]PreferenceTag {
	m := make(map[string]PreferenceTag, len(PreferenceTags))
	for _, t := range PreferenceTags {
		m[t.Tag] = t
	}
	return m
}()

// PreferenceFor looks up a tag; ok is false for unknown tags.
func PreferenceFor(tag string) (PreferenceTag, bool) {
	t, ok := preferenceByTag[tag]
	return t, ok
}

// ElementsForPreferences maps preference tags to their element hints,
// deduplicated in first-seen order. Unknown tags contribute nothing; when
// nothing maps the default {金, 水, 木} is returned.
func ElementsForPreferences(preferences []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range preferences {
		t, ok := preferenceByTag[p]
		if !ok {
			continue
		}
		if !seen[t.Element] {
			seen[t.Element] = true
			out = append(out, t.Element)
		}
	}
	if len(out) == 0 {
		return []string{"金", "水", "木"}
	}
	return out
}
