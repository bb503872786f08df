package name

import "time"

// Gender is the requested gender leaning for generated names.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
)

// Source identifies which generator produced a candidate.
type Source string

const (
	SourcePoetry Source = "poetry"
	SourceWuxing Source = "wuxing"
	SourceAI     Source = "ai"
	// SourceCustom is a request-level alias: treat it as selecting every
	// concrete source above.
	SourceCustom Source = "custom"
)

// FixedPosition pins a generational character to a slot of the given name.
type FixedPosition string

const (
	PositionFirst  FixedPosition = "first"
	PositionSecond FixedPosition = "second"
)

// FixedChar is a fixed (generational) character constraint.
type FixedChar struct {
	Char     string        `json:"char"`
	Position FixedPosition `json:"position"`
}

// Input is a single naming request.
type Input struct {
	Surname     string     `json:"surname"`
	Gender      Gender     `json:"gender"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	Preferences []string   `json:"preferences"`
	Sources     []Source   `json:"sources"`
	Count       int        `json:"count,omitempty"`
	FixedChar   *FixedChar `json:"fixedChar,omitempty"`
}

// Candidate is one proposed name, scored once the orchestrator has run it
// through the scorer.
type Candidate struct {
	FullName     string       `json:"fullName"`
	FirstName    string       `json:"firstName"`
	Source       Source       `json:"source"`
	SourceDetail string       `json:"sourceDetail,omitempty"`
	Score        int          `json:"score,omitempty"`
	ScoreDetail  *ScoreResult `json:"scoreDetail,omitempty"`
}

// AxisDetail carries one scoring axis: points awarded, the human-readable
// reason, and the axis-specific breakdown.
type AxisDetail struct {
	Score   int          `json:"score"`
	Reason  string       `json:"reason"`
	Details *AxisDetails `json:"details,omitempty"`
}

// AxisDetails is the closed union of per-axis detail payloads. Exactly the
// fields relevant to one axis are set.
type AxisDetails struct {
	// Element axis
	Elements      []string       `json:"wuxings,omitempty"`
	ElementCounts map[string]int `json:"wuxingCounts,omitempty"`

	// Tonal axis
	Tones       []int    `json:"tones,omitempty"`
	TonePattern string   `json:"tonePattern,omitempty"`
	Finals      []string `json:"yunmus,omitempty"`
	Pinyins     []string `json:"pinyins,omitempty"`

	// Stroke axis
	Strokes      []int  `json:"strokes,omitempty"`
	TotalStrokes int    `json:"totalStrokes,omitempty"`
	AvgStrokes   string `json:"avgStrokes,omitempty"`

	// Meaning axis
	PoetrySources    []string `json:"poetrySources,omitempty"`
	Preferences      []string `json:"preferences,omitempty"`
	FoundPoetryCount int      `json:"foundPoetryCount,omitempty"`

	// Fallback
	Note string `json:"note,omitempty"`
}

// Breakdown is the four-axis decomposition of a total score.
type Breakdown struct {
	Wuxing AxisDetail `json:"wuxing"`
	Yinlu  AxisDetail `json:"yinlu"`
	Zixing AxisDetail `json:"zixing"`
	Yuyi   AxisDetail `json:"yuyi"`
}

// ScoreResult is the complete scoring outcome for one name.
type ScoreResult struct {
	Total       int       `json:"total"`
	Breakdown   Breakdown `json:"breakdown"`
	Grade       string    `json:"grade"`
	Suggestions []string  `json:"suggestions"`
}

// GradeFor buckets a total score into S/A/B/C/D.
func GradeFor(total int) string {
	switch {
	case total >= 90:
		return "S"
	case total >= 80:
		return "A"
	case total >= 70:
		return "B"
	case total >= 60:
		return "C"
	default:
		return "D"
	}
}

// ExpandSources resolves the custom alias and drops duplicates, preserving
// first-seen order.
func ExpandSources(sources []Source) []Source {
	seen := make(map[Source]bool, len(sources))
	out := make([]Source, 0, len(sources))
	add := func(s Source) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range sources {
		if s == SourceCustom {
			add(SourcePoetry)
			add(SourceWuxing)
			add(SourceAI)
			continue
		}
		add(s)
	}
	return out
}
