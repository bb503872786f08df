package bazi

// Element is one of the five wǔxíng elements, using the canonical Chinese
// labels shared with the character knowledge base.
type Element = string

const (
	Metal Element = "金"
	Wood  Element = "木"
	Water Element = "水"
	Fire  Element = "火"
	Earth Element = "土"
)

// Elements lists the five elements in the conventional order.
var Elements = []Element{Metal, Wood, Water, Fire, Earth}

// Pillar is one ganzhi pair, e.g. "甲子".
type Pillar struct {
	Stem   string `json:"tiangan"`
	Branch string `json:"dizhi"`
}

// String renders the pillar as the two-character ganzhi string.
func (p Pillar) String() string { return p.Stem + p.Branch }

// Report is the four-pillar chart with its element census.
type Report struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"hour"`

	// Counts holds how many of the eight stem/branch characters map to
	// each element.
	Counts map[Element]int `json:"wuxing"`

	// Lacking are elements with a zero count.
	Lacking []Element `json:"lacking"`

	// Needs are the elements a name should compensate for: Lacking when
	// non-empty, otherwise the one or two elements tied for lowest count.
	Needs []Element `json:"needs"`
}

// Producer returns the element that generates e in the shēng cycle
// (metal→water→wood→fire→earth→metal).
func Producer(e Element) Element {
	switch e {
	case Water:
		return Metal
	case Wood:
		return Water
	case Fire:
		return Wood
	case Earth:
		return Fire
	case Metal:
		return Earth
	}
	return Metal
}

// Produces returns the element generated by e.
func Produces(e Element) Element {
	switch e {
	case Metal:
		return Water
	case Water:
		return Wood
	case Wood:
		return Fire
	case Fire:
		return Earth
	case Earth:
		return Metal
	}
	return ""
}
