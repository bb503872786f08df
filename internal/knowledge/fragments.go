package knowledge

import (
	"hash/fnv"
	"strings"
)

// Fragment is one name candidate mined from the corpus: either two
// consecutive characters of a verse or a single character, restricted to
// characters present in the element table.
type Fragment struct {
	Chars  string `json:"chars"`
	Kind   string `json:"kind"` // "consecutive2" or "single"
	PoemID uint32 `json:"poemId"`
	Title  string `json:"title"`
	Author string `json:"author"`
	// Excerpt is the verse the fragment was cut from, punctuation removed.
	Excerpt string `json:"excerpt"`
}

const (
	KindConsecutive2 = "consecutive2"
	KindSingle       = "single"
)

// FragmentIndex is the deduplicated fragment list with lookup helpers.
type FragmentIndex struct {
	fragments []Fragment
}

// sentence terminators and the wider punctuation class removed from verses
const sentenceSeps = "，。！？；"
const strippedPunct = "，。！？、；：“”‘’《》（）"

func splitVerses(content string) []string {
	return strings.FieldsFunc(content, func(r rune) bool {
		return strings.ContainsRune(sentenceSeps, r)
	})
}

func cleanVerse(verse string) string {
	var b strings.Builder
	for _, r := range verse {
		if strings.ContainsRune(strippedPunct, r) || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '　' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func poemKey(title, author string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(title))
	h.Write([]byte{'|'})
	h.Write([]byte(author))
	return h.Sum32()
}

// buildFragmentIndex walks every poem once. Duplicate (chars, kind) pairs
// keep their first occurrence.
func buildFragmentIndex(poems []Poem, elements map[string]string) *FragmentIndex {
	type key struct {
		chars string
		kind  string
	}
	seen := make(map[key]bool)
	var out []Fragment

	add := func(chars, kind string, p Poem, excerpt string) {
		k := key{chars, kind}
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, Fragment{
			Chars:   chars,
			Kind:    kind,
			PoemID:  poemKey(p.Title, p.Author),
			Title:   p.Title,
			Author:  p.Author,
			Excerpt: excerpt,
		})
	}

	for _, p := range poems {
		for _, verse := range splitVerses(p.Content) {
			cleaned := cleanVerse(verse)
			runes := []rune(cleaned)
			for i := 0; i+1 < len(runes); i++ {
				a, b := string(runes[i]), string(runes[i+1])
				if _, ok := elements[a]; !ok {
					continue
				}
				if _, ok := elements[b]; !ok {
					continue
				}
				add(a+b, KindConsecutive2, p, cleaned)
			}
			for _, r := range runes {
				c := string(r)
				if _, ok := elements[c]; ok {
					add(c, KindSingle, p, cleaned)
				}
			}
		}
	}
	return &FragmentIndex{fragments: out}
}

// All returns every fragment in build order.
func (idx *FragmentIndex) All() []Fragment {
	return idx.fragments
}

// Len returns the fragment count.
func (idx *FragmentIndex) Len() int {
	return len(idx.fragments)
}

// Filter returns the fragments matching pred, in build order.
func (idx *FragmentIndex) Filter(pred func(Fragment) bool) []Fragment {
	var out []Fragment
	for _, f := range idx.fragments {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}
