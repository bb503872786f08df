// Package knowledge holds the character knowledge base and the poetry
// fragment index. The data ships embedded; lookups report absence, never
// failure, for characters outside the curated set.
package knowledge

import (
	"embed"
	"encoding/json"
	"sync"

	"qiming/internal/errors"
)

//go:embed data/*.json
var dataFS embed.FS

// Pinyin is the phonetic record for one character.
type Pinyin struct {
	Char         string `json:"char"`
	Pinyin       string `json:"pinyin"`
	PinyinNoTone string `json:"pinyinNoTone"`
	Tone         int    `json:"tone"`
	Shengmu      string `json:"shengmu"`
	Yunmu        string `json:"yunmu"`
}

// Poem is one corpus entry.
type Poem struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Dynasty string `json:"dynasty"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// Base is the loaded knowledge base.
type Base struct {
	elements  map[string]string
	strokes   map[string]int
	pinyins   map[string]Pinyin
	byElement map[string][]string
	poems     []Poem
	fragments *FragmentIndex
}

type wuxingFile struct {
	Characters []struct {
		Char   string `json:"char"`
		Wuxing string `json:"wuxing"`
	} `json:"characters"`
}

type strokesFile struct {
	Characters []struct {
		Char    string `json:"char"`
		Strokes int    `json:"strokes"`
	} `json:"characters"`
}

type pinyinFile struct {
	Characters []Pinyin `json:"characters"`
}

type poemsFile struct {
	Poems []Poem `json:"poems"`
}

// Load builds a Base from the embedded data files.
func Load() (*Base, error) {
	var wf wuxingFile
	if err := readJSON("data/wuxing.json", &wf); err != nil {
		return nil, err
	}
	var sf strokesFile
	if err := readJSON("data/strokes.json", &sf); err != nil {
		return nil, err
	}
	var pf pinyinFile
	if err := readJSON("data/pinyin.json", &pf); err != nil {
		return nil, err
	}
	var pmf poemsFile
	if err := readJSON("data/poems.json", &pmf); err != nil {
		return nil, err
	}

	b := &Base{
		elements:  make(map[string]string, len(wf.Characters)),
		strokes:   make(map[string]int, len(sf.Characters)),
		pinyins:   make(map[string]Pinyin, len(pf.Characters)),
		byElement: make(map[string][]string),
		poems:     pmf.Poems,
	}
	for _, c := range wf.Characters {
		b.elements[c.Char] = c.Wuxing
		b.byElement[c.Wuxing] = append(b.byElement[c.Wuxing], c.Char)
	}
	for _, c := range sf.Characters {
		b.strokes[c.Char] = c.Strokes
	}
	for _, c := range pf.Characters {
		b.pinyins[c.Char] = c
	}
	b.fragments = buildFragmentIndex(b.poems, b.elements)
	return b, nil
}

func readJSON(name string, v interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "reading embedded %s", name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "parsing embedded %s", name)
	}
	return nil
}

var (
	defaultOnce sync.Once
	defaultBase *Base
	defaultErr  error
)

// Default returns the process-wide knowledge base, loading it on first use.
func Default() (*Base, error) {
	defaultOnce.Do(func() {
		defaultBase, defaultErr = Load()
	})
	return defaultBase, defaultErr
}

// ElementOf returns the element of char, or "" when unknown.
func (b *Base) ElementOf(char string) string {
	return b.elements[char]
}

// HasElement reports whether char is in the element table.
func (b *Base) HasElement(char string) bool {
	_, ok := b.elements[char]
	return ok
}

// StrokesOf returns the stroke count of char; ok is false when unknown.
func (b *Base) StrokesOf(char string) (int, bool) {
	n, ok := b.strokes[char]
	return n, ok
}

// PinyinOf returns the phonetic record of char; ok is false when unknown.
func (b *Base) PinyinOf(char string) (Pinyin, bool) {
	p, ok := b.pinyins[char]
	return p, ok
}

// CharsWithElement lists the characters carrying the given element, in
// data-file order.
func (b *Base) CharsWithElement(element string) []string {
	return b.byElement[element]
}

// Poems returns the embedded corpus.
func (b *Base) Poems() []Poem {
	return b.poems
}

// PoemsContaining returns every poem whose content includes all runes of s.
func (b *Base) PoemsContaining(s string) []Poem {
	var out []Poem
	for _, p := range b.poems {
		if containsAllRunes(p.Content, s) {
			out = append(out, p)
		}
	}
	return out
}

func containsAllRunes(content, s string) bool {
	for _, r := range s {
		found := false
		for _, c := range content {
			if c == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Fragments returns the poetry fragment index.
func (b *Base) Fragments() *FragmentIndex {
	return b.fragments
}
