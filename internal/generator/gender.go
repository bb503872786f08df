package generator

import "qiming/domain/name"

// Curated gender-leaning characters. The heuristic is advisory: a male
// request drops female-leaning characters and vice versa, neutral drops
// nothing.
var (
	maleLeaning = map[string]bool{
		"浩": true, "宇": true, "轩": true, "博": true, "杰": true,
		"凯": true, "毅": true, "阳": true, "昊": true, "炎": true,
		"鸿": true, "伟": true, "勇": true, "健": true, "建": true,
	}
	femaleLeaning = map[string]bool{
		"婉": true, "雅": true, "琳": true, "颖": true, "淑": true,
		"雯": true, "洁": true, "涵": true, "萱": true, "筱": true,
		"嘉": true, "佳": true, "思": true, "诗": true, "语": true,
		"雪": true,
	}
)

func filterByGender(chars []string, gender name.Gender) []string {
	var reject map[string]bool
	switch gender {
	case name.GenderMale:
		reject = femaleLeaning
	case name.GenderFemale:
		reject = maleLeaning
	default:
		return chars
	}
	out := make([]string, 0, len(chars))
	for _, c := range chars {
		if !reject[c] {
			out = append(out, c)
		}
	}
	return out
}
