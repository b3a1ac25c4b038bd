package script

import "sort"

// scriptRange is one closed contiguous codepoint range belonging to a script.
type scriptRange struct {
	lo, hi rune
	script Script
}

// scriptRanges is the closed lookup table, sorted by lo and non-overlapping.
// The table intentionally covers the ranges that matter for segmentation
// decisions; codepoints outside every range classify as Zzzz and fall back
// to the caller's configured family.
var scriptRanges = []scriptRange{
	{0x0030, 0x0039, Zyyy}, // ASCII digits
	{0x0041, 0x005A, Latn}, // Basic Latin uppercase
	{0x0061, 0x007A, Latn}, // Basic Latin lowercase
	{0x00C0, 0x024F, Latn}, // Latin-1 Supplement, Extended-A, Extended-B
	{0x0250, 0x02AF, Latn}, // IPA Extensions (schwa and friends)
	{0x0370, 0x03FF, Grek}, // Greek and Coptic
	{0x0400, 0x04FF, Cyrl}, // Cyrillic
	{0x0500, 0x052F, Cyrl}, // Cyrillic Supplement
	{0x0590, 0x05FF, Hebr}, // Hebrew
	{0x0600, 0x06FF, Arab}, // Arabic
	{0x0750, 0x077F, Arab}, // Arabic Supplement
	{0x08A0, 0x08FF, Arab}, // Arabic Extended-A
	{0x0900, 0x097F, Deva}, // Devanagari
	{0x0E00, 0x0E7F, Thai}, // Thai
	{0x0E80, 0x0EFF, Laoo}, // Lao
	{0x1000, 0x109F, Mymr}, // Myanmar
	{0x1100, 0x11FF, Hang}, // Hangul Jamo
	{0x1780, 0x17FF, Khmr}, // Khmer
	{0x1E00, 0x1EFF, Latn}, // Latin Extended Additional
	{0x1F00, 0x1FFF, Grek}, // Greek Extended
	{0x2C60, 0x2C7F, Latn}, // Latin Extended-C
	{0x3040, 0x309F, Hira}, // Hiragana
	{0x30A0, 0x30FF, Kana}, // Katakana
	{0x3400, 0x4DBF, Hani}, // CJK Extension A
	{0x4E00, 0x9FFF, Hani}, // CJK Unified Ideographs
	{0xA720, 0xA7FF, Latn}, // Latin Extended-D
	{0xAC00, 0xD7AF, Hang}, // Hangul Syllables
	{0xF900, 0xFAFF, Hani}, // CJK Compatibility Ideographs
	{0xFB50, 0xFDFF, Arab}, // Arabic Presentation Forms-A
	{0xFE70, 0xFEFF, Arab}, // Arabic Presentation Forms-B
}

// Of returns the script of a single codepoint, or Zzzz when the codepoint
// falls outside every known range.
func Of(r rune) Script {
	// Binary search for the first range with hi >= r, then verify lo <= r.
	i := sort.Search(len(scriptRanges), func(i int) bool {
		return scriptRanges[i].hi >= r
	})
	if i < len(scriptRanges) && scriptRanges[i].lo <= r {
		return scriptRanges[i].script
	}
	return Zzzz
}
