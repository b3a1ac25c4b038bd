// Package script classifies Unicode codepoints and text spans by writing
// system, and maps writing systems to the segmentation strategy they need.
//
// Classification is purely table-driven: a codepoint is looked up in a
// closed set of contiguous Unicode ranges. No dictionaries, no statistics,
// no external data. This keeps the package deterministic and allocation-free.
//
// Two levels of classification are provided:
//
//   - Script: the concrete writing system of a single codepoint (Latin,
//     Cyrillic, Han, Thai, ...), via [Of].
//   - Family: the segmentation family of a script or text span (Latin,
//     CJK, Arabic, Mixed, Unknown), via [Script.Family] and [Dominant].
//
// A Family is a segmentation bucket, not a genealogical grouping: Cyrillic,
// Greek, Hebrew, and Devanagari all land in the Latin family because they
// share its whitespace-delimited strategy, and Thai, Lao, Myanmar, and Khmer
// land in CJK because, like Han, they are written without inter-word spaces
// and must be segmented per grapheme cluster (scriptio continua).
//
// All functions are safe for concurrent use by multiple goroutines.
package script

import (
	"encoding/json"
	"fmt"
	"unicode"
)

// Family is the segmentation family of a script or text span.
type Family int

const (
	Unknown Family = iota // zero value, no classification possible
	Latin                 // whitespace-delimited scripts (Latin, Cyrillic, Greek, ...)
	CJK                   // scriptio continua scripts, one token per grapheme cluster
	Arabic                // Arabic script, whitespace-delimited with attached clitics
	Mixed                 // span contains more than one family
)

// familyNames maps Family values to their string names.
var familyNames = [...]string{
	Unknown: "unknown",
	Latin:   "latin",
	CJK:     "cjk",
	Arabic:  "arabic",
	Mixed:   "mixed",
}

// familyFromName maps string names back to Family values.
var familyFromName = map[string]Family{
	"unknown": Unknown,
	"latin":   Latin,
	"cjk":     CJK,
	"arabic":  Arabic,
	"mixed":   Mixed,
}

// String returns the name of the family.
func (f Family) String() string {
	if int(f) >= 0 && int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Valid reports whether f is one of the defined Family values.
func (f Family) Valid() bool {
	return f >= Unknown && f <= Mixed
}

// CharLevel reports whether the family segments per grapheme cluster
// rather than at whitespace and punctuation boundaries.
func (f Family) CharLevel() bool {
	return f == CJK
}

// ParseFamily converts a family name (e.g. "latin") to a Family.
func ParseFamily(s string) (Family, error) {
	f, ok := familyFromName[s]
	if !ok {
		return Unknown, fmt.Errorf("script: unknown family: %q", s)
	}
	return f, nil
}

// MarshalJSON encodes the family as a JSON string (e.g. "latin").
func (f Family) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "latin") into a Family.
func (f *Family) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	fam, err := ParseFamily(s)
	if err != nil {
		return err
	}
	*f = fam
	return nil
}

// Script identifies a concrete writing system.
type Script int

const (
	Zzzz Script = iota // ISO 15924: unknown / unclassified
	Zyyy               // ISO 15924: Common (digits, shared punctuation)
	Latn               // Latin
	Cyrl               // Cyrillic
	Grek               // Greek
	Arab               // Arabic
	Hebr               // Hebrew
	Deva               // Devanagari
	Hani               // Han ideographs
	Hira               // Hiragana
	Kana               // Katakana
	Hang               // Hangul
	Thai               // Thai
	Laoo               // Lao
	Mymr               // Myanmar
	Khmr               // Khmer
)

// scriptNames maps Script values to their ISO 15924 codes.
var scriptNames = [...]string{
	Zzzz: "",
	Zyyy: "Zyyy",
	Latn: "Latn",
	Cyrl: "Cyrl",
	Grek: "Grek",
	Arab: "Arab",
	Hebr: "Hebr",
	Deva: "Deva",
	Hani: "Hani",
	Hira: "Hira",
	Kana: "Kana",
	Hang: "Hang",
	Thai: "Thai",
	Laoo: "Laoo",
	Mymr: "Mymr",
	Khmr: "Khmr",
}

// String returns the ISO 15924 code of the script, or "" for Zzzz.
func (s Script) String() string {
	if int(s) >= 0 && int(s) < len(scriptNames) {
		return scriptNames[s]
	}
	return fmt.Sprintf("Script(%d)", int(s))
}

// MarshalJSON encodes the script as a JSON string (e.g. "Latn").
func (s Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "Latn") into a Script.
func (s *Script) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	for i, name := range scriptNames {
		if name == str {
			*s = Script(i)
			return nil
		}
	}
	return fmt.Errorf("script: unknown script: %q", str)
}

// Family returns the segmentation family of the script.
func (s Script) Family() Family {
	switch s {
	case Latn, Cyrl, Grek, Hebr, Deva:
		return Latin
	case Arab:
		return Arabic
	case Hani, Hira, Kana, Hang, Thai, Laoo, Mymr, Khmr:
		return CJK
	default:
		return Unknown
	}
}

// CharLevel reports whether the script is scriptio continua and segments
// per grapheme cluster.
func (s Script) CharLevel() bool {
	return s.Family() == CJK
}

// FamilyOf returns the segmentation family of a single codepoint.
func FamilyOf(r rune) Family {
	return Of(r).Family()
}

// Dominant classifies a text span by the families of its letter codepoints.
// It returns the single family present when all letters agree, [Mixed] when
// letters from more than one family are found, and [Unknown] when the span
// contains no classifiable letters (pure digits, symbols, or whitespace).
func Dominant(s string) Family {
	// Single-pass family counting over letter runes only.
	var latin, cjk, arabic int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		switch Of(r).Family() {
		case Latin:
			latin++
		case CJK:
			cjk++
		case Arabic:
			arabic++
		}
	}

	families := 0
	dominant := Unknown
	if latin > 0 {
		families++
		dominant = Latin
	}
	if cjk > 0 {
		families++
		dominant = CJK
	}
	if arabic > 0 {
		families++
		dominant = Arabic
	}

	switch families {
	case 0:
		return Unknown
	case 1:
		return dominant
	default:
		return Mixed
	}
}
