package script

import (
	"encoding/json"
	"testing"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want Script
	}{
		{"ASCII letter", 'a', Latn},
		{"ASCII uppercase", 'Z', Latn},
		{"ASCII digit", '7', Zyyy},
		{"Latin extended", 'ə', Latn},
		{"IPA extensions", 'ʃ', Latn},
		{"Latin supplement", 'é', Latn},
		{"Greek", 'α', Grek},
		{"Cyrillic", 'я', Cyrl},
		{"Hebrew", 'א', Hebr},
		{"Arabic", 'م', Arab},
		{"Arabic presentation form", 'ﭐ', Arab},
		{"Devanagari", 'क', Deva},
		{"Thai", 'ก', Thai},
		{"Lao", 'ກ', Laoo},
		{"Myanmar", 'က', Mymr},
		{"Khmer", 'ក', Khmr},
		{"Hangul syllable", '한', Hang},
		{"Hiragana", 'あ', Hira},
		{"Katakana", 'カ', Kana},
		{"Han", '中', Hani},
		{"CJK extension A", '㐀', Hani},
		{"punctuation unclassified", '!', Zzzz},
		{"space unclassified", ' ', Zzzz},
		{"emoji unclassified", '👍', Zzzz},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.r); got != tt.want {
				t.Errorf("Of(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestScriptFamily(t *testing.T) {
	tests := []struct {
		s    Script
		want Family
	}{
		{Latn, Latin},
		{Cyrl, Latin},
		{Grek, Latin},
		{Hebr, Latin},
		{Deva, Latin},
		{Arab, Arabic},
		{Hani, CJK},
		{Hira, CJK},
		{Kana, CJK},
		{Hang, CJK},
		{Thai, CJK},
		{Laoo, CJK},
		{Mymr, CJK},
		{Khmr, CJK},
		{Zyyy, Unknown},
		{Zzzz, Unknown},
	}
	for _, tt := range tests {
		if got := tt.s.Family(); got != tt.want {
			t.Errorf("%v.Family() = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestFamilyCharLevel(t *testing.T) {
	if !CJK.CharLevel() {
		t.Error("CJK must segment per grapheme cluster")
	}
	for _, f := range []Family{Unknown, Latin, Arabic, Mixed} {
		if f.CharLevel() {
			t.Errorf("%v must not segment per grapheme cluster", f)
		}
	}
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Family
	}{
		{"pure Latin", "hello world", Latin},
		{"Latin with digits", "room 101", Latin},
		{"Cyrillic counts as Latin family", "привет", Latin},
		{"pure Han", "你好", CJK},
		{"pure Thai", "สวัสดี", CJK},
		{"pure Arabic", "مرحبا", Arabic},
		{"Latin and Han mixed", "Hello世界", Mixed},
		{"Latin and Arabic mixed", "hello مرحبا", Mixed},
		{"digits only", "12345", Unknown},
		{"punctuation only", "!?.,", Unknown},
		{"empty", "", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dominant(tt.input); got != tt.want {
				t.Errorf("Dominant(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFamily(t *testing.T) {
	for _, f := range []Family{Unknown, Latin, CJK, Arabic, Mixed} {
		got, err := ParseFamily(f.String())
		if err != nil {
			t.Errorf("ParseFamily(%q): %v", f.String(), err)
		}
		if got != f {
			t.Errorf("ParseFamily(%q) = %v, want %v", f.String(), got, f)
		}
	}
	if _, err := ParseFamily("klingon"); err == nil {
		t.Error("ParseFamily accepted an unknown name")
	}
}

func TestFamilyJSON(t *testing.T) {
	data, err := json.Marshal(CJK)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"cjk"` {
		t.Errorf("Marshal(CJK) = %s, want %q", data, `"cjk"`)
	}

	var f Family
	if err := json.Unmarshal([]byte(`"arabic"`), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if f != Arabic {
		t.Errorf("Unmarshal = %v, want %v", f, Arabic)
	}

	if err := json.Unmarshal([]byte(`"klingon"`), &f); err == nil {
		t.Error("Unmarshal accepted an unknown family name")
	}
}

func TestScriptJSON(t *testing.T) {
	data, err := json.Marshal(Thai)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"Thai"` {
		t.Errorf("Marshal(Thai) = %s, want %q", data, `"Thai"`)
	}

	var s Script
	if err := json.Unmarshal([]byte(`"Hani"`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s != Hani {
		t.Errorf("Unmarshal = %v, want %v", s, Hani)
	}

	if err := json.Unmarshal([]byte(`"Qaai"`), &s); err == nil {
		t.Error("Unmarshal accepted an unknown script code")
	}
}

func TestEnumStrings(t *testing.T) {
	if got := Family(42).String(); got != "Family(42)" {
		t.Errorf("Family(42).String() = %q", got)
	}
	if got := Script(42).String(); got != "Script(42)" {
		t.Errorf("Script(42).String() = %q", got)
	}
	if got := Zzzz.String(); got != "" {
		t.Errorf("Zzzz.String() = %q, want empty", got)
	}
}
