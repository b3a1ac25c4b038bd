package tokenizer

import "testing"

type scanCase struct {
	name    string
	input   string
	pos     int
	wantEnd int
	wantOK  bool
}

func runScanCases(t *testing.T, scan matchFunc, cases []scanCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			end, ok := scan(tc.input, tc.pos)
			if ok != tc.wantOK {
				t.Fatalf("scan(%q, %d): ok=%v, want %v", tc.input, tc.pos, ok, tc.wantOK)
			}
			if ok && end != tc.wantEnd {
				t.Errorf("scan(%q, %d): end=%d (%q), want %d (%q)",
					tc.input, tc.pos, end, tc.input[tc.pos:end], tc.wantEnd, tc.input[tc.pos:tc.wantEnd])
			}
		})
	}
}

func TestScanURL(t *testing.T) {
	runScanCases(t, scanURL, []scanCase{
		{"https prefix", "https://example.com", 0, 19, true},
		{"http prefix", "http://example.com rest", 0, 18, true},
		{"prefix case-insensitive", "HTTPS://EXAMPLE.COM", 0, 19, true},
		{"www prefix", "www.site.org rest", 0, 12, true},
		{"path and query", "https://example.com/a/b?q=1&r=2", 0, 31, true},
		{"trailing punctuation stripped", "https://example.com.", 0, 19, true},
		{"trailing paren stripped", "(see www.site.org)", 5, 17, true},
		{"bare domain", "example.com", 0, 11, true},
		{"bare domain with path", "example.com/docs x", 0, 16, true},
		{"bare subdomain", "foo.example.com", 0, 15, true},
		{"trailing dot not consumed", "example.com. Next", 0, 11, true},
		{"bare protocol only", "http://", 0, 0, false},
		{"mid-word rejected", "xexample.com", 1, 0, false},
		{"email local part rejected", "user@mail.com", 0, 0, false},
		{"email with separators rejected", "test.user+tag@domain.co", 0, 0, false},
		{"numeric TLD rejected", "1.2.3", 0, 0, false},
		{"short TLD rejected", "example.c", 0, 0, false},
		{"decimal not a domain", "3.14", 0, 0, false},
		{"no dot", "example", 0, 0, false},
	})
}

func TestScanEmail(t *testing.T) {
	runScanCases(t, scanEmail, []scanCase{
		{"simple", "user@mail.co", 0, 12, true},
		{"plus tag and dots", "test.user+tag@domain.co.uk", 0, 26, true},
		{"trailing dot stripped", "user@mail.co.", 0, 12, true},
		{"after leading dot", ".user@mail.co", 1, 13, true},
		{"mid-word rejected", "xuser@mail.co", 1, 0, false},
		{"dotless domain rejected", "user@localhost", 0, 0, false},
		{"numeric TLD rejected", "user@host.99", 0, 0, false},
		{"short TLD rejected", "user@mail.c", 0, 0, false},
		{"no at sign", "username", 0, 0, false},
		{"starts with separator", "+user@mail.co", 0, 0, false},
	})
}

func TestScanMention(t *testing.T) {
	runScanCases(t, scanMention, []scanCase{
		{"simple handle", "@user", 0, 5, true},
		{"underscore and digits", "@user_name9 x", 0, 11, true},
		{"stops at punctuation", "@user!", 0, 5, true},
		{"bare marker", "@", 0, 0, false},
		{"marker then space", "@ x", 0, 0, false},
		{"non-ASCII handle rejected", "@ユーザー", 0, 0, false},
	})
}

func TestScanHashtag(t *testing.T) {
	runScanCases(t, scanHashtag, []scanCase{
		{"simple tag", "#tag", 0, 4, true},
		{"underscore and digits", "#tag_2 x", 0, 6, true},
		{"Japanese tag", "#日本語", 0, 10, true},
		{"combining mark continues body", "#déjà", 0, len("#déjà"), true},
		{"bare marker", "#", 0, 0, false},
		{"marker then space", "# x", 0, 0, false},
		{"combining mark cannot open body", "#́x", 0, 0, false},
	})
}

func TestScanEmoji(t *testing.T) {
	runScanCases(t, scanEmoji, []scanCase{
		{"single emoji", "👍", 0, 4, true},
		{"skin tone modifier", "👍🏽 x", 0, 8, true},
		{"ZWJ family sequence", "👨‍👩‍👧", 0, 18, true},
		{"flag pair", "🇯🇵", 0, 8, true},
		{"heart with variation selector", "❤️", 0, 6, true},
		{"keycap sequence", "1️⃣", 0, 7, true},
		{"plain letter", "a", 0, 0, false},
		{"accented letter", "é", 0, 0, false},
		{"plain digit", "7", 0, 0, false},
	})
}

func TestScanNumber(t *testing.T) {
	runScanCases(t, scanNumber, []scanCase{
		{"integer", "42", 0, 2, true},
		{"decimal point", "3.14", 0, 4, true},
		{"decimal comma", "3,14", 0, 4, true},
		{"thousand separators", "1,000,000", 0, 9, true},
		{"percentage", "50%", 0, 3, true},
		{"ordinal st", "1st place", 0, 3, true},
		{"ordinal nd", "2nd", 0, 3, true},
		{"trailing separator dropped", "3,", 0, 1, true},
		{"separator needs digit", "3. x", 0, 1, true},
		{"ordinal needs boundary", "1sta", 0, 1, true},
		{"letters", "abc", 0, 0, false},
		{"keycap digit backs off", "1️⃣", 0, 0, false},
		{"combining mark after percent leaves it", "0%̀", 0, 1, true},
		{"combining mark after ordinal leaves it", "1st̀", 0, 1, true},
		{"spacing mark backs off last digit", "0ः", 0, 0, false},
	})
}

func TestExciseSpans(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludeURLs = false
	cfg.IncludeEmails = false
	ms := compile(cfg)

	input := "x https://a.co y b@c.de z"
	spans := ms.exciseSpans(input)
	want := []span{{2, 14}, {17, 23}}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans %v, want %v", len(spans), spans, want)
	}
	for i := range spans {
		if spans[i] != want[i] {
			t.Errorf("span %d: got %v (%q), want %v", i, spans[i], input[spans[i].start:spans[i].end], want[i])
		}
	}
}

func TestCompilePrecedence(t *testing.T) {
	ms := compile(DefaultConfig())
	want := []TokenType{URL, Email, Mention, Hashtag, Numeric}
	if len(ms.matchers) != len(want) {
		t.Fatalf("got %d matchers, want %d", len(ms.matchers), len(want))
	}
	for i, m := range ms.matchers {
		if m.typ != want[i] {
			t.Errorf("matcher %d: got %v, want %v", i, m.typ, want[i])
		}
	}
	if len(ms.excise) != 0 {
		t.Errorf("default config should excise nothing, got %d scanners", len(ms.excise))
	}

	cfg := DefaultConfig()
	cfg.IncludeEmoji = true
	cfg.IncludeURLs = false
	ms = compile(cfg)
	want = []TokenType{Email, Mention, Hashtag, Emoji, Numeric}
	if len(ms.matchers) != len(want) {
		t.Fatalf("got %d matchers, want %d", len(ms.matchers), len(want))
	}
	for i, m := range ms.matchers {
		if m.typ != want[i] {
			t.Errorf("matcher %d: got %v, want %v", i, m.typ, want[i])
		}
	}
	if len(ms.excise) != 1 {
		t.Errorf("disabled URLs should add one excise scanner, got %d", len(ms.excise))
	}
}
