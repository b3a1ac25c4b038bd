package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Scanner bounds. Every matcher is linear in the input and capped, so a
// single match attempt can never exceed a fixed amount of work.
const (
	maxURLRunes        = 2048
	maxEmailLocalBytes = 64
	maxEmailBytes      = 254 // RFC 5321 total length limit
	maxTagRunes        = 256
	maxNumberRunes     = 128
)

// matchFunc attempts a match at byte offset pos and reports the byte end of
// the match. Matchers never backtrack past pos and never look more than one
// byte behind it (boundary checks only).
type matchFunc func(s string, pos int) (end int, ok bool)

// matcher is one alternative in the priority-ordered matching list.
type matcher struct {
	typ TokenType
	// demoted strips the leading marker and emits the remainder as a
	// plain word instead of an entity token.
	demoted bool
	scan    matchFunc
}

// matcherSet is a compiled, configuration-specific matching plan: the
// priority-ordered entity alternatives tried at each scan position, plus
// the scanners used by the excision pre-pass for disabled entity types.
// A matcherSet is immutable once compiled and safe for concurrent use.
type matcherSet struct {
	cfg      Config
	matchers []matcher
	excise   []matchFunc
}

// compile builds the matcher set for a configuration. Alternatives are
// ordered by decreasing precedence: URL, email, mention, hashtag, emoji,
// numeric. Word, punctuation, and whitespace handling live in the engine's
// script-strategy fallback, not here.
func compile(cfg Config) *matcherSet {
	ms := &matcherSet{cfg: cfg}

	if cfg.IncludeURLs {
		ms.matchers = append(ms.matchers, matcher{typ: URL, scan: scanURL})
	} else {
		ms.excise = append(ms.excise, scanURL)
	}
	if cfg.IncludeEmails {
		ms.matchers = append(ms.matchers, matcher{typ: Email, scan: scanEmail})
	} else {
		ms.excise = append(ms.excise, scanEmail)
	}

	// Mentions and hashtags are matched even when extraction is disabled:
	// the marker must still be consumed so the remainder can be demoted to
	// a plain word rather than rediscovered next to a stray marker.
	ms.matchers = append(ms.matchers,
		matcher{typ: Mention, demoted: !cfg.ExtractMentions, scan: scanMention},
		matcher{typ: Hashtag, demoted: !cfg.ExtractHashtags, scan: scanHashtag},
	)

	if cfg.IncludeEmoji {
		ms.matchers = append(ms.matchers, matcher{typ: Emoji, scan: scanEmoji})
	}

	// Numeric is always matched so that digit runs are consumed atomically;
	// the engine drops the token when IncludeNumeric is off.
	ms.matchers = append(ms.matchers, matcher{typ: Numeric, scan: scanNumber})

	return ms
}

// span is a half-open byte range [start, end).
type span struct {
	start, end int
}

// exciseSpans locates disabled-entity spans in a single left-to-right pass.
// The engine skips these ranges wholesale, so a disabled URL or email never
// fragments into component words.
func (ms *matcherSet) exciseSpans(s string) []span {
	if len(ms.excise) == 0 {
		return nil
	}
	var spans []span
	for i := 0; i < len(s); {
		matched := false
		for _, scan := range ms.excise {
			if end, ok := scan(s, i); ok {
				spans = append(spans, span{i, end})
				i = end
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return spans
}

// trailingURLPunct is stripped from the end of URL matches so that a URL at
// the end of a sentence does not swallow the sentence punctuation.
const trailingURLPunct = ".,!?;:)]}\"'"

// scanURL matches http(s):// and www. prefixed URLs, and bare domain.tld
// forms with an alphabetic TLD of two or more letters.
func scanURL(s string, pos int) (int, bool) {
	if end, ok := scanPrefixedURL(s, pos); ok {
		return end, true
	}
	return scanBareDomain(s, pos)
}

// scanPrefixedURL handles the explicit-prefix forms: http://, https://, www.
func scanPrefixedURL(s string, pos int) (int, bool) {
	rest := s[pos:]
	prefix := 0
	switch {
	case len(rest) >= 8 && strings.EqualFold(rest[:8], "https://"):
		prefix = 8
	case len(rest) >= 7 && strings.EqualFold(rest[:7], "http://"):
		prefix = 7
	case len(rest) >= 4 && strings.EqualFold(rest[:4], "www."):
		prefix = 4
	default:
		return 0, false
	}

	// Consume until whitespace, capped.
	i := pos + prefix
	runes := 0
	for i < len(s) && runes < maxURLRunes {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
		runes++
	}

	// Strip trailing sentence punctuation.
	for i > pos+prefix && strings.IndexByte(trailingURLPunct, s[i-1]) >= 0 {
		i--
	}

	if i <= pos+prefix {
		return 0, false
	}
	return i, true
}

// scanBareDomain matches domain.tld forms like example.com, optionally
// followed by a /path. Abbreviations (U.S., e.g.) fail the two-letter
// alphabetic TLD rule or the label rules and are left to word matching.
func scanBareDomain(s string, pos int) (int, bool) {
	// Boundary: must not start mid-word or inside an email.
	if pos > 0 {
		p := s[pos-1]
		if isASCIIAlnum(p) || p == '@' || p == '.' || p == '-' {
			return 0, false
		}
	}
	if pos >= len(s) || !isASCIIAlnum(s[pos]) {
		return 0, false
	}

	i := pos
	dots := 0
	labelStart := pos
	for i < len(s) {
		c := s[i]
		if isASCIIAlnum(c) || c == '-' {
			i++
			continue
		}
		if c == '.' && i > labelStart && i+1 < len(s) && isASCIIAlnum(s[i+1]) {
			dots++
			i++
			labelStart = i
			continue
		}
		break
	}
	if dots == 0 {
		return 0, false
	}

	tld := s[labelStart:i]
	if len(tld) < 2 || !isAllAlpha(tld) {
		return 0, false
	}

	// Never classify the local part of an email as a URL: if email-local
	// characters continue the match and reach an @, this is user@domain.
	for j := i; j < len(s) && j-pos < maxEmailLocalBytes; j++ {
		if s[j] == '@' {
			return 0, false
		}
		if !isEmailLocalByte(s[j]) {
			break
		}
	}

	// Optional path component.
	if i < len(s) && s[i] == '/' {
		runes := 0
		for i < len(s) && runes < maxURLRunes {
			r, size := utf8.DecodeRuneInString(s[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += size
			runes++
		}
		for i > pos && strings.IndexByte(trailingURLPunct, s[i-1]) >= 0 {
			i--
		}
	}

	if extendsAt(s, i) {
		return 0, false
	}
	return i, true
}

// scanEmail matches user@domain.tld: at least one dot in the domain and an
// alphabetic TLD of two or more letters. The local part must not continue a
// preceding alphanumeric run, so the scanner cannot fire mid-word during
// the excision pass; a leading dot or dash is a boundary.
func scanEmail(s string, pos int) (int, bool) {
	if pos > 0 && isASCIIAlnum(s[pos-1]) {
		return 0, false
	}
	if pos >= len(s) || !isASCIIAlnum(s[pos]) {
		return 0, false
	}

	// Local part: [A-Za-z0-9._%+-]+, capped per RFC 5321.
	i := pos
	for i < len(s) && i-pos < maxEmailLocalBytes && isEmailLocalByte(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != '@' {
		return 0, false
	}
	i++

	// Domain: [A-Za-z0-9.-]+ with trailing dots stripped before validation.
	domStart := i
	for i < len(s) && isEmailDomainByte(s[i]) {
		i++
	}
	for i > domStart && s[i-1] == '.' {
		i--
	}

	domain := s[domStart:i]
	lastDot := strings.LastIndexByte(domain, '.')
	if lastDot < 1 {
		return 0, false
	}
	tld := domain[lastDot+1:]
	if len(tld) < 2 || !isAllAlpha(tld) {
		return 0, false
	}
	if i-pos > maxEmailBytes {
		return 0, false
	}
	if extendsAt(s, i) {
		return 0, false
	}
	return i, true
}

// scanMention matches @handle with ASCII word characters, the form used by
// the major platforms.
func scanMention(s string, pos int) (int, bool) {
	if pos >= len(s) || s[pos] != '@' {
		return 0, false
	}
	i := pos + 1
	n := 0
	for i < len(s) && n < maxTagRunes {
		c := s[i]
		if !isASCIIAlnum(c) && c != '_' {
			break
		}
		i++
		n++
	}
	if n == 0 || extendsAt(s, i) {
		return 0, false
	}
	return i, true
}

// scanHashtag matches #tag. Tag bodies accept letters and digits from any
// script plus underscore, so non-Latin hashtags stay atomic.
func scanHashtag(s string, pos int) (int, bool) {
	if pos >= len(s) || s[pos] != '#' {
		return 0, false
	}
	i := pos + 1
	n := 0
	for i < len(s) && n < maxTagRunes {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			// Combining marks may continue a tag body but not open one;
			// a mark right after # belongs to the marker's cluster.
			if n == 0 || !unicode.IsMark(r) {
				break
			}
		}
		i += size
		n++
	}
	if n == 0 {
		return 0, false
	}
	return i, true
}

// scanEmoji matches exactly one emoji grapheme cluster. ZWJ sequences,
// skin-tone modifiers, flags, and keycap sequences are consumed whole.
func scanEmoji(s string, pos int) (int, bool) {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[pos:], -1)
	if cluster == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	if isEmojiRune(r) {
		return pos + len(cluster), true
	}
	// Keycap and variation-selector sequences promote a base digit or
	// symbol to emoji presentation.
	if utf8.RuneCountInString(cluster) > 1 &&
		(strings.ContainsRune(cluster, 0xFE0F) || strings.ContainsRune(cluster, 0x20E3)) {
		return pos + len(cluster), true
	}
	return 0, false
}

// scanNumber matches digit runs with internal . or , separators (each must
// be followed by a digit), an optional trailing %, or an ASCII ordinal
// suffix (1st, 2nd). Digits from any script count via unicode.IsDigit.
func scanNumber(s string, pos int) (int, bool) {
	r0, _ := utf8.DecodeRuneInString(s[pos:])
	if !unicode.IsDigit(r0) {
		return 0, false
	}

	i := pos
	n := 0
	lastDigit := pos
	for i < len(s) && n < maxNumberRunes {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsDigit(r) {
			lastDigit = i
			i += size
			n++
			continue
		}
		if (r == '.' || r == ',') && i+size < len(s) {
			nr, _ := utf8.DecodeRuneInString(s[i+size:])
			if unicode.IsDigit(nr) {
				i += size
				n++
				continue
			}
		}
		break
	}

	// A trailing % or ordinal suffix joins the number only when nothing
	// attaches to it; an extender after the suffix would put the token end
	// inside a grapheme cluster, so the suffix is left for the fallback.
	if i < len(s) && s[i] == '%' && !extendsAt(s, i+1) {
		return i + 1, true
	}

	// Ordinal suffix: st, nd, rd, th followed by a non-letter.
	if i+2 <= len(s) {
		suf := strings.ToLower(s[i : i+2])
		if suf == "st" || suf == "nd" || suf == "rd" || suf == "th" {
			after := i + 2
			if after >= len(s) || (!isWordRuneAt(s, after) && !extendsAt(s, after)) {
				return after, true
			}
		}
	}

	// Grapheme safety: if the next rune attaches to the last digit (keycap,
	// variation selector, combining mark), give that digit back so the
	// cluster stays whole.
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		if isGraphemeExtender(r) {
			i = lastDigit
			for i > pos && (s[i-1] == '.' || s[i-1] == ',') {
				i--
			}
			if i == pos {
				return 0, false
			}
		}
	}

	return i, true
}

// emojiRanges are the contiguous emoji blocks recognized as token bases.
var emojiRanges = [...][2]rune{
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F300, 0x1F5FF}, // Misc Symbols and Pictographs
	{0x1F680, 0x1F6FF}, // Transport and Map
	{0x1F1E6, 0x1F1FF}, // Regional Indicators (flags)
	{0x2600, 0x26FF},   // Misc Symbols
	{0x2700, 0x27BF},   // Dingbats
	{0x1F900, 0x1F9FF}, // Supplemental Symbols and Pictographs
	{0x1FA70, 0x1FAFF}, // Symbols and Pictographs Extended-A
	{0x1F3FB, 0x1F3FF}, // Skin tone modifiers
}

// isEmojiRune reports whether r falls in one of the emoji blocks.
func isEmojiRune(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// isGraphemeExtender reports whether r extends the preceding rune's
// grapheme cluster: ZWJ, variation selectors, keycap, and combining marks
// including spacing marks (Mc), which also stay with their base cluster.
func isGraphemeExtender(r rune) bool {
	return r == 0x200D || r == 0xFE0E || r == 0xFE0F || r == 0x20E3 ||
		unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc)
}

// extendsAt reports whether the rune at byte offset pos would extend the
// grapheme cluster ending there. Matchers reject candidates whose end falls
// before such a rune so token boundaries stay on cluster boundaries.
func extendsAt(s string, pos int) bool {
	if pos >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return isGraphemeExtender(r)
}

// isWordRuneAt reports whether the rune at byte offset pos is a letter or digit.
func isWordRuneAt(s string, pos int) bool {
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isASCIIAlnum reports whether b is an ASCII letter or digit.
func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// isEmailLocalByte reports whether b is valid in the local part of an email.
func isEmailLocalByte(b byte) bool {
	return isASCIIAlnum(b) || b == '.' || b == '_' || b == '%' || b == '+' || b == '-'
}

// isEmailDomainByte reports whether b is valid in the domain part of an email.
func isEmailDomainByte(b byte) bool {
	return isASCIIAlnum(b) || b == '.' || b == '-'
}

// isAllAlpha reports whether every byte of s is an ASCII letter.
func isAllAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
