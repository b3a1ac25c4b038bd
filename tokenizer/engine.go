package tokenizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/socialtok/socialtok/script"
)

// Step budget for a single scan. Every matcher attempt counts as one step;
// crossing the budget switches the engine to the reduced whitespace-chunk
// mode instead of risking unbounded work. Matchers are linear and capped,
// so only adversarial inputs approach the budget.
const (
	stepFloor  = 1 << 10
	stepFactor = 16
)

// stepBudget returns the scan step allowance for an input of n bytes.
func stepBudget(n int) int {
	return stepFloor + stepFactor*n
}

// scan is the tokenization engine: one left-to-right pass over text,
// already normalized by the caller. At each position the highest-precedence
// matching alternative wins; spans no alternative covers fall through to
// the script-strategy segmentation. Tokens are streamed to yield; the scan
// stops early when yield returns false.
//
// forced, when haveForced is set, pins the segmentation family for the
// whole input and skips per-span classification (script.Mixed still
// classifies per span, since that is what the mixed strategy means).
func scan(text string, ms *matcherSet, forced script.Family, haveForced bool, budget int, yield func(Token) bool) {
	cfg := ms.cfg
	excluded := ms.exciseSpans(text)
	ei := 0

	i := 0  // byte cursor
	ri := 0 // codepoint cursor
	steps := 0
	coarse := false

	// advance moves both cursors to byte offset `to`.
	advance := func(to int) {
		ri += utf8.RuneCountInString(text[i:to])
		i = to
	}

	for i < len(text) {
		// Skip excised entity spans wholesale, no fragments.
		for ei < len(excluded) && excluded[ei].end <= i {
			ei++
		}
		if ei < len(excluded) && excluded[ei].start <= i {
			advance(excluded[ei].end)
			ei++
			continue
		}
		// Word scans and chunking must stop at the next excised span.
		limit := len(text)
		if ei < len(excluded) {
			limit = excluded[ei].start
		}

		r, size := utf8.DecodeRuneInString(text[i:])

		if unicode.IsSpace(r) {
			advance(i + size)
			continue
		}

		steps++
		if steps > budget {
			coarse = true
		}

		if coarse {
			// Reduced alternative set: whitespace-delimited chunks only.
			// Coarser segmentation, but bounded and still grapheme-safe.
			start, rStart := i, ri
			j := i
			for j < limit {
				nr, ns := utf8.DecodeRuneInString(text[j:])
				if unicode.IsSpace(nr) {
					break
				}
				j += ns
			}
			advance(j)
			tok := Token{Text: text[start:i], Type: Word, Start: rStart, End: ri}
			if out, keep := postprocess(tok, cfg); keep {
				if !yield(out) {
					return
				}
			}
			continue
		}

		// Entity alternatives, highest precedence first.
		if tok, consumed, emitted := matchEntity(ms, text, i, ri); consumed > 0 {
			advance(i + consumed)
			steps += consumed / 4
			if emitted {
				if out, keep := postprocess(tok, cfg); keep {
					if !yield(out) {
						return
					}
				}
			}
			continue
		}

		// Script-strategy fallback for spans no alternative covers.
		switch {
		case unicode.IsLetter(r):
			sc := script.Of(r)
			start, rStart := i, ri
			if charLevelAt(r, forced, haveForced, cfg) {
				cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[i:], -1)
				advance(i + len(cluster))
			} else {
				end := scanWordSpan(text, i, limit, forced, haveForced, cfg)
				advance(snapToBoundary(text, i, end))
			}
			tok := Token{Text: text[start:i], Type: Word, Start: rStart, End: ri, Script: sc}
			if out, keep := postprocess(tok, cfg); keep {
				if !yield(out) {
					return
				}
			}

		case unicode.IsPunct(r):
			start, rStart := i, ri
			cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[i:], -1)
			advance(i + len(cluster))
			if cfg.IncludePunctuation {
				tok := Token{Text: text[start:i], Type: Punctuation, Start: rStart, End: ri}
				if out, keep := postprocess(tok, cfg); keep {
					if !yield(out) {
						return
					}
				}
			}

		default:
			// Symbols, stray combining marks, unclassified runes, and
			// invalid UTF-8 (decoded as U+FFFD): consume one grapheme
			// cluster, emit nothing. Progress is always at least one byte.
			cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[i:], -1)
			if len(cluster) == 0 {
				advance(i + size)
			} else {
				advance(i + len(cluster))
			}
		}
	}
}

// matchEntity tries the priority-ordered alternatives at byte offset pos.
// It returns the token (when one should be emitted), the number of bytes
// consumed (zero when nothing matched), and whether to emit.
//
// A match whose end falls before a cluster-extending rune is rejected here
// regardless of which scanner produced it, so entity boundaries never land
// inside a grapheme cluster; the span falls through to the script-strategy
// segmentation, which consumes whole clusters.
func matchEntity(ms *matcherSet, text string, pos, rpos int) (Token, int, bool) {
	for _, m := range ms.matchers {
		end, ok := m.scan(text, pos)
		if !ok || extendsAt(text, end) {
			continue
		}

		if m.demoted {
			// Marker dropped, remainder kept as a plain word. The marker
			// is a single ASCII byte for both mentions and hashtags.
			body := text[pos+1 : end]
			br, _ := utf8.DecodeRuneInString(body)
			tok := Token{
				Text:   body,
				Type:   Word,
				Start:  rpos + 1,
				End:    rpos + 1 + utf8.RuneCountInString(body),
				Script: script.Of(br),
			}
			return tok, end - pos, true
		}

		if m.typ == Numeric && !ms.cfg.IncludeNumeric {
			// Consumed atomically, dropped wholesale. When the scanner gave
			// a trailing digit back to a following extender, that digit's
			// cluster reaches the default fallback and is dropped there too.
			return Token{}, end - pos, false
		}

		tok := Token{
			Text:  text[pos:end],
			Type:  m.typ,
			Start: rpos,
			End:   rpos + utf8.RuneCountInString(text[pos:end]),
		}
		return tok, end - pos, true
	}
	return Token{}, 0, false
}

// charLevelAt decides the segmentation strategy for a letter rune.
func charLevelAt(r rune, forced script.Family, haveForced bool, cfg Config) bool {
	if haveForced && forced != script.Mixed {
		return forced.CharLevel()
	}
	f := script.Of(r).Family()
	if f == script.Unknown {
		f = cfg.FallbackFamily
	}
	return f.CharLevel()
}

// familyAt returns the segmentation family of a letter rune, with Unknown
// resolved through the configured fallback.
func familyAt(r rune, cfg Config) script.Family {
	f := script.Of(r).Family()
	if f == script.Unknown {
		f = cfg.FallbackFamily
	}
	return f
}

// scanWordSpan consumes a word-level span starting at a letter at byte
// offset pos: letters and digits of the same family, combining marks,
// internal joiners (ZWNJ/ZWJ between letters, Arabic tatweel counts as a
// letter already), apostrophes between letters, and single hyphens between
// letters or digits. The span ends at limit, at a family change, or when
// the strategy flips to character-level.
//
// Arabic proclitics and enclitics are attached morphemes, not separate
// orthographic words, so nothing inside a contiguous Arabic letter run ever
// splits here. The known limitation is that no clitic separation is
// attempted either.
func scanWordSpan(text string, pos, limit int, forced script.Family, haveForced bool, cfg Config) int {
	first, size := utf8.DecodeRuneInString(text[pos:])
	wordFam := familyAt(first, cfg)
	i := pos + size

	for i < limit {
		r, rs := utf8.DecodeRuneInString(text[i:])

		if unicode.IsMark(r) || unicode.IsDigit(r) {
			i += rs
			continue
		}

		if unicode.IsLetter(r) {
			f := familyAt(r, cfg)
			if !haveForced || forced == script.Mixed {
				if f.CharLevel() || f != wordFam {
					break
				}
			} else if forced.CharLevel() {
				break
			}
			i += rs
			continue
		}

		// ZWNJ/ZWJ are format controls that extend the current grapheme
		// cluster; they are always consumed so the span never ends inside
		// a cluster. Within Arabic words they are orthographic joiners.
		if r == 0x200C || r == 0x200D {
			i += rs
			continue
		}

		// Apostrophes between letters: don't, l'amore, Bakı'nın.
		if r == '\'' || r == 0x2019 || r == 0x02BC {
			if nextLetterSameRun(text, i+rs, limit, wordFam, cfg) {
				i += rs
				continue
			}
			break
		}

		// Single hyphen between letters or digits.
		if r == '-' {
			if i+rs < limit {
				nr, _ := utf8.DecodeRuneInString(text[i+rs:])
				if nr != '-' && (unicode.IsDigit(nr) ||
					(unicode.IsLetter(nr) && familyAt(nr, cfg) == wordFam && !familyAt(nr, cfg).CharLevel())) {
					i += rs
					continue
				}
			}
			break
		}

		break
	}

	return i
}

// snapToBoundary extends end to the nearest grapheme cluster boundary at or
// after it. A word span that absorbed a trailing joiner (ZWJ before an emoji
// continues the cluster) would otherwise stop mid-cluster.
func snapToBoundary(text string, start, end int) int {
	off := start
	for off < end {
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[off:], -1)
		if len(cluster) == 0 {
			break
		}
		off += len(cluster)
	}
	return off
}

// nextLetterSameRun reports whether the rune at byte offset pos is a letter
// belonging to the same word-level run family.
func nextLetterSameRun(text string, pos, limit int, fam script.Family, cfg Config) bool {
	if pos >= limit {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	if !unicode.IsLetter(r) {
		return false
	}
	f := familyAt(r, cfg)
	return f == fam && !f.CharLevel()
}
