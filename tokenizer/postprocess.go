package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// postprocess applies the configured transforms and filters to a raw token:
// whitespace stripping, case handling, and length bounds. Entity tokens
// pass through untouched: case is semantically significant in URLs and
// handles, and entities are exempt from length filtering. Returns the
// finished token and whether to keep it.
func postprocess(tok Token, cfg Config) (Token, bool) {
	if tok.Type.Entity() {
		return tok, true
	}

	text := tok.Text
	if cfg.StripWhitespace {
		text = strings.TrimSpace(text)
		if text == "" {
			return tok, false
		}
		tok.Text = text
	}

	if tok.Type == Word {
		var folded string
		switch cfg.CaseHandling {
		case CaseLower, CaseNormalize:
			folded = strings.ToLower(text)
		case CaseUpper:
			folded = strings.ToUpper(text)
		default:
			folded = text
		}
		if folded != text {
			tok.Norm = folded
		}
	}

	length := utf8.RuneCountInString(tok.Value())
	if length < cfg.MinTokenLength {
		return tok, false
	}
	if cfg.MaxTokenLength > 0 && length > cfg.MaxTokenLength {
		return tok, false
	}

	return tok, true
}
