package tokenizer

import (
	"encoding/json"
	"fmt"

	"github.com/socialtok/socialtok/script"
)

// TokenType classifies a token.
type TokenType int

const (
	Word        TokenType = iota // Alphabetic word or single scriptio-continua grapheme cluster
	Hashtag                      // #tag social media hashtag
	Mention                      // @user social media mention
	URL                          // http(s)://, www., or bare-domain link
	Email                        // user@domain.tld address
	Emoji                        // emoji grapheme cluster, including ZWJ sequences
	Numeric                      // digits with internal separators, %, or ordinal suffix
	Punctuation                  // single punctuation grapheme cluster
)

// tokenTypeNames maps TokenType values to their string names.
var tokenTypeNames = [...]string{
	Word:        "word",
	Hashtag:     "hashtag",
	Mention:     "mention",
	URL:         "url",
	Email:       "email",
	Emoji:       "emoji",
	Numeric:     "numeric",
	Punctuation: "punctuation",
}

// tokenTypeFromName maps string names back to TokenType values.
var tokenTypeFromName = map[string]TokenType{
	"word":        Word,
	"hashtag":     Hashtag,
	"mention":     Mention,
	"url":         URL,
	"email":       Email,
	"emoji":       Emoji,
	"numeric":     Numeric,
	"punctuation": Punctuation,
}

// String returns the name of the token type.
func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Entity reports whether the type is a social media entity. Entity tokens
// are kept atomic by the matcher precedence order, are never case-folded,
// and are exempt from length filtering.
func (t TokenType) Entity() bool {
	switch t {
	case Hashtag, Mention, URL, Email:
		return true
	}
	return false
}

// MarshalJSON encodes the token type as a JSON string (e.g. "hashtag").
func (t TokenType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "hashtag") into a TokenType.
func (t *TokenType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tt, ok := tokenTypeFromName[s]
	if !ok {
		return fmt.Errorf("tokenizer: unknown token type: %q", s)
	}
	*t = tt
	return nil
}

// Token represents a unit of text with its position and classification.
//
// Start and End are codepoint offsets into the scanned text (the input after
// Unicode normalization, which is the input itself when normalization is
// disabled). Offsets are non-decreasing across a token sequence and never
// fall inside a grapheme cluster. Text is the surface form at those offsets;
// Norm is the post-processed form (case handling applied) when it differs
// from the surface form. Tokens hold no reference to the input buffer.
type Token struct {
	Text   string        `json:"text"`
	Type   TokenType     `json:"type"`
	Start  int           `json:"start"`
	End    int           `json:"end"`
	Script script.Script `json:"script,omitempty"`
	Norm   string        `json:"norm,omitempty"`
}

// Value returns the effective token string for downstream analysis:
// the normalized form when one was produced, the surface text otherwise.
func (t Token) Value() string {
	if t.Norm != "" {
		return t.Norm
	}
	return t.Text
}

// String returns a debug representation, e.g. word("hello")[0:5].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Type, t.Text, t.Start, t.End)
}
