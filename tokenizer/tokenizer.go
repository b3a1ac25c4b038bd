// Package tokenizer splits raw multilingual text (social media posts,
// messages) into an ordered sequence of typed tokens suitable for
// frequency and n-gram analysis.
//
// The package provides two API layers:
//
//   - Structured: [New] builds a [BasicTokenizer] from a validated [Config];
//     its Tokenize and Stream methods return []Token / iter.Seq[Token] with
//     codepoint offsets, token types, and script metadata.
//   - Convenience: package-level [Tokenize] and [Words] run a tokenizer
//     with [DefaultConfig] for common use cases.
//
// Segmentation is Unicode-script aware: whitespace-delimited scripts split
// at whitespace and punctuation boundaries, scriptio continua scripts (Han,
// Kana, Hangul, Thai, Lao, Myanmar, Khmer) emit one token per grapheme
// cluster. Social media entities (URLs, emails, @mentions, #hashtags)
// are matched by a priority-ordered alternative list before any word
// splitting, so they stay atomic regardless of internal punctuation.
// Disabled URLs and emails are excised from the input wholesale and never
// fragment into component words. Token boundaries never fall inside a
// grapheme cluster (combining marks and ZWJ emoji sequences stay whole).
//
// Tokenization is pure and deterministic: identical input, configuration,
// and call options always produce the identical sequence. The only shared
// mutable state is the process-wide compiled-pattern cache, which is
// synchronized internally; all functions are safe for concurrent use by
// multiple goroutines.
//
// Known limitations (v1.0):
//
//   - Invalid UTF-8 bytes decode as U+FFFD and are dropped silently; the
//     scan always advances, it never rejects input.
//   - Arabic clitic separation is not performed: attached proclitics and
//     enclitics stay joined to their host word, which is also why internal
//     joiners (tatweel, ZWNJ) never split a word.
//   - Bare domains without a dot-delimited alphabetic TLD (localhost:8080)
//     are not detected as URLs.
//   - CaseNormalize currently folds to lowercase; proper-noun preservation
//     is not implemented.
package tokenizer

import (
	"iter"

	"golang.org/x/text/unicode/norm"

	"github.com/socialtok/socialtok/script"
)

// wordsPerTokenEstimate is the estimated ratio of input bytes to tokens,
// used to pre-size the token slice in Tokenize.
const wordsPerTokenEstimate = 6

// Tokenizer is the tokenization contract. Implementations must be
// stateless per call and safe for concurrent use.
type Tokenizer interface {
	Tokenize(text string, opts ...Option) []Token
}

// BasicTokenizer is the composite-matcher tokenization engine. It holds an
// immutable configuration; all per-call state lives on the stack.
type BasicTokenizer struct {
	cfg Config
}

// compile-time interface check
var _ Tokenizer = (*BasicTokenizer)(nil)

// New builds a tokenizer from cfg. It returns a *ConfigError when the
// configuration is invalid; no partially constructed tokenizer is ever
// returned.
func New(cfg Config) (*BasicTokenizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BasicTokenizer{cfg: cfg}, nil
}

// NewDefault builds a tokenizer with [DefaultConfig].
func NewDefault() *BasicTokenizer {
	bt, _ := New(DefaultConfig())
	return bt
}

// Config returns the tokenizer's configuration.
func (bt *BasicTokenizer) Config() Config {
	return bt.cfg
}

// callOptions carries per-call overrides. The zero value means: classify
// scripts per span, keep the configured entity handling.
type callOptions struct {
	family       script.Family
	haveFamily   bool
	dropEntities bool
}

// Option adjusts a single Tokenize or Stream call without mutating the
// tokenizer's configuration.
type Option func(*callOptions)

// WithFamily skips script classification and applies the given family's
// segmentation strategy uniformly. Passing script.Mixed restores per-span
// classification, which is the default.
func WithFamily(f script.Family) Option {
	return func(o *callOptions) {
		o.family = f
		o.haveFamily = true
	}
}

// WithoutEntities disables hashtag and mention extraction (markers dropped,
// remainders kept as words) and excludes URLs and emails wholesale, for
// this call only.
func WithoutEntities() Option {
	return func(o *callOptions) {
		o.dropEntities = true
	}
}

// Tokenize splits text into tokens in document order. The returned slice
// is owned by the caller. Empty input returns nil.
func (bt *BasicTokenizer) Tokenize(text string, opts ...Option) []Token {
	if text == "" {
		return nil
	}
	tokens := make([]Token, 0, len(text)/wordsPerTokenEstimate+1)
	bt.each(text, opts, func(tok Token) bool {
		tokens = append(tokens, tok)
		return true
	})
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// Stream returns a lazy, forward-only token sequence over text. It yields
// the exact sequence Tokenize returns, one token at a time; the scan stops
// as soon as the consumer stops pulling. Use it for inputs large enough
// that materializing the full slice is unwanted. The sequence is single
// pass; restarting means calling Stream again from the top.
func (bt *BasicTokenizer) Stream(text string, opts ...Option) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		bt.each(text, opts, yield)
	}
}

// each runs one full tokenization pass: per-call config derivation, Unicode
// normalization, compiled matcher lookup, and the engine scan.
func (bt *BasicTokenizer) each(text string, opts []Option, yield func(Token) bool) {
	if text == "" {
		return
	}

	var call callOptions
	for _, opt := range opts {
		opt(&call)
	}

	cfg := bt.cfg
	if call.dropEntities {
		cfg.ExtractHashtags = false
		cfg.ExtractMentions = false
		cfg.IncludeURLs = false
		cfg.IncludeEmails = false
	}

	if cfg.NormalizeUnicode {
		form := norm.NFC
		if cfg.UseNFKC {
			form = norm.NFKC
		}
		text = form.String(text)
	}

	ms := compiledSet(cfg)
	scan(text, ms, call.family, call.haveFamily, stepBudget(len(text)), yield)
}

// std is the shared default tokenizer behind the convenience functions.
var std = NewDefault()

// Tokenize splits text with the default configuration.
func Tokenize(text string) []Token {
	return std.Tokenize(text)
}

// Words returns the effective strings of Word-type tokens from text,
// tokenized with the default configuration. For full control, use
// [BasicTokenizer.Tokenize] and filter by Type.
func Words(text string) []string {
	tokens := std.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Type == Word {
			words = append(words, t.Value())
		}
	}
	return words
}
