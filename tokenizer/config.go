package tokenizer

import (
	"fmt"
	"strings"

	"github.com/socialtok/socialtok/script"
)

// CaseHandling selects the casing transform applied to non-entity tokens.
type CaseHandling int

const (
	CasePreserve  CaseHandling = iota // keep original case
	CaseLower                         // convert to lowercase
	CaseUpper                         // convert to uppercase
	CaseNormalize                     // smart normalization; currently folds to lowercase
)

// caseNames maps CaseHandling values to their string names.
var caseNames = [...]string{
	CasePreserve:  "preserve",
	CaseLower:     "lowercase",
	CaseUpper:     "uppercase",
	CaseNormalize: "normalize",
}

// String returns the name of the case handling mode.
func (c CaseHandling) String() string {
	if int(c) >= 0 && int(c) < len(caseNames) {
		return caseNames[c]
	}
	return fmt.Sprintf("CaseHandling(%d)", int(c))
}

// Valid reports whether c is one of the defined CaseHandling values.
func (c CaseHandling) Valid() bool {
	return c >= CasePreserve && c <= CaseNormalize
}

// Config controls every tokenization decision. It is a value object:
// construct it once, validate it with [New], and treat it as immutable.
// Two configs with identical field values are interchangeable; the
// compiled matcher cache keys on field values, not identity.
type Config struct {
	// FallbackFamily is the segmentation family applied to spans whose
	// script cannot be determined (pure digits, symbols).
	FallbackFamily script.Family

	// IncludePunctuation emits punctuation marks as tokens.
	IncludePunctuation bool

	// IncludeNumeric emits numeric tokens. When false, numeric spans are
	// consumed and dropped whole, never fragmented.
	IncludeNumeric bool

	// IncludeEmoji emits emoji grapheme clusters as tokens.
	IncludeEmoji bool

	// CaseHandling is the casing transform applied to non-entity tokens.
	CaseHandling CaseHandling

	// NormalizeUnicode applies Unicode normalization to the input before
	// scanning. The form is NFC, or NFKC when UseNFKC is set.
	NormalizeUnicode bool

	// UseNFKC selects NFKC instead of NFC when NormalizeUnicode is set.
	UseNFKC bool

	// ExtractHashtags keeps #tags atomic. When false the marker is dropped
	// and the remainder is emitted as a plain word.
	ExtractHashtags bool

	// ExtractMentions keeps @mentions atomic. When false the marker is
	// dropped and the remainder is emitted as a plain word.
	ExtractMentions bool

	// IncludeURLs keeps URLs atomic. When false, URLs are excised from the
	// input wholesale and never fragment into component words.
	IncludeURLs bool

	// IncludeEmails keeps email addresses atomic. When false, emails are
	// excised wholesale, same policy as URLs.
	IncludeEmails bool

	// MinTokenLength drops tokens shorter than this many codepoints after
	// extraction. Entity tokens are exempt.
	MinTokenLength int

	// MaxTokenLength drops tokens longer than this many codepoints.
	// Zero means no upper bound. Entity tokens are exempt.
	MaxTokenLength int

	// StripWhitespace trims leading and trailing whitespace from tokens.
	StripWhitespace bool
}

// DefaultConfig returns the default tokenizer configuration: lowercased
// words, entities extracted atomically, numerics kept, punctuation and
// emoji dropped, NFC normalization on, minimum token length 1.
func DefaultConfig() Config {
	return Config{
		FallbackFamily:   script.Mixed,
		IncludeNumeric:   true,
		CaseHandling:     CaseLower,
		NormalizeUnicode: true,
		ExtractHashtags:  true,
		ExtractMentions:  true,
		IncludeURLs:      true,
		IncludeEmails:    true,
		MinTokenLength:   1,
		StripWhitespace:  true,
	}
}

// ConfigError reports an invalid configuration field. It is returned at
// construction time only; tokenization itself never fails.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("tokenizer: invalid config field %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration for invalid field combinations.
// It returns a *ConfigError naming the offending field, or nil.
func (c Config) Validate() error {
	if !c.FallbackFamily.Valid() {
		return &ConfigError{
			Field:  "FallbackFamily",
			Reason: fmt.Sprintf("value %d outside the Family enum", int(c.FallbackFamily)),
		}
	}
	if !c.CaseHandling.Valid() {
		return &ConfigError{
			Field:  "CaseHandling",
			Reason: fmt.Sprintf("value %d outside the CaseHandling enum", int(c.CaseHandling)),
		}
	}
	if c.MinTokenLength < 0 {
		return &ConfigError{
			Field:  "MinTokenLength",
			Reason: "must be >= 0",
		}
	}
	if c.MaxTokenLength < 0 {
		return &ConfigError{
			Field:  "MaxTokenLength",
			Reason: "must be >= 0 (zero disables the bound)",
		}
	}
	if c.MaxTokenLength > 0 && c.MinTokenLength > c.MaxTokenLength {
		return &ConfigError{
			Field:  "MinTokenLength",
			Reason: fmt.Sprintf("%d exceeds MaxTokenLength %d", c.MinTokenLength, c.MaxTokenLength),
		}
	}
	return nil
}

// Fingerprint returns a deterministic key derived from every field value.
// Configs that compare equal produce identical fingerprints, so compiled
// matcher sets are shared between them.
func (c Config) Fingerprint() string {
	var b strings.Builder
	b.Grow(64)
	fmt.Fprintf(&b, "f%d", int(c.FallbackFamily))
	fmt.Fprintf(&b, "c%d", int(c.CaseHandling))
	fmt.Fprintf(&b, "l%d-%d", c.MinTokenLength, c.MaxTokenLength)
	for _, flag := range []bool{
		c.IncludePunctuation, c.IncludeNumeric, c.IncludeEmoji,
		c.NormalizeUnicode, c.UseNFKC,
		c.ExtractHashtags, c.ExtractMentions,
		c.IncludeURLs, c.IncludeEmails,
		c.StripWhitespace,
	} {
		if flag {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
