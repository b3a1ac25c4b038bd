package tokenizer

import (
	"strings"
	"testing"
	"time"
)

// TestAdversarialInputTime verifies the scan completes quickly on inputs
// crafted to maximize matcher retries.
func TestAdversarialInputTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "repeated at signs",
			input: strings.Repeat("a@", 5000),
		},
		{
			name:  "repeated hash marks",
			input: strings.Repeat("#", 10000),
		},
		{
			name:  "nested dots for email",
			input: strings.Repeat("a.", 5000) + "@" + strings.Repeat("b.", 5000) + "com",
		},
		{
			name:  "almost-URLs",
			input: strings.Repeat("http:/x ", 5000),
		},
		{
			name:  "long unbroken domain labels",
			input: strings.Repeat("a-", 20000) + ".com",
		},
		{
			name:  "long digit sequence",
			input: strings.Repeat("1234567890", 5000),
		},
		{
			name:  "digit separator churn",
			input: strings.Repeat("1.2,", 10000),
		},
		{
			name:  "ZWJ chain",
			input: "a" + strings.Repeat("‍", 10000),
		},
		{
			name:  "combining mark chain",
			input: "e" + strings.Repeat("́", 10000),
		},
	}

	tk := NewDefault()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			_ = tk.Tokenize(tt.input)
			elapsed := time.Since(start)

			const maxDuration = 2 * time.Second
			if elapsed > maxDuration {
				t.Errorf("took %v, exceeds %v limit", elapsed, maxDuration)
			}
		})
	}
}

// TestMalformedUTF8 verifies handling of invalid UTF-8 sequences.
func TestMalformedUTF8(t *testing.T) {
	inputs := []string{
		"\xFF\xFE hello",
		"check \xC0\x80 out",
		"user@\xFFdomain.com",
		"\xC3", // truncated multibyte
	}

	for _, in := range inputs {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Tokenize(%q) panicked: %v", in, r)
				}
			}()
			_ = Tokenize(in)
		})
	}
}

// TestNullByteInjection verifies handling of embedded null bytes.
func TestNullByteInjection(t *testing.T) {
	inputs := []string{
		"\x00hello",
		"hello\x00world",
		"#tag\x00@user",
	}

	for _, in := range inputs {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Tokenize(%q) panicked: %v", in, r)
				}
			}()
			_ = Tokenize(in)
		})
	}
}
