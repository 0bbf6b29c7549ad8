package entry

import (
	"regexp"
	"strings"

	internalstrings "github.com/livslogg/livslogg/internal/strings"
)

// NormalizeTitle builds a clean title from token-stripped text.
//
// Each matched date span is removed case-insensitively on word
// boundaries, whitespace runs collapse to single spaces, and the ends
// are trimmed. When nothing survives (the whole input was control
// tokens and date words) the title falls back to the trimmed raw
// input so it is never empty.
func NormalizeTitle(stripped string, matchedSpans []string, raw string) string {
	text := stripped
	for _, span := range matchedSpans {
		span = strings.TrimSpace(span)
		if span == "" {
			continue
		}
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(span) + `\b`)
		if err != nil {
			continue
		}
		text = pattern.ReplaceAllString(text, " ")
	}

	text = internalstrings.NormalizeWhitespace(text)
	if text == "" {
		return strings.TrimSpace(raw)
	}
	return text
}
