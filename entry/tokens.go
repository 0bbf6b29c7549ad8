// Package entry turns one line of free text into a structured record.
//
// An entry like "Buy milk tomorrow 5pm !high #shopping @errands" is
// parsed in three passes: control tokens (!priority, #tag, @category)
// are extracted first, then date and time expressions are resolved
// against an injected reference instant, and finally the leftover text
// is normalized into a title. Parsing is pure and never fails: when
// everything else goes wrong the raw input becomes the title.
package entry

import (
	"regexp"
	"strings"

	"github.com/livslogg/livslogg/task"
)

// Markers count only at the start of a word: "bob@example" is an email
// address, not a category.
var (
	priorityPattern = regexp.MustCompile(`(?:^|\s)!(\w+)`)
	tagPattern      = regexp.MustCompile(`(?:^|\s)#(\w+)`)
	categoryPattern = regexp.MustCompile(`(?:^|\s)@(\w+)`)
)

// Tokens holds the control tokens extracted from raw entry text.
type Tokens struct {
	// Stripped is the text with all matched tokens removed. Whitespace
	// is left as-is; the title normalizer cleans it up.
	Stripped string

	// Priority is the parsed "!word" marker, nil when none was written.
	Priority *task.Priority

	// Tags are the lowercased "#tag" words, duplicates collapsed,
	// in order of first appearance.
	Tags []string

	// Category is the first "@word" marker, accepted verbatim.
	Category string
}

// ExtractTokens pulls priority, tag, and category markers out of text.
//
// Only the first "!" and "@" markers are honored; every "#" tag is
// collected. Unrecognized priority words map to medium. Matched
// substrings are removed from the returned text.
func ExtractTokens(text string) Tokens {
	var tokens Tokens

	if match := priorityPattern.FindStringSubmatch(text); match != nil {
		priority := task.ParsePriority(strings.ToLower(match[1]))
		tokens.Priority = &priority
		text = strings.Replace(text, match[0], " ", 1)
	}

	if matches := tagPattern.FindAllStringSubmatch(text, -1); matches != nil {
		seen := make(map[string]struct{}, len(matches))
		for _, match := range matches {
			tag := strings.ToLower(match[1])
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tokens.Tags = append(tokens.Tags, tag)
		}
		text = tagPattern.ReplaceAllString(text, " ")
	}

	if match := categoryPattern.FindStringSubmatch(text); match != nil {
		tokens.Category = match[1]
		text = strings.Replace(text, match[0], " ", 1)
	}

	tokens.Stripped = text
	return tokens
}
