package entry

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// defaultDueHour is the time-of-day applied when text specifies a date
// but no time.
const defaultDueHour = 17

var (
	meridiemTimePattern = regexp.MustCompile(`(?i)\b(1[0-2]|0?[1-9])(?::([0-5][0-9]))?\s?(am|pm)\b`)
	clockTimePattern    = regexp.MustCompile(`\b(2[0-3]|[01]?[0-9]):([0-5][0-9])\b`)
	bareHourPattern     = regexp.MustCompile(`\b(2[0-3]|1[0-9]|0?[0-9])\b`)

	todayPattern    = regexp.MustCompile(`(?i)\btoday\b`)
	tomorrowPattern = regexp.MustCompile(`(?i)\btomorrow\b`)
	nextWeekPattern = regexp.MustCompile(`(?i)\bnext\s+week\b`)
	weekdayPattern  = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	dateCuePattern  = regexp.MustCompile(`(?i)\b(?:by|on|at|until)\s+(\S.*)$`)
)

var weekdayIndex = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Date layouts accepted by the fallback phrase parser.
var (
	datedLayouts = []string{
		"2006-01-02",
		"01/02/2006",
		"1/2/2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"January 2 2006",
		"Jan 2 2006",
		"2 January 2006",
		"2 Jan 2006",
	}
	yearlessLayouts = []string{
		"January 2",
		"Jan 2",
		"2 January",
		"2 Jan",
	}
)

// ResolveDue detects a date-and-time expression in text and resolves it
// against the reference instant now. It returns the resolved timestamp
// (nil when no date expression is found) along with the substrings the
// title normalizer should remove.
//
// Date rules are evaluated in strict precedence order: "today",
// "tomorrow", "next week", a weekday name, then a preposition cue
// (by/on/at/until) followed by a free-form date phrase. A weekday name
// always means the upcoming occurrence: the reference day's own name
// resolves seven days ahead, never to today.
//
// A time-of-day token is extracted independently of which date rule
// fires and applied to the resolved date; without one the due time
// defaults to 17:00. A bare hour with no colon or marker ("tomorrow 9")
// counts as a 24-hour time, but only outside the date phrase itself so
// the digits of "on Jan 20" or "on 1/2/2026" never read as a clock.
func ResolveDue(text string, now time.Time) (*time.Time, []string) {
	clock := resolveClock(text)

	var (
		base time.Time
		span string
	)
	switch {
	case todayPattern.MatchString(text):
		span = todayPattern.FindString(text)
		base = now

	case tomorrowPattern.MatchString(text):
		span = tomorrowPattern.FindString(text)
		base = now.AddDate(0, 0, 1)

	case nextWeekPattern.MatchString(text):
		span = nextWeekPattern.FindString(text)
		base = now.AddDate(0, 0, 7)

	case weekdayPattern.MatchString(text):
		match := weekdayPattern.FindStringSubmatch(text)
		span = match[0]
		target := weekdayIndex[strings.ToLower(match[1])]
		daysAhead := int(target) - int(now.Weekday())
		if daysAhead <= 0 {
			daysAhead += 7
		}
		base = now.AddDate(0, 0, daysAhead)

	default:
		date, phraseSpan, ok := resolveDatePhrase(text, now)
		if !ok {
			// No date expression found. The entry has no due date and
			// the title keeps its text, time token included.
			return nil, nil
		}
		span = phraseSpan
		base = date
	}

	if !clock.found {
		clock = resolveBareHour(maskSpan(text, span))
	}
	due := atClock(base, clock)

	matched := []string{span}
	if clock.found {
		matched = append(matched, clock.span)
	}
	return &due, matched
}

type clockResult struct {
	hour   int
	minute int
	span   string
	found  bool
}

// resolveClock extracts a time-of-day token. 12-hour times convert to
// 24-hour (12am is 0, 12pm stays 12, other pm hours add 12); H:MM
// without a marker is taken as 24-hour as written.
func resolveClock(text string) clockResult {
	if match := meridiemTimePattern.FindStringSubmatch(text); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute := 0
		if match[2] != "" {
			minute, _ = strconv.Atoi(match[2])
		}
		meridiem := strings.ToLower(match[3])
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
		if meridiem == "pm" && hour != 12 {
			hour += 12
		}
		return clockResult{hour: hour, minute: minute, span: match[0], found: true}
	}

	if match := clockTimePattern.FindStringSubmatch(text); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute, _ := strconv.Atoi(match[2])
		return clockResult{hour: hour, minute: minute, span: match[0], found: true}
	}

	return clockResult{hour: defaultDueHour}
}

// resolveBareHour extracts an hour written without minutes or a
// marker, taken as 24-hour as given. Callers mask the date phrase out
// of text first.
func resolveBareHour(text string) clockResult {
	if match := bareHourPattern.FindStringSubmatch(text); match != nil {
		hour, _ := strconv.Atoi(match[1])
		return clockResult{hour: hour, span: match[0], found: true}
	}
	return clockResult{hour: defaultDueHour}
}

// maskSpan blanks the first occurrence of span in text, preserving
// offsets.
func maskSpan(text, span string) string {
	idx := strings.Index(text, span)
	if idx < 0 {
		return text
	}
	return text[:idx] + strings.Repeat(" ", len(span)) + text[idx+len(span):]
}

// atClock returns base's date at the resolved time-of-day.
func atClock(base time.Time, clock clockResult) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), clock.hour, clock.minute, 0, 0, base.Location())
}

// resolveDatePhrase is the fallback rule: a preposition cue followed by
// a free-form date phrase. It tries progressively shorter prefixes of
// the phrase against the known layouts. Failure is not an error; the
// entry simply has no due date.
func resolveDatePhrase(text string, now time.Time) (time.Time, string, bool) {
	loc := dateCuePattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return time.Time{}, "", false
	}
	cueStart, phraseStart, phraseEnd := loc[0], loc[2], loc[3]
	phrase := text[phraseStart:phraseEnd]

	words := wordSpans(phrase)
	maxWords := len(words)
	if maxWords > 4 {
		maxWords = 4
	}

	for n := maxWords; n >= 1; n-- {
		candidate := strings.TrimRight(phrase[words[0].start:words[n-1].end], ".,;:!?")
		parsed, ok := parseDateCandidate(candidate, now)
		if !ok {
			continue
		}
		span := text[cueStart : phraseStart+words[0].start+len(candidate)]
		return parsed, span, true
	}
	return time.Time{}, "", false
}

func parseDateCandidate(candidate string, now time.Time) (time.Time, bool) {
	for _, layout := range datedLayouts {
		parsed, err := time.ParseInLocation(layout, candidate, now.Location())
		if err == nil {
			return parsed, true
		}
	}
	for _, layout := range yearlessLayouts {
		parsed, err := time.ParseInLocation(layout, candidate, now.Location())
		if err == nil {
			return time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location()), true
		}
	}
	return time.Time{}, false
}

type textSpan struct {
	start int
	end   int
}

func wordSpans(text string) []textSpan {
	var spans []textSpan
	start := -1
	for i, char := range text {
		if char == ' ' || char == '\t' {
			if start >= 0 {
				spans = append(spans, textSpan{start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, textSpan{start: start, end: len(text)})
	}
	return spans
}
