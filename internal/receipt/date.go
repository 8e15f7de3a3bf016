package receipt

import (
	"regexp"
	"strings"
	"time"
)

// datePattern pairs a recognizer regex with the layouts that can parse its
// captured text.
type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

// enhancedDatePatterns are tried in order; the first match that parses wins.
var enhancedDatePatterns = []datePattern{
	{
		re:      regexp.MustCompile(`(?i)(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})`),
		layouts: []string{"2 January 2006"},
	},
	{
		re:      regexp.MustCompile(`(?i)(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})`),
		layouts: []string{"2 Jan 2006", "2 January 2006"},
	},
	{
		re:      regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})`),
		layouts: []string{"1/2/2006", "1/2/06"},
	},
	{
		re:      regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{2,4})`),
		layouts: []string{"1-2-2006", "1-2-06"},
	},
	{
		re:      regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
		layouts: []string{"2006-01-02"},
	},
	{
		// Slash dates with a four-digit year; same layout as the US form,
		// kept for parity with the recognizer order.
		re:      regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
		layouts: []string{"1/2/2006"},
	},
	{
		re:      regexp.MustCompile(`(?i)DATE[:\s]*(\d{1,2}/\d{1,2}/\d{2,4})`),
		layouts: []string{"1/2/2006", "1/2/06"},
	},
	{
		re:      regexp.MustCompile(`(?i)DATE[:\s]*(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})`),
		layouts: []string{"2 Jan 2006", "2 January 2006"},
	},
}

// extractDateEnhanced finds the first parseable date in the text and
// normalizes it to midnight. Absent or unparseable dates fall back to today.
func extractDateEnhanced(text string, now func() time.Time) time.Time {
	return extractDate(text, enhancedDatePatterns, now)
}

func extractDate(text string, patterns []datePattern, now func() time.Time) time.Time {
	for _, pattern := range patterns {
		match := pattern.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if parsed, ok := parseDateToken(match[1], pattern.layouts); ok {
			return parsed
		}
	}
	return midnight(now())
}

// parseDateToken tries each layout against the token. Abbreviated month
// names keep only their first three letters so forms like "Sept" still
// parse.
func parseDateToken(token string, layouts []string) (time.Time, bool) {
	candidates := []string{token, trimMonthSuffix(token)}
	for _, layout := range layouts {
		for _, candidate := range candidates {
			if parsed, err := time.Parse(layout, candidate); err == nil {
				return midnight(parsed), true
			}
		}
	}
	return time.Time{}, false
}

// trimMonthSuffix reduces a long month word to its three-letter form, e.g.
// "15 Sept 2023" becomes "15 Sep 2023".
func trimMonthSuffix(token string) string {
	fields := strings.Fields(token)
	if len(fields) != 3 {
		return token
	}
	month := fields[1]
	if len(month) > 3 {
		fields[1] = month[:3]
	}
	return strings.Join(fields, " ")
}
