package receipt

import (
	"regexp"
	"strings"
)

var (
	// merchantNoisePattern rejects lines that are clearly not a business
	// name. Substring semantics are intentional: "STORE" contains "to" and
	// is rejected here, which is what pushes suffixed names down to the
	// business-pattern strategy.
	merchantNoisePattern = regexp.MustCompile(`(?i)rs\.|total|amount|date|time|powered|by|from|to|thank|welcome|receipt`)

	merchantNamePattern    = regexp.MustCompile(`^[A-Za-z\s&'.\-]+$`)
	merchantAllCapsPattern = regexp.MustCompile(`^[A-Z\s&'.\-]+$`)
	multipleDigitsPattern  = regexp.MustCompile(`\d{2,}`)
	anyDigitPattern        = regexp.MustCompile(`\d`)

	businessSuffixPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^([A-Za-z\s&'.\-]+?)\s*(?:STORE|SHOP|MARKET|RESTAURANT|CAFE|PIZZA|BURGER)`),
		regexp.MustCompile(`(?i)^([A-Za-z\s&'.\-]+?)\s*(?:GAS|FUEL|STATION)`),
		regexp.MustCompile(`(?i)^([A-Za-z\s&'.\-]+?)\s*(?:SUPERSTORE|SUPERMARKET|GROCERY)`),
	}
)

// extractMerchantEnhanced tries the merchant strategies in order and returns
// the first candidate, or "Unknown Merchant".
func extractMerchantEnhanced(lines []string) string {
	strategies := []func([]string) string{
		merchantFromHeaderLines,
		merchantFromAllCapsLines,
		merchantFromBusinessSuffix,
	}

	for _, strategy := range strategies {
		if merchant := strategy(lines); merchant != "" {
			return merchant
		}
	}
	return unknownMerchant
}

// merchantFromHeaderLines looks for a clean business name within the first
// five lines of the receipt.
func merchantFromHeaderLines(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}

	for i := 0; i < limit; i++ {
		line := lines[i]
		if len(line) < 3 || len(line) > 60 {
			continue
		}
		if multipleDigitsPattern.MatchString(line) {
			continue
		}
		if merchantNoisePattern.MatchString(line) {
			continue
		}
		if !merchantNamePattern.MatchString(line) {
			continue
		}

		words := strings.Fields(line)
		if len(words) >= 1 && len(words) <= 4 {
			return line
		}
	}
	return ""
}

// merchantFromAllCapsLines scans every line for an all-caps name passing the
// same noise filter.
func merchantFromAllCapsLines(lines []string) string {
	for _, line := range lines {
		if len(line) > 3 && len(line) < 50 &&
			merchantAllCapsPattern.MatchString(line) &&
			!anyDigitPattern.MatchString(line) &&
			!merchantNoisePattern.MatchString(line) {
			return line
		}
	}
	return ""
}

// merchantFromBusinessSuffix matches names followed by a recognizable
// business keyword such as STORE or GAS STATION.
func merchantFromBusinessSuffix(lines []string) string {
	for _, line := range lines {
		for _, pattern := range businessSuffixPatterns {
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			name := strings.TrimSpace(match[1])
			if len(name) > 2 {
				return name
			}
		}
	}
	return ""
}
