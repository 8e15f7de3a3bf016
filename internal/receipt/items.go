package receipt

import (
	"regexp"
	"strings"
)

const maxItems = 8

var (
	// Structural "name + price" and "price + name" shapes.
	itemPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^([a-z\s&'.\-]+)\s+rs?\.?\s*[\d,]+\.?\d*$`),
		regexp.MustCompile(`(?i)^([a-z\s&'.\-]+)\s+\$\s*[\d,]+\.?\d*$`),
		regexp.MustCompile(`(?i)rs?\.?\s*[\d,]+\.?\d*\s+([a-z\s&'.\-]+)$`),
		regexp.MustCompile(`(?i)\$\s*[\d,]+\.?\d*\s+([a-z\s&'.\-]+)$`),
	}

	// Loose "text before a price" shape for lines that carry a currency
	// marker but do not match a structural pattern.
	looseItemPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([a-z\s&'.\-]+)\s+rs?\.?\s*[\d,]+\.?\d*`),
	}

	itemNoisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total|subtotal|tax|amount|due|balance|change`),
		regexp.MustCompile(`(?i)date|time|receipt|thank|welcome|powered|by`),
	}
)

// extractItemsEnhanced pulls line items out of the receipt body, skipping
// summary and boilerplate lines. Results are deduplicated and capped.
func extractItemsEnhanced(lines []string) []string {
	var items []string

	for _, line := range lines {
		if len(line) < 3 || isItemNoise(line) {
			continue
		}

		if name, ok := matchItemPatterns(line, itemPatterns); ok {
			items = appendItem(items, name)
			continue
		}

		// Currency marker but no structural match: take the text before
		// the price.
		if hasCurrencyMarker(line) && !containsKnownItem(line, items) {
			if name, ok := matchItemPatterns(line, looseItemPatterns); ok {
				items = appendItem(items, name)
			}
		}
	}

	if len(items) > maxItems {
		items = items[:maxItems]
	}
	return items
}

func isItemNoise(line string) bool {
	for _, pattern := range itemNoisePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func matchItemPatterns(line string, patterns []*regexp.Regexp) (string, bool) {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		if len(name) > 2 && len(name) < 50 {
			return name, true
		}
	}
	return "", false
}

func hasCurrencyMarker(line string) bool {
	return strings.Contains(line, "Rs") || strings.Contains(line, "$")
}

func containsKnownItem(line string, items []string) bool {
	for _, item := range items {
		if strings.Contains(line, item) {
			return true
		}
	}
	return false
}

// appendItem adds name if it is not already present.
func appendItem(items []string, name string) []string {
	for _, existing := range items {
		if existing == name {
			return items
		}
	}
	return append(items, name)
}
