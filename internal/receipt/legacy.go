package receipt

import (
	"regexp"
	"strings"
	"time"

	"github.com/mkhattak/paisa/internal/model"
)

// legacyPass is the simpler single-strategy fallback. It is retained because
// the enhanced pass can self-report low confidence on sparse or noisy text,
// and a coarse answer beats no answer.
type legacyPass struct {
	now func() time.Time
}

func (l *legacyPass) name() string { return "legacy" }

const legacyMaxAmount = 100_000

var (
	legacyAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Rs\.\s*(\d+)`),
		regexp.MustCompile(`(?i)Rs\s*(\d+)`),
		regexp.MustCompile(`\$(\d+\.\d{2})`),
		regexp.MustCompile(`(\d+\.\d{2})`),
		regexp.MustCompile(`(?i)TOTAL[:\s]*Rs?\.?\s*(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)AMOUNT[:\s]*Rs?\.?\s*(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)SUBTOTAL[:\s]*Rs?\.?\s*(\d+\.?\d*)`),
	}

	legacyMerchantNoise = regexp.MustCompile(`(?i)rs\.|total|amount|date|time|powered|by|from|to`)
	legacyMerchantName  = regexp.MustCompile(`^[A-Za-z\s&]+$`)

	legacyDatePatterns = []datePattern{
		{
			re:      regexp.MustCompile(`(?i)(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})`),
			layouts: []string{"2 January 2006"},
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
			re:      regexp.MustCompile(`(?i)DATE[:\s]*(\d{1,2}/\d{1,2}/\d{2,4})`),
			layouts: []string{"1/2/2006", "1/2/06"},
		},
	}

	legacyItemPattern = regexp.MustCompile(`^([^$]+?)\s+\$?\d+\.\d{2}`)
)

// legacyMerchantCategories maps merchant-name substrings to categories, in
// priority order.
var legacyMerchantCategories = []categoryRule{
	{category: "Food & Dining", merchantKeywords: []string{"starbucks", "coffee"}},
	{category: "Shopping", merchantKeywords: []string{"walmart", "target"}},
	{category: "Transportation", merchantKeywords: []string{"shell", "gas"}},
	{category: "Shopping", merchantKeywords: []string{"amazon", "online"}},
	{category: "Food & Dining", merchantKeywords: []string{"restaurant", "food"}},
	{category: "Transportation", merchantKeywords: []string{"uber", "lyft"}},
	{category: "Food & Dining", merchantKeywords: []string{"pizza", "burger", "kfc", "mcdonalds"}},
}

func (l *legacyPass) parse(text string) model.Receipt {
	amount := l.extractAmount(text)
	merchant := l.extractMerchant(text)

	return model.Receipt{
		Amount:     amount,
		Merchant:   merchant,
		Date:       extractDate(text, legacyDatePatterns, l.now),
		Category:   l.categorize(merchant),
		Items:      l.extractItems(text),
		Confidence: l.score(text, amount, merchant),
		RawText:    text,
	}
}

// extractAmount keeps the largest match under the legacy cap.
func (l *legacyPass) extractAmount(text string) float64 {
	var maxAmount float64
	for _, pattern := range legacyAmountPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			num, ok := parseAmountToken(match[1])
			if ok && num > maxAmount && num < legacyMaxAmount {
				maxAmount = num
			}
		}
	}
	return maxAmount
}

// extractMerchant returns the first clean digit-free line.
func (l *legacyPass) extractMerchant(text string) string {
	for _, line := range splitLines(text) {
		if len(line) < 3 || len(line) > 50 {
			continue
		}
		if anyDigitPattern.MatchString(line) {
			continue
		}
		if legacyMerchantNoise.MatchString(line) {
			continue
		}
		if legacyMerchantName.MatchString(line) {
			return line
		}
	}
	return unknownMerchant
}

func (l *legacyPass) categorize(merchant string) string {
	merchantLower := strings.ToLower(merchant)
	for _, rule := range legacyMerchantCategories {
		if matchesKeywords(merchantLower, rule.merchantKeywords) {
			return rule.category
		}
	}
	return "Other"
}

// extractItems collects lines that carry a dollar price and are not summary
// rows.
func (l *legacyPass) extractItems(text string) []string {
	var items []string
	for _, line := range splitLines(text) {
		lower := strings.ToLower(line)
		if !strings.Contains(line, "$") ||
			strings.Contains(lower, "total") ||
			strings.Contains(lower, "subtotal") {
			continue
		}
		match := legacyItemPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if name := strings.TrimSpace(match[1]); len(name) > 2 {
			items = append(items, name)
		}
	}
	if len(items) > 5 {
		items = items[:5]
	}
	return items
}

func (l *legacyPass) score(text string, amount float64, merchant string) int {
	confidence := 0
	if len(text) > 50 {
		confidence += 20
	}
	if len(text) > 100 {
		confidence += 20
	}
	if amount > 0 {
		confidence += 30
	}
	if amount > 1 && amount < 1000 {
		confidence += 20
	}
	if merchant != unknownMerchant {
		confidence += 10
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}
