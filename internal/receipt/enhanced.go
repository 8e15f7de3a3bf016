package receipt

import (
	"regexp"
	"time"

	"github.com/mkhattak/paisa/internal/model"
)

// enhancedPass composes the multi-strategy field extractors.
type enhancedPass struct {
	now func() time.Time
}

func (e *enhancedPass) name() string { return "enhanced" }

func (e *enhancedPass) parse(text string) model.Receipt {
	lines := splitLines(text)

	amount := extractAmountEnhanced(text)
	merchant := extractMerchantEnhanced(lines)
	items := extractItemsEnhanced(lines)

	return model.Receipt{
		Amount:     amount,
		Merchant:   merchant,
		Date:       extractDateEnhanced(text, e.now),
		Category:   categorizeEnhanced(merchant, text),
		Items:      items,
		Confidence: scoreEnhanced(text, amount, merchant, items),
		RawText:    text,
	}
}

var (
	moneyCuePattern    = regexp.MustCompile(`(?i)total|amount|rs\.|\$`)
	dateTimeCuePattern = regexp.MustCompile(`(?i)date|time`)
)

// scoreEnhanced accumulates a confidence score from text quality, amount
// plausibility, merchant plausibility, item count, and generic receipt cues.
// The result is clamped to [0, 100].
func scoreEnhanced(text string, amount float64, merchant string, items []string) int {
	confidence := 0

	// Text quality: up to 20.
	if len(text) > 50 {
		confidence += 10
	}
	if len(text) > 100 {
		confidence += 10
	}

	// Amount plausibility: up to 30.
	if amount > 0 {
		confidence += 15
	}
	if amount > 1 && amount < 10_000 {
		confidence += 15
	}

	// Merchant plausibility: up to 20.
	if merchant != unknownMerchant {
		confidence += 10
	}
	if len(merchant) > 3 && len(merchant) < 50 {
		confidence += 10
	}

	// Items: up to 20.
	if len(items) > 0 {
		confidence += 10
	}
	if len(items) > 2 {
		confidence += 10
	}

	// Generic receipt cues: up to 10.
	if moneyCuePattern.MatchString(text) {
		confidence += 5
	}
	if dateTimeCuePattern.MatchString(text) {
		confidence += 5
	}

	if confidence > 100 {
		confidence = 100
	}
	return confidence
}
