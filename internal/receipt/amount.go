package receipt

import (
	"regexp"
	"strconv"
	"strings"
)

// Candidate amounts outside (0, 1000000) are treated as OCR misreads and
// rejected at every stage.
const maxPlausibleAmount = 1_000_000

// Labelled totals in priority order; the first value found wins. The word
// boundary keeps TOTAL from matching inside SUBTOTAL.
var totalLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bTOTAL[:\s]*Rs?\.?\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)\bTOTAL[:\s]*\$?\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)\bGRAND TOTAL[:\s]*Rs?\.?\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)\bAMOUNT DUE[:\s]*Rs?\.?\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)\bBALANCE DUE[:\s]*Rs?\.?\s*([\d,]+\.?\d*)`),
}

// Currency-marked numbers; the maximum plausible value wins.
var currencyMarkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Rs\.\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)Rs\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`\$\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s*Rs`),
	regexp.MustCompile(`([\d,]+\.?\d*)\s*USD`),
}

var (
	numberTokenPattern = regexp.MustCompile(`[\d,]+\.?\d*`)
	amountCuePattern   = regexp.MustCompile(`(?i)total|amount|due|balance`)
)

// extractAmountEnhanced tries the amount strategies in order and returns the
// first positive candidate, or 0 when nothing plausible is found.
func extractAmountEnhanced(text string) float64 {
	strategies := []func(string) float64{
		amountFromTotalLabels,
		amountFromCurrencyMarks,
		amountFromContextualNumbers,
	}

	for _, strategy := range strategies {
		if amount := strategy(text); amount > 0 {
			return amount
		}
	}
	return 0
}

// amountFromTotalLabels scans for TOTAL / GRAND TOTAL / AMOUNT DUE / BALANCE
// DUE labels and returns the first plausible value in label-priority order.
func amountFromTotalLabels(text string) float64 {
	for _, pattern := range totalLabelPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if num, ok := parseAmountToken(match[1]); ok {
				return num
			}
		}
	}
	return 0
}

// amountFromCurrencyMarks returns the largest plausible currency-marked
// number in the text.
func amountFromCurrencyMarks(text string) float64 {
	var maxAmount float64
	for _, pattern := range currencyMarkPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if num, ok := parseAmountToken(match[1]); ok && num > maxAmount {
				maxAmount = num
			}
		}
	}
	return maxAmount
}

// amountFromContextualNumbers scans every numeric token and keeps the largest
// one whose surrounding context mentions a total-like cue or that closes its
// line.
func amountFromContextualNumbers(text string) float64 {
	var maxAmount float64
	for _, loc := range numberTokenPattern.FindAllStringIndex(text, -1) {
		token := text[loc[0]:loc[1]]
		num, ok := parseAmountToken(token)
		if !ok || num <= 0.5 || num <= maxAmount {
			continue
		}

		start := loc[0] - 20
		if start < 0 {
			start = 0
		}
		end := loc[1] + 20
		if end > len(text) {
			end = len(text)
		}
		context := text[start:end]

		if amountCuePattern.MatchString(context) || endsLine(text, loc[1]) {
			maxAmount = num
		}
	}
	return maxAmount
}

// endsLine reports whether only whitespace follows position pos on its line.
func endsLine(text string, pos int) bool {
	for i := pos; i < len(text); i++ {
		switch text[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

// parseAmountToken cleans a matched numeric token and validates it against
// the plausibility bounds.
func parseAmountToken(token string) (float64, bool) {
	cleaned := strings.ReplaceAll(token, ",", "")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || num <= 0 || num >= maxPlausibleAmount {
		return 0, false
	}
	return num, true
}
