package receipt

import "strings"

// categoryRule matches a receipt by merchant-name keywords or by keywords
// anywhere in the raw text. Rules run in declaration order; first match wins.
type categoryRule struct {
	category         string
	merchantKeywords []string
	textKeywords     []string
}

var enhancedCategoryRules = []categoryRule{
	{
		category: "Food & Dining",
		merchantKeywords: []string{
			"starbucks", "coffee", "restaurant", "cafe", "pizza", "burger",
			"kfc", "mcdonalds", "subway", "dominos", "food", "dining",
		},
		textKeywords: []string{"latte", "sandwich", "combo", "meal"},
	},
	{
		category: "Shopping",
		merchantKeywords: []string{
			"walmart", "target", "amazon", "shop", "store", "market",
			"superstore", "supermarket",
		},
		textKeywords: []string{"groceries", "clothing", "electronics", "household"},
	},
	{
		category: "Transportation",
		merchantKeywords: []string{
			"shell", "gas", "fuel", "station", "uber", "lyft", "taxi",
			"transport",
		},
		textKeywords: []string{"unleaded", "gallons", "price/gal"},
	},
	{
		category: "Healthcare",
		merchantKeywords: []string{
			"pharmacy", "drug", "cvs", "walgreens", "medical", "health",
		},
		textKeywords: []string{"prescription", "medicine"},
	},
	{
		category: "Entertainment",
		merchantKeywords: []string{
			"movie", "cinema", "theater", "game", "netflix", "spotify",
		},
		textKeywords: []string{"ticket", "admission"},
	},
	{
		category: "Bills & Utilities",
		merchantKeywords: []string{
			"electric", "water", "internet", "phone", "utility", "bill",
		},
		textKeywords: []string{"electricity", "wifi", "service charge"},
	},
}

// categorizeEnhanced derives a category from the extracted merchant name and
// the full raw text. Unmatched receipts map to "Other".
func categorizeEnhanced(merchant, text string) string {
	merchantLower := strings.ToLower(merchant)
	textLower := strings.ToLower(text)

	for _, rule := range enhancedCategoryRules {
		if matchesKeywords(merchantLower, rule.merchantKeywords) ||
			matchesKeywords(textLower, rule.textKeywords) {
			return rule.category
		}
	}
	return "Other"
}

func matchesKeywords(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
