// Package classify assigns categories to transactions using ordered keyword
// rules. Classification is pure: same description and amount always produce
// the same prediction.
package classify

import (
	"strings"

	"github.com/mkhattak/paisa/internal/model"
)

// Fallback predictions when no rule matches.
const (
	otherCategory          = "Other"
	otherIncomeConfidence  = 0.6
	otherExpenseConfidence = 0.5
)

// Classifier evaluates income and expense rule lists against transaction
// descriptions. The zero value is not usable; construct with NewClassifier.
type Classifier struct {
	income  []Rule
	expense []Rule
}

// NewClassifier returns a classifier with the built-in category rules.
func NewClassifier() *Classifier {
	return &Classifier{
		income:  incomeRules,
		expense: expenseRules,
	}
}

// Classify predicts a category for a description and signed amount.
// Negative amounts are expenses, zero or positive amounts are income.
// It always returns a prediction; an unmatched description maps to "Other".
func (c *Classifier) Classify(description string, amount float64) model.CategoryPrediction {
	desc := strings.ToLower(description)

	rules := c.expense
	fallback := model.CategoryPrediction{Category: otherCategory, Confidence: otherExpenseConfidence}
	if amount >= 0 {
		rules = c.income
		fallback = model.CategoryPrediction{Category: otherCategory, Confidence: otherIncomeConfidence}
	}

	for _, rule := range rules {
		if containsAny(desc, rule.Keywords) {
			return model.CategoryPrediction{
				Category:   rule.Category,
				Confidence: rule.Confidence,
			}
		}
	}

	return fallback
}

// Categories returns the category names known to the classifier, expense
// rules first, in evaluation order.
func (c *Classifier) Categories() []string {
	names := make([]string, 0, len(c.expense)+len(c.income)+1)
	for _, rule := range c.expense {
		names = append(names, rule.Category)
	}
	for _, rule := range c.income {
		names = append(names, rule.Category)
	}
	return append(names, otherCategory)
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
