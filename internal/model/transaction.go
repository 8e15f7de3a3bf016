// Package model holds the plain data types exchanged between the signal
// extraction engine and its callers.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction is a single financial movement as reported by the caller.
// A negative Amount is an expense; zero or positive is income.
type Transaction struct {
	Date        time.Time
	ID          string
	Description string
	Currency    string
	Amount      float64
}

// IsExpense reports whether the transaction is an outflow.
func (t *Transaction) IsExpense() bool {
	return t.Amount < 0
}

// GenerateHash creates a stable hash for duplicate detection across imports.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.Currency)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// CategoryPrediction is the classifier's verdict for one transaction.
// Confidence is a heuristic score in [0,1], not a calibrated probability.
type CategoryPrediction struct {
	Category   string
	Confidence float64
}
