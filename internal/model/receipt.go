package model

import "time"

// Receipt is the structured result of parsing recognized receipt text.
// It is built once per scan attempt and never mutated afterwards; the caller
// decides whether to turn it into a Transaction or discard it.
type Receipt struct {
	Date       time.Time
	Merchant   string
	Category   string
	RawText    string
	Items      []string
	Amount     float64
	Confidence int
}

// DateString renders the receipt date in ISO calendar form.
func (r *Receipt) DateString() string {
	return r.Date.Format("2006-01-02")
}
