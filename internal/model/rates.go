package model

import "time"

// RateSnapshot is a cached exchange-rate table for one base currency.
type RateSnapshot struct {
	FetchedAt    time.Time
	BaseCurrency string
	AsOfDate     string
	Rates        map[string]float64
}

// Rate returns the multiplier for converting the base currency into code.
func (s *RateSnapshot) Rate(code string) (float64, bool) {
	rate, ok := s.Rates[code]
	return rate, ok
}
