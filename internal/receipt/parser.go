// Package receipt extracts structured data from recognized receipt text.
//
// Parsing runs as a fallback chain: an enhanced multi-strategy pass first,
// then a simpler legacy pass if the enhanced result does not clear the
// confidence threshold. The parser never fails; the worst case is a receipt
// with a zero amount, an unknown merchant, today's date and a low confidence
// score.
package receipt

import (
	"log/slog"
	"strings"
	"time"

	"github.com/mkhattak/paisa/internal/model"
)

// enhancedThreshold is the confidence a pass must exceed for the coordinator
// to stop; the final pass in the chain is returned regardless.
const enhancedThreshold = 70

const unknownMerchant = "Unknown Merchant"

// pass is one complete parsing implementation. Passes run in order; each
// reports its own confidence in the result.
type pass interface {
	name() string
	parse(text string) model.Receipt
}

// Parser turns raw recognized text into a Receipt.
type Parser struct {
	now    func() time.Time
	passes []pass
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock overrides the time source used for date fallbacks.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser creates a parser with the enhanced and legacy passes.
func NewParser(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	p.passes = []pass{
		&enhancedPass{now: p.now},
		&legacyPass{now: p.now},
	}
	return p
}

// Parse extracts receipt fields from raw text. It always returns a value:
// the first pass whose confidence clears the threshold, or the last pass
// tried.
func (p *Parser) Parse(rawText string) model.Receipt {
	var result model.Receipt
	for _, pass := range p.passes {
		result = pass.parse(rawText)
		slog.Debug("receipt pass finished",
			"pass", pass.name(),
			"merchant", result.Merchant,
			"amount", result.Amount,
			"confidence", result.Confidence)
		if result.Confidence > enhancedThreshold {
			return result
		}
	}
	return result
}

// splitLines returns the non-empty trimmed lines of text in order.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// midnight truncates t to its calendar date.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
