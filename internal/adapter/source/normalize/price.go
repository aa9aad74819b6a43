// Package normalize turns the raw strings sources hand back into canonical
// field values. Every parser is strict: input it cannot read is an error,
// never a zero value, so the caller can skip the record.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/currency"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// ErrMalformed is wrapped by every parse failure in this package.
var ErrMalformed = errors.New("malformed value")

var (
	// amountRegex spans the number in a display price, including an ISO code
	// written directly before or after it.
	amountRegex = regexp.MustCompile(`(?:\b([A-Z]{3})\s*)?\p{Sc}?\s*([0-9][0-9.,'\s\p{L}\p{Sc}]*[0-9]|[0-9])(?:\s*([A-Z]{3})\b)?`)

	currencySymbols = []struct {
		symbol string
		code   string
	}{
		{"US$", "USD"},
		{"$", "USD"},
		{"€", "EUR"},
		{"£", "GBP"},
		{"₹", "INR"},
		{"¥", "JPY"},
	}
)

// ParsePrice reads a display price such as "$1,234.50", "EUR 99" or "1.234,50 €".
// The currency is taken from an ISO code or symbol in raw, else defaultCurrency.
// Negative, empty and non-finite amounts are rejected.
func ParsePrice(raw, defaultCurrency string) (domain.Price, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.Price{}, fmt.Errorf("%w: empty price", ErrMalformed)
	}

	firstDigit := strings.IndexFunc(s, isDigit)
	if firstDigit < 0 {
		return domain.Price{}, fmt.Errorf("%w: no digits in %q", ErrMalformed, raw)
	}
	if strings.Contains(s[:firstDigit], "-") {
		return domain.Price{}, fmt.Errorf("%w: negative price %q", ErrMalformed, raw)
	}

	m := amountRegex.FindStringSubmatch(s)
	if m == nil {
		return domain.Price{}, fmt.Errorf("%w: no amount in %q", ErrMalformed, raw)
	}

	amount, err := parseAmount(m[2])
	if err != nil {
		return domain.Price{}, fmt.Errorf("%w: %q: %v", ErrMalformed, raw, err)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return domain.Price{}, fmt.Errorf("%w: price out of range %q", ErrMalformed, raw)
	}

	return domain.Price{Amount: amount, Currency: detectCurrency(s, m[1], m[3], defaultCurrency)}, nil
}

// detectCurrency prefers an ISO 4217 code adjacent to the amount, then a
// currency symbol anywhere in s, then fallback. Words that merely look like
// codes ("PER PAX") are ignored.
func detectCurrency(s, before, after, fallback string) string {
	for _, code := range []string{before, after} {
		if isISOCurrency(code) {
			return code
		}
	}
	for _, cs := range currencySymbols {
		if strings.Contains(s, cs.symbol) {
			return cs.code
		}
	}
	return strings.ToUpper(strings.TrimSpace(fallback))
}

// isISOCurrency reports whether code is a recognized ISO 4217 currency.
func isISOCurrency(code string) bool {
	if len(code) != 3 || code == "XXX" {
		return false
	}
	_, err := currency.ParseISO(code)
	return err == nil
}

// parseAmount reads the number span of a price and resolves which separator
// is the decimal point. Anything other than digits, separators and grouping
// spaces between the digits ("1e3", "2 x 99") is rejected.
func parseAmount(span string) (float64, error) {
	var b strings.Builder
	for _, r := range span {
		switch {
		case isDigit(r) || r == '.' || r == ',':
			b.WriteRune(r)
		case r == '\'' || unicode.IsSpace(r):
		default:
			return 0, fmt.Errorf("unexpected %q in amount", r)
		}
	}
	num := b.String()

	lastDot := strings.LastIndex(num, ".")
	lastComma := strings.LastIndex(num, ",")
	switch {
	case lastDot >= 0 && lastComma > lastDot:
		// 1.234,50
		num = strings.ReplaceAll(num, ".", "")
		num = strings.Replace(num, ",", ".", 1)
	case lastComma >= 0 && lastDot < 0 && len(num)-lastComma-1 != 3:
		// 99,5 or 12,50
		num = strings.Replace(num, ",", ".", 1)
	default:
		num = strings.ReplaceAll(num, ",", "")
	}

	if strings.Count(num, ".") > 1 {
		return 0, errors.New("ambiguous separators")
	}
	return strconv.ParseFloat(num, 64)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
