package ingest

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotPositive = errors.New("amount must be greater than zero")

// parseSignedAmount cleans a currency literal and parses it as a decimal.
// Everything but digits, '.', ',' and '-' is dropped. When both separators
// appear the last one is the decimal mark ("1.234,56", "1,234.56"); a lone
// ',' is a decimal comma.
func parseSignedAmount(raw string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}

		return -1
	}, raw)

	dot := strings.LastIndex(clean, ".")
	comma := strings.LastIndex(clean, ",")

	switch {
	case dot >= 0 && comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
	case comma >= 0 && dot > comma:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(clean)
}

// normalizeAmount returns the absolute value of raw, rejecting anything that
// is not a number or is zero.
func normalizeAmount(raw string) (decimal.Decimal, error) {
	d, err := parseSignedAmount(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}

	d = d.Abs()
	if !d.IsPositive() {
		return decimal.Decimal{}, errNotPositive
	}

	return d, nil
}
