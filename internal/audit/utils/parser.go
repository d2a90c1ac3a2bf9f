package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The first run of digits wins: "Ref NF 00452/A" is invoice 452.
var invoiceDigits = regexp.MustCompile(`\d+`)

// IsMissing reports whether a cell carries no value.
func IsMissing(valStr string) bool {
	s := strings.TrimSpace(valStr)
	return s == "" || s == "NaN" || strings.EqualFold(s, "nan") || s == "<nil>"
}

// ParseDecimal coerces a cell to a decimal. Anything it cannot read is zero.
func ParseDecimal(valStr string) decimal.Decimal {
	if IsMissing(valStr) {
		return decimal.Zero
	}
	s := strings.TrimSpace(valStr)

	if val, err := decimal.NewFromString(s); err == nil {
		return val
	}

	// pt-BR notation as found in exported CSV sections: thousands separator (.)
	// and decimal separator (,)
	if isBrazilianNumber(s) {
		cleanStr := strings.ReplaceAll(s, ".", "")
		cleanStr = strings.ReplaceAll(cleanStr, ",", ".")
		if val, err := decimal.NewFromString(cleanStr); err == nil {
			return val
		}
	}
	return decimal.Zero
}

// isBrazilianNumber accepts "1.234,56" but not "1,234.56": the comma must be
// the last separator and only digits may follow it.
func isBrazilianNumber(s string) bool {
	comma := strings.LastIndex(s, ",")
	if comma < 0 || comma < strings.LastIndex(s, ".") {
		return false
	}
	frac := s[comma+1:]
	if frac == "" {
		return false
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseInvoiceNumber reads an explicit invoice-number cell ("452", "00452",
// "452.0"). ok is false when the cell holds no integer.
func ParseInvoiceNumber(valStr string) (int64, bool) {
	if IsMissing(valStr) {
		return 0, false
	}
	s := strings.TrimSpace(valStr)

	if val, err := strconv.ParseInt(s, 10, 64); err == nil {
		return val, true
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	if !d.BigInt().IsInt64() {
		return 0, false
	}
	return d.IntPart(), true
}

// ExtractInvoiceNumber pulls the invoice number out of a free-text ledger
// reference. ok is false when the text has no digits.
func ExtractInvoiceNumber(reference string) (int64, bool) {
	if IsMissing(reference) {
		return 0, false
	}
	digits := invoiceDigits.FindString(reference)
	if digits == "" {
		return 0, false
	}
	val, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}
