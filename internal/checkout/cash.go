package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	KeyClear     = "clear"
	KeyBackspace = "backspace"
	KeyDecimal   = "."
)

var quickAmounts = map[string]struct{}{"10": {}, "20": {}, "50": {}, "100": {}}

// ParseTendered reads the cash input; anything unparseable counts as zero.
func ParseTendered(amount string) decimal.Decimal {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}

	return d
}

// CalculateChange never goes below zero.
func CalculateChange(amountTendered string, total decimal.Decimal) decimal.Decimal {
	change := ParseTendered(amountTendered).Sub(total)
	if change.IsNegative() {
		return decimal.Zero
	}

	return change
}

func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(currencyPlaces)
}

// ApplyNumpadInput returns the new tendered string and whether it differs
// from the previous one. Keys other than digits, ".", the quick amounts,
// clear and backspace are ignored.
func ApplyNumpadInput(current, key string) (string, bool) {
	next := numpad(current, key)

	return next, next != current
}

func numpad(current, key string) string {
	switch {
	case key == KeyClear:
		return "0"
	case key == KeyBackspace:
		if len(current) > 1 {
			return current[:len(current)-1]
		}

		return "0"
	case isQuickAmount(key):
		return key
	case key == KeyDecimal:
		if strings.Contains(current, KeyDecimal) {
			return current
		}

		return current + key
	case isDigits(key):
		if current == "0" || current == "" {
			return key
		}

		return current + key
	}

	return current
}

func isQuickAmount(key string) bool {
	_, ok := quickAmounts[key]

	return ok
}

func isDigits(key string) bool {
	if key == "" {
		return false
	}

	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
