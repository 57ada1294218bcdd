package checkout

import (
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/shopspring/decimal"
)

const currencyPlaces = 2

// ComputeTax sums unitPrice*quantity*rate over all items, using the rule for
// the item's category or defaultRate when none matches. Rounding to currency
// precision happens once, on the total.
func ComputeTax(items []models.LineItem, rules []models.TaxRule, defaultRate decimal.Decimal) decimal.Decimal {
	rates := make(map[string]decimal.Decimal, len(rules))
	for _, rule := range rules {
		// first rule for a category wins
		if _, exists := rates[rule.Category]; !exists {
			rates[rule.Category] = rule.Rate
		}
	}

	tax := decimal.Zero

	for _, item := range items {
		rate, ok := rates[item.Category]
		if !ok {
			rate = defaultRate
		}

		if rate.IsNegative() {
			continue
		}

		tax = tax.Add(item.LineTotal().Mul(rate))
	}

	return tax.Round(currencyPlaces)
}

// DefaultRate picks the rule with an empty category, falling back to configured.
func DefaultRate(rules []models.TaxRule, configured decimal.Decimal) decimal.Decimal {
	for _, rule := range rules {
		if rule.Category == "" {
			return rule.Rate
		}
	}

	return configured
}
