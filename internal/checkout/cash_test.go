package checkout_test

import (
	"testing"

	"github.com/aaravmahajanofficial/pos-platform/internal/checkout"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateChange(t *testing.T) {
	tests := []struct {
		tendered string
		total    string
		want     string
	}{
		{tendered: "20.00", total: "15.25", want: "4.75"},
		{tendered: "20.5", total: "15.25", want: "5.25"},
		{tendered: "10", total: "15.25", want: "0.00"},
		{tendered: "", total: "1", want: "0.00"},
		{tendered: "12.", total: "2", want: "10.00"},
	}

	for _, tc := range tests {
		change := checkout.CalculateChange(tc.tendered, decimal.RequireFromString(tc.total))
		assert.Equal(t, tc.want, change.StringFixed(2), "tendered %q total %s", tc.tendered, tc.total)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$4.75", checkout.FormatCurrency(decimal.RequireFromString("4.75")))
	assert.Equal(t, "$0.00", checkout.FormatCurrency(decimal.Zero))
}

func TestApplyNumpadInput(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		key         string
		want        string
		wantChanged bool
	}{
		{name: "Backspace single digit", current: "5", key: "backspace", want: "0", wantChanged: true},
		{name: "Backspace", current: "12.3", key: "backspace", want: "12.", wantChanged: true},
		{name: "Backspace on zero", current: "0", key: "backspace", want: "0"},
		{name: "Clear", current: "42.50", key: "clear", want: "0", wantChanged: true},
		{name: "Second decimal point", current: "12.34", key: ".", want: "12.34"},
		{name: "First decimal point", current: "12", key: ".", want: "12.", wantChanged: true},
		{name: "Decimal after zero", current: "0", key: ".", want: "0.", wantChanged: true},
		{name: "Digit replaces zero", current: "0", key: "7", want: "7", wantChanged: true},
		{name: "Digit appends", current: "7", key: "5", want: "75", wantChanged: true},
		{name: "Quick amount", current: "3.5", key: "20", want: "20", wantChanged: true},
		{name: "Quick amount hundred", current: "0", key: "100", want: "100", wantChanged: true},
		{name: "Unknown key", current: "3", key: "enter", want: "3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := checkout.ApplyNumpadInput(tc.current, tc.key)

			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantChanged, changed)
		})
	}
}
