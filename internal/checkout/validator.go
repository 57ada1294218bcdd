package checkout

import (
	"unicode/utf8"

	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/shopspring/decimal"
)

const (
	minCardDigits = 13
	maxCardDigits = 19
)

const (
	MsgNoPaymentMethod    = "Please select a payment method"
	MsgTenderedTooLow     = "Amount tendered must be equal to or greater than the total"
	MsgMissingCardDetails = "Please enter all card details"
	MsgInvalidCardNumber  = "Invalid card number"
	MsgMissingCheckNumber = "Please enter a check number"
)

// ValidatePayment checks the collected input for the selected method against
// the order total. Tab and gift card input is always accepted.
func ValidatePayment(state models.PaymentState, total decimal.Decimal) error {
	switch s := state.(type) {
	case nil:
		return errors.ValidationError(MsgNoPaymentMethod)
	case models.CashPayment:
		if ParseTendered(s.AmountTendered).LessThan(total) {
			return errors.ValidationError(MsgTenderedTooLow)
		}
	case models.CardPayment:
		if s.CardNumber == "" || s.ExpiryMonth == "" || s.ExpiryYear == "" || s.CVC == "" {
			return errors.ValidationError(MsgMissingCardDetails)
		}

		if n := utf8.RuneCountInString(s.CardNumber); n < minCardDigits || n > maxCardDigits {
			return errors.ValidationError(MsgInvalidCardNumber)
		}
	case models.CheckPayment:
		if s.CheckNumber == "" {
			return errors.ValidationError(MsgMissingCheckNumber)
		}
	case models.TabPayment, models.GiftCardPayment:
	}

	return nil
}
