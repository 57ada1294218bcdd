package models

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodTab      PaymentMethod = "tab"
	PaymentMethodGiftCard PaymentMethod = "gift_card"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodCheck, PaymentMethodTab, PaymentMethodGiftCard:
		return true
	}

	return false
}

// PaymentState is the input collected for exactly one payment method.
// The set of implementations is closed.
type PaymentState interface {
	Method() PaymentMethod
	paymentState()
}

type CashPayment struct {
	AmountTendered string `json:"amount_tendered"`
}

type CardPayment struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVC         string `json:"cvc"`
}

type CheckPayment struct {
	CheckNumber string `json:"check_number"`
}

type TabPayment struct{}

type GiftCardPayment struct {
	CardCode string `json:"card_code"`
}

func (CashPayment) Method() PaymentMethod     { return PaymentMethodCash }
func (CardPayment) Method() PaymentMethod     { return PaymentMethodCard }
func (CheckPayment) Method() PaymentMethod    { return PaymentMethodCheck }
func (TabPayment) Method() PaymentMethod      { return PaymentMethodTab }
func (GiftCardPayment) Method() PaymentMethod { return PaymentMethodGiftCard }

func (CashPayment) paymentState()     {}
func (CardPayment) paymentState()     {}
func (CheckPayment) paymentState()    {}
func (TabPayment) paymentState()      {}
func (GiftCardPayment) paymentState() {}

// NewPaymentState returns the empty input for a method, or nil if the method is unknown.
func NewPaymentState(method PaymentMethod) PaymentState {
	switch method {
	case PaymentMethodCash:
		return CashPayment{AmountTendered: "0"}
	case PaymentMethodCard:
		return CardPayment{}
	case PaymentMethodCheck:
		return CheckPayment{}
	case PaymentMethodTab:
		return TabPayment{}
	case PaymentMethodGiftCard:
		return GiftCardPayment{}
	}

	return nil
}

// PaymentInputRequest is the flat wire form of a PaymentState.
type PaymentInputRequest struct {
	Method         PaymentMethod `json:"method" validate:"required,oneof=cash card check tab gift_card"`
	AmountTendered string        `json:"amount_tendered,omitempty"`
	CardNumber     string        `json:"card_number,omitempty"`
	ExpiryMonth    string        `json:"expiry_month,omitempty"`
	ExpiryYear     string        `json:"expiry_year,omitempty"`
	CVC            string        `json:"cvc,omitempty"`
	CheckNumber    string        `json:"check_number,omitempty"`
	GiftCardCode   string        `json:"gift_card_code,omitempty"`
}

// ToState keeps only the fields that belong to the requested method.
func (r *PaymentInputRequest) ToState() PaymentState {
	switch r.Method {
	case PaymentMethodCash:
		return CashPayment{AmountTendered: r.AmountTendered}
	case PaymentMethodCard:
		return CardPayment{CardNumber: r.CardNumber, ExpiryMonth: r.ExpiryMonth, ExpiryYear: r.ExpiryYear, CVC: r.CVC}
	case PaymentMethodCheck:
		return CheckPayment{CheckNumber: r.CheckNumber}
	case PaymentMethodTab:
		return TabPayment{}
	case PaymentMethodGiftCard:
		return GiftCardPayment{CardCode: r.GiftCardCode}
	}

	return nil
}

type SelectPaymentMethodRequest struct {
	Method PaymentMethod `json:"method" validate:"required,oneof=cash card check tab gift_card"`
}

type NumpadRequest struct {
	Key string `json:"key" validate:"required"`
}

// PaymentView is what a session exposes about its current payment input.
// Card data never leaves the server beyond the last four digits.
type PaymentView struct {
	Method         PaymentMethod `json:"method,omitempty"`
	AmountTendered string        `json:"amount_tendered,omitempty"`
	CardLast4      string        `json:"card_last4,omitempty"`
	CheckNumber    string        `json:"check_number,omitempty"`
	GiftCardCode   string        `json:"gift_card_code,omitempty"`
}

func NewPaymentView(state PaymentState) *PaymentView {
	if state == nil {
		return nil
	}

	view := &PaymentView{Method: state.Method()}

	switch s := state.(type) {
	case CashPayment:
		view.AmountTendered = s.AmountTendered
	case CardPayment:
		if n := len(s.CardNumber); n >= 4 {
			view.CardLast4 = s.CardNumber[n-4:]
		}
	case CheckPayment:
		view.CheckNumber = s.CheckNumber
	case GiftCardPayment:
		view.GiftCardCode = s.CardCode
	}

	return view
}
