package models

import (
	"encoding/json"
	"fmt"
)

// Payment is a payment method an event accepts
type Payment int

const (
	PaymentCreditCard Payment = iota
	PaymentCash
	PaymentThirdParty
)

// Payments lists every method in display order
var Payments = []Payment{PaymentCreditCard, PaymentCash, PaymentThirdParty}

var paymentLabels = map[Payment]string{
	PaymentCreditCard: "信用卡",
	PaymentCash:       "現金",
	PaymentThirdParty: "第三方支付",
}

// String returns the wire label the ticketing API stores
func (p Payment) String() string {
	if label, ok := paymentLabels[p]; ok {
		return label
	}
	return fmt.Sprintf("Payment(%d)", int(p))
}

// Available reports whether the method is open for sale
func (p Payment) Available() bool {
	return p == PaymentCreditCard
}

// ParsePayment maps a wire label back to a Payment
func ParsePayment(label string) (Payment, error) {
	for p, l := range paymentLabels {
		if l == label {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown payment %q", ErrInvalidInput, label)
}

func (p Payment) MarshalJSON() ([]byte, error) {
	if _, ok := paymentLabels[p]; !ok {
		return nil, fmt.Errorf("%w: unknown payment %d", ErrInvalidInput, int(p))
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts the label or the numeric index
func (p *Payment) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		parsed, err := ParsePayment(label)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: payment %s", ErrInvalidInput, data)
	}
	if _, ok := paymentLabels[Payment(n)]; !ok {
		return fmt.Errorf("%w: unknown payment %d", ErrInvalidInput, n)
	}
	*p = Payment(n)
	return nil
}
