package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the selector used in the first field of a payment line.
type PaymentMethod string

// Payment methods
const (
	PaymentMethodCredit       PaymentMethod = "1"
	PaymentMethodPayPal       PaymentMethod = "2"
	PaymentMethodWireTransfer PaymentMethod = "3"
)

// String returns the method name used in logs and events.
func (m PaymentMethod) String() string {
	switch m {
	case PaymentMethodCredit:
		return "CREDIT"
	case PaymentMethodPayPal:
		return "PAYPAL"
	case PaymentMethodWireTransfer:
		return "WIRE_TRANSFER"
	default:
		return "UNKNOWN"
	}
}

// PaymentDetails is implemented only by Credit, PayPal and WireTransfer.
type PaymentDetails interface {
	Method() PaymentMethod
	Describe() string

	paymentDetails()
}

// Payment carries the amount shared by all methods plus the method-specific details.
type Payment struct {
	Amount  decimal.Decimal `json:"amount"`
	Details PaymentDetails  `json:"details"`
}

// Method returns the payment method of the details.
func (p *Payment) Method() PaymentMethod {
	return p.Details.Method()
}

// Detail formats the amount and method-specific fields as one report line.
func (p *Payment) Detail() string {
	return fmt.Sprintf("Amount: $%s, %s", p.Amount.StringFixed(2), p.Details.Describe())
}

type Credit struct {
	CardNumber string `json:"card_number"`
	Expiration string `json:"expiration"`
}

func (Credit) Method() PaymentMethod { return PaymentMethodCredit }

func (c Credit) Describe() string {
	return fmt.Sprintf("Paid by Credit card %s, exp. %s", c.CardNumber, c.Expiration)
}

func (Credit) paymentDetails() {}

type PayPal struct {
	AccountID string `json:"account_id"`
}

func (PayPal) Method() PaymentMethod { return PaymentMethodPayPal }

func (p PayPal) Describe() string {
	return fmt.Sprintf("Paid by Paypal ID: %s", p.AccountID)
}

func (PayPal) paymentDetails() {}

type WireTransfer struct {
	BankID    string `json:"bank_id"`
	AccountID string `json:"account_id"`
}

func (WireTransfer) Method() PaymentMethod { return PaymentMethodWireTransfer }

func (w WireTransfer) Describe() string {
	return fmt.Sprintf("Paid by Wire transfer from Bank ID %s, Account # %s", w.BankID, w.AccountID)
}

func (WireTransfer) paymentDetails() {}
