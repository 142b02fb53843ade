package models

import "github.com/shopspring/decimal"

// Customer is a row of the customers table.
type Customer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
}

// Item is a row of the items table.
type Item struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// LineItem pairs a catalog item with the quantity ordered.
type LineItem struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// SubTotal returns price × quantity.
func (li LineItem) SubTotal() decimal.Decimal {
	return li.Item.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is an assembled order. Customer and line item items are copies of
// catalog records, which never change after load.
type Order struct {
	ID        int             `json:"id"`
	Date      string          `json:"date"`
	Sum       decimal.Decimal `json:"sum"`
	Customer  Customer        `json:"customer"`
	LineItems []LineItem      `json:"line_items"`
	Payment   *Payment        `json:"payment"`
}

// Total recomputes the order sum from its line items and stores it on both
// the order and its payment.
func (o *Order) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range o.LineItems {
		sum = sum.Add(li.SubTotal())
	}

	o.Sum = sum
	if o.Payment != nil {
		o.Payment.Amount = sum
	}
	return sum
}

// Balanced reports whether the payment amount matches the order sum.
func (o *Order) Balanced() bool {
	return o.Payment != nil && o.Payment.Amount.Equal(o.Sum)
}
