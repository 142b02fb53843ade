package service

import "errors"

var (
	ErrMalformedHeader   = errors.New("unexpected order header format")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrMalformedLineItem = errors.New("malformed line item")
	ErrPaymentNotSet     = errors.New("payment not initialized")
)
