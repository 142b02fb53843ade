package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xtrajank/groceries/internal/catalog"
	"github.com/xtrajank/groceries/internal/models"
	"github.com/xtrajank/groceries/internal/util"

	"go.uber.org/zap"
)

const (
	headerMinFields  = 4
	paymentMaxFields = 3
	firstItemField   = 3
)

// Assembler joins order records with the catalog tables.
type Assembler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewAssembler creates an assembler over a loaded catalog
func NewAssembler(c *catalog.Catalog) *Assembler {
	return &Assembler{
		catalog: c,
		logger:  util.GetLogger(),
	}
}

// LoadOrders reads the orders file at path.
func (a *Assembler) LoadOrders(ctx context.Context, path string) ([]*models.Order, catalog.LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		a.logger.Error("Orders file not opened", zap.String("path", path), zap.Error(err))
		return nil, catalog.LoadResult{Source: path}, fmt.Errorf("%w: %s: %v", catalog.ErrOpenFile, path, err)
	}
	defer f.Close()

	orders, res, err := a.LoadOrdersFrom(ctx, f)
	res.Source = path
	return orders, res, err
}

// LoadOrdersFrom reads header/payment line pairs from r and returns the
// orders that assembled cleanly, in input order.
//
// A line with too few fields is not a header and is skipped on its own. Once
// a header is recognised the following line is always taken as its payment,
// even if the order is then discarded, so later pairs stay aligned.
func (a *Assembler) LoadOrdersFrom(ctx context.Context, r io.Reader) ([]*models.Order, catalog.LoadResult, error) {
	_, span := util.StartSpan(ctx, "Assembler.LoadOrders")
	defer span.End()

	var (
		res    catalog.LoadResult
		orders []*models.Order
	)

	lr := catalog.NewLineReader(r)
	for {
		text, line, ok := lr.Next()
		if !ok {
			break
		}
		res.Lines++
		if text == "" {
			continue
		}

		fields := util.Split(text, ',')
		if len(fields) < headerMinFields {
			a.reject(&res, line, text, ErrMalformedHeader, "malformed_header")
			continue
		}

		payText, payLine, havePayment := lr.Next()
		if havePayment {
			res.Lines++
		}

		order, err := a.assemble(&res, line, fields)
		if err != nil {
			a.reject(&res, line, text, err, rejectReason(err))
			continue
		}

		var payment *models.Payment
		if havePayment {
			payment, err = ParsePayment(payText)
		} else {
			err = fmt.Errorf("%w: no payment line for order %d", ErrPaymentNotSet, order.ID)
			payLine = line
		}
		if err != nil {
			a.reject(&res, payLine, payText, fmt.Errorf("order %d: %w", order.ID, err), "payment_not_set")
			continue
		}

		order.Payment = payment
		order.Total()

		orders = append(orders, order)
		res.Added++
		util.OrdersAssembledTotal.Inc()
	}

	a.logger.Info("Orders loaded", zap.Int("added", res.Added), zap.Int("problems", len(res.Problems)))
	return orders, res, lr.Err()
}

// assemble builds an order from header fields. Unknown or malformed line
// items are recorded in res and left out; the order itself fails only on a
// bad id or an unknown customer.
func (a *Assembler) assemble(res *catalog.LoadResult, line int, fields []string) (*models.Order, error) {
	customerID, err := catalog.ParseInt(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: customer id: %w", ErrMalformedHeader, err)
	}
	orderID, err := catalog.ParseInt(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: order id: %w", ErrMalformedHeader, err)
	}

	cust, ok := a.catalog.FindCustomer(customerID)
	if !ok {
		return nil, fmt.Errorf("%w: customer id %d, order %d", ErrCustomerNotFound, customerID, orderID)
	}

	order := &models.Order{
		ID:       orderID,
		Date:     fields[2],
		Customer: cust,
	}

	for _, token := range fields[firstItemField:] {
		li, err := a.lineItem(token)
		if err != nil {
			res.Problem(line, token, fmt.Errorf("order %d: %w", orderID, err))
			util.LineItemsDroppedTotal.WithLabelValues(rejectReason(err)).Inc()
			a.logger.Warn("Line item dropped",
				zap.Int("line", line),
				zap.Int("order_id", orderID),
				zap.String("token", token),
				zap.Error(err))
			continue
		}
		order.LineItems = append(order.LineItems, li)
	}

	return order, nil
}

func (a *Assembler) lineItem(token string) (models.LineItem, error) {
	parts := util.Split(token, '-')
	if len(parts) != 2 {
		return models.LineItem{}, fmt.Errorf("%w: %q", ErrMalformedLineItem, token)
	}

	itemID, err := catalog.ParseInt(parts[0])
	if err != nil {
		return models.LineItem{}, fmt.Errorf("%w: item id: %w", ErrMalformedLineItem, err)
	}
	quantity, err := catalog.ParseInt(parts[1])
	if err != nil {
		return models.LineItem{}, fmt.Errorf("%w: quantity: %w", ErrMalformedLineItem, err)
	}

	itm, ok := a.catalog.FindItem(itemID)
	if !ok {
		return models.LineItem{}, fmt.Errorf("%w: item id %d", ErrItemNotFound, itemID)
	}

	return models.LineItem{Item: itm, Quantity: quantity}, nil
}

func (a *Assembler) reject(res *catalog.LoadResult, line int, text string, err error, reason string) {
	res.Problem(line, text, err)
	util.OrdersRejectedTotal.WithLabelValues(reason).Inc()
	a.logger.Warn("Order skipped",
		zap.Int("line", line),
		zap.String("text", text),
		zap.Error(err))
}

// ParsePayment parses a payment line: a method selector followed by its
// fields. Lines with more than three fields are never payments.
func ParsePayment(text string) (*models.Payment, error) {
	fields := util.Split(text, ',')
	if len(fields) > paymentMaxFields {
		return nil, fmt.Errorf("%w: %d fields in payment line", ErrPaymentNotSet, len(fields))
	}

	method := models.PaymentMethod(fields[0])
	switch method {
	case models.PaymentMethodCredit:
		if len(fields) != 3 {
			break
		}
		return &models.Payment{Details: models.Credit{CardNumber: fields[1], Expiration: fields[2]}}, nil
	case models.PaymentMethodPayPal:
		if len(fields) < 2 {
			break
		}
		return &models.Payment{Details: models.PayPal{AccountID: fields[1]}}, nil
	case models.PaymentMethodWireTransfer:
		if len(fields) != 3 {
			break
		}
		return &models.Payment{Details: models.WireTransfer{BankID: fields[1], AccountID: fields[2]}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown payment type %q", ErrPaymentNotSet, fields[0])
	}

	return nil, fmt.Errorf("%w: %s payment needs more fields", ErrPaymentNotSet, method)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, ErrMalformedLineItem):
		return "malformed_line_item"
	case errors.Is(err, ErrPaymentNotSet):
		return "payment_not_set"
	default:
		return "malformed_header"
	}
}
