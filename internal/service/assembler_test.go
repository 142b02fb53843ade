package service

import (
	"context"
	"strings"
	"testing"

	"github.com/xtrajank/groceries/internal/catalog"
	"github.com/xtrajank/groceries/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCustomers = "1,Jane Doe,1 Main St,Springfield,IL,62704,555-1234,jane@x.com\n" +
		"2,John Roe,9 Oak Ave,Shelbyville,IL,62565,555-9876,john@y.com\n"
	testItems = "10,Apple,0.50\n20,Bread,2.00\n"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	_, err := c.LoadCustomersFrom(context.Background(), strings.NewReader(testCustomers))
	require.NoError(t, err)
	_, err = c.LoadItemsFrom(context.Background(), strings.NewReader(testItems))
	require.NoError(t, err)
	return c
}

func loadOrders(t *testing.T, input string) ([]*models.Order, catalog.LoadResult) {
	t.Helper()
	orders, res, err := NewAssembler(newTestCatalog(t)).LoadOrdersFrom(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	return orders, res
}

func TestLoadOrdersEndToEnd(t *testing.T) {
	orders, res := loadOrders(t, "1,100,2024-01-01,10-3,20-1\n1,4567,12/25\n")

	require.Len(t, orders, 1)
	assert.Empty(t, res.Problems)
	assert.Equal(t, 1, res.Added)

	order := orders[0]
	assert.Equal(t, 100, order.ID)
	assert.Equal(t, "2024-01-01", order.Date)
	assert.Equal(t, 1, order.Customer.ID)
	require.Len(t, order.LineItems, 2)
	assert.True(t, decimal.RequireFromString("3.50").Equal(order.Sum))
	assert.True(t, order.Payment.Amount.Equal(order.Sum))

	credit, ok := order.Payment.Details.(models.Credit)
	require.True(t, ok)
	assert.Equal(t, "4567", credit.CardNumber)
	assert.Equal(t, "12/25", credit.Expiration)
}

func TestLoadOrdersPaymentVariants(t *testing.T) {
	input := "1,100,d1,10-1\n2,pp-jane\n" +
		"2,101,d2,20-2\n3,BANK9,ACCT7\n"

	orders, res := loadOrders(t, input)

	require.Len(t, orders, 2)
	assert.Empty(t, res.Problems)
	assert.Equal(t, models.PayPal{AccountID: "pp-jane"}, orders[0].Payment.Details)
	assert.Equal(t, models.WireTransfer{BankID: "BANK9", AccountID: "ACCT7"}, orders[1].Payment.Details)
	assert.True(t, decimal.RequireFromString("4").Equal(orders[1].Sum))
}

func TestLoadOrdersUnknownCustomer(t *testing.T) {
	orders, res := loadOrders(t, "99,100,2024-01-01,10-3\n1,4567,12/25\n")

	assert.Empty(t, orders)
	require.Len(t, res.Problems, 1)
	assert.ErrorIs(t, res.Problems[0], ErrCustomerNotFound)
}

func TestLoadOrdersUnknownCustomerKeepsPairsAligned(t *testing.T) {
	input := "99,100,d,10-1\n1,4567,12/25\n" +
		"1,101,d,20-1\n2,pp\n"

	orders, res := loadOrders(t, input)

	require.Len(t, orders, 1)
	assert.Equal(t, 101, orders[0].ID)
	require.Len(t, res.Problems, 1)
}

func TestLoadOrdersUnknownItem(t *testing.T) {
	orders, res := loadOrders(t, "1,100,2024-01-01,10-3,77-2,20-1\n1,4567,12/25\n")

	require.Len(t, orders, 1)
	assert.Len(t, orders[0].LineItems, 2)
	require.Len(t, res.Problems, 1)
	assert.ErrorIs(t, res.Problems[0], ErrItemNotFound)
	assert.True(t, decimal.RequireFromString("3.50").Equal(orders[0].Sum))
}

func TestLoadOrdersMalformedLineItem(t *testing.T) {
	orders, res := loadOrders(t, "1,100,d,10,20-x,20-1\n2,pp\n")

	require.Len(t, orders, 1)
	assert.Len(t, orders[0].LineItems, 1)
	require.Len(t, res.Problems, 2)
	for _, p := range res.Problems {
		assert.ErrorIs(t, p, ErrMalformedLineItem)
	}
}

func TestLoadOrdersBadPayment(t *testing.T) {
	tests := []struct {
		name    string
		payment string
	}{
		{"unknown selector", "4,abc"},
		{"too many fields", "1,4567,12/25,extra"},
		{"credit missing expiration", "1,4567"},
		{"wire missing account", "3,BANK"},
		{"paypal missing id", "2"},
		{"blank", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, res := loadOrders(t, "1,100,d,10-1\n"+tt.payment+"\n1,101,d,20-1\n2,pp\n")

			require.Len(t, orders, 1)
			assert.Equal(t, 101, orders[0].ID)
			require.Len(t, res.Problems, 1)
			assert.ErrorIs(t, res.Problems[0], ErrPaymentNotSet)
		})
	}
}

func TestLoadOrdersMissingPaymentAtEOF(t *testing.T) {
	orders, res := loadOrders(t, "1,100,d,10-1\n")

	assert.Empty(t, orders)
	require.Len(t, res.Problems, 1)
	assert.ErrorIs(t, res.Problems[0], ErrPaymentNotSet)
}

func TestLoadOrdersMalformedHeader(t *testing.T) {
	input := "1,100,d\n" +
		"1,101,d,10-2\n1,4567,12/25\n" +
		"x,102,d,10-1\n2,pp\n"

	orders, res := loadOrders(t, input)

	require.Len(t, orders, 1)
	assert.Equal(t, 101, orders[0].ID)
	require.Len(t, res.Problems, 2)
	assert.ErrorIs(t, res.Problems[0], ErrMalformedHeader)
	assert.ErrorIs(t, res.Problems[1], ErrMalformedHeader)
	assert.ErrorIs(t, res.Problems[1], catalog.ErrInvalidNumber)
}

func TestLoadOrdersKeepsOrderAndDuplicates(t *testing.T) {
	input := "2,200,d,20-1\n2,a\n1,100,d,10-1\n2,b\n2,200,d,10-4\n2,c\n"

	orders, _ := loadOrders(t, input)

	require.Len(t, orders, 3)
	assert.Equal(t, []int{200, 100, 200}, []int{orders[0].ID, orders[1].ID, orders[2].ID})
	for _, o := range orders {
		assert.True(t, o.Balanced())
	}
}

func TestLoadOrdersMissingFile(t *testing.T) {
	_, _, err := NewAssembler(catalog.New()).LoadOrders(context.Background(), "/nonexistent/orders.txt")
	assert.ErrorIs(t, err, catalog.ErrOpenFile)
}

func TestParsePayment(t *testing.T) {
	p, err := ParsePayment("1,4567,12/25")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCredit, p.Method())

	_, err = ParsePayment("credit,4567,12/25")
	assert.ErrorIs(t, err, ErrPaymentNotSet)
}
