// Package lookup runs the interactive order-total calculator.
package lookup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/xtrajank/groceries/internal/catalog"
	"github.com/xtrajank/groceries/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const exitItemID = 0

// Result is the outcome of one session.
type Result struct {
	CustomerID    int
	CustomerFound bool
	Purchased     int
	Total         decimal.Decimal
}

// Session reads whitespace-separated ids and writes prompts.
type Session struct {
	catalog *catalog.Catalog
	in      *bufio.Scanner
	out     io.Writer
	logger  *zap.Logger
}

// NewSession creates a session over a loaded catalog
func NewSession(c *catalog.Catalog, in io.Reader, out io.Writer) *Session {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Session{
		catalog: c,
		in:      scanner,
		out:     out,
		logger:  util.GetLogger(),
	}
}

// Run asks for a customer id and then item ids until 0 or end of input.
// Every item record sharing an entered id is added to the total.
func (s *Session) Run(ctx context.Context) (Result, error) {
	_, span := util.StartSpan(ctx, "Lookup.Run")
	defer span.End()

	res := Result{Total: decimal.Zero}

	fmt.Fprintf(s.out, "Customers: %d Items: %d\n", len(s.catalog.Customers()), len(s.catalog.Items()))
	fmt.Fprint(s.out, "Enter customer id: ")

	token, ok := s.next()
	if !ok {
		fmt.Fprintln(s.out)
		return res, s.in.Err()
	}
	// An unreadable id reads as 0.
	customerID, err := strconv.Atoi(token)
	if err != nil {
		customerID = 0
	}
	res.CustomerID = customerID

	if _, found := s.catalog.FindCustomer(customerID); !found {
		fmt.Fprintf(s.out, "Customer with id %d not found.\n", customerID)
		return res, nil
	}
	res.CustomerFound = true

	for {
		fmt.Fprint(s.out, "Enter item id (0 to exit): ")
		token, ok := s.next()
		if !ok {
			fmt.Fprintln(s.out)
			break
		}

		itemID, err := strconv.Atoi(token)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid item id: %s\n", token)
			continue
		}
		if itemID == exitItemID {
			break
		}

		matches := s.catalog.ItemsWithID(itemID)
		if len(matches) == 0 {
			fmt.Fprintf(s.out, "Item not found: %d\n", itemID)
			continue
		}
		for _, itm := range matches {
			res.Total = res.Total.Add(itm.Price)
			res.Purchased++
			util.LookupItemsPurchasedTotal.Inc()
		}
	}

	fmt.Fprintf(s.out, "Number of items purchased: %d Total: $%s\n", res.Purchased, res.Total.StringFixed(2))
	s.logger.Debug("Lookup finished",
		zap.Int("customer_id", res.CustomerID),
		zap.Int("purchased", res.Purchased),
		zap.String("total", res.Total.StringFixed(2)))

	return res, s.in.Err()
}

func (s *Session) next() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}
