package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xtrajank/groceries/internal/models"
	"github.com/xtrajank/groceries/internal/util"

	"go.uber.org/zap"
)

// The header is right-aligned in a dash-filled field of headerWidth, so the
// dashes run up to the line break before "Order #".
const (
	headerWidth = 50
	headerLead  = "\nOrder #"
)

var separator = strings.Repeat("-", headerWidth-len(headerLead))

// Writer renders orders as text blocks.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a report writer
func NewWriter() *Writer {
	return &Writer{logger: util.GetLogger()}
}

// Render formats one order: header, payment, customer and line items.
func (w *Writer) Render(order *models.Order) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s%s%d, Date: %s\n\n", separator, headerLead, order.ID, order.Date)

	if order.Payment != nil {
		sb.WriteString(order.Payment.Detail())
		sb.WriteString("\n\n")
	}
	if !order.Balanced() {
		w.logger.Warn("Payment amount does not match order sum",
			zap.Int("order_id", order.ID),
			zap.String("sum", order.Sum.String()),
			zap.String("payment", paymentAmount(order)))
	}

	sb.WriteString(CustomerDetail(order.Customer))
	sb.WriteString("\n")

	sb.WriteString("Order Detail:\n")
	for _, li := range order.LineItems {
		fmt.Fprintf(&sb, "\tItem %d: \"%s\", %d @ %s\n",
			li.Item.ID, li.Item.Description, li.Quantity, li.Item.Price.StringFixed(2))
	}

	return sb.String()
}

// CustomerDetail formats the customer block of a report.
func CustomerDetail(c models.Customer) string {
	return fmt.Sprintf("Customer ID #%d:\n%s ph. %s, email: %s\n%s\n%s, %s %s\n",
		c.ID, c.Name, c.Phone, c.Email, c.Street, c.City, c.State, c.Zip)
}

// WriteAll writes every order to out in collection order, each block
// followed by a blank line. It returns how many orders were written.
func (w *Writer) WriteAll(ctx context.Context, out io.Writer, orders []*models.Order) (int, error) {
	_, span := util.StartSpan(ctx, "Report.WriteAll")
	defer span.End()

	bw := bufio.NewWriter(out)
	written := 0
	for _, order := range orders {
		if _, err := fmt.Fprintln(bw, w.Render(order)); err != nil {
			return written, fmt.Errorf("failed to write order %d: %w", order.ID, err)
		}
		written++
		util.ReportOrdersWrittenTotal.Inc()
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("failed to flush report: %w", err)
	}
	return written, nil
}

// WriteFile creates path and writes the report to it.
func (w *Writer) WriteFile(ctx context.Context, path string, orders []*models.Order) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create report %s: %w", path, err)
	}

	n, err := w.WriteAll(ctx, f, orders)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close report %s: %w", path, cerr)
	}
	if err == nil {
		w.logger.Info("Report written", zap.String("path", path), zap.Int("orders", n))
	}
	return n, err
}

func paymentAmount(order *models.Order) string {
	if order.Payment == nil {
		return "none"
	}
	return order.Payment.Amount.String()
}
