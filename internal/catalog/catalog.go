package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/xtrajank/groceries/internal/models"
	"github.com/xtrajank/groceries/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	customerFields = 8
	itemFields     = 3
)

// Catalog owns the customer and item tables. Records keep their load order
// and duplicate ids are kept; lookups by id return the first one loaded.
type Catalog struct {
	customers     []models.Customer
	items         []models.Item
	customerIndex map[int]int
	itemIndex     map[int]int
	logger        *zap.Logger
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		customerIndex: make(map[int]int),
		itemIndex:     make(map[int]int),
		logger:        util.GetLogger(),
	}
}

// Customers returns a copy of the customer table in load order.
func (c *Catalog) Customers() []models.Customer {
	return slices.Clone(c.customers)
}

// Items returns a copy of the item table in load order.
func (c *Catalog) Items() []models.Item {
	return slices.Clone(c.items)
}

// FindCustomer returns the first customer loaded with id.
func (c *Catalog) FindCustomer(id int) (models.Customer, bool) {
	i, ok := c.customerIndex[id]
	if !ok {
		return models.Customer{}, false
	}
	return c.customers[i], true
}

// FindItem returns the first item loaded with id.
func (c *Catalog) FindItem(id int) (models.Item, bool) {
	i, ok := c.itemIndex[id]
	if !ok {
		return models.Item{}, false
	}
	return c.items[i], true
}

// ItemsWithID returns every item record carrying id, in load order.
func (c *Catalog) ItemsWithID(id int) []models.Item {
	var out []models.Item
	for _, itm := range c.items {
		if itm.ID == id {
			out = append(out, itm)
		}
	}
	return out
}

// AddCustomer appends a customer to the table.
func (c *Catalog) AddCustomer(cust models.Customer) {
	if _, ok := c.customerIndex[cust.ID]; !ok {
		c.customerIndex[cust.ID] = len(c.customers)
	}
	c.customers = append(c.customers, cust)
}

// AddItem appends an item to the table.
func (c *Catalog) AddItem(itm models.Item) {
	if _, ok := c.itemIndex[itm.ID]; !ok {
		c.itemIndex[itm.ID] = len(c.items)
	}
	c.items = append(c.items, itm)
}

// LoadCustomers reads the customers file at path. An open failure leaves the
// table untouched and is returned; bad lines are skipped and listed in the result.
func (c *Catalog) LoadCustomers(ctx context.Context, path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		c.logger.Error("Customers file not opened", zap.String("path", path), zap.Error(err))
		return LoadResult{Source: path}, fmt.Errorf("%w: %s: %v", ErrOpenFile, path, err)
	}
	defer f.Close()

	res, err := c.LoadCustomersFrom(ctx, f)
	res.Source = path
	return res, err
}

// LoadCustomersFrom reads customer lines from r.
func (c *Catalog) LoadCustomersFrom(ctx context.Context, r io.Reader) (LoadResult, error) {
	_, span := util.StartSpan(ctx, "Catalog.LoadCustomers")
	defer span.End()

	var res LoadResult
	lr := NewLineReader(r)
	for {
		text, line, ok := lr.Next()
		if !ok {
			break
		}
		res.Lines++
		if text == "" {
			continue
		}

		cust, err := parseCustomer(text)
		if err != nil {
			res.Problem(line, text, err)
			util.CatalogRecordsRejected.WithLabelValues(util.TableCustomers, reason(err)).Inc()
			c.logger.Warn("Customer line skipped", zap.Int("line", line), zap.String("text", text), zap.Error(err))
			continue
		}

		c.AddCustomer(cust)
		res.Added++
		util.CatalogRecordsLoaded.WithLabelValues(util.TableCustomers).Inc()
	}

	c.logger.Info("Customers loaded", zap.Int("added", res.Added), zap.Int("problems", len(res.Problems)))
	return res, lr.Err()
}

// LoadItems reads the items file at path, with the same failure rules as LoadCustomers.
func (c *Catalog) LoadItems(ctx context.Context, path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		c.logger.Error("Items file not opened", zap.String("path", path), zap.Error(err))
		return LoadResult{Source: path}, fmt.Errorf("%w: %s: %v", ErrOpenFile, path, err)
	}
	defer f.Close()

	res, err := c.LoadItemsFrom(ctx, f)
	res.Source = path
	return res, err
}

// LoadItemsFrom reads item lines from r.
func (c *Catalog) LoadItemsFrom(ctx context.Context, r io.Reader) (LoadResult, error) {
	_, span := util.StartSpan(ctx, "Catalog.LoadItems")
	defer span.End()

	var res LoadResult
	lr := NewLineReader(r)
	for {
		text, line, ok := lr.Next()
		if !ok {
			break
		}
		res.Lines++
		if text == "" {
			continue
		}

		itm, err := parseItem(text)
		if err != nil {
			res.Problem(line, text, err)
			util.CatalogRecordsRejected.WithLabelValues(util.TableItems, reason(err)).Inc()
			c.logger.Warn("Item line skipped", zap.Int("line", line), zap.String("text", text), zap.Error(err))
			continue
		}

		c.AddItem(itm)
		res.Added++
		util.CatalogRecordsLoaded.WithLabelValues(util.TableItems).Inc()
	}

	c.logger.Info("Items loaded", zap.Int("added", res.Added), zap.Int("problems", len(res.Problems)))
	return res, lr.Err()
}

func parseCustomer(text string) (models.Customer, error) {
	fields := util.Split(text, ',')
	if len(fields) != customerFields {
		return models.Customer{}, fmt.Errorf("%w: want %d, got %d", ErrFieldCount, customerFields, len(fields))
	}

	id, err := ParseInt(fields[0])
	if err != nil {
		return models.Customer{}, fmt.Errorf("customer id: %w", err)
	}

	return models.Customer{
		ID:     id,
		Name:   fields[1],
		Street: fields[2],
		City:   fields[3],
		State:  fields[4],
		Zip:    fields[5],
		Phone:  fields[6],
		Email:  fields[7],
	}, nil
}

func parseItem(text string) (models.Item, error) {
	fields := util.Split(text, ',')
	if len(fields) != itemFields {
		return models.Item{}, fmt.Errorf("%w: want %d, got %d", ErrFieldCount, itemFields, len(fields))
	}

	id, err := ParseInt(fields[0])
	if err != nil {
		return models.Item{}, fmt.Errorf("item id: %w", err)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: price %q", ErrInvalidNumber, fields[2])
	}

	return models.Item{
		ID:          id,
		Description: fields[1],
		Price:       price,
	}, nil
}

// ParseInt parses an integer field, ignoring surrounding blanks.
func ParseInt(field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, field)
	}
	return n, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrFieldCount):
		return "field_count"
	case errors.Is(err, ErrInvalidNumber):
		return "invalid_number"
	default:
		return "other"
	}
}
