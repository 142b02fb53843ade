package service

import (
	"context"
	"fmt"

	"github.com/xtrajank/groceries/config"
	"github.com/xtrajank/groceries/internal/broker"
	"github.com/xtrajank/groceries/internal/catalog"
	"github.com/xtrajank/groceries/internal/models"
	"github.com/xtrajank/groceries/internal/report"
	"github.com/xtrajank/groceries/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderArchiver stores assembled orders and counts what a run stored.
type OrderArchiver interface {
	ArchiveOrders(ctx context.Context, runID string, orders []*models.Order) (int, error)
	CountArchived(ctx context.Context, runID string) (int, error)
}

// OrderPublisher announces assembled orders.
type OrderPublisher interface {
	PublishOrderAssembled(ctx context.Context, event *models.OrderAssembledEvent) error
}

// RunSummary reports what a run loaded and produced. ArchiveVerified is set
// when the archive holds exactly Archived rows for the run.
type RunSummary struct {
	RunID           string
	Customers       catalog.LoadResult
	Items           catalog.LoadResult
	Orders          catalog.LoadResult
	Written         int
	Archived        int
	ArchiveVerified bool
	Published       int
}

// ReportService drives the batch flow: load the catalog, assemble orders,
// write the report, then hand the orders to the optional sinks.
type ReportService struct {
	files     config.FilesConfig
	catalog   *catalog.Catalog
	assembler *Assembler
	writer    *report.Writer
	archiver  OrderArchiver
	publisher OrderPublisher
	logger    *zap.Logger
}

// NewReportService creates a report service. archiver and publisher may be nil.
func NewReportService(files config.FilesConfig, archiver OrderArchiver, publisher OrderPublisher) *ReportService {
	c := catalog.New()
	return &ReportService{
		files:     files,
		catalog:   c,
		assembler: NewAssembler(c),
		writer:    report.NewWriter(),
		archiver:  archiver,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// Catalog returns the tables filled by Load.
func (s *ReportService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Writer returns the renderer used for reports.
func (s *ReportService) Writer() *report.Writer {
	return s.writer
}

// Load reads customers, items and orders in that order. Open failures are
// logged and leave the affected table empty; the remaining loads still run.
func (s *ReportService) Load(ctx context.Context) (*RunSummary, []*models.Order) {
	ctx, span := util.StartSpan(ctx, "ReportService.Load")
	defer span.End()

	summary := &RunSummary{RunID: uuid.New().String()}

	var err error
	if summary.Customers, err = s.catalog.LoadCustomers(ctx, s.files.Customers); err != nil {
		s.logger.Error("Customers not loaded", zap.Error(err))
	}
	if summary.Items, err = s.catalog.LoadItems(ctx, s.files.Items); err != nil {
		s.logger.Error("Items not loaded", zap.Error(err))
	}

	orders, res, err := s.assembler.LoadOrders(ctx, s.files.Orders)
	if err != nil {
		s.logger.Error("Orders not loaded", zap.Error(err))
	}
	summary.Orders = res

	return summary, orders
}

// Run performs a full batch: load, write the report file, archive, publish.
// Only a failure to write the report is returned.
func (s *ReportService) Run(ctx context.Context) (*RunSummary, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.Run")
	defer span.End()

	summary, orders := s.Load(ctx)
	logger := s.logger.With(zap.String("run_id", summary.RunID))

	written, err := s.writer.WriteFile(ctx, s.files.Report, orders)
	summary.Written = written
	if err != nil {
		return summary, fmt.Errorf("failed to write report: %w", err)
	}

	if s.archiver != nil {
		summary.Archived, err = s.archiver.ArchiveOrders(ctx, summary.RunID, orders)
		if err != nil {
			logger.Error("Archive incomplete", zap.Int("archived", summary.Archived), zap.Error(err))
		}
		s.verifyArchive(ctx, logger, summary)
	}

	if s.publisher != nil {
		for _, order := range orders {
			event := broker.NewOrderAssembledEvent(summary.RunID, order)
			if err := s.publisher.PublishOrderAssembled(ctx, event); err != nil {
				logger.Error("Failed to publish OrderAssembled event", zap.Int("order_id", order.ID), zap.Error(err))
				continue
			}
			summary.Published++
		}
	}

	logger.Info("Run finished",
		zap.Int("customers", summary.Customers.Added),
		zap.Int("items", summary.Items.Added),
		zap.Int("orders", summary.Orders.Added),
		zap.Int("written", summary.Written),
		zap.Int("archived", summary.Archived),
		zap.Int("published", summary.Published))

	return summary, nil
}

func (s *ReportService) verifyArchive(ctx context.Context, logger *zap.Logger, summary *RunSummary) {
	stored, err := s.archiver.CountArchived(ctx, summary.RunID)
	if err != nil {
		logger.Error("Archive count failed", zap.Error(err))
		return
	}
	if stored != summary.Archived {
		logger.Warn("Archive count mismatch", zap.Int("archived", summary.Archived), zap.Int("stored", stored))
		return
	}
	summary.ArchiveVerified = true
}
