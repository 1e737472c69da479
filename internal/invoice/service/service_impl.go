package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/facturo/internal/clock"
	"github.com/smallbiznis/facturo/internal/invoice/domain"
	"github.com/smallbiznis/facturo/pkg/db"
	"github.com/smallbiznis/facturo/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	DB      *db.Manager
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Clock   clock.Clock        `optional:"true"`
	Metrics *telemetry.Metrics `optional:"true"`
}

type Service struct {
	db      *db.Manager
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	clock   clock.Clock
	metrics *telemetry.Metrics
}

func New(p Params) domain.Service {
	clk := p.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		clock:   clk,
		metrics: p.Metrics,
	}
}

// Create persists the invoice and one item per input in a single
// transaction. Figures are stored verbatim; callers compute subtotal, tax,
// total, and each line's total price before calling. A duplicate reference
// surfaces the unique-constraint error unmodified.
func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	if strings.TrimSpace(req.Reference) == "" {
		return nil, domain.ErrInvalidReference
	}
	if time.Time(req.Date).IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, domain.ErrInvalidCustomerName
	}

	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	invoice := domain.Invoice{
		ID:              s.genID.Generate().Int64(),
		Reference:       req.Reference,
		Date:            req.Date,
		DueDate:         req.DueDate,
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		Total:           req.Total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	invoice.Items = s.buildItems(invoice.ID, req.Items)

	err = s.repo.Insert(ctx, conn, &invoice)
	s.metrics.RecordOp("invoice", "create", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.Int64("id", invoice.ID),
		zap.String("reference", invoice.Reference),
		zap.Int("items", len(invoice.Items)))
	return &invoice, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, conn, id)
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Invoice, error) {
	return s.Search(ctx, "", 0)
}

func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Invoice, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.repo.Search(ctx, conn, query, limit)
	s.metrics.ObserveSearch("invoice", time.Since(start))
	return rows, err
}

// Update patches invoice fields and, when items is non-nil, deletes the
// prior item set and inserts the new one; both commit as one unit of work.
// A missing id yields a nil invoice without error.
func (s *Service) Update(ctx context.Context, id int64, patch domain.Patch, items []domain.ItemInput) (*domain.Invoice, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, conn, id)
	if err != nil || existing == nil {
		return nil, err
	}

	changes := patch.Changes()
	replaceItems := items != nil
	if len(changes) > 0 {
		changes["updated_at"] = s.clock.Now()
	}
	if len(changes) == 0 && !replaceItems {
		return existing, nil
	}

	err = s.repo.Update(ctx, conn, id, changes, s.buildItems(id, items), replaceItems)
	s.metrics.RecordOp("invoice", "update", err)
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, conn, id)
}

// Delete removes the invoice together with all its items and returns the
// pre-deletion snapshot, or nil when the id is unknown.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Invoice, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, conn, id)
	if err != nil || existing == nil {
		return nil, err
	}

	err = s.repo.Delete(ctx, conn, id)
	s.metrics.RecordOp("invoice", "delete", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice deleted",
		zap.Int64("id", id),
		zap.String("reference", existing.Reference))
	return existing, nil
}

func (s *Service) GetForCustomer(ctx context.Context, customerID int64) ([]domain.Invoice, error) {
	if customerID <= 0 {
		return []domain.Invoice{}, nil
	}

	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	return s.repo.FindForCustomer(ctx, conn, customerID)
}

func (s *Service) buildItems(invoiceID int64, inputs []domain.ItemInput) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		quantity := in.Quantity
		if quantity == 0 {
			quantity = 1
		}
		items = append(items, domain.InvoiceItem{
			ID:          s.genID.Generate().Int64(),
			InvoiceID:   invoiceID,
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Quantity:    quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  in.TotalPrice,
		})
	}
	return items
}
