package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/facturo/internal/clock"
	"github.com/smallbiznis/facturo/internal/product/domain"
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
		log:     p.Log.Named("product.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		clock:   clk,
		metrics: p.Metrics,
	}
}

// Create inserts a new catalog entry. A duplicate reference surfaces the
// unique-constraint error unmodified.
func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	if strings.TrimSpace(req.Reference) == "" {
		return nil, domain.ErrInvalidReference
	}

	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	product := domain.Product{
		ID:        s.genID.Generate().Int64(),
		Reference: req.Reference,
		Name:      req.Name,
		Price:     req.Price,
		Stock:     req.Stock,
		Sold:      req.Sold,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.Insert(ctx, conn, &product)
	s.metrics.RecordOp("product", "create", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.Int64("id", product.ID),
		zap.String("reference", product.Reference))
	return &product, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, conn, id)
}

func (s *Service) GetByReference(ctx context.Context, reference string) (*domain.Product, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	return s.repo.FindByReference(ctx, conn, reference)
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.Search(ctx, "", 0)
}

func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.repo.Search(ctx, conn, query, limit)
	s.metrics.ObserveSearch("product", time.Since(start))
	return rows, err
}

func (s *Service) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Product, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, conn, id)
	if err != nil || existing == nil {
		return nil, err
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return existing, nil
	}
	changes["updated_at"] = s.clock.Now()

	err = s.repo.Update(ctx, conn, id, changes)
	s.metrics.RecordOp("product", "update", err)
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, conn, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (*domain.Product, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, conn, id)
	if err != nil || existing == nil {
		return nil, err
	}

	err = s.repo.Delete(ctx, conn, id)
	s.metrics.RecordOp("product", "delete", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("product deleted", zap.Int64("id", id))
	return existing, nil
}
