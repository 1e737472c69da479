package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/facturo/internal/clock"
	"github.com/smallbiznis/facturo/internal/customer/domain"
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
		log:     p.Log.Named("customer.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		clock:   clk,
		metrics: p.Metrics,
	}
}

// Create inserts a new customer. Constraint violations (name or address
// shorter than three characters) surface unmodified from commit.
func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:        s.genID.Generate().Int64(),
		Name:      req.Name,
		Address:   req.Address,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.Insert(ctx, conn, &customer)
	s.metrics.RecordOp("customer", "create", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("customer created", zap.Int64("id", customer.ID))
	return &customer, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, conn, id)
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Customer, error) {
	return s.Search(ctx, "", 0)
}

func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.repo.Search(ctx, conn, query, limit)
	s.metrics.ObserveSearch("customer", time.Since(start))
	return rows, err
}

// Update applies the patch to an existing customer and returns the stored
// result. A missing id yields a nil customer without error.
func (s *Service) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Customer, error) {
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
	s.metrics.RecordOp("customer", "update", err)
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, conn, id)
}

// Delete removes the customer and returns its pre-deletion snapshot.
// Invoices keep their denormalized name/address copies and are untouched.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Customer, error) {
	conn, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, conn, id)
	if err != nil || existing == nil {
		return nil, err
	}

	err = s.repo.Delete(ctx, conn, id)
	s.metrics.RecordOp("customer", "delete", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("customer deleted", zap.Int64("id", id))
	return existing, nil
}
